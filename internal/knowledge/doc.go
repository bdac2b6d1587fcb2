// Package knowledge answers tax questions from a static corpus.
//
// The corpus has two parts: articles, searched by substring for the help
// panel, and assistant topics, matched against a free-form question by a
// keyword score. Both are loaded once and immutable thereafter; a Base is
// safe for concurrent use. Nothing here depends on the tax engine.
package knowledge
