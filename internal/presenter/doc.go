// Package presenter turns return values into what the browser shows:
// plain decimals for editable inputs, grouped currency text for computed
// lines, which refund/owed sections are visible, and the plain-English
// summary rendered from Markdown to HTML.
//
// It is the only package that knows about display formatting.
package presenter
