package knowledge

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed corpus.yaml
var defaultCorpus []byte

// Article is a help entry shown in search results.
type Article struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// Topic is a phrase the assistant recognizes and its answer.
type Topic struct {
	Topic  string `yaml:"topic"`
	Answer string `yaml:"answer"`
}

type corpus struct {
	Articles []Article `yaml:"articles"`
	Topics   []Topic   `yaml:"topics"`
}

// topicEntry caches the lowercased phrase and its words.
type topicEntry struct {
	Topic
	phrase string
	words  []string
}

// Base is an immutable knowledge corpus.
type Base struct {
	articles []Article
	topics   []topicEntry
}

// New builds a Base. Topic order is significant: on equal scores the
// earlier topic wins.
func New(articles []Article, topics []Topic) *Base {
	b := &Base{
		articles: append([]Article(nil), articles...),
		topics:   make([]topicEntry, 0, len(topics)),
	}
	for _, t := range topics {
		phrase := strings.ToLower(t.Topic)
		b.topics = append(b.topics, topicEntry{
			Topic:  t,
			phrase: phrase,
			words:  strings.Fields(phrase),
		})
	}
	return b
}

// Default returns the built-in corpus.
func Default() *Base {
	b, err := Parse(defaultCorpus)
	if err != nil {
		panic(fmt.Sprintf("knowledge: built-in corpus: %v", err))
	}
	return b
}

// Load reads a corpus from a YAML file.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge corpus: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML corpus.
func Parse(data []byte) (*Base, error) {
	var c corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge corpus: %w", err)
	}
	for i, t := range c.Topics {
		if strings.TrimSpace(t.Topic) == "" || t.Answer == "" {
			return nil, fmt.Errorf("topic %d is incomplete", i)
		}
	}
	return New(c.Articles, c.Topics), nil
}

// Articles returns every article.
func (b *Base) Articles() []Article {
	return append([]Article(nil), b.articles...)
}

// Topics returns every topic in match order.
func (b *Base) Topics() []Topic {
	out := make([]Topic, len(b.topics))
	for i, t := range b.topics {
		out[i] = t.Topic
	}
	return out
}
