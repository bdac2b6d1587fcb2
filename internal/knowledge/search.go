package knowledge

import (
	"strings"
)

// MinQueryLength is the shortest query Search answers.
const MinQueryLength = 2

// Search returns the articles whose title or content contains the query,
// ignoring case. ok is false when the query is too short to search.
func (b *Base) Search(query string) (results []Article, ok bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < MinQueryLength {
		return nil, false
	}
	for _, a := range b.articles {
		if strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.Content), q) {
			results = append(results, a)
		}
	}
	return results, true
}
