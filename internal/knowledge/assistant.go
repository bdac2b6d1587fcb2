package knowledge

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tells how a reply was chosen.
type Kind string

const (
	KindGreeting Kind = "greeting"
	KindThanks   Kind = "thanks"
	KindTopic    Kind = "topic"
	KindLine     Kind = "line"
	KindUsage    Kind = "usage"
	KindSave     Kind = "save"
	KindFallback Kind = "fallback"
)

// Reply is the assistant's answer to one question.
type Reply struct {
	Text  string
	Kind  Kind
	Topic string // matched topic, for KindTopic
	Score int
}

// MinTopicScore is the lowest score that selects a topic.
const MinTopicScore = 20

const (
	exactTopicScore = 100
	wordScore       = 10
	yearWordBonus   = 5
	yearBonus       = 40
	priorityBonus   = 30
	taxYear         = "2025"
)

var priorityWords = []string{"tips", "overtime", "trump", "changes", "new"}

var (
	greetingPattern = regexp.MustCompile(`^(hi|hello|hey|good morning|good afternoon)`)
	thanksPattern   = regexp.MustCompile(`(thank|thanks)`)
	linePattern     = regexp.MustCompile(`line\s+(\d+[a-z]?)`)
)

const (
	greetingText = "Hello! I'm Emily, your tax assistant. How can I help you with your taxes today?"
	thanksText   = "You're welcome! Feel free to ask me anything else about your taxes."
	usageText    = "To use this calculator, first select your tax type and filing status on the landing page. Then enter your income, choose your deductions, add any credits, and view your summary. You can save your progress at any time!"
	saveText     = "Your progress is saved to your account whenever you move between sections. You can also click the 'Save Progress' button in the sidebar at any time."
	fallbackText = "I'm not sure about that specific question, but I can help you with topics like filing statuses, deductions, credits, tax brackets, Indiana state taxes, and Form 1040 line items. What would you like to know?"
)

// Greeting is the greeting reply, addressed to the filer when the name is
// known.
func Greeting(name string) string {
	if name == "" {
		return greetingText
	}
	return fmt.Sprintf("Hello, %s! I'm Emily, your tax assistant. How can I help you with your taxes today?", name)
}

// Answer picks a reply for a question. Greetings and thanks are recognized
// first, then the best-scoring topic if it reaches MinTopicScore, then the
// line-number, how-to-use and saving fallbacks.
func (b *Base) Answer(question string) Reply {
	q := strings.ToLower(strings.TrimSpace(question))

	if greetingPattern.MatchString(q) {
		return Reply{Text: greetingText, Kind: KindGreeting}
	}
	if thanksPattern.MatchString(q) {
		return Reply{Text: thanksText, Kind: KindThanks}
	}

	if best, score := b.bestTopic(q); best != nil && score >= MinTopicScore {
		return Reply{Text: best.Answer, Kind: KindTopic, Topic: best.Topic.Topic, Score: score}
	}

	if m := linePattern.FindStringSubmatch(q); m != nil {
		return Reply{
			Text: fmt.Sprintf("Line %s on Form 1040 varies depending on what you're asking about. Could you be more specific? For example, ask about wages, interest income, deductions, or credits.", m[1]),
			Kind: KindLine,
		}
	}
	if strings.Contains(q, "how") && strings.Contains(q, "use") {
		return Reply{Text: usageText, Kind: KindUsage}
	}
	if strings.Contains(q, "save") || strings.Contains(q, "progress") {
		return Reply{Text: saveText, Kind: KindSave}
	}
	return Reply{Text: fallbackText, Kind: KindFallback}
}

// bestTopic returns the highest-scoring topic; the first one wins ties.
func (b *Base) bestTopic(q string) (*topicEntry, int) {
	questionWords := strings.Fields(q)
	var best *topicEntry
	bestScore := 0
	for i := range b.topics {
		t := &b.topics[i]
		if s := score(q, questionWords, t); s > bestScore {
			best, bestScore = t, s
		}
	}
	return best, bestScore
}

// score rates how well a lowercased question matches a topic:
//   - the whole topic phrase appearing in the question scores 100
//   - otherwise each (topic word longer than two letters, question word)
//     pair where one contains the other scores 10, plus 5 when the topic
//     word is the tax year
//   - both mentioning the tax year adds 40
//   - each priority word present in both adds 30
func score(q string, questionWords []string, t *topicEntry) int {
	s := 0
	if strings.Contains(q, t.phrase) {
		s = exactTopicScore
	} else {
		for _, tw := range t.words {
			if len(tw) <= 2 {
				continue
			}
			for _, qw := range questionWords {
				if strings.Contains(qw, tw) || strings.Contains(tw, qw) {
					s += wordScore
					if tw == taxYear {
						s += yearWordBonus
					}
				}
			}
		}
	}
	if strings.Contains(q, taxYear) && strings.Contains(t.phrase, taxYear) {
		s += yearBonus
	}
	for _, p := range priorityWords {
		if strings.Contains(q, p) && strings.Contains(t.phrase, p) {
			s += priorityBonus
		}
	}
	return s
}
