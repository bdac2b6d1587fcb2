package knowledge

import (
	"strings"
	"testing"
)

func testBase() *Base {
	return New(
		[]Article{
			{Title: "Line 16 - Tax", Content: "Use the tax tables or the worksheet."},
			{Title: "Indiana County Tax", Content: "Marion County is 2.02%."},
		},
		[]Topic{
			{Topic: "tax brackets", Answer: "brackets answer"},
			{Topic: "no tax on tips", Answer: "tips answer"},
			{Topic: "2025 changes", Answer: "changes answer"},
			{Topic: "refund", Answer: "first refund"},
			{Topic: "refund", Answer: "second refund"},
		},
	)
}

func TestAnswer(t *testing.T) {
	b := testBase()

	tests := []struct {
		question  string
		wantKind  Kind
		wantText  string
		wantTopic string
	}{
		{"Hello there", KindGreeting, greetingText, ""},
		{"good morning Emily", KindGreeting, greetingText, ""},
		{"thanks for the help", KindThanks, thanksText, ""},
		{"What are TAX BRACKETS?", KindTopic, "brackets answer", "tax brackets"},
		{"tips", KindTopic, "tips answer", "no tax on tips"},
		{"anything for 2025", KindTopic, "changes answer", "2025 changes"},
		{"where is my refund", KindTopic, "first refund", "refund"},
		{"bracket question", KindFallback, fallbackText, ""},
		{"what is line 12e", KindLine, "Line 12e on Form 1040 varies depending on what you're asking about. Could you be more specific? For example, ask about wages, interest income, deductions, or credits.", ""},
		{"how do I use this", KindUsage, usageText, ""},
		{"save my progress", KindSave, saveText, ""},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got := b.Answer(tt.question)
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s (score %d)", got.Kind, tt.wantKind, got.Score)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.Topic != tt.wantTopic {
				t.Errorf("Topic = %q, want %q", got.Topic, tt.wantTopic)
			}
		})
	}
}

func TestScore(t *testing.T) {
	b := testBase()
	tests := []struct {
		question string
		topic    int
		want     int
	}{
		// exact phrase
		{"what are tax brackets", 0, 100},
		// "brackets" contains "bracket"
		{"bracket", 0, 10},
		// word match plus the tips priority bonus
		{"tips", 1, 40},
		// exact phrase, year bonus, changes priority bonus
		{"2025 changes please", 2, 170},
		// year word match with its bonus, plus the year bonus
		{"anything for 2025", 2, 55},
	}
	for _, tt := range tests {
		q := strings.ToLower(tt.question)
		if got := score(q, strings.Fields(q), &b.topics[tt.topic]); got != tt.want {
			t.Errorf("score(%q, %q) = %d, want %d", tt.question, b.topics[tt.topic].Topic.Topic, got, tt.want)
		}
	}
}

func TestGreeting(t *testing.T) {
	if got := Greeting(""); got != greetingText {
		t.Errorf("Greeting(\"\") = %q", got)
	}
	if got := Greeting("Dana"); !strings.HasPrefix(got, "Hello, Dana!") {
		t.Errorf("Greeting(Dana) = %q", got)
	}
}

func TestSearch(t *testing.T) {
	b := testBase()

	if _, ok := b.Search(" a "); ok {
		t.Error("Search of a one-letter query should not run")
	}

	tests := []struct {
		query string
		want  int
	}{
		{"tax", 2},
		{"MARION", 1},
		{"worksheet", 1},
		{"zzz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := b.Search(tt.query)
			if !ok {
				t.Fatalf("Search(%q) did not run", tt.query)
			}
			if len(got) != tt.want {
				t.Errorf("Search(%q) = %d results, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestDefaultCorpus(t *testing.T) {
	b := Default()
	if got := len(b.Articles()); got != 25 {
		t.Errorf("len(Articles()) = %d, want 25", got)
	}
	if got := len(b.Topics()); got != 97 {
		t.Errorf("len(Topics()) = %d, want 97", got)
	}

	reply := b.Answer("What is the standard deduction?")
	if reply.Kind != KindTopic || reply.Topic != "standard deduction" {
		t.Errorf("Answer(standard deduction) = %+v", reply)
	}

	reply = b.Answer("Tell me about the 2025 changes")
	if reply.Topic != "2025 changes" {
		t.Errorf("Answer(2025 changes) topic = %q", reply.Topic)
	}

	results, ok := b.Search("Marion")
	if !ok || len(results) == 0 {
		t.Errorf("Search(Marion) = %v, %v", results, ok)
	}
}

func TestParseRejectsIncompleteTopics(t *testing.T) {
	if _, err := Parse([]byte("topics:\n  - topic: refund\n")); err == nil {
		t.Error("Parse() error = nil, want error for a topic without an answer")
	}
	if _, err := Parse([]byte("articles: [")); err == nil {
		t.Error("Parse() error = nil, want error for invalid YAML")
	}
}
