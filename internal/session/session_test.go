package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/mmynk/taxwiser/internal/calculator"
	"github.com/mmynk/taxwiser/internal/formgraph"
	"github.com/mmynk/taxwiser/internal/models"
)

var single = models.FilingProfile{TaxType: models.TaxTypeFederal1040, FilingStatus: models.StatusSingle}

func TestStartGetEnd(t *testing.T) {
	m := NewManager()

	if _, err := m.Get("a@example.com"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Get() error = %v, want ErrNoSession", err)
	}

	s, err := m.Start("A@Example.com ", "Alex", single)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.Email != "a@example.com" {
		t.Errorf("Email = %q, want normalized", s.Email)
	}

	got, err := m.Get("a@example.com")
	if err != nil || got != s {
		t.Fatalf("Get() = %v, %v, want the started session", got, err)
	}

	if !m.End("a@example.com") {
		t.Error("End() = false, want true")
	}
	if m.End("a@example.com") {
		t.Error("second End() = true, want false")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestStartReplacesSession(t *testing.T) {
	m := NewManager()
	first, _ := m.Start("a@example.com", "Alex", single)
	if _, err := first.Return.SetField(calculator.Line1a, "1000"); err != nil {
		t.Fatalf("SetField() error = %v", err)
	}

	married := models.FilingProfile{TaxType: models.TaxTypeFederal1040, FilingStatus: models.StatusMarried}
	second, err := m.Start("a@example.com", "Alex", married)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if second == first {
		t.Fatal("Start() should create a new session")
	}
	if !second.Return.Value(calculator.Line1a).IsZero() {
		t.Error("a new filing status should start from an empty return")
	}
	if got := second.Return.Value(calculator.Line12e).String(); got != "31500" {
		t.Errorf("line12e = %s, want 31500", got)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestStartRejectsInvalidProfile(t *testing.T) {
	m := NewManager()
	if _, err := m.Start("a@example.com", "Alex", models.FilingProfile{TaxType: "ohio"}); err == nil {
		t.Fatal("Start() error = nil, want error")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestResume(t *testing.T) {
	m := NewManager()
	s, _ := m.Start("a@example.com", "Alex", single)
	if _, err := s.Return.Edit(map[formgraph.FieldID]string{calculator.Line1a: "52000", calculator.Line25a: "6000"}); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	saved := s.Return.Snapshot()
	m.End("a@example.com")

	resumed, err := m.Resume("a@example.com", "Alex", saved)
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if !resumed.Return.Snapshot().Equal(saved) {
		t.Error("resumed return differs from the saved state")
	}
}

func TestConcurrentSessions(t *testing.T) {
	m := NewManager()
	emails := []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com"}

	var wg sync.WaitGroup
	for _, email := range emails {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			s, err := m.Start(email, "x", single)
			if err != nil {
				t.Errorf("Start(%s) error = %v", email, err)
				return
			}
			s.Lock()
			defer s.Unlock()
			if _, err := s.Return.SetField(calculator.Line1a, "100"); err != nil {
				t.Errorf("SetField() error = %v", err)
			}
		}(email)
	}
	wg.Wait()

	if m.Len() != len(emails) {
		t.Errorf("Len() = %d, want %d", m.Len(), len(emails))
	}
}
