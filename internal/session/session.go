// Package session keeps one in-progress return per signed-in filer.
//
// A session is created at intake, when the filing profile is chosen, and
// discarded at logout or when the filer starts over. The profile never
// changes inside a session: choosing a different filing status starts a
// new one.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmynk/taxwiser/internal/calculator"
	"github.com/mmynk/taxwiser/internal/models"
)

var ErrNoSession = errors.New("no return in progress")

// Session is one filer's working return. Lock it while reading or editing
// the return; request handlers for the same filer may run concurrently.
type Session struct {
	sync.Mutex

	Email     string
	Name      string
	Return    *calculator.Return
	Section   string
	StartedAt time.Time
}

// Manager owns every live session, keyed by email.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     []calculator.Option
}

// NewManager creates an empty manager. The options are applied to every
// return it builds.
func NewManager(opts ...calculator.Option) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Start begins a fresh return for the filer, replacing any session already
// open for the email.
func (m *Manager) Start(email, name string, profile models.FilingProfile) (*Session, error) {
	r, err := calculator.NewReturn(profile, m.opts...)
	if err != nil {
		return nil, err
	}
	return m.install(email, name, r), nil
}

// Resume opens a session from a saved return, replacing any open one.
func (m *Manager) Resume(email, name string, state models.FormState) (*Session, error) {
	r, err := calculator.NewReturn(state.Profile, m.opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Restore(state); err != nil {
		return nil, fmt.Errorf("failed to restore return: %w", err)
	}
	return m.install(email, name, r), nil
}

func (m *Manager) install(email, name string, r *calculator.Return) *Session {
	s := &Session{
		Email:     key(email),
		Name:      name,
		Return:    r,
		StartedAt: time.Now(),
	}

	m.mu.Lock()
	_, replaced := m.sessions[s.Email]
	m.sessions[s.Email] = s
	m.mu.Unlock()

	slog.Info("Session started",
		"email", s.Email,
		"tax_type", r.Profile().TaxType,
		"filing_status", r.Profile().FilingStatus,
		"replaced", replaced,
	)
	return s
}

// Get returns the open session for an email.
func (m *Manager) Get(email string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[key(email)]
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

// End discards the session for an email, reporting whether one was open.
func (m *Manager) End(email string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(email)
	if _, ok := m.sessions[k]; !ok {
		return false
	}
	delete(m.sessions, k)
	slog.Info("Session ended", "email", k)
	return true
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
