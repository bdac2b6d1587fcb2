package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Ledger is one of the sub-ledgers a return's lines are grouped into.
type Ledger string

const (
	LedgerIncome     Ledger = "income"
	LedgerDeductions Ledger = "deductions" // deductions, tax and credits
	LedgerPayments   Ledger = "payments"
	LedgerIndiana    Ledger = "indiana"
)

// Ledgers lists the ledgers in form order.
var Ledgers = []Ledger{LedgerIncome, LedgerDeductions, LedgerPayments, LedgerIndiana}

// FormState is the full set of line values of one return. Lines are keyed
// by their form identifier ("line11a", "indianaLine7") within a ledger.
type FormState struct {
	Profile FilingProfile
	Lines   map[Ledger]map[string]decimal.Decimal
}

// NewFormState returns an empty state for the profile.
func NewFormState(profile FilingProfile) FormState {
	return FormState{
		Profile: profile,
		Lines:   make(map[Ledger]map[string]decimal.Decimal),
	}
}

// Set records a line value in a ledger.
func (s *FormState) Set(ledger Ledger, id string, value decimal.Decimal) {
	if s.Lines == nil {
		s.Lines = make(map[Ledger]map[string]decimal.Decimal)
	}
	lines, ok := s.Lines[ledger]
	if !ok {
		lines = make(map[string]decimal.Decimal)
		s.Lines[ledger] = lines
	}
	lines[id] = value
}

// Value looks a line up in any ledger.
func (s FormState) Value(id string) (decimal.Decimal, bool) {
	for _, lines := range s.Lines {
		if v, ok := lines[id]; ok {
			return v, true
		}
	}
	return decimal.Zero, false
}

// Flatten returns every line value in one map.
func (s FormState) Flatten() map[string]decimal.Decimal {
	flat := make(map[string]decimal.Decimal)
	for _, lines := range s.Lines {
		for id, v := range lines {
			flat[id] = v
		}
	}
	return flat
}

// IDs returns the line identifiers of a ledger in sorted order.
func (s FormState) IDs(ledger Ledger) []string {
	ids := make([]string, 0, len(s.Lines[ledger]))
	for id := range s.Lines[ledger] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Equal reports whether two states have the same profile and identical
// line values.
func (s FormState) Equal(other FormState) bool {
	if !s.Profile.Equal(other.Profile) {
		return false
	}
	a, b := s.Flatten(), other.Flatten()
	if len(a) != len(b) {
		return false
	}
	for id, v := range a {
		w, ok := b[id]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}
