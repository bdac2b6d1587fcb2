package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/taxwiser/internal/formgraph"
	"github.com/mmynk/taxwiser/internal/models"
	"github.com/mmynk/taxwiser/internal/taxrules"
)

var ErrProfileMismatch = errors.New("saved return belongs to a different filing profile")

type options struct {
	stateRate decimal.Decimal
}

// Option configures a Return.
type Option func(*options)

// WithStateRate overrides the Indiana flat rate.
func WithStateRate(rate decimal.Decimal) Option {
	return func(o *options) {
		o.stateRate = rate
	}
}

// Return is one filer's tax return: the form graph for the profile's tax
// type and its current values. It is not safe for concurrent use.
type Return struct {
	profile   models.FilingProfile
	form      *formgraph.Form
	stateRate decimal.Decimal
}

// Line is one field of a return with its current value.
type Line struct {
	ID     formgraph.FieldID
	Ledger models.Ledger
	Kind   formgraph.Kind
	Value  decimal.Decimal
	Signal formgraph.Signal
}

// NewReturn builds an empty return for a profile. The 12d boxes start from
// the profile's age flags.
func NewReturn(profile models.FilingProfile, opts ...Option) (*Return, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filing profile: %w", err)
	}
	o := options{stateRate: taxrules.DefaultStateRate}
	for _, opt := range opts {
		opt(&o)
	}

	b := formgraph.NewBuilder()
	if profile.TaxType.IncludesFederal() {
		declareFederal(b, profile.FilingStatus)
	}
	if profile.TaxType.IncludesIndiana() {
		declareIndiana(b, profile.TaxType == models.TaxTypeCombined, o.stateRate, profile.CountyRate)
	}
	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build form graph: %w", err)
	}

	r := &Return{
		profile:   profile,
		form:      formgraph.NewForm(g),
		stateRate: o.stateRate,
	}
	if profile.TaxType.IncludesFederal() {
		r.seedAgeFlags()
	}
	return r, nil
}

func (r *Return) seedAgeFlags() {
	boxes := map[formgraph.FieldID]bool{
		Line12d1:       r.profile.AgeFlags.Self65,
		Line12d2:       r.profile.AgeFlags.SelfBlind,
		Line12dSpouse1: r.profile.AgeFlags.Spouse65,
		Line12dSpouse2: r.profile.AgeFlags.SpouseBlind,
	}
	var set []formgraph.FieldID
	for id, on := range boxes {
		if on {
			_ = r.form.Set(id, decimal.NewFromInt(1))
			set = append(set, id)
		}
	}
	if len(set) > 0 {
		r.form.Recompute(set...)
	}
}

// Profile returns the filing profile the return was built for.
func (r *Return) Profile() models.FilingProfile {
	return r.profile
}

// StateRate returns the Indiana flat rate in effect.
func (r *Return) StateRate() decimal.Decimal {
	return r.stateRate
}

// Has reports whether the return contains a field.
func (r *Return) Has(id formgraph.FieldID) bool {
	return r.form.Graph().Has(id)
}

// Value returns a field's current value, zero if the return lacks it.
func (r *Return) Value(id formgraph.FieldID) decimal.Decimal {
	return r.form.Value(id)
}

// Signal returns the refund/owed signal of a balance line.
func (r *Return) Signal(id formgraph.FieldID) formgraph.Signal {
	return r.form.Signal(id)
}

// Edit applies raw filer input to leaf fields and recomputes everything
// downstream. Checkbox fields accept "true", "on", "yes" or any non-zero
// number. It returns the derived fields that changed.
func (r *Return) Edit(edits map[formgraph.FieldID]string) ([]formgraph.FieldID, error) {
	normalized := make(map[formgraph.FieldID]string, len(edits))
	for id, raw := range edits {
		if IsCheckbox(id) {
			raw = checkboxInput(raw)
		}
		normalized[id] = raw
	}
	return r.form.Apply(normalized)
}

// SetField applies a single raw edit.
func (r *Return) SetField(id formgraph.FieldID, raw string) ([]formgraph.FieldID, error) {
	return r.Edit(map[formgraph.FieldID]string{id: raw})
}

func checkboxInput(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on", "yes", "checked", "x":
		return "1"
	case "", "false", "off", "no":
		return "0"
	}
	if d, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil && !d.IsZero() {
		return "1"
	}
	return "0"
}

// Lines returns every field in declaration order.
func (r *Return) Lines() []Line {
	g := r.form.Graph()
	ids := g.Fields()
	out := make([]Line, 0, len(ids))
	for _, id := range ids {
		kind, _ := g.Kind(id)
		group, _ := g.Group(id)
		out = append(out, Line{
			ID:     id,
			Ledger: models.Ledger(group),
			Kind:   kind,
			Value:  r.form.Value(id),
			Signal: r.form.Signal(id),
		})
	}
	return out
}

// Snapshot exports the profile and every line value.
func (r *Return) Snapshot() models.FormState {
	state := models.NewFormState(r.profile)
	g := r.form.Graph()
	snap := r.form.Snapshot()
	for _, id := range g.Fields() {
		group, _ := g.Group(id)
		state.Set(models.Ledger(group), string(id), snap.Values[id])
	}
	return state
}

// Restore replaces the return's values with a saved state. Only leaf values
// are taken from the state; every derived line is recomputed.
func (r *Return) Restore(state models.FormState) error {
	if !state.Profile.Equal(r.profile) {
		return ErrProfileMismatch
	}
	values := make(map[formgraph.FieldID]decimal.Decimal)
	for id, v := range state.Flatten() {
		values[formgraph.FieldID(id)] = v
	}
	r.form.Restore(formgraph.Snapshot{Values: values})
	return nil
}
