package formgraph

import (
	"github.com/shopspring/decimal"
)

// FieldID is the stable identifier of a line, such as "line11a".
type FieldID string

// Kind distinguishes user-editable fields from computed ones.
type Kind int

const (
	Leaf Kind = iota
	Derived
)

func (k Kind) String() string {
	if k == Derived {
		return "derived"
	}
	return "leaf"
}

// Signal is the secondary output of a balance derivation.
type Signal int

const (
	SignalNone Signal = iota
	SignalSurplus
	SignalDeficit
	SignalExact
)

func (s Signal) String() string {
	switch s {
	case SignalSurplus:
		return "surplus"
	case SignalDeficit:
		return "deficit"
	case SignalExact:
		return "exact"
	}
	return "none"
}

// SignalOf classifies a signed difference.
func SignalOf(d decimal.Decimal) Signal {
	switch d.Sign() {
	case 1:
		return SignalSurplus
	case -1:
		return SignalDeficit
	}
	return SignalExact
}

// Values gives a derivation read access to the fields it declared.
type Values interface {
	Value(id FieldID) decimal.Decimal
}

// Rule derives a value from its inputs.
type Rule struct {
	Inputs  []FieldID
	Compute func(v Values) decimal.Decimal
}

// SignalRule derives a value and a tri-state signal from its inputs.
type SignalRule struct {
	Inputs  []FieldID
	Compute func(v Values) (decimal.Decimal, Signal)
}
