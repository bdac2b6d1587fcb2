package formgraph

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/taxwiser/internal/money"
)

// Form holds the current values of one graph instance.
type Form struct {
	graph   *Graph
	values  []decimal.Decimal
	signals []Signal
}

// NewForm returns a form with every leaf at zero and every derived field
// computed from those zeros.
func NewForm(g *Graph) *Form {
	f := &Form{
		graph:   g,
		values:  make([]decimal.Decimal, len(g.nodes)),
		signals: make([]Signal, len(g.nodes)),
	}
	f.Recompute()
	return f
}

// Graph returns the declarations the form evaluates.
func (f *Form) Graph() *Graph {
	return f.graph
}

// SetLeaf parses raw user input into a leaf field. Anything that is not a
// number becomes zero; only unknown or derived fields are errors.
func (f *Form) SetLeaf(id FieldID, raw string) error {
	return f.Set(id, money.Parse(raw))
}

// Set writes a leaf field, rounded to cents. It does not recompute.
func (f *Form) Set(id FieldID, value decimal.Decimal) error {
	i, ok := f.graph.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, id)
	}
	if f.graph.nodes[i].kind == Derived {
		return fmt.Errorf("%w: %q", ErrDerivedField, id)
	}
	f.values[i] = money.Cents(value)
	return nil
}

// Value returns the current value of a field, zero if it is unknown.
func (f *Form) Value(id FieldID) decimal.Decimal {
	i, ok := f.graph.index[id]
	if !ok {
		return decimal.Zero
	}
	return f.values[i]
}

// Signal returns the signal last emitted by a derived field.
func (f *Form) Signal(id FieldID) Signal {
	i, ok := f.graph.index[id]
	if !ok {
		return SignalNone
	}
	return f.signals[i]
}

// Recompute re-evaluates every derived field downstream of the given fields,
// or every derived field when none are given. It returns the fields whose
// value or signal changed, in evaluation order.
func (f *Form) Recompute(from ...FieldID) []FieldID {
	var targets []int
	if len(from) == 0 {
		targets = f.graph.derived()
	} else {
		targets = f.graph.downstream(from)
	}

	var changed []FieldID
	for _, i := range targets {
		n := f.graph.nodes[i]
		value, signal := n.compute(scope{form: f, node: n})
		value = money.Cents(value)
		if !value.Equal(f.values[i]) || signal != f.signals[i] {
			changed = append(changed, n.id)
		}
		f.values[i] = value
		f.signals[i] = signal
	}
	return changed
}

// Apply parses a batch of raw leaf edits and recomputes what they affect.
// Edits are validated before any is written.
func (f *Form) Apply(edits map[FieldID]string) ([]FieldID, error) {
	ids := make([]FieldID, 0, len(edits))
	for id := range edits {
		kind, ok := f.graph.Kind(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, id)
		}
		if kind == Derived {
			return nil, fmt.Errorf("%w: %q", ErrDerivedField, id)
		}
		ids = append(ids, id)
	}
	for _, id := range ids {
		f.values[f.graph.index[id]] = money.Parse(edits[id])
	}
	return f.Recompute(ids...), nil
}

// Snapshot is a full export of a form's values.
type Snapshot struct {
	Values  map[FieldID]decimal.Decimal
	Signals map[FieldID]Signal
}

// Snapshot exports every field value and every emitted signal.
func (f *Form) Snapshot() Snapshot {
	s := Snapshot{
		Values:  make(map[FieldID]decimal.Decimal, len(f.values)),
		Signals: make(map[FieldID]Signal),
	}
	for i, n := range f.graph.nodes {
		s.Values[n.id] = f.values[i]
		if f.signals[i] != SignalNone {
			s.Signals[n.id] = f.signals[i]
		}
	}
	return s
}

// Restore replaces every leaf with the snapshot's value (zero when absent)
// and recomputes every derived field. Derived values in the snapshot and
// unknown ids are ignored.
func (f *Form) Restore(s Snapshot) {
	for i, n := range f.graph.nodes {
		if n.kind != Leaf {
			continue
		}
		f.values[i] = money.Cents(s.Values[n.id])
	}
	f.Recompute()
}

// scope restricts a derivation to the fields it declared.
type scope struct {
	form *Form
	node *node
}

func (s scope) Value(id FieldID) decimal.Decimal {
	if _, ok := s.node.allowed[id]; !ok {
		panic(fmt.Sprintf("formgraph: field %q read undeclared input %q", s.node.id, id))
	}
	return s.form.values[s.form.graph.index[id]]
}
