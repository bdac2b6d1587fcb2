package presenter

import (
	"github.com/mmynk/taxwiser/internal/calculator"
	"github.com/mmynk/taxwiser/internal/formgraph"
	"github.com/mmynk/taxwiser/internal/models"
	"github.com/mmynk/taxwiser/internal/money"
)

// FieldView is one line as the browser receives it.
type FieldView struct {
	ID       string
	Ledger   models.Ledger
	Editable bool
	// Text is "1234.50" for editable inputs and "$1,234.50" for computed
	// lines.
	Text   string
	Signal string // empty unless the line emits a refund/owed signal
}

// Field renders one line of a return.
func Field(line calculator.Line) FieldView {
	v := FieldView{
		ID:       string(line.ID),
		Ledger:   line.Ledger,
		Editable: line.Kind == formgraph.Leaf,
	}
	if v.Editable {
		v.Text = money.Plain(line.Value)
	} else {
		v.Text = money.Currency(line.Value)
	}
	if line.Signal != formgraph.SignalNone {
		v.Signal = line.Signal.String()
	}
	return v
}

// AllFields renders every line of a return in declaration order.
func AllFields(r *calculator.Return) []FieldView {
	lines := r.Lines()
	out := make([]FieldView, 0, len(lines))
	for _, l := range lines {
		out = append(out, Field(l))
	}
	return out
}

// Fields renders the given lines in the order given. Ids the return does
// not carry are skipped; no ids yields an empty slice.
func Fields(r *calculator.Return, ids ...formgraph.FieldID) []FieldView {
	out := make([]FieldView, 0, len(ids))
	if len(ids) == 0 {
		return out
	}
	byID := make(map[formgraph.FieldID]calculator.Line)
	for _, l := range r.Lines() {
		byID[l.ID] = l
	}
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, Field(l))
		}
	}
	return out
}
