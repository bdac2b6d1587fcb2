package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/taxwiser/internal/formgraph"
	"github.com/mmynk/taxwiser/internal/taxrules"
)

// declareIndiana adds the IT-40 lines. On a combined return line 1 mirrors
// federal AGI, the only edge between the two forms; otherwise the filer
// enters it.
func declareIndiana(b *formgraph.Builder, combined bool, stateRate, countyRate decimal.Decimal) {
	if combined {
		b.Derive(indiana, IndianaLine1, formgraph.Copy(Line11a))
	} else {
		b.Leaf(indiana, IndianaLine1)
	}
	b.Leaf(indiana,
		IndianaLine2, IndianaLine4, IndianaLine6, IndianaLine10,
		IndianaLine12, IndianaLine13, IndianaLine17, IndianaLine19, IndianaLine20,
		IndianaLine24, IndianaLine25,
	)

	b.Derive(indiana, IndianaLine3, formgraph.Sum(IndianaLine1, IndianaLine2))
	b.Derive(indiana, IndianaLine5, formgraph.Diff(IndianaLine3, IndianaLine4))
	b.Derive(indiana, IndianaLine7, formgraph.Diff(IndianaLine5, IndianaLine6))
	b.Derive(indiana, IndianaLine8, formgraph.Rule{
		Inputs: []formgraph.FieldID{IndianaLine7},
		Compute: func(v formgraph.Values) decimal.Decimal {
			return taxrules.StateTax(v.Value(IndianaLine7), stateRate)
		},
	})
	b.Derive(indiana, IndianaLine9, formgraph.Rule{
		Inputs: []formgraph.FieldID{IndianaLine7},
		Compute: func(v formgraph.Values) decimal.Decimal {
			return taxrules.CountyTax(v.Value(IndianaLine7), countyRate)
		},
	})
	b.Derive(indiana, IndianaLine11, formgraph.Sum(IndianaLine8, IndianaLine9, IndianaLine10))
	b.Derive(indiana, IndianaLine14, formgraph.Sum(IndianaLine12, IndianaLine13))
	b.Derive(indiana, IndianaLine15, formgraph.Copy(IndianaLine11))
	b.DeriveSignal(indiana, IndianaLine16, formgraph.SignedBalance(IndianaLine14, IndianaLine15))
	b.Derive(indiana, IndianaLine18, formgraph.Diff(IndianaLine16, IndianaLine17))
	b.Derive(indiana, IndianaLine21, formgraph.Diff(IndianaLine18, IndianaLine19, IndianaLine20))
	b.Derive(indiana, IndianaLine23, formgraph.Diff(IndianaLine15, IndianaLine14))
	b.Derive(indiana, IndianaLine26, formgraph.Sum(IndianaLine23, IndianaLine24, IndianaLine25))
}
