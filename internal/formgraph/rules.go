package formgraph

import (
	"github.com/shopspring/decimal"
)

// Sum adds its inputs. No clamp is applied.
func Sum(ids ...FieldID) Rule {
	return Rule{
		Inputs: ids,
		Compute: func(v Values) decimal.Decimal {
			total := decimal.Zero
			for _, id := range ids {
				total = total.Add(v.Value(id))
			}
			return total
		},
	}
}

// Diff is max(0, from - Σoffsets): income minus an offset is never negative.
func Diff(from FieldID, offsets ...FieldID) Rule {
	net := Net(from, offsets...)
	return Rule{
		Inputs: net.Inputs,
		Compute: func(v Values) decimal.Decimal {
			return decimal.Max(decimal.Zero, net.Compute(v))
		},
	}
}

// Net is from - Σoffsets, signed.
func Net(from FieldID, offsets ...FieldID) Rule {
	return Rule{
		Inputs: append([]FieldID{from}, offsets...),
		Compute: func(v Values) decimal.Decimal {
			d := v.Value(from)
			for _, id := range offsets {
				d = d.Sub(v.Value(id))
			}
			return d
		},
	}
}

// Copy mirrors another field.
func Copy(id FieldID) Rule {
	return Rule{
		Inputs:  []FieldID{id},
		Compute: func(v Values) decimal.Decimal { return v.Value(id) },
	}
}

// Scale multiplies a field by a constant factor.
func Scale(id FieldID, factor decimal.Decimal) Rule {
	return Rule{
		Inputs:  []FieldID{id},
		Compute: func(v Values) decimal.Decimal { return v.Value(id).Mul(factor) },
	}
}

// Balance is max(0, credit - debit), signalling the sign of credit - debit.
// A refund line uses it with payments as credit and tax as debit.
func Balance(credit, debit FieldID) SignalRule {
	return SignalRule{
		Inputs: []FieldID{credit, debit},
		Compute: func(v Values) (decimal.Decimal, Signal) {
			d := v.Value(credit).Sub(v.Value(debit))
			return decimal.Max(decimal.Zero, d), SignalOf(d)
		},
	}
}

// SignedBalance is credit - debit, unclamped, signalling its own sign.
func SignedBalance(credit, debit FieldID) SignalRule {
	return SignalRule{
		Inputs: []FieldID{credit, debit},
		Compute: func(v Values) (decimal.Decimal, Signal) {
			d := v.Value(credit).Sub(v.Value(debit))
			return d, SignalOf(d)
		},
	}
}
