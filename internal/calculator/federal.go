package calculator

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/taxwiser/internal/formgraph"
	"github.com/mmynk/taxwiser/internal/models"
	"github.com/mmynk/taxwiser/internal/taxrules"
)

var (
	income     = string(models.LedgerIncome)
	deductions = string(models.LedgerDeductions)
	payments   = string(models.LedgerPayments)
	indiana    = string(models.LedgerIndiana)
)

// declareFederal adds the Form 1040 lines.
//
// Lines not listed as derived below are entered by the filer. 2a, 3a, 4a,
// 5a, 6a and 1i are informational and feed nothing.
func declareFederal(b *formgraph.Builder, status models.FilingStatus) {
	b.Leaf(income,
		Line1a, Line1b, Line1c, Line1d, Line1e, Line1f, Line1g, Line1h, Line1i,
		Line2a, Line2b, Line3a, Line3b, Line4a, Line4b, Line5a, Line5b, Line6a, Line6b,
		Line7, Line8, Line10,
	)
	b.Derive(income, Line1z, formgraph.Sum(Line1a, Line1b, Line1c, Line1d, Line1e, Line1f, Line1g, Line1h))
	b.Derive(income, Line9, formgraph.Sum(Line1z, Line2b, Line3b, Line4b, Line5b, Line6b, Line7, Line8))
	b.Derive(income, Line11a, formgraph.Diff(Line9, Line10))

	b.Leaf(deductions,
		Line12d1, Line12d2, Line12dSpouse1, Line12dSpouse2, Itemize,
		ItemizedMedical, ItemizedStateTaxes, ItemizedMortgage, ItemizedCharitable,
		Line13a, Line13b, Line17, Line19, Line20, Line23,
	)
	b.Derive(deductions, Line11b, formgraph.Copy(Line11a))
	b.Derive(deductions, Line12e, standardDeduction(status))
	b.Derive(deductions, ScheduleA, formgraph.Sum(ItemizedMedical, ItemizedStateTaxes, ItemizedMortgage, ItemizedCharitable))
	b.Derive(deductions, Line12, formgraph.Rule{
		Inputs: []formgraph.FieldID{Itemize, Line12e, ScheduleA},
		Compute: func(v formgraph.Values) decimal.Decimal {
			if checked(v.Value(Itemize)) {
				return v.Value(ScheduleA)
			}
			return v.Value(Line12e)
		},
	})
	b.Derive(deductions, Line14, formgraph.Sum(Line12, Line13a, Line13b))
	b.Derive(deductions, Line15, formgraph.Diff(Line11b, Line14))
	b.Derive(deductions, Line16, federalTax(status))
	b.Derive(deductions, Line18, formgraph.Sum(Line16, Line17))
	b.Derive(deductions, Line21, formgraph.Sum(Line19, Line20))
	b.Derive(deductions, Line22, formgraph.Diff(Line18, Line21))
	b.Derive(deductions, Line24, formgraph.Sum(Line22, Line23))

	b.Leaf(payments,
		Line25a, Line25b, Line25c,
		Line26, Line27, Line28, Line29, Line30, Line31,
		Line36,
	)
	b.Derive(payments, Line25d, formgraph.Sum(Line25a, Line25b, Line25c))
	b.Derive(payments, Line32, formgraph.Sum(Line26, Line27, Line28, Line29, Line30, Line31))
	b.Derive(payments, Line33, formgraph.Sum(Line25d, Line32))
	b.DeriveSignal(payments, Line34, formgraph.Balance(Line33, Line24))
	b.Derive(payments, Line35a, formgraph.Diff(Line34, Line36))
	b.Derive(payments, Line37, formgraph.Diff(Line24, Line33))
}

// standardDeduction is line 12e: the chart amount for the filing status and
// the number of 12d boxes checked.
func standardDeduction(status models.FilingStatus) formgraph.Rule {
	return formgraph.Rule{
		Inputs: []formgraph.FieldID{Line12d1, Line12d2, Line12dSpouse1, Line12dSpouse2},
		Compute: func(v formgraph.Values) decimal.Decimal {
			if status == "" {
				slog.Error("Filing status is not set, standard deduction is zero")
				return decimal.Zero
			}
			flags := models.AgeFlags{
				Self65:      checked(v.Value(Line12d1)),
				SelfBlind:   checked(v.Value(Line12d2)),
				Spouse65:    checked(v.Value(Line12dSpouse1)),
				SpouseBlind: checked(v.Value(Line12dSpouse2)),
			}
			amount, err := taxrules.StandardDeduction(status, taxrules.CountBoxes(status, flags))
			if err != nil {
				slog.Error("Failed to look up standard deduction", "status", status, "error", err)
				return decimal.Zero
			}
			return amount
		},
	}
}

// federalTax is line 16.
func federalTax(status models.FilingStatus) formgraph.Rule {
	return formgraph.Rule{
		Inputs: []formgraph.FieldID{Line15},
		Compute: func(v formgraph.Values) decimal.Decimal {
			if status == "" {
				slog.Error("Filing status is not set, federal tax is zero")
				return decimal.Zero
			}
			return taxrules.FederalTax(v.Value(Line15), status)
		},
	}
}

func checked(v decimal.Decimal) bool {
	return !v.IsZero()
}
