package taxrules

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/taxwiser/internal/models"
)

// WorksheetThreshold is the taxable income at which the Tax Computation
// Worksheet replaces the marginal brackets.
var WorksheetThreshold = decimal.NewFromInt(100000)

// Bracket taxes income up to Max at Rate. A zero Max is open-ended.
type Bracket struct {
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// WorksheetBand is one row of the Tax Computation Worksheet: income in
// [Min, Max) is taxed as income × Rate − Subtract. A zero Max is open-ended.
type WorksheetBand struct {
	Min      decimal.Decimal
	Max      decimal.Decimal
	Rate     decimal.Decimal
	Subtract decimal.Decimal
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	singleBrackets = []Bracket{
		{d("11925"), d("0.10")},
		{d("48475"), d("0.12")},
		{d("103350"), d("0.22")},
		{d("197300"), d("0.24")},
		{d("250525"), d("0.32")},
		{d("626350"), d("0.35")},
		{decimal.Zero, d("0.37")},
	}
	jointBrackets = []Bracket{
		{d("23850"), d("0.10")},
		{d("96950"), d("0.12")},
		{d("206700"), d("0.22")},
		{d("394600"), d("0.24")},
		{d("501050"), d("0.32")},
		{d("751600"), d("0.35")},
		{decimal.Zero, d("0.37")},
	}
	hohBrackets = []Bracket{
		{d("17000"), d("0.10")},
		{d("64850"), d("0.12")},
		{d("103350"), d("0.22")},
		{d("197300"), d("0.24")},
		{d("250500"), d("0.32")},
		{d("626350"), d("0.35")},
		{decimal.Zero, d("0.37")},
	}
)

var worksheets = map[models.FilingStatus][]WorksheetBand{
	models.StatusSingle: {
		{d("100000"), d("103350"), d("0.22"), d("5086")},
		{d("103350"), d("197300"), d("0.24"), d("7153")},
		{d("197300"), d("250525"), d("0.32"), d("22937")},
		{d("250525"), d("626350"), d("0.35"), d("30452.75")},
		{d("626350"), decimal.Zero, d("0.37"), d("42979.75")},
	},
	models.StatusMarried: jointWorksheet,
	models.StatusQSS:     jointWorksheet,
	models.StatusHOH: {
		{d("100000"), d("103350"), d("0.22"), d("6825")},
		{d("103350"), d("197300"), d("0.24"), d("8892")},
		{d("197300"), d("250500"), d("0.32"), d("24676")},
		{d("250500"), d("626350"), d("0.35"), d("32191")},
		{d("626350"), decimal.Zero, d("0.37"), d("44718")},
	},
	models.StatusMFS: {
		{d("100000"), d("103350"), d("0.22"), d("5086")},
		{d("103350"), d("197300"), d("0.24"), d("7153")},
		{d("197300"), d("250525"), d("0.32"), d("22937")},
		{d("250525"), d("375800"), d("0.35"), d("30452.75")},
		{d("375800"), decimal.Zero, d("0.37"), d("37968.75")},
	},
}

var jointWorksheet = []WorksheetBand{
	{d("100000"), d("206700"), d("0.22"), d("10172")},
	{d("206700"), d("394600"), d("0.24"), d("14306")},
	{d("394600"), d("501050"), d("0.32"), d("45874")},
	{d("501050"), d("751600"), d("0.35"), d("60905.50")},
	{d("751600"), decimal.Zero, d("0.37"), d("75937.50")},
}

// UsesWorksheet reports whether taxable income is computed with the
// worksheet. The comparison is strictly taxable < 100000 for brackets.
func UsesWorksheet(taxable decimal.Decimal) bool {
	return taxable.GreaterThanOrEqual(WorksheetThreshold)
}

// FederalTax computes line 16. Below the threshold the marginal brackets
// apply and the result is rounded to whole dollars; at or above it the
// worksheet applies and the result is left unrounded.
func FederalTax(taxable decimal.Decimal, status models.FilingStatus) decimal.Decimal {
	if !taxable.IsPositive() {
		return decimal.Zero
	}
	var tax decimal.Decimal
	if UsesWorksheet(taxable) {
		tax = worksheetTax(taxable, status)
	} else {
		tax = marginalTax(taxable, Brackets(status)).Round(0)
	}
	return decimal.Max(decimal.Zero, tax)
}

// Brackets returns the marginal ladder for a status. Unknown statuses use
// the single ladder.
func Brackets(status models.FilingStatus) []Bracket {
	switch status {
	case models.StatusSingle, models.StatusMFS:
		return singleBrackets
	case models.StatusMarried, models.StatusQSS:
		return jointBrackets
	case models.StatusHOH:
		return hohBrackets
	}
	slog.Warn("Unknown filing status, using single brackets", "status", status)
	return singleBrackets
}

// Worksheet returns the worksheet rows for a status, nil if there are none.
func Worksheet(status models.FilingStatus) []WorksheetBand {
	return worksheets[status]
}

func marginalTax(taxable decimal.Decimal, brackets []Bracket) decimal.Decimal {
	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		upper := taxable
		if !b.Max.IsZero() && b.Max.LessThan(taxable) {
			upper = b.Max
		}
		if upper.GreaterThan(lower) {
			tax = tax.Add(upper.Sub(lower).Mul(b.Rate))
		}
		if b.Max.IsZero() || taxable.LessThanOrEqual(b.Max) {
			break
		}
		lower = b.Max
	}
	return tax
}

func worksheetTax(taxable decimal.Decimal, status models.FilingStatus) decimal.Decimal {
	bands, ok := worksheets[status]
	if !ok {
		slog.Error("No worksheet table for filing status", "status", status)
		return decimal.Zero
	}
	for _, b := range bands {
		if taxable.LessThan(b.Min) {
			continue
		}
		if b.Max.IsZero() || taxable.LessThan(b.Max) {
			return taxable.Mul(b.Rate).Sub(b.Subtract)
		}
	}
	slog.Error("Taxable income outside worksheet bands", "status", status, "taxable", taxable.String())
	return decimal.Zero
}
