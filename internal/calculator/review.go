package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/taxwiser/internal/formgraph"
	"github.com/mmynk/taxwiser/internal/money"
)

// FederalSummary is the Form 1040 bottom line.
type FederalSummary struct {
	Income     decimal.Decimal `json:"income"`     // line 9
	Deductions decimal.Decimal `json:"deductions"` // line 14
	Taxable    decimal.Decimal `json:"taxable"`    // line 15
	Tax        decimal.Decimal `json:"tax"`        // line 24
	Payments   decimal.Decimal `json:"payments"`   // line 33
	Final      decimal.Decimal `json:"final"`      // payments - tax; positive is a refund
	Itemizing  bool            `json:"itemizing"`
}

// StateSummary combines the federal and Indiana liabilities.
type StateSummary struct {
	FederalAGI     decimal.Decimal `json:"federalAgi"` // IT-40 line 1
	FederalTax     decimal.Decimal `json:"federalTax"`
	IndianaTax     decimal.Decimal `json:"indianaTax"` // IT-40 line 11
	TotalLiability decimal.Decimal `json:"totalLiability"`
	TotalCredits   decimal.Decimal `json:"totalCredits"` // line 33 + IT-40 line 14
	Final          decimal.Decimal `json:"final"`        // credits - liability; positive is a refund
}

// Summary holds the summaries that apply to the return's tax type.
type Summary struct {
	Federal *FederalSummary `json:"federal,omitempty"`
	State   *StateSummary   `json:"state,omitempty"`
}

// Summary computes the federal summary for federal returns and the combined
// state summary for Indiana returns.
func (r *Return) Summary() Summary {
	var s Summary
	if r.profile.TaxType.IncludesFederal() {
		f := &FederalSummary{
			Income:     r.Value(Line9),
			Deductions: r.Value(Line14),
			Taxable:    r.Value(Line15),
			Tax:        r.Value(Line24),
			Payments:   r.Value(Line33),
			Itemizing:  checked(r.Value(Itemize)),
		}
		f.Final = f.Payments.Sub(f.Tax)
		s.Federal = f
	}
	if r.profile.TaxType.IncludesIndiana() {
		// Line 1 copies 1040 line 11a on combined returns; on Indiana-only
		// returns it is the federal AGI the filer entered.
		st := &StateSummary{
			FederalAGI:   r.Value(IndianaLine1),
			FederalTax:   r.Value(Line24),
			IndianaTax:   r.Value(IndianaLine11),
			TotalCredits: r.Value(Line33).Add(r.Value(IndianaLine14)),
		}
		st.TotalLiability = st.FederalTax.Add(st.IndianaTax)
		st.Final = st.TotalCredits.Sub(st.TotalLiability)
		s.State = st
	}
	return s
}

// PreCheck returns warnings about likely omissions. An empty result means
// every check passed.
func (r *Return) PreCheck() []string {
	var warnings []string
	if r.profile.TaxType.IncludesFederal() {
		totalIncome := r.Value(Line9)
		wages := r.Value(Line1z)
		if totalIncome.IsZero() {
			warnings = append(warnings, "No income reported. Make sure to enter all sources of income.")
		}
		if wages.IsZero() && totalIncome.IsPositive() {
			warnings = append(warnings, "You have income but no wages. This is fine if you're retired or self-employed.")
		}
		if r.Value(Line25d).IsZero() {
			warnings = append(warnings, "No federal withholding entered. If you had taxes withheld from paychecks, make sure to enter this amount.")
		}
		if checked(r.Value(Itemize)) && r.Value(ScheduleA).LessThan(r.Value(Line12e)) {
			warnings = append(warnings, fmt.Sprintf(
				"Your itemized deductions (%s) are less than the standard deduction (%s). Consider using the standard deduction instead.",
				money.Currency(r.Value(ScheduleA)), money.Currency(r.Value(Line12e)),
			))
		}
	}
	if r.profile.TaxType.IncludesIndiana() && r.Value(IndianaLine1).IsZero() {
		warnings = append(warnings, "Indiana line 1 is empty. Enter your federal adjusted gross income to compute Indiana tax.")
	}
	return warnings
}

// Advice compares itemized deductions with the standard deduction.
type Advice struct {
	Itemized       decimal.Decimal
	Standard       decimal.Decimal
	PreferItemized bool
	Message        string
}

// DeductionAdvice returns advice once there is income and at least one
// Schedule A amount; ok is false otherwise.
func (r *Return) DeductionAdvice() (advice Advice, ok bool) {
	if !r.profile.TaxType.IncludesFederal() || r.Value(Line11a).IsZero() {
		return Advice{}, false
	}
	itemized := r.Value(ScheduleA)
	standard := r.Value(Line12e)
	switch {
	case itemized.GreaterThan(standard):
		return Advice{
			Itemized:       itemized,
			Standard:       standard,
			PreferItemized: true,
			Message: fmt.Sprintf(
				"Your Itemized Deductions (%s) are currently greater than your Standard Deduction (%s). You should consider itemizing!",
				money.Currency(itemized), money.Currency(standard),
			),
		}, true
	case itemized.IsPositive():
		return Advice{
			Itemized: itemized,
			Standard: standard,
			Message: fmt.Sprintf(
				"Your Standard Deduction (%s) is still better than itemizing (%s). We'll keep using the Standard amount.",
				money.Currency(standard), money.Currency(itemized),
			),
		}, true
	}
	return Advice{}, false
}

// Totals is the running position shown while the filer types.
type Totals struct {
	Tax      decimal.Decimal
	Payments decimal.Decimal
	Balance  decimal.Decimal // payments - tax
	Signal   formgraph.Signal
}

// LiveTotals sums tax and payments across every form on the return.
func (r *Return) LiveTotals() Totals {
	var t Totals
	if r.profile.TaxType.IncludesFederal() {
		t.Tax = t.Tax.Add(r.Value(Line24))
		t.Payments = t.Payments.Add(r.Value(Line33))
	}
	if r.profile.TaxType.IncludesIndiana() {
		t.Tax = t.Tax.Add(r.Value(IndianaLine11))
		t.Payments = t.Payments.Add(r.Value(IndianaLine14))
	}
	t.Balance = t.Payments.Sub(t.Tax)
	t.Signal = formgraph.SignalOf(t.Balance)
	return t
}
