package presenter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/taxwiser/internal/calculator"
	"github.com/mmynk/taxwiser/internal/money"
)

// Narrative writes the plain-English summary of a return in Markdown.
func Narrative(r *calculator.Return) string {
	summary := r.Summary()
	profile := r.Profile()
	var b strings.Builder

	if f := summary.Federal; f != nil {
		b.WriteString("Based on your entries, here's your tax summary:\n\n")
		fmt.Fprintf(&b, "You reported **%s** in total income. ", money.Currency(f.Income))
		if f.Itemizing {
			fmt.Fprintf(&b, "You're itemizing deductions totaling **%s**. ", money.Currency(f.Deductions))
		} else {
			fmt.Fprintf(&b, "You're taking the standard deduction total of **%s** (%s). ",
				money.Currency(f.Deductions), StatusLabel(profile.FilingStatus))
		}
		fmt.Fprintf(&b, "This brings your taxable income to **%s**.\n\n", money.Currency(f.Taxable))
		fmt.Fprintf(&b, "Your estimated federal tax is **%s**. ", money.Currency(f.Tax))
		if summary.State != nil {
			writeIndianaTax(&b, r, summary.State.IndianaTax)
		}
		fmt.Fprintf(&b, "\n\nWith all credits and withholding totaling **%s**, ", money.Currency(f.Payments))
		if f.Final.IsPositive() {
			fmt.Fprintf(&b, "you should receive a **refund of %s**!", money.Currency(f.Final))
		} else {
			fmt.Fprintf(&b, "you owe **%s**.", money.Currency(f.Final.Abs()))
		}
	}

	if s := summary.State; s != nil {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		if summary.Federal == nil {
			writeIndianaTax(&b, r, s.IndianaTax)
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Your total tax picture is complete! You have a federal liability of **%s** and an Indiana liability of **%s**.\n\n",
			money.Currency(s.FederalTax), money.Currency(s.IndianaTax))
		if s.Final.IsPositive() {
			fmt.Fprintf(&b, "Taking into account all your federal and state credits and withholding, you are due a total refund of **%s**!",
				money.Currency(s.Final))
		} else {
			fmt.Fprintf(&b, "Taking into account all your federal and state credits and withholding, your total balance due is **%s**.",
				money.Currency(s.Final.Abs()))
		}
	}
	return b.String()
}

func writeIndianaTax(b *strings.Builder, r *calculator.Return, tax decimal.Decimal) {
	fmt.Fprintf(b, "Your Indiana state tax (%s%% + %s%% county) is **%s**. ",
		r.StateRate().Mul(decimal.NewFromInt(100)).StringFixed(2),
		r.Profile().CountyRate.String(),
		money.Currency(tax))
}

// NarrativeHTML renders Narrative as HTML.
func NarrativeHTML(r *calculator.Return) (string, error) {
	return HTML(Narrative(r))
}
