package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/mmynk/taxwiser/internal/calculator"
	"github.com/mmynk/taxwiser/internal/formgraph"
	"github.com/mmynk/taxwiser/internal/money"
	"github.com/mmynk/taxwiser/internal/presenter"
)

type lineReport struct {
	ID     string          `json:"id"`
	Ledger string          `json:"ledger"`
	Value  decimal.Decimal `json:"value"`
	Signal string          `json:"signal,omitempty"`
}

// report is everything taxcalc prints about a return.
type report struct {
	Title     string             `json:"title"`
	Status    string             `json:"status"`
	Lines     []lineReport       `json:"lines"`
	Summary   calculator.Summary `json:"summary"`
	Totals    calculator.Totals  `json:"totals"`
	Warnings  []string           `json:"warnings"`
	Narrative string             `json:"narrative"`
}

// newReport collects the non-zero lines and the review of a return.
func newReport(r *calculator.Return) *report {
	rep := &report{
		Title:     presenter.FormTitle(r.Profile().TaxType),
		Status:    presenter.StatusLabel(r.Profile().FilingStatus),
		Lines:     []lineReport{},
		Summary:   r.Summary(),
		Totals:    r.LiveTotals(),
		Warnings:  r.PreCheck(),
		Narrative: presenter.Narrative(r),
	}
	for _, l := range r.Lines() {
		if l.Value.IsZero() && l.Signal == formgraph.SignalNone {
			continue
		}
		lr := lineReport{ID: string(l.ID), Ledger: string(l.Ledger), Value: l.Value}
		if l.Signal != formgraph.SignalNone {
			lr.Signal = l.Signal.String()
		}
		rep.Lines = append(rep.Lines, lr)
	}
	if rep.Warnings == nil {
		rep.Warnings = []string{}
	}
	return rep
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	refundStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	owedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	amountStyle  = cellStyle.Align(lipgloss.Right)
)

// Render formats the report for a terminal.
func (rep *report) Render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(rep.Title))
	b.WriteString(" ")
	b.WriteString(mutedStyle.Render("(" + rep.Status + ")"))
	b.WriteString("\n\n")

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("Line", "Ledger", "Amount").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2:
				return amountStyle
			}
			return cellStyle
		})
	for _, l := range rep.Lines {
		amount := money.Currency(l.Value)
		if l.Signal != "" {
			amount += " " + l.Signal
		}
		t.Row(l.ID, l.Ledger, amount)
	}
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	balance := rep.Totals.Balance
	switch {
	case balance.IsPositive():
		b.WriteString(refundStyle.Render("Refund " + money.Currency(balance)))
	case balance.IsNegative():
		b.WriteString(owedStyle.Render("Amount owed " + money.Currency(balance.Neg())))
	default:
		b.WriteString("Balanced: nothing owed, no refund")
	}
	fmt.Fprintf(&b, "  %s\n\n", mutedStyle.Render(fmt.Sprintf("tax %s, payments %s",
		money.Currency(rep.Totals.Tax), money.Currency(rep.Totals.Payments))))

	b.WriteString(rep.Narrative)
	b.WriteString("\n")

	for _, w := range rep.Warnings {
		b.WriteString(warningStyle.Render("! " + w))
		b.WriteString("\n")
	}
	return b.String()
}
