package presenter

import (
	"github.com/mmynk/taxwiser/internal/calculator"
	"github.com/mmynk/taxwiser/internal/formgraph"
	"github.com/mmynk/taxwiser/internal/models"
)

// Section names used by the frontend.
const (
	RefundSection        = "refundSection"
	OwedSection          = "owedSection"
	IndianaRefundSection = "indianaRefundSection"
	IndianaOwedSection   = "indianaOwedSection"
)

// Sections reports which refund/owed sections are visible. At most one of
// each pair is active; neither is when the balance is exactly zero.
func Sections(r *calculator.Return) map[string]bool {
	out := make(map[string]bool, 4)
	if r.Profile().TaxType.IncludesFederal() {
		s := r.Signal(calculator.Line34)
		out[RefundSection] = s == formgraph.SignalSurplus
		out[OwedSection] = s == formgraph.SignalDeficit
	}
	if r.Profile().TaxType.IncludesIndiana() {
		s := r.Signal(calculator.IndianaLine16)
		out[IndianaRefundSection] = s == formgraph.SignalSurplus
		out[IndianaOwedSection] = s == formgraph.SignalDeficit
	}
	return out
}

// FormTitle names the forms a return contains.
func FormTitle(t models.TaxType) string {
	switch t {
	case models.TaxTypeFederal1040:
		return "IRS Form 1040"
	case models.TaxTypeFederal1040SR:
		return "IRS Form 1040-SR"
	case models.TaxTypeIndiana:
		return "Indiana Form IT-40"
	case models.TaxTypeCombined:
		return "IRS Federal 1040 & Indiana IT-40"
	}
	return ""
}

// StatusLabel names a filing status, "your status" when unset.
func StatusLabel(s models.FilingStatus) string {
	if l := s.Label(); l != "" {
		return l
	}
	return "your status"
}
