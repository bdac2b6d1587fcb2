package service

import (
	"github.com/mmynk/taxwiser/internal/calculator"
	"github.com/mmynk/taxwiser/internal/models"
	"github.com/mmynk/taxwiser/internal/money"
	"github.com/mmynk/taxwiser/internal/presenter"
	"github.com/mmynk/taxwiser/internal/rpc"
	"github.com/mmynk/taxwiser/internal/session"
	"github.com/mmynk/taxwiser/internal/taxrules"
)

// profileFromRPC converts and validates an intake profile. The county rate
// always comes from the county table.
func profileFromRPC(p rpc.Profile, counties *taxrules.CountyTable) (models.FilingProfile, error) {
	return counties.Profile(p.TaxType, p.FilingStatus, models.AgeFlags{
		Self65:      p.Self65,
		SelfBlind:   p.SelfBlind,
		Spouse65:    p.Spouse65,
		SpouseBlind: p.SpouseBlind,
	}, p.County)
}

func profileToRPC(p models.FilingProfile) rpc.Profile {
	out := rpc.Profile{
		TaxType:      string(p.TaxType),
		FilingStatus: string(p.FilingStatus),
		Self65:       p.AgeFlags.Self65,
		SelfBlind:    p.AgeFlags.SelfBlind,
		Spouse65:     p.AgeFlags.Spouse65,
		SpouseBlind:  p.AgeFlags.SpouseBlind,
		County:       p.County,
	}
	if p.County != "" {
		out.CountyRate = p.CountyRate.String()
	}
	return out
}

func fieldsToRPC(views []presenter.FieldView) []rpc.Field {
	out := make([]rpc.Field, len(views))
	for i, v := range views {
		out[i] = rpc.Field{
			ID:       v.ID,
			Ledger:   string(v.Ledger),
			Editable: v.Editable,
			Text:     v.Text,
			Signal:   v.Signal,
		}
	}
	return out
}

func totalsToRPC(t calculator.Totals) rpc.Totals {
	return rpc.Totals{
		Tax:      money.Plain(t.Tax),
		Payments: money.Plain(t.Payments),
		Balance:  money.Plain(t.Balance),
		Signal:   t.Signal.String(),
	}
}

// returnView renders a session's return. The caller holds the session lock.
func returnView(s *session.Session) *rpc.Return {
	r := s.Return
	profile := r.Profile()
	return &rpc.Return{
		Profile:     profileToRPC(profile),
		Title:       presenter.FormTitle(profile.TaxType),
		StatusLabel: presenter.StatusLabel(profile.FilingStatus),
		Section:     s.Section,
		Fields:      fieldsToRPC(presenter.AllFields(r)),
		Sections:    presenter.Sections(r),
		Totals:      totalsToRPC(r.LiveTotals()),
	}
}

func summaryToRPC(s calculator.Summary) (*rpc.FederalSummary, *rpc.StateSummary) {
	var fed *rpc.FederalSummary
	if f := s.Federal; f != nil {
		fed = &rpc.FederalSummary{
			Income:     money.Plain(f.Income),
			Deductions: money.Plain(f.Deductions),
			Taxable:    money.Plain(f.Taxable),
			Tax:        money.Plain(f.Tax),
			Payments:   money.Plain(f.Payments),
			Final:      money.Plain(f.Final),
			Itemizing:  f.Itemizing,
		}
	}
	var st *rpc.StateSummary
	if s := s.State; s != nil {
		st = &rpc.StateSummary{
			FederalAGI:     money.Plain(s.FederalAGI),
			FederalTax:     money.Plain(s.FederalTax),
			IndianaTax:     money.Plain(s.IndianaTax),
			TotalLiability: money.Plain(s.TotalLiability),
			TotalCredits:   money.Plain(s.TotalCredits),
			Final:          money.Plain(s.Final),
		}
	}
	return fed, st
}
