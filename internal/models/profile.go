package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxType selects which forms a return contains.
type TaxType string

const (
	TaxTypeFederal1040   TaxType = "federal-1040"
	TaxTypeFederal1040SR TaxType = "federal-1040sr"
	TaxTypeIndiana       TaxType = "indiana"
	TaxTypeCombined      TaxType = "combined"
)

// ParseTaxType validates a tax type selection.
func ParseTaxType(s string) (TaxType, error) {
	switch t := TaxType(strings.ToLower(strings.TrimSpace(s))); t {
	case TaxTypeFederal1040, TaxTypeFederal1040SR, TaxTypeIndiana, TaxTypeCombined:
		return t, nil
	}
	return "", fmt.Errorf("unknown tax type %q", s)
}

// IncludesFederal reports whether the return carries a Form 1040.
func (t TaxType) IncludesFederal() bool {
	return t == TaxTypeFederal1040 || t == TaxTypeFederal1040SR || t == TaxTypeCombined
}

// IncludesIndiana reports whether the return carries an IT-40.
func (t TaxType) IncludesIndiana() bool {
	return t == TaxTypeIndiana || t == TaxTypeCombined
}

// FederalForm is the federal form name for the tax type ("1040" or
// "1040-SR"), or empty for Indiana-only returns.
func (t TaxType) FederalForm() string {
	switch t {
	case TaxTypeFederal1040SR:
		return "1040-SR"
	case TaxTypeFederal1040, TaxTypeCombined:
		return "1040"
	}
	return ""
}

// FilingStatus is the federal filing status.
type FilingStatus string

const (
	StatusSingle  FilingStatus = "single"
	StatusMarried FilingStatus = "married" // married filing jointly
	StatusQSS     FilingStatus = "qss"     // qualifying surviving spouse
	StatusHOH     FilingStatus = "hoh"     // head of household
	StatusMFS     FilingStatus = "mfs"     // married filing separately
)

// ParseFilingStatus validates a filing status. The empty string is accepted
// and means "not chosen", which is how Indiana-only returns are started.
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch f := FilingStatus(strings.ToLower(strings.TrimSpace(s))); f {
	case "", StatusSingle, StatusMarried, StatusQSS, StatusHOH, StatusMFS:
		return f, nil
	}
	return "", fmt.Errorf("unknown filing status %q", s)
}

// HasSpouse reports whether spouse age/blind boxes apply to the status.
func (f FilingStatus) HasSpouse() bool {
	return f == StatusMarried || f == StatusQSS || f == StatusMFS
}

// Label is the human-readable status name.
func (f FilingStatus) Label() string {
	switch f {
	case StatusSingle:
		return "Single"
	case StatusMarried:
		return "Married Filing Jointly"
	case StatusQSS:
		return "Qualifying Surviving Spouse"
	case StatusHOH:
		return "Head of Household"
	case StatusMFS:
		return "Married Filing Separately"
	}
	return ""
}

// AgeFlags are the line 12d boxes: born before January 2, 1961, and blind,
// for the filer and the spouse.
type AgeFlags struct {
	Self65      bool
	SelfBlind   bool
	Spouse65    bool
	SpouseBlind bool
}

// FilingProfile is the set of intake choices for one return.
type FilingProfile struct {
	TaxType      TaxType
	FilingStatus FilingStatus
	AgeFlags     AgeFlags

	// County is the Indiana county of residence; CountyRate is its income
	// tax rate in percent (2.02 means 2.02%).
	County     string
	CountyRate decimal.Decimal
}

// Validate checks that the profile is internally consistent.
func (p FilingProfile) Validate() error {
	if _, err := ParseTaxType(string(p.TaxType)); err != nil {
		return err
	}
	if _, err := ParseFilingStatus(string(p.FilingStatus)); err != nil {
		return err
	}
	if p.TaxType.IncludesFederal() && p.FilingStatus == "" {
		return fmt.Errorf("filing status is required for %s returns", p.TaxType)
	}
	if !p.FilingStatus.HasSpouse() && (p.AgeFlags.Spouse65 || p.AgeFlags.SpouseBlind) {
		return fmt.Errorf("spouse boxes do not apply to filing status %q", p.FilingStatus)
	}
	if p.TaxType.IncludesIndiana() {
		if p.County == "" {
			return fmt.Errorf("county is required for %s returns", p.TaxType)
		}
		if p.CountyRate.IsNegative() {
			return fmt.Errorf("county rate cannot be negative")
		}
	}
	return nil
}

// Equal reports whether two profiles make the same choices.
func (p FilingProfile) Equal(other FilingProfile) bool {
	return p.TaxType == other.TaxType &&
		p.FilingStatus == other.FilingStatus &&
		p.AgeFlags == other.AgeFlags &&
		p.County == other.County &&
		p.CountyRate.Equal(other.CountyRate)
}
