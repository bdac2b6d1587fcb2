package taxrules

import (
	"github.com/shopspring/decimal"
)

// DefaultStateRate is Indiana's flat income tax rate.
var DefaultStateRate = decimal.RequireFromString("0.03")

// StateTax is Indiana line 8: AGI × the flat state rate.
func StateTax(agi, rate decimal.Decimal) decimal.Decimal {
	return agi.Mul(rate)
}

// CountyTax is Indiana line 9: AGI × the county rate, given in percent.
func CountyTax(agi, ratePercent decimal.Decimal) decimal.Decimal {
	return agi.Mul(ratePercent).Div(decimal.NewFromInt(100))
}
