package taxrules

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/taxwiser/internal/models"
)

var (
	ErrUnknownStatus   = errors.New("unknown filing status")
	ErrBoxesOutOfRange = errors.New("boxes checked out of range")
)

// standardDeductionChart is indexed by the number of line 12d boxes checked.
var standardDeductionChart = map[models.FilingStatus][]decimal.Decimal{
	models.StatusSingle:  amounts(15750, 17750, 19750),
	models.StatusMarried: amounts(31500, 33100, 34700, 36300, 37900),
	models.StatusQSS:     amounts(31500, 33100, 34700, 36300, 37900),
	models.StatusHOH:     amounts(23625, 25625, 27625),
	models.StatusMFS:     amounts(15750, 17350, 18950, 20550, 22150),
}

func amounts(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

// StandardDeduction looks up line 12e for a status and a box count.
func StandardDeduction(status models.FilingStatus, boxes int) (decimal.Decimal, error) {
	row, ok := standardDeductionChart[status]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	if boxes < 0 || boxes >= len(row) {
		return decimal.Zero, fmt.Errorf("%w: %d for %s", ErrBoxesOutOfRange, boxes, status)
	}
	return row[boxes], nil
}

// CountBoxes counts the age/blind boxes that apply to the status. Spouse
// boxes count only for joint-type statuses.
func CountBoxes(status models.FilingStatus, flags models.AgeFlags) int {
	n := 0
	for _, set := range []bool{flags.Self65, flags.SelfBlind} {
		if set {
			n++
		}
	}
	if status.HasSpouse() {
		for _, set := range []bool{flags.Spouse65, flags.SpouseBlind} {
			if set {
				n++
			}
		}
	}
	return n
}
