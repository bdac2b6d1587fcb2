package taxrules

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/taxwiser/internal/models"
)

func TestStandardDeduction(t *testing.T) {
	tests := []struct {
		name    string
		status  models.FilingStatus
		boxes   int
		want    int64
		wantErr error
	}{
		{"single none", models.StatusSingle, 0, 15750, nil},
		{"single both", models.StatusSingle, 2, 19750, nil},
		{"married all four", models.StatusMarried, 4, 37900, nil},
		{"qss all four", models.StatusQSS, 4, 37900, nil},
		{"hoh one", models.StatusHOH, 1, 25625, nil},
		{"mfs three", models.StatusMFS, 3, 20550, nil},
		{"single three", models.StatusSingle, 3, 0, ErrBoxesOutOfRange},
		{"negative", models.StatusMarried, -1, 0, ErrBoxesOutOfRange},
		{"unset status", "", 0, 0, ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StandardDeduction(tt.status, tt.boxes)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("StandardDeduction() error = %v, want %v", err, tt.wantErr)
			}
			if !got.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("StandardDeduction() = %s, want %d", got, tt.want)
			}
		})
	}
}

func TestCountBoxes(t *testing.T) {
	all := models.AgeFlags{Self65: true, SelfBlind: true, Spouse65: true, SpouseBlind: true}

	tests := []struct {
		status models.FilingStatus
		flags  models.AgeFlags
		want   int
	}{
		{models.StatusSingle, all, 2},
		{models.StatusHOH, all, 2},
		{models.StatusMarried, all, 4},
		{models.StatusQSS, all, 4},
		{models.StatusMFS, all, 4},
		{models.StatusMarried, models.AgeFlags{Spouse65: true}, 1},
		{models.StatusSingle, models.AgeFlags{}, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := CountBoxes(tt.status, tt.flags); got != tt.want {
				t.Errorf("CountBoxes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEveryCountableBoxHasAChartEntry(t *testing.T) {
	all := models.AgeFlags{Self65: true, SelfBlind: true, Spouse65: true, SpouseBlind: true}
	for _, status := range []models.FilingStatus{
		models.StatusSingle, models.StatusMarried, models.StatusQSS, models.StatusHOH, models.StatusMFS,
	} {
		if _, err := StandardDeduction(status, CountBoxes(status, all)); err != nil {
			t.Errorf("%s with every box: %v", status, err)
		}
	}
}
