package storage

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/shopspring/decimal"

	"github.com/mmynk/taxwiser/internal/models"
)

// recordVersion is bumped when the encoded layout changes.
const recordVersion = 1

// Core Deterministic Encoding: the same state always encodes to the same
// bytes.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("storage: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("storage: CBOR decoder initialization failed: " + err.Error())
	}
}

type profileRecord struct {
	TaxType      string `cbor:"tax_type"`
	FilingStatus string `cbor:"filing_status,omitempty"`
	Self65       bool   `cbor:"self_65,omitempty"`
	SelfBlind    bool   `cbor:"self_blind,omitempty"`
	Spouse65     bool   `cbor:"spouse_65,omitempty"`
	SpouseBlind  bool   `cbor:"spouse_blind,omitempty"`
	County       string `cbor:"county,omitempty"`
	CountyRate   string `cbor:"county_rate,omitempty"`
}

// stateRecord is the stored form of a FormState. Amounts are decimal text
// so no precision is lost.
type stateRecord struct {
	Version int                          `cbor:"v"`
	Profile profileRecord                `cbor:"profile"`
	Lines   map[string]map[string]string `cbor:"lines"`
}

// EncodeState serializes a FormState for storage.
func EncodeState(state models.FormState) ([]byte, error) {
	p := state.Profile
	rec := stateRecord{
		Version: recordVersion,
		Profile: profileRecord{
			TaxType:      string(p.TaxType),
			FilingStatus: string(p.FilingStatus),
			Self65:       p.AgeFlags.Self65,
			SelfBlind:    p.AgeFlags.SelfBlind,
			Spouse65:     p.AgeFlags.Spouse65,
			SpouseBlind:  p.AgeFlags.SpouseBlind,
			County:       p.County,
		},
		Lines: make(map[string]map[string]string, len(state.Lines)),
	}
	if !p.CountyRate.IsZero() {
		rec.Profile.CountyRate = p.CountyRate.String()
	}
	for ledger, lines := range state.Lines {
		out := make(map[string]string, len(lines))
		for id, v := range lines {
			out[id] = v.String()
		}
		rec.Lines[string(ledger)] = out
	}

	data, err := encMode.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode return: %w", err)
	}
	return data, nil
}

// DecodeState parses a stored FormState. Any defect wraps ErrCorrupt.
func DecodeState(data []byte) (models.FormState, error) {
	var rec stateRecord
	if err := decMode.Unmarshal(data, &rec); err != nil {
		return models.FormState{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if rec.Version != recordVersion {
		return models.FormState{}, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, rec.Version)
	}

	taxType, err := models.ParseTaxType(rec.Profile.TaxType)
	if err != nil {
		return models.FormState{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	status, err := models.ParseFilingStatus(rec.Profile.FilingStatus)
	if err != nil {
		return models.FormState{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	profile := models.FilingProfile{
		TaxType:      taxType,
		FilingStatus: status,
		AgeFlags: models.AgeFlags{
			Self65:      rec.Profile.Self65,
			SelfBlind:   rec.Profile.SelfBlind,
			Spouse65:    rec.Profile.Spouse65,
			SpouseBlind: rec.Profile.SpouseBlind,
		},
		County: rec.Profile.County,
	}
	if rec.Profile.CountyRate != "" {
		rate, err := decimal.NewFromString(rec.Profile.CountyRate)
		if err != nil {
			return models.FormState{}, fmt.Errorf("%w: county rate: %v", ErrCorrupt, err)
		}
		profile.CountyRate = rate
	}

	state := models.NewFormState(profile)
	for ledger, lines := range rec.Lines {
		for id, text := range lines {
			v, err := decimal.NewFromString(text)
			if err != nil {
				return models.FormState{}, fmt.Errorf("%w: line %s: %v", ErrCorrupt, id, err)
			}
			state.Set(models.Ledger(ledger), id, v)
		}
	}
	return state, nil
}
