package taxrules

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/taxwiser/internal/models"
)

//go:embed counties.yaml
var defaultCounties []byte

// County is one Indiana county and its income tax rate in percent.
type County struct {
	Name string
	Rate decimal.Decimal
}

// CountyTable maps county names to rates. Lookups ignore case.
type CountyTable struct {
	counties []County
	byName   map[string]County
}

type countiesFile struct {
	Counties []struct {
		Name string  `yaml:"name"`
		Rate float64 `yaml:"rate"`
	} `yaml:"counties"`
}

// DefaultCounties returns the built-in county table.
func DefaultCounties() *CountyTable {
	t, err := ParseCounties(defaultCounties)
	if err != nil {
		panic(fmt.Sprintf("taxrules: built-in county table: %v", err))
	}
	return t
}

// LoadCounties reads a county table from a YAML file.
func LoadCounties(path string) (*CountyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read county table: %w", err)
	}
	return ParseCounties(data)
}

// ParseCounties decodes a county table.
func ParseCounties(data []byte) (*CountyTable, error) {
	var file countiesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse county table: %w", err)
	}
	if len(file.Counties) == 0 {
		return nil, fmt.Errorf("county table is empty")
	}

	t := &CountyTable{byName: make(map[string]County, len(file.Counties))}
	for _, c := range file.Counties {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("county name is required")
		}
		if c.Rate < 0 {
			return nil, fmt.Errorf("county %s has a negative rate", name)
		}
		key := strings.ToLower(name)
		if _, dup := t.byName[key]; dup {
			return nil, fmt.Errorf("duplicate county %s", name)
		}
		county := County{Name: name, Rate: decimal.NewFromFloat(c.Rate)}
		t.byName[key] = county
		t.counties = append(t.counties, county)
	}
	sort.Slice(t.counties, func(i, j int) bool {
		return strings.ToLower(t.counties[i].Name) < strings.ToLower(t.counties[j].Name)
	})
	return t, nil
}

// Lookup returns a county by name.
func (t *CountyTable) Lookup(name string) (County, bool) {
	c, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Profile builds and validates a filing profile from intake choices. For
// Indiana tax types the county is looked up here and its table rate used;
// otherwise county is ignored.
func (t *CountyTable) Profile(taxType, status string, flags models.AgeFlags, county string) (models.FilingProfile, error) {
	tt, err := models.ParseTaxType(taxType)
	if err != nil {
		return models.FilingProfile{}, err
	}
	fs, err := models.ParseFilingStatus(status)
	if err != nil {
		return models.FilingProfile{}, err
	}

	profile := models.FilingProfile{TaxType: tt, FilingStatus: fs, AgeFlags: flags}
	if tt.IncludesIndiana() {
		c, ok := t.Lookup(county)
		if !ok {
			return models.FilingProfile{}, fmt.Errorf("unknown Indiana county %q", county)
		}
		profile.County = c.Name
		profile.CountyRate = c.Rate
	}
	if err := profile.Validate(); err != nil {
		return models.FilingProfile{}, err
	}
	return profile, nil
}

// List returns every county sorted by name.
func (t *CountyTable) List() []County {
	return append([]County(nil), t.counties...)
}
