// Command taxcalc computes a return from a JSONC file and prints a summary.
//
//	taxcalc --file return.jsonc [--format text|json] [--counties counties.yaml]
//
// The file holds a filing profile and raw line input:
//
//	{
//	  "profile": {"taxType": "combined", "filingStatus": "single", "county": "Marion"},
//	  "fields": {"line1a": "52,000", "line25a": "6100"}, // comments allowed
//	}
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/mmynk/taxwiser/internal/calculator"
	"github.com/mmynk/taxwiser/internal/formgraph"
	"github.com/mmynk/taxwiser/internal/models"
	"github.com/mmynk/taxwiser/internal/taxrules"
	"github.com/mmynk/taxwiser/pkg/logging"
)

type profileInput struct {
	TaxType      string `json:"taxType"`
	FilingStatus string `json:"filingStatus"`
	Self65       bool   `json:"self65"`
	SelfBlind    bool   `json:"selfBlind"`
	Spouse65     bool   `json:"spouse65"`
	SpouseBlind  bool   `json:"spouseBlind"`
	County       string `json:"county"`
}

type returnInput struct {
	Profile profileInput      `json:"profile"`
	Fields  map[string]string `json:"fields"`
}

func main() {
	logging.Setup()
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "taxcalc:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("taxcalc", pflag.ContinueOnError)
	file := flags.StringP("file", "f", "", "JSONC return file (required)")
	format := flags.String("format", "text", "output format: text or json")
	countiesFile := flags.String("counties", "", "YAML county rate table replacing the built-in one")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("--file is required")
	}
	if *format != "text" && *format != "json" {
		return fmt.Errorf("unknown format %q", *format)
	}

	counties := taxrules.DefaultCounties()
	if *countiesFile != "" {
		var err error
		if counties, err = taxrules.LoadCounties(*countiesFile); err != nil {
			return err
		}
	}

	in, err := readInput(*file)
	if err != nil {
		return err
	}
	r, err := buildReturn(in, counties)
	if err != nil {
		return err
	}

	rep := newReport(r)
	if *format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	_, err = io.WriteString(stdout, rep.Render())
	return err
}

// readInput parses a JSONC return file.
func readInput(path string) (*returnInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var in returnInput
	if err := json.Unmarshal(jsonc.ToJSON(data), &in); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &in, nil
}

func buildReturn(in *returnInput, counties *taxrules.CountyTable) (*calculator.Return, error) {
	profile, err := counties.Profile(in.Profile.TaxType, in.Profile.FilingStatus, models.AgeFlags{
		Self65:      in.Profile.Self65,
		SelfBlind:   in.Profile.SelfBlind,
		Spouse65:    in.Profile.Spouse65,
		SpouseBlind: in.Profile.SpouseBlind,
	}, in.Profile.County)
	if err != nil {
		return nil, err
	}

	r, err := calculator.NewReturn(profile)
	if err != nil {
		return nil, err
	}
	edits := make(map[formgraph.FieldID]string, len(in.Fields))
	for id, raw := range in.Fields {
		edits[formgraph.FieldID(id)] = raw
	}
	if _, err := r.Edit(edits); err != nil {
		return nil, err
	}
	return r, nil
}
