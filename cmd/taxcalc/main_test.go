package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunJSON(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"--file", "testdata/combined.jsonc", "--format", "json"}, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	var rep struct {
		Title   string `json:"title"`
		Lines   []lineReport
		Summary struct {
			Federal *struct {
				Income string `json:"income"`
			} `json:"federal"`
			State *struct {
				FederalAGI string `json:"federalAgi"`
			} `json:"state"`
		} `json:"summary"`
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if rep.Title != "IRS Federal 1040 & Indiana IT-40" {
		t.Errorf("title = %q", rep.Title)
	}
	if rep.Summary.Federal == nil || rep.Summary.Federal.Income != "52000" {
		t.Errorf("federal summary = %+v", rep.Summary.Federal)
	}
	if rep.Summary.State == nil || rep.Summary.State.FederalAGI != "52000" {
		t.Errorf("state summary = %+v", rep.Summary.State)
	}
	if len(rep.Warnings) != 0 {
		t.Errorf("warnings = %v", rep.Warnings)
	}
	for _, l := range rep.Lines {
		if l.Value.IsZero() && l.Signal == "" {
			t.Errorf("zero line %s reported", l.ID)
		}
	}
}

func TestRunText(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-f", "testdata/combined.jsonc"}, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	text := out.String()
	for _, want := range []string{"IRS Federal 1040 & Indiana IT-40", "line11a", "$52,000.00", "indianaLine1"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing file flag", nil},
		{"bad format", []string{"--file", "testdata/combined.jsonc", "--format", "xml"}},
		{"no such file", []string{"--file", filepath.Join(dir, "missing.jsonc")}},
		{"malformed json", []string{"--file", write("bad.jsonc", "{ nope")}},
		{"unknown county", []string{"--file", write("county.jsonc", `{"profile": {"taxType": "indiana", "county": "Atlantis"}}`)}},
		{"derived field", []string{"--file", write("derived.jsonc", `{"profile": {"taxType": "federal-1040", "filingStatus": "single"}, "fields": {"line11a": "1"}}`)}},
		{"bad status", []string{"--file", write("status.jsonc", `{"profile": {"taxType": "federal-1040", "filingStatus": "widowed"}}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(tt.args, &out); err == nil {
				t.Errorf("run(%v) succeeded", tt.args)
			}
		})
	}
}
