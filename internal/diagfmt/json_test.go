package diagfmt

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestJSONOutput(t *testing.T) {
	bag, fs := oneDiagnostic("t.hs", "module Main where\nf x = = 1\n", 24, 25)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Errors != 1 {
		t.Fatalf("count=%d errors=%d", out.Count, out.Errors)
	}
	d := out.Diagnostics[0]
	if d.Code != "SYN3001" || d.Severity != "error" || d.Class != "ParseError" {
		t.Errorf("diagnostic %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 7 || d.Location.StartByte != 24 {
		t.Errorf("location %+v", d.Location)
	}
	if len(d.Notes) != 1 {
		t.Errorf("notes %+v", d.Notes)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	bag, fs := oneDiagnostic("t.hs", "f = = 1\n", 4, 5)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "start_line") || strings.Contains(buf.String(), "notes") {
		t.Errorf("unexpected fields:\n%s", buf.String())
	}
}

func TestYAMLMatchesJSON(t *testing.T) {
	bag, fs := oneDiagnostic("t.hs", "f = = 1\n", 4, 5)
	var buf bytes.Buffer
	if err := YAML(&buf, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if want := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true}); !reflect.DeepEqual(out.Diagnostics[0], want.Diagnostics[0]) {
		t.Errorf("yaml %+v\njson %+v", out.Diagnostics[0], want.Diagnostics[0])
	}
}

func TestSarif(t *testing.T) {
	bag, fs := oneDiagnostic("t.hs", "f = = 1\n", 4, 5)
	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "hsfront", InvocationArgs: []string{"diag"}}); err != nil {
		t.Fatal(err)
	}
	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Results []struct {
				RuleID string `json:"ruleId"`
				Level  string `json:"level"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatal(err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 || len(log.Runs[0].Results) != 1 {
		t.Fatalf("log %+v", log)
	}
	if r := log.Runs[0].Results[0]; r.RuleID != "SYN3001" || r.Level != "error" {
		t.Errorf("result %+v", r)
	}
}
