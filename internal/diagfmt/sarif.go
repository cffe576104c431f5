package diagfmt

import (
	"encoding/json"
	"io"

	"hsfront/internal/diag"
	"hsfront/internal/source"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver struct {
		Name    string `json:"name"`
		Version string `json:"version,omitempty"`
	} `json:"driver"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifText       `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	Physical struct {
		Artifact struct {
			URI string `json:"uri"`
		} `json:"artifactLocation"`
		Region struct {
			StartLine   uint32 `json:"startLine"`
			StartColumn uint32 `json:"startColumn"`
			EndLine     uint32 `json:"endLine"`
			EndColumn   uint32 `json:"endColumn"`
		} `json:"region"`
	} `json:"physicalLocation"`
}

var sarifLevels = map[diag.Severity]string{
	diag.SevError:   "error",
	diag.SevWarning: "warning",
	diag.SevInfo:    "note",
}

// Sarif writes the diagnostics as a SARIF 2.1.0 log with a single run.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	run := sarifRun{Results: []sarifResult{}}
	run.Tool.Driver.Name = meta.ToolName
	run.Tool.Driver.Version = meta.ToolVersion
	if meta.InvocationArgs != nil {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: !bag.HasErrors()}}
	}
	for _, d := range bag.Items() {
		var loc sarifLocation
		start, end := fs.Resolve(d.Primary)
		loc.Physical.Artifact.URI = fs.Get(d.Primary.File).Path
		loc.Physical.Region.StartLine, loc.Physical.Region.StartColumn = start.Line, start.Col
		loc.Physical.Region.EndLine, loc.Physical.Region.EndColumn = end.Line, end.Col
		run.Results = append(run.Results, sarifResult{
			RuleID:    d.Code.ID(),
			Level:     sarifLevels[d.Severity],
			Message:   sarifText{d.Message},
			Locations: []sarifLocation{loc},
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{
		Version: "2.1.0",
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Runs:    []sarifRun{run},
	})
}
