package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"mlc/internal/diag"
)

// SARIF 2.1.0 constants
const (
	SarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	SarifVersion   = "2.1.0"
)

// SarifReport is the top-level SARIF document.
type SarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SarifRun `json:"runs"`
}

type SarifRun struct {
	Tool        SarifTool         `json:"tool"`
	Invocations []SarifInvocation `json:"invocations,omitempty"`
	Results     []SarifResult     `json:"results"`
}

type SarifTool struct {
	Driver SarifDriver `json:"driver"`
}

type SarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []SarifRule `json:"rules,omitempty"`
}

type SarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription SarifMessage `json:"shortDescription"`
}

type SarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type SarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SarifMessage    `json:"message"`
	Locations []SarifLocation `json:"locations"`
}

type SarifMessage struct {
	Text string `json:"text"`
}

type SarifLocation struct {
	PhysicalLocation SarifPhysicalLocation `json:"physicalLocation"`
}

type SarifPhysicalLocation struct {
	ArtifactLocation SarifArtifactLocation `json:"artifactLocation"`
	Region           SarifRegion           `json:"region"`
}

type SarifArtifactLocation struct {
	URI string `json:"uri"`
}

// SarifRegion uses 1-based columns; the bracket is one character wide.
type SarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

var ruleNames = map[diag.Code]string{
	diag.StyleOpenNotBroken:   "container-open-not-broken",
	diag.StyleCloseNotBroken:  "container-close-not-broken",
	diag.StyleCloseMisaligned: "container-close-misaligned",
	diag.TokenizeWarning:      "tokenize-warning",
	diag.IOLoadFileError:      "io-error",
	diag.StructuralUnbalanced: "unbalanced-brackets",
}

// BuildSarif assembles a SARIF report with one run.
func BuildSarif(reports []Report, meta SarifRunMeta) *SarifReport {
	driver := SarifDriver{Name: meta.ToolName, Version: meta.ToolVersion}
	for _, code := range diag.Codes() {
		driver.Rules = append(driver.Rules, SarifRule{
			ID:               code.ID(),
			Name:             ruleNames[code],
			ShortDescription: SarifMessage{Text: code.Title()},
		})
	}

	run := SarifRun{Tool: SarifTool{Driver: driver}, Results: []SarifResult{}}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []SarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: true}}
	}

	for _, r := range reports {
		uri := formatFileURI(r.displayPath(meta.PathMode, meta.BaseDir))
		if r.Structural != nil {
			pos := r.Structural.Pos()
			run.Results = append(run.Results, sarifResult(uri, diag.StructuralUnbalanced, diag.SevError, r.Structural.Error(), pos.Line, pos.Col))
		}
		for _, d := range r.Diagnostics {
			run.Results = append(run.Results, sarifResult(uri, d.Code, d.Severity, d.Message, d.Pos.Line, d.Pos.Col))
		}
	}

	return &SarifReport{Schema: SarifSchemaURI, Version: SarifVersion, Runs: []SarifRun{run}}
}

func sarifResult(uri string, code diag.Code, sev diag.Severity, msg string, line, col int) SarifResult {
	return SarifResult{
		RuleID:  code.ID(),
		Level:   sarifLevel(sev),
		Message: SarifMessage{Text: msg},
		Locations: []SarifLocation{{
			PhysicalLocation: SarifPhysicalLocation{
				ArtifactLocation: SarifArtifactLocation{URI: uri},
				Region: SarifRegion{
					StartLine:   line,
					StartColumn: col + 1,
					EndLine:     line,
					EndColumn:   col + 2,
				},
			},
		}},
	}
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

// formatFileURI converts a file path to SARIF URI format.
// Absolute paths get file:// prefix, relative paths stay as-is.
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}

// Sarif форматирует отчёты в SARIF (v2.1.0).
func Sarif(w io.Writer, reports []Report, meta SarifRunMeta) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildSarif(reports, meta))
}
