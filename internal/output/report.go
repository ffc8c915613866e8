package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mvetter/envrisk/internal/analyzer"
)

// Artifact file names, written to the current working directory each run
const (
	ReportJSONName  = "env-report.json"
	ReportHTMLName  = "env-report.html"
	EnvTemplateName = ".env.example"
)

// Report is the structured data dump written as JSON
type Report struct {
	Target      string                           `json:"target"`
	Summary     Summary                          `json:"summary"`
	UsedVars    []string                         `json:"usedVars"`
	Missing     []string                         `json:"missing"`
	Unused      []string                         `json:"unused"`
	Findings    []analyzer.Finding               `json:"findings"`
	Occurrences map[string][]analyzer.Occurrence `json:"occurrences"`
}

// Summary contains the totals reported for one scan
type Summary struct {
	FilesScanned int `json:"filesScanned"`
	VarsFound    int `json:"varsFound"`
	MissingCount int `json:"missingCount"`
	UnusedCount  int `json:"unusedCount"`
	RiskyCount   int `json:"riskyCount"`
}

// BuildReport assembles the structured report from a scan result.
// target echoes the scan input; every list is sorted or in deterministic
// discovery order so repeated runs produce identical output.
func BuildReport(result analyzer.ScanResult, target string) Report {
	return Report{
		Target: target,
		Summary: Summary{
			FilesScanned: result.FilesScanned,
			VarsFound:    len(result.Usages),
			MissingCount: len(result.Missing),
			UnusedCount:  len(result.Unused),
			RiskyCount:   len(result.Findings),
		},
		UsedVars:    result.Usages.Keys(),
		Missing:     result.Missing,
		Unused:      result.Unused,
		Findings:    result.Findings,
		Occurrences: result.Usages,
	}
}

// WriteJSON writes the structured report to path, overwriting any previous run
func WriteJSON(report Report, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteEnvTemplate writes one empty KEY= assignment per used variable, sorted
func WriteEnvTemplate(usages analyzer.UsageIndex, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	for _, key := range usages.Keys() {
		if _, err := fmt.Fprintf(file, "%s=\n", key); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
