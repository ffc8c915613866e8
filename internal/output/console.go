package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mvetter/envrisk/internal/analyzer"
	"golang.org/x/term"
)

var (
	// Color support detection
	colorEnabled = initColorSupport()
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// initColorSupport initializes color support for the terminal
func initColorSupport() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	// On Windows, ANSI escape sequences need enabling (console_windows.go);
	// Unix terminals support them directly
	return enableANSI()
}

// getColor returns the color code if colors are enabled, empty string otherwise
func getColor(code string) string {
	if colorEnabled {
		return code
	}
	return ""
}

// PrintSummary writes the totals line and the three report bands to stdout:
// critical (missing), warnings (risky), info (unused).
func PrintSummary(result analyzer.ScanResult, skipUnused bool) {
	fmt.Printf("Scanned %d files, found %d distinct variables (%d missing, %d risky, %d unused)\n\n",
		result.FilesScanned, len(result.Usages), len(result.Missing), len(result.Findings), len(result.Unused))

	printMissing(result)
	printFindings(result)
	if !skipUnused {
		printUnused(result)
	}

	if result.IgnoredMissing > 0 {
		fmt.Printf("%sNote:%s %d missing variable(s) were ignored (configured in .envrisk.config)\n\n",
			getColor(colorGray), getColor(colorReset), result.IgnoredMissing)
	}

	if !analyzer.HasIssues(result, skipUnused) {
		fmt.Printf("%s%s✓ No issues found. All environment variables are properly declared and safely used.%s\n",
			getColor(colorGreen), getColor(colorBold), getColor(colorReset))
	}
}

func printMissing(result analyzer.ScanResult) {
	if len(result.Missing) == 0 {
		return
	}
	fmt.Printf("%s%sMissing variables (used in code, not declared):%s\n\n",
		getColor(colorBold), getColor(colorRed), getColor(colorReset))
	for _, key := range result.Missing {
		fmt.Printf("  %s%s%s\n", getColor(colorRed), key, getColor(colorReset))
		for _, occ := range result.Usages[key] {
			fmt.Printf("    %sused in:%s %s%s%s:%s%d%s\n",
				getColor(colorGray), getColor(colorReset),
				getColor(colorCyan), occ.File, getColor(colorReset),
				getColor(colorYellow), occ.Line, getColor(colorReset))
		}
		fmt.Println()
	}
}

func printFindings(result analyzer.ScanResult) {
	if len(result.Findings) == 0 {
		return
	}
	fmt.Printf("%s%sExposure risks:%s\n\n",
		getColor(colorBold), getColor(colorYellow), getColor(colorReset))
	for _, finding := range result.Findings {
		fmt.Printf("  %s[%s]%s %s%s%s\n",
			getColor(colorYellow), finding.Kind, getColor(colorReset),
			getColor(colorBold), finding.Key, getColor(colorReset))
		fmt.Printf("    %s%s%s:%s%d%s %s%s%s\n",
			getColor(colorCyan), finding.File, getColor(colorReset),
			getColor(colorYellow), finding.Line, getColor(colorReset),
			getColor(colorGray), finding.Rationale, getColor(colorReset))
	}
	fmt.Println()
}

func printUnused(result analyzer.ScanResult) {
	if len(result.Unused) == 0 {
		return
	}
	fmt.Printf("%s%sUnused variables (declared, never referenced):%s\n\n",
		getColor(colorBold), getColor(colorYellow), getColor(colorReset))
	sorted := make([]string, len(result.Unused))
	copy(sorted, result.Unused)
	sort.Strings(sorted)
	for _, key := range sorted {
		fmt.Printf("  %s%s%s=%s%s%s\n",
			getColor(colorYellow), key, getColor(colorReset),
			getColor(colorGray), redactValue(result.DeclaredVars[key]), getColor(colorReset))
	}
	fmt.Println()
}

// redactValue redacts declared values while hinting at their shape
func redactValue(value string) string {
	if value == "" {
		return `""`
	}
	if len(value) > 20 {
		return "[REDACTED]"
	}
	if strings.ContainsAny(value, "=+/") && len(value) > 10 {
		return "[REDACTED]"
	}
	if len(value) > 4 {
		return string(value[0]) + "..." + string(value[len(value)-1])
	}
	return "***"
}
