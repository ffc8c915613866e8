package analyzer

import "sort"

// Occurrence represents a single textual reference to an environment variable
type Occurrence struct {
	File              string `json:"file"`              // Path relative to the scan root
	Line              int    `json:"line"`              // 1-based line number
	IsClientFile      bool   `json:"isClientFile"`      // File carries a "use client" directive
	IsServerRouteFile bool   `json:"isServerRouteFile"` // File lives under an API route path
}

// UsageIndex maps a variable name to its occurrences in discovery order:
// files in scan order, then top-to-bottom within a file.
type UsageIndex map[string][]Occurrence

// Keys returns all variable names in the index, sorted.
func (u UsageIndex) Keys() []string {
	keys := make([]string, 0, len(u))
	for key := range u {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FindingKind identifies the risk rule that produced a finding
type FindingKind string

const (
	KindSensitiveInBundledPath FindingKind = "sensitive-name-in-bundled-path"
	KindPublicPrefixedSecret   FindingKind = "public-prefixed-secret"
	KindSecretInClientFile     FindingKind = "secret-in-client-file"
	KindPublicOnlyInAPIRoutes  FindingKind = "public-only-in-api-routes"
)

// Finding is one heuristic exposure risk detected for a variable
type Finding struct {
	Kind      FindingKind `json:"kind"`
	Key       string      `json:"key"`
	File      string      `json:"file"`
	Line      int         `json:"line"`
	Rationale string      `json:"rationale"`
}

// ScanResult contains the complete analysis results for one run
type ScanResult struct {
	Usages         UsageIndex        // All env var references found in code
	DeclaredVars   map[string]string // Declared variables from the env file (key -> raw value)
	FilesScanned   int               // Number of source files read
	Missing        []string          // Used in code but not declared, sorted
	Unused         []string          // Declared but never used, sorted
	Findings       []Finding         // Risk findings from the rule set
	IgnoredMissing int               // Missing variables suppressed via config
}
