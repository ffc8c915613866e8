package analyzer

import (
	"sort"

	"github.com/mvetter/envrisk/internal/config"
)

// Analyze reconciles code-discovered variables against the declared set and
// runs the risk rule set.
//
// usages: index built by the extractor
// declared: variables from the declarations file; empty map means no file was
// supplied and reconciliation is skipped entirely
// cfg: optional ignore configuration
func Analyze(usages UsageIndex, declared map[string]string, cfg *config.Config) ScanResult {
	result := ScanResult{
		Usages:       usages,
		DeclaredVars: declared,
		Missing:      []string{},
		Unused:       []string{},
		Findings:     []Finding{},
	}

	// missingSet is the raw set difference, before config filtering: a key
	// without a declaration has no trustworthy occurrence context, so risk
	// rules are suppressed for it whether or not it is reported.
	missingSet := make(map[string]bool)

	if len(declared) > 0 {
		for key := range usages {
			if _, exists := declared[key]; !exists {
				missingSet[key] = true
				if cfg != nil && cfg.ShouldIgnoreMissing(key) {
					result.IgnoredMissing++
					continue
				}
				result.Missing = append(result.Missing, key)
			}
		}
		for key := range declared {
			if _, used := usages[key]; !used {
				result.Unused = append(result.Unused, key)
			}
		}
		sort.Strings(result.Missing)
		sort.Strings(result.Unused)
	}

	for _, key := range usages.Keys() {
		if missingSet[key] {
			continue
		}
		occurrences := usages[key]
		if len(occurrences) == 0 {
			continue
		}
		for _, rule := range Rules {
			result.Findings = append(result.Findings, rule.Evaluate(key, occurrences)...)
		}
	}

	return result
}

// HasIssues reports whether any of the three report bands is non-empty.
func HasIssues(result ScanResult, skipUnused bool) bool {
	if len(result.Missing) > 0 || len(result.Findings) > 0 {
		return true
	}
	return !skipUnused && len(result.Unused) > 0
}
