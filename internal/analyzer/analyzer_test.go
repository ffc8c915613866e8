package analyzer

import (
	"testing"

	"github.com/mvetter/envrisk/internal/config"
)

func TestAnalyze_MissingKeys(t *testing.T) {
	usages := UsageIndex{
		"STRIPE_KEY":   {{File: "lib/payments.ts", Line: 10}},
		"DATABASE_URL": {{File: "lib/db.ts", Line: 20}},
		"API_KEY":      {{File: "lib/api.ts", Line: 30}},
	}

	declared := map[string]string{
		"API_KEY": "test123",
	}

	result := Analyze(usages, declared, &config.Config{})

	if len(result.Missing) != 2 {
		t.Errorf("Expected 2 missing keys, got %d", len(result.Missing))
	}

	if result.Missing[0] != "DATABASE_URL" || result.Missing[1] != "STRIPE_KEY" {
		t.Errorf("Expected sorted missing list [DATABASE_URL STRIPE_KEY], got %v", result.Missing)
	}
}

func TestAnalyze_UnusedKeys(t *testing.T) {
	usages := UsageIndex{
		"STRIPE_KEY": {{File: "lib/payments.ts", Line: 10}},
	}

	declared := map[string]string{
		"STRIPE_KEY":  "sk_test_123",
		"OLD_API_KEY": "old123",
		"UNUSED_VAR":  "unused",
	}

	result := Analyze(usages, declared, &config.Config{})

	if len(result.Unused) != 2 {
		t.Errorf("Expected 2 unused keys, got %d", len(result.Unused))
	}

	if result.Unused[0] != "OLD_API_KEY" || result.Unused[1] != "UNUSED_VAR" {
		t.Errorf("Expected sorted unused list [OLD_API_KEY UNUSED_VAR], got %v", result.Unused)
	}
}

func TestAnalyze_EmptyDeclaredSkipsReconciliation(t *testing.T) {
	usages := UsageIndex{
		"STRIPE_KEY": {{File: "lib/payments.ts", Line: 10}},
	}

	result := Analyze(usages, map[string]string{}, &config.Config{})

	// No declarations means reconciliation is skipped, not "everything is missing"
	if len(result.Missing) != 0 {
		t.Errorf("Expected no missing keys without declarations, got %v", result.Missing)
	}
	if len(result.Unused) != 0 {
		t.Errorf("Expected no unused keys without declarations, got %v", result.Unused)
	}
}

func TestAnalyze_MissingSuppressesFindings(t *testing.T) {
	usages := UsageIndex{
		"STRIPE_SECRET_KEY": {
			{File: "app/dashboard/page.tsx", Line: 3, IsClientFile: true},
		},
	}

	declared := map[string]string{
		"OTHER_VAR": "x",
	}

	result := Analyze(usages, declared, &config.Config{})

	if len(result.Missing) != 1 || result.Missing[0] != "STRIPE_SECRET_KEY" {
		t.Fatalf("Expected STRIPE_SECRET_KEY missing, got %v", result.Missing)
	}

	for _, finding := range result.Findings {
		if finding.Key == "STRIPE_SECRET_KEY" {
			t.Errorf("Missing variable must not produce risk findings, got %v", finding)
		}
	}
}

func TestAnalyze_SuppressionAppliesToConfigIgnoredKeys(t *testing.T) {
	usages := UsageIndex{
		"CUSTOM_SECRET_KEY": {
			{File: "app/dashboard/page.tsx", Line: 3, IsClientFile: true},
		},
	}

	declared := map[string]string{"OTHER_VAR": "x"}
	cfg := &config.Config{
		Ignores: config.IgnoresConfig{Missing: []string{"CUSTOM_SECRET_KEY"}},
	}

	result := Analyze(usages, declared, cfg)

	if len(result.Missing) != 0 {
		t.Errorf("Expected ignored key absent from missing, got %v", result.Missing)
	}
	if result.IgnoredMissing != 1 {
		t.Errorf("Expected 1 ignored missing variable, got %d", result.IgnoredMissing)
	}
	// Still undeclared, so still no trustworthy context for risk rules
	if len(result.Findings) != 0 {
		t.Errorf("Expected no findings for undeclared key, got %v", result.Findings)
	}
}

func TestAnalyze_FindingsWithoutDeclarations(t *testing.T) {
	usages := UsageIndex{
		"STRIPE_SECRET_KEY": {
			{File: "app/dashboard/page.tsx", Line: 3, IsClientFile: true},
		},
	}

	result := Analyze(usages, map[string]string{}, &config.Config{})

	kinds := make(map[FindingKind]bool)
	for _, finding := range result.Findings {
		kinds[finding.Kind] = true
	}

	if !kinds[KindSensitiveInBundledPath] {
		t.Error("Expected sensitive-name-in-bundled-path finding")
	}
	if !kinds[KindSecretInClientFile] {
		t.Error("Expected secret-in-client-file finding")
	}
	if len(result.Findings) != 2 {
		t.Errorf("Expected exactly 2 findings, got %d", len(result.Findings))
	}
}

func TestHasIssues(t *testing.T) {
	clean := ScanResult{}
	if HasIssues(clean, false) {
		t.Error("Empty result should have no issues")
	}

	withUnused := ScanResult{Unused: []string{"X"}}
	if !HasIssues(withUnused, false) {
		t.Error("Unused variables count as issues")
	}
	if HasIssues(withUnused, true) {
		t.Error("skipUnused should exclude unused variables from the issue check")
	}

	withMissing := ScanResult{Missing: []string{"X"}}
	if !HasIssues(withMissing, true) {
		t.Error("Missing variables count as issues")
	}

	withFindings := ScanResult{Findings: []Finding{{Kind: KindPublicPrefixedSecret, Key: "X"}}}
	if !HasIssues(withFindings, true) {
		t.Error("Findings count as issues")
	}
}
