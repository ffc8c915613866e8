package analyzer

import (
	"fmt"
	"path"
	"strings"
)

// PublicPrefix marks variables that Next.js inlines into the browser bundle.
const PublicPrefix = "NEXT_PUBLIC_"

// sensitiveKeywords are substrings (matched case-insensitively) suggestive of
// credential material in a variable name.
var sensitiveKeywords = []string{"KEY", "TOKEN", "SECRET", "PRIVATE", "PASSWORD", "PASS", "AUTH"}

// routeFileMarker appears in paths of app-router route handlers (route.ts etc.)
const routeFileMarker = "/route."

// HasSensitiveKeyword reports whether name contains any sensitive keyword.
func HasSensitiveKeyword(name string) bool {
	upper := strings.ToUpper(name)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

// IsBundledPath reports whether a relative file path may end up in the browser
// bundle: under app/ or pages/ (optionally below src/), excluding the api/
// subtree and route handler files.
func IsBundledPath(file string) bool {
	p := path.Clean(strings.ReplaceAll(file, "\\", "/"))
	if strings.Contains(p, routeFileMarker) {
		return false
	}
	p = strings.TrimPrefix(p, "src/")
	if strings.HasPrefix(p, "app/api/") || strings.HasPrefix(p, "pages/api/") {
		return false
	}
	return strings.HasPrefix(p, "app/") || strings.HasPrefix(p, "pages/")
}

// IsServerRoutePath reports whether a relative file path belongs to a
// server-side API route by Next.js convention.
func IsServerRoutePath(file string) bool {
	p := path.Clean(strings.ReplaceAll(file, "\\", "/"))
	if strings.Contains(p, routeFileMarker) {
		return true
	}
	p = strings.TrimPrefix(p, "src/")
	return strings.HasPrefix(p, "app/api/") || strings.HasPrefix(p, "pages/api/")
}

// Rule is one independent risk heuristic. Evaluate inspects a variable's
// occurrences and returns zero or more findings; at most one occurrence is
// cited as evidence per rule.
type Rule interface {
	Evaluate(key string, occurrences []Occurrence) []Finding
}

// Rules is the ordered rule set applied to every non-missing variable.
var Rules = []Rule{
	sensitiveInBundledPath{},
	publicPrefixedSecret{},
	secretInClientFile{},
	publicOnlyInAPIRoutes{},
}

// sensitiveInBundledPath flags secret-looking names referenced from files that
// Next.js may compile into the browser bundle.
type sensitiveInBundledPath struct{}

func (sensitiveInBundledPath) Evaluate(key string, occurrences []Occurrence) []Finding {
	if !HasSensitiveKeyword(key) {
		return nil
	}
	for _, occ := range occurrences {
		if IsBundledPath(occ.File) {
			return []Finding{{
				Kind:      KindSensitiveInBundledPath,
				Key:       key,
				File:      occ.File,
				Line:      occ.Line,
				Rationale: fmt.Sprintf("%s looks like a secret and is referenced from %s, which may be bundled into browser code", key, occ.File),
			}}
		}
	}
	return nil
}

// publicPrefixedSecret flags NEXT_PUBLIC_ variables whose name still suggests
// credential material: the prefix guarantees client exposure.
type publicPrefixedSecret struct{}

func (publicPrefixedSecret) Evaluate(key string, occurrences []Occurrence) []Finding {
	if !strings.HasPrefix(key, PublicPrefix) || !HasSensitiveKeyword(key) {
		return nil
	}
	occ := occurrences[0]
	return []Finding{{
		Kind:      KindPublicPrefixedSecret,
		Key:       key,
		File:      occ.File,
		Line:      occ.Line,
		Rationale: fmt.Sprintf("%s is exposed to the browser by its %s prefix but its name suggests a secret", key, PublicPrefix),
	}}
}

// secretInClientFile flags non-public variables referenced inside a file
// carrying the "use client" directive.
type secretInClientFile struct{}

func (secretInClientFile) Evaluate(key string, occurrences []Occurrence) []Finding {
	if strings.HasPrefix(key, PublicPrefix) {
		return nil
	}
	cited := Occurrence{}
	found := false
	for _, occ := range occurrences {
		if occ.IsClientFile {
			cited = occ
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	return []Finding{{
		Kind:      KindSecretInClientFile,
		Key:       key,
		File:      cited.File,
		Line:      cited.Line,
		Rationale: fmt.Sprintf("%s has no %s prefix but is referenced in a client component; server-only variables are undefined there and secrets must never be", key, PublicPrefix),
	}}
}

// publicOnlyInAPIRoutes flags NEXT_PUBLIC_ variables used exclusively from
// server route files, where the browser exposure buys nothing.
type publicOnlyInAPIRoutes struct{}

func (publicOnlyInAPIRoutes) Evaluate(key string, occurrences []Occurrence) []Finding {
	if !strings.HasPrefix(key, PublicPrefix) {
		return nil
	}
	for _, occ := range occurrences {
		if !occ.IsServerRouteFile {
			return nil
		}
	}
	occ := occurrences[0]
	return []Finding{{
		Kind:      KindPublicOnlyInAPIRoutes,
		Key:       key,
		File:      occ.File,
		Line:      occ.Line,
		Rationale: fmt.Sprintf("%s is only referenced from API route files; the %s prefix exposes it to the browser for no reason", key, PublicPrefix),
	}}
}
