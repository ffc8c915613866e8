package extractor

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mvetter/envrisk/internal/analyzer"
	"github.com/mvetter/envrisk/internal/scanner"
)

var (
	// process.env.NAME
	dotPattern = regexp.MustCompile(`process\.env\.([A-Z0-9_]+)`)
	// process.env["NAME"] or process.env['NAME']
	bracketPattern = regexp.MustCompile(`process\.env\[["']([A-Z0-9_]+)["']\]`)
)

// HasClientDirective reports whether source text contains a "use client"
// directive. The directive is only meaningful as the first statement of a
// file, but matching it anywhere keeps the check cheap; the imprecision is
// accepted heuristic looseness.
func HasClientDirective(text string) bool {
	return strings.Contains(text, `"use client"`) || strings.Contains(text, `'use client'`)
}

// Extract reads every file and records each environment-variable reference.
// Files are processed sequentially in the order the scanner produced them so
// occurrence order (and therefore first-occurrence citations) is stable.
// A file that cannot be read is skipped, not fatal.
//
// Returns the usage index and the number of files actually read.
func Extract(files []scanner.FileInfo, silent bool) (analyzer.UsageIndex, int) {
	index := make(analyzer.UsageIndex)
	scanned := 0

	for _, file := range files {
		content, err := os.ReadFile(file.Path)
		if err != nil {
			if !silent {
				fmt.Fprintf(os.Stderr, "Warning: failed to read %s: %v\n", file.Path, err)
			}
			continue
		}
		scanned++
		extractFile(index, file.Rel, string(content))
	}

	return index, scanned
}

// extractFile records all matches in one file. Dot-access matches are
// recorded before bracket-access matches; duplicates on the same line are
// kept as distinct occurrences.
func extractFile(index analyzer.UsageIndex, rel string, text string) {
	isClient := HasClientDirective(text)
	isServerRoute := analyzer.IsServerRoutePath(rel)

	for _, pattern := range []*regexp.Regexp{dotPattern, bracketPattern} {
		for _, match := range pattern.FindAllStringSubmatchIndex(text, -1) {
			key := text[match[2]:match[3]]
			index[key] = append(index[key], analyzer.Occurrence{
				File:              rel,
				Line:              lineNumber(text, match[0]),
				IsClientFile:      isClient,
				IsServerRouteFile: isServerRoute,
			})
		}
	}
}

// lineNumber computes the 1-based line of a byte offset by counting the
// newlines that precede it.
func lineNumber(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
