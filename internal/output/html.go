package output

import (
	"fmt"
	"html"
	"os"
	"sort"
	"strings"

	"github.com/mvetter/envrisk/internal/analyzer"
)

// WriteHTML renders the markup report mirroring the console summary: four
// metric tiles followed by the critical/warning/info sections. All dynamic
// text goes through html.EscapeString, which covers & < > " '.
func WriteHTML(result analyzer.ScanResult, target string, path string) error {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>Environment Variable Report</title>\n<style>\n")
	b.WriteString("body{font-family:system-ui,sans-serif;margin:2rem;color:#222}\n")
	b.WriteString(".tiles{display:flex;gap:1rem;margin-bottom:2rem}\n")
	b.WriteString(".tile{border:1px solid #ddd;border-radius:6px;padding:1rem 1.5rem;min-width:8rem}\n")
	b.WriteString(".tile .num{font-size:2rem;font-weight:bold}\n")
	b.WriteString(".critical{color:#b00020}.warning{color:#a05a00}.info{color:#666}\n")
	b.WriteString("table{border-collapse:collapse}td,th{border:1px solid #ddd;padding:.3rem .6rem;text-align:left}\n")
	b.WriteString("</style>\n</head>\n<body>\n")

	fmt.Fprintf(&b, "<h1>Environment Variable Report</h1>\n<p>Scanned target: <code>%s</code></p>\n", html.EscapeString(target))

	b.WriteString("<div class=\"tiles\">\n")
	writeTile(&b, result.FilesScanned, "files scanned")
	writeTile(&b, len(result.Usages), "variables found")
	writeTile(&b, len(result.Missing), "missing")
	writeTile(&b, len(result.Findings), "risks")
	b.WriteString("</div>\n")

	writeMissingSection(&b, result)
	writeRiskSection(&b, result)
	writeUnusedSection(&b, result)

	b.WriteString("</body>\n</html>\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeTile(b *strings.Builder, value int, label string) {
	fmt.Fprintf(b, "<div class=\"tile\"><div class=\"num\">%d</div><div>%s</div></div>\n", value, html.EscapeString(label))
}

func writeMissingSection(b *strings.Builder, result analyzer.ScanResult) {
	b.WriteString("<h2 class=\"critical\">Missing variables</h2>\n")
	if len(result.Missing) == 0 {
		b.WriteString("<p>None.</p>\n")
		return
	}
	b.WriteString("<ul>\n")
	for _, key := range result.Missing {
		fmt.Fprintf(b, "<li><code>%s</code><ul>\n", html.EscapeString(key))
		for _, occ := range result.Usages[key] {
			fmt.Fprintf(b, "<li>%s:%d</li>\n", html.EscapeString(occ.File), occ.Line)
		}
		b.WriteString("</ul></li>\n")
	}
	b.WriteString("</ul>\n")
}

func writeRiskSection(b *strings.Builder, result analyzer.ScanResult) {
	b.WriteString("<h2 class=\"warning\">Exposure risks</h2>\n")
	if len(result.Findings) == 0 {
		b.WriteString("<p>None.</p>\n")
		return
	}
	b.WriteString("<table>\n<tr><th>Variable</th><th>Kind</th><th>Location</th><th>Rationale</th></tr>\n")
	for _, f := range result.Findings {
		fmt.Fprintf(b, "<tr><td><code>%s</code></td><td>%s</td><td>%s:%d</td><td>%s</td></tr>\n",
			html.EscapeString(f.Key),
			html.EscapeString(string(f.Kind)),
			html.EscapeString(f.File), f.Line,
			html.EscapeString(f.Rationale))
	}
	b.WriteString("</table>\n")
}

func writeUnusedSection(b *strings.Builder, result analyzer.ScanResult) {
	b.WriteString("<h2 class=\"info\">Unused variables</h2>\n")
	if len(result.Unused) == 0 {
		b.WriteString("<p>None.</p>\n")
		return
	}
	sorted := make([]string, len(result.Unused))
	copy(sorted, result.Unused)
	sort.Strings(sorted)
	b.WriteString("<ul>\n")
	for _, key := range sorted {
		fmt.Fprintf(b, "<li><code>%s</code></li>\n", html.EscapeString(key))
	}
	b.WriteString("</ul>\n")
}
