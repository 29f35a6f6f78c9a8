// Package cleanup provides shared text normalisation for all normalisers.
package cleanup

import (
	"regexp"
	"strings"
)

var (
	nbsp      = regexp.MustCompile(`\x{00a0}`)
	runSpaces = regexp.MustCompile(`[ \t]+`)
	manyLines = regexp.MustCompile(`\n{3,}`)
)

// repeatedLineThreshold is how often a short line must appear before it
// is treated as a running header/footer and removed.
const repeatedLineThreshold = 3

// maxHeaderLen is the longest line considered a header/footer candidate.
const maxHeaderLen = 60

// Text normalises whitespace and removes obvious repeated headers and
// footers left over from page-oriented formats.
func Text(text string) string {
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = nbsp.ReplaceAllString(s, " ")
	s = runSpaces.ReplaceAllString(s, " ")
	s = manyLines.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	lines = dropRepeatedShortLines(lines)

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// dropRepeatedShortLines removes short lines that recur across the
// document, which are almost always page headers or footers.
func dropRepeatedShortLines(lines []string) []string {
	freq := make(map[string]int)
	for _, ln := range lines {
		if n := len(ln); n > 0 && n <= maxHeaderLen {
			freq[ln]++
		}
	}

	repeated := make(map[string]bool)
	for ln, n := range freq {
		if n >= repeatedLineThreshold {
			repeated[ln] = true
		}
	}
	if len(repeated) == 0 {
		return lines
	}

	kept := lines[:0]
	for _, ln := range lines {
		if !repeated[ln] {
			kept = append(kept, ln)
		}
	}
	return kept
}

// Title extracts a human-readable title from a URI or file path.
func Title(uri string) string {
	base := uri
	if idx := strings.LastIndexAny(base, "/\\"); idx != -1 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.TrimSpace(base)
	if base == "" {
		return "untitled"
	}
	return base
}
