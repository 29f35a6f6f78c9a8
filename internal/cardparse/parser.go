// Package cardparse extracts front/back pairs from LLM replies.
// Models are asked for tab-separated output but drift into other shapes;
// the parser tries strict formats first and falls back to permissive ones:
//
//   - tsv: "question<TAB>answer" per line
//   - "Q: ... A: ..." on one line, or across two lines
//   - numbered/bulleted "1) Question - Answer" lists
//   - a JSON array of {"front": ..., "back": ...} objects
package cardparse

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Pair is one parsed front/back candidate before it becomes a card.
type Pair struct {
	Front string
	Back  string
}

var (
	qPrefix   = regexp.MustCompile(`(?i)^\s*(q(uestion)?[:\-]\s*)`)
	aPrefix   = regexp.MustCompile(`(?i)^\s*(a(nswer)?[:\-]\s*)`)
	numPrefix = regexp.MustCompile(`^\s*[-•*]?\s*(\d+[).\-:]|-|•|\*)\s*`)
	spaces    = regexp.MustCompile(`\s+`)
)

// Parse tries each format from strict to permissive and returns the
// first non-empty result. An unparseable reply yields nil.
func Parse(text string) []Pair {
	parsers := []func(string) []Pair{
		parseTSVLines,
		parseQAOneLine,
		parseQATwoLines,
		parseNumberedPairs,
		parseJSONList,
	}
	for _, p := range parsers {
		if pairs := p(text); len(pairs) > 0 {
			return pairs
		}
	}
	return nil
}

// cleanPiece strips bullets, Q:/A: prefixes, and collapses whitespace.
func cleanPiece(s string) string {
	s = numPrefix.ReplaceAllString(strings.TrimSpace(s), "")
	s = qPrefix.ReplaceAllString(s, "")
	s = aPrefix.ReplaceAllString(s, "")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

func parseTSVLines(text string) []Pair {
	var out []Pair
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || !strings.Contains(line, "\t") {
			continue
		}
		front, back, _ := strings.Cut(line, "\t")
		front, back = cleanPiece(front), cleanPiece(back)
		if front != "" && back != "" {
			out = append(out, Pair{Front: front, Back: back})
		}
	}
	return out
}

func parseQAOneLine(text string) []Pair {
	var out []Pair
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || !qPrefix.MatchString(line) {
			continue
		}
		for _, sep := range []string{" A:", " Answer:"} {
			rest := qPrefix.ReplaceAllString(line, "")
			front, back, found := strings.Cut(rest, sep)
			if !found {
				continue
			}
			front, back = cleanPiece(front), cleanPiece(back)
			if front != "" && back != "" {
				out = append(out, Pair{Front: front, Back: back})
			}
			break
		}
	}
	return out
}

func parseQATwoLines(text string) []Pair {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}

	var out []Pair
	for i := 0; i < len(lines)-1; {
		l1, l2 := lines[i], lines[i+1]
		if qPrefix.MatchString(l1) && aPrefix.MatchString(l2) {
			front := cleanPiece(qPrefix.ReplaceAllString(l1, ""))
			back := cleanPiece(aPrefix.ReplaceAllString(l2, ""))
			if front != "" && back != "" {
				out = append(out, Pair{Front: front, Back: back})
			}
			i += 2
			continue
		}
		i++
	}
	return out
}

// pairSeparators are the common separators between question and answer
// in numbered list replies.
var pairSeparators = []string{" - ", " — ", " : ", " – "}

func parseNumberedPairs(text string) []Pair {
	var out []Pair
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		line = numPrefix.ReplaceAllString(line, "")
		for _, sep := range pairSeparators {
			front, back, found := strings.Cut(line, sep)
			if !found {
				continue
			}
			front, back = cleanPiece(front), cleanPiece(back)
			if front != "" && back != "" {
				out = append(out, Pair{Front: front, Back: back})
			}
			break
		}
	}
	return out
}

// jsonCard accepts both front/back and question/answer key styles.
type jsonCard struct {
	Front    string `json:"front"`
	Back     string `json:"back"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func parseJSONList(text string) []Pair {
	var items []jsonCard
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		// The array may be wrapped in prose; try the outermost brackets.
		start, end := strings.Index(text, "["), strings.LastIndex(text, "]")
		if start == -1 || end <= start {
			return nil
		}
		if err := json.Unmarshal([]byte(text[start:end+1]), &items); err != nil {
			return nil
		}
	}

	var out []Pair
	for _, item := range items {
		front := cleanPiece(item.Front)
		if front == "" {
			front = cleanPiece(item.Question)
		}
		back := cleanPiece(item.Back)
		if back == "" {
			back = cleanPiece(item.Answer)
		}
		if front != "" && back != "" {
			out = append(out, Pair{Front: front, Back: back})
		}
	}
	return out
}
