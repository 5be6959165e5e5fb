package keywords

import (
	"strings"
)

// Set is a named list of keywords supplied by the caller.
type Set struct {
	Name     string
	Keywords []string
}

// Result holds the number of keywords found in a text and the found keywords
// in the order they were supplied.
type Result struct {
	Score   int
	Matched []string
}

// Joined renders the matched keywords the way they are written into reports.
func (r Result) Joined() string {
	return strings.Join(r.Matched, ", ")
}

// Match checks every keyword for case-insensitive containment in text.
// Keywords are used as given: they are neither trimmed nor deduplicated, so an
// empty keyword is contained in every text.
func Match(text string, keywords []string) Result {
	lower := strings.ToLower(text)
	matched := make([]string, 0, len(keywords))

	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}

	return Result{Score: len(matched), Matched: matched}
}

// Score matches the set against text.
func (s Set) Score(text string) Result {
	return Match(text, s.Keywords)
}

// Parse splits comma separated keyword input. Surrounding whitespace is kept
// on every element; blank input yields no keywords.
func Parse(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	return strings.Split(raw, ",")
}
