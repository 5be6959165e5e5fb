package extract

import (
	"regexp"
	"strings"
)

// NotMentioned is the value reported when a field has no match in the text.
const NotMentioned = "Not Mentioned"

// Strategy looks for a field value in text. ok is false when nothing matched.
type Strategy struct {
	Name string
	Find func(text string) (value string, ok bool)
}

// Field is an ordered list of strategies. The first strategy that matches wins;
// when none does, Sentinel is returned.
type Field struct {
	Name       string
	Strategies []Strategy
	Sentinel   string
}

// Extract runs the strategies of the field against text in order.
func (f Field) Extract(text string) string {
	for _, strategy := range f.Strategies {
		if strategy.Find == nil {
			continue
		}
		if value, ok := strategy.Find(text); ok {
			return value
		}
	}

	return f.Sentinel
}

// FirstMatch returns a strategy reporting the leftmost match of re.
func FirstMatch(name string, re *regexp.Regexp) Strategy {
	return Strategy{
		Name: name,
		Find: func(text string) (string, bool) {
			loc := re.FindStringIndex(text)
			if loc == nil {
				return "", false
			}
			return text[loc[0]:loc[1]], true
		},
	}
}

// Vocabulary returns a strategy reporting every term contained in the text,
// compared case-insensitively, joined in vocabulary order.
// Containment is a plain substring check: "Java" is found inside "JavaScript".
func Vocabulary(name string, terms []string) Strategy {
	return Strategy{
		Name: name,
		Find: func(text string) (string, bool) {
			found := Contained(text, terms)
			if len(found) == 0 {
				return "", false
			}
			return strings.Join(found, ", "), true
		},
	}
}

// Contained returns the terms found in text, keeping the order of terms.
func Contained(text string, terms []string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, len(terms))
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}

	return found
}
