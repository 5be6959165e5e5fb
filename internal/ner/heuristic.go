package ner

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/resume-analyzer/internal/extract"
)

const (
	minNameTokens = 2
	maxNameTokens = 4
)

// Words that start with a capital letter in résumés without being part of a name.
var nonNameWords = []string{
	"resume", "résumé", "curriculum", "vitae", "cv", "profile", "summary", "objective", "career",
	"contact", "details", "personal", "information", "name", "email", "e-mail", "phone", "mobile",
	"address", "linkedin", "github", "education", "educational", "qualification", "qualifications",
	"experience", "professional", "work", "employment", "history", "skills", "technical", "key",
	"projects", "project", "certifications", "achievements", "awards", "interests", "hobbies",
	"languages", "references", "declaration", "activities", "extracurricular", "internships",
	"university", "college", "institute", "school", "academy", "technology", "engineering", "science",
	"arts", "commerce", "degree", "senior", "junior", "lead", "software", "engineer", "developer",
	"manager", "analyst", "intern", "consultant", "director", "head", "team", "company", "limited",
	"ltd", "inc", "pvt", "private", "solutions", "services", "systems", "technologies", "group",
	"january", "february", "march", "april", "may", "june", "july", "august", "september",
	"october", "november", "december", "present", "current", "the", "and", "of", "in", "at", "for",
	"with", "to", "on", "by", "from", "a", "an", "mr", "mrs", "ms", "dr",
}

// Heuristic tags runs of two to four capitalized words on one line as PERSON.
// It needs no model and gives the same answer for the same text.
type Heuristic struct {
	stopwords map[string]struct{}
}

// NewHeuristic returns a rule-based recognizer. Extra words are never treated
// as part of a name.
func NewHeuristic(extra ...string) *Heuristic {
	stopwords := make(map[string]struct{}, len(nonNameWords)+len(extra))

	add := func(term string) {
		for _, word := range strings.Fields(strings.ToLower(term)) {
			stopwords[strings.TrimRight(word, ".")] = struct{}{}
		}
	}

	for _, word := range nonNameWords {
		add(word)
	}

	for _, vocabulary := range [][]string{extract.DegreeTerms, extract.DisciplineTerms, extract.SkillTerms, extract.ActivityTerms} {
		for _, term := range vocabulary {
			add(term)
		}
	}

	for _, word := range extra {
		add(word)
	}

	return &Heuristic{stopwords: stopwords}
}

// Entities implements Recognizer.
func (h *Heuristic) Entities(ctx context.Context, text string) ([]Entity, error) {
	var entities []Entity

	for _, line := range strings.Split(text, "\n") {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entities = append(entities, h.scanLine(line)...)
	}

	return entities, nil
}

func (h *Heuristic) scanLine(line string) []Entity {
	var (
		entities []Entity
		run      []string
	)

	flush := func() {
		if len(run) >= minNameTokens && len(run) <= maxNameTokens {
			entities = append(entities, Entity{Text: strings.Join(run, " "), Label: LabelPerson})
		}
		run = run[:0]
	}

	for _, raw := range strings.Fields(line) {
		word := strings.Trim(raw, `,;:|()[]{}"`)
		if !h.isNameToken(word) {
			flush()
			continue
		}

		run = append(run, word)
		if strings.ContainsAny(raw[len(raw)-1:], ",;:|") {
			flush()
		}
	}
	flush()

	return entities
}

func (h *Heuristic) isNameToken(word string) bool {
	if utf8.RuneCountInString(word) < 2 {
		return false
	}

	first, _ := utf8.DecodeRuneInString(word)
	if !unicode.IsUpper(first) {
		return false
	}

	// A dot is only accepted as the end of an initial such as "J.".
	if strings.Contains(word, ".") && !(utf8.RuneCountInString(word) == 2 && strings.HasSuffix(word, ".")) {
		return false
	}

	for _, r := range word {
		if !unicode.IsLetter(r) && r != '-' && r != '\'' && r != '.' {
			return false
		}
	}

	_, stop := h.stopwords[strings.ToLower(strings.TrimRight(word, "."))]
	return !stop
}
