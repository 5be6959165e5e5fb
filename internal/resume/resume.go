package resume

import "github.com/spigell/resume-analyzer/internal/keywords"

// Document is a source file reduced to its text.
type Document struct {
	Filename string
	Text     string
}

// Record holds everything extracted from one document. Fields that found
// nothing carry their sentinel: extract.NotMentioned, ner.Unknown, or an empty
// string for Email and Phone.
type Record struct {
	Name            string
	Experience      string
	Email           string
	Phone           string
	Education       string
	Discipline      string
	PassingYear     string
	Skills          string
	CGPA            string
	Extracurricular string

	GenAI keywords.Result
	AIML  keywords.Result
}
