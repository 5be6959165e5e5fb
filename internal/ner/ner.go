package ner

import (
	"context"
	"strings"
)

const (
	// LabelPerson marks entities naming a person.
	LabelPerson = "PERSON"
	// Unknown is reported when no person entity is found.
	Unknown = "Unknown"
)

// Entity is a tagged span of text.
type Entity struct {
	Text  string `mapstructure:"text" json:"text"`
	Label string `mapstructure:"label" json:"label"`
}

// Recognizer tags entities in text. Entities are returned in document order.
type Recognizer interface {
	Entities(ctx context.Context, text string) ([]Entity, error)
}

// FirstPerson returns the first PERSON entity found by the recognizer.
// Unknown is returned when there is none, when text is blank, or when the
// recognizer fails; the error is passed back for logging only.
func FirstPerson(ctx context.Context, recognizer Recognizer, text string) (string, error) {
	if recognizer == nil || strings.TrimSpace(text) == "" {
		return Unknown, nil
	}

	entities, err := recognizer.Entities(ctx, text)
	if err != nil {
		return Unknown, err
	}

	for _, entity := range entities {
		if !strings.EqualFold(strings.TrimSpace(entity.Label), LabelPerson) {
			continue
		}

		if name := strings.TrimSpace(entity.Text); name != "" {
			return name, nil
		}
	}

	return Unknown, nil
}
