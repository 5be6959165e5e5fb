package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ner"
	"github.com/spigell/resume-analyzer/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
}

//go:embed prompt.md
var systemPrompt string

const (
	defaultMaxLogLength = 200
	// Names sit near the top of a résumé; the tail is not worth the tokens.
	maxDocumentRunes = 20000
)

// Recognizer tags entities by asking Gemini to list them.
type Recognizer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ner.Recognizer = (*Recognizer)(nil)

func NewRecognizer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Recognizer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Recognizer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Entities implements ner.Recognizer.
func (r *Recognizer) Entities(ctx context.Context, text string) ([]ner.Entity, error) {
	if r.generator == nil {
		return nil, fmt.Errorf("gemini generator is required")
	}

	prompt := buildPrompt(text)

	r.logger.Debug("gemini entities request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini entities response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > maxDocumentRunes {
		runes = runes[:maxDocumentRunes]
	}

	return "Document:\n" + string(runes)
}

func parseResponse(raw string) ([]ner.Entity, error) {
	cleaned := extractJSON(raw)

	var data any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	// Some answers drop the wrapper object and return the list itself.
	if wrapped, ok := data.(map[string]any); ok {
		data = wrapped["entities"]
	}

	var decoded []ner.Entity
	if err := mapstructure.Decode(data, &decoded); err != nil {
		return nil, fmt.Errorf("decode gemini entities: %w", err)
	}

	entities := make([]ner.Entity, 0, len(decoded))
	for _, entity := range decoded {
		text := strings.TrimSpace(entity.Text)
		if text == "" {
			continue
		}
		entities = append(entities, ner.Entity{
			Text:  text,
			Label: strings.ToUpper(strings.TrimSpace(entity.Label)),
		})
	}

	return entities, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
