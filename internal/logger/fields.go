package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldDocument is the structured log field key for the source file name.
	FieldDocument = "document"
	// FieldRecognizer is the structured log field key for the name recognizer in use.
	FieldRecognizer = "recognizer"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldRunID is the structured log field key correlating the lines of one run.
	FieldRunID = "run_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// WithDocument scopes logger to one source document.
func WithDocument(logger *zap.Logger, filename string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldDocument, Value: filename})...)
}

// WithRecognizer scopes logger to the name recognizer and, when there is one, its model.
func WithRecognizer(logger *zap.Logger, recognizer, model string) *zap.Logger {
	return WithFields(logger, StringFields(
		StringField{Key: FieldRecognizer, Value: recognizer},
		StringField{Key: FieldModel, Value: model},
	)...)
}
