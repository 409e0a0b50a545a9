package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldBackend is the structured log field key for the generation
	// backend name.
	FieldBackend = "backend"
	// FieldModel is the structured log field key for the model identifier.
	FieldModel = "model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields,
// trimming whitespace and omitting entries with empty keys or values.
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

// WithBackendFields attaches backend and model fields to the logger,
// skipping empty values. A nil logger is replaced with a no-op logger.
func WithBackendFields(logger *zap.Logger, backend, model string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	fields := StringFields(
		StringField{Key: FieldBackend, Value: backend},
		StringField{Key: FieldModel, Value: model},
	)
	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}
