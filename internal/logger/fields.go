package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Field keys shared by every component.
const (
	FieldDictionary = "dictionary_version"
	FieldEmbedder   = "embedder"
	FieldModel      = "embedding_model"
	FieldRunID      = "run_id"
	FieldJD         = "jd"
	FieldResume     = "resume"
)

// Strings turns key/value pairs into zap string fields. Keys and values are
// trimmed, pairs with an empty side are skipped and a dangling key is ignored.
func Strings(pairs ...string) []zap.Field {
	result := make([]zap.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key := strings.TrimSpace(pairs[i])
		value := strings.TrimSpace(pairs[i+1])
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// EngineFields describe the dictionary and embedder a comparison runs with.
func EngineFields(dictionary, embedder, model string) []zap.Field {
	return Strings(
		FieldDictionary, dictionary,
		FieldEmbedder, embedder,
		FieldModel, model,
	)
}

// WithEngineFields attaches the engine fields to logger.
func WithEngineFields(logger *zap.Logger, dictionary, embedder, model string) *zap.Logger {
	return WithFields(logger, EngineFields(dictionary, embedder, model)...)
}

// RunFields identify one ranking run of a job description.
func RunFields(runID, jd string) []zap.Field {
	return Strings(FieldRunID, runID, FieldJD, jd)
}
