package export

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/spigell/skillscreen/internal/engine"
)

//go:embed schema.json
var reportSchema string

// Report is the JSON document written by the compare command.
type Report struct {
	Tool        string            `json:"tool"`
	Version     string            `json:"version"`
	Dictionary  string            `json:"dictionary_version,omitempty"`
	Embedder    string            `json:"embedder,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
	Rankings    []*engine.Ranking `json:"rankings"`
}

// ValidationError lists the places where a report does not match its schema.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Marshal encodes the report as indented JSON.
func Marshal(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	return data, nil
}

// Validate checks encoded report JSON against the embedded schema.
func Validate(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(reportSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed during load: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}

// WriteJSON writes the report to path. The file is written even when schema
// validation fails; the validation error is returned separately so callers can warn.
func WriteJSON(path string, r *Report) (validation error, err error) {
	data, err := Marshal(r)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	return Validate(data), nil
}

// DumpToTmpFile writes the report to a new temporary file and returns its name.
func DumpToTmpFile(r *Report) (string, error) {
	file, err := os.CreateTemp("", "skillscreen_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
