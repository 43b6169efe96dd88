// Package schemas validates integration metadata payloads against the
// per-platform JSON schemas embedded under metadata/.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"resumehub/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed metadata/*.json
var metadataFS embed.FS

const commonSchema = "common"

var platformSchemas = map[models.Platform]string{
	models.PlatformGitHub:   "github",
	models.PlatformDevfolio: "devfolio",
	models.PlatformCoursera: "coursera",
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	parts := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return fmt.Sprintf("invalid %s metadata: %s", ve.Schema, strings.Join(parts, "; "))
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Name, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	compiled   = map[string]*gojsonschema.Schema{}
	compiledMu sync.Mutex
)

func load(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, ok := compiled[name]; ok {
		return schema, nil
	}

	content, err := metadataFS.ReadFile("metadata/" + name + ".json")
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Cause: err}
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Cause: err}
	}

	compiled[name] = schema
	return schema, nil
}

// ValidateMetadata checks the payload against the shared schema and, when
// the platform has one, its own schema. A nil payload is treated as empty.
func ValidateMetadata(platform models.Platform, metadata map[string]any) error {
	if metadata == nil {
		metadata = map[string]any{}
	}

	names := []string{commonSchema}
	if name, ok := platformSchemas[platform]; ok {
		names = append(names, name)
	}

	document := gojsonschema.NewGoLoader(metadata)
	for _, name := range names {
		schema, err := load(name)
		if err != nil {
			return err
		}

		result, err := schema.Validate(document)
		if err != nil {
			return &SchemaLoadError{Name: name, Cause: err}
		}

		if result.Valid() {
			continue
		}

		validationErr := &ValidationError{
			Schema: name,
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

	return nil
}
