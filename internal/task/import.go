package task

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var defaultSchema string

const defaultSchemaURL = "plan-export.schema.json"

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ImportResult contains the outcome of an import attempt.
// Tasks is only populated when Errors is empty; an import is
// all-or-nothing so a single bad record rejects the whole payload.
type ImportResult struct {
	Tasks      []Task
	Errors     []string
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// OK returns true when the payload was accepted.
func (r *ImportResult) OK() bool {
	return len(r.Errors) == 0
}

// ExportJSON serializes the task collection as an indented JSON array,
// the shape ImportJSON accepts back unchanged.
func ExportJSON(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')
	return data, nil
}

// ImportJSON parses and validates an exported task list. schemaPath may
// point to an external schema file; when empty or unusable the embedded
// schema is used, and if that fails to compile validation falls back to
// minimal per-record checks. Every detected problem lands in
// result.Errors so the caller can show the full list at once.
func ImportJSON(data []byte, schemaPath string) *ImportResult {
	result := &ImportResult{
		Errors:   make([]string, 0),
		Warnings: make([]string, 0),
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("import data is not a task list: %v", err))
		return result
	}

	schema, warning := compileImportSchema(schemaPath)
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	if schema != nil {
		result.UsedSchema = true
		validateRecordsWithSchema(result, schema, data)
	} else {
		validateRecordsMinimal(result, records)
	}
	if len(result.Errors) > 0 {
		return result
	}

	tasks := make([]Task, 0, len(records))
	if err := json.Unmarshal(data, &tasks); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("decode tasks: %v", err))
		return result
	}

	// IDs must be unique within the collection.
	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if seen[t.ID] {
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: duplicate id %q", i+1, t.ID))
		}
		seen[t.ID] = true
	}
	if len(result.Errors) > 0 {
		return result
	}

	result.Tasks = tasks
	return result
}

// compileImportSchema compiles the external schema when given, otherwise
// the embedded one. Returns a nil schema plus a warning when neither is
// usable, which switches import validation to the minimal checks.
func compileImportSchema(schemaPath string) (*jsonschema.Schema, string) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if schemaPath != "" {
		absPath, err := filepath.Abs(schemaPath)
		if err == nil {
			if _, statErr := os.Stat(absPath); statErr == nil {
				schema, compileErr := compiler.Compile(absPath)
				if compileErr == nil {
					return schema, ""
				}
				return compileEmbeddedSchema(fmt.Sprintf("invalid schema file %s: %v", absPath, compileErr))
			}
		}
	}

	return compileEmbeddedSchema("")
}

func compileEmbeddedSchema(warning string) (*jsonschema.Schema, string) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(defaultSchemaURL, strings.NewReader(defaultSchema)); err != nil {
		return nil, fmt.Sprintf("load embedded schema: %v", err)
	}
	schema, err := compiler.Compile(defaultSchemaURL)
	if err != nil {
		return nil, fmt.Sprintf("compile embedded schema: %v", err)
	}
	return schema, warning
}

func validateRecordsWithSchema(result *ImportResult, schema *jsonschema.Schema, data []byte) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("parse import data: %v", err))
		return
	}
	if err := schema.Validate(doc); err != nil {
		appendSchemaErrors(result, err)
	}
}

func appendSchemaErrors(result *ImportResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ImportResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		path := jsonPointerToPath(err.InstanceLocation)
		if path == "" {
			result.Errors = append(result.Errors, err.Message)
			return
		}
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", path, err.Message))
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// validateRecordsMinimal checks each record by hand: the required string
// fields must be present and non-empty, duration must be a JSON number
// greater than zero, and the timestamps must parse as RFC 3339.
func validateRecordsMinimal(result *ImportResult, records []json.RawMessage) {
	for i, raw := range records {
		var obj map[string]interface{}
		if err := json.Unmarshal(raw, &obj); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: not an object", i+1))
			continue
		}

		for _, field := range []string{"id", "title", "tag", "dueDate"} {
			if msg := checkNonEmptyString(obj, field); msg != "" {
				result.Errors = append(result.Errors, fmt.Sprintf("record %d: %s", i+1, msg))
			}
		}

		switch v := obj["duration"].(type) {
		case nil:
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: missing duration", i+1))
		case float64:
			if v <= 0 {
				result.Errors = append(result.Errors, fmt.Sprintf("record %d: duration must be positive, got %v", i+1, v))
			}
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: duration must be a number", i+1))
		}

		for _, field := range []string{"createdAt", "updatedAt"} {
			msg := checkNonEmptyString(obj, field)
			if msg != "" {
				result.Errors = append(result.Errors, fmt.Sprintf("record %d: %s", i+1, msg))
				continue
			}
			s, _ := obj[field].(string)
			if _, err := time.Parse(time.RFC3339, s); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("record %d: %s is not a valid timestamp", i+1, field))
			}
		}
	}
}

func checkNonEmptyString(obj map[string]interface{}, field string) string {
	v, present := obj[field]
	if !present || v == nil {
		return fmt.Sprintf("missing %s", field)
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%s must be a string", field)
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Sprintf("empty %s", field)
	}
	return ""
}

func jsonPointerToPath(ptr string) string {
	if ptr == "" {
		return ""
	}
	if strings.HasPrefix(ptr, "#") {
		ptr = strings.TrimPrefix(ptr, "#")
	}
	if strings.HasPrefix(ptr, "/") {
		ptr = ptr[1:]
	}
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}

	return path
}
