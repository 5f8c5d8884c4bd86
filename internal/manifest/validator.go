package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var schemaBytes []byte

var (
	packageSchema     *jsonschema.Schema
	packageSchemaErr  error
	packageSchemaOnce sync.Once

	printer = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one package.json value with an unexpected shape.
type ValidationIssue struct {
	Path    string // JSON pointer, e.g. "/scripts/build"; empty for the document
	Field   string // top-level field, e.g. "scripts"
	Key     string // entry under Field, e.g. the script name
	Message string
}

func compiledSchema() (*jsonschema.Schema, error) {
	packageSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			packageSchemaErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("package.schema.json", doc); err != nil {
			packageSchemaErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		if packageSchema, err = c.Compile("package.schema.json"); err != nil {
			packageSchemaErr = fmt.Errorf("compiling schema: %w", err)
		}
	})
	return packageSchema, packageSchemaErr
}

// Validate checks raw package.json bytes against the fields devscripts
// manages. The error return is for malformed JSON or schema failures; shape
// problems are reported in the ValidationResult, sorted by path.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	issues := packageIssues(ve)
	slices.SortFunc(issues, func(a, b ValidationIssue) int { return strings.Compare(a.Path, b.Path) })
	return &ValidationResult{Issues: issues}, nil
}

// ValidateFile reads a file and validates it against the schema.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// packageIssues flattens the error tree into one issue per offending value.
// Group errors ("properties", "additionalProperties") only carry causes.
func packageIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	if len(ve.Causes) > 0 {
		var issues []ValidationIssue
		for _, cause := range ve.Causes {
			issues = append(issues, packageIssues(cause)...)
		}
		return issues
	}

	loc := ve.InstanceLocation
	issue := ValidationIssue{Message: describe(loc, ve.ErrorKind)}
	if len(loc) > 0 {
		issue.Path = "/" + strings.Join(loc, "/")
		issue.Field = loc[0]
	}
	if len(loc) > 1 {
		issue.Key = loc[1]
	}
	return []ValidationIssue{issue}
}

// describe names the offending value the way package.json authors know it.
func describe(loc []string, k jsonschema.ErrorKind) string {
	t, ok := k.(*kind.Type)
	if !ok {
		if k == nil {
			return "invalid value"
		}
		return k.LocalizedString(printer)
	}
	want := strings.Join(t.Want, " or ")

	switch {
	case len(loc) == 0:
		return fmt.Sprintf("package.json must be an %s, got %s", want, t.Got)
	case len(loc) == 2 && loc[0] == "scripts":
		return fmt.Sprintf("script %q must be a %s, got %s", loc[1], want, t.Got)
	case len(loc) == 2 && loc[0] == "wireit":
		return fmt.Sprintf("wireit entry %q must be an %s, got %s", loc[1], want, t.Got)
	case len(loc) == 2 && loc[0] == "engines":
		return fmt.Sprintf("engines.%s must be a %s, got %s", loc[1], want, t.Got)
	default:
		return fmt.Sprintf("%q must be of type %s, got %s", strings.Join(loc, "."), want, t.Got)
	}
}
