package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// FileName is the manifest file name inside a package root.
const FileName = "package.json"

// ErrNotFound is returned by Load when the package has no package.json.
var ErrNotFound = errors.New("manifest not found")

// Contents is the typed view of the package.json fields that standardization
// reads. Absent fields stay at their zero values.
type Contents struct {
	Name    string            `json:"name,omitempty"`
	Version string            `json:"version,omitempty"`
	License string            `json:"license,omitempty"`
	Scripts map[string]string `json:"scripts,omitempty"`
	Wireit  map[string]any    `json:"wireit,omitempty"`
	Engines *Engines          `json:"engines,omitempty"`
}

// Engines holds the engines block of package.json.
type Engines struct {
	Node string `json:"node,omitempty"`
}

// ParseError reports a package.json that is not valid JSON or does not match
// the expected field shapes.
type ParseError struct {
	Path   string
	Issues []ValidationIssue
	Err    error
}

// Error returns the error message for ParseError.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing manifest %s: %v", e.Path, e.Err)
	}
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			msgs = append(msgs, issue.Path+": "+issue.Message)
		} else {
			msgs = append(msgs, issue.Message)
		}
	}
	return fmt.Sprintf("parsing manifest %s: %s", e.Path, strings.Join(msgs, "; "))
}

// Unwrap returns the underlying error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}
