package lintconfig

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
)

//go:embed templates/eslintrc.cjs.tmpl
var templateFS embed.FS

// FileName is the generated config file name.
const FileName = ".eslintrc.cjs"

// Options selects the generated variant.
type Options struct {
	// Strict also extends the license header config.
	Strict bool
}

type templateData struct {
	Strict  bool
	Extends []string
}

var baseExtends = []string{"eslint-config-salesforce-typescript", "eslint-config-prettier"}

// Extends returns the shared configs the generated file extends.
func Extends(opts Options) []string {
	if !opts.Strict {
		return append([]string(nil), baseExtends...)
	}
	return []string{"eslint-config-salesforce-typescript", "eslint-config-salesforce-license", "eslint-config-prettier"}
}

// Render writes the generated config to w.
func Render(w io.Writer, opts Options) error {
	tmpl, err := template.ParseFS(templateFS, "templates/eslintrc.cjs.tmpl")
	if err != nil {
		return fmt.Errorf("parsing lint config template: %w", err)
	}

	data := templateData{
		Strict:  opts.Strict,
		Extends: Extends(opts),
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering lint config: %w", err)
	}
	return nil
}

// Write renders the config into root/.eslintrc.cjs and reports whether the
// file content changed.
func Write(root string, opts Options) (bool, error) {
	var buf bytes.Buffer
	if err := Render(&buf, opts); err != nil {
		return false, err
	}

	path := filepath.Join(root, FileName)
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, buf.Bytes()) {
		return false, nil
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
