package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Document is one package's package.json held in memory for a single
// standardization pass. It is not safe for concurrent use.
type Document struct {
	root     string
	path     string
	raw      []byte
	contents Contents
	actions  []string
	dirty    bool
}

// Load reads and validates <packageRoot>/package.json. A missing file yields
// an error matching ErrNotFound; malformed content yields a *ParseError.
func Load(packageRoot string) (*Document, error) {
	path := filepath.Join(packageRoot, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: path, Err: errors.New("invalid JSON")}
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, &ParseError{Path: path, Err: errors.New("document is not a JSON object")}
	}

	result, err := Validate(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if !result.Valid {
		return nil, &ParseError{Path: path, Issues: result.Issues}
	}

	var contents Contents
	if err := json.Unmarshal(data, &contents); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return &Document{
		root:     packageRoot,
		path:     path,
		raw:      data,
		contents: contents,
	}, nil
}

// Root returns the package root the document was loaded from.
func (d *Document) Root() string { return d.root }

// Path returns the full path to package.json.
func (d *Document) Path() string { return d.path }

// Name returns the package name, or an empty string.
func (d *Document) Name() string { return d.contents.Name }

// Get returns the current value at a gjson path, e.g. "engines.node".
func (d *Document) Get(path string) gjson.Result {
	return gjson.GetBytes(d.raw, path)
}

// License returns the declared license, or an empty string.
func (d *Document) License() string { return d.contents.License }

// Scripts returns a copy of the scripts block. It is never nil.
func (d *Document) Scripts() map[string]string {
	out := make(map[string]string, len(d.contents.Scripts))
	maps.Copy(out, d.contents.Scripts)
	return out
}

// Wireit returns a copy of the wireit block. It is never nil.
func (d *Document) Wireit() map[string]any {
	out := make(map[string]any, len(d.contents.Wireit))
	maps.Copy(out, d.contents.Wireit)
	return out
}

// EngineNode returns engines.node, or an empty string when undeclared.
func (d *Document) EngineNode() string {
	if d.contents.Engines == nil {
		return ""
	}
	return d.contents.Engines.Node
}

// SetLicense overwrites the license field.
func (d *Document) SetLicense(license string) error {
	if err := d.set("license", license); err != nil {
		return err
	}
	d.contents.License = license
	return nil
}

// SetScript overwrites or adds scripts[name].
func (d *Document) SetScript(name, command string) error {
	if err := d.set("scripts."+escapeKey(name), command); err != nil {
		return err
	}
	if d.contents.Scripts == nil {
		d.contents.Scripts = make(map[string]string)
	}
	d.contents.Scripts[name] = command
	return nil
}

// SetWireit overwrites or adds wireit[name].
func (d *Document) SetWireit(name string, value any) error {
	if err := d.set("wireit."+escapeKey(name), value); err != nil {
		return err
	}
	if d.contents.Wireit == nil {
		d.contents.Wireit = make(map[string]any)
	}
	d.contents.Wireit[name] = value
	return nil
}

// SetEngineNode overwrites engines.node.
func (d *Document) SetEngineNode(v string) error {
	if err := d.set("engines.node", v); err != nil {
		return err
	}
	if d.contents.Engines == nil {
		d.contents.Engines = &Engines{}
	}
	d.contents.Engines.Node = v
	return nil
}

// RecordAction appends a human-readable description of a change.
func (d *Document) RecordAction(description string) {
	d.actions = append(d.actions, description)
}

// Actions returns the recorded change descriptions in order.
func (d *Document) Actions() []string {
	return append([]string(nil), d.actions...)
}

// Dirty reports whether the document has unwritten changes.
func (d *Document) Dirty() bool { return d.dirty }

// Write persists the document if it has changed and reports whether the file
// was written. The output uses two-space indentation and a trailing newline.
func (d *Document) Write() (bool, error) {
	if !d.dirty {
		return false, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(d.raw), "", "  "); err != nil {
		return false, fmt.Errorf("formatting manifest %s: %w", d.path, err)
	}
	buf.WriteByte('\n')

	if err := writeFileAtomic(d.path, buf.Bytes()); err != nil {
		return false, err
	}

	d.raw = buf.Bytes()
	d.dirty = false
	return true, nil
}

// set replaces the value at path in the raw document, preserving key order.
func (d *Document) set(path string, value any) error {
	encoded, err := marshalValue(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	raw, err := sjson.SetRawBytes(d.raw, path, encoded)
	if err != nil {
		return fmt.Errorf("setting %s in %s: %w", path, d.path, err)
	}
	d.raw = raw
	d.dirty = true
	return nil
}

// marshalValue encodes v without HTML escaping so commands like
// "a && b" stay readable in the written file.
func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// escapeKey escapes path syntax characters in a single object key.
func escapeKey(key string) string {
	// A leading ':' forces an object key in sjson paths.
	if !strings.ContainsAny(key, `.*?\|#@`) && !strings.HasPrefix(key, ":") {
		return key
	}
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == ':' && i == 0:
			b.WriteByte('\\')
		case strings.ContainsRune(`.*?\|#@`, r):
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// writeFileAtomic writes data to a temp file next to path and renames it into
// place, keeping the existing file mode.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
