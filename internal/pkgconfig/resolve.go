package pkgconfig

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

//go:embed defaults.yaml
var rawDefaults []byte

// DefaultLicense is used when no configuration layer names a license.
const DefaultLicense = "BSD-3-Clause"

// Profile names in defaults.yaml.
const (
	ProfileTypeScript = "typescript"
	ProfileJSBin      = "js-bin"
)

// RCFiles are the local override file names, in lookup order.
var RCFiles = []string{".devscriptsrc.yml", ".devscriptsrc.yaml", ".devscriptsrc.json", ".devscriptsrc"}

// Options carries facts about the package detected by the caller.
type Options struct {
	// JSBinScripts is set when the package ships a JavaScript CLI entry point.
	JSBinScripts bool
}

// Config is the resolved target configuration for one package.
// Scripts and Wireit are never nil.
type Config struct {
	License string
	Scripts map[string]string
	Wireit  map[string]any
}

// Layer is one configuration source: the baseline, a profile, or a local
// override file.
type Layer struct {
	License        string            `yaml:"license,omitempty"`
	Scripts        map[string]string `yaml:"scripts,omitempty"`
	Wireit         map[string]any    `yaml:"wireit,omitempty"`
	ExcludeScripts []string          `yaml:"exclude-scripts,omitempty"`
}

type baseline struct {
	Layer    `yaml:",inline"`
	Profiles map[string]Layer `yaml:"profiles"`
}

// Resolve merges the baseline, the profiles matching packageRoot, and the
// package's override file into a new Config. Nothing is cached between calls.
func Resolve(packageRoot string, opts Options) (*Config, error) {
	var base baseline
	if err := yaml.Unmarshal(rawDefaults, &base); err != nil {
		return nil, fmt.Errorf("parsing baseline config: %w", err)
	}

	cfg := &Config{
		Scripts: make(map[string]string),
		Wireit:  make(map[string]any),
	}
	cfg.apply(base.Layer)

	for _, name := range Profiles(packageRoot, opts) {
		if p, ok := base.Profiles[name]; ok {
			cfg.apply(p)
		}
	}

	local, _, err := LoadOverrides(packageRoot)
	if err != nil {
		return nil, err
	}
	if local != nil {
		cfg.apply(*local)
		for _, name := range local.ExcludeScripts {
			delete(cfg.Scripts, name)
			delete(cfg.Wireit, name)
		}
	}

	for name, v := range cfg.Wireit {
		n, err := normalize(v)
		if err != nil {
			return nil, fmt.Errorf("normalizing wireit entry %q: %w", name, err)
		}
		// package.json only accepts objects here.
		if _, ok := n.(map[string]any); !ok {
			return nil, fmt.Errorf("wireit entry %q: got %T, want object", name, v)
		}
		cfg.Wireit[name] = n
	}

	return cfg, nil
}

// Profiles returns the names of the profiles that apply to packageRoot, in
// the order they are layered.
func Profiles(packageRoot string, opts Options) []string {
	var names []string
	if fileExists(filepath.Join(packageRoot, "tsconfig.json")) {
		names = append(names, ProfileTypeScript)
	}
	if opts.JSBinScripts {
		names = append(names, ProfileJSBin)
	}
	return names
}

// DetectJSBinScripts reports whether the package has a bin/dev.js entry point.
func DetectJSBinScripts(packageRoot string) bool {
	return fileExists(filepath.Join(packageRoot, "bin", "dev.js"))
}

// LoadOverrides reads the first override file found in packageRoot. It returns
// nil and an empty path when the package has none.
func LoadOverrides(packageRoot string) (*Layer, string, error) {
	for _, name := range RCFiles {
		path := filepath.Join(packageRoot, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("reading overrides %s: %w", path, err)
		}

		// YAML is a superset of JSON, so one decoder covers every file name.
		var layer Layer
		if err := yaml.Unmarshal(data, &layer); err != nil {
			return nil, "", fmt.Errorf("parsing overrides %s: %w", path, err)
		}
		return &layer, path, nil
	}
	return nil, "", nil
}

func (c *Config) apply(l Layer) {
	if l.License != "" {
		c.License = l.License
	}
	for name, cmd := range l.Scripts {
		c.Scripts[name] = cmd
	}
	for name, v := range l.Wireit {
		c.Wireit[name] = v
	}
}

// normalize converts YAML-decoded values to the shapes encoding/json produces
// (float64 numbers, map[string]any objects) so they compare equal to values
// read from package.json.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
