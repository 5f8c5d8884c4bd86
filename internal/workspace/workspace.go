package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.yaml.in/yaml/v3"
)

// ConfigFile is the pnpm workspace definition at the repository root.
const ConfigFile = "pnpm-workspace.yaml"

// Config represents pnpm-workspace.yaml.
type Config struct {
	Packages []string `yaml:"packages"`
}

// LoadConfig reads and parses pnpm-workspace.yaml from root.
func LoadConfig(root string) (*Config, error) {
	path := filepath.Join(root, ConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workspace config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing workspace config: %w", err)
	}
	return &cfg, nil
}

// Discover returns the sorted package roots under root. Without a workspace
// config the repository itself is the only package.
func Discover(root string) ([]string, error) {
	cfg, err := LoadConfig(root)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{root}, nil
	}
	if err != nil {
		return nil, err
	}

	fsys := os.DirFS(root)
	included := make(map[string]bool)
	excluded := make(map[string]bool)
	for _, pattern := range cfg.Packages {
		target := included
		if strings.HasPrefix(pattern, "!") {
			target = excluded
			pattern = strings.TrimPrefix(pattern, "!")
		}
		pattern = path.Clean(strings.TrimPrefix(filepath.ToSlash(pattern), "./"))

		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding workspace pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if slices.Contains(strings.Split(m, "/"), "node_modules") {
				continue
			}
			target[filepath.Join(root, filepath.FromSlash(m))] = true
		}
	}

	var roots []string
	for dir := range included {
		if excluded[dir] || !hasManifest(dir) {
			continue
		}
		roots = append(roots, dir)
	}
	sort.Strings(roots)
	return roots, nil
}

func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "package.json"))
	return err == nil && !info.IsDir()
}
