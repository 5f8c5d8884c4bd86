//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // DEVSCRIPTS_HOME
	RepoDir string // a mock pnpm monorepo
}

// setupTestEnv creates isolated temp directories and points DEVSCRIPTS_HOME at
// one of them. The env var is restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		RepoDir: t.TempDir(),
	}
	t.Setenv("DEVSCRIPTS_HOME", env.HomeDir)
	return env
}

// setupMonorepo writes a workspace with a TypeScript library, a CLI package
// with bin/dev.js, and a package excluded from the workspace.
func setupMonorepo(t *testing.T, root string) {
	t.Helper()

	writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), `packages:
  - packages/*
  - "!packages/scratch"
`)

	writeFile(t, filepath.Join(root, "packages/core/package.json"), `{
  "name": "@test/core",
  "version": "1.0.0",
  "license": "ISC",
  "scripts": {
    "build": "tsc",
    "custom": "echo custom"
  },
  "engines": {
    "node": ">=14.0.0"
  }
}
`)
	writeFile(t, filepath.Join(root, "packages/core/tsconfig.json"), `{
  "extends": "@salesforce/dev-config/tsconfig-strict"
}
`)

	writeFile(t, filepath.Join(root, "packages/cli/package.json"), `{
  "name": "@test/cli",
  "license": "BSD-3-Clause",
  "engines": {
    "node": ">=18.0.0"
  }
}
`)
	writeFile(t, filepath.Join(root, "packages/cli/bin/dev.js"), "#!/usr/bin/env node\n")
	writeFile(t, filepath.Join(root, "packages/cli/.devscriptsrc.yml"), `exclude-scripts:
  - docs
`)

	writeFile(t, filepath.Join(root, "packages/scratch/package.json"), `{"name": "scratch", "license": "UNLICENSED"}
`)
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the file contents or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertFileNotContains fails if the file contains substr.
func assertFileNotContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if strings.Contains(string(data), substr) {
		t.Errorf("file %s unexpectedly contains %q.\nContents:\n%s", path, substr, string(data))
	}
}
