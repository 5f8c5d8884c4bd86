package hooks

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// recordingRunner records commands instead of executing them.
type recordingRunner struct {
	commands []string
	dirs     []string
	failOn   string
}

func (r *recordingRunner) Run(_ context.Context, dir, command string) error {
	if r.failOn != "" && command == r.failOn {
		return errors.New("command failed")
	}
	r.commands = append(r.commands, command)
	r.dirs = append(r.dirs, dir)
	return nil
}

type failingRunner struct{}

func (failingRunner) Run(context.Context, string, string) error {
	return errors.New("command failed")
}

func newBootstrapper(r Runner) *Bootstrapper {
	return &Bootstrapper{Runner: r, Logger: log.New(io.Discard)}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestInit_EmptyInstallsDefaults(t *testing.T) {
	root := t.TempDir()
	mkdir(t, filepath.Join(root, Dir, "_"))

	r := &recordingRunner{}
	installed, err := newBootstrapper(r).Init(context.Background(), root)
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}

	want := []string{
		"pnpm husky add .husky/commit-msg 'pnpm commitlint --edit'",
		"pnpm husky add .husky/pre-commit 'pnpm lint && pnpm pretty-quick --staged'",
		"pnpm husky add .husky/pre-push 'pnpm build && pnpm run test:only -- --forbid-only'",
	}
	if len(r.commands) != len(want) {
		t.Fatalf("ran %d commands, want %d: %v", len(r.commands), len(want), r.commands)
	}
	for i := range want {
		if r.commands[i] != want[i] {
			t.Errorf("command[%d] = %q, want %q", i, r.commands[i], want[i])
		}
		if r.dirs[i] != root {
			t.Errorf("dir[%d] = %q, want %q", i, r.dirs[i], root)
		}
	}
	if len(installed) != 3 || installed[0] != "commit-msg" {
		t.Errorf("installed = %v", installed)
	}
}

func TestInit_ExistingHooksNoop(t *testing.T) {
	root := t.TempDir()
	mkdir(t, filepath.Join(root, Dir, "_"))
	if err := os.WriteFile(filepath.Join(root, Dir, "pre-commit"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := &recordingRunner{}
	installed, err := newBootstrapper(r).Init(context.Background(), root)
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if len(r.commands) != 0 {
		t.Errorf("ran commands %v, want none", r.commands)
	}
	if len(installed) != 0 {
		t.Errorf("installed = %v, want none", installed)
	}
}

func TestInit_MissingDir(t *testing.T) {
	r := &recordingRunner{}
	_, err := newBootstrapper(r).Init(context.Background(), t.TempDir())

	var missing *MissingDirError
	if !errors.As(err, &missing) {
		t.Fatalf("Init error = %v, want *MissingDirError", err)
	}
	if missing.Dir != Dir {
		t.Errorf("Dir = %q, want %q", missing.Dir, Dir)
	}
	if len(r.commands) != 0 {
		t.Errorf("ran commands %v, want none", r.commands)
	}
}

func TestInit_ListingErrorPropagates(t *testing.T) {
	root := t.TempDir()
	// A regular file where the directory should be.
	if err := os.WriteFile(filepath.Join(root, Dir), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := newBootstrapper(&recordingRunner{}).Init(context.Background(), root)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var missing *MissingDirError
	if errors.As(err, &missing) {
		t.Errorf("listing error should not be a MissingDirError: %v", err)
	}
}

func TestInit_RunnerFailureContinues(t *testing.T) {
	root := t.TempDir()
	mkdir(t, filepath.Join(root, Dir))

	r := &recordingRunner{failOn: "pnpm husky add .husky/pre-commit 'pnpm lint && pnpm pretty-quick --staged'"}
	installed, err := newBootstrapper(r).Init(context.Background(), root)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "adding pre-commit hook") {
		t.Errorf("error = %v, want it to name pre-commit", err)
	}

	want := []string{"commit-msg", "pre-push"}
	if len(installed) != len(want) || installed[0] != want[0] || installed[1] != want[1] {
		t.Errorf("installed = %v, want %v", installed, want)
	}
}

func TestInit_AllFailuresReported(t *testing.T) {
	root := t.TempDir()
	mkdir(t, filepath.Join(root, Dir))

	b := newBootstrapper(failingRunner{})
	installed, err := b.Init(context.Background(), root)
	if len(installed) != 0 {
		t.Errorf("installed = %v, want none", installed)
	}
	for _, h := range DefaultHooks {
		if err == nil || !strings.Contains(err.Error(), "adding "+h.Name+" hook") {
			t.Errorf("error = %v, want it to name %s", err, h.Name)
		}
	}
}

func TestInit_CustomPackageManagerAndHooks(t *testing.T) {
	root := t.TempDir()
	mkdir(t, filepath.Join(root, Dir))

	r := &recordingRunner{}
	b := newBootstrapper(r)
	b.PackageManager = "yarn"
	b.Hooks = []Hook{{Name: "pre-push", Command: "yarn test"}}

	if _, err := b.Init(context.Background(), root); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	want := "yarn husky add .husky/pre-push 'yarn test'"
	if len(r.commands) != 1 || r.commands[0] != want {
		t.Errorf("commands = %v, want [%s]", r.commands, want)
	}
}

func TestInstall(t *testing.T) {
	root := t.TempDir()
	r := &recordingRunner{}
	if err := newBootstrapper(r).Install(context.Background(), root); err != nil {
		t.Fatalf("Install error: %v", err)
	}
	if len(r.commands) != 1 || r.commands[0] != "pnpm husky install" {
		t.Errorf("commands = %v, want [pnpm husky install]", r.commands)
	}

	failing := &recordingRunner{failOn: "pnpm husky install"}
	if err := newBootstrapper(failing).Install(context.Background(), root); err == nil {
		t.Error("expected Install to surface runner failure")
	}
}
