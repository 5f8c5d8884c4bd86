package hooks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/devscripts-labs/devscripts/internal/shell"
)

// Dir is the husky hook directory inside the repository root.
const Dir = ".husky"

// internalEntry is husky's own support directory; it is not a hook.
const internalEntry = "_"

// Runner executes a shell command string in dir.
type Runner interface {
	Run(ctx context.Context, dir, command string) error
}

// Hook is a git hook name and the command it runs.
type Hook struct {
	Name    string
	Command string
}

// DefaultHooks are installed when the hook directory has no hooks yet.
var DefaultHooks = []Hook{
	{Name: "commit-msg", Command: "pnpm commitlint --edit"},
	{Name: "pre-commit", Command: "pnpm lint && pnpm pretty-quick --staged"},
	{Name: "pre-push", Command: "pnpm build && pnpm run test:only -- --forbid-only"},
}

// MissingDirError is returned when the hook directory does not exist.
type MissingDirError struct {
	Dir string
}

// Error returns the error message for MissingDirError.
func (e *MissingDirError) Error() string {
	return fmt.Sprintf("%s folder wasn't found", e.Dir)
}

// Bootstrapper installs husky and the default hooks.
type Bootstrapper struct {
	Runner Runner
	// PackageManager defaults to "pnpm".
	PackageManager string
	// Hooks defaults to DefaultHooks.
	Hooks  []Hook
	Logger *log.Logger
}

// Install runs "<pm> husky install" in root.
func (b *Bootstrapper) Install(ctx context.Context, root string) error {
	cmd := b.packageManager() + " husky install"
	b.logger().Debug("installing husky", "dir", root)
	if err := b.Runner.Run(ctx, root, cmd); err != nil {
		return fmt.Errorf("installing husky: %w", err)
	}
	return nil
}

// Init adds the configured hooks when root/.husky contains nothing but
// husky's internal directory, and returns the names of the hooks added.
// A failing hook does not stop the remaining ones.
// A missing hook directory yields a *MissingDirError.
func (b *Bootstrapper) Init(ctx context.Context, root string) ([]string, error) {
	hookDir := filepath.Join(root, Dir)

	existing, err := listHooks(hookDir)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		b.logger().Debug("hooks already present", "count", len(existing))
		return nil, nil
	}

	// Every hook is attempted; failures are reported together.
	var installed []string
	var errs []error
	for _, h := range b.hooks() {
		quoted, err := shell.Quote(h.Command)
		if err != nil {
			errs = append(errs, fmt.Errorf("quoting %s hook: %w", h.Name, err))
			continue
		}
		cmd := fmt.Sprintf("%s husky add %s/%s %s", b.packageManager(), Dir, h.Name, quoted)
		if err := b.Runner.Run(ctx, root, cmd); err != nil {
			b.logger().Warn("adding hook failed", "hook", h.Name, "err", err)
			errs = append(errs, fmt.Errorf("adding %s hook: %w", h.Name, err))
			continue
		}
		b.logger().Debug("added hook", "hook", h.Name)
		installed = append(installed, h.Name)
	}
	return installed, errors.Join(errs...)
}

// listHooks returns the entries of hookDir other than husky's internal one.
func listHooks(hookDir string) ([]string, error) {
	entries, err := os.ReadDir(hookDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &MissingDirError{Dir: Dir}
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", hookDir, err)
	}

	var hooks []string
	for _, e := range entries {
		if e.Name() == internalEntry {
			continue
		}
		hooks = append(hooks, e.Name())
	}
	return hooks, nil
}

func (b *Bootstrapper) packageManager() string {
	if b.PackageManager != "" {
		return b.PackageManager
	}
	return "pnpm"
}

func (b *Bootstrapper) hooks() []Hook {
	if b.Hooks != nil {
		return b.Hooks
	}
	return DefaultHooks
}

func (b *Bootstrapper) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}
