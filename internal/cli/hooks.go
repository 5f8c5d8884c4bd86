package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/devscripts-labs/devscripts/internal/config"
	"github.com/devscripts-labs/devscripts/internal/hooks"
	"github.com/devscripts-labs/devscripts/internal/shell"
)

var hooksSkipInstall bool

func init() {
	hooksInitCmd.Flags().BoolVar(&hooksSkipInstall, "skip-install", false, "Do not run `husky install` first")
	hooksCmd.AddCommand(hooksInitCmd)
	rootCmd.AddCommand(hooksCmd)
}

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage the shared git hooks",
}

var hooksInitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Install husky and the default hooks for this clone",
	Long: `Run husky install, then add the commit-msg, pre-commit, and pre-push hooks
when .husky has no hooks yet. Existing hooks are left untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := targetDir(args)
		if err != nil {
			return err
		}

		b := &hooks.Bootstrapper{
			Runner:         &shell.Runner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()},
			PackageManager: config.PackageManager(),
			Logger:         newLogger(cmd.ErrOrStderr()),
		}
		return runHooksInit(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), b, root, hooksSkipInstall)
	},
}

func runHooksInit(ctx context.Context, out, errOut io.Writer, b *hooks.Bootstrapper, root string, skipInstall bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if !skipInstall {
		// A failed install surfaces below as a missing hook directory.
		if err := b.Install(ctx, root); err != nil && b.Logger != nil {
			b.Logger.Warn("husky install failed", "err", err)
		}
	}

	installed, err := b.Init(ctx, root)
	var missing *hooks.MissingDirError
	if errors.As(err, &missing) {
		renderMissingHookDir(errOut, missing, b.PackageManager)
		return &ExitError{Code: 1}
	}
	for _, name := range installed {
		fmt.Fprintf(out, "  [ OK ] added %s hook\n", name)
	}
	if err != nil {
		return err
	}
	if len(installed) == 0 {
		fmt.Fprintln(out, MutedStyle.Render("Hooks already installed."))
	}
	return nil
}

// renderMissingHookDir prints the formatted missing-directory error.
func renderMissingHookDir(w io.Writer, err *hooks.MissingDirError, pm string) {
	if pm == "" {
		pm = "pnpm"
	}
	msg := fmt.Sprintf("%s, try running `%s husky install` to finish the install", err.Error(), pm)
	fmt.Fprintf(w, "\n%s%s\n\n", ErrorStyle.Render("ERROR: "), boldStyle.Render(msg))
}
