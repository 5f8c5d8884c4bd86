package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devscripts-labs/devscripts/internal/config"
	"github.com/devscripts-labs/devscripts/internal/standardize"
	"github.com/devscripts-labs/devscripts/internal/workspace"
)

var (
	standardizeWorkspace bool
	standardizeDryRun    bool
)

var standardizeCmd = &cobra.Command{
	Use:   "standardize [dir...]",
	Short: "Bring package.json files in line with the shared configuration",
	Long: `Update license, scripts, wireit entries, and engines.node in each package's
package.json to match the resolved configuration. With --workspace, every
package listed by pnpm-workspace.yaml under the given directories is processed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		roots, err := packageRoots(args, standardizeWorkspace)
		if err != nil {
			return err
		}

		engine := &standardize.Engine{
			Logger:       newLogger(cmd.ErrOrStderr()),
			NodeEngine:   config.NodeEngine(),
			SharedConfig: config.SharedConfig(),
			DryRun:       standardizeDryRun,
		}
		return runStandardize(cmd.OutOrStdout(), engine, roots)
	},
}

func init() {
	standardizeCmd.Flags().BoolVarP(&standardizeWorkspace, "workspace", "w", false, "Process every package in the pnpm workspace")
	standardizeCmd.Flags().BoolVar(&standardizeDryRun, "dry-run", false, "Report changes without writing package.json")
	rootCmd.AddCommand(standardizeCmd)
}

// packageRoots resolves the package directories to process.
func packageRoots(args []string, useWorkspace bool) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var roots []string
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		if !useWorkspace {
			roots = append(roots, abs)
			continue
		}
		found, err := workspace.Discover(abs)
		if err != nil {
			return nil, fmt.Errorf("discovering packages in %s: %w", abs, err)
		}
		roots = append(roots, found...)
	}
	return roots, nil
}

// runStandardize runs the engine for each root. A failing package does not
// stop the others; the command fails once all packages were attempted.
func runStandardize(w io.Writer, engine *standardize.Engine, roots []string) error {
	failed := 0
	for _, root := range roots {
		result, err := engine.Run(root)
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", root, err)
			failed++
			continue
		}

		label := result.Name
		if label == "" {
			label = root
		}
		if len(result.Actions) == 0 {
			fmt.Fprintf(w, "  [ OK ] %s %s\n", label, MutedStyle.Render("already standardized"))
			continue
		}

		marker := "[ FIX]"
		if engine.DryRun {
			marker = "[PLAN]"
		}
		fmt.Fprintf(w, "  %s %s: %s\n", marker, label, SuccessStyle.Render(strings.Join(result.Actions, "; ")))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d package(s) could not be standardized", failed, len(roots))
	}
	return nil
}
