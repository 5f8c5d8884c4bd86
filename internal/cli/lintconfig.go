package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/devscripts-labs/devscripts/internal/lintconfig"
)

var lintStrict bool

var lintConfigCmd = &cobra.Command{
	Use:   "lint-config [dir]",
	Short: "Generate the shared ESLint config",
	Long: `Write .eslintrc.cjs extending the shared lint configs. With --strict, the
license header config is extended as well. The file is only rewritten when its
content changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := targetDir(args)
		if err != nil {
			return err
		}

		changed, err := lintconfig.Write(root, lintconfig.Options{Strict: lintStrict})
		if err != nil {
			return err
		}

		path := filepath.Join(root, lintconfig.FileName)
		if !changed {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", path, MutedStyle.Render("unchanged"))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", SuccessStyle.Render("Wrote"), path)
		return nil
	},
}

func init() {
	lintConfigCmd.Flags().BoolVar(&lintStrict, "strict", false, "Also extend the license header config")
	rootCmd.AddCommand(lintConfigCmd)
}
