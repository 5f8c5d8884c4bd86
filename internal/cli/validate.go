package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/devscripts-labs/devscripts/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check that package.json has the field shapes standardize expects",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := targetDir(args)
		if err != nil {
			return err
		}
		return runManifestCheck(cmd.OutOrStdout(), filepath.Join(root, manifest.FileName))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runManifestCheck(w io.Writer, path string) error {
	fmt.Fprintf(w, "Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		doc, err := manifest.Load(filepath.Dir(path))
		if err != nil || doc.Name() == "" {
			fmt.Fprintf(w, "  [ OK ] Valid manifest\n")
			return nil
		}
		fmt.Fprintf(w, "  [ OK ] Valid manifest: %s\n", doc.Name())
		return nil
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Fprintf(w, "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(w, "    - %s\n", issue.Message)
		}
	}
	return fmt.Errorf("manifest %s has %d validation issue(s)", path, len(result.Issues))
}
