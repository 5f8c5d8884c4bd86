package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printVersion(cmd.OutOrStdout(), versionShort, versionJSON)
	},
}

func printVersion(w io.Writer, short, asJSON bool) error {
	switch {
	case short:
		fmt.Fprintln(w, buildVersion)
	case asJSON:
		info := map[string]string{
			"version": buildVersion,
			"commit":  buildCommit,
			"date":    buildDate,
		}
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling version info: %w", err)
		}
		fmt.Fprintln(w, string(out))
	default:
		fmt.Fprintf(w, "devscripts version %s (commit: %s, built: %s)\n", buildVersion, buildCommit, buildDate)
	}
	return nil
}
