package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devscripts-labs/devscripts/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "devscripts",
	Short: "Keep package manifests and git hooks consistent across a monorepo",
	Long: `devscripts standardizes package.json files (license, scripts, wireit build
graph, node engine) against a shared configuration, generates the shared lint
config, and bootstraps husky git hooks for a fresh clone.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
}

// ExitError carries a process exit code out of a RunE handler. A nil Err
// means the command already reported the failure.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:")+" "+err.Error())
	}
	return err
}

// newLogger returns a stderr logger at the configured level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "devscripts"})
	if lvl, err := log.ParseLevel(config.LogLevel()); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// targetDir returns the absolute directory named by args, or the working
// directory when args is empty.
func targetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}
