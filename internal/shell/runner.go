package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command string
	Code    int
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Command, e.Code)
}

// Runner executes shell commands.
type Runner struct {
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// Env defaults to the current process environment.
	Env []string
}

// Run parses command as a shell program and executes it in dir.
func (r *Runner) Run(ctx context.Context, dir, command string) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return fmt.Errorf("parsing command %q: %w", command, err)
	}

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	env := r.Env
	if env == nil {
		env = os.Environ()
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return fmt.Errorf("creating interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &ExitError{Command: command, Code: int(status)}
		}
		return fmt.Errorf("running %q: %w", command, err)
	}
	return nil
}

// Quote returns s quoted for use as a single shell word.
func Quote(s string) (string, error) {
	return syntax.Quote(s, syntax.LangPOSIX)
}
