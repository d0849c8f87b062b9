// Package shellout runs external command lines through the system shell
// and captures their combined output. Analysis backends are configured
// as full shell command lines so target globs expand the same way they
// would in an interactive shell.
package shellout

import (
	"context"
	"errors"
	"os/exec"
)

// Shell invokes commands via "sh -c".
type Shell struct{}

// New returns a shell-backed runner.
func New() *Shell {
	return &Shell{}
}

// Run executes the command line in dir and returns the exit status plus
// combined stdout+stderr. A non-zero exit is reported through the status
// code, not the error; the error is non-nil only when the process could
// not be started.
func (s *Shell) Run(ctx context.Context, command, dir string) (int, string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), string(output), nil
		}

		return 0, "", err
	}

	return 0, string(output), nil
}
