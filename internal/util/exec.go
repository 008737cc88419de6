package util

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
)

// Command describes one external process invocation.
type Command struct {
	Dir  string
	Name string
	Args []string
	// OKExitCodes lists non-zero exit codes that still count as success,
	// e.g. 1 for "git diff --no-index" when the inputs differ.
	OKExitCodes []int
}

// Run executes the command and returns its stdout. Stderr is only used to
// describe failures.
func (c Command) Run(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && slices.Contains(c.OKExitCodes, exitErr.ExitCode()) {
			return stdout.String(), nil
		}
		return "", fmt.Errorf("command failed: %s %s: %w (%s)", c.Name, strings.Join(c.Args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Run executes name with args in cwd and returns stdout.
func Run(ctx context.Context, cwd string, name string, args ...string) (string, error) {
	return Command{Dir: cwd, Name: name, Args: args}.Run(ctx)
}
