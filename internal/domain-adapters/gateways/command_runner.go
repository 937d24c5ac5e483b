// Package gateways contains the adapters that touch the host system: command
// execution, package queries, toolchain environment and repository checks.
package gateways

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/jetprov/jetprov/internal/domain/entities"
)

// CommandRunner executes external commands, streaming their output. Package
// installs are long-running and their diagnostics matter on failure, so
// output goes straight through instead of being buffered.
type CommandRunner struct {
	// Stdout and Stderr receive the subprocess output; default is the
	// process's own streams.
	Stdout io.Writer
	Stderr io.Writer

	defaultTimeout time.Duration
	geteuid        func() int
}

// NewCommandRunner creates a new command runner
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		defaultTimeout: 2 * time.Hour, // CuPy compiles from source on-device
		geteuid:        os.Geteuid,
	}
}

// Run executes one command and waits for it to finish. Elevated commands are
// wrapped in "sudo -H" with env vars passed as VAR=value assignments, the
// only form sudo forwards without sudoers changes; non-elevated commands get
// env through the process environment.
func (r *CommandRunner) Run(ctx context.Context, cmd entities.Command) *entities.RunResult {
	start := time.Now()
	result := &entities.RunResult{}

	if len(cmd.Argv) == 0 {
		result.Err = fmt.Errorf("empty command")
		result.ExitCode = -1
		return result
	}

	execCtx, cancel := context.WithTimeout(ctx, r.defaultTimeout)
	defer cancel()

	argv := cmd.Argv
	viaSudo := cmd.Elevated && r.geteuid() != 0
	if viaSudo {
		prefix := []string{"sudo", "-H"}
		for _, k := range envKeys(cmd.Env) {
			prefix = append(prefix, fmt.Sprintf("%s=%s", k, cmd.Env[k]))
		}
		argv = append(prefix, argv...)
	}

	//nolint:gosec // G204: argv comes from the compiled-in installation plan
	c := exec.CommandContext(execCtx, argv[0], argv[1:]...)
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr

	if !viaSudo && len(cmd.Env) > 0 {
		env := os.Environ()
		for _, k := range envKeys(cmd.Env) {
			env = append(env, fmt.Sprintf("%s=%s", k, cmd.Env[k]))
		}
		c.Env = env
	}

	err := c.Run()
	result.Duration = time.Since(start)

	if err != nil {
		result.Err = err
		var exitErr *exec.ExitError
		//nolint:gocritic // ifElseChain: checking different error types, not suitable for switch
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else if execCtx.Err() == context.DeadlineExceeded {
			result.Err = fmt.Errorf("command timeout after %v", r.defaultTimeout)
			result.ExitCode = -1
		} else {
			result.ExitCode = -1
		}
		return result
	}

	result.Success = true
	result.ExitCode = 0
	return result
}

func envKeys(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	// Deterministic order keeps dry-run output and tests stable.
	sort.Strings(keys)
	return keys
}
