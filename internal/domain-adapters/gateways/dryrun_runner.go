package gateways

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jetprov/jetprov/internal/domain/entities"
)

// DryRunRunner prints each command instead of executing it. Used by
// `provision --dry-run` so an operator can audit the exact sequence the
// plan would issue.
type DryRunRunner struct {
	Out io.Writer
}

// NewDryRunRunner creates a dry-run command runner writing to stdout
func NewDryRunRunner() *DryRunRunner {
	return &DryRunRunner{Out: os.Stdout}
}

// Run prints the command and reports success
func (r *DryRunRunner) Run(_ context.Context, cmd entities.Command) *entities.RunResult {
	line := cmd.String()
	if cmd.Elevated {
		line = "sudo -H " + line
	}
	fmt.Fprintf(r.Out, "would run: %s\n", line)
	return &entities.RunResult{Success: true}
}
