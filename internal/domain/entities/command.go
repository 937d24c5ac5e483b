package entities

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Command is one external command derived from a stage descriptor. Commands
// are plain data so the sequencing logic can be tested against a fake runner
// without touching the system.
type Command struct {
	Argv        []string
	Env         map[string]string
	Elevated    bool
	Description string
}

// String renders the command the way an operator would type it, including
// env assignments, for dry-run output and stage logs.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Env)+len(c.Argv))
	for _, k := range sortedKeys(c.Env) {
		parts = append(parts, fmt.Sprintf("%s=%s", k, c.Env[k]))
	}
	parts = append(parts, c.Argv...)
	return strings.Join(parts, " ")
}

// RunResult contains the result of executing one command.
type RunResult struct {
	Success  bool
	ExitCode int
	Duration time.Duration
	Err      error
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
