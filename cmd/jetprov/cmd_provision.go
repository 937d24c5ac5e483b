// Package main provides the jetprov CLI for provisioning the GPU-accelerated
// Python stack on Jetson devices.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jetprov/jetprov/internal/domain-adapters/gateways"
	orchestrators "github.com/jetprov/jetprov/internal/domain-orchestrators"
	"github.com/jetprov/jetprov/internal/domain/entities"
	"github.com/jetprov/jetprov/internal/external-adapters/charmlog"
	"github.com/jetprov/jetprov/internal/external-adapters/gpg"
	"github.com/jetprov/jetprov/internal/external-adapters/shellcfg"
	"github.com/jetprov/jetprov/internal/external-adapters/yaml"
)

func runProvision(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("provision", flag.ExitOnError)
	var (
		planPath      = fs.String("plan", "", "Path to an installation plan override (YAML)")
		dryRun        = fs.Bool("dry-run", false, "Print every command instead of executing")
		skipToolchain = fs.Bool("skip-toolchain", false, "Do not touch PATH or the shell profile")
		verifyRepo    = fs.Bool("verify-repo", false, "GPG-verify the NVIDIA apt repository before installing")
		jobs          = fs.Int("jobs", 0, "Parallel build jobs for source builds (default: number of CPUs)")
		profilePath   = fs.String("shell-profile", "", "Shell startup file for toolchain exports (default: ~/.bashrc)")
		verbose       = fs.Bool("verbose", false, "Enable debug logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: jetprov provision [options]

Provision the GPU Python stack (NumPy, TensorFlow, SciPy, Numba, CuPy).

The sequence is fail-fast with no rollback: the first failing command stops
the run, and partial package state is left for manual inspection. Stage
boundaries are logged so a run can be resumed by hand.

Examples:
  jetprov provision
  jetprov provision --dry-run
  jetprov provision --verify-repo --jobs 4

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	logger := charmlog.New(*verbose)

	shellPath := *profilePath
	if shellPath == "" {
		var err error
		shellPath, err = defaultShellProfile()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Wire gateways following the architecture pattern
	planRepo := yaml.NewPlanRepository()
	detector := gateways.NewPlatformDetector()
	toolchain := gateways.NewToolchainEnv(shellcfg.NewProfileFile(shellPath))
	repoVerifier := gateways.NewAptRepoVerifier(gpg.NewVerifier())

	var runner orchestrators.CommandRunner
	if *dryRun {
		runner = gateways.NewDryRunRunner()
	} else {
		runner = gateways.NewCommandRunner()
	}

	orch := orchestrators.NewProvisionOrchestrator(
		planRepo,
		detector,
		toolchain,
		repoVerifier,
		runner,
		logger,
		orchestrators.ProvisionConfig{
			PlanPath:      *planPath,
			SkipToolchain: *skipToolchain,
			VerifyRepo:    *verifyRepo,
			BuildJobs:     *jobs,
		},
	)

	result, err := orch.Provision(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}

	fmt.Println()
	fmt.Println("✅ " + result.GetProvisionSummary())
}

// exitCodeFor maps domain errors to process exit codes: version detection
// and resolution failures exit 1; a failed installation command propagates
// its own exit code.
func exitCodeFor(err error) int {
	var stageErr *entities.StageError
	if errors.As(err, &stageErr) && stageErr.ExitCode > 0 {
		return stageErr.ExitCode
	}
	return 1
}
