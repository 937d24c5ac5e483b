package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/jetprov/jetprov/internal/domain-adapters/gateways"
	"github.com/jetprov/jetprov/internal/domain/services"
)

func runPlan(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	var (
		planPath   = fs.String("plan", "", "Path to an installation plan override (YAML)")
		l4tVersion = fs.String("l4t", "", "Render for an explicit L4T version instead of detecting")
		jobs       = fs.Int("jobs", 0, "Parallel build jobs for source builds (default: number of CPUs)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: jetprov plan [options]

Render the installation plan, fully parameter-expanded, without executing
anything.

Examples:
  jetprov plan                 # detect the local L4T version
  jetprov plan --l4t 32.5      # render for a specific release

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	plan, err := loadPlan(ctx, *planPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	version := *l4tVersion
	if version == "" {
		version, err = gateways.NewPlatformDetector().DetectL4TVersion(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	profile, err := services.NewProfileResolver(plan.Profiles).Resolve(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	buildJobs := *jobs
	if buildJobs <= 0 {
		buildJobs = runtime.NumCPU()
	}
	params := services.StageParams(profile, buildJobs)

	fmt.Printf("Plan for L4T %s (%s)\n", version, profile)
	for i, stage := range plan.Stages {
		expanded, err := services.ExpandStage(stage, params)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\nStage %d: %s", i+1, stage.Name)
		if stage.Description != "" {
			fmt.Printf(" (%s)", stage.Description)
		}
		fmt.Println()

		for _, cmd := range services.StageCommands(expanded) {
			fmt.Printf("  %s\n", cmd)
		}
	}
}
