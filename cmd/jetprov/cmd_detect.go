package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jetprov/jetprov/internal/domain-adapters/gateways"
	"github.com/jetprov/jetprov/internal/domain/entities"
	"github.com/jetprov/jetprov/internal/domain/services"
	"github.com/jetprov/jetprov/internal/external-adapters/yaml"
)

func runDetect(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	planPath := fs.String("plan", "", "Path to an installation plan override (YAML)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: jetprov detect [options]

Print the installed L4T version and the version profile it resolves to.
Exits 1 when the platform cannot be detected or is unsupported.

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

	detector := gateways.NewPlatformDetector()
	version, err := detector.DetectL4TVersion(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	profile, err := services.NewProfileResolver(plan.Profiles).Resolve(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("L4T version: %s\n", version)
	fmt.Printf("Profile:     %s\n", profile)
}

// loadPlan loads the built-in plan or an operator override.
func loadPlan(ctx context.Context, planPath string) (*entities.InstallPlan, error) {
	repo := yaml.NewPlanRepository()
	if planPath != "" {
		return repo.GetPlanFromFile(ctx, planPath)
	}
	return repo.GetPlan(ctx)
}
