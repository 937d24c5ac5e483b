package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jetprov/jetprov/internal/domain-adapters/gateways"
	orchestrators "github.com/jetprov/jetprov/internal/domain-orchestrators"
	"github.com/jetprov/jetprov/internal/external-adapters/shellcfg"
	"github.com/jetprov/jetprov/internal/external-adapters/yaml"
)

func runPreflight(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("preflight", flag.ExitOnError)
	var (
		planPath    = fs.String("plan", "", "Path to an installation plan override (YAML)")
		profilePath = fs.String("shell-profile", "", "Shell startup file for toolchain exports (default: ~/.bashrc)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: jetprov preflight [options]

Run every environment check provisioning depends on, without mutating
anything: dpkg/L4T detection, profile resolution, toolchain status, shell
profile writability and vendor repository reachability.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	shellPath := *profilePath
	if shellPath == "" {
		var err error
		shellPath, err = defaultShellProfile()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	profile := shellcfg.NewProfileFile(shellPath)
	orch := orchestrators.NewPreflightOrchestrator(
		yaml.NewPlanRepository(),
		gateways.NewPlatformDetector(),
		gateways.NewEndpointChecker(),
		gateways.NewToolchainEnv(profile),
		profile,
		orchestrators.PreflightConfig{
			PlanPath:   *planPath,
			AptRepoURL: gateways.JetsonAptRepoURL + "/Release",
			PipIndex:   gateways.JetPackPipIndexRoot,
		},
	)

	result := orch.Run(ctx)

	for _, check := range result.Checks {
		switch {
		case check.Err != nil:
			fmt.Printf("❌ %s: %v\n", check.Name, check.Err)
		case check.Note != "":
			fmt.Printf("✅ %s: %s\n", check.Name, check.Note)
		default:
			fmt.Printf("✅ %s\n", check.Name)
		}
	}

	if !result.Passed {
		os.Exit(1)
	}
}
