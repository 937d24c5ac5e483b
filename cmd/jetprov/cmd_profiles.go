package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func runProfiles(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("profiles", flag.ExitOnError)
	planPath := fs.String("plan", "", "Path to an installation plan override (YAML)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: jetprov profiles [options]

List the known L4T version profiles, newest floor first.

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

	fmt.Printf("Known version profiles (%d):\n", len(plan.Profiles))
	for _, p := range plan.Profiles {
		fmt.Printf("  %s\n", p.String())
	}
}
