package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "provision":
		runProvision(ctx, os.Args[2:])
	case "detect":
		runDetect(ctx, os.Args[2:])
	case "plan":
		runPlan(ctx, os.Args[2:])
	case "profiles":
		runProfiles(ctx, os.Args[2:])
	case "preflight":
		runPreflight(ctx, os.Args[2:])
	case "verify-repo":
		runVerifyRepo(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`jetprov - GPU Python stack provisioner for Jetson (L4T) devices

Usage:
  jetprov <command> [options]

Commands:
  provision    Detect the L4T release and install the full stack
  detect       Print the detected L4T version and resolved profile
  plan         Render the installation plan without executing it
  profiles     List the known L4T version profiles
  preflight    Run non-mutating environment checks
  verify-repo  Verify the NVIDIA apt repository signature

Use "jetprov <command> --help" for more information about a command.`)
}

// defaultShellProfile is the startup file the toolchain exports go into.
func defaultShellProfile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".bashrc"), nil
}
