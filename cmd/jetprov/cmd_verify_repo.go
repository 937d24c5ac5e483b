package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jetprov/jetprov/internal/domain-adapters/gateways"
	"github.com/jetprov/jetprov/internal/external-adapters/gpg"
)

func runVerifyRepo(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify-repo", flag.ExitOnError)
	var (
		keyFile = fs.String("key-file", "", "Trusted signing key file (armored or binary)")
		keyIDs  = fs.String("key-ids", "", "Comma-separated key fingerprints to import from keyservers")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: jetprov verify-repo [options]

Fetch the NVIDIA Jetson apt repository's Release file and verify its
detached GPG signature. With no key options the repository's published
signing key (%s) is used.

Options:
`, gateways.JetsonOTAKeyURL)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	verifier := gpg.NewVerifier()

	if *keyFile != "" {
		if err := verifier.ImportKeyFromFile(*keyFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *keyIDs != "" {
		ids := strings.Split(*keyIDs, ",")
		for i := range ids {
			ids[i] = strings.TrimSpace(ids[i])
		}
		if err := verifier.ImportKeys(ctx, ids); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	repoVerifier := gateways.NewAptRepoVerifier(verifier)
	if err := repoVerifier.VerifyRelease(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ apt repository signature verified")
}
