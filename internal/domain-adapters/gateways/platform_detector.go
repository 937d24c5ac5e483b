package gateways

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jetprov/jetprov/internal/domain/entities"
)

// l4tCorePackage is the dpkg package whose version identifies the L4T
// board-support-package release installed on the device.
const l4tCorePackage = "nvidia-l4t-core"

// PlatformDetector reads the installed L4T version from the local dpkg
// database.
type PlatformDetector struct {
	// query runs the package database lookup; overridable in tests.
	query func(ctx context.Context) (string, error)
}

// NewPlatformDetector creates a detector backed by dpkg-query
func NewPlatformDetector() *PlatformDetector {
	d := &PlatformDetector{}
	d.query = d.dpkgQuery
	return d
}

// DetectL4TVersion returns the installed L4T version trimmed to
// "major.minor" ("32.6.1-20210726..." -> "32.6").
func (d *PlatformDetector) DetectL4TVersion(ctx context.Context) (string, error) {
	raw, err := d.query(ctx)
	if err != nil {
		return "", &entities.PlatformDetectionError{
			Package: l4tCorePackage,
			Reason:  "package query failed; is this an L4T device",
			Err:     err,
		}
	}

	version, ok := parseL4TVersion(raw)
	if !ok {
		return "", &entities.PlatformDetectionError{
			Package: l4tCorePackage,
			Reason:  "unparsable package version " + strconv.Quote(strings.TrimSpace(raw)),
		}
	}
	return version, nil
}

func (d *PlatformDetector) dpkgQuery(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "dpkg-query", "--showformat=${Version}", "--show", l4tCorePackage)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		if errBuf.Len() > 0 {
			return "", &queryError{stderr: strings.TrimSpace(errBuf.String()), err: err}
		}
		return "", err
	}
	return out.String(), nil
}

type queryError struct {
	stderr string
	err    error
}

func (e *queryError) Error() string { return e.stderr }
func (e *queryError) Unwrap() error { return e.err }

// parseL4TVersion extracts "major.minor" from a dpkg version string. The
// Debian revision after "-" is build metadata and is discarded, as is any
// patch component.
func parseL4TVersion(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if i := strings.IndexByte(v, '-'); i >= 0 {
		v = v[:i]
	}

	parts := strings.Split(v, ".")
	if len(parts) < 2 {
		return "", false
	}
	for _, p := range parts[:2] {
		if _, err := strconv.Atoi(p); err != nil {
			return "", false
		}
	}
	return parts[0] + "." + parts[1], true
}
