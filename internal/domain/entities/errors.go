package entities

import "fmt"

// PlatformDetectionError indicates the L4T core package is missing or its
// version string could not be parsed. Unrecoverable; the run aborts.
type PlatformDetectionError struct {
	Package string
	Reason  string
	Err     error
}

func (e *PlatformDetectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("platform detection failed: %s (%s): %v", e.Reason, e.Package, e.Err)
	}
	return fmt.Sprintf("platform detection failed: %s (%s)", e.Reason, e.Package)
}

func (e *PlatformDetectionError) Unwrap() error { return e.Err }

// UnsupportedPlatformError indicates the detected L4T version is below every
// known profile floor. Terminal; the process exits 1 naming the version.
type UnsupportedPlatformError struct {
	Version      string
	MinSupported string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported L4T version %s: the oldest supported release is %s",
		e.Version, e.MinSupported)
}

// StageError indicates an installation sub-command exited non-zero. The
// sequence aborts immediately with no rollback; the exit code propagates to
// the process exit status.
type StageError struct {
	Stage    string
	Command  string
	ExitCode int
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: command %q failed with exit code %d", e.Stage, e.Command, e.ExitCode)
}

func (e *StageError) Unwrap() error { return e.Err }
