package entities

import (
	"errors"
	"strings"
	"testing"
)

func TestCommand_String(t *testing.T) {
	cmd := Command{
		Argv: []string{"python3", "-m", "pip", "install", "cupy==9.2.0"},
		Env: map[string]string{
			"CUPY_NUM_BUILD_JOBS":     "4",
			"CUPY_NVCC_GENERATE_CODE": "current",
		},
	}

	// Env assignments come first, in sorted key order.
	want := "CUPY_NUM_BUILD_JOBS=4 CUPY_NVCC_GENERATE_CODE=current python3 -m pip install cupy==9.2.0"
	if got := cmd.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCommand_String_NoEnv(t *testing.T) {
	cmd := Command{Argv: []string{"apt-get", "update"}}
	if got := cmd.String(); got != "apt-get update" {
		t.Errorf("String() = %q, want %q", got, "apt-get update")
	}
}

func TestStageError_Unwrap(t *testing.T) {
	inner := errors.New("exit status 100")
	err := &StageError{Stage: "tensorflow", Command: "apt-get update", ExitCode: 100, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("StageError should unwrap to the underlying error")
	}

	var stageErr *StageError
	if !errors.As(error(err), &stageErr) {
		t.Error("errors.As should match *StageError")
	}
}

func TestUnsupportedPlatformError_Message(t *testing.T) {
	err := &UnsupportedPlatformError{Version: "32.0", MinSupported: "32.4"}

	msg := err.Error()
	for _, want := range []string{"32.0", "32.4"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q should contain %q", msg, want)
		}
	}
}
