package gateways

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jetprov/jetprov/internal/domain/entities"
)

func TestDryRunRunner_Run(t *testing.T) {
	var out bytes.Buffer
	r := &DryRunRunner{Out: &out}

	result := r.Run(context.Background(), entities.Command{
		Argv:     []string{"apt-get", "update"},
		Elevated: true,
	})

	if !result.Success {
		t.Error("dry-run should always succeed")
	}
	want := "would run: sudo -H apt-get update\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestDryRunRunner_Run_WithEnv(t *testing.T) {
	var out bytes.Buffer
	r := &DryRunRunner{Out: &out}

	r.Run(context.Background(), entities.Command{
		Argv: []string{"python3", "-m", "pip", "install", "cupy==9.2.0"},
		Env:  map[string]string{"CUPY_NVCC_GENERATE_CODE": "current"},
	})

	if !strings.Contains(out.String(), "CUPY_NVCC_GENERATE_CODE=current python3 -m pip install cupy==9.2.0") {
		t.Errorf("output = %q, missing env assignment", out.String())
	}
}
