package gateways

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jetprov/jetprov/internal/domain/entities"
)

// CUDA toolkit locations on L4T. The toolkit ships with JetPack but the
// default user environment does not include it.
const (
	cudaBinDir = "/usr/local/cuda/bin"
	cudaLibDir = "/usr/local/cuda/lib64"
	nvccBinary = "nvcc"
)

// ShellProfile is the persistence side of the toolchain environment,
// implemented by shellcfg.ProfileFile.
type ShellProfile interface {
	EnsureExports(lines []string, pathDir string) (bool, error)
	Path() string
}

// ToolchainEnv makes the CUDA toolchain resolvable: persistently via the
// user's shell profile, and immediately via the current process environment
// so later stages (CuPy's source build) can find nvcc.
type ToolchainEnv struct {
	profile  ShellProfile
	lookPath func(string) (string, error)
	setenv   func(key, value string) error
	getenv   func(string) string
}

// NewToolchainEnv creates a toolchain environment manager
func NewToolchainEnv(profile ShellProfile) *ToolchainEnv {
	return &ToolchainEnv{
		profile:  profile,
		lookPath: exec.LookPath,
		setenv:   os.Setenv,
		getenv:   os.Getenv,
	}
}

// Ensure checks whether nvcc is resolvable and, if not, upserts the export
// block into the shell profile and extends the current process PATH and
// LD_LIBRARY_PATH. Running it twice never duplicates profile entries.
func (t *ToolchainEnv) Ensure() (*entities.ToolchainStatus, error) {
	status := &entities.ToolchainStatus{ProfilePath: t.profile.Path()}

	if _, err := t.lookPath(nvccBinary); err == nil {
		status.AlreadyOnPath = true
		return status, nil
	}

	changed, err := t.profile.EnsureExports([]string{
		fmt.Sprintf("export PATH=%s:$PATH", cudaBinDir),
		fmt.Sprintf("export LD_LIBRARY_PATH=%s:$LD_LIBRARY_PATH", cudaLibDir),
	}, cudaBinDir)
	if err != nil {
		return nil, fmt.Errorf("failed to update shell profile: %w", err)
	}
	status.ProfileUpdated = changed

	// The profile only helps future sessions; this run needs the paths now.
	if err := t.prependEnv("PATH", cudaBinDir); err != nil {
		return nil, err
	}
	if err := t.prependEnv("LD_LIBRARY_PATH", cudaLibDir); err != nil {
		return nil, err
	}

	return status, nil
}

// NvccResolvable reports whether the CUDA compiler is currently on PATH.
func (t *ToolchainEnv) NvccResolvable() bool {
	_, err := t.lookPath(nvccBinary)
	return err == nil
}

func (t *ToolchainEnv) prependEnv(key, dir string) error {
	current := t.getenv(key)
	for _, p := range strings.Split(current, ":") {
		if p == dir {
			return nil
		}
	}
	value := dir
	if current != "" {
		value = dir + ":" + current
	}
	if err := t.setenv(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
