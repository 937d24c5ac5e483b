package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Vendor repository endpoints consumed during provisioning. The apt
// repository serves the JetPack OS packages; the pip index serves the
// NVIDIA-built wheels.
const (
	// JetsonAptRepoURL is the dist root of the common Jetson apt repository.
	JetsonAptRepoURL = "https://repo.download.nvidia.com/jetson/common/dists/stable"

	// JetsonOTAKeyURL is the repository signing key NVIDIA publishes
	// alongside the repository itself.
	JetsonOTAKeyURL = "https://repo.download.nvidia.com/jetson/jetson-ota-public.asc"

	// JetPackPipIndexRoot is the root of the NVIDIA wheel index; the
	// channel suffix (jp/v<NN>) comes from the resolved profile.
	JetPackPipIndexRoot = "https://developer.download.nvidia.com/compute/redist"
)

// SignatureVerifier is the detached-signature side of repository
// verification, implemented by the gpg external adapter.
type SignatureVerifier interface {
	ImportKeys(ctx context.Context, keyIDs []string) error
	ImportKeysFromURL(ctx context.Context, keysURL string) error
	ImportKeyFromFile(keyPath string) error
	VerifyDetached(data, sig []byte) error
	KeyringSize() int
}

// AptRepoVerifier checks the vendor apt repository's Release file against
// its detached signature before any package from it is installed.
type AptRepoVerifier struct {
	verifier   SignatureVerifier
	httpClient *http.Client
	repoURL    string
}

// NewAptRepoVerifier creates a verifier for the Jetson apt repository
func NewAptRepoVerifier(verifier SignatureVerifier) *AptRepoVerifier {
	return &AptRepoVerifier{
		verifier: verifier,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		repoURL: JetsonAptRepoURL,
	}
}

// VerifyRelease fetches Release and Release.gpg from the repository dist
// root and verifies the detached signature. Keys must be imported into the
// signature verifier first; when none are, the repository's published
// signing key is fetched.
func (r *AptRepoVerifier) VerifyRelease(ctx context.Context) error {
	if r.verifier.KeyringSize() == 0 {
		if err := r.verifier.ImportKeysFromURL(ctx, JetsonOTAKeyURL); err != nil {
			return fmt.Errorf("failed to import repository signing key: %w", err)
		}
	}

	release, err := r.fetch(ctx, r.repoURL+"/Release", 10*1024*1024)
	if err != nil {
		return fmt.Errorf("failed to fetch Release: %w", err)
	}

	sig, err := r.fetch(ctx, r.repoURL+"/Release.gpg", 10*1024)
	if err != nil {
		return fmt.Errorf("failed to fetch Release.gpg: %w", err)
	}

	if err := r.verifier.VerifyDetached(release, sig); err != nil {
		return fmt.Errorf("apt repository %s: %w", r.repoURL, err)
	}
	return nil
}

func (r *AptRepoVerifier) fetch(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, limit))
}
