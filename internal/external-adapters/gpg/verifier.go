// Package gpg provides GPG signature verification capabilities.
package gpg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Verifier implements GPG signature verification using ProtonMail's go-crypto
// A maintained, modern fork of golang.org/x/crypto/openpgp
// This is in external-adapters to isolate the external dependency
type Verifier struct {
	keyring    openpgp.EntityList
	httpClient *http.Client
}

// NewVerifier creates a new GPG verifier
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ImportKeys imports GPG keys from a keyserver with fallbacks
func (v *Verifier) ImportKeys(ctx context.Context, keyIDs []string) error {
	if len(keyIDs) == 0 {
		return fmt.Errorf("no key IDs provided")
	}

	// Multiple keyserver fallbacks for redundancy
	keyservers := []string{
		"https://keys.openpgp.org",
		"https://keyserver.ubuntu.com",
		"https://pgp.mit.edu",
	}

	for _, keyID := range keyIDs {
		if keyID == "" {
			continue
		}

		var lastErr error
		imported := false

		for _, keyserver := range keyservers {
			urls := []string{
				fmt.Sprintf("%s/vks/v1/by-fingerprint/%s", keyserver, keyID),
				fmt.Sprintf("%s/pks/lookup?op=get&search=0x%s", keyserver, keyID),
			}

			for _, url := range urls {
				keys, err := v.fetchArmoredKeys(ctx, url)
				if err != nil {
					lastErr = err
					continue
				}

				// Security: the fingerprint must match what was requested.
				validKey := false
				for _, entity := range keys {
					fingerprint := fmt.Sprintf("%X", entity.PrimaryKey.Fingerprint)
					if fingerprint == keyID || (len(fingerprint) >= 16 && fingerprint[len(fingerprint)-16:] == keyID) {
						validKey = true
					}
				}
				if !validKey {
					lastErr = fmt.Errorf("no valid keys found matching fingerprint %s", keyID)
					continue
				}

				v.keyring = append(v.keyring, keys...)
				imported = true
				break
			}

			if imported {
				break
			}
		}

		if !imported {
			return fmt.Errorf("failed to import key %s from all keyservers: %w", keyID, lastErr)
		}
	}

	return nil
}

// ImportKeysFromURL imports all GPG keys from a published key file URL,
// e.g. a vendor's repository signing key (jetson-ota-public.asc).
func (v *Verifier) ImportKeysFromURL(ctx context.Context, keysURL string) error {
	keys, err := v.fetchArmoredKeys(ctx, keysURL)
	if err != nil {
		return fmt.Errorf("failed to import keys from %s: %w", keysURL, err)
	}

	v.keyring = append(v.keyring, keys...)
	return nil
}

// ImportKeyFromFile imports a GPG key from a local file (armored or binary)
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is operator-provided for GPG key import
	f, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	keys, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		if _, seekErr := f.Seek(0, 0); seekErr != nil {
			return fmt.Errorf("failed to reset file: %w", seekErr)
		}
		keys, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(keys) == 0 {
		return fmt.Errorf("no keys found in file")
	}

	v.keyring = append(v.keyring, keys...)
	return nil
}

// VerifyDetached verifies a detached signature over in-memory data. The
// signature may be armored or binary.
func (v *Verifier) VerifyDetached(data, sig []byte) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported, import keys first")
	}

	if len(sig) < 10 {
		return fmt.Errorf("signature too small to be a valid GPG signature")
	}

	isArmored := bytes.HasPrefix(sig, []byte("-----BEGIN PGP SIGNATURE---"))

	var verifyErr error
	if isArmored {
		_, verifyErr = openpgp.CheckArmoredDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(sig), nil)
	} else {
		_, verifyErr = openpgp.CheckDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(sig), nil)
	}

	if verifyErr != nil {
		return fmt.Errorf("signature verification failed: %w", verifyErr)
	}

	return nil
}

// KeyringSize returns the number of keys in the keyring
func (v *Verifier) KeyringSize() int {
	return len(v.keyring)
}

func (v *Verifier) fetchArmoredKeys(ctx context.Context, url string) (openpgp.EntityList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download key: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("key download failed with status %d", resp.StatusCode)
	}

	// Limit key file size to 10MB
	limitedReader := io.LimitReader(resp.Body, 10*1024*1024)

	keys, err := openpgp.ReadArmoredKeyRing(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse key: %w", err)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no keys found in response")
	}
	return keys, nil
}
