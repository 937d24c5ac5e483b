package gpg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Test importing key from nonexistent file
func TestVerifier_ImportKeyFromFile_NonexistentFile(t *testing.T) {
	v := NewVerifier()

	err := v.ImportKeyFromFile("/nonexistent/key.asc")

	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}

	if !strings.Contains(err.Error(), "failed to open key file") {
		t.Errorf("Expected 'failed to open key file' error, got: %v", err)
	}
}

// Test importing key from file that is not a key at all
func TestVerifier_ImportKeyFromFile_Garbage(t *testing.T) {
	v := NewVerifier()
	tmpDir := t.TempDir()

	keyPath := filepath.Join(tmpDir, "garbage.asc")
	if err := os.WriteFile(keyPath, []byte("not a gpg key"), 0600); err != nil {
		t.Fatal(err)
	}

	err := v.ImportKeyFromFile(keyPath)

	if err == nil {
		t.Fatal("Expected error for invalid key file, got nil")
	}
	if v.KeyringSize() != 0 {
		t.Errorf("Keyring size = %d after failed import, want 0", v.KeyringSize())
	}
}

// Test importing a truncated armored key
func TestVerifier_ImportKeyFromFile_TruncatedArmor(t *testing.T) {
	v := NewVerifier()
	tmpDir := t.TempDir()

	keyPath := filepath.Join(tmpDir, "truncated.asc")
	keyContent := `-----BEGIN PGP PUBLIC KEY BLOCK-----

mQENBGPexAMBCAC1kLz...
-----END PGP PUBLIC KEY BLOCK-----`
	if err := os.WriteFile(keyPath, []byte(keyContent), 0600); err != nil {
		t.Fatal(err)
	}

	err := v.ImportKeyFromFile(keyPath)

	if err == nil {
		t.Fatal("Expected error for truncated key, got nil")
	}
}

// Test ImportKeys with empty key IDs
func TestVerifier_ImportKeys_EmptyKeyIDs(t *testing.T) {
	v := NewVerifier()

	err := v.ImportKeys(context.Background(), []string{})

	if err == nil {
		t.Fatal("Expected error for empty key IDs, got nil")
	}

	if !strings.Contains(err.Error(), "no key IDs provided") {
		t.Errorf("Expected 'no key IDs provided' error, got: %v", err)
	}
}

// Test ImportKeys with context cancellation
func TestVerifier_ImportKeys_ContextCanceled(t *testing.T) {
	v := NewVerifier()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := v.ImportKeys(ctx, []string{"TESTKEY"})

	if err == nil {
		t.Fatal("Expected error for canceled context, got nil")
	}
}

// Test ImportKeysFromURL against a server returning an error status
func TestVerifier_ImportKeysFromURL_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	v := NewVerifier()

	err := v.ImportKeysFromURL(context.Background(), server.URL+"/jetson-ota-public.asc")

	if err == nil {
		t.Fatal("Expected error for 404 response, got nil")
	}
	if !strings.Contains(err.Error(), "failed to import keys") {
		t.Errorf("Expected 'failed to import keys' error, got: %v", err)
	}
}

// Test ImportKeysFromURL against a server returning non-key content
func TestVerifier_ImportKeysFromURL_InvalidContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		//nolint:errcheck // Test server write
		w.Write([]byte("<html>this is not a key</html>"))
	}))
	defer server.Close()

	v := NewVerifier()

	err := v.ImportKeysFromURL(context.Background(), server.URL+"/key.asc")

	if err == nil {
		t.Fatal("Expected error for non-key content, got nil")
	}
	if v.KeyringSize() != 0 {
		t.Errorf("Keyring size = %d after failed import, want 0", v.KeyringSize())
	}
}

// Test VerifyDetached without keys imported
func TestVerifier_VerifyDetached_NoKeysImported(t *testing.T) {
	v := NewVerifier()

	err := v.VerifyDetached([]byte("Release file contents"), []byte("long enough signature"))

	if err == nil {
		t.Fatal("Expected error when no keys are imported, got nil")
	}

	if !strings.Contains(err.Error(), "no GPG keys imported") {
		t.Errorf("Expected 'no GPG keys imported' error, got: %v", err)
	}
}

// Test VerifyDetached with a signature too small to be real
func TestVerifier_VerifyDetached_TinySignature(t *testing.T) {
	v := NewVerifier()
	v.keyring = append(v.keyring, nil) // non-empty keyring to reach the size check

	err := v.VerifyDetached([]byte("data"), []byte("sig"))

	if err == nil {
		t.Fatal("Expected error for undersized signature, got nil")
	}

	if !strings.Contains(err.Error(), "too small") {
		t.Errorf("Expected 'too small' error, got: %v", err)
	}
}

// Test keyring size accounting
func TestVerifier_KeyringSize(t *testing.T) {
	v := NewVerifier()

	if size := v.KeyringSize(); size != 0 {
		t.Errorf("Initial keyring size = %d, want 0", size)
	}
}
