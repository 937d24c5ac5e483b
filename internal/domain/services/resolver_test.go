package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/jetprov/jetprov/internal/domain/entities"
)

func testProfiles() []entities.VersionProfile {
	return []entities.VersionProfile{
		{MinL4TVersion: "32.6", TensorFlowVersion: "1.15.5", NVBuildTag: "21.7", JetPackIndex: 46},
		{MinL4TVersion: "32.5", TensorFlowVersion: "1.15.4", NVBuildTag: "20.12", JetPackIndex: 45},
		{MinL4TVersion: "32.4", TensorFlowVersion: "1.15.2", NVBuildTag: "20.4", JetPackIndex: 44},
	}
}

func TestProfileResolver_Resolve(t *testing.T) {
	r := NewProfileResolver(testProfiles())

	tests := []struct {
		version   string
		wantFloor string
		wantTF    string
		wantNV    string
		wantIndex int
	}{
		{"32.6", "32.6", "1.15.5", "21.7", 46},
		{"32.5", "32.5", "1.15.4", "20.12", 45},
		{"32.4", "32.4", "1.15.2", "20.4", 44},
		// Above the newest floor: still the newest profile.
		{"32.9", "32.6", "1.15.5", "21.7", 46},
		{"33.1", "32.6", "1.15.5", "21.7", 46},
		// Numeric comparison per component, not lexicographic.
		{"32.10", "32.6", "1.15.5", "21.7", 46},
		// Between floors: the highest floor at or below wins, not the nearest.
		{"32.5.1", "32.5", "1.15.4", "20.12", 45},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			profile, err := r.Resolve(tt.version)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.version, err)
			}
			if profile.MinL4TVersion != tt.wantFloor {
				t.Errorf("Resolve(%q) floor = %s, want %s", tt.version, profile.MinL4TVersion, tt.wantFloor)
			}
			if profile.TensorFlowVersion != tt.wantTF {
				t.Errorf("Resolve(%q) tensorflow = %s, want %s", tt.version, profile.TensorFlowVersion, tt.wantTF)
			}
			if profile.NVBuildTag != tt.wantNV {
				t.Errorf("Resolve(%q) nv tag = %s, want %s", tt.version, profile.NVBuildTag, tt.wantNV)
			}
			if profile.JetPackIndex != tt.wantIndex {
				t.Errorf("Resolve(%q) index = %d, want %d", tt.version, profile.JetPackIndex, tt.wantIndex)
			}
		})
	}
}

func TestProfileResolver_Resolve_Unsupported(t *testing.T) {
	r := NewProfileResolver(testProfiles())

	for _, version := range []string{"32.3", "32.0", "31.9", "28.2"} {
		t.Run(version, func(t *testing.T) {
			_, err := r.Resolve(version)
			if err == nil {
				t.Fatalf("Resolve(%q) should have failed", version)
			}

			var unsupported *entities.UnsupportedPlatformError
			if !errors.As(err, &unsupported) {
				t.Fatalf("Resolve(%q) error = %T, want *UnsupportedPlatformError", version, err)
			}
			if unsupported.Version != version {
				t.Errorf("error version = %s, want %s", unsupported.Version, version)
			}
			if !strings.Contains(err.Error(), version) {
				t.Errorf("error message %q should name version %s", err.Error(), version)
			}
			if unsupported.MinSupported != "32.4" {
				t.Errorf("error min supported = %s, want 32.4", unsupported.MinSupported)
			}
		})
	}
}

func TestProfileResolver_Resolve_UnparsableVersion(t *testing.T) {
	r := NewProfileResolver(testProfiles())

	_, err := r.Resolve("not-a-version")
	if err == nil {
		t.Fatal("Resolve() should have failed")
	}

	var detection *entities.PlatformDetectionError
	if !errors.As(err, &detection) {
		t.Fatalf("Resolve() error = %T, want *PlatformDetectionError", err)
	}
}

func TestProfileResolver_Resolve_NoDefaultSubstituted(t *testing.T) {
	// A resolver over an empty profile set must fail, never fall back.
	r := NewProfileResolver(nil)

	_, err := r.Resolve("32.6")
	if err == nil {
		t.Fatal("Resolve() over empty profiles should have failed")
	}
}
