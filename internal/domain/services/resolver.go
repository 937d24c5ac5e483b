// Package services contains the pure domain logic for provisioning.
package services

import (
	"fmt"

	"github.com/blang/semver/v4"

	"github.com/jetprov/jetprov/internal/domain/entities"
)

// ProfileResolver maps a detected L4T version to the version profile with
// the numerically greatest floor that is still <= the detected version.
type ProfileResolver struct {
	profiles []entities.VersionProfile
}

// NewProfileResolver creates a resolver over the plan's profile set.
func NewProfileResolver(profiles []entities.VersionProfile) *ProfileResolver {
	return &ProfileResolver{profiles: profiles}
}

// Resolve returns the matching profile for an L4T version string
// ("major.minor" or longer). Comparison is numeric per dotted component, so
// "32.10" sorts above "32.6". If every floor is above the detected version
// the platform is unsupported and no default is substituted.
func (r *ProfileResolver) Resolve(l4tVersion string) (*entities.VersionProfile, error) {
	detected, err := semver.ParseTolerant(l4tVersion)
	if err != nil {
		return nil, &entities.PlatformDetectionError{
			Package: "nvidia-l4t-core",
			Reason:  fmt.Sprintf("unparsable L4T version %q", l4tVersion),
			Err:     err,
		}
	}

	var best *entities.VersionProfile
	var bestFloor semver.Version
	for i := range r.profiles {
		floor, err := semver.ParseTolerant(r.profiles[i].MinL4TVersion)
		if err != nil {
			return nil, fmt.Errorf("invalid profile floor %q: %w", r.profiles[i].MinL4TVersion, err)
		}
		if floor.GT(detected) {
			continue
		}
		if best == nil || floor.GT(bestFloor) {
			best = &r.profiles[i]
			bestFloor = floor
		}
	}

	if best == nil {
		return nil, &entities.UnsupportedPlatformError{
			Version:      l4tVersion,
			MinSupported: r.oldestFloor(),
		}
	}
	return best, nil
}

// Profiles returns the full profile set, for listing.
func (r *ProfileResolver) Profiles() []entities.VersionProfile {
	return r.profiles
}

func (r *ProfileResolver) oldestFloor() string {
	oldest := ""
	var oldestParsed semver.Version
	for _, p := range r.profiles {
		floor, err := semver.ParseTolerant(p.MinL4TVersion)
		if err != nil {
			continue
		}
		if oldest == "" || floor.LT(oldestParsed) {
			oldest = p.MinL4TVersion
			oldestParsed = floor
		}
	}
	return oldest
}
