// Package entities defines the core domain types for provisioning.
package entities

import "fmt"

// VersionProfile is the coherent tuple of artifact versions for one L4T
// release tier. TensorFlow wheels on Jetson are published per JetPack
// channel with an NVIDIA build suffix, so the three fields only make sense
// together.
type VersionProfile struct {
	// MinL4TVersion is the inclusive floor ("major.minor") of the L4T
	// releases this profile covers.
	MinL4TVersion string

	// TensorFlowVersion is the upstream framework version, e.g. "1.15.5".
	TensorFlowVersion string

	// NVBuildTag is the vendor build suffix appended to the wheel version
	// as "+nv<tag>", e.g. "21.7".
	NVBuildTag string

	// JetPackIndex selects the NVIDIA pip index channel (jp/v<NN>).
	JetPackIndex int
}

// WheelSpec returns the pip requirement for the profile's TensorFlow wheel.
func (p *VersionProfile) WheelSpec() string {
	return fmt.Sprintf("tensorflow==%s+nv%s", p.TensorFlowVersion, p.NVBuildTag)
}

// String renders the profile for operator-facing output.
func (p *VersionProfile) String() string {
	return fmt.Sprintf("L4T >= %s: tensorflow %s (build nv%s, index jp/v%d)",
		p.MinL4TVersion, p.TensorFlowVersion, p.NVBuildTag, p.JetPackIndex)
}
