package entities

// ToolchainStatus reports what the toolchain environment check found and did.
type ToolchainStatus struct {
	// AlreadyOnPath means the CUDA compiler was resolvable and nothing was
	// touched.
	AlreadyOnPath bool

	// ProfileUpdated means the shell profile block was written or rewritten
	// this run.
	ProfileUpdated bool

	// ProfilePath is the shell startup file under management.
	ProfilePath string
}
