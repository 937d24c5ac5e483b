package entities

// InstallPlan is the static provisioning configuration: the ordered version
// profiles plus the ordered installation stages. A plan is loaded once per
// run and never mutated.
type InstallPlan struct {
	// Profiles are ordered by MinL4TVersion descending; resolution picks
	// the first profile whose floor is <= the detected L4T version.
	Profiles []VersionProfile

	// Stages run strictly in order; the first failing command aborts the
	// whole sequence.
	Stages []InstallStage
}

// InstallStage describes one installation stage as data: OS packages first,
// then compatibility symlinks, then pip installs. Stages never reference
// each other; ordering is the slice order in the plan.
type InstallStage struct {
	Name        string
	Description string

	// UpdateIndex refreshes the apt package index before installing.
	UpdateIndex bool

	AptPackages []string
	Symlinks    []Symlink
	PipInstalls []PipInstall
}

// Symlink is a compatibility link created before pip installs run, e.g.
// xlocale.h -> locale.h for source builds against old toolchains.
type Symlink struct {
	Target   string
	LinkName string
}

// PipInstall is a single pip requirement. Requirement, ExtraIndexURL and Env
// values may contain ${placeholder} parameters expanded from the resolved
// VersionProfile before execution.
type PipInstall struct {
	Requirement   string
	ExtraIndexURL string
	Env           map[string]string
}

// Placeholder names understood by parameter expansion.
const (
	ParamTensorFlowVersion = "tensorflow_version"
	ParamNVBuildTag        = "nv_build_tag"
	ParamJetPackIndex      = "jetpack_index"
	ParamBuildJobs         = "build_jobs"
)
