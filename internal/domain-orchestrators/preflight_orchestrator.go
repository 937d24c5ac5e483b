package orchestrators

import (
	"context"
	"fmt"

	"github.com/jetprov/jetprov/internal/domain/entities"
	"github.com/jetprov/jetprov/internal/domain/interfaces/repositories"
	"github.com/jetprov/jetprov/internal/domain/services"
)

// EndpointChecker interface for probing repository endpoints
type EndpointChecker interface {
	CheckReachable(ctx context.Context, url string) error
}

// ToolchainProbe interface for the non-mutating toolchain check
type ToolchainProbe interface {
	NvccResolvable() bool
}

// ProfileProbe interface for the non-mutating shell profile check
type ProfileProbe interface {
	Writable() error
	Path() string
}

// PreflightOrchestrator runs every environment check provisioning depends
// on, without mutating anything.
type PreflightOrchestrator struct {
	planRepo  repositories.PlanRepository
	detector  PlatformDetector
	endpoints EndpointChecker
	toolchain ToolchainProbe
	profile   ProfileProbe
	cfg       PreflightConfig
}

// PreflightConfig holds configuration for preflight checks
type PreflightConfig struct {
	PlanPath   string
	AptRepoURL string
	PipIndex   string
}

// NewPreflightOrchestrator creates a new preflight orchestrator
func NewPreflightOrchestrator(
	planRepo repositories.PlanRepository,
	detector PlatformDetector,
	endpoints EndpointChecker,
	toolchain ToolchainProbe,
	profile ProfileProbe,
	cfg PreflightConfig,
) *PreflightOrchestrator {
	return &PreflightOrchestrator{
		planRepo:  planRepo,
		detector:  detector,
		endpoints: endpoints,
		toolchain: toolchain,
		profile:   profile,
		cfg:       cfg,
	}
}

// PreflightCheck is the outcome of one check. Err nil means passed; Note
// carries advisory detail either way.
type PreflightCheck struct {
	Name string
	Note string
	Err  error
}

// PreflightResult aggregates all checks
type PreflightResult struct {
	Checks []PreflightCheck
	Passed bool
}

// Run executes every check and keeps going past failures so the operator
// sees the full picture in one pass.
func (o *PreflightOrchestrator) Run(ctx context.Context) *PreflightResult {
	result := &PreflightResult{Passed: true}
	add := func(c PreflightCheck) {
		if c.Err != nil {
			result.Passed = false
		}
		result.Checks = append(result.Checks, c)
	}

	// Plan loads and parses
	plan, planErr := o.loadPlan(ctx)
	add(PreflightCheck{Name: "installation plan", Err: planErr})

	// L4T version is detectable
	version, detectErr := o.detector.DetectL4TVersion(ctx)
	check := PreflightCheck{Name: "L4T detection", Err: detectErr}
	if detectErr == nil {
		check.Note = "L4T " + version
	}
	add(check)

	// Detected version resolves to a profile
	check = PreflightCheck{Name: "profile resolution"}
	switch {
	case planErr != nil || detectErr != nil:
		check.Err = fmt.Errorf("skipped: prerequisites failed")
	default:
		profile, err := services.NewProfileResolver(plan.Profiles).Resolve(version)
		check.Err = err
		if err == nil {
			check.Note = profile.String()
		}
	}
	add(check)

	// Toolchain status is advisory: provision fixes an absent nvcc itself
	check = PreflightCheck{Name: "cuda toolchain"}
	if o.toolchain.NvccResolvable() {
		check.Note = "nvcc on PATH"
	} else {
		check.Note = "nvcc not on PATH; provision will extend " + o.profile.Path()
	}
	add(check)

	// Shell profile is writable
	add(PreflightCheck{Name: "shell profile writable", Note: o.profile.Path(), Err: o.profile.Writable()})

	// Vendor repositories are reachable
	add(PreflightCheck{Name: "apt repository reachable", Note: o.cfg.AptRepoURL,
		Err: o.endpoints.CheckReachable(ctx, o.cfg.AptRepoURL)})
	add(PreflightCheck{Name: "pip index reachable", Note: o.cfg.PipIndex,
		Err: o.endpoints.CheckReachable(ctx, o.cfg.PipIndex)})

	return result
}

func (o *PreflightOrchestrator) loadPlan(ctx context.Context) (*entities.InstallPlan, error) {
	if o.cfg.PlanPath != "" {
		return o.planRepo.GetPlanFromFile(ctx, o.cfg.PlanPath)
	}
	return o.planRepo.GetPlan(ctx)
}
