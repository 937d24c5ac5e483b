// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/jetprov/jetprov/internal/domain/entities"
	"github.com/jetprov/jetprov/internal/domain/interfaces"
	"github.com/jetprov/jetprov/internal/domain/interfaces/repositories"
	"github.com/jetprov/jetprov/internal/domain/services"
)

// PlatformDetector interface for reading the installed L4T version
type PlatformDetector interface {
	DetectL4TVersion(ctx context.Context) (string, error)
}

// CommandRunner interface for executing installation commands
type CommandRunner interface {
	Run(ctx context.Context, cmd entities.Command) *entities.RunResult
}

// ToolchainEnsurer interface for making the CUDA toolchain resolvable
type ToolchainEnsurer interface {
	Ensure() (*entities.ToolchainStatus, error)
}

// RepoVerifier interface for verifying the vendor apt repository signature
type RepoVerifier interface {
	VerifyRelease(ctx context.Context) error
}

// ProvisionOrchestrator coordinates the complete provisioning workflow:
// detect, resolve, verify, toolchain, then the installation stages in order.
type ProvisionOrchestrator struct {
	planRepo     repositories.PlanRepository
	detector     PlatformDetector
	toolchain    ToolchainEnsurer
	repoVerifier RepoVerifier
	runner       CommandRunner
	logger       interfaces.Logger
	cfg          ProvisionConfig
}

// ProvisionConfig holds configuration for the orchestrator
type ProvisionConfig struct {
	// PlanPath overrides the built-in plan when non-empty.
	PlanPath string

	// SkipToolchain leaves the shell environment alone.
	SkipToolchain bool

	// VerifyRepo checks the apt repository signature before any mutation.
	VerifyRepo bool

	// BuildJobs feeds ${build_jobs}; 0 means the number of CPUs.
	BuildJobs int
}

// NewProvisionOrchestrator creates a new provisioning orchestrator
func NewProvisionOrchestrator(
	planRepo repositories.PlanRepository,
	detector PlatformDetector,
	toolchain ToolchainEnsurer,
	repoVerifier RepoVerifier,
	runner CommandRunner,
	logger interfaces.Logger,
	cfg ProvisionConfig,
) *ProvisionOrchestrator {
	if cfg.BuildJobs <= 0 {
		cfg.BuildJobs = runtime.NumCPU()
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &ProvisionOrchestrator{
		planRepo:     planRepo,
		detector:     detector,
		toolchain:    toolchain,
		repoVerifier: repoVerifier,
		runner:       runner,
		logger:       logger,
		cfg:          cfg,
	}
}

// StageOutcome records one completed stage for the final summary.
type StageOutcome struct {
	Stage    string
	Commands int
	Duration time.Duration
}

// ProvisionResult contains the result of a provisioning run
type ProvisionResult struct {
	L4TVersion    string
	Profile       *entities.VersionProfile
	Toolchain     *entities.ToolchainStatus
	Stages        []StageOutcome
	TotalDuration time.Duration
	Success       bool
	Error         error
}

// Provision executes the complete provisioning workflow. The first failing
// sub-command aborts the run with no rollback: partial package state is
// expected to need manual remediation, so stage boundaries are logged to
// make manual resumption possible.
func (o *ProvisionOrchestrator) Provision(ctx context.Context) (*ProvisionResult, error) {
	startTime := time.Now()
	result := &ProvisionResult{}

	// Step 1: Load the installation plan
	plan, err := o.loadPlan(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to load plan: %w", err)
		return result, result.Error
	}

	// Step 2: Detect the installed L4T version
	version, err := o.detector.DetectL4TVersion(ctx)
	if err != nil {
		result.Error = err
		return result, result.Error
	}
	result.L4TVersion = version
	o.logger.Info("detected platform", interfaces.F("l4t", version))

	// Step 3: Resolve the version profile
	resolver := services.NewProfileResolver(plan.Profiles)
	profile, err := resolver.Resolve(version)
	if err != nil {
		result.Error = err
		return result, result.Error
	}
	result.Profile = profile
	o.logger.Info("resolved profile",
		interfaces.F("tensorflow", profile.TensorFlowVersion),
		interfaces.F("nv_build", profile.NVBuildTag),
		interfaces.F("jetpack_index", profile.JetPackIndex))

	// Step 4: Verify the apt repository before mutating anything
	if o.cfg.VerifyRepo {
		if err := o.repoVerifier.VerifyRelease(ctx); err != nil {
			result.Error = fmt.Errorf("repository verification failed: %w", err)
			return result, result.Error
		}
		o.logger.Info("apt repository signature verified")
	}

	// Step 5: Make the CUDA toolchain resolvable
	if !o.cfg.SkipToolchain {
		status, err := o.toolchain.Ensure()
		if err != nil {
			result.Error = fmt.Errorf("toolchain setup failed: %w", err)
			return result, result.Error
		}
		result.Toolchain = status
		if status.AlreadyOnPath {
			o.logger.Debug("cuda toolchain already on PATH")
		} else if status.ProfileUpdated {
			o.logger.Info("shell profile updated", interfaces.F("file", status.ProfilePath))
		}
	}

	// Step 6: Run the installation stages strictly in order
	params := services.StageParams(profile, o.cfg.BuildJobs)
	for _, stage := range plan.Stages {
		outcome, err := o.runStage(ctx, stage, params)
		if err != nil {
			result.Error = err
			return result, result.Error
		}
		result.Stages = append(result.Stages, outcome)
	}

	result.Success = true
	result.TotalDuration = time.Since(startTime)
	return result, nil
}

func (o *ProvisionOrchestrator) runStage(ctx context.Context, stage entities.InstallStage, params map[string]string) (StageOutcome, error) {
	stageStart := time.Now()

	expanded, err := services.ExpandStage(stage, params)
	if err != nil {
		return StageOutcome{}, err
	}
	cmds := services.StageCommands(expanded)

	o.logger.Info("stage started",
		interfaces.F("stage", stage.Name),
		interfaces.F("commands", len(cmds)))

	for _, cmd := range cmds {
		o.logger.Info("running", interfaces.F("cmd", cmd.String()))
		res := o.runner.Run(ctx, cmd)
		if !res.Success {
			return StageOutcome{}, &entities.StageError{
				Stage:    stage.Name,
				Command:  cmd.String(),
				ExitCode: res.ExitCode,
				Err:      res.Err,
			}
		}
	}

	outcome := StageOutcome{
		Stage:    stage.Name,
		Commands: len(cmds),
		Duration: time.Since(stageStart),
	}
	o.logger.Info("stage completed",
		interfaces.F("stage", stage.Name),
		interfaces.F("duration", outcome.Duration))
	return outcome, nil
}

func (o *ProvisionOrchestrator) loadPlan(ctx context.Context) (*entities.InstallPlan, error) {
	if o.cfg.PlanPath != "" {
		return o.planRepo.GetPlanFromFile(ctx, o.cfg.PlanPath)
	}
	return o.planRepo.GetPlan(ctx)
}

// GetProvisionSummary returns a human-readable summary of the run
func (r *ProvisionResult) GetProvisionSummary() string {
	if !r.Success {
		return fmt.Sprintf("Provisioning failed: %v", r.Error)
	}

	summary := fmt.Sprintf(`Provisioning successful!
L4T version: %s
TensorFlow: %s+nv%s (index jp/v%d)
Stages: %d
Total: %v`,
		r.L4TVersion,
		r.Profile.TensorFlowVersion, r.Profile.NVBuildTag, r.Profile.JetPackIndex,
		len(r.Stages),
		r.TotalDuration)
	return summary
}
