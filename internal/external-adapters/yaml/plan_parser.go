// Package yaml provides YAML-based installation plan parsing and repository
// implementations.
package yaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jetprov/jetprov/internal/domain/entities"
)

// yamlPlan represents the raw YAML structure
type yamlPlan struct {
	Profiles []yamlProfile `yaml:"profiles"`
	Stages   []yamlStage   `yaml:"stages"`
}

type yamlProfile struct {
	MinL4TVersion     string `yaml:"min_l4t_version"`
	TensorFlowVersion string `yaml:"tensorflow_version"`
	NVBuildTag        string `yaml:"nv_build_tag"`
	JetPackIndex      int    `yaml:"jetpack_index"`
}

type yamlStage struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	UpdateIndex bool             `yaml:"update_index"`
	AptPackages []string         `yaml:"apt_packages"`
	Symlinks    []yamlSymlink    `yaml:"symlinks"`
	PipInstalls []yamlPipInstall `yaml:"pip_installs"`
}

type yamlSymlink struct {
	Target   string `yaml:"target"`
	LinkName string `yaml:"link_name"`
}

type yamlPipInstall struct {
	Requirement   string            `yaml:"requirement"`
	ExtraIndexURL string            `yaml:"extra_index_url"`
	Env           map[string]string `yaml:"env"`
}

// PlanParser parses YAML installation plans
type PlanParser struct{}

// NewPlanParser creates a new YAML plan parser
func NewPlanParser() *PlanParser {
	return &PlanParser{}
}

// ParseFile parses a YAML plan file into an InstallPlan entity
func (p *PlanParser) ParseFile(filePath string) (*entities.InstallPlan, error) {
	//nolint:gosec // G304: filePath is an operator-provided plan override path
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into an InstallPlan entity
func (p *PlanParser) Parse(data []byte) (*entities.InstallPlan, error) {
	var yp yamlPlan
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(yp.Profiles) == 0 {
		return nil, fmt.Errorf("plan must define at least one version profile")
	}
	if len(yp.Stages) == 0 {
		return nil, fmt.Errorf("plan must define at least one installation stage")
	}

	plan := &entities.InstallPlan{
		Profiles: make([]entities.VersionProfile, 0, len(yp.Profiles)),
		Stages:   make([]entities.InstallStage, 0, len(yp.Stages)),
	}

	for i, prof := range yp.Profiles {
		if prof.MinL4TVersion == "" {
			return nil, fmt.Errorf("profile %d: min_l4t_version is required", i)
		}
		if prof.TensorFlowVersion == "" || prof.NVBuildTag == "" {
			return nil, fmt.Errorf("profile for L4T %s: tensorflow_version and nv_build_tag are required", prof.MinL4TVersion)
		}
		if prof.JetPackIndex <= 0 {
			return nil, fmt.Errorf("profile for L4T %s: jetpack_index must be positive", prof.MinL4TVersion)
		}
		plan.Profiles = append(plan.Profiles, entities.VersionProfile{
			MinL4TVersion:     prof.MinL4TVersion,
			TensorFlowVersion: prof.TensorFlowVersion,
			NVBuildTag:        prof.NVBuildTag,
			JetPackIndex:      prof.JetPackIndex,
		})
	}

	for i, st := range yp.Stages {
		if st.Name == "" {
			return nil, fmt.Errorf("stage %d: name is required", i)
		}
		plan.Stages = append(plan.Stages, convertStage(st))
	}

	return plan, nil
}

func convertStage(ys yamlStage) entities.InstallStage {
	stage := entities.InstallStage{
		Name:        ys.Name,
		Description: ys.Description,
		UpdateIndex: ys.UpdateIndex,
		AptPackages: ys.AptPackages,
	}

	for _, link := range ys.Symlinks {
		stage.Symlinks = append(stage.Symlinks, entities.Symlink{
			Target:   link.Target,
			LinkName: link.LinkName,
		})
	}

	for _, pi := range ys.PipInstalls {
		stage.PipInstalls = append(stage.PipInstalls, entities.PipInstall{
			Requirement:   pi.Requirement,
			ExtraIndexURL: pi.ExtraIndexURL,
			Env:           pi.Env,
		})
	}

	return stage
}
