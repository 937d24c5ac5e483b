package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jetprov/jetprov/internal/domain/entities"
)

// StageParams builds the placeholder expansion map for a resolved profile.
// buildJobs feeds ${build_jobs} for source builds (CuPy).
func StageParams(profile *entities.VersionProfile, buildJobs int) map[string]string {
	return map[string]string{
		entities.ParamTensorFlowVersion: profile.TensorFlowVersion,
		entities.ParamNVBuildTag:        profile.NVBuildTag,
		entities.ParamJetPackIndex:      strconv.Itoa(profile.JetPackIndex),
		entities.ParamBuildJobs:         strconv.Itoa(buildJobs),
	}
}

// ExpandStage returns a copy of the stage with every ${placeholder} in pip
// requirements, index URLs and env values substituted from params. An
// unknown placeholder is an error: silently installing "tensorflow==+nv"
// would be far worse than aborting.
func ExpandStage(stage entities.InstallStage, params map[string]string) (entities.InstallStage, error) {
	expanded := stage
	expanded.PipInstalls = make([]entities.PipInstall, 0, len(stage.PipInstalls))

	for _, pi := range stage.PipInstalls {
		req, err := expand(pi.Requirement, params)
		if err != nil {
			return entities.InstallStage{}, fmt.Errorf("stage %s: %w", stage.Name, err)
		}
		idx, err := expand(pi.ExtraIndexURL, params)
		if err != nil {
			return entities.InstallStage{}, fmt.Errorf("stage %s: %w", stage.Name, err)
		}

		var env map[string]string
		if len(pi.Env) > 0 {
			env = make(map[string]string, len(pi.Env))
			for k, v := range pi.Env {
				ev, err := expand(v, params)
				if err != nil {
					return entities.InstallStage{}, fmt.Errorf("stage %s: env %s: %w", stage.Name, k, err)
				}
				env[k] = ev
			}
		}

		expanded.PipInstalls = append(expanded.PipInstalls, entities.PipInstall{
			Requirement:   req,
			ExtraIndexURL: idx,
			Env:           env,
		})
	}

	return expanded, nil
}

// StageCommands lowers one expanded stage descriptor into the ordered
// command list: index update, OS packages, compatibility symlinks, then pip
// installs. Every command runs elevated; pip envs ride along as sudo
// VAR=value assignments.
func StageCommands(stage entities.InstallStage) []entities.Command {
	var cmds []entities.Command

	if stage.UpdateIndex {
		cmds = append(cmds, entities.Command{
			Argv:        []string{"apt-get", "update"},
			Elevated:    true,
			Description: "refresh apt package index",
		})
	}

	if len(stage.AptPackages) > 0 {
		argv := append([]string{"apt-get", "install", "-y"}, stage.AptPackages...)
		cmds = append(cmds, entities.Command{
			Argv:        argv,
			Elevated:    true,
			Description: "install OS packages",
		})
	}

	for _, link := range stage.Symlinks {
		cmds = append(cmds, entities.Command{
			Argv:        []string{"ln", "-sf", link.Target, link.LinkName},
			Elevated:    true,
			Description: fmt.Sprintf("link %s -> %s", link.LinkName, link.Target),
		})
	}

	for _, pi := range stage.PipInstalls {
		argv := []string{"python3", "-m", "pip", "install", pi.Requirement}
		if pi.ExtraIndexURL != "" {
			argv = append(argv, "--extra-index-url", pi.ExtraIndexURL)
		}
		cmds = append(cmds, entities.Command{
			Argv:        argv,
			Env:         pi.Env,
			Elevated:    true,
			Description: fmt.Sprintf("pip install %s", pi.Requirement),
		})
	}

	return cmds
}

// expand substitutes ${name} placeholders and fails on names missing from
// params.
func expand(s string, params map[string]string) (string, error) {
	var missing []string
	out := os.Expand(s, func(name string) string {
		v, ok := params[name]
		if !ok {
			missing = append(missing, name)
			return ""
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("unknown placeholder(s) %v in %q", missing, s)
	}
	return out, nil
}
