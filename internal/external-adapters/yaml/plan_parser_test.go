package yaml

import (
	"strings"
	"testing"
)

const validPlan = `
profiles:
  - min_l4t_version: "32.6"
    tensorflow_version: "1.15.5"
    nv_build_tag: "21.7"
    jetpack_index: 46
  - min_l4t_version: "32.5"
    tensorflow_version: "1.15.4"
    nv_build_tag: "20.12"
    jetpack_index: 45
stages:
  - name: tensorflow
    description: NumPy and TensorFlow
    update_index: true
    apt_packages:
      - python3-pip
    symlinks:
      - target: /usr/include/locale.h
        link_name: /usr/include/xlocale.h
    pip_installs:
      - requirement: numpy==1.18.5
      - requirement: tensorflow==${tensorflow_version}+nv${nv_build_tag}
        extra_index_url: https://example.invalid/jp/v${jetpack_index}
  - name: cupy
    pip_installs:
      - requirement: cupy==9.2.0
        env:
          CUPY_NVCC_GENERATE_CODE: current
`

func TestPlanParser_Parse(t *testing.T) {
	p := NewPlanParser()

	plan, err := p.Parse([]byte(validPlan))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(plan.Profiles) != 2 {
		t.Fatalf("profiles = %d, want 2", len(plan.Profiles))
	}
	first := plan.Profiles[0]
	if first.MinL4TVersion != "32.6" || first.TensorFlowVersion != "1.15.5" ||
		first.NVBuildTag != "21.7" || first.JetPackIndex != 46 {
		t.Errorf("first profile = %+v", first)
	}

	if len(plan.Stages) != 2 {
		t.Fatalf("stages = %d, want 2", len(plan.Stages))
	}
	tf := plan.Stages[0]
	if !tf.UpdateIndex {
		t.Error("tensorflow stage should update the index")
	}
	if len(tf.Symlinks) != 1 || tf.Symlinks[0].LinkName != "/usr/include/xlocale.h" {
		t.Errorf("symlinks = %+v", tf.Symlinks)
	}
	if len(tf.PipInstalls) != 2 {
		t.Fatalf("pip installs = %d, want 2", len(tf.PipInstalls))
	}
	if !strings.Contains(tf.PipInstalls[1].Requirement, "${tensorflow_version}") {
		t.Error("placeholders must survive parsing untouched")
	}

	cupy := plan.Stages[1]
	if cupy.PipInstalls[0].Env["CUPY_NVCC_GENERATE_CODE"] != "current" {
		t.Errorf("cupy env = %+v", cupy.PipInstalls[0].Env)
	}
}

func TestPlanParser_Parse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "{{{"},
		{"no profiles", "stages:\n  - name: x\n"},
		{"no stages", "profiles:\n  - min_l4t_version: \"32.6\"\n    tensorflow_version: \"1\"\n    nv_build_tag: \"2\"\n    jetpack_index: 46\n"},
		{"missing floor", "profiles:\n  - tensorflow_version: \"1\"\n    nv_build_tag: \"2\"\n    jetpack_index: 46\nstages:\n  - name: x\n"},
		{"missing index", "profiles:\n  - min_l4t_version: \"32.6\"\n    tensorflow_version: \"1\"\n    nv_build_tag: \"2\"\nstages:\n  - name: x\n"},
		{"unnamed stage", "profiles:\n  - min_l4t_version: \"32.6\"\n    tensorflow_version: \"1\"\n    nv_build_tag: \"2\"\n    jetpack_index: 46\nstages:\n  - apt_packages: [curl]\n"},
	}

	p := NewPlanParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse() should have failed")
			}
		})
	}
}
