package yaml

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/jetprov/jetprov/internal/domain/entities"
)

//go:embed plan.yml
var defaultPlan []byte

// PlanRepository implements repositories.PlanRepository using YAML files,
// with the default plan compiled into the binary.
type PlanRepository struct {
	parser *PlanParser
}

// NewPlanRepository creates a new YAML-based plan repository
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{parser: NewPlanParser()}
}

// GetPlan returns the built-in provisioning plan
func (r *PlanRepository) GetPlan(_ context.Context) (*entities.InstallPlan, error) {
	plan, err := r.parser.Parse(defaultPlan)
	if err != nil {
		return nil, fmt.Errorf("built-in plan is invalid: %w", err)
	}
	return plan, nil
}

// GetPlanFromFile loads an operator-supplied plan override
func (r *PlanRepository) GetPlanFromFile(_ context.Context, path string) (*entities.InstallPlan, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("plan not found: %s", path)
	}

	return r.parser.ParseFile(path)
}
