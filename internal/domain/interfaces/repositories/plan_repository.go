// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/jetprov/jetprov/internal/domain/entities"
)

// PlanRepository defines the interface for loading installation plans.
type PlanRepository interface {
	// GetPlan returns the built-in provisioning plan.
	GetPlan(ctx context.Context) (*entities.InstallPlan, error)

	// GetPlanFromFile loads an operator-supplied plan override with the
	// same schema as the built-in plan.
	GetPlanFromFile(ctx context.Context, path string) (*entities.InstallPlan, error)
}
