// Package repository defines the plan and progress store contract.
//
// The core itself performs no I/O; this store holds the materialized
// state the service needs between calls: which plans exist (so step
// indices can be validated) and each learner's progress record.
package repository

import (
	"context"

	"github.com/okian/mentorpath/internal/domain/model"
)

// Store provides read/write access to plans and progress records.
type Store interface {
	// RegisterPlan records a generated plan's identity and step count
	// so later progress updates can be validated against it.
	RegisterPlan(ctx context.Context, plan model.TransferPlan) error

	// PlanSteps returns the step count for a plan.
	// Returns ErrPlanNotFound for unknown ids.
	PlanSteps(ctx context.Context, planID string) (int, error)

	// Progress returns the current record for (learnerID, planID).
	// Returns ErrProgressNotFound when no update has happened yet.
	Progress(ctx context.Context, learnerID, planID string) (model.TransferProgressRecord, error)

	// SaveProgress writes rec if and only if the stored version equals
	// expectedVersion (compare-and-swap). expectedVersion 0 means "no
	// record exists yet". Returns ErrVersionConflict on a mismatch.
	SaveProgress(ctx context.Context, rec model.TransferProgressRecord, expectedVersion int64) error

	// PlanCount returns the number of registered plans.
	PlanCount(ctx context.Context) int
}
