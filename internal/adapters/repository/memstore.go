package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/mentorpath/internal/domain/model"
)

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithMaxPlans bounds the number of retained plans. Zero or negative
// means unbounded.
func WithMaxPlans(n int) Option {
	return func(s *MemStore) {
		s.maxPlans = n
	}
}

// MemStore implements Store in memory. Progress writes are serialized
// per record through compare-and-swap on the record version; two
// sessions updating the same learner cannot silently overwrite each
// other.
type MemStore struct {
	mu       sync.RWMutex
	planIDs  []string // insertion order, for bounded eviction
	plans    map[string]int
	progress map[progressKey]model.TransferProgressRecord
	maxPlans int
}

type progressKey struct {
	learnerID string
	planID    string
}

// NewMemStore creates an in-memory store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		plans:    make(map[string]int),
		progress: make(map[progressKey]model.TransferProgressRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterPlan records a plan id and its step count. Re-registering an
// id overwrites the step count, which keeps the call idempotent for a
// regenerated identical plan.
func (s *MemStore) RegisterPlan(ctx context.Context, plan model.TransferPlan) error {
	if plan.PlanID == "" {
		return fmt.Errorf("%w: empty plan id", ErrInvalidPlan)
	}
	if len(plan.Phases) == 0 {
		return fmt.Errorf("%w: plan %s has no phases", ErrInvalidPlan, plan.PlanID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[plan.PlanID]; !exists {
		s.planIDs = append(s.planIDs, plan.PlanID)
		if s.maxPlans > 0 && len(s.planIDs) > s.maxPlans {
			oldest := s.planIDs[0]
			s.planIDs = s.planIDs[1:]
			delete(s.plans, oldest)
		}
	}
	s.plans[plan.PlanID] = len(plan.Phases)
	return nil
}

// PlanSteps returns the registered step count for planID.
func (s *MemStore) PlanSteps(ctx context.Context, planID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	steps, ok := s.plans[planID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPlanNotFound, planID)
	}
	return steps, nil
}

// Progress returns the stored record for (learnerID, planID).
func (s *MemStore) Progress(ctx context.Context, learnerID, planID string) (model.TransferProgressRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.progress[progressKey{learnerID: learnerID, planID: planID}]
	if !ok {
		return model.TransferProgressRecord{}, fmt.Errorf("%w: learner %s plan %s", ErrProgressNotFound, learnerID, planID)
	}
	return copyRecord(rec), nil
}

// SaveProgress writes rec under compare-and-swap semantics.
func (s *MemStore) SaveProgress(ctx context.Context, rec model.TransferProgressRecord, expectedVersion int64) error {
	key := progressKey{learnerID: rec.LearnerID, planID: rec.PathID}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.progress[key]
	switch {
	case !exists && expectedVersion != 0:
		return fmt.Errorf("%w: expected version %d, record absent", ErrVersionConflict, expectedVersion)
	case exists && current.Version != expectedVersion:
		return fmt.Errorf("%w: expected version %d, have %d", ErrVersionConflict, expectedVersion, current.Version)
	}

	s.progress[key] = copyRecord(rec)
	return nil
}

// PlanCount returns the number of registered plans.
func (s *MemStore) PlanCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plans)
}

func copyRecord(rec model.TransferProgressRecord) model.TransferProgressRecord {
	out := rec
	out.Completed = make([]int, len(rec.Completed))
	copy(out.Completed, rec.Completed)
	return out
}
