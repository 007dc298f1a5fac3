package planrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plans"
)

// MemoryRepository provides an in-memory plan store for tests/dev.
type MemoryRepository struct {
	mu             sync.RWMutex
	plansByUser    map[int64][]uuid.UUID
	plansByID      map[uuid.UUID]plans.Plan
	workoutsByPlan map[uuid.UUID][]plans.Workout
}

// NewMemoryRepository is a wire provider for the in-memory plan store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		plansByUser:    make(map[int64][]uuid.UUID),
		plansByID:      make(map[uuid.UUID]plans.Plan),
		workoutsByPlan: make(map[uuid.UUID][]plans.Workout),
	}
}

// CreatePlan stores the plan and its workouts.
func (r *MemoryRepository) CreatePlan(_ context.Context, plan plans.Plan, workouts []plans.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]plans.Workout, len(workouts))
	copy(stored, workouts)
	sort.SliceStable(stored, func(i, j int) bool { return stored[i].Day < stored[j].Day })
	r.plansByUser[plan.UserID] = append(r.plansByUser[plan.UserID], plan.ID)
	r.plansByID[plan.ID] = plan
	r.workoutsByPlan[plan.ID] = stored
	return nil
}

// LatestPlan returns the most recently created plan for the user.
func (r *MemoryRepository) LatestPlan(_ context.Context, userID int64) (plans.Plan, []plans.Workout, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.plansByUser[userID]
	if len(ids) == 0 {
		return plans.Plan{}, nil, false, nil
	}
	plan := r.plansByID[ids[len(ids)-1]]
	stored := r.workoutsByPlan[plan.ID]
	workouts := make([]plans.Workout, len(stored))
	copy(workouts, stored)
	return plan, workouts, true, nil
}

// CompleteWorkout marks one of the user's workouts done.
func (r *MemoryRepository) CompleteWorkout(_ context.Context, userID int64, workoutID uuid.UUID, rating *int, notes string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, planID := range r.plansByUser[userID] {
		workouts := r.workoutsByPlan[planID]
		for i := range workouts {
			if workouts[i].ID != workoutID {
				continue
			}
			workouts[i].Completed = true
			workouts[i].Rating = rating
			workouts[i].Notes = notes
			return true, nil
		}
	}
	return false, nil
}

var _ plans.Repository = (*MemoryRepository)(nil)
