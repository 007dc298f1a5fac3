package plans

import (
	"context"

	"github.com/google/uuid"
)

// Repository abstracts plan persistence. CreatePlan stores the plan and its
// workouts atomically; LatestPlan returns workouts ordered by day.
type Repository interface {
	CreatePlan(ctx context.Context, plan Plan, workouts []Workout) error
	LatestPlan(ctx context.Context, userID int64) (Plan, []Workout, bool, error)
	CompleteWorkout(ctx context.Context, userID int64, workoutID uuid.UUID, rating *int, notes string) (bool, error)
}
