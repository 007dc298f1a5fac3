package planrepo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plans"
)

func storedPlan(t *testing.T, repo *MemoryRepository, userID int64, created time.Time, days ...int) (plans.Plan, []plans.Workout) {
	t.Helper()
	plan := plans.Plan{ID: uuid.New(), UserID: userID, Overview: "overview", CreatedAt: created}
	workouts := make([]plans.Workout, 0, len(days))
	for _, day := range days {
		workouts = append(workouts, plans.Workout{
			ID:          uuid.New(),
			PlanID:      plan.ID,
			Day:         day,
			Date:        created.AddDate(0, 0, day-1),
			Title:       "Easy Run",
			Type:        "easy_run",
			Description: "Conversational pace.",
		})
	}
	require.NoError(t, repo.CreatePlan(context.Background(), plan, workouts))
	return plan, workouts
}

func TestMemoryRepositoryLatestPlan(t *testing.T) {
	repo := NewMemoryRepository()
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	storedPlan(t, repo, 1, base, 1, 2)
	second, _ := storedPlan(t, repo, 1, base.AddDate(0, 0, 14), 3, 1, 2)

	plan, workouts, found, err := repo.LatestPlan(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, second.ID, plan.ID)
	require.Len(t, workouts, 3)
	require.Equal(t, []int{1, 2, 3}, []int{workouts[0].Day, workouts[1].Day, workouts[2].Day})
}

func TestMemoryRepositoryLatestPlanEmpty(t *testing.T) {
	repo := NewMemoryRepository()

	_, _, found, err := repo.LatestPlan(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryRepositoryCompleteWorkout(t *testing.T) {
	repo := NewMemoryRepository()
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_, workouts := storedPlan(t, repo, 1, base, 1, 2)
	rating := 4

	ok, err := repo.CompleteWorkout(context.Background(), 1, workouts[1].ID, &rating, "felt strong")
	require.NoError(t, err)
	require.True(t, ok)

	_, stored, _, err := repo.LatestPlan(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, stored[1].Completed)
	require.NotNil(t, stored[1].Rating)
	require.Equal(t, 4, *stored[1].Rating)
	require.Equal(t, "felt strong", stored[1].Notes)
	require.False(t, stored[0].Completed)
}

func TestMemoryRepositoryCompleteWorkoutWrongUser(t *testing.T) {
	repo := NewMemoryRepository()
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_, workouts := storedPlan(t, repo, 1, base, 1)

	ok, err := repo.CompleteWorkout(context.Background(), 2, workouts[0].ID, nil, "")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryRepositoryCompleteWorkoutMissing(t *testing.T) {
	repo := NewMemoryRepository()

	ok, err := repo.CompleteWorkout(context.Background(), 1, uuid.New(), nil, "")
	require.NoError(t, err)
	require.False(t, ok)
}
