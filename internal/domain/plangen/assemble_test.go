package plangen

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/sameer-hoda/mynextpr-sub001/pkg/errors"
)

func newAssembleService() *service {
	return &service{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func draftEntry(day int) map[string]any {
	return map[string]any{
		"day":              float64(day),
		"title":            fmt.Sprintf("Session %d", day),
		"type":             "easy_run",
		"description":      "Easy aerobic running",
		"warmup":           "10 min jog",
		"main_set":         "30 min steady",
		"cooldown":         "5 min walk",
		"duration_minutes": 45.0,
		"distance_km":      6.0,
	}
}

func testProfile() UserProfile {
	return UserProfile{
		GoalDistance: "10K",
		FitnessLevel: "Intermediate",
		Age:          "35",
		Sex:          "unspecified",
		CoachPersona: "daniels",
		UserID:       "user-1",
	}
}

func TestAssemblePlanPartialTolerance(t *testing.T) {
	t.Parallel()

	entries := make([]any, 0, 12)
	for day := 1; day <= 12; day++ {
		entry := draftEntry(day)
		switch day {
		case 4:
			delete(entry, "title")
		case 8:
			entry["day"] = "eight"
		case 12:
			entry["description"] = ""
		}
		entries = append(entries, entry)
	}

	plan, err := newAssembleService().assemblePlan(map[string]any{
		"plan_overview": "Two steady weeks",
		"workouts":      entries,
	}, testProfile())
	require.NoError(t, err)
	require.Len(t, plan.Workouts, 9)
	require.Equal(t, "Two steady weeks", plan.Overview)

	wantDays := []int{1, 2, 3, 5, 6, 7, 9, 10, 11}
	for i, workout := range plan.Workouts {
		require.Equal(t, wantDays[i], workout.Day)
		require.Equal(t, "user-1", workout.UserID)
	}
}

func TestAssemblePlanTotalFailure(t *testing.T) {
	t.Parallel()

	entries := []any{
		map[string]any{"day": "one"},
		map[string]any{"title": ""},
		nil,
		"not even an object",
	}

	_, err := newAssembleService().assemblePlan(map[string]any{"workouts": entries}, testProfile())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "assembly_error"))
}

func TestAssemblePlanNilCandidate(t *testing.T) {
	t.Parallel()

	_, err := newAssembleService().assemblePlan(nil, testProfile())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "assembly_error"))
}

func TestAssemblePlanNumericKeyedMap(t *testing.T) {
	t.Parallel()

	workouts := map[string]any{
		"10": draftEntry(11),
		"0":  draftEntry(1),
		"2":  draftEntry(3),
	}

	plan, err := newAssembleService().assemblePlan(map[string]any{"workouts": workouts}, testProfile())
	require.NoError(t, err)
	require.Len(t, plan.Workouts, 3)

	// Ordered by numeric key, not lexicographic: 0, 2, 10.
	require.Equal(t, 1, plan.Workouts[0].Day)
	require.Equal(t, 3, plan.Workouts[1].Day)
	require.Equal(t, 11, plan.Workouts[2].Day)
}

func TestAssemblePlanSingleObjectWorkouts(t *testing.T) {
	t.Parallel()

	plan, err := newAssembleService().assemblePlan(map[string]any{
		"plan_overview": "One session",
		"workouts":      draftEntry(1),
	}, testProfile())
	require.NoError(t, err)
	require.Len(t, plan.Workouts, 1)
	require.Equal(t, "Session 1", plan.Workouts[0].Title)
}

func TestAssemblePlanUnsupportedShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate any
	}{
		{name: "workouts is a string", candidate: map[string]any{"workouts": "none"}},
		{name: "workouts is a number", candidate: map[string]any{"workouts": 12.0}},
		{name: "workouts missing", candidate: map[string]any{"plan_overview": "empty"}},
		{name: "candidate is an array", candidate: []any{draftEntry(1)}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := newAssembleService().assemblePlan(tt.candidate, testProfile())
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, "assembly_error"))
		})
	}
}

func TestAssemblePlanDefaultOverview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate map[string]any
	}{
		{name: "overview absent", candidate: map[string]any{"workouts": []any{draftEntry(1)}}},
		{name: "overview blank", candidate: map[string]any{"plan_overview": "  ", "workouts": []any{draftEntry(1)}}},
		{name: "overview wrong type", candidate: map[string]any{"plan_overview": 7.0, "workouts": []any{draftEntry(1)}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			plan, err := newAssembleService().assemblePlan(tt.candidate, testProfile())
			require.NoError(t, err)
			require.Equal(t, "Your personalized 10K training plan", plan.Overview)
		})
	}
}

func TestAssemblePlanStripsScheduleDates(t *testing.T) {
	t.Parallel()

	entry := draftEntry(1)
	entry["date"] = "2026-08-22"
	entry["scheduled_date"] = "2026-08-23"
	entry["scheduledDate"] = "2026-08-24"
	entry["workout_date"] = "2026-08-25"

	plan, err := newAssembleService().assemblePlan(map[string]any{"workouts": []any{entry}}, testProfile())
	require.NoError(t, err)
	require.Len(t, plan.Workouts, 1)

	for _, key := range []string{"date", "scheduled_date", "scheduledDate", "workout_date"} {
		require.NotContains(t, entry, key)
	}
}

func TestAssemblePlanSkipsNullEntries(t *testing.T) {
	t.Parallel()

	plan, err := newAssembleService().assemblePlan(map[string]any{
		"workouts": []any{nil, draftEntry(2), nil},
	}, testProfile())
	require.NoError(t, err)
	require.Len(t, plan.Workouts, 1)
	require.Equal(t, 2, plan.Workouts[0].Day)
}

func TestAssemblePlanOverridesModelSuppliedOwner(t *testing.T) {
	t.Parallel()

	entry := draftEntry(1)
	entry["user_id"] = "attacker-7"

	plan, err := newAssembleService().assemblePlan(map[string]any{"workouts": []any{entry}}, testProfile())
	require.NoError(t, err)
	require.Equal(t, "user-1", plan.Workouts[0].UserID)
}
