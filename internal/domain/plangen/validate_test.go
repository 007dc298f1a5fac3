package plangen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validDraft() map[string]any {
	return map[string]any{
		"day":              1.0,
		"title":            "Easy Run",
		"type":             "easy_run",
		"description":      "Relaxed aerobic running",
		"warmup":           "10 min jog",
		"main_set":         "30 min steady",
		"cooldown":         "5 min walk",
		"duration_minutes": 45.0,
		"distance_km":      6.5,
		"user_id":          "user-1",
	}
}

func TestValidateWorkout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(draft map[string]any)
		pass      bool
		violation string
	}{
		{
			name:   "well formed",
			mutate: func(map[string]any) {},
			pass:   true,
		},
		{
			name:      "missing title",
			mutate:    func(d map[string]any) { delete(d, "title") },
			violation: "title must be a non-empty string",
		},
		{
			name:      "blank type",
			mutate:    func(d map[string]any) { d["type"] = "   " },
			violation: "type must be a non-empty string",
		},
		{
			name:      "description wrong type",
			mutate:    func(d map[string]any) { d["description"] = 12 },
			violation: "description must be a non-empty string",
		},
		{
			name:      "day not a number",
			mutate:    func(d map[string]any) { d["day"] = "three" },
			violation: "day must be a number",
		},
		{
			name:      "missing day",
			mutate:    func(d map[string]any) { delete(d, "day") },
			violation: "day must be a number",
		},
		{
			name:      "missing owner",
			mutate:    func(d map[string]any) { delete(d, "user_id") },
			violation: "user_id must be a non-empty string",
		},
		{
			name:      "duration wrong type",
			mutate:    func(d map[string]any) { d["duration_minutes"] = "45" },
			violation: "duration_minutes must be a number or null",
		},
		{
			name:      "distance wrong type",
			mutate:    func(d map[string]any) { d["distance_km"] = []any{6.5} },
			violation: "distance_km must be a number or null",
		},
		{
			name:   "null numerics pass",
			mutate: func(d map[string]any) { d["duration_minutes"] = nil; d["distance_km"] = nil },
			pass:   true,
		},
		{
			name:   "absent optional text passes",
			mutate: func(d map[string]any) { delete(d, "warmup"); delete(d, "cooldown") },
			pass:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			draft := validDraft()
			tt.mutate(draft)

			passed, violations := validateWorkout(draft)
			require.Equal(t, tt.pass, passed)
			if tt.violation != "" {
				require.Contains(t, violations, tt.violation)
			} else {
				require.Empty(t, violations)
			}
		})
	}
}

func TestValidateWorkoutNormalizesOptionalText(t *testing.T) {
	t.Parallel()

	draft := validDraft()
	delete(draft, "warmup")
	draft["main_set"] = nil

	passed, _ := validateWorkout(draft)
	require.True(t, passed)

	for _, field := range []string{"warmup", "main_set", "cooldown"} {
		value, ok := draft[field]
		require.True(t, ok, "field %s must exist after normalization", field)
		if field == "cooldown" {
			require.Equal(t, "5 min walk", value)
		} else {
			require.Nil(t, value)
		}
	}
}

func TestValidateWorkoutIdempotent(t *testing.T) {
	t.Parallel()

	draft := validDraft()
	delete(draft, "warmup")

	passed, _ := validateWorkout(draft)
	require.True(t, passed)

	snapshot := make(map[string]any, len(draft))
	for key, value := range draft {
		snapshot[key] = value
	}

	passedAgain, violations := validateWorkout(draft)
	require.True(t, passedAgain)
	require.Empty(t, violations)
	require.Equal(t, snapshot, draft)
}

func TestValidateWorkoutNeverPanicsOnHostileShapes(t *testing.T) {
	t.Parallel()

	hostile := map[string]any{
		"day":         map[string]any{"value": 1},
		"title":       []any{"Easy"},
		"type":        nil,
		"description": 3.14,
		"user_id":     7,
		"warmup":      []any{nil},
		"distance_km": "far",
	}

	passed, violations := validateWorkout(hostile)
	require.False(t, passed)
	require.NotEmpty(t, violations)
}
