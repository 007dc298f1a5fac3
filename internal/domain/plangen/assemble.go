package plangen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/sameer-hoda/mynextpr-sub001/pkg/errors"
)

// Date assignment is the caller's exclusive responsibility, so any
// scheduling-date key the model invents is dropped before validation.
var scheduleDateKeys = []string{"date", "scheduled_date", "scheduledDate", "workout_date"}

// assemblePlan turns an extracted candidate value into a Plan. Individually
// malformed workout entries are skipped with a log note; assembly fails only
// when the candidate is absent or zero entries survive.
func (s *service) assemblePlan(candidate any, profile UserProfile) (Plan, error) {
	if candidate == nil {
		return Plan{}, apperrors.Wrap("assembly_error", "model returned no usable content", nil)
	}

	root, _ := candidate.(map[string]any)
	entries := normalizeWorkouts(root["workouts"])

	workouts := make([]Workout, 0, len(entries))
	for i, entry := range entries {
		draft, ok := entry.(map[string]any)
		if !ok || draft == nil {
			s.logger.Warn("workout entry skipped", "index", i, "reason", "not an object")
			continue
		}
		draft["user_id"] = profile.UserID
		for _, key := range scheduleDateKeys {
			delete(draft, key)
		}
		passed, violations := validateWorkout(draft)
		if !passed {
			s.logger.Warn("workout entry skipped", "index", i, "violations", strings.Join(violations, "; "))
			continue
		}
		workouts = append(workouts, workoutFromDraft(draft))
	}

	if len(workouts) == 0 {
		return Plan{}, apperrors.Wrap("assembly_error", "no valid workouts", nil)
	}

	return Plan{Overview: planOverview(root, profile), Workouts: workouts}, nil
}

// normalizeWorkouts coerces the untrusted workouts field into one shape:
// arrays pass through, all-numeric-key maps become sequences ordered by key,
// a single free-standing object wraps into a one-element sequence, and
// anything else yields nothing.
func normalizeWorkouts(field any) []any {
	switch v := field.(type) {
	case []any:
		return v
	case map[string]any:
		if ordered, ok := numericKeyed(v); ok {
			return ordered
		}
		return []any{v}
	default:
		return nil
	}
}

func numericKeyed(m map[string]any) ([]any, bool) {
	type keyedEntry struct {
		order int
		value any
	}
	entries := make([]keyedEntry, 0, len(m))
	for key, value := range m {
		order, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, false
		}
		entries = append(entries, keyedEntry{order: order, value: value})
	}
	if len(entries) == 0 {
		return nil, false
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].order < entries[j].order })
	out := make([]any, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.value)
	}
	return out, true
}

func planOverview(root map[string]any, profile UserProfile) string {
	if overview, ok := root["plan_overview"].(string); ok && strings.TrimSpace(overview) != "" {
		return overview
	}
	return fmt.Sprintf("Your personalized %s training plan", profile.GoalDistance)
}

func workoutFromDraft(draft map[string]any) Workout {
	day, _ := numeric(draft["day"])
	title, _ := draft["title"].(string)
	workoutType, _ := draft["type"].(string)
	description, _ := draft["description"].(string)
	owner, _ := draft["user_id"].(string)
	return Workout{
		Day:             int(day),
		Title:           title,
		Type:            workoutType,
		Description:     description,
		Warmup:          optionalString(draft["warmup"]),
		MainSet:         optionalString(draft["main_set"]),
		Cooldown:        optionalString(draft["cooldown"]),
		DurationMinutes: optionalNumber(draft["duration_minutes"]),
		DistanceKm:      optionalNumber(draft["distance_km"]),
		UserID:          owner,
	}
}

func optionalString(value any) *string {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	return &s
}

func optionalNumber(value any) *float64 {
	n, ok := numeric(value)
	if !ok {
		return nil
	}
	return &n
}
