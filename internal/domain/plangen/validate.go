package plangen

import "strings"

var requiredTextFields = []string{"title", "type", "description"}

var optionalTextFields = []string{"warmup", "main_set", "cooldown"}

var optionalNumberFields = []string{"duration_minutes", "distance_km"}

// validateWorkout checks one model-produced draft after the owner identifier
// has been injected. It reports a verdict plus human-readable violations and
// never fails hard. The only mutation is normalizing the optional text fields
// so every surviving draft exposes the same shape: absent or null becomes an
// explicit nil entry. Re-validating a normalized draft yields the same
// verdict and changes nothing.
func validateWorkout(draft map[string]any) (bool, []string) {
	var violations []string

	for _, field := range requiredTextFields {
		value, ok := draft[field].(string)
		if !ok || strings.TrimSpace(value) == "" {
			violations = append(violations, field+" must be a non-empty string")
		}
	}

	if _, ok := numeric(draft["day"]); !ok {
		violations = append(violations, "day must be a number")
	}

	if owner, ok := draft["user_id"].(string); !ok || owner == "" {
		violations = append(violations, "user_id must be a non-empty string")
	}

	for _, field := range optionalTextFields {
		if value, ok := draft[field]; !ok || value == nil {
			draft[field] = nil
		}
	}

	for _, field := range optionalNumberFields {
		value, ok := draft[field]
		if !ok || value == nil {
			continue
		}
		if _, isNumber := numeric(value); !isNumber {
			violations = append(violations, field+" must be a number or null")
		}
	}

	return len(violations) == 0, violations
}

// numeric accepts the shapes a JSON number takes after decoding plus plain
// ints from hand-built drafts.
func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
