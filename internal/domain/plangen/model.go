package plangen

// UserProfile describes the runner requesting a plan. All fields are opaque
// descriptive strings; age and goal time are never parsed numerically.
type UserProfile struct {
	GoalDistance string
	GoalTime     string
	FitnessLevel string
	Age          string
	Sex          string
	CoachPersona string
	UserID       string
}

// Workout is a single validated training session. It never carries a
// scheduling date; assigning calendar dates belongs to the caller.
type Workout struct {
	Day             int      `json:"day"`
	Title           string   `json:"title"`
	Type            string   `json:"type"`
	Description     string   `json:"description"`
	Warmup          *string  `json:"warmup"`
	MainSet         *string  `json:"main_set"`
	Cooldown        *string  `json:"cooldown"`
	DurationMinutes *float64 `json:"duration_minutes"`
	DistanceKm      *float64 `json:"distance_km"`
	UserID          string   `json:"user_id"`
}

// Plan is the validated result returned to callers. Workouts is never empty.
type Plan struct {
	Overview string    `json:"plan_overview"`
	Workouts []Workout `json:"workouts"`
}
