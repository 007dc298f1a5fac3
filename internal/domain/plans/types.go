package plans

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a persisted training plan.
type Plan struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"userId"`
	Overview  string    `json:"overview"`
	CreatedAt time.Time `json:"createdAt"`
}

// Workout is a persisted training session with its calendar date assigned.
type Workout struct {
	ID              uuid.UUID `json:"id"`
	PlanID          uuid.UUID `json:"planId"`
	Day             int       `json:"day"`
	Date            time.Time `json:"date"`
	Title           string    `json:"title"`
	Type            string    `json:"type"`
	Description     string    `json:"description"`
	Warmup          *string   `json:"warmup"`
	MainSet         *string   `json:"mainSet"`
	Cooldown        *string   `json:"cooldown"`
	DurationMinutes *float64  `json:"durationMinutes"`
	DistanceKm      *float64  `json:"distanceKm"`
	Completed       bool      `json:"completed"`
	Rating          *int      `json:"rating,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

// PlanView is the API-facing plan shape.
type PlanView struct {
	ID        uuid.UUID     `json:"id"`
	Overview  string        `json:"overview"`
	CreatedAt time.Time     `json:"createdAt"`
	Workouts  []WorkoutView `json:"workouts"`
}

// WorkoutView renders a workout with its date formatted as YYYY-MM-DD.
type WorkoutView struct {
	ID              uuid.UUID `json:"id"`
	Day             int       `json:"day"`
	Date            string    `json:"date"`
	Title           string    `json:"title"`
	Type            string    `json:"type"`
	Description     string    `json:"description"`
	Warmup          *string   `json:"warmup"`
	MainSet         *string   `json:"mainSet"`
	Cooldown        *string   `json:"cooldown"`
	DurationMinutes *float64  `json:"durationMinutes"`
	DistanceKm      *float64  `json:"distanceKm"`
	Completed       bool      `json:"completed"`
	Rating          *int      `json:"rating,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

func newPlanView(plan Plan, workouts []Workout) PlanView {
	views := make([]WorkoutView, 0, len(workouts))
	for _, workout := range workouts {
		views = append(views, WorkoutView{
			ID:              workout.ID,
			Day:             workout.Day,
			Date:            workout.Date.Format("2006-01-02"),
			Title:           workout.Title,
			Type:            workout.Type,
			Description:     workout.Description,
			Warmup:          workout.Warmup,
			MainSet:         workout.MainSet,
			Cooldown:        workout.Cooldown,
			DurationMinutes: workout.DurationMinutes,
			DistanceKm:      workout.DistanceKm,
			Completed:       workout.Completed,
			Rating:          workout.Rating,
			Notes:           workout.Notes,
		})
	}
	return PlanView{
		ID:        plan.ID,
		Overview:  plan.Overview,
		CreatedAt: plan.CreatedAt,
		Workouts:  views,
	}
}
