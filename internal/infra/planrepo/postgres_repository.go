package planrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plans"
)

// PostgresRepository persists plans in the plans and plan_workouts tables.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository wraps an existing pgx pool; the pool's lifecycle
// belongs to the caller.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// CreatePlan inserts the plan and its workouts in one transaction.
func (r *PostgresRepository) CreatePlan(ctx context.Context, plan plans.Plan, workouts []plans.Workout) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO plans (id, user_id, overview, created_at)
		VALUES ($1, $2, $3, $4)
	`, plan.ID, plan.UserID, plan.Overview, plan.CreatedAt)
	if err != nil {
		return err
	}
	for _, workout := range workouts {
		_, err = tx.Exec(ctx, `
			INSERT INTO plan_workouts (
				id, plan_id, day, scheduled_date, title, type, description,
				warmup, main_set, cooldown, duration_minutes, distance_km,
				completed, rating, notes
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, workout.ID, workout.PlanID, workout.Day, workout.Date, workout.Title,
			workout.Type, workout.Description, workout.Warmup, workout.MainSet,
			workout.Cooldown, workout.DurationMinutes, workout.DistanceKm,
			workout.Completed, workout.Rating, workout.Notes)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// LatestPlan fetches the user's most recent plan with its workouts.
func (r *PostgresRepository) LatestPlan(ctx context.Context, userID int64) (plans.Plan, []plans.Workout, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, overview, created_at
		FROM plans
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID)
	var plan plans.Plan
	var created time.Time
	if err := row.Scan(&plan.ID, &plan.UserID, &plan.Overview, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plans.Plan{}, nil, false, nil
		}
		return plans.Plan{}, nil, false, err
	}
	plan.CreatedAt = created.UTC()

	workouts, err := r.planWorkouts(ctx, plan.ID)
	if err != nil {
		return plans.Plan{}, nil, false, err
	}
	return plan, workouts, true, nil
}

// CompleteWorkout marks a workout done when it belongs to the user.
func (r *PostgresRepository) CompleteWorkout(ctx context.Context, userID int64, workoutID uuid.UUID, rating *int, notes string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE plan_workouts
		SET completed = TRUE, rating = $1, notes = $2
		WHERE id = $3
		  AND plan_id IN (SELECT id FROM plans WHERE user_id = $4)
	`, rating, notes, workoutID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepository) planWorkouts(ctx context.Context, planID uuid.UUID) ([]plans.Workout, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, plan_id, day, scheduled_date, title, type, description,
		       warmup, main_set, cooldown, duration_minutes, distance_km,
		       completed, rating, notes
		FROM plan_workouts
		WHERE plan_id = $1
		ORDER BY day ASC
	`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []plans.Workout
	for rows.Next() {
		var workout plans.Workout
		var date time.Time
		if err := rows.Scan(&workout.ID, &workout.PlanID, &workout.Day, &date,
			&workout.Title, &workout.Type, &workout.Description,
			&workout.Warmup, &workout.MainSet, &workout.Cooldown,
			&workout.DurationMinutes, &workout.DistanceKm,
			&workout.Completed, &workout.Rating, &workout.Notes); err != nil {
			return nil, err
		}
		workout.Date = date.UTC()
		workouts = append(workouts, workout)
	}
	return workouts, rows.Err()
}

var _ plans.Repository = (*PostgresRepository)(nil)
