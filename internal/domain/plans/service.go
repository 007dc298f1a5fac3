package plans

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plangen"
	apperrors "github.com/sameer-hoda/mynextpr-sub001/pkg/errors"
	"github.com/sameer-hoda/mynextpr-sub001/pkg/util"
)

// Service schedules generated plans onto the calendar and tracks progress.
type Service interface {
	Schedule(ctx context.Context, generated plangen.Plan, startDate time.Time) (PlanView, error)
	Latest(ctx context.Context, userID int64) (PlanView, error)
	Complete(ctx context.Context, userID int64, workoutID uuid.UUID, rating *int, notes string) error
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService is a wire provider for the plans domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, logger: logger.With("component", "plans.service"), now: util.NowUTC}
}

// Schedule assigns calendar dates and storage identifiers to a generated
// plan and persists it. Day n lands on startDate + n - 1; a zero startDate
// means the plan starts today.
func (s *service) Schedule(ctx context.Context, generated plangen.Plan, startDate time.Time) (PlanView, error) {
	if len(generated.Workouts) == 0 {
		return PlanView{}, apperrors.Wrap("invalid_input", "plan has no workouts", nil)
	}
	owner, err := strconv.ParseInt(generated.Workouts[0].UserID, 10, 64)
	if err != nil {
		return PlanView{}, apperrors.Wrap("invalid_input", "plan owner identifier must be numeric", err)
	}

	start := startDate
	if start.IsZero() {
		start = s.now()
	}
	start = util.MidnightUTC(start)

	plan := Plan{
		ID:        uuid.New(),
		UserID:    owner,
		Overview:  generated.Overview,
		CreatedAt: s.now(),
	}

	workouts := make([]Workout, 0, len(generated.Workouts))
	for _, item := range generated.Workouts {
		workouts = append(workouts, Workout{
			ID:              uuid.New(),
			PlanID:          plan.ID,
			Day:             item.Day,
			Date:            start.AddDate(0, 0, item.Day-1),
			Title:           item.Title,
			Type:            item.Type,
			Description:     item.Description,
			Warmup:          item.Warmup,
			MainSet:         item.MainSet,
			Cooldown:        item.Cooldown,
			DurationMinutes: item.DurationMinutes,
			DistanceKm:      item.DistanceKm,
			Completed:       false,
			Rating:          nil,
			Notes:           "",
		})
	}

	if err := s.repo.CreatePlan(ctx, plan, workouts); err != nil {
		return PlanView{}, apperrors.Wrap("storage_error", "failed to persist plan", err)
	}

	s.logger.Info("plan scheduled", "plan_id", plan.ID, "user_id", owner, "workouts", len(workouts), "start", start.Format("2006-01-02"))
	return newPlanView(plan, workouts), nil
}

func (s *service) Latest(ctx context.Context, userID int64) (PlanView, error) {
	plan, workouts, found, err := s.repo.LatestPlan(ctx, userID)
	if err != nil {
		return PlanView{}, apperrors.Wrap("storage_error", "failed to load plan", err)
	}
	if !found {
		return PlanView{}, apperrors.Wrap("not_found", "no plan found", nil)
	}
	return newPlanView(plan, workouts), nil
}

func (s *service) Complete(ctx context.Context, userID int64, workoutID uuid.UUID, rating *int, notes string) error {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return apperrors.Wrap("invalid_input", "rating must be between 1 and 5", nil)
	}
	found, err := s.repo.CompleteWorkout(ctx, userID, workoutID, rating, notes)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to update workout", err)
	}
	if !found {
		return apperrors.Wrap("not_found", "workout not found", nil)
	}
	return nil
}
