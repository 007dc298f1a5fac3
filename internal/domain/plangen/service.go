package plangen

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/sameer-hoda/mynextpr-sub001/pkg/errors"
	"github.com/sameer-hoda/mynextpr-sub001/pkg/tokens"
	"github.com/sameer-hoda/mynextpr-sub001/pkg/util"
)

// Service exposes plan generation.
type Service interface {
	GeneratePlan(ctx context.Context, profile UserProfile) (Plan, error)
}

type service struct {
	client   ModelClient
	recorder ArtifactRecorder
	logger   *slog.Logger
}

// NewService is a wire provider for the plangen domain.
func NewService(client ModelClient, recorder ArtifactRecorder, logger *slog.Logger) Service {
	return &service{client: client, recorder: recorder, logger: logger.With("component", "plangen.service")}
}

// GeneratePlan runs the pipeline: profile checks, prompt, one model call,
// extraction, assembly. Recoverable failures degrade to the fallback plan;
// only invalid caller input surfaces as an error.
func (s *service) GeneratePlan(ctx context.Context, profile UserProfile) (Plan, error) {
	if missing := missingProfileFields(profile); len(missing) > 0 {
		for i, field := range missing {
			missing[i] = field + " is required"
		}
		return Plan{}, apperrors.Wrap("invalid_input", strings.Join(missing, "; "), nil)
	}

	prompt := buildPrompt(profile)
	s.logger.Debug("prompt built", "user_id", profile.UserID, "prompt_tokens", tokens.Count(prompt))
	s.record(ctx, ArtifactPrompt, profile.UserID, prompt)

	raw, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		return s.degrade(ctx, profile, apperrors.Wrap("model_error", "model call failed", err))
	}
	s.record(ctx, ArtifactResponse, profile.UserID, raw)

	candidate, err := extractJSON(raw)
	if err != nil {
		return s.degrade(ctx, profile, err)
	}

	plan, err := s.assemblePlan(candidate, profile)
	if err != nil {
		return s.degrade(ctx, profile, err)
	}

	s.logger.Info("plan generated", "user_id", profile.UserID, "workouts", len(plan.Workouts))
	return plan, nil
}

// degrade converts a recoverable failure into the guaranteed fallback plan.
func (s *service) degrade(ctx context.Context, profile UserProfile, err error) (Plan, error) {
	s.logger.Warn("plan generation degraded to fallback", "user_id", profile.UserID, "error", err)
	s.record(ctx, ArtifactError, profile.UserID, err.Error())
	return FallbackPlan(profile), nil
}

func (s *service) record(ctx context.Context, kind ArtifactKind, userID, payload string) {
	s.recorder.Record(ctx, Artifact{
		Kind:      kind,
		UserID:    userID,
		Payload:   payload,
		CreatedAt: util.NowUTC(),
	})
}

// Missing required fields are fatal: no model call, no fallback.
func missingProfileFields(profile UserProfile) []string {
	var missing []string
	if strings.TrimSpace(profile.GoalDistance) == "" {
		missing = append(missing, "goal_distance")
	}
	if strings.TrimSpace(profile.FitnessLevel) == "" {
		missing = append(missing, "fitness_level")
	}
	if strings.TrimSpace(profile.Age) == "" {
		missing = append(missing, "age")
	}
	if strings.TrimSpace(profile.Sex) == "" {
		missing = append(missing, "sex")
	}
	return missing
}
