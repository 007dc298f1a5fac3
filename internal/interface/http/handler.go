package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/auth"
	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plangen"
	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plans"
	apperrors "github.com/sameer-hoda/mynextpr-sub001/pkg/errors"
)

// Handler translates HTTP requests into domain calls and domain errors
// into the error envelope.
type Handler struct {
	authSvc    auth.Service
	planGenSvc plangen.Service
	plansSvc   plans.Service
	logger     *slog.Logger
}

// NewHandler is a wire provider for the HTTP handler set.
func NewHandler(authSvc auth.Service, planGenSvc plangen.Service, plansSvc plans.Service, logger *slog.Logger) *Handler {
	return &Handler{
		authSvc:    authSvc,
		planGenSvc: planGenSvc,
		plansSvc:   plansSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Register creates a new account.
func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "auth_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "email_exists"):
			status = http.StatusConflict
			code = "email_exists"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "auth_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "invalid_credentials"):
			status = http.StatusUnauthorized
			code = "invalid_credentials"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the profile of the authenticated caller.
func (h *Handler) Me(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	view, err := h.authSvc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		status := http.StatusInternalServerError
		code := "auth_failed"
		if apperrors.IsCode(err, "user_not_found") {
			status = http.StatusNotFound
			code = "user_not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, view)
}

type generatePlanRequest struct {
	GoalDistance string `json:"goalDistance"`
	GoalTime     string `json:"goalTime"`
	FitnessLevel string `json:"fitnessLevel"`
	Age          string `json:"age"`
	Sex          string `json:"sex"`
	CoachPersona string `json:"coachPersona"`
	StartDate    string `json:"startDate"`
}

// GeneratePlan runs the full generation pipeline and stores the result.
func (h *Handler) GeneratePlan(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	var req generatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "startDate must be YYYY-MM-DD", err))
			return
		}
		startDate = parsed
	}

	// The plan owner always comes from the verified token, never the body.
	profile := plangen.UserProfile{
		GoalDistance: req.GoalDistance,
		GoalTime:     req.GoalTime,
		FitnessLevel: req.FitnessLevel,
		Age:          req.Age,
		Sex:          req.Sex,
		CoachPersona: req.CoachPersona,
		UserID:       strconv.FormatInt(claims.UserID, 10),
	}

	generated, err := h.planGenSvc.GeneratePlan(c.Request.Context(), profile)
	if err != nil {
		status := http.StatusInternalServerError
		code := "plan_generation_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	view, err := h.plansSvc.Schedule(c.Request.Context(), generated, startDate)
	if err != nil {
		status := http.StatusInternalServerError
		code := "plan_storage_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusCreated, view)
}

// LatestPlan returns the caller's most recent plan.
func (h *Handler) LatestPlan(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	view, err := h.plansSvc.Latest(c.Request.Context(), claims.UserID)
	if err != nil {
		status := http.StatusInternalServerError
		code := "plan_fetch_failed"
		if apperrors.IsCode(err, "not_found") {
			status = http.StatusNotFound
			code = "plan_not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, view)
}

type completeWorkoutRequest struct {
	Rating *int   `json:"rating"`
	Notes  string `json:"notes"`
}

// CompleteWorkout marks one workout of the caller's plan as done.
func (h *Handler) CompleteWorkout(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	workoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid workout id", err))
		return
	}

	// Rating and notes are optional, so an empty body is fine.
	var req completeWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	if err := h.plansSvc.Complete(c.Request.Context(), claims.UserID, workoutID, req.Rating, req.Notes); err != nil {
		status := http.StatusInternalServerError
		code := "workout_update_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "not_found"):
			status = http.StatusNotFound
			code = "workout_not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
