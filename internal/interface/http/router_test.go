package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/auth"
	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plangen"
	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plans"
	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/config"
	apperrors "github.com/sameer-hoda/mynextpr-sub001/pkg/errors"
)

func TestRouter_Healthz(t *testing.T) {
	server := newRouterUnderTest(t, routerStubs{})

	recorder := performRequest(http.MethodGet, "/healthz", "", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

func TestRouter_RegisterSuccess(t *testing.T) {
	created := auth.UserView{ID: 7, Email: "runner@example.com", Nickname: "runner"}
	stubs := routerStubs{
		authSvc: &stubAuth{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (auth.UserView, error) {
				require.Equal(t, "runner@example.com", req.Email)
				return created, nil
			},
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/auth/register",
		`{"email":"runner@example.com","password":"secret123","nickname":"runner"}`, "", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var got auth.UserView
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, created.Email, got.Email)
}

func TestRouter_RegisterDuplicateEmail(t *testing.T) {
	stubs := routerStubs{
		authSvc: &stubAuth{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (auth.UserView, error) {
				return auth.UserView{}, apperrors.Wrap("email_exists", "email already registered", nil)
			},
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/auth/register",
		`{"email":"runner@example.com","password":"secret123","nickname":"runner"}`, "", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusConflict, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "email_exists", errBody["error"]["code"])
}

func TestRouter_LoginInvalidCredentials(t *testing.T) {
	stubs := routerStubs{
		authSvc: &stubAuth{
			loginFn: func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
				return auth.LoginResponse{}, apperrors.Wrap("invalid_credentials", "invalid email or password", nil)
			},
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/auth/login",
		`{"email":"runner@example.com","password":"wrong"}`, "", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_credentials", errBody["error"]["code"])
}

func TestRouter_MeReturnsProfile(t *testing.T) {
	stubs := routerStubs{
		authSvc: &stubAuth{
			profileFn: func(ctx context.Context, userID int64) (auth.UserView, error) {
				require.EqualValues(t, 7, userID)
				return auth.UserView{ID: userID, Email: "runner@example.com", Nickname: "runner"}, nil
			},
		},
	}

	recorder := performRequest(http.MethodGet, "/api/v1/auth/me", "", "token", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got auth.UserView
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.EqualValues(t, 7, got.ID)
	require.Equal(t, "runner", got.Nickname)
}

func TestRouter_MeUnknownUser(t *testing.T) {
	stubs := routerStubs{
		authSvc: &stubAuth{
			profileFn: func(ctx context.Context, userID int64) (auth.UserView, error) {
				return auth.UserView{}, apperrors.Wrap("user_not_found", "user not found", nil)
			},
		},
	}

	recorder := performRequest(http.MethodGet, "/api/v1/auth/me", "", "token", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusNotFound, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "user_not_found", errBody["error"]["code"])
}

func TestRouter_GeneratePlanRequiresAuth(t *testing.T) {
	server := newRouterUnderTest(t, routerStubs{})

	recorder := performRequest(http.MethodPost, "/api/v1/plans", `{"goalDistance":"10K"}`, "", server)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "unauthorized", errBody["error"]["code"])
}

func TestRouter_GeneratePlanInvalidToken(t *testing.T) {
	stubs := routerStubs{
		authSvc: &stubAuth{
			validateFn: func(ctx context.Context, token string) (auth.Claims, error) {
				return auth.Claims{}, apperrors.Wrap("invalid_token", "token is expired", nil)
			},
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/plans", `{"goalDistance":"10K"}`, "stale", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusForbidden, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_token", errBody["error"]["code"])
}

func TestRouter_GeneratePlanSuccess(t *testing.T) {
	planID := uuid.New()
	wantView := plans.PlanView{ID: planID, Overview: "Your personalized 10K training plan"}
	stubs := routerStubs{
		planGenSvc: &stubPlanGen{
			generateFn: func(ctx context.Context, profile plangen.UserProfile) (plangen.Plan, error) {
				require.Equal(t, "10K", profile.GoalDistance)
				require.Equal(t, "Intermediate", profile.FitnessLevel)
				require.Equal(t, "7", profile.UserID)
				return plangen.Plan{Overview: "generated", Workouts: []plangen.Workout{{Day: 1, UserID: "7"}}}, nil
			},
		},
		plansSvc: &stubPlans{
			scheduleFn: func(ctx context.Context, generated plangen.Plan, startDate time.Time) (plans.PlanView, error) {
				require.Equal(t, "generated", generated.Overview)
				require.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), startDate)
				return wantView, nil
			},
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/plans",
		`{"goalDistance":"10K","fitnessLevel":"Intermediate","age":"35","sex":"female","startDate":"2026-03-02"}`,
		"valid-token", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var got plans.PlanView
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, planID, got.ID)
	require.Equal(t, wantView.Overview, got.Overview)
}

func TestRouter_GeneratePlanBadStartDate(t *testing.T) {
	server := newRouterUnderTest(t, routerStubs{})

	recorder := performRequest(http.MethodPost, "/api/v1/plans",
		`{"goalDistance":"10K","startDate":"03/02/2026"}`, "valid-token", server)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "YYYY-MM-DD")
}

func TestRouter_GeneratePlanMissingProfileFields(t *testing.T) {
	stubs := routerStubs{
		planGenSvc: &stubPlanGen{
			generateFn: func(ctx context.Context, profile plangen.UserProfile) (plangen.Plan, error) {
				return plangen.Plan{}, apperrors.Wrap("invalid_input", "goal_distance is required", nil)
			},
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/plans", `{}`, "valid-token", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "goal_distance is required")
}

func TestRouter_LatestPlanNotFound(t *testing.T) {
	stubs := routerStubs{
		plansSvc: &stubPlans{
			latestFn: func(ctx context.Context, userID int64) (plans.PlanView, error) {
				require.Equal(t, int64(7), userID)
				return plans.PlanView{}, apperrors.Wrap("not_found", "no plan found", nil)
			},
		},
	}

	recorder := performRequest(http.MethodGet, "/api/v1/plans/latest", "", "valid-token", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusNotFound, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "plan_not_found", errBody["error"]["code"])
}

func TestRouter_CompleteWorkout(t *testing.T) {
	workoutID := uuid.New()
	var gotRating *int
	var gotNotes string
	stubs := routerStubs{
		plansSvc: &stubPlans{
			completeFn: func(ctx context.Context, userID int64, id uuid.UUID, rating *int, notes string) error {
				require.Equal(t, int64(7), userID)
				require.Equal(t, workoutID, id)
				gotRating = rating
				gotNotes = notes
				return nil
			},
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/workouts/"+workoutID.String()+"/complete",
		`{"rating":4,"notes":"felt strong"}`, "valid-token", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":"completed"}`, recorder.Body.String())
	require.NotNil(t, gotRating)
	require.Equal(t, 4, *gotRating)
	require.Equal(t, "felt strong", gotNotes)
}

func TestRouter_CompleteWorkoutEmptyBody(t *testing.T) {
	workoutID := uuid.New()
	stubs := routerStubs{
		plansSvc: &stubPlans{
			completeFn: func(ctx context.Context, userID int64, id uuid.UUID, rating *int, notes string) error {
				require.Nil(t, rating)
				require.Empty(t, notes)
				return nil
			},
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/workouts/"+workoutID.String()+"/complete",
		"", "valid-token", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_CompleteWorkoutBadID(t *testing.T) {
	server := newRouterUnderTest(t, routerStubs{})

	recorder := performRequest(http.MethodPost, "/api/v1/workouts/not-a-uuid/complete", "", "valid-token", server)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func performRequest(method, path, body, token string, server *http.Server) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

type routerStubs struct {
	authSvc    *stubAuth
	planGenSvc *stubPlanGen
	plansSvc   *stubPlans
}

func newRouterUnderTest(t *testing.T, stubs routerStubs) *http.Server {
	t.Helper()
	if stubs.authSvc == nil {
		stubs.authSvc = &stubAuth{}
	}
	if stubs.planGenSvc == nil {
		stubs.planGenSvc = &stubPlanGen{}
	}
	if stubs.plansSvc == nil {
		stubs.plansSvc = &stubPlans{}
	}
	handler := NewHandler(stubs.authSvc, stubs.planGenSvc, stubs.plansSvc, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return NewRouter(cfg, handler, stubs.authSvc)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubAuth struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) (auth.UserView, error)
	loginFn    func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	validateFn func(ctx context.Context, token string) (auth.Claims, error)
	profileFn  func(ctx context.Context, userID int64) (auth.UserView, error)
}

func (s *stubAuth) Register(ctx context.Context, req auth.RegisterRequest) (auth.UserView, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, req)
	}
	return auth.UserView{}, nil
}

func (s *stubAuth) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, req)
	}
	return auth.LoginResponse{}, nil
}

func (s *stubAuth) ValidateToken(ctx context.Context, token string) (auth.Claims, error) {
	if s.validateFn != nil {
		return s.validateFn(ctx, token)
	}
	return auth.Claims{UserID: 7, Email: "runner@example.com"}, nil
}

func (s *stubAuth) Profile(ctx context.Context, userID int64) (auth.UserView, error) {
	if s.profileFn != nil {
		return s.profileFn(ctx, userID)
	}
	return auth.UserView{ID: userID, Email: "runner@example.com"}, nil
}

type stubPlanGen struct {
	generateFn func(ctx context.Context, profile plangen.UserProfile) (plangen.Plan, error)
}

func (s *stubPlanGen) GeneratePlan(ctx context.Context, profile plangen.UserProfile) (plangen.Plan, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, profile)
	}
	return plangen.Plan{}, nil
}

type stubPlans struct {
	scheduleFn func(ctx context.Context, generated plangen.Plan, startDate time.Time) (plans.PlanView, error)
	latestFn   func(ctx context.Context, userID int64) (plans.PlanView, error)
	completeFn func(ctx context.Context, userID int64, workoutID uuid.UUID, rating *int, notes string) error
}

func (s *stubPlans) Schedule(ctx context.Context, generated plangen.Plan, startDate time.Time) (plans.PlanView, error) {
	if s.scheduleFn != nil {
		return s.scheduleFn(ctx, generated, startDate)
	}
	return plans.PlanView{}, nil
}

func (s *stubPlans) Latest(ctx context.Context, userID int64) (plans.PlanView, error) {
	if s.latestFn != nil {
		return s.latestFn(ctx, userID)
	}
	return plans.PlanView{}, nil
}

func (s *stubPlans) Complete(ctx context.Context, userID int64, workoutID uuid.UUID, rating *int, notes string) error {
	if s.completeFn != nil {
		return s.completeFn(ctx, userID, workoutID, rating, notes)
	}
	return nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
