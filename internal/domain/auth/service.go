package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/sameer-hoda/mynextpr-sub001/pkg/errors"
)

const (
	tokenTypeAccess = "access"

	nicknameMaxRunes = 20
	passwordMinLen   = 8
	// bcrypt ignores everything past 72 bytes.
	passwordMaxLen = 72
)

// Service owns accounts and the tokens that prove them. Plan ownership is
// always derived from validated claims, never from request bodies.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (UserView, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
	Profile(ctx context.Context, userID int64) (UserView, error)
}

type service struct {
	cfg    Config
	repo   Repository
	logger *slog.Logger
}

// NewService is a wire provider for the auth domain.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	return &service{cfg: cfg, repo: repo, logger: logger.With("component", "auth.service")}
}

// Register validates the payload, hashes the password and inserts the
// account. The repository's uniqueness guarantee is the source of truth for
// duplicates, so two concurrent registrations cannot both win.
func (s *service) Register(ctx context.Context, req RegisterRequest) (UserView, error) {
	email, err := canonicalEmail(req.Email)
	if err != nil {
		return UserView{}, apperrors.Wrap("invalid_input", "invalid email address", err)
	}
	nickname, err := cleanNickname(req.Nickname)
	if err != nil {
		return UserView{}, apperrors.Wrap("invalid_input", err.Error(), nil)
	}
	if err := checkPassword(req.Password); err != nil {
		return UserView{}, apperrors.Wrap("invalid_input", err.Error(), nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserView{}, apperrors.Wrap("auth_error", "failed to hash password", err)
	}
	user, err := s.repo.Create(ctx, email, nickname, string(hash))
	if errors.Is(err, ErrEmailExists) {
		return UserView{}, apperrors.Wrap("email_exists", "email already registered", err)
	}
	if err != nil {
		return UserView{}, apperrors.Wrap("auth_error", "failed to create user", err)
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user.View(), nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password collapse into one invalid_credentials answer.
func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email, err := canonicalEmail(req.Email)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("invalid_input", "invalid email address", err)
	}
	if req.Password == "" {
		return LoginResponse{}, apperrors.Wrap("invalid_input", "password cannot be empty", nil)
	}
	user, found, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("auth_error", "failed to look up user", err)
	}
	if !found || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return LoginResponse{}, apperrors.Wrap("invalid_credentials", "invalid email or password", nil)
	}
	token, err := s.issueToken(user)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{Token: token, User: user.View()}, nil
}

// ValidateToken checks signature, expiry and token type, and returns the
// identity embedded in the token.
func (s *service) ValidateToken(_ context.Context, token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, apperrors.Wrap("invalid_token", "token missing", nil)
	}
	var claims accessClaims
	_, err := jwt.ParseWithClaims(token, &claims, s.signingKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, apperrors.Wrap("invalid_token", "token validation failed", err)
	}
	if claims.TokenType != tokenTypeAccess {
		return Claims{}, apperrors.Wrap("invalid_token", "not an access token", nil)
	}
	return Claims{UserID: claims.UserID, Email: claims.Email, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Profile returns the public view of an account.
func (s *service) Profile(ctx context.Context, userID int64) (UserView, error) {
	user, found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return UserView{}, apperrors.Wrap("auth_error", "failed to load user", err)
	}
	if !found {
		return UserView{}, apperrors.Wrap("user_not_found", "user not found", nil)
	}
	return user.View(), nil
}

func (s *service) issueToken(user User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", apperrors.Wrap("auth_error", "failed to sign token", err)
	}
	return signed, nil
}

func (s *service) signingKey(*jwt.Token) (any, error) {
	return []byte(s.cfg.Secret), nil
}

type accessClaims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	TokenType string `json:"type"`
}

// canonicalEmail lowercases and parses raw, returning the bare address so
// lookups and the unique index see one spelling per mailbox.
func canonicalEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return "", err
	}
	return addr.Address, nil
}

func cleanNickname(raw string) (string, error) {
	nickname := strings.TrimSpace(raw)
	switch {
	case nickname == "":
		return "", errors.New("nickname cannot be empty")
	case utf8.RuneCountInString(nickname) > nicknameMaxRunes:
		return "", errors.New("nickname cannot exceed 20 characters")
	case strings.IndexFunc(nickname, isNotAlphanumeric) >= 0:
		return "", errors.New("nickname must contain only letters and digits")
	}
	return nickname, nil
}

func isNotAlphanumeric(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func checkPassword(password string) error {
	switch {
	case len(password) < passwordMinLen:
		return errors.New("password must be at least 8 characters")
	case len(password) > passwordMaxLen:
		return errors.New("password cannot exceed 72 characters")
	}
	return nil
}
