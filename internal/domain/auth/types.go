package auth

import "time"

// Config carries the signing secret and the access token lifetime.
type Config struct {
	Secret   string
	TokenTTL time.Duration
}

// User is the stored account row. The password hash never leaves the
// domain layer.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Nickname     string    `json:"nickname"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// View strips credential fields for API responses.
func (u User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email, Nickname: u.Nickname, CreatedAt: u.CreatedAt}
}

// UserView is the public shape of an account.
type UserView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// LoginRequest carries the credentials to verify.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse pairs the signed token with the account it belongs to.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// Claims is the verified identity extracted from a bearer token.
type Claims struct {
	UserID    int64
	Email     string
	ExpiresAt time.Time
}
