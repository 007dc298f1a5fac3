package auth

import (
	"context"
	"errors"
)

// ErrEmailExists is returned by Repository.Create when the email is already
// taken. The service maps it to the email_exists code.
var ErrEmailExists = errors.New("email already exists")

// Repository persists accounts. Emails arrive canonicalized, so lookups are
// exact matches.
type Repository interface {
	Create(ctx context.Context, email, nickname, passwordHash string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
}
