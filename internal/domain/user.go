package domain

import (
	"context"
	"time"
)

// User represents a registered user. Any user may organize meetups and
// attend other users' meetups.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfilePatch is a partial profile update; nil fields are left unchanged.
// A non-nil Password requires OldPassword to match the current one.
type ProfilePatch struct {
	Name        *string
	Email       *string
	OldPassword *string
	Password    *string
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	// Create persists u and returns ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// AuthService handles signup, login, and profile updates.
type AuthService interface {
	SignUp(ctx context.Context, name, email, password string) (*User, error)
	// Login returns a bearer token for valid credentials.
	Login(ctx context.Context, email, password string) (string, *User, error)
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*User, error)
}
