package domain

import (
	"context"
	"errors"
	"time"
)

// ErrUsernameTaken is returned by the user store when an insert loses the
// race between the allocator's existence check and the write.
var ErrUsernameTaken = errors.New("username already taken")

// ResetToken is the one-time password-reset sub-record attached to an
// account while a reset flow is in progress. Absent in steady state.
type ResetToken struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// Expired reports whether the token is past its validity window at t.
func (r *ResetToken) Expired(t time.Time) bool {
	return t.After(r.ExpiresAt)
}

type User struct {
	ID         string      `json:"id"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	Password   string      `json:"-"`
	ResetToken *ResetToken `json:"-"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateCredential(ctx context.Context, email, passwordHash string) error
	SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, email string) error
	Delete(ctx context.Context, id string) error
}

// PasswordHasher is the credential hashing collaborator.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// Mailer dispatches transactional mail. Delivery is synchronous; a returned
// error means the message may never have left.
type Mailer interface {
	SendResetCode(to, code string, expiryMinutes int) error
	IsConfigured() bool
}

// GoogleClaims is the subset of the Google ID-token payload the backend
// cares about.
type GoogleClaims struct {
	Email      string
	GivenName  string
	FamilyName string
}

// GoogleVerifier validates a Google Sign-In ID token.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, email, password, ipAddress string) (string, *User, error)
	LoginWithGoogle(ctx context.Context, idToken, ipAddress string) (string, *User, error)
	IssueResetToken(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, email, token string) error
	ResetPassword(ctx context.Context, email, token, newPassword string) error
}
