package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
	"github.com/AbdulBasithMohammed/CVPro/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, first_name, last_name, username, email, password, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Username, user.Email, user.Password,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if pgErr.ConstraintName == "users_username_key" {
				// Strict allocation retries on this one.
				return domain.ErrUsernameTaken
			}
			return apperror.Conflict("Email is already registered.")
		}
		return apperror.Internal(err)
	}
	return nil
}

const userColumns = `id, first_name, last_name, username, email, password,
	reset_token, reset_token_expires_at, created_at, updated_at`

func (r *userRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var token *string
	var expiresAt *time.Time
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Username, &user.Email, &user.Password,
		&token, &expiresAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if token != nil && expiresAt != nil {
		user.ResetToken = &domain.ResetToken{Token: *token, ExpiresAt: *expiresAt}
	}
	return &user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepo) UpdateCredential(ctx context.Context, email, passwordHash string) error {
	query := `UPDATE users SET password = $2, updated_at = NOW() WHERE email = $1`
	_, err := r.db.Exec(ctx, query, email, passwordHash)
	return err
}

func (r *userRepo) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	// Overwrites any prior sub-record: at most one token per account.
	query := `UPDATE users SET reset_token = $2, reset_token_expires_at = $3, updated_at = NOW() WHERE email = $1`
	_, err := r.db.Exec(ctx, query, email, token, expiresAt)
	return err
}

func (r *userRepo) ClearResetToken(ctx context.Context, email string) error {
	query := `UPDATE users SET reset_token = NULL, reset_token_expires_at = NULL, updated_at = NOW() WHERE email = $1`
	_, err := r.db.Exec(ctx, query, email)
	return err
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}
