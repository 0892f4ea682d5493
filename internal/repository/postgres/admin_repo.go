package postgres

import (
	"context"
	"errors"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
	"github.com/AbdulBasithMohammed/CVPro/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	query := `INSERT INTO admins (id, first_name, last_name, username, email, password, role, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		admin.ID, admin.FirstName, admin.LastName, admin.Username, admin.Email, admin.Password,
		admin.Role, admin.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("This email is already registered.")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `SELECT id, first_name, last_name, username, email, password, role, created_at
              FROM admins WHERE email = $1`
	var admin domain.Admin
	err := r.db.QueryRow(ctx, query, email).Scan(
		&admin.ID, &admin.FirstName, &admin.LastName, &admin.Username, &admin.Email,
		&admin.Password, &admin.Role, &admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) ListUsers(ctx context.Context) ([]domain.AdminUser, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name, u.email,
		       COUNT(r.id) AS total_resumes, u.created_at
		FROM users u
		LEFT JOIN resumes r ON r.user_id = u.id
		GROUP BY u.id
		ORDER BY u.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.AdminUser{}
	for rows.Next() {
		var u domain.AdminUser
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.TotalResumes, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
