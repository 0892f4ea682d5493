package postgres

import (
	"context"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type loginLogRepo struct {
	db *pgxpool.Pool
}

func NewLoginLogRepository(db *pgxpool.Pool) domain.LoginLogRepository {
	return &loginLogRepo{db: db}
}

func (r *loginLogRepo) Insert(ctx context.Context, entry *domain.LoginLog) error {
	query := `INSERT INTO login_logs (user_id, email, ip_address, login_successful)
              VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, query, entry.UserID, entry.Email, entry.IPAddress, entry.Successful)
	return err
}

func (r *loginLogRepo) List(ctx context.Context) ([]domain.LoginLog, error) {
	query := `SELECT id, user_id, email, ip_address, login_successful, created_at
              FROM login_logs ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []domain.LoginLog{}
	for rows.Next() {
		var l domain.LoginLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Email, &l.IPAddress, &l.Successful, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
