package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type resumeRepo struct {
	db *pgxpool.Pool
}

func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	details, err := json.Marshal(resume.Details)
	if err != nil {
		return fmt.Errorf("failed to encode resume details: %w", err)
	}

	query := `INSERT INTO resumes (id, user_id, title, email, image_id, skills, details, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.db.Exec(ctx, query,
		resume.ID, resume.UserID, resume.Title, resume.Email, resume.ImageID,
		pq.Array(resume.Details.Skills), details, resume.CreatedAt, resume.UpdatedAt,
	)
	return err
}

const resumeColumns = `id, user_id, title, email, image_id, details, created_at, updated_at`

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var res domain.Resume
	var details []byte
	err := row.Scan(
		&res.ID, &res.UserID, &res.Title, &res.Email, &res.ImageID,
		&details, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(details, &res.Details); err != nil {
		return nil, fmt.Errorf("failed to decode resume details: %w", err)
	}
	return &res, nil
}

func (r *resumeRepo) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	return scanResume(r.db.QueryRow(ctx, query, id))
}

func (r *resumeRepo) list(ctx context.Context, query string, args ...any) ([]domain.Resume, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resumes := []domain.Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, *res)
	}
	return resumes, rows.Err()
}

func (r *resumeRepo) ListByUserID(ctx context.Context, userID string) ([]domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`
	return r.list(ctx, query, userID)
}

func (r *resumeRepo) ListByEmail(ctx context.Context, email string) ([]domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE email = $1 ORDER BY updated_at DESC`
	return r.list(ctx, query, email)
}

func (r *resumeRepo) ListAll(ctx context.Context) ([]domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *resumeRepo) Update(ctx context.Context, resume *domain.Resume) error {
	details, err := json.Marshal(resume.Details)
	if err != nil {
		return fmt.Errorf("failed to encode resume details: %w", err)
	}

	query := `UPDATE resumes SET title = $2, email = $3, skills = $4, details = $5, updated_at = NOW()
              WHERE id = $1`
	_, err = r.db.Exec(ctx, query, resume.ID, resume.Title, resume.Email,
		pq.Array(resume.Details.Skills), details)
	return err
}

func (r *resumeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	return err
}

func (r *resumeRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE user_id = $1`, userID)
	return err
}

func (r *resumeRepo) SaveImage(ctx context.Context, img *domain.ResumeImage) error {
	query := `INSERT INTO resume_images (id, content_type, data) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, img.ID, img.ContentType, img.Data)
	return err
}

func (r *resumeRepo) GetImage(ctx context.Context, id string) (*domain.ResumeImage, error) {
	var img domain.ResumeImage
	err := r.db.QueryRow(ctx, `SELECT id, content_type, data FROM resume_images WHERE id = $1`, id).
		Scan(&img.ID, &img.ContentType, &img.Data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (r *resumeRepo) SetImageID(ctx context.Context, resumeID, imageID string) error {
	_, err := r.db.Exec(ctx, `UPDATE resumes SET image_id = $2, updated_at = NOW() WHERE id = $1`, resumeID, imageID)
	return err
}
