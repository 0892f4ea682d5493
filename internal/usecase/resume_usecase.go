package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
	"github.com/AbdulBasithMohammed/CVPro/pkg/apperror"
	"github.com/AbdulBasithMohammed/CVPro/pkg/images"

	"github.com/google/uuid"
)

type resumeUsecase struct {
	repo   domain.ResumeRepository
	parser domain.ResumeParser
}

func NewResumeUsecase(repo domain.ResumeRepository, parser domain.ResumeParser) domain.ResumeUsecase {
	return &resumeUsecase{
		repo:   repo,
		parser: parser,
	}
}

// currentUser pulls the authenticated user from the request context.
func currentUser(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || userID == "" {
		return "", apperror.Unauthorized("User not authenticated")
	}
	return userID, nil
}

func isAdmin(ctx context.Context) bool {
	role, _ := ctx.Value(domain.KeyUserRole).(string)
	return role == domain.RoleAdmin
}

func (u *resumeUsecase) Create(ctx context.Context, resume *domain.Resume) (*domain.Resume, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resume.ID = uuid.NewString()
	// Ownership comes from the token, never from the payload.
	resume.UserID = userID
	resume.CreatedAt = now
	resume.UpdatedAt = now

	if err := u.repo.Create(ctx, resume); err != nil {
		return nil, apperror.Internal(err)
	}
	return resume, nil
}

func (u *resumeUsecase) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	resume, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if resume == nil {
		return nil, apperror.NotFound("Resume not found")
	}
	if resume.UserID != userID && !isAdmin(ctx) {
		return nil, apperror.Forbidden("You can only view your own resumes")
	}
	return resume, nil
}

func (u *resumeUsecase) ListMine(ctx context.Context) ([]domain.Resume, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	resumes, err := u.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return resumes, nil
}

func (u *resumeUsecase) ListByEmail(ctx context.Context, email string) ([]domain.Resume, error) {
	if _, err := currentUser(ctx); err != nil {
		return nil, err
	}

	ctxEmail, _ := ctx.Value(domain.KeyUserEmail).(string)
	if !strings.EqualFold(ctxEmail, email) && !isAdmin(ctx) {
		return nil, apperror.Forbidden("You can only view your own resumes")
	}

	resumes, err := u.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return resumes, nil
}

// owned fetches a resume and enforces that the context user owns it.
func (u *resumeUsecase) owned(ctx context.Context, id string) (*domain.Resume, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing == nil {
		return nil, apperror.NotFound("Resume not found")
	}
	if existing.UserID != userID && !isAdmin(ctx) {
		return nil, apperror.Forbidden("You can only modify your own resumes")
	}
	return existing, nil
}

func (u *resumeUsecase) Update(ctx context.Context, resume *domain.Resume) error {
	existing, err := u.owned(ctx, resume.ID)
	if err != nil {
		return err
	}

	resume.UserID = existing.UserID
	if err := u.repo.Update(ctx, resume); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *resumeUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.owned(ctx, id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *resumeUsecase) AttachImage(ctx context.Context, resumeID string, data []byte) (string, error) {
	if _, err := u.owned(ctx, resumeID); err != nil {
		return "", err
	}

	normalized, contentType, err := images.Normalize(data)
	if err != nil {
		return "", apperror.BadRequest("Unsupported image format")
	}

	img := &domain.ResumeImage{
		ID:          uuid.NewString(),
		ContentType: contentType,
		Data:        normalized,
	}
	if err := u.repo.SaveImage(ctx, img); err != nil {
		return "", apperror.Internal(err)
	}
	if err := u.repo.SetImageID(ctx, resumeID, img.ID); err != nil {
		return "", apperror.Internal(err)
	}
	return img.ID, nil
}

func (u *resumeUsecase) GetImage(ctx context.Context, imageID string) (*domain.ResumeImage, error) {
	img, err := u.repo.GetImage(ctx, imageID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if img == nil {
		return nil, apperror.NotFound("Image not found")
	}
	return img, nil
}

func (u *resumeUsecase) Parse(ctx context.Context, text string) (*domain.ParsedResume, error) {
	if _, err := currentUser(ctx); err != nil {
		return nil, err
	}
	if !u.parser.IsConfigured() {
		return nil, apperror.New(http.StatusServiceUnavailable, "Resume parsing is temporarily unavailable", nil)
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperror.BadRequest("Resume text is required")
	}

	parsed, err := u.parser.ParseResume(ctx, text)
	if err != nil {
		return nil, apperror.New(http.StatusBadGateway, "Failed to parse resume: "+err.Error(), err)
	}
	return parsed, nil
}
