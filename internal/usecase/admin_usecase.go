package usecase

import (
	"context"
	"time"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
	"github.com/AbdulBasithMohammed/CVPro/pkg/apperror"
	"github.com/AbdulBasithMohammed/CVPro/pkg/auth"

	"github.com/google/uuid"
)

type adminUsecase struct {
	adminRepo  domain.AdminRepository
	userRepo   domain.UserRepository
	resumeRepo domain.ResumeRepository
	loginLogs  domain.LoginLogRepository
	hasher     domain.PasswordHasher
	tokens     *auth.TokenManager
	allocator  *UsernameAllocator
}

func NewAdminUsecase(
	adminRepo domain.AdminRepository,
	userRepo domain.UserRepository,
	resumeRepo domain.ResumeRepository,
	loginLogs domain.LoginLogRepository,
	hasher domain.PasswordHasher,
	tokens *auth.TokenManager,
) domain.AdminUsecase {
	return &adminUsecase{
		adminRepo:  adminRepo,
		userRepo:   userRepo,
		resumeRepo: resumeRepo,
		loginLogs:  loginLogs,
		hasher:     hasher,
		tokens:     tokens,
		allocator:  NewUsernameAllocator(userRepo),
	}
}

// requireAdmin guards the dashboard operations behind the role claim.
func requireAdmin(ctx context.Context) error {
	if !isAdmin(ctx) {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}

func (u *adminUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.Admin, error) {
	existing, err := u.adminRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("This email is already registered.")
	}

	username, err := u.allocator.Generate(ctx, input.FirstName, input.LastName)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	hashed, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	admin := &domain.Admin{
		ID:        uuid.NewString(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  username,
		Email:     input.Email,
		Password:  hashed,
		Role:      domain.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (u *adminUsecase) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	admin, err := u.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	if admin == nil {
		return "", nil, apperror.Unauthorized("Invalid email or password")
	}
	if !u.hasher.Verify(password, admin.Password) {
		return "", nil, apperror.Unauthorized("Invalid email or password")
	}
	if admin.Role != domain.RoleAdmin {
		return "", nil, apperror.Forbidden("Unauthorized. Only admins are allowed to log in.")
	}

	token, err := u.tokens.Generate(admin.ID, admin.Email, domain.RoleAdmin)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	return token, admin, nil
}

func (u *adminUsecase) ListUsers(ctx context.Context) ([]domain.AdminUser, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	users, err := u.adminRepo.ListUsers(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (u *adminUsecase) ListResumes(ctx context.Context) ([]domain.AdminResume, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	resumes, err := u.resumeRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	out := make([]domain.AdminResume, 0, len(resumes))
	for _, r := range resumes {
		item := domain.AdminResume{
			ID:           r.ID,
			UserID:       r.UserID,
			Title:        r.Title,
			Email:        r.Email,
			PersonalInfo: r.Details.Personal,
			Education:    r.Details.Education,
			Experience:   r.Details.Experience,
			Skills:       r.Details.Skills,
			Projects:     r.Details.Projects,
		}
		if r.ImageID != nil {
			item.ImageID = *r.ImageID
		}
		item.Metadata.CreatedAt = r.CreatedAt
		item.Metadata.UpdatedAt = r.UpdatedAt
		out = append(out, item)
	}
	return out, nil
}

func (u *adminUsecase) ListLoginLogs(ctx context.Context) ([]domain.LoginLog, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	logs, err := u.loginLogs.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return logs, nil
}

func (u *adminUsecase) DeleteUser(ctx context.Context, userID string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := uuid.Validate(userID); err != nil {
		return apperror.BadRequest("Invalid user ID.")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		return apperror.NotFound("User not found.")
	}

	// Resumes go first so a failure cannot orphan them without an owner.
	if err := u.resumeRepo.DeleteByUserID(ctx, userID); err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.Delete(ctx, userID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
