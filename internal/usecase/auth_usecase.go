package usecase

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
	"github.com/AbdulBasithMohammed/CVPro/pkg/apperror"
	"github.com/AbdulBasithMohammed/CVPro/pkg/auth"

	"github.com/google/uuid"
)

// Reset tokens are 6 decimal digits, valid for 5 minutes.
const (
	resetTokenTTL  = 5 * time.Minute
	resetTokenMin  = 100000
	resetTokenSpan = 900000
)

// strictCreateRetries bounds re-allocation when the store rejects a username
// that the pre-insert check said was free.
const strictCreateRetries = 3

type authUsecase struct {
	userRepo  domain.UserRepository
	loginLogs domain.LoginLogRepository
	hasher    domain.PasswordHasher
	mailer    domain.Mailer
	google    domain.GoogleVerifier
	tokens    *auth.TokenManager
	allocator *UsernameAllocator
	strict    bool
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	loginLogs domain.LoginLogRepository,
	hasher domain.PasswordHasher,
	mailer domain.Mailer,
	google domain.GoogleVerifier,
	tokens *auth.TokenManager,
	strictAllocation bool,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		loginLogs: loginLogs,
		hasher:    hasher,
		mailer:    mailer,
		google:    google,
		tokens:    tokens,
		allocator: NewUsernameAllocator(userRepo),
		strict:    strictAllocation,
	}
}

func (u *authUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	existing, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Email is already registered.")
	}

	username, err := u.allocator.Generate(ctx, input.FirstName, input.LastName)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	hashed, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.NewString(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  username,
		Email:     input.Email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for attempt := 0; ; attempt++ {
		err = u.userRepo.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if u.strict && errors.Is(err, domain.ErrUsernameTaken) && attempt < strictCreateRetries {
			user.Username, err = u.allocator.Generate(ctx, input.FirstName, input.LastName)
			if err != nil {
				return nil, apperror.Internal(err)
			}
			continue
		}
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, apperror.Conflict("Could not allocate a unique username. Please try again.")
		}
		return nil, err
	}
}

func (u *authUsecase) Login(ctx context.Context, email, password, ipAddress string) (string, *domain.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	if user == nil {
		u.recordLogin(ctx, nil, email, ipAddress, false)
		return "", nil, apperror.Unauthorized("Invalid email or password")
	}

	if !u.hasher.Verify(password, user.Password) {
		u.recordLogin(ctx, &user.ID, email, ipAddress, false)
		return "", nil, apperror.Unauthorized("Invalid email or password")
	}

	token, err := u.tokens.Generate(user.ID, user.Email, domain.RoleUser)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}

	u.recordLogin(ctx, &user.ID, email, ipAddress, true)
	return token, user, nil
}

func (u *authUsecase) LoginWithGoogle(ctx context.Context, idToken, ipAddress string) (string, *domain.User, error) {
	claims, err := u.google.Verify(ctx, idToken)
	if err != nil {
		return "", nil, apperror.Unauthorized("Invalid Google token")
	}

	user, err := u.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}

	if user == nil {
		firstName := claims.GivenName
		if firstName == "" {
			firstName = "user"
		}
		username, err := u.allocator.Generate(ctx, firstName, claims.FamilyName)
		if err != nil {
			return "", nil, apperror.Internal(err)
		}
		// Google accounts have no local password; store an unguessable one
		// so password login stays closed until a reset.
		hashed, err := u.hasher.Hash(uuid.NewString())
		if err != nil {
			return "", nil, apperror.Internal(err)
		}

		now := time.Now().UTC()
		user = &domain.User{
			ID:        uuid.NewString(),
			FirstName: firstName,
			LastName:  claims.FamilyName,
			Username:  username,
			Email:     claims.Email,
			Password:  hashed,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := u.userRepo.Create(ctx, user); err != nil {
			return "", nil, err
		}
	}

	token, err := u.tokens.Generate(user.ID, user.Email, domain.RoleUser)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}

	u.recordLogin(ctx, &user.ID, claims.Email, ipAddress, true)
	return token, user, nil
}

func (u *authUsecase) IssueResetToken(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		return apperror.NotFound("Invalid email. No user found.")
	}

	token := strconv.Itoa(resetTokenMin + rand.Intn(resetTokenSpan))
	expiresAt := time.Now().UTC().Add(resetTokenTTL)

	// Overwrites any previous sub-record; at most one token per account.
	if err := u.userRepo.SetResetToken(ctx, email, token, expiresAt); err != nil {
		return apperror.Internal(err)
	}

	if err := u.mailer.SendResetCode(email, token, int(resetTokenTTL.Minutes())); err != nil {
		// Synchronous dispatch: the caller learns the code may never have
		// reached the user.
		return apperror.New(http.StatusInternalServerError, "Failed to deliver the reset code. Please try again.", err)
	}
	return nil
}

// checkResetToken runs the shared precondition chain for verify and reset:
// account exists, sub-record present, token matches, token not expired.
// The order matters: a wrong token always reports a mismatch, even when the
// stored one has also expired.
func (u *authUsecase) checkResetToken(ctx context.Context, email, token string) (*domain.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("Invalid email. No user found.")
	}
	if user.ResetToken == nil {
		return nil, apperror.BadRequest("No reset token found. Please request a new one.")
	}
	if user.ResetToken.Token != token {
		return nil, apperror.BadRequest("Invalid token.")
	}
	if user.ResetToken.Expired(time.Now().UTC()) {
		return user, apperror.BadRequest("Token has expired. Please request a new one.")
	}
	return user, nil
}

func (u *authUsecase) VerifyResetToken(ctx context.Context, email, token string) error {
	user, err := u.checkResetToken(ctx, email, token)
	if err != nil {
		if user != nil {
			// Expired: lazily drop the stale sub-record so the next verify
			// reports "no token" instead of "expired".
			_ = u.userRepo.ClearResetToken(ctx, email)
		}
		return err
	}
	// The sub-record survives a successful verify; it is consumed by the
	// reset step, so verify can be repeated within the validity window.
	return nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	if _, err := u.checkResetToken(ctx, email, token); err != nil {
		// Unlike verify, the expired path leaves the sub-record in place.
		return err
	}

	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.UpdateCredential(ctx, email, hashed); err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.ClearResetToken(ctx, email); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// recordLogin is best effort; an audit miss never fails the login itself.
func (u *authUsecase) recordLogin(ctx context.Context, userID *string, email, ip string, ok bool) {
	if u.loginLogs == nil {
		return
	}
	_ = u.loginLogs.Insert(ctx, &domain.LoginLog{
		UserID:     userID,
		Email:      email,
		IPAddress:  ip,
		Successful: ok,
	})
}
