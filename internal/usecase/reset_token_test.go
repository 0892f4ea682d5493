package usecase_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
	"github.com/AbdulBasithMohammed/CVPro/internal/usecase"
	"github.com/AbdulBasithMohammed/CVPro/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAuthUsecaseForTest(userRepo *MockUserRepo, mailer *MockMailer) domain.AuthUsecase {
	return usecase.NewAuthUsecase(
		userRepo,
		nil,
		FakeHasher{},
		mailer,
		new(MockGoogleVerifier),
		auth.NewTokenManager("test-secret"),
		false,
	)
}

func userWithToken(token string, expiresAt time.Time) *domain.User {
	return &domain.User{
		ID:       "user1",
		Email:    "jane@example.com",
		Password: "hashed:OldPass1",
		ResetToken: &domain.ResetToken{
			Token:     token,
			ExpiresAt: expiresAt,
		},
	}
}

func TestIssueResetToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store a 6-digit code expiring in 5 minutes and email it", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockMailer := new(MockMailer)
		mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(&domain.User{ID: "user1", Email: "jane@example.com"}, nil)

		var storedToken string
		var storedExpiry time.Time
		mockRepo.On("SetResetToken", ctx, "jane@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Return(nil).
			Run(func(args mock.Arguments) {
				storedToken = args.String(2)
				storedExpiry = args.Get(3).(time.Time)
			})
		mockMailer.On("SendResetCode", "jane@example.com", mock.AnythingOfType("string"), 5).Return(nil)

		before := time.Now().UTC()
		uc := newAuthUsecaseForTest(mockRepo, mockMailer)
		err := uc.IssueResetToken(ctx, "jane@example.com")
		after := time.Now().UTC()

		assert.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{5}$`), storedToken)
		assert.WithinRange(t, storedExpiry, before.Add(5*time.Minute), after.Add(5*time.Minute))

		// The emailed code is the stored code.
		mockMailer.AssertCalled(t, "SendResetCode", "jane@example.com", storedToken, 5)
	})

	t.Run("Should overwrite the previous code when one is still pending", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockMailer := new(MockMailer)
		mockRepo.On("GetByEmail", ctx, "jane@example.com").
			Return(userWithToken("111111", time.Now().UTC().Add(3*time.Minute)), nil)
		mockRepo.On("SetResetToken", ctx, "jane@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)
		mockMailer.On("SendResetCode", "jane@example.com", mock.AnythingOfType("string"), 5).Return(nil)

		uc := newAuthUsecaseForTest(mockRepo, mockMailer)
		err := uc.IssueResetToken(ctx, "jane@example.com")

		assert.NoError(t, err)
		mockRepo.AssertCalled(t, "SetResetToken", ctx, "jane@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"))
	})

	t.Run("Should fail for an unknown account without storing anything", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockMailer := new(MockMailer)
		mockRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

		uc := newAuthUsecaseForTest(mockRepo, mockMailer)
		err := uc.IssueResetToken(ctx, "ghost@example.com")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "No user found")
		mockRepo.AssertNotCalled(t, "SetResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should surface a delivery failure", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockMailer := new(MockMailer)
		mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(&domain.User{ID: "user1", Email: "jane@example.com"}, nil)
		mockRepo.On("SetResetToken", ctx, "jane@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)
		mockMailer.On("SendResetCode", "jane@example.com", mock.AnythingOfType("string"), 5).Return(assert.AnError)

		uc := newAuthUsecaseForTest(mockRepo, mockMailer)
		err := uc.IssueResetToken(ctx, "jane@example.com")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Failed to deliver")
	})
}

func TestVerifyResetToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report no token when none is pending", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "jane@example.com").
			Return(&domain.User{ID: "user1", Email: "jane@example.com"}, nil)

		uc := newAuthUsecaseForTest(mockRepo, new(MockMailer))
		err := uc.VerifyResetToken(ctx, "jane@example.com", "123456")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "No reset token found")
	})

	t.Run("Should report mismatch before expiry", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		// Stored token is both wrong AND expired: mismatch wins.
		mockRepo.On("GetByEmail", ctx, "jane@example.com").
			Return(userWithToken("654321", time.Now().UTC().Add(-time.Minute)), nil)

		uc := newAuthUsecaseForTest(mockRepo, new(MockMailer))
		err := uc.VerifyResetToken(ctx, "jane@example.com", "123456")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid token")
		mockRepo.AssertNotCalled(t, "ClearResetToken", mock.Anything, mock.Anything)
	})

	t.Run("Should clear the stale record when the matching token expired", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "jane@example.com").
			Return(userWithToken("123456", time.Now().UTC().Add(-time.Minute)), nil)
		mockRepo.On("ClearResetToken", ctx, "jane@example.com").Return(nil)

		uc := newAuthUsecaseForTest(mockRepo, new(MockMailer))
		err := uc.VerifyResetToken(ctx, "jane@example.com", "123456")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
		mockRepo.AssertCalled(t, "ClearResetToken", ctx, "jane@example.com")
	})

	t.Run("Should succeed repeatedly within the validity window", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "jane@example.com").
			Return(userWithToken("123456", time.Now().UTC().Add(3*time.Minute)), nil)

		uc := newAuthUsecaseForTest(mockRepo, new(MockMailer))
		assert.NoError(t, uc.VerifyResetToken(ctx, "jane@example.com", "123456"))
		assert.NoError(t, uc.VerifyResetToken(ctx, "jane@example.com", "123456"))

		// Verification never consumes the token.
		mockRepo.AssertNotCalled(t, "ClearResetToken", mock.Anything, mock.Anything)
	})

	t.Run("Should fail for an unknown account", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

		uc := newAuthUsecaseForTest(mockRepo, new(MockMailer))
		err := uc.VerifyResetToken(ctx, "ghost@example.com", "123456")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "No user found")
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Should hash the new password, update it and clear the token", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "jane@example.com").
			Return(userWithToken("123456", time.Now().UTC().Add(3*time.Minute)), nil)
		mockRepo.On("UpdateCredential", ctx, "jane@example.com", "hashed:NewPass1").Return(nil)
		mockRepo.On("ClearResetToken", ctx, "jane@example.com").Return(nil)

		uc := newAuthUsecaseForTest(mockRepo, new(MockMailer))
		err := uc.ResetPassword(ctx, "jane@example.com", "123456", "NewPass1")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should leave the credential unchanged on mismatch", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "jane@example.com").
			Return(userWithToken("654321", time.Now().UTC().Add(3*time.Minute)), nil)

		uc := newAuthUsecaseForTest(mockRepo, new(MockMailer))
		err := uc.ResetPassword(ctx, "jane@example.com", "123456", "NewPass1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid token")
		mockRepo.AssertNotCalled(t, "UpdateCredential", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "ClearResetToken", mock.Anything, mock.Anything)
	})

	t.Run("Should reject an expired token without clearing it", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "jane@example.com").
			Return(userWithToken("123456", time.Now().UTC().Add(-time.Minute)), nil)

		uc := newAuthUsecaseForTest(mockRepo, new(MockMailer))
		err := uc.ResetPassword(ctx, "jane@example.com", "123456", "NewPass1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
		// The stale record stays; only verify cleans it up.
		mockRepo.AssertNotCalled(t, "ClearResetToken", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "UpdateCredential", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should stay expired no matter how long after the deadline", func(t *testing.T) {
		for _, late := range []time.Duration{time.Minute, 90 * time.Minute, 24 * time.Hour} {
			mockRepo := new(MockUserRepo)
			mockRepo.On("GetByEmail", ctx, "jane@example.com").
				Return(userWithToken("123456", time.Now().UTC().Add(-late)), nil)

			uc := newAuthUsecaseForTest(mockRepo, new(MockMailer))
			err := uc.ResetPassword(ctx, "jane@example.com", "123456", "NewPass1")

			assert.Error(t, err)
			assert.Contains(t, err.Error(), "expired")
		}
	})
}
