package usecase_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
	"github.com/AbdulBasithMohammed/CVPro/internal/usecase"
	"github.com/AbdulBasithMohammed/CVPro/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	input := domain.RegisterInput{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Password:  "StrongPass1",
	}

	t.Run("Should create a user with a generated username and hashed password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "john@example.com").Return(nil, nil)
		mockRepo.On("UsernameExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		uc := newAuthUsecaseForTest(mockRepo, new(MockMailer))
		user, err := uc.Register(ctx, input)

		assert.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^johndoe\d{4}$`), user.Username)
		assert.Equal(t, "hashed:StrongPass1", user.Password)
		assert.NotEmpty(t, user.ID)
	})

	t.Run("Should reject a duplicate email", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "john@example.com").
			Return(&domain.User{ID: "existing", Email: "john@example.com"}, nil)

		uc := newAuthUsecaseForTest(mockRepo, new(MockMailer))
		_, err := uc.Register(ctx, input)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should retry allocation on insert collision in strict mode", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "john@example.com").Return(nil, nil)
		mockRepo.On("UsernameExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(domain.ErrUsernameTaken).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		uc := usecase.NewAuthUsecase(
			mockRepo, nil, FakeHasher{}, new(MockMailer), new(MockGoogleVerifier),
			auth.NewTokenManager("test-secret"), true,
		)
		user, err := uc.Register(ctx, input)

		assert.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^johndoe\d{4}$`), user.Username)
		mockRepo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("Should surface the collision without strict mode", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "john@example.com").Return(nil, nil)
		mockRepo.On("UsernameExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(domain.ErrUsernameTaken)

		uc := newAuthUsecaseForTest(mockRepo, new(MockMailer))
		_, err := uc.Register(ctx, input)

		assert.Error(t, err)
		mockRepo.AssertNumberOfCalls(t, "Create", 1)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	stored := &domain.User{
		ID:       "user1",
		Email:    "john@example.com",
		Password: "hashed:StrongPass1",
	}

	newUC := func(userRepo *MockUserRepo, logs *MockLoginLogRepo) domain.AuthUsecase {
		return usecase.NewAuthUsecase(
			userRepo, logs, FakeHasher{}, new(MockMailer), new(MockGoogleVerifier),
			auth.NewTokenManager("test-secret"), false,
		)
	}

	t.Run("Should return a parseable token and log the attempt", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockLogs := new(MockLoginLogRepo)
		mockRepo.On("GetByEmail", ctx, "john@example.com").Return(stored, nil)
		mockLogs.On("Insert", ctx, mock.AnythingOfType("*domain.LoginLog")).Return(nil).Run(func(args mock.Arguments) {
			entry := args.Get(1).(*domain.LoginLog)
			assert.True(t, entry.Successful)
			assert.Equal(t, "1.2.3.4", entry.IPAddress)
		})

		uc := newUC(mockRepo, mockLogs)
		token, user, err := uc.Login(ctx, "john@example.com", "StrongPass1", "1.2.3.4")

		assert.NoError(t, err)
		assert.Equal(t, "user1", user.ID)

		claims, err := auth.NewTokenManager("test-secret").Parse(token)
		assert.NoError(t, err)
		assert.Equal(t, "user1", claims.Subject)
		assert.Equal(t, domain.RoleUser, claims.Role)
	})

	t.Run("Should reject a wrong password and log the failure", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockLogs := new(MockLoginLogRepo)
		mockRepo.On("GetByEmail", ctx, "john@example.com").Return(stored, nil)
		mockLogs.On("Insert", ctx, mock.AnythingOfType("*domain.LoginLog")).Return(nil).Run(func(args mock.Arguments) {
			entry := args.Get(1).(*domain.LoginLog)
			assert.False(t, entry.Successful)
		})

		uc := newUC(mockRepo, mockLogs)
		_, _, err := uc.Login(ctx, "john@example.com", "WrongPass1", "1.2.3.4")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("Should use the same message for an unknown email", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockLogs := new(MockLoginLogRepo)
		mockRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)
		mockLogs.On("Insert", ctx, mock.AnythingOfType("*domain.LoginLog")).Return(nil)

		uc := newUC(mockRepo, mockLogs)
		_, _, err := uc.Login(ctx, "ghost@example.com", "StrongPass1", "1.2.3.4")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})
}

func TestLoginWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create an account on first sign-in", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockGoogle := new(MockGoogleVerifier)
		mockGoogle.On("Verify", ctx, "valid-id-token").Return(&domain.GoogleClaims{
			Email:      "jane@example.com",
			GivenName:  "Jane",
			FamilyName: "Doe",
		}, nil)
		mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(nil, nil)
		mockRepo.On("UsernameExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			created := args.Get(1).(*domain.User)
			assert.Regexp(t, regexp.MustCompile(`^janedoe\d{4}$`), created.Username)
		})

		uc := usecase.NewAuthUsecase(
			mockRepo, nil, FakeHasher{}, new(MockMailer), mockGoogle,
			auth.NewTokenManager("test-secret"), false,
		)
		token, user, err := uc.LoginWithGoogle(ctx, "valid-id-token", "1.2.3.4")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "jane@example.com", user.Email)
		mockRepo.AssertCalled(t, "Create", ctx, mock.AnythingOfType("*domain.User"))
	})

	t.Run("Should reject an invalid ID token", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockGoogle := new(MockGoogleVerifier)
		mockGoogle.On("Verify", ctx, "bad-token").Return(nil, assert.AnError)

		uc := usecase.NewAuthUsecase(
			mockRepo, nil, FakeHasher{}, new(MockMailer), mockGoogle,
			auth.NewTokenManager("test-secret"), false,
		)
		_, _, err := uc.LoginWithGoogle(ctx, "bad-token", "1.2.3.4")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid Google token")
	})
}
