package usecase_test

import (
	"context"
	"time"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) UpdateCredential(ctx context.Context, email, passwordHash string) error {
	return m.Called(ctx, email, passwordHash).Error(0)
}
func (m *MockUserRepo) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	return m.Called(ctx, email, token, expiresAt).Error(0)
}
func (m *MockUserRepo) ClearResetToken(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockResumeRepo struct {
	mock.Mock
}

func (m *MockResumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	return m.Called(ctx, resume).Error(0)
}
func (m *MockResumeRepo) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}
func (m *MockResumeRepo) ListByUserID(ctx context.Context, userID string) ([]domain.Resume, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resume), args.Error(1)
}
func (m *MockResumeRepo) ListByEmail(ctx context.Context, email string) ([]domain.Resume, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resume), args.Error(1)
}
func (m *MockResumeRepo) ListAll(ctx context.Context) ([]domain.Resume, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resume), args.Error(1)
}
func (m *MockResumeRepo) Update(ctx context.Context, resume *domain.Resume) error {
	return m.Called(ctx, resume).Error(0)
}
func (m *MockResumeRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockResumeRepo) DeleteByUserID(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockResumeRepo) SaveImage(ctx context.Context, img *domain.ResumeImage) error {
	return m.Called(ctx, img).Error(0)
}
func (m *MockResumeRepo) GetImage(ctx context.Context, id string) (*domain.ResumeImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResumeImage), args.Error(1)
}
func (m *MockResumeRepo) SetImageID(ctx context.Context, resumeID, imageID string) error {
	return m.Called(ctx, resumeID, imageID).Error(0)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	return m.Called(ctx, admin).Error(0)
}
func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAdminRepo) ListUsers(ctx context.Context) ([]domain.AdminUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdminUser), args.Error(1)
}

type MockLoginLogRepo struct {
	mock.Mock
}

func (m *MockLoginLogRepo) Insert(ctx context.Context, entry *domain.LoginLog) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockLoginLogRepo) List(ctx context.Context) ([]domain.LoginLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoginLog), args.Error(1)
}

// Mock Collaborators

// FakeHasher marks hashes with a prefix so tests can assert on them without
// real bcrypt cost.
type FakeHasher struct{}

func (FakeHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}
func (FakeHasher) Verify(plaintext, digest string) bool {
	return digest == "hashed:"+plaintext
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendResetCode(to, code string, expiryMinutes int) error {
	return m.Called(to, code, expiryMinutes).Error(0)
}
func (m *MockMailer) IsConfigured() bool {
	return m.Called().Bool(0)
}

type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, idToken string) (*domain.GoogleClaims, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleClaims), args.Error(1)
}

type MockParser struct {
	mock.Mock
}

func (m *MockParser) ParseResume(ctx context.Context, text string) (*domain.ParsedResume, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedResume), args.Error(1)
}
func (m *MockParser) IsConfigured() bool {
	return m.Called().Bool(0)
}
