package domain

import (
	"context"
	"time"
)

type Admin struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminUser is the dashboard listing row: a non-admin account plus its
// resume count.
type AdminUser struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	TotalResumes int64     `json:"total_resumes"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminResume is a resume flattened for the admin dashboard.
type AdminResume struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	Title        string       `json:"title"`
	Email        string       `json:"email"`
	ImageID      string       `json:"image_id"`
	PersonalInfo PersonalInfo `json:"personal_info"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Skills       []string     `json:"skills"`
	Projects     []Project    `json:"projects"`
	Metadata     struct {
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	} `json:"metadata"`
}

type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	ListUsers(ctx context.Context) ([]AdminUser, error)
}

type AdminUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*Admin, error)
	Login(ctx context.Context, email, password string) (string, *Admin, error)
	ListUsers(ctx context.Context) ([]AdminUser, error)
	ListResumes(ctx context.Context) ([]AdminResume, error)
	ListLoginLogs(ctx context.Context) ([]LoginLog, error)
	DeleteUser(ctx context.Context, userID string) error
}
