package domain

import (
	"context"
	"time"
)

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Linkedin string `json:"linkedin"`
	Summary  string `json:"summary"`
}

type Education struct {
	Institution    string `json:"institution"`
	Course         string `json:"course"`
	GraduationDate string `json:"graduation_date"`
	Location       string `json:"location"`
}

type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Description string `json:"description"`
	Years       string `json:"years"`
}

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// ResumeDetails is the structured document body of a resume.
type ResumeDetails struct {
	Personal   PersonalInfo `json:"personal"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Skills     []string     `json:"skills"`
	Projects   []Project    `json:"projects"`
}

type Resume struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Title     string        `json:"title"`
	Email     string        `json:"email"`
	ImageID   *string       `json:"image_id,omitempty"`
	Details   ResumeDetails `json:"details"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ParsedResume is the fixed schema the AI completion service is asked to
// produce from free-text resumes.
type ParsedResume struct {
	ID               *string      `json:"id"`
	ResumeTemplateID *string      `json:"resume_template_id"`
	Name             string       `json:"name"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone"`
	Summary          *string      `json:"summary"`
	Experience       []Experience `json:"experience"`
	Skills           []string     `json:"skills"`
	Projects         []Project    `json:"projects"`
}

type ResumeImage struct {
	ID          string
	ContentType string
	Data        []byte
}

type ResumeRepository interface {
	Create(ctx context.Context, resume *Resume) error
	GetByID(ctx context.Context, id string) (*Resume, error)
	ListByUserID(ctx context.Context, userID string) ([]Resume, error)
	ListByEmail(ctx context.Context, email string) ([]Resume, error)
	ListAll(ctx context.Context) ([]Resume, error)
	Update(ctx context.Context, resume *Resume) error
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
	SaveImage(ctx context.Context, img *ResumeImage) error
	GetImage(ctx context.Context, id string) (*ResumeImage, error)
	SetImageID(ctx context.Context, resumeID, imageID string) error
}

// ResumeParser is the external AI text-completion collaborator.
type ResumeParser interface {
	ParseResume(ctx context.Context, text string) (*ParsedResume, error)
	IsConfigured() bool
}

type ResumeUsecase interface {
	Create(ctx context.Context, resume *Resume) (*Resume, error)
	GetByID(ctx context.Context, id string) (*Resume, error)
	ListMine(ctx context.Context) ([]Resume, error)
	ListByEmail(ctx context.Context, email string) ([]Resume, error)
	Update(ctx context.Context, resume *Resume) error
	Delete(ctx context.Context, id string) error
	AttachImage(ctx context.Context, resumeID string, data []byte) (string, error)
	GetImage(ctx context.Context, imageID string) (*ResumeImage, error)
	Parse(ctx context.Context, text string) (*ParsedResume, error)
}
