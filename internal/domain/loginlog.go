package domain

import (
	"context"
	"time"
)

// LoginLog records a single login attempt.
type LoginLog struct {
	ID         int64     `json:"id"`
	UserID     *string   `json:"user_id"`
	Email      string    `json:"email"`
	IPAddress  string    `json:"ip_address"`
	Successful bool      `json:"login_successful"`
	CreatedAt  time.Time `json:"timestamp"`
}

type LoginLogRepository interface {
	Insert(ctx context.Context, entry *LoginLog) error
	List(ctx context.Context) ([]LoginLog, error)
}
