package db

import (
	"time"

	"github.com/jonathan/interview-scorecard/internal/types"
)

// UserRecord is a stored user including credentials
type UserRecord struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         types.Role `json:"role"`
	PasswordHash string     `json:"-" db:"password_hash"` // Never serialize to JSON
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToUser returns the public view of the record
func (u *UserRecord) ToUser() *types.User {
	return &types.User{
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Job is an open position that interviews are held for
type Job struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
