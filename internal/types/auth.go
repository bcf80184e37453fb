// Package types provides type definitions for structured data used throughout the interview scorecard system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Role is a user's role in the hiring workflow.
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleHR          Role = "HR"
	RoleRecruiter   Role = "Recruiter"
	RoleInterviewer Role = "Interviewer"
	RoleReviewer    Role = "Reviewer"
	RoleViewer      Role = "Viewer"
	RoleCandidate   Role = "Candidate"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleRecruiter, RoleInterviewer, RoleReviewer, RoleViewer, RoleCandidate:
		return true
	default:
		return false
	}
}

// CanReview reports whether users with this role may submit ratings.
func (r Role) CanReview() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleInterviewer, RoleReviewer:
		return true
	default:
		return false
	}
}

// RegistrationRole is the role every self-registered user starts with.
const RegistrationRole = RoleViewer

// CreateUserRequest represents the request to create a new user with password authentication.
// It carries no role; new users get RegistrationRole and an Admin promotes them.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserRoleRequest assigns a role to an existing user.
type UpdateUserRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=Admin HR Recruiter Interviewer Reviewer Viewer Candidate"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User is a reviewer or staff member as exposed by the API.
type User struct {
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Role      Role      `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

var validate = validator.New()

// Validate checks v against its validate struct tags.
func Validate(v any) error {
	return validate.Struct(v)
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the UpdateUserRoleRequest using the validator.
func (r *UpdateUserRoleRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}
