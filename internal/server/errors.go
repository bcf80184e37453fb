package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/interview-scorecard/internal/db"
	"github.com/jonathan/interview-scorecard/internal/feedback"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrNotFound indicates a referenced record does not exist
type ErrNotFound struct {
	Resource string
	ID       any
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Resource, e.ID)
}

// ErrForbidden indicates the caller may not act on the record
type ErrForbidden struct {
	Reason string
}

func (e *ErrForbidden) Error() string {
	return "forbidden: " + e.Reason
}

// ErrConflict indicates the request contradicts the current state
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists *ErrEmailAlreadyExists
		invalid     *ErrInvalidCredentials
		notFound    *ErrNotFound
		forbidden   *ErrForbidden
		conflict    *ErrConflict
		validation  *ErrValidation
		notOnForm   *feedback.ErrSkillNotOnForm
		dupExtra    *feedback.ErrDuplicateExtraSkill
		unknown     *feedback.ErrUnknownSkill
		repeated    *feedback.ErrRepeatedSkill
	)
	switch {
	case errors.As(err, &emailExists), errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &invalid):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound), errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &notOnForm), errors.As(err, &dupExtra),
		errors.As(err, &unknown), errors.As(err, &repeated):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
