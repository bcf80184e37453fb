package types

import (
	"strings"
	"time"
)

// RoundCategory decides which scoring formula applies to an interview round.
type RoundCategory string

const (
	// RoundTechnical rounds are scored from per-skill concept/technical ratings
	RoundTechnical RoundCategory = "Technical"
	// RoundHR rounds are scored from a weighted HR review
	RoundHR RoundCategory = "HR"
)

// IsValid reports whether c is a known round category.
func (c RoundCategory) IsValid() bool {
	return c == RoundTechnical || c == RoundHR
}

// CategoryForName derives a category from a round display name. A name containing
// "hr" in any case is an HR round. Only used when an interview type is created
// without an explicit category; scoring reads the stored category.
func CategoryForName(name string) RoundCategory {
	if strings.Contains(strings.ToLower(name), "hr") {
		return RoundHR
	}
	return RoundTechnical
}

// InterviewType labels a round, e.g. "Technical Round 1" or "HR Discussion".
type InterviewType struct {
	InterviewTypeID    int64         `json:"interview_type_id"`
	InterviewRoundName string        `json:"interview_round_name" validate:"required,min=1,max=100"`
	Category           RoundCategory `json:"category"`
}

// InterviewStatus is the recorded state of an interview round.
type InterviewStatus string

const (
	StatusScheduled   InterviewStatus = "Scheduled"
	StatusRescheduled InterviewStatus = "Rescheduled"
	StatusSelected    InterviewStatus = "Selected"
	StatusRejected    InterviewStatus = "Rejected"
)

// IsValid reports whether s is a known interview status.
func (s InterviewStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusRescheduled, StatusSelected, StatusRejected:
		return true
	default:
		return false
	}
}

// Interview is one round of one candidate's process for one job.
type Interview struct {
	InterviewID    int64           `json:"interview_id"`
	JobID          int64           `json:"job_id"`
	RoundNumber    int             `json:"round_number"`
	CandidateID    string          `json:"candidate_id"`
	InterviewType  InterviewType   `json:"interview_type"`
	Status         InterviewStatus `json:"status"`
	InterviewerIDs []int64         `json:"interviewer_ids"`
	ResultOf       *int64          `json:"result_of,omitempty"`
	ScheduledAt    *time.Time      `json:"scheduled_at,omitempty"`
}

// EligibleAfter reports whether this round may go ahead given the round it chains to.
// Rounds without a result_of reference are always eligible.
func (i *Interview) EligibleAfter(prior *Interview) bool {
	if i.ResultOf == nil {
		return true
	}
	if prior == nil || prior.InterviewID != *i.ResultOf {
		return false
	}
	return prior.Status == StatusSelected
}

// CreateInterviewRequest schedules a new interview round.
type CreateInterviewRequest struct {
	JobID           int64      `json:"job_id" validate:"required,gt=0"`
	RoundNumber     int        `json:"round_number" validate:"required,min=1"`
	CandidateID     string     `json:"candidate_id" validate:"required"`
	InterviewTypeID int64      `json:"interview_type_id" validate:"required,gt=0"`
	InterviewerIDs  []int64    `json:"interviewer_ids" validate:"required,min=1,dive,gt=0"`
	ResultOf        *int64     `json:"result_of,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
}

// UpdateInterviewStatusRequest records the outcome of a round.
type UpdateInterviewStatusRequest struct {
	Status InterviewStatus `json:"status" validate:"required,oneof=Scheduled Rescheduled Selected Rejected"`
}

// Candidate is the person being interviewed.
type Candidate struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
}

// CreateInterviewTypeRequest defines a round label. Category is optional; when empty it
// is derived once from the name.
type CreateInterviewTypeRequest struct {
	InterviewRoundName string        `json:"interview_round_name" validate:"required,min=1,max=100"`
	Category           RoundCategory `json:"category,omitempty" validate:"omitempty,oneof=Technical HR"`
}

// InterviewType resolves the request into a type, applying the name rule when no
// category was given.
func (r *CreateInterviewTypeRequest) InterviewType() InterviewType {
	category := r.Category
	if category == "" {
		category = CategoryForName(r.InterviewRoundName)
	}
	return InterviewType{InterviewRoundName: r.InterviewRoundName, Category: category}
}
