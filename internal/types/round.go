package types

// RoundData is everything needed to score one interview round of one candidate.
type RoundData struct {
	Interview          *Interview          `json:"interview,omitempty"`
	Candidate          Candidate           `json:"candidate"`
	InterviewType      InterviewType       `json:"interviewType"`
	Users              []User              `json:"users"`
	InterviewFeedbacks []InterviewFeedback `json:"interviewFeedbacks"`
	HrReviews          []HrReview          `json:"hrReviews"`
}

// RoundQuery identifies an evaluation context.
type RoundQuery struct {
	JobID       int64  `json:"job_id" validate:"required,gt=0"`
	CandidateID string `json:"candidate_id" validate:"required"`
	RoundNumber int    `json:"round_number" validate:"required,min=1"`
}
