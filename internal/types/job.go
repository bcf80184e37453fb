package types

// CreateJobRequest is the body of POST /jobs.
type CreateJobRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// CreateCandidateRequest registers a candidate together with the skills they claim.
type CreateCandidateRequest struct {
	CandidateID string  `json:"candidate_id" validate:"required,max=64"`
	Name        string  `json:"name" validate:"required,min=1"`
	Email       string  `json:"email,omitempty" validate:"omitempty,email"`
	SkillIDs    []int64 `json:"skill_ids,omitempty" validate:"dive,gt=0"`
}

// Candidate returns the candidate record of the request.
func (r *CreateCandidateRequest) Candidate() Candidate {
	return Candidate{CandidateID: r.CandidateID, Name: r.Name, Email: r.Email}
}
