package types

import "time"

// SkillWithReview is a skill on the review form together with the reviewer's ratings.
type SkillWithReview struct {
	SkillID         int64   `json:"skill_id" validate:"required,gt=0"`
	SkillName       string  `json:"skill_name"`
	ConceptRating   float64 `json:"concept_rating" validate:"min=0,max=5"`
	TechnicalRating float64 `json:"technical_rating" validate:"min=0,max=5"`
	YearsExperience int     `json:"years_experience" validate:"min=0"`
	Comments        string  `json:"comments,omitempty"`
}

// InterviewSkillSubmission is the payload one reviewer posts for one interview.
// Resubmission for the same (InterviewID, UserID) replaces the stored lists and score.
type InterviewSkillSubmission struct {
	InterviewID     int64             `json:"interview_id" validate:"required,gt=0"`
	UserID          int64             `json:"user_id" validate:"required,gt=0"`
	CandidateID     string            `json:"candidate_id" validate:"required"`
	TotalScore      float64           `json:"total_score"`
	RequiredSkills  []SkillWithReview `json:"required_skills" validate:"dive"`
	PreferredSkills []SkillWithReview `json:"preferred_skills" validate:"dive"`
	ExtraSkills     []SkillWithReview `json:"extra_skills" validate:"dive"`
	Version         int               `json:"version,omitempty"`
	UpdatedAt       time.Time         `json:"updated_at,omitempty"`
}

// AllSkills returns required, preferred and extra skills in that order.
func (s *InterviewSkillSubmission) AllSkills() []SkillWithReview {
	all := make([]SkillWithReview, 0, len(s.RequiredSkills)+len(s.PreferredSkills)+len(s.ExtraSkills))
	all = append(all, s.RequiredSkills...)
	all = append(all, s.PreferredSkills...)
	all = append(all, s.ExtraSkills...)
	return all
}

// Feedbacks expands the submission into one InterviewFeedback row per skill.
func (s *InterviewSkillSubmission) Feedbacks() []InterviewFeedback {
	skills := s.AllSkills()
	rows := make([]InterviewFeedback, 0, len(skills))
	for _, sk := range skills {
		rows = append(rows, InterviewFeedback{
			InterviewID:     s.InterviewID,
			UserID:          s.UserID,
			SkillID:         sk.SkillID,
			ConceptRating:   sk.ConceptRating,
			TechnicalRating: sk.TechnicalRating,
			YearsExperience: sk.YearsExperience,
			Comments:        sk.Comments,
		})
	}
	return rows
}
