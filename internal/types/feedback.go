package types

import "time"

// InterviewFeedback is one reviewer's rating of one skill in a technical round.
// (InterviewID, UserID, SkillID) is the natural key.
type InterviewFeedback struct {
	InterviewID     int64     `json:"interview_id" validate:"required,gt=0"`
	UserID          int64     `json:"user_id" validate:"required,gt=0"`
	SkillID         int64     `json:"skill_id" validate:"required,gt=0"`
	ConceptRating   float64   `json:"concept_rating" validate:"min=0,max=5"`
	TechnicalRating float64   `json:"technical_rating" validate:"min=0,max=5"`
	YearsExperience int       `json:"years_experience" validate:"min=0"`
	Comments        string    `json:"comments,omitempty"`
	Version         int       `json:"version,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// HrReview is one reviewer's assessment in an HR round.
// (InterviewID, UserID) is the natural key.
type HrReview struct {
	InterviewID             int64     `json:"interview_id" validate:"required,gt=0"`
	UserID                  int64     `json:"user_id" validate:"required,gt=0"`
	CommunicationRating     float64   `json:"communication_rating" validate:"min=0,max=5"`
	TeamworkRating          float64   `json:"teamwork_rating" validate:"min=0,max=5"`
	AdaptabilityRating      float64   `json:"adaptability_rating" validate:"min=0,max=5"`
	LeadershipRating        float64   `json:"leadership_rating" validate:"min=0,max=5"`
	OverallRating           float64   `json:"overall_rating" validate:"min=0,max=5"`
	Strengths               string    `json:"strengths,omitempty"`
	AreasForImprovement     string    `json:"areas_for_improvement,omitempty"`
	TrainingRecommendations string    `json:"training_recommendations,omitempty"`
	CareerPathNotes         string    `json:"career_path_notes,omitempty"`
	Version                 int       `json:"version,omitempty"`
	UpdatedAt               time.Time `json:"updated_at,omitempty"`
}

// FeedbackBatch is the body of PUT /interviews/{id}/feedback.
type FeedbackBatch struct {
	Feedbacks []InterviewFeedback `json:"feedbacks" validate:"required,min=1,dive"`
}
