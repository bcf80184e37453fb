package types

// Skill is a catalog entry referenced by job postings and candidate skill records.
type Skill struct {
	SkillID   int64  `json:"skill_id"`
	SkillName string `json:"skill_name" validate:"required,min=1,max=100"`
}

// SkillType tags how important a skill is for a particular job.
type SkillType string

const (
	// SkillTypeRequired marks a skill the job requires
	SkillTypeRequired SkillType = "Required"
	// SkillTypePreferred marks a nice-to-have skill
	SkillTypePreferred SkillType = "Preferred"
)

// IsValid reports whether t is a known skill type.
func (t SkillType) IsValid() bool {
	return t == SkillTypeRequired || t == SkillTypePreferred
}

// JobSkill associates a skill with a job. (job_id, skill_id) is unique per job.
type JobSkill struct {
	JobID     int64     `json:"job_id,omitempty"`
	SkillID   int64     `json:"skill_id" validate:"required,gt=0"`
	SkillName string    `json:"skill_name,omitempty"`
	SkillType SkillType `json:"skill_type" validate:"required,oneof=Required Preferred"`
}

// CandidateSkillClaim is a skill the candidate says they have, independent of any job.
type CandidateSkillClaim struct {
	SkillID   int64  `json:"skill_id"`
	SkillName string `json:"skill_name"`
}

// ReplaceJobSkillsRequest is the body of PUT /jobs/{id}/skills.
type ReplaceJobSkillsRequest struct {
	Skills []JobSkill `json:"skills" validate:"dive"`
}

// CreateSkillRequest is the body of POST /skills.
type CreateSkillRequest struct {
	SkillName string `json:"skill_name" validate:"required,min=1,max=100"`
}

// ToggleExtraSkillRequest is the body of POST /interviews/{id}/extra-skills.
type ToggleExtraSkillRequest struct {
	SkillID   int64  `json:"skill_id" validate:"required,gt=0"`
	SkillName string `json:"skill_name,omitempty"`
}
