// Package feedback holds a reviewer's skill review form and the upsert rules for stored feedback.
package feedback

import (
	"fmt"

	"github.com/jonathan/interview-scorecard/internal/scoring"
	"github.com/jonathan/interview-scorecard/internal/types"
)

// ExtraOutcome describes what an extra-skill toggle did.
type ExtraOutcome int

const (
	// ExtraAdded means the skill was appended to the extra skills
	ExtraAdded ExtraOutcome = iota
	// ExtraRemoved means the skill was already an extra skill and was toggled out
	ExtraRemoved
	// ExtraRejected means the skill is already on the job and nothing changed
	ExtraRejected
)

func (o ExtraOutcome) String() string {
	switch o {
	case ExtraAdded:
		return "added"
	case ExtraRemoved:
		return "removed"
	case ExtraRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Warning is a user-facing notice for an operation that was refused without error.
type Warning struct {
	SkillID int64  `json:"skill_id"`
	Message string `json:"message"`
}

// Form is one reviewer's skill review sitting for one interview.
type Form struct {
	InterviewID int64
	UserID      int64
	CandidateID string

	required  []types.SkillWithReview
	preferred []types.SkillWithReview
	extra     []types.SkillWithReview
	jobSkills map[int64]types.SkillType
}

// NewForm lays out the job's required and preferred skills for review.
func NewForm(interviewID, userID int64, candidateID string, jobSkills []types.JobSkill) *Form {
	f := &Form{
		InterviewID: interviewID,
		UserID:      userID,
		CandidateID: candidateID,
		jobSkills:   make(map[int64]types.SkillType, len(jobSkills)),
	}

	for _, js := range jobSkills {
		if _, dup := f.jobSkills[js.SkillID]; dup {
			continue
		}
		f.jobSkills[js.SkillID] = js.SkillType
		row := types.SkillWithReview{SkillID: js.SkillID, SkillName: js.SkillName}
		if js.SkillType == types.SkillTypePreferred {
			f.preferred = append(f.preferred, row)
		} else {
			f.required = append(f.required, row)
		}
	}

	return f
}

// Load restores ratings and extra skills from a previous submission by the same reviewer.
// Ratings for skills no longer on the job are dropped.
func (f *Form) Load(prev *types.InterviewSkillSubmission) {
	if prev == nil {
		return
	}

	rated := make(map[int64]types.SkillWithReview)
	for _, s := range prev.RequiredSkills {
		rated[s.SkillID] = s
	}
	for _, s := range prev.PreferredSkills {
		rated[s.SkillID] = s
	}
	for i := range f.required {
		if s, ok := rated[f.required[i].SkillID]; ok {
			f.required[i] = mergeName(s, f.required[i].SkillName)
		}
	}
	for i := range f.preferred {
		if s, ok := rated[f.preferred[i].SkillID]; ok {
			f.preferred[i] = mergeName(s, f.preferred[i].SkillName)
		}
	}

	f.extra = f.extra[:0]
	for _, s := range prev.ExtraSkills {
		if _, onJob := f.jobSkills[s.SkillID]; onJob || f.extraIndex(s.SkillID) >= 0 {
			continue
		}
		f.extra = append(f.extra, s)
	}
}

func mergeName(s types.SkillWithReview, name string) types.SkillWithReview {
	if s.SkillName == "" {
		s.SkillName = name
	}
	return s
}

func (f *Form) extraIndex(skillID int64) int {
	for i, s := range f.extra {
		if s.SkillID == skillID {
			return i
		}
	}
	return -1
}

// AddExtraSkill toggles a catalog skill in the extra skills. A skill already on the
// job's required/preferred list is refused with a warning and leaves the form unchanged.
func (f *Form) AddExtraSkill(skill types.Skill) (ExtraOutcome, *Warning) {
	if kind, onJob := f.jobSkills[skill.SkillID]; onJob {
		return ExtraRejected, &Warning{
			SkillID: skill.SkillID,
			Message: fmt.Sprintf("%s is already a %s skill for this job", displayName(skill), kind),
		}
	}

	if i := f.extraIndex(skill.SkillID); i >= 0 {
		f.extra = append(f.extra[:i], f.extra[i+1:]...)
		return ExtraRemoved, nil
	}

	f.extra = append(f.extra, types.SkillWithReview{SkillID: skill.SkillID, SkillName: skill.SkillName})
	return ExtraAdded, nil
}

// AddExtraSkillFromClaim toggles a skill the candidate declared on their profile.
func (f *Form) AddExtraSkillFromClaim(claim types.CandidateSkillClaim) (ExtraOutcome, *Warning) {
	return f.AddExtraSkill(types.Skill{SkillID: claim.SkillID, SkillName: claim.SkillName})
}

func displayName(skill types.Skill) string {
	if skill.SkillName != "" {
		return skill.SkillName
	}
	return fmt.Sprintf("skill %d", skill.SkillID)
}

// Rate records the reviewer's ratings for a skill already on the form.
func (f *Form) Rate(review types.SkillWithReview) error {
	for _, list := range [][]types.SkillWithReview{f.required, f.preferred, f.extra} {
		for i := range list {
			if list[i].SkillID == review.SkillID {
				if review.SkillName == "" {
					review.SkillName = list[i].SkillName
				}
				list[i] = review
				return nil
			}
		}
	}
	return &ErrSkillNotOnForm{SkillID: review.SkillID}
}

// RequiredSkills returns a copy of the required skills.
func (f *Form) RequiredSkills() []types.SkillWithReview {
	return append([]types.SkillWithReview(nil), f.required...)
}

// PreferredSkills returns a copy of the preferred skills.
func (f *Form) PreferredSkills() []types.SkillWithReview {
	return append([]types.SkillWithReview(nil), f.preferred...)
}

// ExtraSkills returns a copy of the extra skills.
func (f *Form) ExtraSkills() []types.SkillWithReview {
	return append([]types.SkillWithReview(nil), f.extra...)
}

// Submission builds the payload posted for this reviewer and interview.
func (f *Form) Submission() types.InterviewSkillSubmission {
	sub := types.InterviewSkillSubmission{
		InterviewID:     f.InterviewID,
		UserID:          f.UserID,
		CandidateID:     f.CandidateID,
		RequiredSkills:  f.RequiredSkills(),
		PreferredSkills: f.PreferredSkills(),
		ExtraSkills:     f.ExtraSkills(),
	}
	sub.TotalScore = scoring.SkillReviewTotal(sub.AllSkills())
	return sub
}
