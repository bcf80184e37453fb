package feedback

import (
	"testing"

	"github.com/jonathan/interview-scorecard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobSkills() []types.JobSkill {
	return []types.JobSkill{
		{SkillID: 1, SkillName: "Go", SkillType: types.SkillTypeRequired},
		{SkillID: 2, SkillName: "PostgreSQL", SkillType: types.SkillTypeRequired},
		{SkillID: 3, SkillName: "Kubernetes", SkillType: types.SkillTypePreferred},
	}
}

func TestNewForm_SplitsJobSkills(t *testing.T) {
	f := NewForm(10, 7, "cand-1", jobSkills())

	assert.Len(t, f.RequiredSkills(), 2)
	assert.Len(t, f.PreferredSkills(), 1)
	assert.Empty(t, f.ExtraSkills())
	assert.Equal(t, "Kubernetes", f.PreferredSkills()[0].SkillName)
}

func TestNewForm_IgnoresDuplicateJobSkill(t *testing.T) {
	skills := append(jobSkills(), types.JobSkill{SkillID: 1, SkillName: "Go", SkillType: types.SkillTypePreferred})
	f := NewForm(10, 7, "cand-1", skills)

	assert.Len(t, f.RequiredSkills(), 2)
	assert.Len(t, f.PreferredSkills(), 1)
}

func TestAddExtraSkill_RejectsJobSkill(t *testing.T) {
	f := NewForm(10, 7, "cand-1", jobSkills())
	_, warn := f.AddExtraSkill(types.Skill{SkillID: 9, SkillName: "Redis"})
	require.Nil(t, warn)
	before := len(f.ExtraSkills())

	for _, skill := range []types.Skill{{SkillID: 1, SkillName: "Go"}, {SkillID: 3, SkillName: "Kubernetes"}} {
		outcome, warn := f.AddExtraSkill(skill)

		assert.Equal(t, ExtraRejected, outcome)
		require.NotNil(t, warn)
		assert.Equal(t, skill.SkillID, warn.SkillID)
		assert.Contains(t, warn.Message, skill.SkillName)
		assert.Equal(t, before, len(f.ExtraSkills()))
	}
}

func TestAddExtraSkill_Toggles(t *testing.T) {
	f := NewForm(10, 7, "cand-1", jobSkills())

	outcome, warn := f.AddExtraSkill(types.Skill{SkillID: 9, SkillName: "Redis"})
	assert.Equal(t, ExtraAdded, outcome)
	assert.Nil(t, warn)
	require.Len(t, f.ExtraSkills(), 1)

	outcome, warn = f.AddExtraSkill(types.Skill{SkillID: 9, SkillName: "Redis"})
	assert.Equal(t, ExtraRemoved, outcome)
	assert.Nil(t, warn)
	assert.Empty(t, f.ExtraSkills())
}

func TestAddExtraSkillFromClaim(t *testing.T) {
	f := NewForm(10, 7, "cand-1", jobSkills())

	outcome, warn := f.AddExtraSkillFromClaim(types.CandidateSkillClaim{SkillID: 2, SkillName: "PostgreSQL"})
	assert.Equal(t, ExtraRejected, outcome)
	assert.NotNil(t, warn)

	outcome, _ = f.AddExtraSkillFromClaim(types.CandidateSkillClaim{SkillID: 12, SkillName: "Terraform"})
	assert.Equal(t, ExtraAdded, outcome)
	assert.Equal(t, "Terraform", f.ExtraSkills()[0].SkillName)
}

func TestRate(t *testing.T) {
	f := NewForm(10, 7, "cand-1", jobSkills())
	f.AddExtraSkill(types.Skill{SkillID: 9, SkillName: "Redis"})

	require.NoError(t, f.Rate(types.SkillWithReview{SkillID: 1, ConceptRating: 4, TechnicalRating: 5}))
	require.NoError(t, f.Rate(types.SkillWithReview{SkillID: 9, ConceptRating: 2, TechnicalRating: 3, Comments: "ok"}))

	assert.Equal(t, "Go", f.RequiredSkills()[0].SkillName, "name kept when omitted")
	assert.Equal(t, 5.0, f.RequiredSkills()[0].TechnicalRating)
	assert.Equal(t, "ok", f.ExtraSkills()[0].Comments)

	err := f.Rate(types.SkillWithReview{SkillID: 99})
	var notOnForm *ErrSkillNotOnForm
	require.ErrorAs(t, err, &notOnForm)
	assert.Equal(t, int64(99), notOnForm.SkillID)
}

func TestSubmission(t *testing.T) {
	f := NewForm(10, 7, "cand-1", jobSkills())
	f.AddExtraSkill(types.Skill{SkillID: 9, SkillName: "Redis"})
	require.NoError(t, f.Rate(types.SkillWithReview{SkillID: 1, ConceptRating: 4, TechnicalRating: 5}))
	require.NoError(t, f.Rate(types.SkillWithReview{SkillID: 2, ConceptRating: 3, TechnicalRating: 3}))
	require.NoError(t, f.Rate(types.SkillWithReview{SkillID: 3, ConceptRating: 5, TechnicalRating: 5}))
	require.NoError(t, f.Rate(types.SkillWithReview{SkillID: 9, ConceptRating: 2, TechnicalRating: 2}))

	sub := f.Submission()

	assert.Equal(t, int64(10), sub.InterviewID)
	assert.Equal(t, int64(7), sub.UserID)
	assert.Equal(t, "cand-1", sub.CandidateID)
	assert.Len(t, sub.RequiredSkills, 2)
	assert.Len(t, sub.PreferredSkills, 1)
	assert.Len(t, sub.ExtraSkills, 1)
	// (9 + 6 + 10 + 4) / 4
	assert.Equal(t, 7.25, sub.TotalScore)
}

func TestSubmission_IsDetachedFromForm(t *testing.T) {
	f := NewForm(10, 7, "cand-1", jobSkills())
	sub := f.Submission()
	sub.RequiredSkills[0].ConceptRating = 5

	assert.Equal(t, 0.0, f.RequiredSkills()[0].ConceptRating)
}

func TestLoad_RestoresPreviousSubmission(t *testing.T) {
	prev := &types.InterviewSkillSubmission{
		InterviewID:    10,
		UserID:         7,
		RequiredSkills: []types.SkillWithReview{{SkillID: 1, ConceptRating: 4, TechnicalRating: 4}},
		ExtraSkills: []types.SkillWithReview{
			{SkillID: 9, SkillName: "Redis", ConceptRating: 3, TechnicalRating: 3},
			{SkillID: 3, SkillName: "Kubernetes"}, // now a job skill, dropped from extras
		},
	}

	f := NewForm(10, 7, "cand-1", jobSkills())
	f.Load(prev)

	assert.Equal(t, 4.0, f.RequiredSkills()[0].ConceptRating)
	assert.Equal(t, "Go", f.RequiredSkills()[0].SkillName)
	require.Len(t, f.ExtraSkills(), 1)
	assert.Equal(t, int64(9), f.ExtraSkills()[0].SkillID)

	f.Load(nil)
	assert.Len(t, f.ExtraSkills(), 1)
}

func TestExtraOutcome_String(t *testing.T) {
	assert.Equal(t, "added", ExtraAdded.String())
	assert.Equal(t, "removed", ExtraRemoved.String())
	assert.Equal(t, "rejected", ExtraRejected.String())
	assert.Equal(t, "unknown", ExtraOutcome(42).String())
}
