package feedback

import (
	"testing"

	"github.com/jonathan/interview-scorecard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() []types.Skill {
	return []types.Skill{
		{SkillID: 1, SkillName: "Go"},
		{SkillID: 2, SkillName: "PostgreSQL"},
		{SkillID: 3, SkillName: "Kubernetes"},
		{SkillID: 4, SkillName: "Rust"},
		{SkillID: 5, SkillName: "Terraform"},
	}
}

func TestPrepareSubmission_RejectsJobSkillAsExtra(t *testing.T) {
	sub := &types.InterviewSkillSubmission{
		InterviewID: 10,
		UserID:      7,
		ExtraSkills: []types.SkillWithReview{{SkillID: 3}},
	}

	err := PrepareSubmission(sub, jobSkills(), catalog())

	var dup *ErrDuplicateExtraSkill
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, int64(3), dup.SkillID)
}

func TestPrepareSubmission_RecomputesTotalAndNames(t *testing.T) {
	sub := &types.InterviewSkillSubmission{
		InterviewID:     10,
		UserID:          7,
		TotalScore:      99,
		RequiredSkills:  []types.SkillWithReview{{SkillID: 1, SkillName: "Golang", ConceptRating: 4, TechnicalRating: 5}},
		PreferredSkills: []types.SkillWithReview{{SkillID: 3, ConceptRating: 3, TechnicalRating: 3}},
		ExtraSkills:     []types.SkillWithReview{{SkillID: 4, ConceptRating: 2, TechnicalRating: 2}},
	}

	require.NoError(t, PrepareSubmission(sub, jobSkills(), catalog()))

	assert.InDelta(t, 6.33, sub.TotalScore, 1e-9)
	assert.Equal(t, "Go", sub.RequiredSkills[0].SkillName)
	assert.Equal(t, "Kubernetes", sub.PreferredSkills[0].SkillName)
	assert.Equal(t, "Rust", sub.ExtraSkills[0].SkillName)
}

func TestPrepareSubmission_Rejects(t *testing.T) {
	rated := func(id int64) types.SkillWithReview {
		return types.SkillWithReview{SkillID: id, ConceptRating: 5, TechnicalRating: 5}
	}

	tests := []struct {
		name  string
		sub   types.InterviewSkillSubmission
		check func(t *testing.T, err error)
	}{
		{
			name: "required skill not on job",
			sub:  types.InterviewSkillSubmission{RequiredSkills: []types.SkillWithReview{rated(4)}},
			check: func(t *testing.T, err error) {
				var e *ErrSkillNotOnForm
				require.ErrorAs(t, err, &e)
				assert.Equal(t, types.SkillTypeRequired, e.List)
			},
		},
		{
			name: "preferred skill posted as required",
			sub:  types.InterviewSkillSubmission{RequiredSkills: []types.SkillWithReview{rated(3)}},
			check: func(t *testing.T, err error) {
				var e *ErrSkillNotOnForm
				require.ErrorAs(t, err, &e)
			},
		},
		{
			name: "required skill posted as preferred",
			sub:  types.InterviewSkillSubmission{PreferredSkills: []types.SkillWithReview{rated(1)}},
			check: func(t *testing.T, err error) {
				var e *ErrSkillNotOnForm
				require.ErrorAs(t, err, &e)
				assert.Equal(t, types.SkillTypePreferred, e.List)
			},
		},
		{
			name: "extra skill missing from catalog",
			sub:  types.InterviewSkillSubmission{ExtraSkills: []types.SkillWithReview{rated(9999)}},
			check: func(t *testing.T, err error) {
				var e *ErrUnknownSkill
				require.ErrorAs(t, err, &e)
				assert.Equal(t, int64(9999), e.SkillID)
			},
		},
		{
			name: "skill repeated within a list",
			sub:  types.InterviewSkillSubmission{RequiredSkills: []types.SkillWithReview{rated(1), rated(1)}},
			check: func(t *testing.T, err error) {
				var e *ErrRepeatedSkill
				require.ErrorAs(t, err, &e)
			},
		},
		{
			name: "extra skill repeated",
			sub:  types.InterviewSkillSubmission{ExtraSkills: []types.SkillWithReview{rated(4), rated(4)}},
			check: func(t *testing.T, err error) {
				var e *ErrRepeatedSkill
				require.ErrorAs(t, err, &e)
				assert.Equal(t, int64(4), e.SkillID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := tt.sub
			sub.TotalScore = 42
			err := PrepareSubmission(&sub, jobSkills(), catalog())
			tt.check(t, err)
			assert.Equal(t, 42.0, sub.TotalScore, "rejected submissions are left untouched")
		})
	}
}

func TestPrepareSubmission_SkillInTwoListsIsRejected(t *testing.T) {
	sub := &types.InterviewSkillSubmission{
		RequiredSkills:  []types.SkillWithReview{{SkillID: 1, ConceptRating: 5, TechnicalRating: 5}},
		PreferredSkills: []types.SkillWithReview{{SkillID: 1}},
	}

	err := PrepareSubmission(sub, jobSkills(), catalog())

	var repeated *ErrRepeatedSkill
	require.ErrorAs(t, err, &repeated)
	assert.Equal(t, int64(1), repeated.SkillID)
}

func TestPrepareSubmission_StoredTotalMatchesFeedbackRows(t *testing.T) {
	sub := &types.InterviewSkillSubmission{
		InterviewID:    10,
		UserID:         7,
		RequiredSkills: []types.SkillWithReview{{SkillID: 1, ConceptRating: 4, TechnicalRating: 4}, {SkillID: 2, ConceptRating: 2, TechnicalRating: 2}},
		ExtraSkills:    []types.SkillWithReview{{SkillID: 5, ConceptRating: 3, TechnicalRating: 3}},
	}
	require.NoError(t, PrepareSubmission(sub, jobSkills(), catalog()))

	rows := sub.Feedbacks()
	require.Len(t, rows, len(sub.AllSkills()))
	sum := 0.0
	for _, fb := range rows {
		sum += fb.ConceptRating + fb.TechnicalRating
	}
	assert.InDelta(t, sum/float64(len(rows)), sub.TotalScore, 0.005)
}
