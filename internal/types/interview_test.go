package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryForName(t *testing.T) {
	tests := []struct {
		name     string
		expected RoundCategory
	}{
		{"HR Round", RoundHR},
		{"hr discussion", RoundHR},
		{"Final HR", RoundHR},
		{"ThRee-way panel", RoundHR}, // substring rule, not word match
		{"Technical Round 1", RoundTechnical},
		{"System Design", RoundTechnical},
		{"", RoundTechnical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryForName(tt.name))
		})
	}
}

func TestRoundCategory_IsValid(t *testing.T) {
	assert.True(t, RoundHR.IsValid())
	assert.True(t, RoundTechnical.IsValid())
	assert.False(t, RoundCategory("Panel").IsValid())
	assert.False(t, RoundCategory("").IsValid())
}

func TestInterviewStatus_IsValid(t *testing.T) {
	for _, s := range []InterviewStatus{StatusScheduled, StatusRescheduled, StatusSelected, StatusRejected} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, InterviewStatus("Cancelled").IsValid())
}

func TestInterview_EligibleAfter(t *testing.T) {
	priorID := int64(10)

	tests := []struct {
		name     string
		current  Interview
		prior    *Interview
		expected bool
	}{
		{"no chain", Interview{InterviewID: 11}, nil, true},
		{"chain but prior missing", Interview{InterviewID: 11, ResultOf: &priorID}, nil, false},
		{"prior selected", Interview{InterviewID: 11, ResultOf: &priorID}, &Interview{InterviewID: 10, Status: StatusSelected}, true},
		{"prior rejected", Interview{InterviewID: 11, ResultOf: &priorID}, &Interview{InterviewID: 10, Status: StatusRejected}, false},
		{"prior still scheduled", Interview{InterviewID: 11, ResultOf: &priorID}, &Interview{InterviewID: 10, Status: StatusScheduled}, false},
		{"wrong prior", Interview{InterviewID: 11, ResultOf: &priorID}, &Interview{InterviewID: 9, Status: StatusSelected}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.current.EligibleAfter(tt.prior))
		})
	}
}

func TestCreateInterviewRequest_Validation(t *testing.T) {
	valid := CreateInterviewRequest{
		JobID:           1,
		RoundNumber:     1,
		CandidateID:     "cand-1",
		InterviewTypeID: 2,
		InterviewerIDs:  []int64{3, 4},
	}
	assert.NoError(t, Validate(valid))

	noInterviewers := valid
	noInterviewers.InterviewerIDs = nil
	assert.Error(t, Validate(noInterviewers))

	roundZero := valid
	roundZero.RoundNumber = 0
	assert.Error(t, Validate(roundZero))
}

func TestCreateInterviewTypeRequest_InterviewType(t *testing.T) {
	tests := []struct {
		name     string
		req      CreateInterviewTypeRequest
		expected RoundCategory
	}{
		{"explicit technical beats name", CreateInterviewTypeRequest{InterviewRoundName: "HR Tech Screen", Category: RoundTechnical}, RoundTechnical},
		{"explicit HR", CreateInterviewTypeRequest{InterviewRoundName: "Culture fit", Category: RoundHR}, RoundHR},
		{"derived HR", CreateInterviewTypeRequest{InterviewRoundName: "HR Round"}, RoundHR},
		{"derived technical", CreateInterviewTypeRequest{InterviewRoundName: "Coding"}, RoundTechnical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := tt.req.InterviewType()
			assert.Equal(t, tt.expected, it.Category)
			assert.Equal(t, tt.req.InterviewRoundName, it.InterviewRoundName)
		})
	}
}

func TestCreateInterviewTypeRequest_Validate(t *testing.T) {
	assert.NoError(t, Validate(&CreateInterviewTypeRequest{InterviewRoundName: "Coding"}))
	assert.NoError(t, Validate(&CreateInterviewTypeRequest{InterviewRoundName: "Coding", Category: RoundHR}))
	assert.Error(t, Validate(&CreateInterviewTypeRequest{InterviewRoundName: "Coding", Category: "Panel"}))
	assert.Error(t, Validate(&CreateInterviewTypeRequest{}))
}

func TestCreateCandidateRequest_Validate(t *testing.T) {
	valid := CreateCandidateRequest{CandidateID: "cand-1", Name: "Ada", SkillIDs: []int64{1, 2}}
	assert.NoError(t, Validate(&valid))
	assert.Equal(t, Candidate{CandidateID: "cand-1", Name: "Ada"}, valid.Candidate())

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, Validate(&badEmail))

	badSkill := valid
	badSkill.SkillIDs = []int64{0}
	assert.Error(t, Validate(&badSkill))
}
