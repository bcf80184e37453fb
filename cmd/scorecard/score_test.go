package main

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/jonathan/interview-scorecard/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Alice averages 3.5 (7.0 / 10); Bob left no feedback.
const technicalRoundJSON = `{
	"interview": {"interview_id": 100, "round_number": 1, "status": "Scheduled"},
	"candidate": {"candidate_id": "C-100", "name": "Sam"},
	"interviewType": {"interview_round_name": "Technical Round 1"},
	"users": [{"user_id": 10, "name": "Alice"}, {"user_id": 11, "name": "Bob"}],
	"interviewFeedbacks": [
		{"interview_id": 100, "user_id": 10, "skill_id": 1, "concept_rating": 4, "technical_rating": 4},
		{"interview_id": 100, "user_id": 10, "skill_id": 2, "concept_rating": 3, "technical_rating": 3}
	],
	"hrReviews": []
}`

const hrRoundJSON = `{
	"interviewType": {"interview_round_name": "HR Discussion"},
	"users": [{"user_id": 20, "name": "Hana"}],
	"interviewFeedbacks": [],
	"hrReviews": [{"user_id": 20, "communication_rating": 5, "teamwork_rating": 5, "adaptability_rating": 5, "leadership_rating": 5, "overall_rating": 5}]
}`

func defaultOptions() scoreOptions {
	return scoreOptions{MinRating: scoring.DefaultMinRating, Labels: scoring.LabelSelected}
}

func TestScoreRounds_Text(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, scoreRounds([]byte(technicalRoundJSON), defaultOptions(), &out))

	assert.Contains(t, out.String(), "ROUND 1: TECHNICAL ROUND 1")
	assert.Contains(t, out.String(), "7.0 / 10")
	assert.Contains(t, out.String(), "Selected")
	assert.Contains(t, out.String(), "(no review)")
}

func TestScoreRounds_JSONList(t *testing.T) {
	var out bytes.Buffer
	opts := defaultOptions()
	opts.JSON = true
	opts.Labels = scoring.LabelGood
	opts.MinRating = 8

	require.NoError(t, scoreRounds([]byte("["+technicalRoundJSON+","+hrRoundJSON+"]"), opts, &out))

	var cards []scoring.RoundCard
	require.NoError(t, json.Unmarshal(out.Bytes(), &cards))
	require.Len(t, cards, 2)

	assert.Equal(t, "Technical", string(cards[0].Category))
	assert.Equal(t, "Bad", cards[0].Reviewers[0].Label)

	// Category is derived from the name when the export has none
	assert.Equal(t, "HR", string(cards[1].Category))
	assert.InDelta(t, 10.0, cards[1].Reviewers[0].Rating, 1e-9)
	assert.Equal(t, "Good", cards[1].Reviewers[0].Label)
}

func TestScoreRounds_ExplicitCategoryWins(t *testing.T) {
	doc := `{"interviewType": {"interview_round_name": "Threads", "category": "Technical"}, "users": [{"user_id": 1}]}`
	var out bytes.Buffer
	opts := defaultOptions()
	opts.JSON = true
	require.NoError(t, scoreRounds([]byte(doc), opts, &out))

	var cards []scoring.RoundCard
	require.NoError(t, json.Unmarshal(out.Bytes(), &cards))
	assert.Equal(t, "Technical", string(cards[0].Category))
}

func TestScoreRounds_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		opts scoreOptions
	}{
		{"schema violation", `{"interviewType": {"interview_round_name": "T"}}`, defaultOptions()},
		{"not json", `round`, defaultOptions()},
		{"nan cutoff", technicalRoundJSON, scoreOptions{MinRating: math.NaN()}},
		{"infinite cutoff", technicalRoundJSON, scoreOptions{MinRating: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Error(t, scoreRounds([]byte(tt.doc), tt.opts, &out))
			assert.Empty(t, out.String())
		})
	}
}

func TestDecodeRounds(t *testing.T) {
	rounds, err := decodeRounds([]byte("  \n" + technicalRoundJSON))
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.Equal(t, "Sam", rounds[0].Candidate.Name)

	rounds, err = decodeRounds([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, rounds)
}

func TestScoreRounds_EmptyList(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, scoreRounds([]byte("[]"), defaultOptions(), &out))
	assert.Contains(t, out.String(), "No interviews found")
}
