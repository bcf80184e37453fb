// Package scoring turns raw interview ratings into 0-10 reviewer scores and cutoff verdicts.
package scoring

import "github.com/jonathan/interview-scorecard/internal/types"

// maxRating is the top of the raw rating scale
const maxRating = 5.0

// HR dimension weights
const (
	communicationWeight = 3.0
	overallWeight       = 3.0
	leadershipWeight    = 3.0
	teamworkWeight      = 2.5
	adaptabilityWeight  = 1.5

	hrTotalWeight = communicationWeight + overallWeight + leadershipWeight + teamworkWeight + adaptabilityWeight
)

// SkillAverage returns the 0-5 average of one skill's concept and technical ratings.
func SkillAverage(conceptRating, technicalRating float64) float64 {
	return (conceptRating + technicalRating) / 2
}

// HRScore returns the weighted 0-10 score of an HR review.
// A nil review means the reviewer has not submitted yet and scores 0.
func HRScore(review *types.HrReview) float64 {
	if review == nil {
		return 0
	}

	weightedSum := (review.CommunicationRating/maxRating)*communicationWeight +
		(review.OverallRating/maxRating)*overallWeight +
		(review.LeadershipRating/maxRating)*leadershipWeight +
		(review.TeamworkRating/maxRating)*teamworkWeight +
		(review.AdaptabilityRating/maxRating)*adaptabilityWeight

	return (weightedSum / hrTotalWeight) * 10
}
