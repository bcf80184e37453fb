package scoring

import (
	"math"

	"github.com/jonathan/interview-scorecard/internal/types"
)

// SkillScore is a reviewer's 0-5 average for one skill.
type SkillScore struct {
	SkillID int64   `json:"skill_id"`
	Average float64 `json:"average"`
}

// ReviewerScore is one reviewer's standalone rating for a round.
type ReviewerScore struct {
	User     types.User   `json:"user"`
	Rating   float64      `json:"rating"`
	Display  string       `json:"display"`
	Selected bool         `json:"selected"`
	Label    string       `json:"label"`
	Skills   []SkillScore `json:"skills,omitempty"`
	HRScore  *float64     `json:"hr_score,omitempty"`
	Reviewed bool         `json:"reviewed"`
}

// RoundCard is the evaluated view of one interview round.
type RoundCard struct {
	types.RoundData
	Category  types.RoundCategory   `json:"category"`
	MinRating float64               `json:"min_rating"`
	Status    types.InterviewStatus `json:"status,omitempty"`
	Reviewers []ReviewerScore       `json:"reviewers"`
}

// reviewerSkills collects a reviewer's per-skill averages, in submission order.
func reviewerSkills(userID int64, feedbacks []types.InterviewFeedback) []SkillScore {
	var skills []SkillScore
	for _, fb := range feedbacks {
		if fb.UserID != userID {
			continue
		}
		skills = append(skills, SkillScore{
			SkillID: fb.SkillID,
			Average: SkillAverage(fb.ConceptRating, fb.TechnicalRating),
		})
	}
	return skills
}

// findHrReview returns the reviewer's HR review or nil.
func findHrReview(userID int64, reviews []types.HrReview) *types.HrReview {
	for i := range reviews {
		if reviews[i].UserID == userID {
			return &reviews[i]
		}
	}
	return nil
}

// TechnicalRating rescales the mean of per-skill averages from 0-5 to 0-10.
// No skills means no input and rates 0.
func TechnicalRating(skills []SkillScore) float64 {
	if len(skills) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range skills {
		total += s.Average
	}
	mean := total / float64(len(skills))
	return (mean / maxRating) * 10
}

// ReviewerRating returns one reviewer's 0-10 rating for a round of the given category.
func ReviewerRating(category types.RoundCategory, userID int64, feedbacks []types.InterviewFeedback, reviews []types.HrReview) float64 {
	if category == types.RoundHR {
		return HRScore(findHrReview(userID, reviews))
	}
	return TechnicalRating(reviewerSkills(userID, feedbacks))
}

// RoundRatings evaluates every assigned reviewer of a round independently against minRating.
// Reviewers are never averaged into a consensus score.
func RoundRatings(data types.RoundData, minRating float64, style LabelStyle) RoundCard {
	card := RoundCard{
		RoundData: data,
		Category:  data.InterviewType.Category,
		MinRating: minRating,
		Reviewers: make([]ReviewerScore, 0, len(data.Users)),
	}
	if card.Category == "" {
		card.Category = types.RoundTechnical
	}
	if data.Interview != nil {
		card.Status = data.Interview.Status
	}

	for _, user := range data.Users {
		score := ReviewerScore{User: user}

		if card.Category == types.RoundHR {
			review := findHrReview(user.UserID, data.HrReviews)
			hr := HRScore(review)
			score.Rating = hr
			score.HRScore = &hr
			score.Reviewed = review != nil
		} else {
			score.Skills = reviewerSkills(user.UserID, data.InterviewFeedbacks)
			score.Rating = TechnicalRating(score.Skills)
			score.Reviewed = len(score.Skills) > 0
		}

		verdict := Verdict(score.Rating, minRating)
		score.Selected = verdict.Selected
		score.Label = verdict.Label(style)
		score.Display = FormatRating(score.Rating)
		card.Reviewers = append(card.Reviewers, score)
	}

	return card
}

// SkillReviewTotal is the total shown on the skill review form: the mean over all
// reviewed skills of concept+technical, rounded to two decimals. Unlike
// TechnicalRating it is not rescaled; two 0-5 ratings already sum to 0-10.
func SkillReviewTotal(skills []types.SkillWithReview) float64 {
	if len(skills) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range skills {
		total += s.ConceptRating + s.TechnicalRating
	}
	return roundTo(total/float64(len(skills)), 2)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
