package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/interview-scorecard/internal/types"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const upsertFeedbackSQL = `INSERT INTO interview_feedback
	 (interview_id, user_id, skill_id, concept_rating, technical_rating, years_experience, comments)
	 VALUES ($1, $2, $3, $4, $5, $6, $7)
	 ON CONFLICT (interview_id, user_id, skill_id) DO UPDATE SET
	   concept_rating = EXCLUDED.concept_rating,
	   technical_rating = EXCLUDED.technical_rating,
	   years_experience = EXCLUDED.years_experience,
	   comments = EXCLUDED.comments,
	   version = interview_feedback.version + 1,
	   updated_at = NOW()
	 RETURNING version, updated_at`

func upsertFeedback(ctx context.Context, q querier, fb *types.InterviewFeedback) (*types.InterviewFeedback, error) {
	out := *fb
	err := q.QueryRow(ctx, upsertFeedbackSQL,
		fb.InterviewID, fb.UserID, fb.SkillID, fb.ConceptRating, fb.TechnicalRating, fb.YearsExperience, fb.Comments,
	).Scan(&out.Version, &out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert feedback for skill %d: %w", fb.SkillID, err)
	}
	return &out, nil
}

// UpsertFeedback creates or replaces one reviewer's rating of one skill
func (db *DB) UpsertFeedback(ctx context.Context, fb *types.InterviewFeedback) (*types.InterviewFeedback, error) {
	return upsertFeedback(ctx, db.pool, fb)
}

// UpsertHrReview creates or replaces one reviewer's HR review
func (db *DB) UpsertHrReview(ctx context.Context, r *types.HrReview) (*types.HrReview, error) {
	out := *r
	err := db.pool.QueryRow(ctx,
		`INSERT INTO hr_reviews
		 (interview_id, user_id, communication_rating, teamwork_rating, adaptability_rating, leadership_rating,
		  overall_rating, strengths, areas_for_improvement, training_recommendations, career_path_notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (interview_id, user_id) DO UPDATE SET
		   communication_rating = EXCLUDED.communication_rating,
		   teamwork_rating = EXCLUDED.teamwork_rating,
		   adaptability_rating = EXCLUDED.adaptability_rating,
		   leadership_rating = EXCLUDED.leadership_rating,
		   overall_rating = EXCLUDED.overall_rating,
		   strengths = EXCLUDED.strengths,
		   areas_for_improvement = EXCLUDED.areas_for_improvement,
		   training_recommendations = EXCLUDED.training_recommendations,
		   career_path_notes = EXCLUDED.career_path_notes,
		   version = hr_reviews.version + 1,
		   updated_at = NOW()
		 RETURNING version, updated_at`,
		r.InterviewID, r.UserID, r.CommunicationRating, r.TeamworkRating, r.AdaptabilityRating, r.LeadershipRating,
		r.OverallRating, r.Strengths, r.AreasForImprovement, r.TrainingRecommendations, r.CareerPathNotes,
	).Scan(&out.Version, &out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert HR review: %w", err)
	}
	return &out, nil
}

// ListFeedback returns all skill feedback for an interview ordered by reviewer then skill
func (db *DB) ListFeedback(ctx context.Context, interviewID int64) ([]types.InterviewFeedback, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT interview_id, user_id, skill_id, concept_rating, technical_rating, years_experience, comments, version, updated_at
		 FROM interview_feedback WHERE interview_id = $1
		 ORDER BY user_id, skill_id`,
		interviewID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	feedbacks := []types.InterviewFeedback{}
	for rows.Next() {
		var fb types.InterviewFeedback
		if err := rows.Scan(&fb.InterviewID, &fb.UserID, &fb.SkillID, &fb.ConceptRating, &fb.TechnicalRating,
			&fb.YearsExperience, &fb.Comments, &fb.Version, &fb.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedbacks = append(feedbacks, fb)
	}
	return feedbacks, rows.Err()
}

// ListHrReviews returns all HR reviews for an interview ordered by reviewer
func (db *DB) ListHrReviews(ctx context.Context, interviewID int64) ([]types.HrReview, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT interview_id, user_id, communication_rating, teamwork_rating, adaptability_rating, leadership_rating,
		        overall_rating, strengths, areas_for_improvement, training_recommendations, career_path_notes,
		        version, updated_at
		 FROM hr_reviews WHERE interview_id = $1
		 ORDER BY user_id`,
		interviewID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list HR reviews: %w", err)
	}
	defer rows.Close()

	reviews := []types.HrReview{}
	for rows.Next() {
		var r types.HrReview
		if err := rows.Scan(&r.InterviewID, &r.UserID, &r.CommunicationRating, &r.TeamworkRating, &r.AdaptabilityRating,
			&r.LeadershipRating, &r.OverallRating, &r.Strengths, &r.AreasForImprovement, &r.TrainingRecommendations,
			&r.CareerPathNotes, &r.Version, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan HR review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// UpsertSubmission replaces a reviewer's skill review for an interview. The stored
// lists and score are overwritten, and the reviewer's per-skill feedback rows are
// brought in line with the submission in the same transaction.
func (db *DB) UpsertSubmission(ctx context.Context, sub *types.InterviewSkillSubmission) (*types.InterviewSkillSubmission, error) {
	required, err := marshalSkills(sub.RequiredSkills)
	if err != nil {
		return nil, err
	}
	preferred, err := marshalSkills(sub.PreferredSkills)
	if err != nil {
		return nil, err
	}
	extra, err := marshalSkills(sub.ExtraSkills)
	if err != nil {
		return nil, err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := *sub
	err = tx.QueryRow(ctx,
		`INSERT INTO skill_submissions
		 (interview_id, user_id, candidate_id, total_score, required_skills, preferred_skills, extra_skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (interview_id, user_id) DO UPDATE SET
		   candidate_id = EXCLUDED.candidate_id,
		   total_score = EXCLUDED.total_score,
		   required_skills = EXCLUDED.required_skills,
		   preferred_skills = EXCLUDED.preferred_skills,
		   extra_skills = EXCLUDED.extra_skills,
		   version = skill_submissions.version + 1,
		   updated_at = NOW()
		 RETURNING version, updated_at`,
		sub.InterviewID, sub.UserID, sub.CandidateID, sub.TotalScore, required, preferred, extra,
	).Scan(&out.Version, &out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert submission: %w", err)
	}

	rows := sub.Feedbacks()
	keep := make([]int64, 0, len(rows))
	for i := range rows {
		if _, err := upsertFeedback(ctx, tx, &rows[i]); err != nil {
			return nil, err
		}
		keep = append(keep, rows[i].SkillID)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM interview_feedback
		 WHERE interview_id = $1 AND user_id = $2 AND NOT (skill_id = ANY($3))`,
		sub.InterviewID, sub.UserID, keep,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to prune feedback: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit submission: %w", err)
	}
	return &out, nil
}

// GetSubmission retrieves a reviewer's skill review for an interview
func (db *DB) GetSubmission(ctx context.Context, interviewID, userID int64) (*types.InterviewSkillSubmission, error) {
	var sub types.InterviewSkillSubmission
	var required, preferred, extra []byte
	err := db.pool.QueryRow(ctx,
		`SELECT interview_id, user_id, candidate_id, total_score, required_skills, preferred_skills, extra_skills,
		        version, updated_at
		 FROM skill_submissions WHERE interview_id = $1 AND user_id = $2`,
		interviewID, userID,
	).Scan(&sub.InterviewID, &sub.UserID, &sub.CandidateID, &sub.TotalScore, &required, &preferred, &extra,
		&sub.Version, &sub.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	if sub.RequiredSkills, err = unmarshalSkills(required); err != nil {
		return nil, err
	}
	if sub.PreferredSkills, err = unmarshalSkills(preferred); err != nil {
		return nil, err
	}
	if sub.ExtraSkills, err = unmarshalSkills(extra); err != nil {
		return nil, err
	}
	return &sub, nil
}

func marshalSkills(skills []types.SkillWithReview) ([]byte, error) {
	if skills == nil {
		skills = []types.SkillWithReview{}
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	return data, nil
}

func unmarshalSkills(data []byte) ([]types.SkillWithReview, error) {
	skills := []types.SkillWithReview{}
	if len(data) == 0 {
		return skills, nil
	}
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	return skills, nil
}
