package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/interview-scorecard/internal/types"
	"golang.org/x/sync/errgroup"
)

// CreateInterviewType stores a round label with its scoring category
func (db *DB) CreateInterviewType(ctx context.Context, it *types.InterviewType) (*types.InterviewType, error) {
	out := *it
	err := db.pool.QueryRow(ctx,
		`INSERT INTO interview_types (round_name, category) VALUES ($1, $2) RETURNING id`,
		it.InterviewRoundName, string(it.Category),
	).Scan(&out.InterviewTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create interview type: %w", err)
	}
	return &out, nil
}

// GetInterviewType retrieves an interview type by ID
func (db *DB) GetInterviewType(ctx context.Context, id int64) (*types.InterviewType, error) {
	var it types.InterviewType
	var category string
	err := db.pool.QueryRow(ctx,
		`SELECT id, round_name, category FROM interview_types WHERE id = $1`, id,
	).Scan(&it.InterviewTypeID, &it.InterviewRoundName, &category)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview type: %w", err)
	}
	it.Category = types.RoundCategory(category)
	return &it, nil
}

const interviewColumns = `i.id, i.job_id, i.round_number, i.candidate_id, i.status, i.result_of, i.scheduled_at,
	t.id, t.round_name, t.category,
	COALESCE((SELECT array_agg(ii.user_id ORDER BY ii.user_id) FROM interview_interviewers ii WHERE ii.interview_id = i.id), '{}')`

func scanInterview(row pgx.Row) (*types.Interview, error) {
	var iv types.Interview
	var status, category string
	var scheduledAt *time.Time
	err := row.Scan(
		&iv.InterviewID, &iv.JobID, &iv.RoundNumber, &iv.CandidateID, &status, &iv.ResultOf, &scheduledAt,
		&iv.InterviewType.InterviewTypeID, &iv.InterviewType.InterviewRoundName, &category,
		&iv.InterviewerIDs,
	)
	if err != nil {
		return nil, err
	}
	iv.Status = types.InterviewStatus(status)
	iv.InterviewType.Category = types.RoundCategory(category)
	iv.ScheduledAt = scheduledAt
	return &iv, nil
}

// GetInterview retrieves an interview with its type and interviewer IDs
func (db *DB) GetInterview(ctx context.Context, interviewID int64) (*types.Interview, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+interviewColumns+`
		 FROM interviews i JOIN interview_types t ON t.id = i.interview_type_id
		 WHERE i.id = $1`,
		interviewID,
	)
	iv, err := scanInterview(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	return iv, nil
}

// CreateInterview schedules a round and assigns its interviewers
func (db *DB) CreateInterview(ctx context.Context, req *types.CreateInterviewRequest) (int64, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO interviews (job_id, round_number, candidate_id, interview_type_id, status, result_of, scheduled_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		req.JobID, req.RoundNumber, req.CandidateID, req.InterviewTypeID, string(types.StatusScheduled), req.ResultOf, req.ScheduledAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create interview: %w", err)
	}

	batch := &pgx.Batch{}
	for _, userID := range req.InterviewerIDs {
		batch.Queue(
			`INSERT INTO interview_interviewers (interview_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			id, userID,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("failed to assign interviewers: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit interview: %w", err)
	}
	return id, nil
}

// UpdateInterviewStatus records the outcome of a round
func (db *DB) UpdateInterviewStatus(ctx context.Context, interviewID int64, status types.InterviewStatus) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE interviews SET status = $1 WHERE id = $2`,
		string(status), interviewID,
	)
	if err != nil {
		return fmt.Errorf("failed to update interview status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("interview %d: %w", interviewID, ErrNotFound)
	}
	return nil
}

// GetRoundData loads every interview matching the job, candidate and round together
// with its assigned reviewers and their feedback.
func (db *DB) GetRoundData(ctx context.Context, q types.RoundQuery) ([]types.RoundData, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+interviewColumns+`, c.name, COALESCE(c.email, '')
		 FROM interviews i
		 JOIN interview_types t ON t.id = i.interview_type_id
		 JOIN candidates c ON c.id = i.candidate_id
		 WHERE i.job_id = $1 AND i.candidate_id = $2 AND i.round_number = $3
		 ORDER BY i.id`,
		q.JobID, q.CandidateID, q.RoundNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query round: %w", err)
	}

	var rounds []types.RoundData
	for rows.Next() {
		var rd types.RoundData
		var status, category string
		iv := &types.Interview{}
		err := rows.Scan(
			&iv.InterviewID, &iv.JobID, &iv.RoundNumber, &iv.CandidateID, &status, &iv.ResultOf, &iv.ScheduledAt,
			&iv.InterviewType.InterviewTypeID, &iv.InterviewType.InterviewRoundName, &category,
			&iv.InterviewerIDs,
			&rd.Candidate.Name, &rd.Candidate.Email,
		)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		iv.Status = types.InterviewStatus(status)
		iv.InterviewType.Category = types.RoundCategory(category)
		rd.Interview = iv
		rd.InterviewType = iv.InterviewType
		rd.Candidate.CandidateID = iv.CandidateID
		rounds = append(rounds, rd)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read round: %w", err)
	}

	for i := range rounds {
		if err := db.fillRound(ctx, &rounds[i]); err != nil {
			return nil, err
		}
	}
	return rounds, nil
}

// fillRound fetches reviewers, feedback and HR reviews of one interview concurrently.
func (db *DB) fillRound(ctx context.Context, rd *types.RoundData) error {
	interviewID := rd.Interview.InterviewID
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		users, err := db.ListInterviewers(gctx, interviewID)
		rd.Users = users
		return err
	})
	g.Go(func() error {
		feedbacks, err := db.ListFeedback(gctx, interviewID)
		rd.InterviewFeedbacks = feedbacks
		return err
	})
	g.Go(func() error {
		reviews, err := db.ListHrReviews(gctx, interviewID)
		rd.HrReviews = reviews
		return err
	})

	return g.Wait()
}

// ListInterviewers returns the users assigned to an interview
func (db *DB) ListInterviewers(ctx context.Context, interviewID int64) ([]types.User, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT u.id, u.name, u.email, u.role
		 FROM interview_interviewers ii JOIN users u ON u.id = ii.user_id
		 WHERE ii.interview_id = $1
		 ORDER BY u.id`,
		interviewID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviewers: %w", err)
	}
	defer rows.Close()

	users := []types.User{}
	for rows.Next() {
		var u types.User
		var role string
		if err := rows.Scan(&u.UserID, &u.Name, &u.Email, &role); err != nil {
			return nil, fmt.Errorf("failed to scan interviewer: %w", err)
		}
		u.Role = types.Role(role)
		users = append(users, u)
	}
	return users, rows.Err()
}
