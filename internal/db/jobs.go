package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/interview-scorecard/internal/types"
)

// CreateJob inserts a job and returns it
func (db *DB) CreateJob(ctx context.Context, title string) (*Job, error) {
	job := Job{Title: title}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title) VALUES ($1) RETURNING id, created_at`, title,
	).Scan(&job.ID, &job.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &job, nil
}

// GetJob retrieves a job by ID
func (db *DB) GetJob(ctx context.Context, id int64) (*Job, error) {
	var job Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, created_at FROM jobs WHERE id = $1`, id,
	).Scan(&job.ID, &job.Title, &job.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// UpsertCandidate creates or renames a candidate
func (db *DB) UpsertCandidate(ctx context.Context, c *types.Candidate) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO candidates (id, name, email) VALUES ($1, $2, NULLIF($3, ''))
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email`,
		c.CandidateID, c.Name, c.Email,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert candidate: %w", err)
	}
	return nil
}

// AddCandidateSkill records a skill the candidate claims
func (db *DB) AddCandidateSkill(ctx context.Context, candidateID string, skillID int64) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO candidate_skills (candidate_id, skill_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		candidateID, skillID,
	)
	if err != nil {
		return fmt.Errorf("failed to add candidate skill: %w", err)
	}
	return nil
}
