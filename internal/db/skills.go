package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/interview-scorecard/internal/types"
)

// ListSkills returns the skill catalog ordered by name
func (db *DB) ListSkills(ctx context.Context) ([]types.Skill, error) {
	rows, err := db.pool.Query(ctx, `SELECT id, name FROM skills ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	skills := []types.Skill{}
	for rows.Next() {
		var s types.Skill
		if err := rows.Scan(&s.SkillID, &s.SkillName); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// CreateSkill adds a skill to the catalog, returning the existing entry if the name is taken
func (db *DB) CreateSkill(ctx context.Context, name string) (*types.Skill, error) {
	var s types.Skill
	err := db.pool.QueryRow(ctx,
		`INSERT INTO skills (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name`,
		name,
	).Scan(&s.SkillID, &s.SkillName)
	if err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}
	return &s, nil
}

// DeleteSkill removes a skill from the catalog
func (db *DB) DeleteSkill(ctx context.Context, skillID int64) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM skills WHERE id = $1`, skillID)
	if err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("skill %d: %w", skillID, ErrNotFound)
	}
	return nil
}

// ListJobSkills returns the required and preferred skills of a job
func (db *DB) ListJobSkills(ctx context.Context, jobID int64) ([]types.JobSkill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT js.job_id, js.skill_id, s.name, js.skill_type
		 FROM job_skills js JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = $1
		 ORDER BY js.skill_type DESC, s.name`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job skills: %w", err)
	}
	defer rows.Close()

	skills := []types.JobSkill{}
	for rows.Next() {
		var js types.JobSkill
		var skillType string
		if err := rows.Scan(&js.JobID, &js.SkillID, &js.SkillName, &skillType); err != nil {
			return nil, fmt.Errorf("failed to scan job skill: %w", err)
		}
		js.SkillType = types.SkillType(skillType)
		skills = append(skills, js)
	}
	return skills, rows.Err()
}

// ReplaceJobSkills sets the full skill list of a job in one transaction
func (db *DB) ReplaceJobSkills(ctx context.Context, jobID int64, skills []types.JobSkill) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM job_skills WHERE job_id = $1`, jobID); err != nil {
		return fmt.Errorf("failed to clear job skills: %w", err)
	}

	batch := &pgx.Batch{}
	for _, js := range skills {
		batch.Queue(
			`INSERT INTO job_skills (job_id, skill_id, skill_type) VALUES ($1, $2, $3)
			 ON CONFLICT (job_id, skill_id) DO UPDATE SET skill_type = EXCLUDED.skill_type`,
			jobID, js.SkillID, string(js.SkillType),
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert job skills: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit job skills: %w", err)
	}
	return nil
}

// ListCandidateSkills returns the skills a candidate has declared
func (db *DB) ListCandidateSkills(ctx context.Context, candidateID string) ([]types.CandidateSkillClaim, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT s.id, s.name
		 FROM candidate_skills cs JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.candidate_id = $1
		 ORDER BY s.name`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate skills: %w", err)
	}
	defer rows.Close()

	claims := []types.CandidateSkillClaim{}
	for rows.Next() {
		var c types.CandidateSkillClaim
		if err := rows.Scan(&c.SkillID, &c.SkillName); err != nil {
			return nil, fmt.Errorf("failed to scan candidate skill: %w", err)
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
