package server

import (
	"context"

	"github.com/jonathan/interview-scorecard/internal/db"
	"github.com/jonathan/interview-scorecard/internal/feedback"
	"github.com/jonathan/interview-scorecard/internal/types"
)

// UserStore is the persistence the user service needs
type UserStore interface {
	CreateUser(ctx context.Context, u *db.UserRecord) (int64, error)
	GetUser(ctx context.Context, id int64) (*db.UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (*db.UserRecord, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdateUserRole(ctx context.Context, id int64, role types.Role) error
}

// Store is everything the HTTP handlers read and write. *db.DB implements it.
type Store interface {
	feedback.Store
	UserStore

	Ping(ctx context.Context) error
	Close()

	ListSkills(ctx context.Context) ([]types.Skill, error)
	CreateSkill(ctx context.Context, name string) (*types.Skill, error)
	DeleteSkill(ctx context.Context, skillID int64) error
	ListJobSkills(ctx context.Context, jobID int64) ([]types.JobSkill, error)
	ReplaceJobSkills(ctx context.Context, jobID int64, skills []types.JobSkill) error
	ListCandidateSkills(ctx context.Context, candidateID string) ([]types.CandidateSkillClaim, error)

	CreateJob(ctx context.Context, title string) (*db.Job, error)
	GetJob(ctx context.Context, id int64) (*db.Job, error)
	UpsertCandidate(ctx context.Context, c *types.Candidate) error
	AddCandidateSkill(ctx context.Context, candidateID string, skillID int64) error

	CreateInterviewType(ctx context.Context, it *types.InterviewType) (*types.InterviewType, error)
	GetInterviewType(ctx context.Context, id int64) (*types.InterviewType, error)
	GetInterview(ctx context.Context, interviewID int64) (*types.Interview, error)
	CreateInterview(ctx context.Context, req *types.CreateInterviewRequest) (int64, error)
	UpdateInterviewStatus(ctx context.Context, interviewID int64, status types.InterviewStatus) error
	GetRoundData(ctx context.Context, q types.RoundQuery) ([]types.RoundData, error)
}

var _ Store = (*db.DB)(nil)
