package server

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jonathan/interview-scorecard/internal/db"
	"github.com/jonathan/interview-scorecard/internal/feedback"
	"github.com/jonathan/interview-scorecard/internal/types"
)

// fakeStore is an in-memory Store for handler tests. Feedback persistence comes from
// feedback.MemoryStore; everything else lives in plain maps.
type fakeStore struct {
	*feedback.MemoryStore

	pingErr        error
	users          map[int64]*db.UserRecord
	skills         map[int64]types.Skill
	jobs           map[int64]*db.Job
	jobSkills      map[int64][]types.JobSkill
	candidates     map[string]types.Candidate
	claims         map[string][]int64
	interviewTypes map[int64]types.InterviewType
	interviews     map[int64]*types.Interview
	nextID         int64
	roundLoads     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		MemoryStore:    feedback.NewMemoryStore(),
		users:          make(map[int64]*db.UserRecord),
		skills:         make(map[int64]types.Skill),
		jobs:           make(map[int64]*db.Job),
		jobSkills:      make(map[int64][]types.JobSkill),
		candidates:     make(map[string]types.Candidate),
		claims:         make(map[string][]int64),
		interviewTypes: make(map[int64]types.InterviewType),
		interviews:     make(map[int64]*types.Interview),
		nextID:         1000,
	}
}

const (
	testJobID        = int64(1)
	testCandidateID  = "C-100"
	techInterviewID  = int64(100)
	hrInterviewID    = int64(101)
	adminUserID      = int64(1)
	aliceUserID      = int64(10)
	bobUserID        = int64(11)
	carolUserID      = int64(12)
	hanaUserID       = int64(20)
	recruiterUserID  = int64(30)
	skillGo          = int64(1)
	skillSQL         = int64(2)
	skillDocker      = int64(3)
	skillRust        = int64(4)
	technicalTypeID  = int64(1)
	hrDiscussionType = int64(2)
)

// seededStore holds one job with a technical round 1 assigned to Alice and Bob and an
// HR round 2 chained to it and assigned to Hana.
func seededStore() *fakeStore {
	f := newFakeStore()
	for _, u := range []db.UserRecord{
		{ID: adminUserID, Name: "Ada Admin", Email: "ada@example.com", Role: types.RoleAdmin},
		{ID: aliceUserID, Name: "Alice", Email: "alice@example.com", Role: types.RoleInterviewer},
		{ID: bobUserID, Name: "Bob", Email: "bob@example.com", Role: types.RoleReviewer},
		{ID: carolUserID, Name: "Carol", Email: "carol@example.com", Role: types.RoleInterviewer},
		{ID: hanaUserID, Name: "Hana", Email: "hana@example.com", Role: types.RoleHR},
		{ID: recruiterUserID, Name: "Rui", Email: "rui@example.com", Role: types.RoleRecruiter},
	} {
		rec := u
		f.users[rec.ID] = &rec
	}
	for _, s := range []types.Skill{
		{SkillID: skillGo, SkillName: "Go"},
		{SkillID: skillSQL, SkillName: "SQL"},
		{SkillID: skillDocker, SkillName: "Docker"},
		{SkillID: skillRust, SkillName: "Rust"},
	} {
		f.skills[s.SkillID] = s
	}
	f.jobs[testJobID] = &db.Job{ID: testJobID, Title: "Backend Engineer"}
	f.jobSkills[testJobID] = []types.JobSkill{
		{JobID: testJobID, SkillID: skillGo, SkillName: "Go", SkillType: types.SkillTypeRequired},
		{JobID: testJobID, SkillID: skillSQL, SkillName: "SQL", SkillType: types.SkillTypePreferred},
	}
	f.candidates[testCandidateID] = types.Candidate{CandidateID: testCandidateID, Name: "Sam Candidate"}
	f.claims[testCandidateID] = []int64{skillGo, skillDocker}

	f.interviewTypes[technicalTypeID] = types.InterviewType{InterviewTypeID: technicalTypeID, InterviewRoundName: "Technical Round 1", Category: types.RoundTechnical}
	f.interviewTypes[hrDiscussionType] = types.InterviewType{InterviewTypeID: hrDiscussionType, InterviewRoundName: "Culture Chat", Category: types.RoundHR}

	prior := techInterviewID
	f.interviews[techInterviewID] = &types.Interview{
		InterviewID: techInterviewID, JobID: testJobID, RoundNumber: 1, CandidateID: testCandidateID,
		InterviewType: f.interviewTypes[technicalTypeID], Status: types.StatusScheduled,
		InterviewerIDs: []int64{aliceUserID, bobUserID},
	}
	f.interviews[hrInterviewID] = &types.Interview{
		InterviewID: hrInterviewID, JobID: testJobID, RoundNumber: 2, CandidateID: testCandidateID,
		InterviewType: f.interviewTypes[hrDiscussionType], Status: types.StatusScheduled,
		InterviewerIDs: []int64{hanaUserID}, ResultOf: &prior,
	}
	return f
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }
func (f *fakeStore) Close() {}

func (f *fakeStore) CreateUser(_ context.Context, u *db.UserRecord) (int64, error) {
	rec := *u
	rec.ID = f.id()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	f.users[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeStore) GetUser(_ context.Context, id int64) (*db.UserRecord, error) {
	return f.users[id], nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.UserRecord, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := f.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (f *fakeStore) UpdateUserRole(_ context.Context, id int64, role types.Role) error {
	u := f.users[id]
	if u == nil {
		return fmt.Errorf("user %d: %w", id, db.ErrNotFound)
	}
	u.Role = role
	return nil
}

func (f *fakeStore) ListSkills(context.Context) ([]types.Skill, error) {
	var out []types.Skill
	for _, s := range f.skills {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b types.Skill) int { return int(a.SkillID - b.SkillID) })
	return out, nil
}

func (f *fakeStore) CreateSkill(_ context.Context, name string) (*types.Skill, error) {
	s := types.Skill{SkillID: f.id(), SkillName: name}
	f.skills[s.SkillID] = s
	return &s, nil
}

func (f *fakeStore) DeleteSkill(_ context.Context, skillID int64) error {
	if _, ok := f.skills[skillID]; !ok {
		return fmt.Errorf("skill %d: %w", skillID, db.ErrNotFound)
	}
	delete(f.skills, skillID)
	return nil
}

func (f *fakeStore) ListJobSkills(_ context.Context, jobID int64) ([]types.JobSkill, error) {
	return slices.Clone(f.jobSkills[jobID]), nil
}

func (f *fakeStore) ReplaceJobSkills(_ context.Context, jobID int64, skills []types.JobSkill) error {
	out := make([]types.JobSkill, 0, len(skills))
	for _, js := range skills {
		js.JobID = jobID
		js.SkillName = f.skills[js.SkillID].SkillName
		out = append(out, js)
	}
	f.jobSkills[jobID] = out
	return nil
}

func (f *fakeStore) ListCandidateSkills(_ context.Context, candidateID string) ([]types.CandidateSkillClaim, error) {
	var out []types.CandidateSkillClaim
	for _, id := range f.claims[candidateID] {
		out = append(out, types.CandidateSkillClaim{SkillID: id, SkillName: f.skills[id].SkillName})
	}
	return out, nil
}

func (f *fakeStore) CreateJob(_ context.Context, title string) (*db.Job, error) {
	job := &db.Job{ID: f.id(), Title: title, CreatedAt: time.Now()}
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeStore) GetJob(_ context.Context, id int64) (*db.Job, error) {
	return f.jobs[id], nil
}

func (f *fakeStore) UpsertCandidate(_ context.Context, c *types.Candidate) error {
	f.candidates[c.CandidateID] = *c
	return nil
}

func (f *fakeStore) AddCandidateSkill(_ context.Context, candidateID string, skillID int64) error {
	if !slices.Contains(f.claims[candidateID], skillID) {
		f.claims[candidateID] = append(f.claims[candidateID], skillID)
	}
	return nil
}

func (f *fakeStore) CreateInterviewType(_ context.Context, it *types.InterviewType) (*types.InterviewType, error) {
	created := *it
	created.InterviewTypeID = f.id()
	f.interviewTypes[created.InterviewTypeID] = created
	return &created, nil
}

func (f *fakeStore) GetInterviewType(_ context.Context, id int64) (*types.InterviewType, error) {
	it, ok := f.interviewTypes[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (f *fakeStore) GetInterview(_ context.Context, id int64) (*types.Interview, error) {
	iv, ok := f.interviews[id]
	if !ok {
		return nil, nil
	}
	out := *iv
	return &out, nil
}

func (f *fakeStore) CreateInterview(_ context.Context, req *types.CreateInterviewRequest) (int64, error) {
	iv := &types.Interview{
		InterviewID:    f.id(),
		JobID:          req.JobID,
		RoundNumber:    req.RoundNumber,
		CandidateID:    req.CandidateID,
		InterviewType:  f.interviewTypes[req.InterviewTypeID],
		Status:         types.StatusScheduled,
		InterviewerIDs: slices.Clone(req.InterviewerIDs),
		ResultOf:       req.ResultOf,
		ScheduledAt:    req.ScheduledAt,
	}
	f.interviews[iv.InterviewID] = iv
	return iv.InterviewID, nil
}

func (f *fakeStore) UpdateInterviewStatus(_ context.Context, id int64, status types.InterviewStatus) error {
	iv, ok := f.interviews[id]
	if !ok {
		return fmt.Errorf("interview %d: %w", id, db.ErrNotFound)
	}
	iv.Status = status
	return nil
}

func (f *fakeStore) GetRoundData(ctx context.Context, q types.RoundQuery) ([]types.RoundData, error) {
	f.roundLoads++
	var ids []int64
	for id, iv := range f.interviews {
		if iv.JobID == q.JobID && iv.CandidateID == q.CandidateID && iv.RoundNumber == q.RoundNumber {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	rounds := make([]types.RoundData, 0, len(ids))
	for _, id := range ids {
		iv := *f.interviews[id]
		rd := types.RoundData{
			Interview:     &iv,
			Candidate:     f.candidates[iv.CandidateID],
			InterviewType: iv.InterviewType,
		}
		for _, uid := range iv.InterviewerIDs {
			if u := f.users[uid]; u != nil {
				rd.Users = append(rd.Users, *u.ToUser())
			}
		}
		var err error
		if rd.InterviewFeedbacks, err = f.ListFeedback(ctx, id); err != nil {
			return nil, err
		}
		if rd.HrReviews, err = f.ListHrReviews(ctx, id); err != nil {
			return nil, err
		}
		rounds = append(rounds, rd)
	}
	return rounds, nil
}

var _ Store = (*fakeStore)(nil)
