package feedback

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/interview-scorecard/internal/types"
)

type reviewerKey struct {
	interviewID int64
	userID      int64
}

type skillKey struct {
	interviewID int64
	userID      int64
	skillID     int64
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu          sync.RWMutex
	submissions map[reviewerKey]types.InterviewSkillSubmission
	feedback    map[skillKey]types.InterviewFeedback
	hrReviews   map[reviewerKey]types.HrReview
	now         func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		submissions: make(map[reviewerKey]types.InterviewSkillSubmission),
		feedback:    make(map[skillKey]types.InterviewFeedback),
		hrReviews:   make(map[reviewerKey]types.HrReview),
		now:         time.Now,
	}
}

func copySkills(in []types.SkillWithReview) []types.SkillWithReview {
	if in == nil {
		return []types.SkillWithReview{}
	}
	return append([]types.SkillWithReview(nil), in...)
}

func copySubmission(sub types.InterviewSkillSubmission) types.InterviewSkillSubmission {
	sub.RequiredSkills = copySkills(sub.RequiredSkills)
	sub.PreferredSkills = copySkills(sub.PreferredSkills)
	sub.ExtraSkills = copySkills(sub.ExtraSkills)
	return sub
}

// UpsertSubmission implements Store.
func (m *MemoryStore) UpsertSubmission(_ context.Context, sub *types.InterviewSkillSubmission) (*types.InterviewSkillSubmission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := reviewerKey{sub.InterviewID, sub.UserID}
	stored := copySubmission(*sub)
	stored.Version = m.submissions[key].Version + 1
	stored.UpdatedAt = m.now()
	m.submissions[key] = stored

	keep := make(map[int64]bool)
	for _, fb := range stored.Feedbacks() {
		keep[fb.SkillID] = true
		m.upsertFeedbackLocked(fb)
	}
	for k := range m.feedback {
		if k.interviewID == sub.InterviewID && k.userID == sub.UserID && !keep[k.skillID] {
			delete(m.feedback, k)
		}
	}

	out := copySubmission(stored)
	return &out, nil
}

// GetSubmission implements Store.
func (m *MemoryStore) GetSubmission(_ context.Context, interviewID, userID int64) (*types.InterviewSkillSubmission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, ok := m.submissions[reviewerKey{interviewID, userID}]
	if !ok {
		return nil, nil
	}
	out := copySubmission(sub)
	return &out, nil
}

func (m *MemoryStore) upsertFeedbackLocked(fb types.InterviewFeedback) types.InterviewFeedback {
	key := skillKey{fb.InterviewID, fb.UserID, fb.SkillID}
	fb.Version = m.feedback[key].Version + 1
	fb.UpdatedAt = m.now()
	m.feedback[key] = fb
	return fb
}

// UpsertFeedback implements Store.
func (m *MemoryStore) UpsertFeedback(_ context.Context, fb *types.InterviewFeedback) (*types.InterviewFeedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.upsertFeedbackLocked(*fb)
	return &stored, nil
}

// UpsertHrReview implements Store.
func (m *MemoryStore) UpsertHrReview(_ context.Context, review *types.HrReview) (*types.HrReview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := reviewerKey{review.InterviewID, review.UserID}
	stored := *review
	stored.Version = m.hrReviews[key].Version + 1
	stored.UpdatedAt = m.now()
	m.hrReviews[key] = stored
	return &stored, nil
}

// ListFeedback implements Store. Rows are ordered by reviewer then skill.
func (m *MemoryStore) ListFeedback(_ context.Context, interviewID int64) ([]types.InterviewFeedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rows []types.InterviewFeedback
	for k, fb := range m.feedback {
		if k.interviewID == interviewID {
			rows = append(rows, fb)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].UserID != rows[j].UserID {
			return rows[i].UserID < rows[j].UserID
		}
		return rows[i].SkillID < rows[j].SkillID
	})
	return rows, nil
}

// ListHrReviews implements Store. Reviews are ordered by reviewer.
func (m *MemoryStore) ListHrReviews(_ context.Context, interviewID int64) ([]types.HrReview, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var reviews []types.HrReview
	for k, r := range m.hrReviews {
		if k.interviewID == interviewID {
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].UserID < reviews[j].UserID })
	return reviews, nil
}
