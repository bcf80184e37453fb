package feedback

import (
	"context"

	"github.com/jonathan/interview-scorecard/internal/scoring"
	"github.com/jonathan/interview-scorecard/internal/types"
)

// Store persists feedback keyed by natural keys. Every write is an upsert: the row for
// the key is replaced in full and its version incremented. Concurrent writes to the
// same key are last-write-wins.
type Store interface {
	// UpsertSubmission replaces the reviewer's submission for the interview and the
	// per-skill feedback rows derived from it.
	UpsertSubmission(ctx context.Context, sub *types.InterviewSkillSubmission) (*types.InterviewSkillSubmission, error)
	// GetSubmission returns nil, nil when the reviewer has not submitted.
	GetSubmission(ctx context.Context, interviewID, userID int64) (*types.InterviewSkillSubmission, error)
	UpsertFeedback(ctx context.Context, fb *types.InterviewFeedback) (*types.InterviewFeedback, error)
	UpsertHrReview(ctx context.Context, review *types.HrReview) (*types.HrReview, error)
	ListFeedback(ctx context.Context, interviewID int64) ([]types.InterviewFeedback, error)
	ListHrReviews(ctx context.Context, interviewID int64) ([]types.HrReview, error)
}

// PrepareSubmission checks a posted submission against the job's skills and the
// skill catalog and recomputes its total. Required and preferred entries must be
// job skills of that type, extra entries must be catalog skills not on the job, and
// no skill may appear twice across the three lists. Skill names are taken from the
// job and catalog rather than the request.
func PrepareSubmission(sub *types.InterviewSkillSubmission, jobSkills []types.JobSkill, catalog []types.Skill) error {
	onJob := make(map[int64]types.JobSkill, len(jobSkills))
	for _, js := range jobSkills {
		if _, dup := onJob[js.SkillID]; !dup {
			onJob[js.SkillID] = js
		}
	}
	names := make(map[int64]string, len(catalog))
	for _, s := range catalog {
		names[s.SkillID] = s.SkillName
	}

	seen := make(map[int64]bool)
	checkJobList := func(skills []types.SkillWithReview, want types.SkillType) error {
		for i := range skills {
			id := skills[i].SkillID
			if seen[id] {
				return &ErrRepeatedSkill{SkillID: id}
			}
			seen[id] = true
			js, ok := onJob[id]
			if !ok || listOf(js.SkillType) != want {
				return &ErrSkillNotOnForm{SkillID: id, List: want}
			}
			if js.SkillName != "" {
				skills[i].SkillName = js.SkillName
			}
		}
		return nil
	}

	if err := checkJobList(sub.RequiredSkills, types.SkillTypeRequired); err != nil {
		return err
	}
	if err := checkJobList(sub.PreferredSkills, types.SkillTypePreferred); err != nil {
		return err
	}
	for i := range sub.ExtraSkills {
		id := sub.ExtraSkills[i].SkillID
		if seen[id] {
			return &ErrRepeatedSkill{SkillID: id}
		}
		seen[id] = true
		if _, ok := onJob[id]; ok {
			return &ErrDuplicateExtraSkill{SkillID: id}
		}
		name, known := names[id]
		if !known {
			return &ErrUnknownSkill{SkillID: id}
		}
		sub.ExtraSkills[i].SkillName = name
	}

	sub.TotalScore = scoring.SkillReviewTotal(sub.AllSkills())
	return nil
}

// listOf maps a job skill type onto the form list it is shown in.
func listOf(t types.SkillType) types.SkillType {
	if t == types.SkillTypePreferred {
		return types.SkillTypePreferred
	}
	return types.SkillTypeRequired
}
