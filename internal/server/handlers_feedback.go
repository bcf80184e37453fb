package server

import (
	"context"
	"net/http"
	"slices"

	"github.com/jonathan/interview-scorecard/internal/feedback"
	"github.com/jonathan/interview-scorecard/internal/server/middleware"
	"github.com/jonathan/interview-scorecard/internal/types"
)

// loadInterview fetches an interview or returns ErrNotFound.
func (s *Server) loadInterview(ctx context.Context, id int64) (*types.Interview, error) {
	iv, err := s.store.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv == nil {
		return nil, &ErrNotFound{Resource: "interview", ID: id}
	}
	return iv, nil
}

// reviewerContext resolves the interview in the path and checks the caller is one of its
// assigned interviewers, whatever their role.
func (s *Server) reviewerContext(r *http.Request) (*types.Interview, middleware.Principal, error) {
	p, err := middleware.GetPrincipal(r)
	if err != nil {
		return nil, p, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, p, err
	}
	iv, err := s.loadInterview(r.Context(), id)
	if err != nil {
		return nil, p, err
	}
	if !slices.Contains(iv.InterviewerIDs, p.UserID) {
		return nil, p, &ErrForbidden{Reason: "not assigned to this interview"}
	}
	return iv, p, nil
}

func requireCategory(iv *types.Interview, category types.RoundCategory) error {
	if iv.InterviewType.Category != category {
		return &ErrConflict{Message: "interview " + iv.InterviewType.InterviewRoundName + " is not a " + string(category) + " round"}
	}
	return nil
}

// loadForm builds the caller's review form for iv with any previous submission applied.
func (s *Server) loadForm(ctx context.Context, iv *types.Interview, userID int64) (*feedback.Form, []types.JobSkill, error) {
	jobSkills, err := s.store.ListJobSkills(ctx, iv.JobID)
	if err != nil {
		return nil, nil, err
	}
	prev, err := s.store.GetSubmission(ctx, iv.InterviewID, userID)
	if err != nil {
		return nil, nil, err
	}
	form := feedback.NewForm(iv.InterviewID, userID, iv.CandidateID, jobSkills)
	form.Load(prev)
	return form, jobSkills, nil
}

// saveSubmission validates, stores and invalidates in one step.
func (s *Server) saveSubmission(ctx context.Context, iv *types.Interview, sub *types.InterviewSkillSubmission, jobSkills []types.JobSkill) (*types.InterviewSkillSubmission, error) {
	if err := validateRequest(sub); err != nil {
		return nil, err
	}
	catalog, err := s.store.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	if err := feedback.PrepareSubmission(sub, jobSkills, catalog); err != nil {
		return nil, err
	}
	saved, err := s.store.UpsertSubmission(ctx, sub)
	if err != nil {
		return nil, err
	}
	s.invalidateRound(ctx, iv)
	return saved, nil
}

// handleSubmitSkillReview stores the caller's full skill review for a technical round.
func (s *Server) handleSubmitSkillReview(w http.ResponseWriter, r *http.Request) {
	iv, p, err := s.reviewerContext(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := requireCategory(iv, types.RoundTechnical); err != nil {
		writeServiceError(w, err)
		return
	}

	var sub types.InterviewSkillSubmission
	if err := decodeBody(w, r, &sub); err != nil {
		writeServiceError(w, err)
		return
	}
	if sub.CandidateID != "" && sub.CandidateID != iv.CandidateID {
		writeServiceError(w, &ErrValidation{Field: "candidate_id", Message: "does not match the interview"})
		return
	}
	sub.InterviewID = iv.InterviewID
	sub.UserID = p.UserID
	sub.CandidateID = iv.CandidateID

	jobSkills, err := s.store.ListJobSkills(r.Context(), iv.JobID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	saved, err := s.saveSubmission(r.Context(), iv, &sub, jobSkills)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// handleGetSkillReview returns a reviewer's stored skill review. Reviewers may read their
// own; Admin, HR and Recruiter may read anyone's.
func (s *Server) handleGetSkillReview(w http.ResponseWriter, r *http.Request) {
	p, err := middleware.GetPrincipal(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	interviewID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if userID != p.UserID && !slices.Contains(schedulerRoles, p.Role) {
		writeServiceError(w, &ErrForbidden{Reason: "cannot read another reviewer's skill review"})
		return
	}

	sub, err := s.store.GetSubmission(r.Context(), interviewID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sub == nil {
		writeServiceError(w, &ErrNotFound{Resource: "skill review", ID: userID})
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// skillFormResponse is the caller's review form plus skills the candidate claims that
// could be added as extras.
type skillFormResponse struct {
	Submission  types.InterviewSkillSubmission `json:"submission"`
	Suggestions []types.CandidateSkillClaim    `json:"suggestions"`
}

// handleGetSkillForm returns the caller's review form, prefilled from any earlier submission.
func (s *Server) handleGetSkillForm(w http.ResponseWriter, r *http.Request) {
	iv, p, err := s.reviewerContext(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	form, jobSkills, err := s.loadForm(r.Context(), iv, p.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	claims, err := s.store.ListCandidateSkills(r.Context(), iv.CandidateID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	onJob := make(map[int64]bool, len(jobSkills))
	for _, js := range jobSkills {
		onJob[js.SkillID] = true
	}
	suggestions := []types.CandidateSkillClaim{}
	for _, c := range claims {
		if !onJob[c.SkillID] {
			suggestions = append(suggestions, c)
		}
	}

	writeJSON(w, http.StatusOK, skillFormResponse{Submission: form.Submission(), Suggestions: suggestions})
}

// extraSkillResponse reports what toggling an extra skill did.
type extraSkillResponse struct {
	Outcome    string                          `json:"outcome"`
	Warning    *feedback.Warning               `json:"warning,omitempty"`
	Submission *types.InterviewSkillSubmission `json:"submission"`
}

// handleToggleExtraSkill adds or removes an extra skill on the caller's stored review.
// A skill already required or preferred by the job is refused with a warning and
// nothing is saved.
func (s *Server) handleToggleExtraSkill(w http.ResponseWriter, r *http.Request) {
	iv, p, err := s.reviewerContext(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := requireCategory(iv, types.RoundTechnical); err != nil {
		writeServiceError(w, err)
		return
	}

	var req types.ToggleExtraSkillRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	skill, err := s.findSkill(r.Context(), req.SkillID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	form, jobSkills, err := s.loadForm(r.Context(), iv, p.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	outcome, warning := form.AddExtraSkill(*skill)
	sub := form.Submission()
	if warning != nil {
		writeJSON(w, http.StatusOK, extraSkillResponse{Outcome: outcome.String(), Warning: warning, Submission: &sub})
		return
	}

	saved, err := s.saveSubmission(r.Context(), iv, &sub, jobSkills)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, extraSkillResponse{Outcome: outcome.String(), Submission: saved})
}

// findSkill looks a skill up in the catalog.
func (s *Server) findSkill(ctx context.Context, skillID int64) (*types.Skill, error) {
	skills, err := s.store.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	for i := range skills {
		if skills[i].SkillID == skillID {
			return &skills[i], nil
		}
	}
	return nil, &ErrNotFound{Resource: "skill", ID: skillID}
}

// handlePutFeedback upserts the caller's per-skill ratings for a technical round.
func (s *Server) handlePutFeedback(w http.ResponseWriter, r *http.Request) {
	iv, p, err := s.reviewerContext(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := requireCategory(iv, types.RoundTechnical); err != nil {
		writeServiceError(w, err)
		return
	}

	var batch types.FeedbackBatch
	if err := decodeBody(w, r, &batch); err != nil {
		writeServiceError(w, err)
		return
	}
	for i := range batch.Feedbacks {
		batch.Feedbacks[i].InterviewID = iv.InterviewID
		batch.Feedbacks[i].UserID = p.UserID
	}
	if err := validateRequest(&batch); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := s.checkFeedbackSkills(r.Context(), batch.Feedbacks); err != nil {
		writeServiceError(w, err)
		return
	}

	saved := make([]types.InterviewFeedback, 0, len(batch.Feedbacks))
	for i := range batch.Feedbacks {
		fb, err := s.store.UpsertFeedback(r.Context(), &batch.Feedbacks[i])
		if err != nil {
			writeServiceError(w, err)
			return
		}
		saved = append(saved, *fb)
	}
	s.invalidateRound(r.Context(), iv)
	writeJSON(w, http.StatusOK, types.FeedbackBatch{Feedbacks: saved})
}

// checkFeedbackSkills rejects rows naming a skill missing from the catalog or the same
// skill twice.
func (s *Server) checkFeedbackSkills(ctx context.Context, rows []types.InterviewFeedback) error {
	catalog, err := s.store.ListSkills(ctx)
	if err != nil {
		return err
	}
	known := make(map[int64]bool, len(catalog))
	for _, sk := range catalog {
		known[sk.SkillID] = true
	}
	seen := make(map[int64]bool, len(rows))
	for _, fb := range rows {
		if !known[fb.SkillID] {
			return &feedback.ErrUnknownSkill{SkillID: fb.SkillID}
		}
		if seen[fb.SkillID] {
			return &feedback.ErrRepeatedSkill{SkillID: fb.SkillID}
		}
		seen[fb.SkillID] = true
	}
	return nil
}

// handlePutHrReview upserts the caller's review for an HR round.
func (s *Server) handlePutHrReview(w http.ResponseWriter, r *http.Request) {
	iv, p, err := s.reviewerContext(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := requireCategory(iv, types.RoundHR); err != nil {
		writeServiceError(w, err)
		return
	}

	var review types.HrReview
	if err := decodeBody(w, r, &review); err != nil {
		writeServiceError(w, err)
		return
	}
	review.InterviewID = iv.InterviewID
	review.UserID = p.UserID
	if err := validateRequest(&review); err != nil {
		writeServiceError(w, err)
		return
	}

	saved, err := s.store.UpsertHrReview(r.Context(), &review)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateRound(r.Context(), iv)
	writeJSON(w, http.StatusOK, saved)
}
