package server

import (
	"context"
	"net/http"

	"github.com/jonathan/interview-scorecard/internal/types"
)

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.store.ListSkills(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if skills == nil {
		skills = []types.Skill{}
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSkillRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	skill, err := s.store.CreateSkill(r.Context(), req.SkillName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, skill)
}

func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := s.store.DeleteSkill(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	// Feedback rows for the skill are gone from every round that rated it
	s.invalidateAllRounds(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// requireJob returns ErrNotFound when the job does not exist.
func (s *Server) requireJob(ctx context.Context, id int64) error {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return &ErrNotFound{Resource: "job", ID: id}
	}
	return nil
}

func (s *Server) handleListJobSkills(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := s.requireJob(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	skills, err := s.store.ListJobSkills(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if skills == nil {
		skills = []types.JobSkill{}
	}
	writeJSON(w, http.StatusOK, skills)
}

// handleReplaceJobSkills swaps the job's whole skill list. A skill may appear once.
func (s *Server) handleReplaceJobSkills(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req types.ReplaceJobSkillsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	seen := make(map[int64]bool, len(req.Skills))
	for _, js := range req.Skills {
		if seen[js.SkillID] {
			writeServiceError(w, &ErrValidation{Field: "skills", Message: "duplicate skill_id"})
			return
		}
		seen[js.SkillID] = true
	}
	if err := s.requireJob(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	if err := s.store.ReplaceJobSkills(r.Context(), id, req.Skills); err != nil {
		writeServiceError(w, err)
		return
	}
	skills, err := s.store.ListJobSkills(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if skills == nil {
		skills = []types.JobSkill{}
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	job, err := s.store.CreateJob(r.Context(), req.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// candidateResponse is a registered candidate with their claimed skills.
type candidateResponse struct {
	types.Candidate
	Skills []types.CandidateSkillClaim `json:"skills"`
}

// handleCreateCandidate registers or updates a candidate and adds their claimed skills.
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCandidateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	candidate := req.Candidate()
	if err := s.store.UpsertCandidate(r.Context(), &candidate); err != nil {
		writeServiceError(w, err)
		return
	}
	for _, skillID := range req.SkillIDs {
		if err := s.store.AddCandidateSkill(r.Context(), candidate.CandidateID, skillID); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	claims, err := s.store.ListCandidateSkills(r.Context(), candidate.CandidateID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if claims == nil {
		claims = []types.CandidateSkillClaim{}
	}
	writeJSON(w, http.StatusCreated, candidateResponse{Candidate: candidate, Skills: claims})
}

func (s *Server) handleListCandidateSkills(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeServiceError(w, &ErrValidation{Field: "id", Message: "required"})
		return
	}
	claims, err := s.store.ListCandidateSkills(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if claims == nil {
		claims = []types.CandidateSkillClaim{}
	}
	writeJSON(w, http.StatusOK, claims)
}
