package server

import (
	"fmt"
	"net/http"

	"github.com/jonathan/interview-scorecard/internal/types"
)

func (s *Server) handleCreateInterviewType(w http.ResponseWriter, r *http.Request) {
	var req types.CreateInterviewTypeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	it := req.InterviewType()
	created, err := s.store.CreateInterviewType(r.Context(), &it)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleCreateInterview schedules a round. A round chained to an earlier one through
// result_of may only be scheduled once that round is Selected.
func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	var req types.CreateInterviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	ctx := r.Context()

	if err := s.requireJob(ctx, req.JobID); err != nil {
		writeServiceError(w, err)
		return
	}
	it, err := s.store.GetInterviewType(ctx, req.InterviewTypeID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if it == nil {
		writeServiceError(w, &ErrNotFound{Resource: "interview type", ID: req.InterviewTypeID})
		return
	}

	if req.ResultOf != nil {
		prior, err := s.store.GetInterview(ctx, *req.ResultOf)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if prior == nil {
			writeServiceError(w, &ErrNotFound{Resource: "interview", ID: *req.ResultOf})
			return
		}
		if prior.JobID != req.JobID || prior.CandidateID != req.CandidateID {
			writeServiceError(w, &ErrValidation{Field: "result_of", Message: "must reference a round of the same job and candidate"})
			return
		}
		pending := types.Interview{ResultOf: req.ResultOf}
		if !pending.EligibleAfter(prior) {
			writeServiceError(w, &ErrConflict{Message: fmt.Sprintf("interview %d is %s, not Selected", prior.InterviewID, prior.Status)})
			return
		}
	}

	id, err := s.store.CreateInterview(ctx, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	iv, err := s.loadInterview(ctx, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateRound(ctx, iv)
	writeJSON(w, http.StatusCreated, iv)
}

func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	iv, err := s.loadInterview(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, iv)
}

func (s *Server) handleUpdateInterviewStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req types.UpdateInterviewStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := s.store.UpdateInterviewStatus(r.Context(), id, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	iv, err := s.loadInterview(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateRound(r.Context(), iv)
	writeJSON(w, http.StatusOK, iv)
}
