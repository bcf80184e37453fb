package server

import (
	"context"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/jonathan/interview-scorecard/internal/scoring"
	"github.com/jonathan/interview-scorecard/internal/types"
)

// roundRequest is a parsed GET /round-ratings query.
type roundRequest struct {
	query     types.RoundQuery
	minRating float64
	labels    scoring.LabelStyle
}

func (s *Server) parseRoundRequest(r *http.Request) (*roundRequest, error) {
	q := r.URL.Query()
	req := &roundRequest{minRating: s.minRating, labels: s.labels}

	jobID, err := strconv.ParseInt(q.Get("job_id"), 10, 64)
	if err != nil {
		return nil, &ErrValidation{Field: "job_id", Message: "must be an integer"}
	}
	roundNumber, err := strconv.Atoi(q.Get("round_number"))
	if err != nil {
		return nil, &ErrValidation{Field: "round_number", Message: "must be an integer"}
	}
	req.query = types.RoundQuery{JobID: jobID, CandidateID: q.Get("candidate_id"), RoundNumber: roundNumber}
	if err := validateRequest(&req.query); err != nil {
		return nil, err
	}

	if raw := q.Get("min_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &ErrValidation{Field: "min_rating", Message: "must be a finite number"}
		}
		req.minRating = v
	}
	if raw := q.Get("labels"); raw != "" {
		req.labels = scoring.ParseLabelStyle(raw)
	}
	return req, nil
}

// handleRoundRatings returns one scorecard per interview matching the job, candidate and
// round. The cutoff only affects this response and is never stored.
func (s *Server) handleRoundRatings(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRoundRequest(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rounds, err := s.loadRounds(r.Context(), req.query)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	cards := make([]scoring.RoundCard, 0, len(rounds))
	for _, rd := range rounds {
		cards = append(cards, scoring.RoundRatings(rd, req.minRating, req.labels))
	}
	writeJSON(w, http.StatusOK, cards)
}

// loadRounds reads through the round cache. Cache failures are logged and bypassed.
func (s *Server) loadRounds(ctx context.Context, q types.RoundQuery) ([]types.RoundData, error) {
	rounds, ok, err := s.cache.Get(ctx, q)
	if err != nil {
		log.Printf("[cache] Round lookup failed for job=%d candidate=%s round=%d: %v", q.JobID, q.CandidateID, q.RoundNumber, err)
	}
	if ok {
		return rounds, nil
	}

	rounds, err = s.store.GetRoundData(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, q, rounds); err != nil {
		log.Printf("[cache] Failed to store round for job=%d candidate=%s round=%d: %v", q.JobID, q.CandidateID, q.RoundNumber, err)
	}
	return rounds, nil
}

// invalidateRound drops cached round data after a write touching iv.
func (s *Server) invalidateRound(ctx context.Context, iv *types.Interview) {
	if err := s.cache.Invalidate(ctx, iv); err != nil {
		log.Printf("[cache] Failed to invalidate round of interview %d: %v", iv.InterviewID, err)
	}
}

// invalidateAllRounds drops every cached round after a change that can touch any round.
func (s *Server) invalidateAllRounds(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Printf("[cache] Failed to flush cached rounds: %v", err)
	}
}
