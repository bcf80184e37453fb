package server

import (
	"net/http"

	"github.com/jonathan/interview-scorecard/internal/types"
)

// ---------------------------------------------------------------------
// User Handlers
// ---------------------------------------------------------------------

// handleUpdateUserRole assigns a role to a user. Self-registered users start as
// types.RegistrationRole and only an Admin can promote them.
func (s *Server) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req types.UpdateUserRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	user, err := s.userService.SetRole(r.Context(), userID, req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
