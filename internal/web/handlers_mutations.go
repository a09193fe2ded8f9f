package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/sheetimport/internal/core"
)

// handleCreateRecord stores one record from a JSON object keyed by column
// name, with the same rules an uploaded row must pass.
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var row core.Row
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		err = fmt.Errorf("%w: %w", errBadBody, err)
		s.respondError(w, r, err, statusFor(err))
		return
	}

	rec, err := s.service.CreateRecord(r.Context(), row)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}
