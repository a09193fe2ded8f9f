package web

import (
	"net/http"
)

// handleValidate dry-runs an uploaded workbook and returns the report.
// Row problems are part of a 200 response; only unreadable uploads and
// store failures are errors.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	data, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	report, err := s.service.Validate(r.Context(), data)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleImport stores every acceptable row of an uploaded workbook and
// returns the imported and rejected counts.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	result, err := s.service.Import(r.Context(), data)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleUploadQueueStatus returns the current state of the upload limiter.
// Used for monitoring and to check if the system can accept more uploads.
func (s *Server) handleUploadQueueStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.UploadLimiterStatus())
}
