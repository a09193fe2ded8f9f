package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/sheetimport/internal/core"
)

// ExportFileName is the download name of an export.
const ExportFileName = "exported_data.xlsx"

// exportRequest is the JSON body of POST /api/excel/export.
type exportRequest struct {
	Columns   []string `json:"columns"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
}

// handleListRecords returns every stored record.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.ListRecords(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if records == nil {
		records = []core.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// handleExport renders the selected columns of records in the optional
// date range as a workbook download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var body exportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		err = fmt.Errorf("%w: %w", errBadBody, err)
		s.respondError(w, r, err, statusFor(err))
		return
	}

	dateRange, err := core.ParseDateRange(body.StartDate, body.EndDate)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	data, err := s.service.Export(r.Context(), core.ExportRequest{Columns: body.Columns, Range: dateRange})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeXLSX(w, ExportFileName, data)
}

// handleHealth pings the store when a health check is configured.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.respondError(w, r, err, http.StatusServiceUnavailable)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
