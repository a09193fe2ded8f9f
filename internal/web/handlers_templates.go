package web

import "net/http"

// TemplateFileName is the download name of the import template.
const TemplateFileName = "import_template.xlsx"

// handleDownloadTemplate serves the blank import workbook.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.Template(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeXLSX(w, TemplateFileName, data)
}
