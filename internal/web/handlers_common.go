package web

// handlers_common.go holds helpers shared by the upload and download handlers.

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
)

// XLSXContentType is the media type of .xlsx workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// multipartOverhead is the room left for form boundaries and part headers
// on top of the file size limit.
const multipartOverhead = 64 << 10

// readUpload returns the bytes of the multipart "file" field after checking
// its size and type.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit is %d bytes", errFileTooLarge, maxSize)
		}
		return nil, fmt.Errorf("%w: %w", errNoFile, err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errNoFile
	}
	defer file.Close()

	if header.Size > maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", errFileTooLarge, header.Size, maxSize)
	}
	if !isXLSX(header.Header.Get("Content-Type"), header.Filename) {
		return nil, fmt.Errorf("%w (%s)", errUnsupportedType, header.Filename)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

// isXLSX accepts the .xlsx media type. Clients that only send a generic
// binary type are accepted when the filename ends in .xlsx.
func isXLSX(contentType, filename string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = ""
	}
	switch mediaType {
	case XLSXContentType:
		return true
	case "", "application/octet-stream":
		return strings.EqualFold(filepath.Ext(filename), ".xlsx")
	default:
		return false
	}
}

// writeXLSX sends workbook bytes as a file download.
func writeXLSX(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
