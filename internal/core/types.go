package core

import (
	"encoding/json"
	"time"
)

// Sheet column names. Uploaded rows, exports and record JSON all use these.
const (
	ColID         = "id"
	ColStandardID = "standardid"
	ColDate       = "tanggal"
	ColActual     = "actual"
	ColCategory   = "kategori"
	ColStatus     = "status"
	ColNote       = "keterangan"
	ColCreatedAt  = "created_at"
	ColUpdatedAt  = "updated_at"
)

// DateLayout is the only accepted date text form.
const DateLayout = "2006-01-02"

// ImportColumns are the columns an uploaded sheet carries, in template order.
var ImportColumns = []string{ColStandardID, ColDate, ColActual, ColCategory, ColStatus, ColNote}

// RecordColumns are every column a stored record can be exported with.
var RecordColumns = []string{
	ColID, ColStandardID, ColDate, ColActual, ColCategory,
	ColStatus, ColNote, ColCreatedAt, ColUpdatedAt,
}

// Row is one parsed spreadsheet row keyed by header name. Values are
// string, float64 or nil.
type Row map[string]any

// Record is a persisted entry. ID, CreatedAt and UpdatedAt are assigned by
// the store.
type Record struct {
	ID         int64
	StandardID string
	Date       time.Time
	Actual     string
	Category   string
	Status     string
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type recordJSON struct {
	ID         int64     `json:"id"`
	StandardID string    `json:"standardid"`
	Date       string    `json:"tanggal"`
	Actual     string    `json:"actual"`
	Category   string    `json:"kategori"`
	Status     string    `json:"status"`
	Note       *string   `json:"keterangan"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MarshalJSON renders tanggal as a plain date.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		ID:         r.ID,
		StandardID: r.StandardID,
		Date:       r.Date.Format(DateLayout),
		Actual:     r.Actual,
		Category:   r.Category,
		Status:     r.Status,
		Note:       r.Note,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	})
}

// NewRecord is a record that has not been stored yet.
type NewRecord struct {
	StandardID string
	Date       time.Time
	Actual     string
	Category   string
	Status     string
	Note       *string
}

// FieldError lists every problem found on one row. Row is the 0-based
// position in the parsed sequence.
type FieldError struct {
	Row      int      `json:"row"`
	Messages []string `json:"messages"`
}

// ValidationReport is the dry-run outcome of an upload.
type ValidationReport struct {
	Valid   bool         `json:"valid"`
	Errors  []FieldError `json:"errors"`
	Preview []Row        `json:"preview"`
}

// ImportResult counts what happened to each parsed row.
type ImportResult struct {
	Imported int `json:"imported"`
	Rejected int `json:"rejected"`
}

// DateRange bounds an export. Nil ends are open; set ends are inclusive.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	if r.Start != nil && d.Before(*r.Start) {
		return false
	}
	if r.End != nil && d.After(*r.End) {
		return false
	}
	return true
}
