package core

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ExportSheetName names the single worksheet of an export.
const ExportSheetName = "Data"

// ErrNoColumns is returned when an export selects no known column.
var ErrNoColumns = errors.New("no export columns selected")

// ExportRequest selects what to export.
type ExportRequest struct {
	Columns []string
	Range   DateRange
}

// SelectColumns keeps the requested names that are record columns, in
// request order. Unknown names and repeats are dropped.
func SelectColumns(requested []string) []string {
	known := NewKeySet(RecordColumns...)
	picked := make(KeySet, len(requested))
	out := make([]string, 0, len(requested))
	for _, c := range requested {
		if !known.Has(c) || picked.Has(c) {
			continue
		}
		picked.Add(c)
		out = append(out, c)
	}
	return out
}

// Export renders the records inside the request's date range as a workbook
// holding one Data sheet.
func (s *Service) Export(ctx context.Context, req ExportRequest) ([]byte, error) {
	sheet, err := s.ExportSheet(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := s.writer.Write(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("write export: %w", err)
	}
	return data, nil
}

// ExportSheet builds the export sheet without rendering it.
func (s *Service) ExportSheet(ctx context.Context, req ExportRequest) (Sheet, error) {
	columns := SelectColumns(req.Columns)
	if len(columns) == 0 {
		return Sheet{}, ErrNoColumns
	}

	records, err := s.store.QueryByDateRange(ctx, req.Range)
	if err != nil {
		return Sheet{}, fmt.Errorf("query records: %w", err)
	}

	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(columns))
		for j, col := range columns {
			row[j] = exportValue(rec, col)
		}
		rows[i] = row
	}

	return Sheet{Name: ExportSheetName, Header: columns, Rows: rows}, nil
}

// exportValue renders one record field. Dates are plain text so the
// workbook shows exactly what was imported.
func exportValue(rec Record, col string) any {
	switch col {
	case ColID:
		return rec.ID
	case ColStandardID:
		return rec.StandardID
	case ColDate:
		return rec.Date.Format(DateLayout)
	case ColActual:
		return rec.Actual
	case ColCategory:
		return rec.Category
	case ColStatus:
		return rec.Status
	case ColNote:
		if rec.Note == nil {
			return nil
		}
		return *rec.Note
	case ColCreatedAt:
		return rec.CreatedAt.UTC().Format(time.RFC3339)
	case ColUpdatedAt:
		return rec.UpdatedAt.UTC().Format(time.RFC3339)
	default:
		return nil
	}
}

// ParseDateRange builds a range from optional bound texts. Empty text leaves
// that end open. Bounds are YYYY-MM-DD; RFC 3339 timestamps are accepted and
// reduced to their UTC day.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	var err error
	if r.Start, err = parseBound(start); err != nil {
		return DateRange{}, fmt.Errorf("start date: %w", err)
	}
	if r.End, err = parseBound(end); err != nil {
		return DateRange{}, fmt.Errorf("end date: %w", err)
	}
	return r, nil
}

func parseBound(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		ts = ts.UTC()
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		return &day, nil
	}
	day, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &day, nil
}
