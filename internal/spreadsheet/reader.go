// Package spreadsheet reads and writes .xlsx workbooks with excelize.
//
// The Reader turns the first worksheet into core.Row values: the first row
// is the header, every header column appears in every row, empty cells are
// nil, numbers are float64, date-formatted cells become "YYYY-MM-DD" text
// and everything else is plain text.
package spreadsheet

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/sheetimport/internal/core"
)

// Reader is a core.Parser for .xlsx workbooks.
type Reader struct{}

// NewReader returns a Reader.
func NewReader() *Reader { return &Reader{} }

var _ core.Parser = (*Reader)(nil)

// Parse reads the first worksheet of data. Fully blank rows are skipped.
// Unreadable bytes and workbooks without a sheet fail with core.ErrParse.
func (r *Reader) Parse(ctx context.Context, data []byte) ([]core.Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.ErrNoWorksheet
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %w", core.ErrParse, sheet, err)
	}
	if len(raw) == 0 {
		return []core.Row{}, nil
	}

	cells := &cellReader{f: f, sheet: sheet, date1904: uses1904(f)}
	header := headerNames(raw[0])

	rows := make([]core.Row, 0, len(raw)-1)
	for i, values := range raw[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isEmptyRow(values) {
			continue
		}

		rowNum := i + 2
		row := make(core.Row, len(header))
		for col, name := range header {
			if name == "" {
				continue
			}
			var value string
			if col < len(values) {
				value = values[col]
			}
			row[name], err = cells.value(col+1, rowNum, value)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", core.ErrParse, err)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// headerNames trims header cells. Unnamed columns keep an empty name and
// are not read.
func headerNames(cells []string) []string {
	names := make([]string, len(cells))
	for i, c := range cells {
		names[i] = strings.TrimSpace(c)
	}
	return names
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func uses1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

type cellReader struct {
	f        *excelize.File
	sheet    string
	date1904 bool
}

// value converts one raw cell to a row value.
func (c *cellReader) value(col, row int, raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}

	typ, err := c.f.GetCellType(c.sheet, axis)
	if err != nil {
		return nil, fmt.Errorf("cell %s: %w", axis, err)
	}

	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		num, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return raw, nil
		}
		isDate, err := c.dateFormatted(axis)
		if err != nil {
			return nil, err
		}
		if isDate {
			t, err := excelize.ExcelDateToTime(num, c.date1904)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", axis, err)
			}
			return t.Format(core.DateLayout), nil
		}
		return num, nil

	case excelize.CellTypeDate:
		// ISO 8601 date cells ("d" type).
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", core.DateLayout} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.Format(core.DateLayout), nil
			}
		}
		return raw, nil

	case excelize.CellTypeBool:
		if raw == "1" {
			return "TRUE", nil
		}
		return "FALSE", nil

	default:
		// Shared, inline (rich text is flattened by excelize), formula
		// string results and error values are all text.
		return raw, nil
	}
}

func (c *cellReader) dateFormatted(axis string) (bool, error) {
	idx, err := c.f.GetCellStyle(c.sheet, axis)
	if err != nil {
		return false, fmt.Errorf("cell %s style: %w", axis, err)
	}
	if idx == 0 {
		return false, nil
	}
	style, err := c.f.GetStyle(idx)
	if err != nil {
		return false, fmt.Errorf("cell %s style: %w", axis, err)
	}
	return isDateFormat(style.NumFmt, style.CustomNumFmt), nil
}

// isDateFormat reports whether a number format renders a calendar date.
// Time-only built-ins (18-21, 45-47) stay numeric. Custom codes count when
// they carry a year or day token outside literals.
func isDateFormat(id int, custom *string) bool {
	switch {
	case id >= 14 && id <= 17,
		id == 22,
		id >= 27 && id <= 36,
		id >= 50 && id <= 58:
		return true
	}
	if custom == nil {
		return false
	}
	return customDateFormat(*custom)
}

func customDateFormat(code string) bool {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && !inQuote:
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	lower := strings.ToLower(b.String())
	return strings.ContainsAny(lower, "yd")
}
