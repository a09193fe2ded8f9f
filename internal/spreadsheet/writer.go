package spreadsheet

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/sheetimport/internal/core"
)

// defaultSheet is the sheet excelize creates with every new file.
const defaultSheet = "Sheet1"

// Writer is a core.Writer producing .xlsx bytes.
type Writer struct{}

// NewWriter returns a Writer.
func NewWriter() *Writer { return &Writer{} }

var _ core.Writer = (*Writer)(nil)

// Write renders sheets in order. The first sheet is active. Each sheet gets
// its header on row 1 and its rows below; nil values leave the cell empty.
func (w *Writer) Write(ctx context.Context, sheets ...core.Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, errors.New("write workbook: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := addSheet(f, i, sh.Name); err != nil {
			return nil, err
		}
		if err := writeSheet(f, sh); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func addSheet(f *excelize.File, index int, name string) error {
	if index == 0 {
		if name == defaultSheet {
			return nil
		}
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("rename sheet %q: %w", name, err)
		}
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("add sheet %q: %w", name, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sh core.Sheet) error {
	header := make([]any, len(sh.Header))
	for i, h := range sh.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sh.Name, "A1", &header); err != nil {
		return fmt.Errorf("sheet %q header: %w", sh.Name, err)
	}

	for r, row := range sh.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.Name, cell, &row); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", sh.Name, r+2, err)
		}
	}
	return nil
}
