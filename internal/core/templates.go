package core

import (
	"context"
	"fmt"
)

// Template sheet names.
const (
	TemplateSheetName     = "Template"
	InstructionsSheetName = "Instructions"
)

// templateExample is the sample row shipped under the template header.
var templateExample = []any{"STD-001", "2023-05-01", "95.5", "A", "Active", "Sample data entry"}

var templateInstructions = []string{
	"Please follow these guidelines when filling the template:",
	"1. standardid: A unique identifier for each record (e.g., STD-001, STD-002)",
	"2. tanggal: Date in YYYY-MM-DD format (e.g., 2023-05-01)",
	"3. actual: The actual value (can be text or numeric)",
	"4. kategori: Category classification (e.g., A, B, C)",
	"5. status: Current status (e.g., Active, Pending, Completed)",
	"6. keterangan: Optional notes or comments",
}

// TemplateSheets returns the import template: a Template sheet with the
// import header and one example row, then an Instructions sheet.
func TemplateSheets() []Sheet {
	header := make([]string, len(ImportColumns))
	copy(header, ImportColumns)

	instructions := make([][]any, 0, len(templateInstructions)+1)
	instructions = append(instructions, []any{nil})
	for _, line := range templateInstructions {
		instructions = append(instructions, []any{line})
	}

	return []Sheet{
		{Name: TemplateSheetName, Header: header, Rows: [][]any{templateExample}},
		{Name: InstructionsSheetName, Header: []string{"Import Instructions"}, Rows: instructions},
	}
}

// Template renders the import template workbook.
func (s *Service) Template(ctx context.Context) ([]byte, error) {
	data, err := s.writer.Write(ctx, TemplateSheets()...)
	if err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return data, nil
}
