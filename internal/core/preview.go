package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/sheetimport/internal/logging"
)

// PreviewSize is the number of leading rows echoed back in a report.
const PreviewSize = 10

// EmptyFileMessage is reported when an upload has no data rows.
const EmptyFileMessage = "File is empty. Please upload a file with data."

// Validate performs a read-only dry run of an upload. It parses the file,
// checks every row against the schema and against the keys already stored,
// and reports every problem without writing anything.
//
// Only parse and store failures return an error; row problems land in the
// report.
func (s *Service) Validate(ctx context.Context, data []byte) (*ValidationReport, error) {
	ctx, done, err := s.beginUpload(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	startTime := time.Now()
	logger := logging.WithFields(ctx, "validation_id", uuid.NewString(), "bytes", len(data))

	rows, err := s.parser.Parse(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("parse upload: %w", err)
	}

	if len(rows) == 0 {
		logger.Info("validation rejected empty file")
		return emptyFileReport(), nil
	}

	keys, err := s.store.ListStandardIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list standard ids: %w", err)
	}

	report := buildReport(s.schema, NewKeySet(keys...), rows)

	logger.Info("validation completed",
		"rows", len(rows),
		"error_rows", len(report.Errors),
		"valid", report.Valid,
		"duration_ms", time.Since(startTime).Milliseconds(),
	)

	return report, nil
}

// buildReport merges schema and duplicate findings per row. Schema messages
// come first.
func buildReport(schema Schema, existing KeySet, rows []Row) *ValidationReport {
	dupes := DetectDuplicates(existing, rows)

	report := &ValidationReport{
		Errors:  []FieldError{},
		Preview: rows[:min(PreviewSize, len(rows))],
	}

	for i, row := range rows {
		msgs := schema.Validate(row)
		msgs = append(msgs, dupes[i]...)
		if len(msgs) > 0 {
			report.Errors = append(report.Errors, FieldError{Row: i, Messages: msgs})
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}

func emptyFileReport() *ValidationReport {
	return &ValidationReport{
		Valid:   false,
		Errors:  []FieldError{{Row: 0, Messages: []string{EmptyFileMessage}}},
		Preview: []Row{},
	}
}
