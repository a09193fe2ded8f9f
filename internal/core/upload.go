package core

// upload.go implements the import pipeline.
//
// Import re-validates every row on its own; it never trusts an earlier
// Validate call. A row is imported only when it passes the schema, its key
// is not in the store, and its key is not already queued earlier in the same
// batch. Everything else is counted as rejected. The accepted rows are
// written with a single CreateBatch call, so a store failure leaves nothing
// behind.

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/sheetimport/internal/logging"
)

// Import parses data and stores every acceptable row.
//
// Parse and store errors are terminal and abort the whole call. Per-row
// detail is only available through Validate.
func (s *Service) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	ctx, done, err := s.beginUpload(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	startTime := time.Now()
	logger := logging.WithFields(ctx, "import_id", uuid.NewString(), "bytes", len(data))

	rows, err := s.parser.Parse(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("parse upload: %w", err)
	}

	result := &ImportResult{}
	batch := make([]NewRecord, 0, len(rows))
	queued := make(KeySet)

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if msgs := s.schema.Validate(row); len(msgs) > 0 {
			logger.Debug("row rejected", "row", i, "reason", msgs[0])
			result.Rejected++
			continue
		}

		rec, err := toNewRecord(row)
		if err != nil {
			logger.Debug("row rejected", "row", i, "reason", err.Error())
			result.Rejected++
			continue
		}

		if queued.Has(rec.StandardID) {
			logger.Debug("row rejected", "row", i, "reason", "duplicate within file")
			result.Rejected++
			continue
		}

		exists, err := s.exists(ctx, rec.StandardID)
		if err != nil {
			return nil, err
		}
		if exists {
			logger.Debug("row rejected", "row", i, "reason", "already stored")
			result.Rejected++
			continue
		}

		queued.Add(rec.StandardID)
		batch = append(batch, rec)
	}

	if len(batch) > 0 {
		if _, err := s.store.CreateBatch(ctx, batch); err != nil {
			logger.Error("import batch failed", "rows", len(batch), "error", err)
			return nil, fmt.Errorf("create batch: %w", err)
		}
	}
	result.Imported = len(batch)

	logger.Info("import completed",
		"rows", len(rows),
		"imported", result.Imported,
		"rejected", result.Rejected,
		"duration_ms", time.Since(startTime).Milliseconds(),
	)

	return result, nil
}

func (s *Service) exists(ctx context.Context, standardID string) (bool, error) {
	_, err := s.store.FindByStandardID(ctx, standardID)
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, fmt.Errorf("find %q: %w", standardID, err)
	}
}

// toNewRecord maps a schema-valid row to a record. The date becomes UTC
// midnight of the given day.
func toNewRecord(row Row) (NewRecord, error) {
	dateText, _ := row[ColDate].(string)
	date, err := ParseDate(dateText)
	if err != nil {
		return NewRecord{}, err
	}

	id, _ := CellText(row[ColStandardID])
	actual, _ := CellText(row[ColActual])
	category, _ := CellText(row[ColCategory])
	status, _ := CellText(row[ColStatus])

	rec := NewRecord{
		StandardID: id,
		Date:       date,
		Actual:     actual,
		Category:   category,
		Status:     status,
	}
	if note, ok := CellText(row[ColNote]); ok {
		rec.Note = &note
	}
	return rec, nil
}
