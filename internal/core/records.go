package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ValidationError carries the schema failures of a single submitted record.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid record: " + strings.Join(e.Messages, "; ")
}

// ListRecords returns every stored record in id order.
func (s *Service) ListRecords(ctx context.Context) ([]Record, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// CreateRecord validates a single row against the schema and stores it.
// Schema failures return a *ValidationError; a taken key returns
// ErrDuplicateKey.
func (s *Service) CreateRecord(ctx context.Context, row Row) (Record, error) {
	if msgs := s.schema.Validate(row); len(msgs) > 0 {
		return Record{}, &ValidationError{Messages: msgs}
	}

	rec, err := toNewRecord(row)
	if err != nil {
		return Record{}, &ValidationError{Messages: []string{err.Error()}}
	}

	created, err := s.store.Create(ctx, rec)
	if err != nil {
		return Record{}, fmt.Errorf("create record: %w", err)
	}
	return created, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
