package core

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrParse marks a workbook that could not be read.
	ErrParse = errors.New("invalid spreadsheet")

	// ErrNoWorksheet is returned for a workbook without any worksheet.
	ErrNoWorksheet = fmt.Errorf("%w: workbook has no worksheet", ErrParse)

	// ErrStore wraps failures reported by a Store backend.
	ErrStore = errors.New("record store failure")

	// ErrDuplicateKey is returned when a write would store a standardid twice.
	ErrDuplicateKey = errors.New("duplicate key: standardid already exists")

	// ErrNotFound is returned by single-record lookups that match nothing.
	ErrNotFound = errors.New("record not found")
)

// Store persists records. Implementations must keep standardid unique and
// assign ids that increase monotonically.
type Store interface {
	// ListStandardIDs returns every stored standardid.
	ListStandardIDs(ctx context.Context) ([]string, error)

	// FindByStandardID returns ErrNotFound when no record has the key.
	FindByStandardID(ctx context.Context, standardID string) (Record, error)

	// CreateBatch stores all records or none and returns them with ids and
	// timestamps assigned. A key collision fails the batch with ErrDuplicateKey.
	CreateBatch(ctx context.Context, records []NewRecord) ([]Record, error)

	// Create stores a single record.
	Create(ctx context.Context, record NewRecord) (Record, error)

	// List returns every record in id order.
	List(ctx context.Context) ([]Record, error)

	// QueryByDateRange returns records whose date falls inside r, in id order.
	QueryByDateRange(ctx context.Context, r DateRange) ([]Record, error)
}

// Parser turns uploaded bytes into rows. Only the first worksheet is read;
// its first row is the header.
type Parser interface {
	Parse(ctx context.Context, data []byte) ([]Row, error)
}

// Sheet is one worksheet to be written.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Writer renders sheets into workbook bytes, in order.
type Writer interface {
	Write(ctx context.Context, sheets ...Sheet) ([]byte, error)
}
