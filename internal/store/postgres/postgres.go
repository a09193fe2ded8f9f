// Package postgres implements the record store on PostgreSQL via pgx.
//
// The records table carries a UNIQUE constraint on standardid, which is the
// authoritative guard against duplicate keys: a batch that collides with a
// concurrent import fails as a whole with core.ErrDuplicateKey.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/sheetimport/internal/core"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
	id          BIGSERIAL PRIMARY KEY,
	standardid  TEXT NOT NULL,
	tanggal     DATE NOT NULL,
	actual      TEXT NOT NULL,
	kategori    TEXT NOT NULL,
	status      TEXT NOT NULL,
	keterangan  TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT records_standardid_key UNIQUE (standardid)
);
CREATE INDEX IF NOT EXISTS records_tanggal_idx ON records (tanggal);`

const recordColumns = `id, standardid, tanggal, actual, kategori, status, keterangan, created_at, updated_at`

const insertSQL = `
INSERT INTO records (standardid, tanggal, actual, kategori, status, keterangan)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + recordColumns

// Store is a core.Store backed by a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an open pool. Call Migrate before first use on a fresh database.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ core.Store = (*Store)(nil)

// Migrate creates the records table and its indexes if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate records: %w", mapError(err))
	}
	return nil
}

func (s *Store) ListStandardIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT standardid FROM records ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, mapError(err)
	}
	return ids, nil
}

func (s *Store) FindByStandardID(ctx context.Context, standardID string) (core.Record, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+recordColumns+` FROM records WHERE standardid = $1`, standardID)
	if err != nil {
		return core.Record{}, mapError(err)
	}
	rec, err := pgx.CollectExactlyOneRow(rows, scanRecord)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Record{}, core.ErrNotFound
	}
	if err != nil {
		return core.Record{}, mapError(err)
	}
	return rec, nil
}

// CreateBatch inserts every record inside one transaction using a pipelined
// batch. Any failure rolls the whole batch back.
func (s *Store) CreateBatch(ctx context.Context, records []core.NewRecord) ([]core.Record, error) {
	if len(records) == 0 {
		return []core.Record{}, nil
	}

	out := make([]core.Record, 0, len(records))
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, r := range records {
			batch.Queue(insertSQL, insertArgs(r)...)
		}

		results := tx.SendBatch(ctx, batch)
		for range records {
			rows, err := results.Query()
			if err != nil {
				results.Close()
				return err
			}
			rec, err := pgx.CollectExactlyOneRow(rows, scanRecord)
			if err != nil {
				results.Close()
				return err
			}
			out = append(out, rec)
		}
		return results.Close()
	})
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, record core.NewRecord) (core.Record, error) {
	rows, err := s.pool.Query(ctx, insertSQL, insertArgs(record)...)
	if err != nil {
		return core.Record{}, mapError(err)
	}
	rec, err := pgx.CollectExactlyOneRow(rows, scanRecord)
	if err != nil {
		return core.Record{}, mapError(err)
	}
	return rec, nil
}

func (s *Store) List(ctx context.Context) ([]core.Record, error) {
	return s.QueryByDateRange(ctx, core.DateRange{})
}

// QueryByDateRange treats a nil bound as open; set bounds are inclusive.
func (s *Store) QueryByDateRange(ctx context.Context, r core.DateRange) ([]core.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+recordColumns+`
		FROM records
		WHERE ($1::date IS NULL OR tanggal >= $1::date)
		  AND ($2::date IS NULL OR tanggal <= $2::date)
		ORDER BY id`,
		r.Start, r.End,
	)
	if err != nil {
		return nil, mapError(err)
	}
	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, mapError(err)
	}
	return records, nil
}

func insertArgs(r core.NewRecord) []any {
	return []any{r.StandardID, r.Date, r.Actual, r.Category, r.Status, r.Note}
}

func scanRecord(row pgx.CollectableRow) (core.Record, error) {
	var (
		rec  core.Record
		date time.Time
	)
	err := row.Scan(
		&rec.ID, &rec.StandardID, &date, &rec.Actual, &rec.Category,
		&rec.Status, &rec.Note, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return core.Record{}, err
	}
	rec.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return rec, nil
}

// mapError translates driver errors into core sentinels. Context errors pass
// through unchanged so callers can still match them.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w (%s)", core.ErrDuplicateKey, pgErr.ConstraintName)
	}
	return fmt.Errorf("%w: %w", core.ErrStore, err)
}
