// Package memory provides an in-process record store. It backs tests, the
// CLI's dry runs and STORE_DRIVER=memory deployments; data lives only as
// long as the process.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JonMunkholm/sheetimport/internal/core"
)

// Store keeps records in insertion (and therefore id) order.
type Store struct {
	mu      sync.RWMutex
	records []core.Record
	byKey   map[string]int
	nextID  int64
	now     func() time.Time
}

// New returns an empty store. Ids start at 1.
func New() *Store {
	return &Store{
		byKey:  make(map[string]int),
		nextID: 1,
		now:    time.Now,
	}
}

var _ core.Store = (*Store)(nil)

func (s *Store) ListStandardIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.records))
	for i, r := range s.records {
		ids[i] = r.StandardID
	}
	return ids, nil
}

func (s *Store) FindByStandardID(ctx context.Context, standardID string) (core.Record, error) {
	if err := ctx.Err(); err != nil {
		return core.Record{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byKey[standardID]
	if !ok {
		return core.Record{}, core.ErrNotFound
	}
	return cloneRecord(s.records[idx]), nil
}

// CreateBatch checks every key before writing anything, so a collision
// leaves the store untouched.
func (s *Store) CreateBatch(ctx context.Context, records []core.NewRecord) ([]core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := s.byKey[r.StandardID]; ok {
			return nil, fmt.Errorf("%w: %q", core.ErrDuplicateKey, r.StandardID)
		}
		if _, ok := pending[r.StandardID]; ok {
			return nil, fmt.Errorf("%w: %q repeated in batch", core.ErrDuplicateKey, r.StandardID)
		}
		pending[r.StandardID] = struct{}{}
	}

	out := make([]core.Record, len(records))
	for i, r := range records {
		out[i] = cloneRecord(s.insert(r))
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, record core.NewRecord) (core.Record, error) {
	if err := ctx.Err(); err != nil {
		return core.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byKey[record.StandardID]; ok {
		return core.Record{}, fmt.Errorf("%w: %q", core.ErrDuplicateKey, record.StandardID)
	}
	return cloneRecord(s.insert(record)), nil
}

func (s *Store) List(ctx context.Context) ([]core.Record, error) {
	return s.QueryByDateRange(ctx, core.DateRange{})
}

func (s *Store) QueryByDateRange(ctx context.Context, r core.DateRange) ([]core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Record, 0, len(s.records))
	for _, rec := range s.records {
		if r.Contains(rec.Date) {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

// insert must be called with the write lock held.
func (s *Store) insert(r core.NewRecord) core.Record {
	now := s.now().UTC()
	rec := core.Record{
		ID:         s.nextID,
		StandardID: r.StandardID,
		Date:       r.Date,
		Actual:     r.Actual,
		Category:   r.Category,
		Status:     r.Status,
		Note:       r.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.nextID++
	s.byKey[rec.StandardID] = len(s.records)
	s.records = append(s.records, cloneRecord(rec))
	return rec
}

func cloneRecord(r core.Record) core.Record {
	if r.Note != nil {
		note := *r.Note
		r.Note = &note
	}
	return r
}
