package core

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// fakeStore is an in-package Store used by the service tests. Failures can
// be injected per method.
type fakeStore struct {
	mu      sync.Mutex
	records []Record
	nextID  int64

	listErr   error
	findErr   error
	createErr error
	queryErr  error

	batchCalls int
}

func newFakeStore(ids ...string) *fakeStore {
	s := &fakeStore{}
	for _, id := range ids {
		s.insert(NewRecord{StandardID: id, Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Actual: "1", Category: "A", Status: "Active"})
	}
	return s
}

func (s *fakeStore) insert(r NewRecord) Record {
	s.nextID++
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := Record{
		ID: s.nextID, StandardID: r.StandardID, Date: r.Date, Actual: r.Actual,
		Category: r.Category, Status: r.Status, Note: r.Note, CreatedAt: now, UpdatedAt: now,
	}
	s.records = append(s.records, rec)
	return rec
}

func (s *fakeStore) has(id string) bool {
	for _, r := range s.records {
		if r.StandardID == id {
			return true
		}
	}
	return false
}

func (s *fakeStore) ListStandardIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	ids := make([]string, len(s.records))
	for i, r := range s.records {
		ids[i] = r.StandardID
	}
	return ids, nil
}

func (s *fakeStore) FindByStandardID(ctx context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return Record{}, s.findErr
	}
	for _, r := range s.records {
		if r.StandardID == id {
			return r, nil
		}
	}
	return Record{}, ErrNotFound
}

func (s *fakeStore) CreateBatch(ctx context.Context, records []NewRecord) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batchCalls++
	if s.createErr != nil {
		return nil, s.createErr
	}
	for _, r := range records {
		if s.has(r.StandardID) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, r.StandardID)
		}
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = s.insert(r)
	}
	return out, nil
}

func (s *fakeStore) Create(ctx context.Context, r NewRecord) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return Record{}, s.createErr
	}
	if s.has(r.StandardID) {
		return Record{}, fmt.Errorf("%w: %q", ErrDuplicateKey, r.StandardID)
	}
	return s.insert(r), nil
}

func (s *fakeStore) List(ctx context.Context) ([]Record, error) {
	return s.QueryByDateRange(ctx, DateRange{})
}

func (s *fakeStore) QueryByDateRange(ctx context.Context, dr DateRange) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	out := []Record{}
	for _, r := range s.records {
		if dr.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out, nil
}

// rowsParser returns fixed rows, ignoring the bytes.
type rowsParser struct {
	rows []Row
	err  error
}

func (p rowsParser) Parse(ctx context.Context, data []byte) ([]Row, error) {
	return p.rows, p.err
}

// sheetsWriter records what it was asked to write.
type sheetsWriter struct {
	sheets []Sheet
	err    error
}

func (w *sheetsWriter) Write(ctx context.Context, sheets ...Sheet) ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.sheets = sheets
	return []byte("xlsx"), nil
}

func validRow(id, date string) Row {
	return Row{
		ColStandardID: id, ColDate: date, ColActual: "95.5",
		ColCategory: "A", ColStatus: "Active", ColNote: nil,
	}
}

func newTestService(store Store, rows []Row) (*Service, *sheetsWriter) {
	w := &sheetsWriter{}
	return NewService(store, rowsParser{rows: rows}, w, Options{MaxConcurrent: 2, MaxWait: time.Second}), w
}
