package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/sheetimport/internal/core"
)

func day(s string) time.Time {
	d, err := time.Parse(core.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func newRecord(id, date string) core.NewRecord {
	return core.NewRecord{
		StandardID: id,
		Date:       day(date),
		Actual:     "95.5",
		Category:   "A",
		Status:     "Active",
	}
}

func TestCreateBatch_AssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	s := New()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	got, err := s.CreateBatch(ctx, []core.NewRecord{
		newRecord("STD-001", "2023-05-01"),
		newRecord("STD-002", "2023-05-02"),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, fixed, got[0].CreatedAt)
	assert.Equal(t, fixed, got[0].UpdatedAt)

	rec, err := s.Create(ctx, newRecord("STD-003", "2023-05-03"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.ID)
}

func TestCreateBatch_CollisionWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.Create(ctx, newRecord("STD-001", "2023-05-01"))
	require.NoError(t, err)

	_, err = s.CreateBatch(ctx, []core.NewRecord{
		newRecord("STD-002", "2023-05-02"),
		newRecord("STD-001", "2023-05-03"),
	})
	require.ErrorIs(t, err, core.ErrDuplicateKey)

	ids, err := s.ListStandardIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"STD-001"}, ids)
}

func TestCreateBatch_RepeatedKeyInBatch(t *testing.T) {
	_, err := New().CreateBatch(context.Background(), []core.NewRecord{
		newRecord("STD-001", "2023-05-01"),
		newRecord("STD-001", "2023-05-02"),
	})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestCreate_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.Create(ctx, newRecord("STD-001", "2023-05-01"))
	require.NoError(t, err)

	_, err = s.Create(ctx, newRecord("STD-001", "2023-05-01"))
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestStandardIDsAreCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.CreateBatch(ctx, []core.NewRecord{
		newRecord("std-001", "2023-05-01"),
		newRecord("STD-001", "2023-05-01"),
	})
	require.NoError(t, err)

	_, err = s.FindByStandardID(ctx, "Std-001")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFindByStandardID(t *testing.T) {
	ctx := context.Background()
	s := New()
	note := "hello"
	in := newRecord("STD-001", "2023-05-01")
	in.Note = &note
	_, err := s.Create(ctx, in)
	require.NoError(t, err)

	got, err := s.FindByStandardID(ctx, "STD-001")
	require.NoError(t, err)
	assert.Equal(t, "STD-001", got.StandardID)
	require.NotNil(t, got.Note)
	assert.Equal(t, "hello", *got.Note)

	// Returned records are copies.
	*got.Note = "changed"
	again, err := s.FindByStandardID(ctx, "STD-001")
	require.NoError(t, err)
	assert.Equal(t, "hello", *again.Note)

	_, err = s.FindByStandardID(ctx, "STD-404")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestQueryByDateRange_Inclusive(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.CreateBatch(ctx, []core.NewRecord{
		newRecord("A", "2023-04-30"),
		newRecord("B", "2023-05-01"),
		newRecord("C", "2023-05-15"),
		newRecord("D", "2023-05-31"),
		newRecord("E", "2023-06-01"),
	})
	require.NoError(t, err)

	start, end := day("2023-05-01"), day("2023-05-31")

	tests := []struct {
		name string
		r    core.DateRange
		want []string
	}{
		{"open range returns all", core.DateRange{}, []string{"A", "B", "C", "D", "E"}},
		{"both ends inclusive", core.DateRange{Start: &start, End: &end}, []string{"B", "C", "D"}},
		{"start only", core.DateRange{Start: &start}, []string{"B", "C", "D", "E"}},
		{"end only", core.DateRange{End: &end}, []string{"A", "B", "C", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.QueryByDateRange(ctx, tt.r)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, r := range got {
				ids[i] = r.StandardID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestConcurrentCreateKeepsKeysUnique(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateBatch(ctx, []core.NewRecord{newRecord("STD-001", "2023-05-01")})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, core.ErrDuplicateKey)
		}
	}
	assert.Equal(t, 1, succeeded)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().ListStandardIDs(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
