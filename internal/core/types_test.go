package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_MarshalJSON(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := Record{
		ID: 7, StandardID: "STD-007", Date: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		Actual: "95.5", Category: "A", Status: "Active", CreatedAt: ts, UpdatedAt: ts,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 7,
		"standardid": "STD-007",
		"tanggal": "2023-05-01",
		"actual": "95.5",
		"kategori": "A",
		"status": "Active",
		"keterangan": null,
		"created_at": "2024-01-02T03:04:05Z",
		"updated_at": "2024-01-02T03:04:05Z"
	}`, string(data))
}

func TestValidationReport_JSONShape(t *testing.T) {
	data, err := json.Marshal(emptyFileReport())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"valid": false,
		"errors": [{"row": 0, "messages": ["File is empty. Please upload a file with data."]}],
		"preview": []
	}`, string(data))
}

func TestDateRange_Contains(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2023, 5, d, 0, 0, 0, 0, time.UTC) }
	start, end := day(10), day(20)

	tests := []struct {
		name string
		r    DateRange
		d    time.Time
		want bool
	}{
		{"open", DateRange{}, day(1), true},
		{"start inclusive", DateRange{Start: &start}, day(10), true},
		{"before start", DateRange{Start: &start}, day(9), false},
		{"end inclusive", DateRange{End: &end}, day(20), true},
		{"after end", DateRange{End: &end}, day(21), false},
		{"inside", DateRange{Start: &start, End: &end}, day(15), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Contains(tt.d))
		})
	}
}

func TestSelectColumns(t *testing.T) {
	assert.Equal(t, []string{"status", "id"}, SelectColumns([]string{"status", "STATUS", "id", "status", ""}))
	assert.Empty(t, SelectColumns(nil))
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, r.Start)
	assert.Nil(t, r.End)

	r, err = ParseDateRange("2023-05-01", "2023-05-31T23:30:00-02:00")
	require.NoError(t, err)
	require.NotNil(t, r.Start)
	require.NotNil(t, r.End)
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), *r.Start)
	assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), *r.End)

	_, err = ParseDateRange("05/01/2023", "")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Contains(t, err.Error(), "start date")
}
