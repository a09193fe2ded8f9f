package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRow(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want []string
	}{
		{
			name: "valid row",
			row:  validRow("STD-001", "2023-05-01"),
		},
		{
			name: "numbers accepted as text",
			row: Row{
				ColStandardID: float64(1001), ColDate: "2023-05-01", ColActual: 95.5,
				ColCategory: "A", ColStatus: "Active", ColNote: float64(3),
			},
		},
		{
			name: "every missing field reported in column order",
			row:  Row{},
			want: []string{
				"standardid: Standard ID is required",
				"tanggal: Invalid date format. Use YYYY-MM-DD",
				"actual: Actual value is required",
				"kategori: Kategori is required",
				"status: Status is required",
			},
		},
		{
			name: "empty text is missing",
			row: Row{
				ColStandardID: "", ColDate: "2023-05-01", ColActual: "1",
				ColCategory: "A", ColStatus: "",
			},
			want: []string{
				"standardid: Standard ID is required",
				"status: Status is required",
			},
		},
		{
			name: "missing actual reports only actual",
			row:  without(validRow("STD-001", "2023-05-01"), ColActual),
			want: []string{"actual: Actual value is required"},
		},
		{
			name: "impossible calendar date",
			row:  validRow("STD-001", "2023-02-30"),
			want: []string{"tanggal: Invalid date format. Use YYYY-MM-DD"},
		},
		{
			name: "month and day out of range",
			row:  validRow("STD-001", "2023-13-40"),
			want: []string{"tanggal: Invalid date format. Use YYYY-MM-DD"},
		},
		{
			name: "unpadded date",
			row:  validRow("STD-001", "2023-5-1"),
			want: []string{"tanggal: Invalid date format. Use YYYY-MM-DD"},
		},
		{
			name: "numeric date cell",
			row: Row{
				ColStandardID: "STD-001", ColDate: float64(45047), ColActual: "1",
				ColCategory: "A", ColStatus: "Active",
			},
			want: []string{"tanggal: Invalid date format. Use YYYY-MM-DD"},
		},
		{
			name: "non-text note",
			row: Row{
				ColStandardID: "STD-001", ColDate: "2023-05-01", ColActual: "1",
				ColCategory: "A", ColStatus: "Active", ColNote: true,
			},
			want: []string{"keterangan: Keterangan must be text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateRow(tt.row))
		})
	}
}

func without(row Row, col string) Row {
	delete(row, col)
	return row
}

func TestSchema_CustomRules(t *testing.T) {
	schema := Schema{
		{Field: "a", Check: requiredText, Message: "A missing"},
		{Field: "b", Check: optionalText, Message: "B not text"},
	}

	assert.Empty(t, schema.Validate(Row{"a": "x"}))
	assert.Equal(t, []string{"a: A missing", "b: B not text"}, schema.Validate(Row{"b": []string{}}))
}

func TestCellText(t *testing.T) {
	tests := []struct {
		in     any
		want   string
		wantOK bool
	}{
		{"abc", "abc", true},
		{"", "", true},
		{float64(95.5), "95.5", true},
		{float64(1001), "1001", true},
		{1e21, "1000000000000000000000", true},
		{7, "7", true},
		{int64(-3), "-3", true},
		{nil, "", false},
		{true, "", false},
	}

	for _, tt := range tests {
		got, ok := CellText(tt.in)
		assert.Equal(t, tt.wantOK, ok, "%#v", tt.in)
		assert.Equal(t, tt.want, got, "%#v", tt.in)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"2023-02-29", "2023-13-01", "01-05-2023", "2023/05/01", "2023-05-01T00:00:00Z", " 2023-05-01", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}
