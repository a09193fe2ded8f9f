package core

import (
	"fmt"
	"testing"
)

// ============================================================================
// Row Validation Benchmarks
// ============================================================================

func benchRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = validRow(fmt.Sprintf("STD-%05d", i), "2023-05-01")
	}
	// A few bad rows so the failure path is exercised too.
	for i := 0; i < n; i += 50 {
		rows[i][ColDate] = "2023-02-30"
	}
	return rows
}

// BenchmarkValidateRow benchmarks the per-row schema check.
// This runs once per row in both validate and import.
func BenchmarkValidateRow(b *testing.B) {
	testCases := []Row{
		validRow("STD-001", "2023-05-01"),
		validRow("STD-002", "2023-5-1"),
		{ColStandardID: float64(1001), ColDate: "2024-02-29", ColActual: 95.5, ColCategory: "A", ColStatus: "Active"},
		{},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			ValidateRow(tc)
		}
	}
}

// BenchmarkParseDate benchmarks date checking on the tanggal column.
func BenchmarkParseDate(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ParseDate("2023-05-01")
	}
}

// ============================================================================
// Report Benchmarks
// ============================================================================

// BenchmarkDetectDuplicates benchmarks key checks against a large store.
func BenchmarkDetectDuplicates(b *testing.B) {
	rows := benchRows(5000)
	existing := make([]string, 50000)
	for i := range existing {
		existing[i] = fmt.Sprintf("OLD-%05d", i)
	}
	keys := NewKeySet(existing...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DetectDuplicates(keys, rows)
	}
}

// BenchmarkBuildReport benchmarks a full dry-run report over a file that
// fits the upload limit.
func BenchmarkBuildReport(b *testing.B) {
	rows := benchRows(5000)
	keys := NewKeySet("STD-00010", "STD-00020")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buildReport(RecordSchema, keys, rows)
	}
}
