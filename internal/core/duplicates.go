package core

import "fmt"

// KeySet is a set of standardid values.
type KeySet map[string]struct{}

// NewKeySet builds a set from keys.
func NewKeySet(keys ...string) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// Has reports whether key is in the set.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Add inserts key.
func (s KeySet) Add(key string) {
	s[key] = struct{}{}
}

// StandardID returns the row's business key as text. Rows without a
// non-empty key report false.
func StandardID(row Row) (string, bool) {
	id, ok := CellText(row[ColStandardID])
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// DetectDuplicates flags duplicate keys for each row, aligned with rows.
//
// A key seen on an earlier row of the same sequence yields the within-file
// message; a key already in existing yields the store message. Both can
// apply to one row. The first occurrence of a key is never flagged as a
// within-file duplicate.
func DetectDuplicates(existing KeySet, rows []Row) [][]string {
	out := make([][]string, len(rows))
	seen := make(KeySet)

	for i, row := range rows {
		id, ok := StandardID(row)
		if !ok {
			continue
		}
		if seen.Has(id) {
			out[i] = append(out[i], fmt.Sprintf("Duplicate standardid '%s' within the file.", id))
		}
		seen.Add(id)
		if existing.Has(id) {
			out[i] = append(out[i], fmt.Sprintf("standardid '%s' already exists in the database.", id))
		}
	}

	return out
}
