package core

// validation.go checks parsed rows against the record schema.
//
// A schema is an ordered list of rules, one predicate and one message per
// field. Every rule runs on every row so a single pass reports all problems;
// messages come back in declaration order as "<column>: <reason>".

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Rule validates one field of a row.
type Rule struct {
	Field   string
	Check   func(v any) bool
	Message string
}

// Schema is an ordered rule list.
type Schema []Rule

// RecordSchema is the schema uploaded record rows must satisfy.
var RecordSchema = Schema{
	{Field: ColStandardID, Check: requiredText, Message: "Standard ID is required"},
	{Field: ColDate, Check: isoDate, Message: "Invalid date format. Use YYYY-MM-DD"},
	{Field: ColActual, Check: requiredText, Message: "Actual value is required"},
	{Field: ColCategory, Check: requiredText, Message: "Kategori is required"},
	{Field: ColStatus, Check: requiredText, Message: "Status is required"},
	{Field: ColNote, Check: optionalText, Message: "Keterangan must be text"},
}

// Validate runs every rule against row and returns the failures in rule
// order. An empty result means the row is valid.
func (s Schema) Validate(row Row) []string {
	var msgs []string
	for _, rule := range s {
		if !rule.Check(row[rule.Field]) {
			msgs = append(msgs, fmt.Sprintf("%s: %s", rule.Field, rule.Message))
		}
	}
	return msgs
}

// ValidateRow validates row against RecordSchema.
func ValidateRow(row Row) []string {
	return RecordSchema.Validate(row)
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ErrInvalidDate is returned by ParseDate for text that is not a real
// YYYY-MM-DD day.
var ErrInvalidDate = errors.New("invalid date")

// CellText returns the text form of a cell. Numbers are accepted as text
// and rendered in their shortest decimal form. Missing cells are not text.
func CellText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}

// ParseDate parses a YYYY-MM-DD string that names a real calendar day.
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w %q: use YYYY-MM-DD", ErrInvalidDate, s)
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", ErrInvalidDate, s, err)
	}
	return d, nil
}

func requiredText(v any) bool {
	s, ok := CellText(v)
	return ok && s != ""
}

func optionalText(v any) bool {
	if v == nil {
		return true
	}
	_, ok := CellText(v)
	return ok
}

// isoDate only accepts text; a numeric cell in the date column fails.
func isoDate(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := ParseDate(s)
	return err == nil
}
