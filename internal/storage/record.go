package storage

import "time"

// Field names managed by the store. The id and creation timestamp are
// assigned once and never change; updatedAt is refreshed on every mutation.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Record is a single stored entity: an opaque id, store-managed timestamps,
// and caller-defined fields. Values round-trip through JSON, so numbers read
// back as float64 and timestamps as RFC 3339 strings; domain packages use
// the typed accessors when converting at the storage boundary.
type Record map[string]any

// ID returns the record identifier.
func (r Record) ID() string { return r.String(FieldID) }

// CreatedAt returns the creation timestamp.
func (r Record) CreatedAt() time.Time { return r.Time(FieldCreatedAt) }

// UpdatedAt returns the last-mutation timestamp, zero if never updated.
func (r Record) UpdatedAt() time.Time { return r.Time(FieldUpdatedAt) }

// String returns the named field as a string, "" when absent or non-string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the named field as an int, coercing the numeric types JSON
// decoding produces.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Bool returns the named field as a bool, false when absent.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Time parses the named field as an RFC 3339 timestamp. Absent or
// unparsable values read as the zero time.
func (r Record) Time(key string) time.Time {
	s, ok := r[key].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Strings returns the named field as a slice of strings. Non-string
// elements are dropped.
func (r Record) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
