package storage

import (
	"strconv"
	"strings"
	"time"
)

// Row is one record in its flat, stringly-typed persisted form. Accessors
// coerce defensively: a field that is missing or malformed yields the zero
// value (or the stated default) instead of an error, so a half-corrupt blob
// degrades to fewer usable fields rather than blocking reads.
type Row map[string]string

// String returns the trimmed value for key, or "" when absent.
func (r Row) String(key string) string {
	return strings.TrimSpace(r[key])
}

// Int returns the integer value for key, or 0 when absent or malformed.
func (r Row) Int(key string) int {
	value, err := strconv.Atoi(r.String(key))
	if err != nil {
		return 0
	}
	return value
}

// Float returns the float value for key, or 0 when absent or malformed.
func (r Row) Float(key string) float64 {
	value, err := strconv.ParseFloat(r.String(key), 64)
	if err != nil {
		return 0
	}
	return value
}

// OptionalFloat distinguishes an absent value from zero: empty or malformed
// fields return nil.
func (r Row) OptionalFloat(key string) *float64 {
	raw := r.String(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

// OptionalInt distinguishes an absent value from zero: empty or malformed
// fields return nil.
func (r Row) OptionalInt(key string) *int {
	raw := r.String(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

// Bool returns the boolean value for key, or def when absent or malformed.
func (r Row) Bool(key string, def bool) bool {
	raw := r.String(key)
	if raw == "" {
		return def
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return value
}

// Time parses an RFC3339 timestamp under key, defaulting to the current time
// when absent or malformed.
func (r Row) Time(key string) time.Time {
	value, err := time.Parse(time.RFC3339, r.String(key))
	if err != nil {
		return time.Now().UTC()
	}
	return value
}

// FormatInt renders an integer for storage.
func FormatInt(value int) string {
	return strconv.Itoa(value)
}

// FormatFloat renders a float for storage without trailing zero noise.
func FormatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// FormatOptionalFloat renders an optional float, empty when absent.
func FormatOptionalFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return FormatFloat(*value)
}

// FormatOptionalInt renders an optional integer, empty when absent.
func FormatOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return FormatInt(*value)
}

// FormatBool renders a boolean for storage.
func FormatBool(value bool) string {
	return strconv.FormatBool(value)
}

// FormatTime renders a timestamp for storage in RFC3339.
func FormatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339)
}
