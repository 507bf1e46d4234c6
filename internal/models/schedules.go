package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Schedules is the class timetable stored as an opaque JSON array.
type Schedules json.RawMessage

var emptySchedules = []byte("[]")

// IsArray reports whether the payload is a JSON array.
func (s Schedules) IsArray() bool {
	trimmed := bytes.TrimSpace(s)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return false
	}
	return json.Valid(trimmed)
}

// MarshalJSON renders an unset value as an empty array.
func (s Schedules) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return emptySchedules, nil
	}
	return s, nil
}

// UnmarshalJSON keeps the raw payload; null leaves the value unset.
func (s *Schedules) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	*s = append((*s)[:0], data...)
	return nil
}

// Value implements driver.Valuer.
func (s Schedules) Value() (driver.Value, error) {
	if len(s) == 0 {
		return string(emptySchedules), nil
	}
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *Schedules) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = nil
	case []byte:
		*s = append(Schedules(nil), v...)
	case string:
		*s = Schedules(v)
	default:
		return fmt.Errorf("scan schedules: unsupported type %T", src)
	}
	return nil
}
