package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONB holds a schema-less JSON column. NULL scans to an empty value and
// marshals back to null.
type JSONB []byte

// Value implements driver.Valuer for database storage.
func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner for database retrieval.
func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		*j = append((*j)[:0], v...)
		return nil
	case string:
		*j = JSONB(v)
		return nil
	default:
		return errors.New("unsupported type for JSONB")
	}
}

// MarshalJSON implements json.Marshaler.
func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *JSONB) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[:0], data...)
	return nil
}

// String renders the raw document, unwrapping JSON strings that were stored
// double-encoded.
func (j JSONB) String() string {
	if len(j) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(j, &s); err == nil {
		return s
	}
	return string(j)
}
