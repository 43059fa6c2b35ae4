package models

import (
	"bytes"
	"encoding/json"
)

// Optional tracks whether a field was present in the decoded payload.
// A JSON null is treated the same as an absent key.
type Optional[T any] struct {
	Valid bool
	Value T
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Valid: true, Value: value}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// OrElse returns the value when present and fallback otherwise.
func (o Optional[T]) OrElse(fallback T) T {
	if !o.Valid {
		return fallback
	}
	return o.Value
}

// IsZero reports absence; it lets `omitzero` drop unset fields when encoding.
func (o Optional[T]) IsZero() bool {
	return !o.Valid
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = Optional[T]{}
		return nil
	}

	var value T
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return err
	}
	o.Valid = true
	o.Value = value
	return nil
}
