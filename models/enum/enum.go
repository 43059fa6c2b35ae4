package enum

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// ErrUnrecognizedValue is returned when a wire value is outside an enumeration's closed set.
var ErrUnrecognizedValue = errors.New("unrecognized enum value")

// UnrecognizedValueError reports the enumeration and the offending wire value.
type UnrecognizedValueError struct {
	Enum  string
	Value string
}

func (e *UnrecognizedValueError) Error() string {
	return fmt.Sprintf("unrecognized %s value %q", e.Enum, e.Value)
}

func (e *UnrecognizedValueError) Unwrap() error {
	return ErrUnrecognizedValue
}

// decodeClosed is the single place where closed enumerations are decoded.
// Unknown values are rejected rather than mapped to a catch-all.
func decodeClosed[T ~string](name string, data []byte, dst *T, allowed []T) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}

	value := T(raw)
	if !slices.Contains(allowed, value) {
		return &UnrecognizedValueError{Enum: name, Value: raw}
	}

	*dst = value
	return nil
}
