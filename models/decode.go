package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"goflare.io/billing/models/enum"
)

var (
	// ErrMissingRequiredField is returned when a mandatory key is absent or null.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrUnrecognizedEnumValue is returned when a closed enumeration receives an unknown wire value.
	ErrUnrecognizedEnumValue = enum.ErrUnrecognizedValue
)

// DecodeError carries the wire path of the field that failed to decode,
// e.g. "id", "next_action.type" or "data[2].status".
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode field %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// fieldError prefixes the path of a nested DecodeError with key.
func fieldError(key string, err error) error {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return &DecodeError{Path: joinPath(key, decodeErr.Path), Err: decodeErr.Err}
	}
	return &DecodeError{Path: key, Err: err}
}

func joinPath(parent, child string) string {
	if strings.HasPrefix(child, "[") {
		return parent + child
	}
	return parent + "." + child
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// fieldReader decodes the members of one JSON object and keeps the first error.
type fieldReader struct {
	members map[string]json.RawMessage
	err     error
}

func newFieldReader(data []byte) (*fieldReader, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	return &fieldReader{members: members}, nil
}

func (r *fieldReader) required(key string, dst any) {
	if r.err != nil {
		return
	}
	raw, ok := r.members[key]
	if !ok || isNull(raw) {
		r.err = &DecodeError{Path: key, Err: ErrMissingRequiredField}
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.err = fieldError(key, err)
	}
}

func (r *fieldReader) optional(key string, dst any) {
	if r.err != nil {
		return
	}
	raw, ok := r.members[key]
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.err = fieldError(key, err)
	}
}

func (r *fieldReader) raw(key string) (json.RawMessage, bool) {
	raw, ok := r.members[key]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}
