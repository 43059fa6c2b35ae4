package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Timestamp is a point in time carried on the wire as whole seconds since the Unix epoch.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{Time: time.Unix(t.Unix(), 0).UTC()}
}

// Unix returns the wire representation, or 0 for the zero Timestamp.
func (t Timestamp) Unix() int64 {
	if t.IsZero() {
		return 0
	}
	return t.Time.Unix()
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.Unix(), 10)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var seconds int64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return err
	}
	t.Time = time.Unix(seconds, 0).UTC()
	return nil
}
