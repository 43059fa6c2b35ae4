package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalUnmarshal(t *testing.T) {
	type payload struct {
		Name Optional[string] `json:"name"`
	}

	var got payload
	require.NoError(t, json.Unmarshal([]byte(`{"name":"visa"}`), &got))
	assert.Equal(t, Some("visa"), got.Name)

	got = payload{}
	require.NoError(t, json.Unmarshal([]byte(`{"name":""}`), &got))
	assert.True(t, got.Name.Valid)

	got = payload{Name: Some("stale")}
	require.NoError(t, json.Unmarshal([]byte(`{"name":null}`), &got))
	assert.False(t, got.Name.Valid)

	got = payload{}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &got))
	assert.Equal(t, None[string](), got.Name)
}

func TestOptionalAccessors(t *testing.T) {
	assert.Equal(t, "fallback", None[string]().OrElse("fallback"))
	assert.Equal(t, "set", Some("set").OrElse("fallback"))

	value, ok := Some(42).Get()
	assert.True(t, ok)
	assert.Equal(t, 42, value)
}

func TestOptionalMarshal(t *testing.T) {
	type payload struct {
		Kept    Optional[int] `json:"kept,omitzero"`
		Dropped Optional[int] `json:"dropped,omitzero"`
		Null    Optional[int] `json:"null"`
	}

	encoded, err := json.Marshal(payload{Kept: Some(0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kept":0,"null":null}`, string(encoded))
}

func TestTimestampJSON(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`1700000000`), &ts))
	assert.Equal(t, int64(1700000000), ts.Unix())
	assert.Equal(t, "UTC", ts.Location().String())

	encoded, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, "1700000000", string(encoded))

	assert.Error(t, json.Unmarshal([]byte(`"2020-01-01T00:00:00Z"`), &ts))
}
