package vcon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndicesUnmarshalScalar(t *testing.T) {
	var ix Indices
	require.NoError(t, json.Unmarshal([]byte(`2`), &ix))
	assert.Equal(t, []int{2}, ix.Values())
	assert.False(t, ix.IsZero())

	out, err := json.Marshal(ix)
	require.NoError(t, err)
	assert.Equal(t, `2`, string(out))
}

func TestIndicesUnmarshalList(t *testing.T) {
	var ix Indices
	require.NoError(t, json.Unmarshal([]byte(`[0,1,2]`), &ix))
	assert.Equal(t, []int{0, 1, 2}, ix.Values())

	out, err := json.Marshal(ix)
	require.NoError(t, err)
	assert.Equal(t, `[0,1,2]`, string(out))
}

func TestIndicesRejectsOtherShapes(t *testing.T) {
	var ix Indices
	assert.Error(t, json.Unmarshal([]byte(`"0"`), &ix))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &ix))
}

func TestIndicesZeroOmitted(t *testing.T) {
	// An absent reference stays absent through a round-trip.
	d := Dialog{Type: DialogText, Start: "2024-11-08T12:00:00Z"}
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"parties"`)
}

func TestIndicesValuesCopy(t *testing.T) {
	ix := NewIndices(0, 1)
	vals := ix.Values()
	vals[0] = 99
	assert.Equal(t, []int{0, 1}, ix.Values())
}
