package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchPayload struct {
	Name   Optional[string]  `json:"name"`
	Budget Optional[float64] `json:"budget"`
}

func TestOptional_UnmarshalPresence(t *testing.T) {
	var p patchPayload
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Atlas"}`), &p))

	assert.True(t, p.Name.Set)
	require.NotNil(t, p.Name.Value)
	assert.Equal(t, "Atlas", *p.Name.Value)
	assert.False(t, p.Budget.Set)
}

func TestOptional_UnmarshalNull(t *testing.T) {
	var p patchPayload
	require.NoError(t, json.Unmarshal([]byte(`{"budget":null}`), &p))

	assert.True(t, p.Budget.Set)
	assert.True(t, p.Budget.IsNull())
	assert.False(t, p.Name.Set)
}

func TestOptional_UnmarshalTypeMismatch(t *testing.T) {
	var p patchPayload
	assert.Error(t, json.Unmarshal([]byte(`{"budget":"lots"}`), &p))
}

func TestOptional_Constructors(t *testing.T) {
	s := Some(0.0)
	assert.True(t, s.Set)
	assert.False(t, s.IsNull())

	n := Null[string]()
	assert.True(t, n.IsNull())

	var zero Optional[int]
	assert.False(t, zero.Set)
	assert.False(t, zero.IsNull())
}
