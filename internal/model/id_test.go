package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDDistinguishesLocalFromPersisted(t *testing.T) {
	persisted, err := ParseID("0b0f7a52-0c7e-4f3d-9a52-1f7d25c0a001")
	require.NoError(t, err)
	assert.False(t, persisted.IsLocal())

	local, err := ParseID("tmp-0b0f7a52-0c7e-4f3d-9a52-1f7d25c0a001")
	require.NoError(t, err)
	assert.True(t, local.IsLocal())
	assert.NotEqual(t, persisted, local)
}

func TestParseIDRejectsEmpty(t *testing.T) {
	_, err := ParseID("")
	assert.ErrorIs(t, err, ErrBadID)

	_, err = ParseID("   ")
	assert.ErrorIs(t, err, ErrBadID)

	_, err = ParseID("tmp-")
	assert.ErrorIs(t, err, ErrBadID)
}

func TestIDJSONRoundTrip(t *testing.T) {
	local := NewLocalID()
	b, err := json.Marshal(local)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"tmp-`)

	var back ID
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, local, back)

	persisted := NewID()
	b, err = json.Marshal(persisted)
	require.NoError(t, err)

	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, persisted, back)
	assert.False(t, back.IsLocal())
}

func TestPersistReplacesLocalIDs(t *testing.T) {
	local := NewLocalID()
	p := local.Persist()
	assert.False(t, p.IsLocal())
	assert.False(t, p.IsZero())

	stable := NewID()
	assert.Equal(t, stable, stable.Persist())
}
