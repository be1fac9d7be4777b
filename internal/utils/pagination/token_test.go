package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2026, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, "3f0c1d2e-memo")
	assert.NotEmpty(t, token)

	decodedAt, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedAt))
	assert.Equal(t, "3f0c1d2e-memo", decodedID)

	// Local times are normalised to UTC without losing the instant.
	local := time.Date(2026, 5, 15, 16, 30, 45, 0, time.FixedZone("CEST", 2*60*60))
	decodedAt, _, err = DecodeToken(EncodeToken(local, "x"))
	require.NoError(t, err)
	assert.True(t, local.Equal(decodedAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2026-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|abc"))
	_, _, err = DecodeToken(badDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}

func TestAfter(t *testing.T) {
	cursor := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, After(cursor.Add(-time.Second), "z", cursor, "m"), "older rows come after the cursor")
	assert.False(t, After(cursor.Add(time.Second), "a", cursor, "m"), "newer rows come before the cursor")
	assert.True(t, After(cursor, "a", cursor, "m"), "ties break on id")
	assert.False(t, After(cursor, "m", cursor, "m"), "the cursor row itself is excluded")
}
