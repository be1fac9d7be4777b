package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOTPRoundTrip(t *testing.T) {
	key, err := GenerateTOTPKey("HR Memo", "a@b.com")
	require.NoError(t, err)
	assert.NotEmpty(t, key.Secret())
	assert.True(t, strings.HasPrefix(key.URL(), "otpauth://totp/"))

	now := time.Date(2026, 3, 2, 10, 0, 15, 0, time.UTC)
	code, err := GenerateTOTPCode(key.Secret(), now)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	assert.True(t, ValidateTOTPCode(key.Secret(), code, now))
	// one step of drift either way is tolerated
	assert.True(t, ValidateTOTPCode(key.Secret(), code, now.Add(30*time.Second)))
	assert.True(t, ValidateTOTPCode(key.Secret(), code, now.Add(-30*time.Second)))
	// two steps away is not
	assert.False(t, ValidateTOTPCode(key.Secret(), code, now.Add(60*time.Second)))
	assert.False(t, ValidateTOTPCode(key.Secret(), code, now.Add(-60*time.Second)))
}

func TestValidateTOTPCode_Rejects(t *testing.T) {
	key, err := GenerateTOTPKey("HR Memo", "a@b.com")
	require.NoError(t, err)
	now := time.Now()

	code, err := GenerateTOTPCode(key.Secret(), now)
	require.NoError(t, err)
	if code != "000000" {
		assert.False(t, ValidateTOTPCode(key.Secret(), "000000", now))
	}
	assert.False(t, ValidateTOTPCode(key.Secret(), "12345", now))
	assert.False(t, ValidateTOTPCode("", code, now))
}

func TestTOTPQRCodePNG(t *testing.T) {
	key, err := GenerateTOTPKey("HR Memo", "a@b.com")
	require.NoError(t, err)

	img, err := TOTPQRCodePNG(key, 200)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), img[:4])
}

func TestGenerateBackupCodes(t *testing.T) {
	codes, err := GenerateBackupCodes(10)
	require.NoError(t, err)
	assert.Len(t, codes, 10)

	format := regexp.MustCompile(`^[0-9A-F]{8}$`)
	seen := map[string]bool{}
	for _, c := range codes {
		assert.Regexp(t, format, c)
		assert.False(t, seen[c], "duplicate code %s", c)
		seen[c] = true
	}
}

func TestRemoveBackupCodeHash_SingleUse(t *testing.T) {
	stored := []string{HashBackupCode("A1B2C3D4"), HashBackupCode("FFFF0000")}

	remaining, ok := RemoveBackupCodeHash(stored, HashBackupCode(" a1b2c3d4 "))
	require.True(t, ok)
	assert.Equal(t, []string{HashBackupCode("FFFF0000")}, remaining)
	assert.Len(t, stored, 2, "input slice must not be modified")

	_, ok = RemoveBackupCodeHash(remaining, HashBackupCode("A1B2C3D4"))
	assert.False(t, ok)
}
