package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashRefreshToken generates a SHA256 hash of a refresh token.
func HashRefreshToken(token string) string {
	return sha256Hex(token)
}

// CompareRefreshTokenHash compares a plain refresh token with its stored SHA256 hash.
func CompareRefreshTokenHash(token string, storedHash string) bool {
	return HashRefreshToken(token) == storedHash
}

// HashBackupCode hashes a backup code for storage. Codes compare case-insensitively.
func HashBackupCode(code string) string {
	return sha256Hex(strings.ToUpper(strings.TrimSpace(code)))
}
