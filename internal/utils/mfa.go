package utils

import (
	"bytes"
	"fmt"
	"image/png"
	"slices"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	totpPeriod = 30
	totpSkew   = 1 // accept the previous and next 30s window as well

	backupCodeBytes = 4 // 8 hex characters
)

var totpOpts = totp.ValidateOpts{
	Period:    totpPeriod,
	Skew:      totpSkew,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// GenerateTOTPKey creates a new shared secret for accountName.
func GenerateTOTPKey(issuer, accountName string) (*otp.Key, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate totp key: %w", err)
	}
	return key, nil
}

// TOTPQRCodePNG renders the provisioning URI of key as a square PNG.
func TOTPQRCodePNG(key *otp.Key, size int) ([]byte, error) {
	img, err := key.Image(size, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render totp qr code: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode totp qr code: %w", err)
	}
	return buf.Bytes(), nil
}

// ValidateTOTPCode checks a 6 digit code against secret at the given time, with a one step tolerance.
func ValidateTOTPCode(secret, code string, at time.Time) bool {
	if secret == "" {
		return false
	}
	ok, err := totp.ValidateCustom(strings.TrimSpace(code), secret, at, totpOpts)
	return err == nil && ok
}

// GenerateTOTPCode returns the code for secret at the given time.
func GenerateTOTPCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, at, totpOpts)
}

// GenerateBackupCodes returns n random 8 character uppercase hex codes.
func GenerateBackupCodes(n int) ([]string, error) {
	codes := make([]string, 0, n)
	for len(codes) < n {
		raw, err := GenerateSecureRandomString(backupCodeBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to generate backup code: %w", err)
		}
		code := strings.ToUpper(raw)
		if slices.Contains(codes, code) {
			continue
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// RemoveBackupCodeHash returns hashes without hash, and whether it was present.
func RemoveBackupCodeHash(hashes []string, hash string) ([]string, bool) {
	i := slices.Index(hashes, hash)
	if i < 0 {
		return hashes, false
	}
	return slices.Delete(slices.Clone(hashes), i, i+1), true
}
