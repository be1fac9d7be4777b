package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// employeePasswordCost is the bcrypt work factor for employee credentials.
const employeePasswordCost = bcrypt.DefaultCost

// ErrEmptyPassword is returned when an employee account is given a blank password.
var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword hashes an employee password with bcrypt.
// Passwords longer than 72 bytes are refused by bcrypt rather than silently truncated.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), employeePasswordCost)
	return string(hash), err
}

// CheckPasswordHash reports whether password matches the stored employee hash.
// Accounts without a local password (Google only) never match.
func CheckPasswordHash(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
