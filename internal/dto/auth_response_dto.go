package dto

// LoginRequest carries local credentials. When MFA is enabled exactly one of
// MFACode or BackupCode must be supplied as well.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	MFACode    string `json:"mfaCode" binding:"omitempty,numeric,len=6"`
	BackupCode string `json:"backupCode" binding:"omitempty,hexadecimal,len=8"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// MFARequiredResponse is returned with 401 when a second factor is missing or wrong.
type MFARequiredResponse struct {
	Error       string `json:"error"`
	MFARequired bool   `json:"mfaRequired"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token string `json:"token"`
}

// GoogleExchangeCodeRequest carries the authorization code returned to the frontend by Google.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
