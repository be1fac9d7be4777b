package services

import (
	"context"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, employee *domain.Employee) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, employee *domain.Employee) (string, time.Time, error)
	// ValidateAndParseRefreshToken validates a refresh token string against an employee's stored token details.
	// It returns the employee if the token is valid and not expired.
	ValidateAndParseRefreshToken(ctx context.Context, employeeID string, refreshTokenString string) (*domain.Employee, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the employee to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
