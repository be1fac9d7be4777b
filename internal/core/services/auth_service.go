package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/platform/config"
	"github.com/SscSPs/hr_memo_app/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService implements the TokenSvcFacade for handling JWT and refresh tokens.
type tokenService struct {
	BaseService
	cfg             *config.Config
	employeeService portssvc.EmployeeReaderSvc
	now             func() time.Time
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, employeeService portssvc.EmployeeReaderSvc) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:             cfg,
		employeeService: employeeService,
		now:             time.Now,
	}
}

// GenerateAccessToken creates a new JWT access token for the given employee.
func (s *tokenService) GenerateAccessToken(ctx context.Context, employee *domain.Employee) (string, time.Time, error) {
	expiryTime := s.now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(employee.EmployeeID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("employee_id", employee.EmployeeID))
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new opaque refresh token. Only its hash is stored.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, employee *domain.Employee) (string, time.Time, error) {
	// 32 bytes, 64 hex characters
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token", slog.String("employee_id", employee.EmployeeID))
		return "", time.Time{}, fmt.Errorf("failed to generate secure random string for refresh token: %w", err)
	}

	return rawRefreshToken, s.now().Add(s.cfg.RefreshTokenExpiryDuration), nil
}

// ValidateAndParseRefreshToken checks the token against the hash stored for the employee.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, employeeID string, refreshTokenString string) (*domain.Employee, error) {
	employee, err := s.employeeService.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to retrieve employee for refresh token validation: %w", err)
	}

	if employee.RefreshTokenHash == "" || employee.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if s.now().After(*employee.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(refreshTokenString, employee.RefreshTokenHash) {
		s.LogWarn(ctx, apperrors.ErrUnauthenticated, "Refresh token mismatch", slog.String("employee_id", employeeID))
		return nil, apperrors.ErrUnauthenticated
	}

	return employee, nil
}

// --- GoogleOAuthHandlerSvcFacade Implementation ---

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateStateString creates a CSRF token for the OAuth flow.
func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns the payload if valid.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: google ID token validation failed: %v", apperrors.ErrUnauthenticated, err)
	}
	return payload, nil
}
