package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hr_memo_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/utils"
)

const qrCodeSize = 256

// mfaService implements MFASvc on top of the employee store.
type mfaService struct {
	BaseService
	employeeRepo portsrepo.EmployeeRepositoryFacade
	issuer       string
	now          func() time.Time
}

// MFAServiceOption configures the MFA service
type MFAServiceOption func(*mfaService)

// WithMFAClock overrides time.Now, for tests.
func WithMFAClock(now func() time.Time) MFAServiceOption {
	return func(s *mfaService) {
		s.now = now
	}
}

// NewMFAService creates the MFA service. issuer is shown by authenticator apps.
func NewMFAService(employeeRepo portsrepo.EmployeeRepositoryFacade, issuer string, options ...MFAServiceOption) portssvc.MFASvc {
	svc := &mfaService{
		employeeRepo: employeeRepo,
		issuer:       issuer,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.MFASvc = (*mfaService)(nil)

func (s *mfaService) loadEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		err = storeError(err, "failed to load employee")
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load employee for MFA", slog.String("employee_id", employeeID))
		}
		return nil, err
	}
	return employee, nil
}

func (s *mfaService) SetupMFA(ctx context.Context, employeeID string) (*domain.MFASetup, error) {
	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.MFAEnabled {
		return nil, fmt.Errorf("%w: MFA is already enabled, disable it before setting it up again", apperrors.ErrInvalidStateTransition)
	}

	key, err := utils.GenerateTOTPKey(s.issuer, employee.Email)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate TOTP secret", slog.String("employee_id", employeeID))
		return nil, err
	}
	qr, err := utils.TOTPQRCodePNG(key, qrCodeSize)
	if err != nil {
		s.LogError(ctx, err, "Failed to render TOTP QR code", slog.String("employee_id", employeeID))
		return nil, err
	}
	codes, err := utils.GenerateBackupCodes(domain.BackupCodeCount)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate backup codes", slog.String("employee_id", employeeID))
		return nil, err
	}
	hashes := make([]string, len(codes))
	for i, code := range codes {
		hashes[i] = utils.HashBackupCode(code)
	}

	if err := s.employeeRepo.SavePendingMFA(ctx, employeeID, key.Secret(), hashes, s.now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrStatusChanged) {
			err = fmt.Errorf("%w: MFA was enabled concurrently, disable it before setting it up again", apperrors.ErrInvalidStateTransition)
			s.LogWarn(ctx, err, "MFA setup lost to a concurrent enable", slog.String("employee_id", employeeID))
			return nil, err
		}
		err = storeError(err, "failed to save MFA setup")
		s.LogFailure(ctx, err, "Failed to save pending MFA", slog.String("employee_id", employeeID))
		return nil, err
	}

	s.LogInfo(ctx, "MFA setup started", slog.String("employee_id", employeeID))
	return &domain.MFASetup{
		Secret:          key.Secret(),
		ProvisioningURI: key.URL(),
		QRCodePNG:       qr,
		BackupCodes:     codes,
	}, nil
}

func (s *mfaService) EnableMFA(ctx context.Context, employeeID string, code string) error {
	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	if employee.MFAEnabled {
		return fmt.Errorf("%w: MFA is already enabled", apperrors.ErrInvalidStateTransition)
	}
	if employee.PendingMFASecret == "" {
		return fmt.Errorf("%w: no MFA setup in progress", apperrors.ErrInvalidStateTransition)
	}
	if !utils.ValidateTOTPCode(employee.PendingMFASecret, code, s.now()) {
		s.LogWarn(ctx, apperrors.ErrInvalidMFACode, "MFA enable code rejected", slog.String("employee_id", employeeID))
		return apperrors.ErrInvalidMFACode
	}

	if err := s.employeeRepo.ActivateMFA(ctx, employeeID, employee.PendingMFASecret, s.now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrStatusChanged) {
			return fmt.Errorf("%w: MFA setup was replaced, scan the new code", apperrors.ErrInvalidStateTransition)
		}
		err = storeError(err, "failed to enable MFA")
		s.LogError(ctx, err, "Failed to activate MFA", slog.String("employee_id", employeeID))
		return err
	}

	s.LogInfo(ctx, "MFA enabled", slog.String("employee_id", employeeID))
	return nil
}

func (s *mfaService) VerifyToken(ctx context.Context, employeeID string, code string) (bool, error) {
	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return false, err
	}
	if !employee.MFAEnabled {
		return false, nil
	}
	return utils.ValidateTOTPCode(employee.MFASecret, code, s.now()), nil
}

func (s *mfaService) VerifyBackupCode(ctx context.Context, employeeID string, code string) (bool, error) {
	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return false, err
	}
	if !employee.MFAEnabled || strings.TrimSpace(code) == "" {
		return false, nil
	}

	consumed, err := s.employeeRepo.ConsumeBackupCode(ctx, employeeID, utils.HashBackupCode(code), s.now().UTC())
	if err != nil {
		err = storeError(err, "failed to consume backup code")
		s.LogError(ctx, err, "Failed to consume backup code", slog.String("employee_id", employeeID))
		return false, err
	}
	if consumed {
		s.LogInfo(ctx, "Backup code consumed", slog.String("employee_id", employeeID))
	}
	return consumed, nil
}

func (s *mfaService) DisableMFA(ctx context.Context, employeeID string) error {
	if _, err := s.loadEmployee(ctx, employeeID); err != nil {
		return err
	}
	if err := s.employeeRepo.ClearMFA(ctx, employeeID, s.now().UTC()); err != nil {
		err = storeError(err, "failed to disable MFA")
		s.LogError(ctx, err, "Failed to disable MFA", slog.String("employee_id", employeeID))
		return err
	}
	s.LogInfo(ctx, "MFA disabled", slog.String("employee_id", employeeID))
	return nil
}

func (s *mfaService) GetMFAStatus(ctx context.Context, employeeID string) (*domain.MFAStatus, error) {
	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return &domain.MFAStatus{
		Enabled:              employee.MFAEnabled,
		SetupPending:         !employee.MFAEnabled && employee.PendingMFASecret != "",
		RemainingBackupCodes: len(employee.BackupCodeHashes),
	}, nil
}
