package dto

import (
	"encoding/base64"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
)

// MFASetupResponse is shown once to the employee. The backup codes are never retrievable again.
type MFASetupResponse struct {
	Secret          string   `json:"secret"`
	ProvisioningURI string   `json:"provisioningURI"`
	QRCodePNG       string   `json:"qrCodePNG"` // base64 encoded PNG
	BackupCodes     []string `json:"backupCodes"`
}

type MFACodeRequest struct {
	Code string `json:"code" binding:"required,max=16"`
}

type MFAVerifyResponse struct {
	Valid bool `json:"valid"`
}

type MFAStatusResponse struct {
	Enabled              bool `json:"enabled"`
	SetupPending         bool `json:"setupPending"`
	RemainingBackupCodes int  `json:"remainingBackupCodes"`
}

func ToMFASetupResponse(setup *domain.MFASetup) MFASetupResponse {
	return MFASetupResponse{
		Secret:          setup.Secret,
		ProvisioningURI: setup.ProvisioningURI,
		QRCodePNG:       base64.StdEncoding.EncodeToString(setup.QRCodePNG),
		BackupCodes:     setup.BackupCodes,
	}
}

func ToMFAStatusResponse(status *domain.MFAStatus) MFAStatusResponse {
	return MFAStatusResponse{
		Enabled:              status.Enabled,
		SetupPending:         status.SetupPending,
		RemainingBackupCodes: status.RemainingBackupCodes,
	}
}
