package domain

// BackupCodeCount is the number of single-use backup codes issued by an MFA setup.
const BackupCodeCount = 10

// MFASetup is returned once by an MFA setup. The secret is not active until a code
// generated from it has been verified.
type MFASetup struct {
	Secret          string   `json:"secret"`
	ProvisioningURI string   `json:"provisioningURI"`
	QRCodePNG       []byte   `json:"qrCodePNG"`
	BackupCodes     []string `json:"backupCodes"`
}

// MFAStatus describes the second-factor state of an employee.
type MFAStatus struct {
	Enabled              bool `json:"enabled"`
	SetupPending         bool `json:"setupPending"`
	RemainingBackupCodes int  `json:"remainingBackupCodes"`
}
