package services

import (
	portsrepo "github.com/SscSPs/hr_memo_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// events may be nil.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, events portssvc.EventTracker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	memoOpts := []MemorandumServiceOption{
		WithLevelPermissions(cfg.LevelPermissions),
		WithRejectionCommentRequired(cfg.RequireRejectionComment),
	}
	if events != nil {
		memoOpts = append(memoOpts, WithEventTracker(events))
	}
	container.Memorandum = NewMemorandumService(repos.MemorandumRepo, memoOpts...)

	container.Employee = NewEmployeeService(repos.EmployeeRepo)
	container.MFA = NewMFAService(repos.EmployeeRepo, cfg.MFAIssuer)

	container.TokenService = NewTokenService(cfg, container.Employee)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.MemorandumSvcFacade         = (*memorandumService)(nil)
	_ portssvc.EmployeeSvcFacade           = (*employeeService)(nil)
	_ portssvc.MFASvc                      = (*mfaService)(nil)
	_ portssvc.TokenSvcFacade              = (*tokenService)(nil)
	_ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)
)
