package services

// ServiceContainer holds instances of all the application services.
// It is the entry point used by the handlers.
type ServiceContainer struct {
	Memorandum         MemorandumSvcFacade
	Employee           EmployeeSvcFacade
	MFA                MFASvc
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}

// EventTracker receives product analytics events.
type EventTracker interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}
