package services

// ServiceContainer bundles the service facades handed to the HTTP layer at
// startup.
type ServiceContainer struct {
	User    UserSvcFacade
	Auth    AuthSvcFacade
	Cash    CashSvcFacade
	Ledger  LedgerSvcFacade
	Mapping AccountMappingSvc
}
