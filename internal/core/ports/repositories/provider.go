package repositories

// RepositoryProvider bundles the concrete repositories handed to the
// service layer at startup.
type RepositoryProvider struct {
	UserRepo     UserRepository
	CashRepo     CashRepositoryFacade
	LedgerRepo   LedgerRepositoryFacade
	SequenceRepo SequenceRepository
	MappingRepo  AccountMappingRepository
}
