package repositories

// RepositoryProvider bundles all repository implementations for injection into
// the service container.
type RepositoryProvider struct {
	EntryRepo       EntryRepositoryWithTx
	CheckRepo       CheckRepositoryFacade
	BankAccountRepo BankAccountRepository
	CardRepo        CardRepository
	ContactRepo     ContactRepository
	TagRepo         TagRepository
	ReportingRepo   ReportingRepository
	UserRepo        UserRepository
}
