package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository against one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		EntryRepo:       NewEntryRepository(pool),
		CheckRepo:       NewCheckRepository(pool),
		BankAccountRepo: NewBankAccountRepository(pool),
		CardRepo:        NewCardRepository(pool),
		ContactRepo:     NewContactRepository(pool),
		TagRepo:         NewTagRepository(pool),
		ReportingRepo:   NewReportingRepository(pool),
		UserRepo:        NewUserRepository(pool),
	}
}
