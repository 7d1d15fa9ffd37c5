package repositories

import (
	"context"
	"time"

	"github.com/opentreso/treasury_app/internal/core/domain"
)

// ListEntriesParams narrows an entry listing. Nil time bounds are open ended.
type ListEntriesParams struct {
	From          *time.Time
	To            *time.Time
	Method        *domain.Method
	BankAccountID *string
	Limit         int
	NextToken     *string
}

// EntryReader defines read operations for ledger entries.
type EntryReader interface {
	// FindEntryByID retrieves one entry with its tags and attachments populated.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// ListEntries retrieves a filtered, token-paginated list of entries ordered
	// by (effective date, recorded at).
	ListEntries(ctx context.Context, params ListEntriesParams) ([]domain.Entry, *string, error)
}

// EntryWriter defines write operations for ledger entries.
type EntryWriter interface {
	// CreateEntry persists an entry, its tag links and attachment rows in one
	// database transaction and returns the entry with its assigned sequence
	// number and recorded-at timestamp. A non-nil commissionEntry is inserted
	// in the same transaction (POS commission booked as a separate outflow)
	// and has its sequence number and recorded-at set in place.
	CreateEntry(ctx context.Context, entry domain.Entry, tagIDs []string, attachments []domain.Attachment, commissionEntry *domain.Entry) (*domain.Entry, error)

	// DeleteEntry hard-deletes one entry and its tag/attachment links, returning
	// the deleted row. There is no soft delete or undo.
	DeleteEntry(ctx context.Context, entryID string) (*domain.Entry, error)
}

// EntryRepositoryFacade combines all entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities.
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
