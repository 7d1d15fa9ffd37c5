package services

import (
	"context"

	"github.com/opentreso/treasury_app/internal/core/domain"
	"github.com/opentreso/treasury_app/internal/dto"
)

// EntryCreatorSvc is the ledger entry factory: one operation per kind. Every
// operation validates its references, derives the direction from the kind and
// writes the entry with all side records in one database transaction.
type EntryCreatorSvc interface {
	CashIn(ctx context.Context, req dto.CreateCashInRequest, actorID string) (*domain.Entry, error)
	CashOut(ctx context.Context, req dto.CreateCashOutRequest, actorID string) (*domain.Entry, error)
	BankIn(ctx context.Context, req dto.CreateBankInRequest, actorID string) (*domain.Entry, error)
	BankOut(ctx context.Context, req dto.CreateBankOutRequest, actorID string) (*domain.Entry, error)

	// PosCollection returns the collection entry and, when the deployment books
	// commission separately, the linked pos-commission entry.
	PosCollection(ctx context.Context, req dto.CreatePosCollectionRequest, actorID string) (*domain.Entry, *domain.Entry, error)

	CardExpense(ctx context.Context, req dto.CreateCardExpenseRequest, actorID string) (*domain.Entry, error)
	CardPayment(ctx context.Context, req dto.CreateCardPaymentRequest, actorID string) (*domain.Entry, error)
}

// EntryReaderSvc defines read operations over the ledger.
type EntryReaderSvc interface {
	GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.Entry, *string, error)
}

// EntryDeleterSvc hard-deletes entries. Deletion is irreversible and fires the
// hard-delete notification after commit.
type EntryDeleterSvc interface {
	DeleteEntry(ctx context.Context, entryID string, actorID string) error
}

// EntrySvcFacade combines all ledger entry operations.
type EntrySvcFacade interface {
	EntryCreatorSvc
	EntryReaderSvc
	EntryDeleterSvc
}
