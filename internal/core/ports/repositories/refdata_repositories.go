package repositories

import (
	"context"

	"github.com/opentreso/treasury_app/internal/core/domain"
)

// BankAccountRepository defines persistence operations for bank accounts.
type BankAccountRepository interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, includeInactive bool) ([]domain.BankAccount, error)
	// SetBankAccountActive toggles the active flag; accounts are never deleted.
	SetBankAccountActive(ctx context.Context, bankAccountID string, active bool, updatedBy string) error
}

// CardRepository defines persistence operations for cards.
type CardRepository interface {
	SaveCard(ctx context.Context, card domain.Card) error
	FindCardByID(ctx context.Context, cardID string) (*domain.Card, error)
	ListCards(ctx context.Context, includeInactive bool) ([]domain.Card, error)
	SetCardActive(ctx context.Context, cardID string, active bool, updatedBy string) error
}

// ContactRepository defines persistence operations for counterparties.
type ContactRepository interface {
	SaveContact(ctx context.Context, contact domain.Contact) error
	FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error)
	ListContacts(ctx context.Context, contactType *domain.ContactType, includeInactive bool) ([]domain.Contact, error)
	SetContactActive(ctx context.Context, contactID string, active bool, updatedBy string) error
}

// TagRepository defines persistence operations for entry tags.
type TagRepository interface {
	// SaveTag inserts a tag; a duplicate name fails with apperrors.ErrDuplicate.
	SaveTag(ctx context.Context, tag domain.Tag) error
	FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error)
	FindTagsByIDs(ctx context.Context, tagIDs []string) (map[string]domain.Tag, error)
	// FindTagsByEntryIDs retrieves attached tags for a batch of entries.
	FindTagsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
}
