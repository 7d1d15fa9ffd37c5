package services

import (
	"context"

	"github.com/opentreso/treasury_app/internal/core/domain"
	"github.com/opentreso/treasury_app/internal/dto"
)

// BankAccountSvcFacade manages bank account reference data.
type BankAccountSvcFacade interface {
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, actorID string) (*domain.BankAccount, error)
	GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, includeInactive bool) ([]domain.BankAccount, error)
	DeactivateBankAccount(ctx context.Context, bankAccountID string, actorID string) error
}

// CardSvcFacade manages card reference data.
type CardSvcFacade interface {
	CreateCard(ctx context.Context, req dto.CreateCardRequest, actorID string) (*domain.Card, error)
	GetCardByID(ctx context.Context, cardID string) (*domain.Card, error)
	ListCards(ctx context.Context, includeInactive bool) ([]domain.Card, error)
	DeactivateCard(ctx context.Context, cardID string, actorID string) error
}

// ContactSvcFacade manages counterparty reference data.
type ContactSvcFacade interface {
	CreateContact(ctx context.Context, req dto.CreateContactRequest, actorID string) (*domain.Contact, error)
	GetContactByID(ctx context.Context, contactID string) (*domain.Contact, error)
	ListContacts(ctx context.Context, contactType *domain.ContactType, includeInactive bool) ([]domain.Contact, error)
	DeactivateContact(ctx context.Context, contactID string, actorID string) error
}

// TagSvcFacade manages entry tags.
type TagSvcFacade interface {
	CreateTag(ctx context.Context, req dto.CreateTagRequest, actorID string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
}
