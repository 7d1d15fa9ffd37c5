package dto

import (
	"time"

	"github.com/opentreso/treasury_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to register a bank account.
type CreateBankAccountRequest struct {
	Name           string `json:"name" binding:"required"`
	BankName       string `json:"bankName" binding:"required"`
	AccountNumber  string `json:"accountNumber"`
	InitialBalance string `json:"initialBalance" binding:"required"`
}

// BankAccountResponse mirrors domain.BankAccount.
type BankAccountResponse struct {
	BankAccountID  string          `json:"bankAccountID"`
	Name           string          `json:"name"`
	BankName       string          `json:"bankName"`
	AccountNumber  string          `json:"accountNumber,omitempty"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// CreateCardRequest defines the data needed to register a card.
type CreateCardRequest struct {
	Name           string `json:"name" binding:"required"`
	InitialBalance string `json:"initialBalance" binding:"required"`
}

// CardResponse mirrors domain.Card.
type CardResponse struct {
	CardID         string          `json:"cardID"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// CreateContactRequest defines the data needed to register a counterparty.
type CreateContactRequest struct {
	Name  string             `json:"name" binding:"required"`
	Type  domain.ContactType `json:"type" binding:"required,oneof=CUSTOMER SUPPLIER OTHER"`
	Phone string             `json:"phone"`
	Email string             `json:"email"`
}

// ContactResponse mirrors domain.Contact.
type ContactResponse struct {
	ContactID string             `json:"contactID"`
	Name      string             `json:"name"`
	Type      domain.ContactType `json:"type"`
	Phone     string             `json:"phone,omitempty"`
	Email     string             `json:"email,omitempty"`
	IsActive  bool               `json:"isActive"`
	CreatedAt time.Time          `json:"createdAt"`
	CreatedBy string             `json:"createdBy"`
}

// CreateTagRequest defines the data needed to create a tag.
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// ToBankAccountResponse converts a domain.BankAccount.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:  a.BankAccountID,
		Name:           a.Name,
		BankName:       a.BankName,
		AccountNumber:  a.AccountNumber,
		InitialBalance: a.InitialBalance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
	}
}

// ToCardResponse converts a domain.Card.
func ToCardResponse(c *domain.Card) CardResponse {
	return CardResponse{
		CardID:         c.CardID,
		Name:           c.Name,
		InitialBalance: c.InitialBalance,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		CreatedBy:      c.CreatedBy,
	}
}

// ToContactResponse converts a domain.Contact.
func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID: c.ContactID,
		Name:      c.Name,
		Type:      c.Type,
		Phone:     c.Phone,
		Email:     c.Email,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		CreatedBy: c.CreatedBy,
	}
}
