package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContactType distinguishes counterparties for lifecycle preconditions:
// checks are received from customers and endorsed to suppliers.
type ContactType string

const (
	ContactCustomer ContactType = "CUSTOMER"
	ContactSupplier ContactType = "SUPPLIER"
	ContactOther    ContactType = "OTHER"
)

// Contact is a counterparty the organization moves money with.
type Contact struct {
	ContactID string      `json:"contactID"` // Primary key (UUID)
	Name      string      `json:"name"`
	Type      ContactType `json:"type"`
	Phone     string      `json:"phone,omitempty"`
	Email     string      `json:"email,omitempty"`
	IsActive  bool        `json:"isActive"`
	AuditFields
}

// BankAccount is a reference entity for bank-channel entries. Its running
// balance is never stored; the aggregator recomputes it from InitialBalance
// plus the fold of linked entries.
type BankAccount struct {
	BankAccountID  string          `json:"bankAccountID"` // Primary key (UUID)
	Name           string          `json:"name"`
	BankName       string          `json:"bankName"`
	AccountNumber  string          `json:"accountNumber,omitempty"`
	InitialBalance decimal.Decimal `json:"initialBalance"` // Fixed at creation
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// Card is a reference entity for card-channel entries.
type Card struct {
	CardID         string          `json:"cardID"` // Primary key (UUID)
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"` // Fixed at creation
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// Tag is a shared label attachable to any number of entries.
type Tag struct {
	TagID     string    `json:"tagID"` // Primary key (UUID)
	Name      string    `json:"name"`  // Unique
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// Attachment is a pointer to an evidentiary file held in external storage.
// Only path and metadata live here; the core never reads file bytes.
type Attachment struct {
	AttachmentID string    `json:"attachmentID"` // Primary key (UUID)
	StoragePath  string    `json:"storagePath"`
	FileName     string    `json:"fileName"`
	MimeType     string    `json:"mimeType"`
	SizeBytes    int64     `json:"sizeBytes"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}
