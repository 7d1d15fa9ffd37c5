package dto

import (
	"time"

	"github.com/opentreso/treasury_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AttachmentPayload carries a stored file reference from the file-storage
// layer. The core only keeps the pointer; bytes never pass through here.
type AttachmentPayload struct {
	StoragePath string `json:"storagePath" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	MimeType    string `json:"mimeType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// entryCommon holds the fields every entry creation request shares. Amounts
// arrive as strings and are parsed into decimals by the service.
type entryCommon struct {
	Amount        string            `json:"amount" binding:"required,money_amount"`
	EffectiveDate *string           `json:"effectiveDate"` // Calendar date (2006-01-02), defaults to today
	Description   string            `json:"description"`
	ContactID     *string           `json:"contactID"`
	TagIDs        []string          `json:"tagIDs"`
	Metadata      map[string]string `json:"metadata"`
	Attachments   []AttachmentPayload `json:"attachments"`
}

// CreateCashInRequest records money received in cash.
type CreateCashInRequest struct {
	entryCommon
}

// CreateCashOutRequest records money paid out in cash.
type CreateCashOutRequest struct {
	entryCommon
	Category domain.Category `json:"category" binding:"required,oneof=SALARY RENT TAX FUEL SUPPLIES MAINTENANCE OTHER"`
}

// CreateBankInRequest records an incoming bank transfer.
type CreateBankInRequest struct {
	entryCommon
	BankAccountID string `json:"bankAccountID" binding:"required"`
}

// CreateBankOutRequest records an outgoing bank transfer.
type CreateBankOutRequest struct {
	entryCommon
	BankAccountID string          `json:"bankAccountID" binding:"required"`
	Category      domain.Category `json:"category" binding:"required,oneof=SALARY RENT TAX FUEL SUPPLIES MAINTENANCE OTHER"`
}

// PosMode selects which leg of the POS breakdown the caller supplies.
type PosMode string

const (
	PosModeNetCommission   PosMode = "NET_COMMISSION"
	PosModeGrossCommission PosMode = "GROSS_COMMISSION"
)

// CreatePosCollectionRequest records a card-terminal collection settled into a
// bank account. Exactly one of Net or Gross is required depending on Mode; the
// other leg is derived.
type CreatePosCollectionRequest struct {
	EffectiveDate *string           `json:"effectiveDate"`
	Description   string            `json:"description"`
	ContactID     *string           `json:"contactID"`
	TagIDs        []string          `json:"tagIDs"`
	Metadata      map[string]string `json:"metadata"`
	Attachments   []AttachmentPayload `json:"attachments"`

	BankAccountID string  `json:"bankAccountID" binding:"required"`
	Mode          PosMode `json:"mode" binding:"required,oneof=NET_COMMISSION GROSS_COMMISSION"`
	Net           *string `json:"net"`
	Gross         *string `json:"gross"`
	Commission    string  `json:"commission" binding:"required,money_amount"`
}

// CreateCardExpenseRequest records a purchase made with an organization card.
type CreateCardExpenseRequest struct {
	entryCommon
	CardID   string          `json:"cardID" binding:"required"`
	Category domain.Category `json:"category" binding:"required,oneof=SALARY RENT TAX FUEL SUPPLIES MAINTENANCE OTHER"`
}

// CreateCardPaymentRequest records a payment onto an organization card.
type CreateCardPaymentRequest struct {
	entryCommon
	CardID string `json:"cardID" binding:"required"`
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID       string               `json:"entryID"`
	SequenceNo    string               `json:"sequenceNo"`
	Method        domain.Method        `json:"method"`
	OperationKind domain.OperationKind `json:"operationKind"`
	Direction     domain.Direction     `json:"direction"`
	Amount        decimal.Decimal      `json:"amount"`
	CurrencyCode  string               `json:"currencyCode"`
	EffectiveDate string               `json:"effectiveDate"`
	RecordedAt    time.Time            `json:"recordedAt"`
	Description   string               `json:"description,omitempty"`
	Category      domain.Category      `json:"category,omitempty"`
	BankAccountID *string              `json:"bankAccountID,omitempty"`
	CardID        *string              `json:"cardID,omitempty"`
	ContactID     *string              `json:"contactID,omitempty"`
	CheckID       *string              `json:"checkID,omitempty"`
	Pos           *domain.PosDetails   `json:"pos,omitempty"`
	Metadata      map[string]string    `json:"metadata,omitempty"`
	Tags          []domain.Tag         `json:"tags,omitempty"`
	Attachments   []domain.Attachment  `json:"attachments,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
}

// CreateEntryResponse wraps the created entry plus any linked commission entry
// booked alongside a POS collection.
type CreateEntryResponse struct {
	Entry           EntryResponse  `json:"entry"`
	CommissionEntry *EntryResponse `json:"commissionEntry,omitempty"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	From          *string `form:"from"` // Calendar date (2006-01-02)
	To            *string `form:"to"`
	Method        *string `form:"method"`
	BankAccountID *string `form:"bankAccountID"`
	Limit         int     `form:"limit,default=50"`
	NextToken     *string `form:"nextToken"`
}

// ListEntriesResponse wraps the list of entries with the pagination token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:       e.EntryID,
		SequenceNo:    e.SequenceLabel(),
		Method:        e.Method,
		OperationKind: e.OperationKind,
		Direction:     e.Direction,
		Amount:        e.Amount,
		CurrencyCode:  e.CurrencyCode,
		EffectiveDate: e.EffectiveDate.Format("2006-01-02"),
		RecordedAt:    e.RecordedAt,
		Description:   e.Description,
		Category:      e.Category,
		BankAccountID: e.BankAccountID,
		CardID:        e.CardID,
		ContactID:     e.ContactID,
		CheckID:       e.CheckID,
		Pos:           e.Pos,
		Metadata:      e.Metadata,
		Tags:          e.Tags,
		Attachments:   e.Attachments,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of domain entries.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
