package dto

import (
	"time"

	"github.com/opentreso/treasury_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReceiveCheckRequest registers a customer check entering the safe. At least
// one attachment (scan of the physical instrument) is required.
type ReceiveCheckRequest struct {
	SerialNumber string              `json:"serialNumber" binding:"required"`
	BankName     string              `json:"bankName" binding:"required"`
	Amount       string              `json:"amount" binding:"required,money_amount"`
	DueDate      string              `json:"dueDate" binding:"required,calendar_date"` // Calendar date (2006-01-02)
	ContactID    string              `json:"contactID" binding:"required"`
	Notes        string              `json:"notes"`
	Attachments  []AttachmentPayload `json:"attachments"`
}

// IssueCheckRequest registers a check the organization writes to a payee.
type IssueCheckRequest struct {
	SerialNumber string              `json:"serialNumber" binding:"required"`
	BankName     string              `json:"bankName" binding:"required"`
	Amount       string              `json:"amount" binding:"required,money_amount"`
	DueDate      string              `json:"dueDate" binding:"required,calendar_date"`
	ContactID    *string             `json:"contactID"`
	IssuerLabel  string              `json:"issuerLabel"`
	Notes        string              `json:"notes"`
	Attachments  []AttachmentPayload `json:"attachments"`
}

// EndorseCheckRequest hands a held check to a supplier in lieu of cash.
type EndorseCheckRequest struct {
	SupplierContactID string `json:"supplierContactID" binding:"required"`
	Note              string `json:"note"`
}

// SettleCheckRequest settles a check against a bank account, producing the
// linked check-settlement ledger entry.
type SettleCheckRequest struct {
	BankAccountID string  `json:"bankAccountID" binding:"required"`
	Amount        string  `json:"amount" binding:"required,money_amount"`
	EffectiveDate *string `json:"effectiveDate"`
	Description   string  `json:"description"`
}

// CheckMoveResponse is one audit record of a check lifecycle transition.
type CheckMoveResponse struct {
	MoveID    string            `json:"moveID"`
	Action    domain.MoveAction `json:"action"`
	EntryID   *string           `json:"entryID,omitempty"`
	Note      string            `json:"note,omitempty"`
	ActorID   string            `json:"actorID"`
	CreatedAt time.Time         `json:"createdAt"`
}

// CheckResponse defines the data returned for a check.
type CheckResponse struct {
	CheckID      string              `json:"checkID"`
	SerialNumber string              `json:"serialNumber"`
	BankName     string              `json:"bankName"`
	Amount       decimal.Decimal     `json:"amount"`
	DueDate      string              `json:"dueDate"`
	Status       domain.CheckStatus  `json:"status"`
	ContactID    *string             `json:"contactID,omitempty"`
	IssuerLabel  string              `json:"issuerLabel,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	Attachment   *domain.Attachment  `json:"attachment,omitempty"`
	Moves        []CheckMoveResponse `json:"moves,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	CreatedBy    string              `json:"createdBy"`
}

// SettleCheckResponse wraps the paid check and the settlement entry created
// with it.
type SettleCheckResponse struct {
	Check CheckResponse `json:"check"`
	Entry EntryResponse `json:"entry"`
}

// ListChecksParams defines query parameters for listing checks.
type ListChecksParams struct {
	Status    *string `form:"status"`
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// ListChecksResponse wraps the list of checks with the pagination token.
type ListChecksResponse struct {
	Checks    []CheckResponse `json:"checks"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToCheckMoveResponse converts a domain.CheckMove.
func ToCheckMoveResponse(m *domain.CheckMove) CheckMoveResponse {
	return CheckMoveResponse{
		MoveID:    m.MoveID,
		Action:    m.Action,
		EntryID:   m.EntryID,
		Note:      m.Note,
		ActorID:   m.ActorID,
		CreatedAt: m.CreatedAt,
	}
}

// ToCheckResponse converts a domain.Check to CheckResponse DTO.
func ToCheckResponse(c *domain.Check) CheckResponse {
	moves := make([]CheckMoveResponse, len(c.Moves))
	for i := range c.Moves {
		moves[i] = ToCheckMoveResponse(&c.Moves[i])
	}
	return CheckResponse{
		CheckID:      c.CheckID,
		SerialNumber: c.SerialNumber,
		BankName:     c.BankName,
		Amount:       c.Amount,
		DueDate:      c.DueDate.Format("2006-01-02"),
		Status:       c.Status,
		ContactID:    c.ContactID,
		IssuerLabel:  c.IssuerLabel,
		Notes:        c.Notes,
		Attachment:   c.Attachment,
		Moves:        moves,
		CreatedAt:    c.CreatedAt,
		CreatedBy:    c.CreatedBy,
	}
}

// ToCheckResponses converts a slice of domain checks.
func ToCheckResponses(checks []domain.Check) []CheckResponse {
	responses := make([]CheckResponse, len(checks))
	for i := range checks {
		responses[i] = ToCheckResponse(&checks[i])
	}
	return responses
}
