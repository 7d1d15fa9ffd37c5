package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckStatus is the lifecycle state of a tracked instrument.
type CheckStatus string

const (
	// CheckInSafe is the entry state for received customer instruments and the
	// only state with a defined successor transition.
	CheckInSafe   CheckStatus = "IN_SAFE"
	CheckEndorsed CheckStatus = "ENDORSED"
	CheckIssued   CheckStatus = "ISSUED"
	CheckPaid     CheckStatus = "PAID"
)

// MoveAction identifies one lifecycle transition of a check.
type MoveAction string

const (
	MoveIn      MoveAction = "IN"
	MoveOut     MoveAction = "OUT"
	MoveIssue   MoveAction = "ISSUE"
	MovePayment MoveAction = "PAYMENT"
)

// Check is a negotiable paper instrument tracked from receipt or issuance
// through settlement. Checks are never physically deleted; status transitions
// through the lifecycle service are the only mutation path.
type Check struct {
	CheckID      string          `json:"checkID"`      // Primary key (UUID)
	SerialNumber string          `json:"serialNumber"` // Unique printed serial
	BankName     string          `json:"bankName"`     // Issuing bank
	Amount       decimal.Decimal `json:"amount"`       // Strictly positive
	DueDate      time.Time       `json:"dueDate"`
	Status       CheckStatus     `json:"status"`
	ContactID    *string         `json:"contactID,omitempty"`   // Counterparty
	IssuerLabel  string          `json:"issuerLabel,omitempty"` // Set for checks the organization issues
	Notes        string          `json:"notes,omitempty"`
	Attachment   *Attachment     `json:"attachment,omitempty"`
	Moves        []CheckMove     `json:"moves,omitempty"`
	AuditFields
}

// CheckMove is one immutable audit record of a check lifecycle transition.
// Moves are append-only; they are never edited or removed.
type CheckMove struct {
	MoveID    string     `json:"moveID"`  // Primary key (UUID)
	CheckID   string     `json:"checkID"` // FK -> Check
	Action    MoveAction `json:"action"`
	EntryID   *string    `json:"entryID,omitempty"` // Ledger entry produced by this transition
	Note      string     `json:"note,omitempty"`
	ActorID   string     `json:"actorID"`
	CreatedAt time.Time  `json:"createdAt"`
}

// IsTerminal reports whether the check can still transition. Only IN_SAFE
// checks have defined successor transitions besides settlement.
func (s CheckStatus) IsTerminal() bool {
	return s == CheckPaid || s == CheckEndorsed
}
