package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Method identifies the payment channel of a ledger entry.
type Method string

const (
	MethodCash  Method = "CASH"
	MethodBank  Method = "BANK"
	MethodPos   Method = "POS"
	MethodCard  Method = "CARD"
	MethodCheck Method = "CHECK"
)

// OperationKind identifies the business operation that produced a ledger entry.
type OperationKind string

const (
	KindCashIn          OperationKind = "CASH_IN"
	KindCashOut         OperationKind = "CASH_OUT"
	KindBankIn          OperationKind = "BANK_IN"
	KindBankOut         OperationKind = "BANK_OUT"
	KindPosCollection   OperationKind = "POS_COLLECTION"
	KindPosCommission   OperationKind = "POS_COMMISSION"
	KindCardExpense     OperationKind = "CARD_EXPENSE"
	KindCardPayment     OperationKind = "CARD_PAYMENT"
	KindCheckSettlement OperationKind = "CHECK_SETTLEMENT"
	KindOther           OperationKind = "OTHER"
)

// Direction indicates whether money entered or left the organization.
type Direction string

const (
	Inflow  Direction = "IN"
	Outflow Direction = "OUT"
)

// directionByKind is the canonical operation-kind to direction mapping.
// Direction is never caller-settable; it is always derived from the kind.
var directionByKind = map[OperationKind]Direction{
	KindCashIn:          Inflow,
	KindCashOut:         Outflow,
	KindBankIn:          Inflow,
	KindBankOut:         Outflow,
	KindPosCollection:   Inflow,
	KindPosCommission:   Outflow,
	KindCardExpense:     Outflow,
	KindCardPayment:     Inflow,
	KindCheckSettlement: Inflow,
	KindOther:           Outflow,
}

// DirectionFor returns the canonical direction for an operation kind.
func DirectionFor(kind OperationKind) (Direction, error) {
	direction, ok := directionByKind[kind]
	if !ok {
		return "", fmt.Errorf("unknown operation kind %q", kind)
	}
	return direction, nil
}

// Category classifies outflow entries for expense reporting.
type Category string

const (
	CategorySalary      Category = "SALARY"
	CategoryRent        Category = "RENT"
	CategoryTax         Category = "TAX"
	CategoryFuel        Category = "FUEL"
	CategorySupplies    Category = "SUPPLIES"
	CategoryMaintenance Category = "MAINTENANCE"
	CategoryOther       Category = "OTHER"
)

// PosDetails holds the commission breakdown of a POS collection.
// Net is always Gross minus Commission; EffectiveRate is Commission divided by
// Gross, stored at full decimal precision.
type PosDetails struct {
	Gross         decimal.Decimal `json:"gross"`
	Commission    decimal.Decimal `json:"commission"`
	Net           decimal.Decimal `json:"net"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
}

// Entry is the canonical ledger record of one money movement. Entries are
// immutable once created; the only mutation path is a hard delete.
type Entry struct {
	EntryID       string          `json:"entryID"`    // Primary key (UUID)
	SequenceNo    int64           `json:"sequenceNo"` // Creation-ordered, unique
	Method        Method          `json:"method"`
	OperationKind OperationKind   `json:"operationKind"`
	Direction     Direction       `json:"direction"` // Derived from OperationKind
	Amount        decimal.Decimal `json:"amount"`    // Strictly positive, 2 fraction digits
	CurrencyCode  string          `json:"currencyCode"`
	EffectiveDate time.Time       `json:"effectiveDate"` // Business date, may be back-dated
	RecordedAt    time.Time       `json:"recordedAt"`    // System time of creation
	Description   string          `json:"description"`
	Category      Category        `json:"category,omitempty"` // Outflow classification
	BankAccountID *string         `json:"bankAccountID,omitempty"`
	CardID        *string         `json:"cardID,omitempty"`
	ContactID     *string         `json:"contactID,omitempty"`
	CheckID       *string         `json:"checkID,omitempty"` // Settled instrument
	Pos           *PosDetails     `json:"pos,omitempty"`     // Present only when Method is POS
	Metadata      map[string]string `json:"metadata,omitempty"`
	Tags          []Tag           `json:"tags,omitempty"`
	Attachments   []Attachment    `json:"attachments,omitempty"`
	AuditFields
}

// SequenceLabel renders the human-readable sequence number shown on reports
// and notifications.
func (e Entry) SequenceLabel() string {
	return fmt.Sprintf("TRX-%06d", e.SequenceNo)
}

// SignedAmount returns the amount with the entry's direction applied.
func (e Entry) SignedAmount() decimal.Decimal {
	if e.Direction == Outflow {
		return e.Amount.Neg()
	}
	return e.Amount
}
