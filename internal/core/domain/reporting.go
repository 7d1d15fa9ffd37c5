package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriod bounds a report by effective date, inclusive on both ends.
type ReportPeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// ReportTotals summarizes a window of entries. ClosingBalance always equals
// the running balance of the last row.
type ReportTotals struct {
	Inflow         decimal.Decimal `json:"inflow"`
	Outflow        decimal.Decimal `json:"outflow"`
	Net            decimal.Decimal `json:"net"` // Inflow minus Outflow
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// DayBookRow is one entry in the day-book report with its running balance.
// Rows are ordered by (effective date, recorded at); the running balance is a
// prefix sum over that exact order, starting at zero for the window.
type DayBookRow struct {
	EntryID        string          `json:"entryID"`
	SequenceNo     int64           `json:"sequenceNo"`
	Method         Method          `json:"method"`
	OperationKind  OperationKind   `json:"operationKind"`
	Direction      Direction       `json:"direction"`
	Amount         decimal.Decimal `json:"amount"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	RecordedAt     time.Time       `json:"recordedAt"`
	Description    string          `json:"description"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// DayBookReport is the ordered window report consumed by the front end and
// the scheduled report mailer.
type DayBookReport struct {
	Period ReportPeriod `json:"period"`
	Rows   []DayBookRow `json:"rows"`
	Totals ReportTotals `json:"totals"`
}

// LedgerReportRow extends a day-book row with resolved reference names and
// attached tags for document rendering.
type LedgerReportRow struct {
	DayBookRow
	Category        Category `json:"category,omitempty"`
	BankAccountName string   `json:"bankAccountName,omitempty"`
	CardName        string   `json:"cardName,omitempty"`
	ContactName     string   `json:"contactName,omitempty"`
	Tags            []Tag    `json:"tags,omitempty"`
}

// LedgerReport is the full ledger report: same ordering and prefix-sum rule
// as the day book, plus reference resolution. It is the sole input contract
// for PDF/CSV rendering downstream.
type LedgerReport struct {
	Period ReportPeriod      `json:"period"`
	Rows   []LedgerReportRow `json:"rows"`
	Totals ReportTotals      `json:"totals"`
}

// CheckExposure is the "checks awaiting collection" figure: customer checks
// still in the safe.
type CheckExposure struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// BalanceSnapshot is a materialized checkpoint balance. It is purely a read
// optimization: a balance read folds only entries recorded after the latest
// snapshot. The entry fold remains the source of truth.
type BalanceSnapshot struct {
	SnapshotID    string          `json:"snapshotID"`              // Primary key (UUID)
	BankAccountID *string         `json:"bankAccountID,omitempty"` // Nil for the cash balance
	Balance       decimal.Decimal `json:"balance"`
	AsOf          time.Time       `json:"asOf"` // Entries recorded at or before are folded in
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}
