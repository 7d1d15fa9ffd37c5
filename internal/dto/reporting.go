package dto

import (
	"github.com/shopspring/decimal"
)

// ReportWindowParams bounds a day-book or ledger report by effective date.
type ReportWindowParams struct {
	From string `form:"from" binding:"required"` // Calendar date (2006-01-02)
	To   string `form:"to" binding:"required"`
}

// BankAccountBalanceResponse is the recomputed point-in-time balance of one
// bank account.
type BankAccountBalanceResponse struct {
	BankAccountID string          `json:"bankAccountID"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	CurrencyCode  string          `json:"currencyCode"`
}

// CashBalanceResponse is the organization-wide cash balance.
type CashBalanceResponse struct {
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
}

// BalancesResponse aggregates all point-in-time balances for the dashboard.
type BalancesResponse struct {
	Cash         CashBalanceResponse          `json:"cash"`
	BankAccounts []BankAccountBalanceResponse `json:"bankAccounts"`
}

// CreateSnapshotRequest checkpoints the current balance of a bank account, or
// the cash balance when BankAccountID is omitted.
type CreateSnapshotRequest struct {
	BankAccountID *string `json:"bankAccountID"`
}
