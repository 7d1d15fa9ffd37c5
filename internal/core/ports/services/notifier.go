package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// EntryNotification is the payload handed to the external notifier for both
// back-dated and hard-delete events.
type EntryNotification struct {
	SequenceNo    string
	Amount        decimal.Decimal
	Description   string
	EffectiveDate time.Time
	RecordedAt    time.Time
	ActorID       string
}

// Notifier is the boundary to the external notification channel. Delivery is
// best-effort and asynchronous to the originating commit; failures are logged
// and swallowed, never propagated to the business operation.
type Notifier interface {
	NotifyBackdatedEntry(ctx context.Context, n EntryNotification) error
	NotifyEntryDeleted(ctx context.Context, n EntryNotification) error
}
