// Package notify holds adapters for the outbound notification channel used
// for back-dated and hard-delete events.
package notify

import (
	"context"
	"log/slog"

	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
)

// LogNotifier emits notifications to the structured log. It stands in for the
// external channel (mail, chat webhook) in deployments that have none
// configured; the audit trail still lands in the log stream.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that writes to the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Ensure LogNotifier implements the portssvc.Notifier interface
var _ portssvc.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) NotifyBackdatedEntry(ctx context.Context, payload portssvc.EntryNotification) error {
	n.logger.WarnContext(ctx, "Back-dated entry recorded",
		slog.String("sequence_no", payload.SequenceNo),
		slog.String("amount", payload.Amount.String()),
		slog.String("description", payload.Description),
		slog.Time("effective_date", payload.EffectiveDate),
		slog.Time("recorded_at", payload.RecordedAt),
		slog.String("actor_id", payload.ActorID),
	)
	return nil
}

func (n *LogNotifier) NotifyEntryDeleted(ctx context.Context, payload portssvc.EntryNotification) error {
	n.logger.WarnContext(ctx, "Ledger entry hard-deleted",
		slog.String("sequence_no", payload.SequenceNo),
		slog.String("amount", payload.Amount.String()),
		slog.String("description", payload.Description),
		slog.Time("effective_date", payload.EffectiveDate),
		slog.Time("recorded_at", payload.RecordedAt),
		slog.String("actor_id", payload.ActorID),
	)
	return nil
}
