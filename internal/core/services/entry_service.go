package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opentreso/treasury_app/internal/apperrors"
	"github.com/opentreso/treasury_app/internal/core/domain"
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/dto"
	"github.com/opentreso/treasury_app/internal/utils/money"
)

// EntryServiceConfig carries the deployment-fixed ledger policy.
type EntryServiceConfig struct {
	CurrencyCode string
	// OrgLocation is the fixed organizational time zone effective dates are
	// interpreted in.
	OrgLocation *time.Location
	// BookPOSCommission books POS commission as a separate linked outflow
	// entry when true; otherwise the collection entry carries the net amount.
	BookPOSCommission bool
}

// entryService is the ledger entry factory: it normalizes every operation
// kind into the canonical entry record with atomic side effects.
type entryService struct {
	BaseService
	cfg             EntryServiceConfig
	entryRepo       portsrepo.EntryRepositoryWithTx
	bankAccountRepo portsrepo.BankAccountRepository
	cardRepo        portsrepo.CardRepository
	contactRepo     portsrepo.ContactRepository
	tagRepo         portsrepo.TagRepository
	notifier        portssvc.Notifier
}

// NewEntryService creates a new EntryService.
func NewEntryService(
	cfg EntryServiceConfig,
	entryRepo portsrepo.EntryRepositoryWithTx,
	bankAccountRepo portsrepo.BankAccountRepository,
	cardRepo portsrepo.CardRepository,
	contactRepo portsrepo.ContactRepository,
	tagRepo portsrepo.TagRepository,
	notifier portssvc.Notifier,
) portssvc.EntrySvcFacade {
	return &entryService{
		cfg:             cfg,
		entryRepo:       entryRepo,
		bankAccountRepo: bankAccountRepo,
		cardRepo:        cardRepo,
		contactRepo:     contactRepo,
		tagRepo:         tagRepo,
		notifier:        notifier,
	}
}

// Ensure entryService implements the portssvc.EntrySvcFacade interface
var _ portssvc.EntrySvcFacade = (*entryService)(nil)

const dateLayout = "2006-01-02"

// resolveEffectiveDate parses an optional calendar date in the organization's
// time zone, defaulting to today.
func resolveEffectiveDate(loc *time.Location, raw *string) (time.Time, error) {
	if raw == nil || *raw == "" {
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}
	parsed, err := time.ParseInLocation(dateLayout, *raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid effective date %q, expected YYYY-MM-DD", apperrors.ErrValidation, *raw)
	}
	return parsed, nil
}

// isBackdated reports whether the effective date precedes today in the
// organization's time zone.
func isBackdated(loc *time.Location, effectiveDate time.Time) bool {
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return effectiveDate.Before(today)
}

// requireActiveBankAccount validates the referenced bank account exists and is active.
func (s *entryService) requireActiveBankAccount(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.bankAccountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("bank account %s: %w", bankAccountID, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: bank account %s", apperrors.ErrInactiveReference, bankAccountID)
	}
	return account, nil
}

// requireActiveCard validates the referenced card exists and is active.
func (s *entryService) requireActiveCard(ctx context.Context, cardID string) (*domain.Card, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("card %s: %w", cardID, err)
	}
	if !card.IsActive {
		return nil, fmt.Errorf("%w: card %s", apperrors.ErrInactiveReference, cardID)
	}
	return card, nil
}

// requireActiveContact validates an optional contact reference.
func (s *entryService) requireActiveContact(ctx context.Context, contactID *string) error {
	if contactID == nil {
		return nil
	}
	contact, err := s.contactRepo.FindContactByID(ctx, *contactID)
	if err != nil {
		return fmt.Errorf("contact %s: %w", *contactID, err)
	}
	if !contact.IsActive {
		return fmt.Errorf("%w: contact %s", apperrors.ErrInactiveReference, *contactID)
	}
	return nil
}

// resolveTags validates every referenced tag exists and returns them in
// request order, so the creation result can carry them without a re-read.
func (s *entryService) resolveTags(ctx context.Context, tagIDs []string) ([]domain.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	found, err := s.tagRepo.FindTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	tags := make([]domain.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tag, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: tag %s", apperrors.ErrNotFound, id)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// buildAttachments converts attachment payloads into attachment rows.
func buildAttachments(payloads []dto.AttachmentPayload, actorID string, now time.Time) []domain.Attachment {
	if len(payloads) == 0 {
		return nil
	}
	attachments := make([]domain.Attachment, len(payloads))
	for i, p := range payloads {
		attachments[i] = domain.Attachment{
			AttachmentID: uuid.NewString(),
			StoragePath:  p.StoragePath,
			FileName:     p.FileName,
			MimeType:     p.MimeType,
			SizeBytes:    p.SizeBytes,
			CreatedAt:    now,
			CreatedBy:    actorID,
		}
	}
	return attachments
}

// newEntry assembles the canonical record for one operation kind. The
// direction is always derived from the kind, never taken from the caller.
func (s *entryService) newEntry(kind domain.OperationKind, method domain.Method, amount decimal.Decimal, effectiveDate time.Time, actorID string) (domain.Entry, error) {
	direction, err := domain.DirectionFor(kind)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	now := time.Now().UTC()
	return domain.Entry{
		EntryID:       uuid.NewString(),
		Method:        method,
		OperationKind: kind,
		Direction:     direction,
		Amount:        amount,
		CurrencyCode:  s.cfg.CurrencyCode,
		EffectiveDate: effectiveDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}, nil
}

// persist writes the entry with its side records and fires the back-dated
// notification after the transaction commits. The returned entry carries the
// tags and attachments it was created with.
func (s *entryService) persist(ctx context.Context, entry domain.Entry, tags []domain.Tag, attachments []domain.Attachment, commissionEntry *domain.Entry, actorID string) (*domain.Entry, *domain.Entry, error) {
	tagIDs := make([]string, len(tags))
	for i, tag := range tags {
		tagIDs[i] = tag.TagID
	}
	created, err := s.entryRepo.CreateEntry(ctx, entry, tagIDs, attachments, commissionEntry)
	if err != nil {
		s.LogError(ctx, err, "Failed to persist ledger entry", slog.String("operation_kind", string(entry.OperationKind)))
		return nil, nil, fmt.Errorf("failed to persist entry: %w", err)
	}
	created.Tags = tags

	if isBackdated(s.cfg.OrgLocation, created.EffectiveDate) {
		s.dispatchNotification(ctx, *created, actorID, s.notifier.NotifyBackdatedEntry)
	}

	s.LogInfo(ctx, "Ledger entry recorded",
		slog.String("entry_id", created.EntryID),
		slog.String("sequence_no", created.SequenceLabel()),
		slog.String("operation_kind", string(created.OperationKind)))
	return created, commissionEntry, nil
}

// dispatchNotification fires a notifier call after commit. Delivery is
// best-effort: failures are logged and swallowed, never propagated.
func (s *entryService) dispatchNotification(ctx context.Context, entry domain.Entry, actorID string, notify func(context.Context, portssvc.EntryNotification) error) {
	payload := portssvc.EntryNotification{
		SequenceNo:    entry.SequenceLabel(),
		Amount:        entry.Amount,
		Description:   entry.Description,
		EffectiveDate: entry.EffectiveDate,
		RecordedAt:    entry.RecordedAt,
		ActorID:       actorID,
	}
	logger := s.GetLogger(ctx)
	detached := context.WithoutCancel(ctx)
	go func() {
		if err := notify(detached, payload); err != nil {
			logger.Warn("Notification delivery failed", slog.String("sequence_no", payload.SequenceNo), slog.String("error", err.Error()))
		}
	}()
}

// CashIn records money received in cash.
func (s *entryService) CashIn(ctx context.Context, req dto.CreateCashInRequest, actorID string) (*domain.Entry, error) {
	return s.createSimple(ctx, domain.KindCashIn, domain.MethodCash, req.Amount, req.EffectiveDate, req.Description, req.ContactID, nil, nil, "", req.TagIDs, req.Metadata, req.Attachments, actorID)
}

// CashOut records money paid out in cash with its expense category.
func (s *entryService) CashOut(ctx context.Context, req dto.CreateCashOutRequest, actorID string) (*domain.Entry, error) {
	return s.createSimple(ctx, domain.KindCashOut, domain.MethodCash, req.Amount, req.EffectiveDate, req.Description, req.ContactID, nil, nil, req.Category, req.TagIDs, req.Metadata, req.Attachments, actorID)
}

// BankIn records an incoming bank transfer.
func (s *entryService) BankIn(ctx context.Context, req dto.CreateBankInRequest, actorID string) (*domain.Entry, error) {
	if _, err := s.requireActiveBankAccount(ctx, req.BankAccountID); err != nil {
		return nil, err
	}
	return s.createSimple(ctx, domain.KindBankIn, domain.MethodBank, req.Amount, req.EffectiveDate, req.Description, req.ContactID, &req.BankAccountID, nil, "", req.TagIDs, req.Metadata, req.Attachments, actorID)
}

// BankOut records an outgoing bank transfer with its expense category.
func (s *entryService) BankOut(ctx context.Context, req dto.CreateBankOutRequest, actorID string) (*domain.Entry, error) {
	if _, err := s.requireActiveBankAccount(ctx, req.BankAccountID); err != nil {
		return nil, err
	}
	return s.createSimple(ctx, domain.KindBankOut, domain.MethodBank, req.Amount, req.EffectiveDate, req.Description, req.ContactID, &req.BankAccountID, nil, req.Category, req.TagIDs, req.Metadata, req.Attachments, actorID)
}

// CardExpense records a purchase made with an organization card.
func (s *entryService) CardExpense(ctx context.Context, req dto.CreateCardExpenseRequest, actorID string) (*domain.Entry, error) {
	if _, err := s.requireActiveCard(ctx, req.CardID); err != nil {
		return nil, err
	}
	return s.createSimple(ctx, domain.KindCardExpense, domain.MethodCard, req.Amount, req.EffectiveDate, req.Description, req.ContactID, nil, &req.CardID, req.Category, req.TagIDs, req.Metadata, req.Attachments, actorID)
}

// CardPayment records a payment onto an organization card.
func (s *entryService) CardPayment(ctx context.Context, req dto.CreateCardPaymentRequest, actorID string) (*domain.Entry, error) {
	if _, err := s.requireActiveCard(ctx, req.CardID); err != nil {
		return nil, err
	}
	return s.createSimple(ctx, domain.KindCardPayment, domain.MethodCard, req.Amount, req.EffectiveDate, req.Description, req.ContactID, nil, &req.CardID, "", req.TagIDs, req.Metadata, req.Attachments, actorID)
}

// createSimple is the shared path for the single-entry operation kinds.
func (s *entryService) createSimple(
	ctx context.Context,
	kind domain.OperationKind,
	method domain.Method,
	rawAmount string,
	rawEffectiveDate *string,
	description string,
	contactID *string,
	bankAccountID *string,
	cardID *string,
	category domain.Category,
	tagIDs []string,
	metadata map[string]string,
	attachmentPayloads []dto.AttachmentPayload,
	actorID string,
) (*domain.Entry, error) {
	amount, err := money.ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	effectiveDate, err := resolveEffectiveDate(s.cfg.OrgLocation, rawEffectiveDate)
	if err != nil {
		return nil, err
	}
	if err := s.requireActiveContact(ctx, contactID); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, tagIDs)
	if err != nil {
		return nil, err
	}

	entry, err := s.newEntry(kind, method, amount, effectiveDate, actorID)
	if err != nil {
		return nil, err
	}
	entry.Description = description
	entry.Category = category
	entry.ContactID = contactID
	entry.BankAccountID = bankAccountID
	entry.CardID = cardID
	entry.Metadata = metadata

	attachments := buildAttachments(attachmentPayloads, actorID, entry.CreatedAt)
	created, _, err := s.persist(ctx, entry, tags, attachments, nil, actorID)
	return created, err
}

// PosCollection records a card-terminal collection, deriving the missing leg
// of the gross/commission/net triple from the request mode.
func (s *entryService) PosCollection(ctx context.Context, req dto.CreatePosCollectionRequest, actorID string) (*domain.Entry, *domain.Entry, error) {
	commission, err := money.ParseAmount(req.Commission)
	if err != nil {
		return nil, nil, err
	}

	var gross, net decimal.Decimal
	switch req.Mode {
	case dto.PosModeNetCommission:
		if req.Net == nil {
			return nil, nil, fmt.Errorf("%w: net is required in NET_COMMISSION mode", apperrors.ErrMissingPosField)
		}
		net, err = money.ParseAmount(*req.Net)
		if err != nil {
			return nil, nil, err
		}
		gross = net.Add(commission)
	case dto.PosModeGrossCommission:
		if req.Gross == nil {
			return nil, nil, fmt.Errorf("%w: gross is required in GROSS_COMMISSION mode", apperrors.ErrMissingPosField)
		}
		gross, err = money.ParseAmount(*req.Gross)
		if err != nil {
			return nil, nil, err
		}
		net = gross.Sub(commission)
	default:
		return nil, nil, fmt.Errorf("%w: unknown POS mode %q", apperrors.ErrValidation, req.Mode)
	}

	if net.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: commission %s consumes the whole collection", apperrors.ErrInvalidAmount, commission)
	}
	// Stored at the decimal type's full precision; rounding is display-only.
	effectiveRate := commission.Div(gross)

	if _, err := s.requireActiveBankAccount(ctx, req.BankAccountID); err != nil {
		return nil, nil, err
	}
	if err := s.requireActiveContact(ctx, req.ContactID); err != nil {
		return nil, nil, err
	}
	tags, err := s.resolveTags(ctx, req.TagIDs)
	if err != nil {
		return nil, nil, err
	}
	effectiveDate, err := resolveEffectiveDate(s.cfg.OrgLocation, req.EffectiveDate)
	if err != nil {
		return nil, nil, err
	}

	// With a separate commission booking the collection carries the gross and
	// the commission entry the offsetting outflow; otherwise the collection
	// carries the net actually received.
	collectionAmount := net
	if s.cfg.BookPOSCommission {
		collectionAmount = gross
	}

	entry, err := s.newEntry(domain.KindPosCollection, domain.MethodPos, collectionAmount, effectiveDate, actorID)
	if err != nil {
		return nil, nil, err
	}
	entry.Description = req.Description
	entry.ContactID = req.ContactID
	entry.BankAccountID = &req.BankAccountID
	entry.Metadata = req.Metadata
	entry.Pos = &domain.PosDetails{
		Gross:         gross,
		Commission:    commission,
		Net:           net,
		EffectiveRate: effectiveRate,
	}

	var commissionEntry *domain.Entry
	if s.cfg.BookPOSCommission {
		ce, err := s.newEntry(domain.KindPosCommission, domain.MethodPos, commission, effectiveDate, actorID)
		if err != nil {
			return nil, nil, err
		}
		ce.Description = fmt.Sprintf("POS commission for %s", entry.EntryID)
		ce.BankAccountID = &req.BankAccountID
		commissionEntry = &ce
	}

	attachments := buildAttachments(req.Attachments, actorID, entry.CreatedAt)
	return s.persist(ctx, entry, tags, attachments, commissionEntry, actorID)
}

// GetEntryByID retrieves one entry with tags and attachments.
func (s *entryService) GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries retrieves a filtered, paginated entry list.
func (s *entryService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.Entry, *string, error) {
	repoParams := portsrepo.ListEntriesParams{
		Limit:         params.Limit,
		NextToken:     params.NextToken,
		BankAccountID: params.BankAccountID,
	}
	if params.From != nil {
		from, err := resolveEffectiveDate(s.cfg.OrgLocation, params.From)
		if err != nil {
			return nil, nil, err
		}
		repoParams.From = &from
	}
	if params.To != nil {
		to, err := resolveEffectiveDate(s.cfg.OrgLocation, params.To)
		if err != nil {
			return nil, nil, err
		}
		repoParams.To = &to
	}
	if params.Method != nil {
		method := domain.Method(*params.Method)
		repoParams.Method = &method
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, repoParams)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nextToken, nil
}

// DeleteEntry hard-deletes one entry. The row and its tag and attachment
// links are gone for good; the hard-delete notification fires after commit.
func (s *entryService) DeleteEntry(ctx context.Context, entryID string, actorID string) error {
	deleted, err := s.entryRepo.DeleteEntry(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}

	s.dispatchNotification(ctx, *deleted, actorID, s.notifier.NotifyEntryDeleted)
	s.LogInfo(ctx, "Ledger entry hard-deleted",
		slog.String("entry_id", deleted.EntryID),
		slog.String("sequence_no", deleted.SequenceLabel()))
	return nil
}
