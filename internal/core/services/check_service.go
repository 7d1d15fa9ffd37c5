package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/opentreso/treasury_app/internal/apperrors"
	"github.com/opentreso/treasury_app/internal/core/domain"
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/dto"
	"github.com/opentreso/treasury_app/internal/utils/money"
)

// CheckServiceConfig carries the deployment-fixed policy the lifecycle
// service needs to mint settlement entries.
type CheckServiceConfig struct {
	CurrencyCode string
	OrgLocation  *time.Location
}

// checkService is the instrument lifecycle state machine. Every transition is
// recorded as an immutable move; settlement books the linked ledger entry in
// the same database transaction as the status change.
type checkService struct {
	BaseService
	cfg             CheckServiceConfig
	checkRepo       portsrepo.CheckRepositoryFacade
	contactRepo     portsrepo.ContactRepository
	bankAccountRepo portsrepo.BankAccountRepository
}

// NewCheckService creates a new CheckService.
func NewCheckService(
	cfg CheckServiceConfig,
	checkRepo portsrepo.CheckRepositoryFacade,
	contactRepo portsrepo.ContactRepository,
	bankAccountRepo portsrepo.BankAccountRepository,
) portssvc.CheckSvcFacade {
	return &checkService{
		cfg:             cfg,
		checkRepo:       checkRepo,
		contactRepo:     contactRepo,
		bankAccountRepo: bankAccountRepo,
	}
}

// Ensure checkService implements the portssvc.CheckSvcFacade interface
var _ portssvc.CheckSvcFacade = (*checkService)(nil)

// requireContactWithType validates a contact reference exists, is active and
// has the expected counterparty type.
func (s *checkService) requireContactWithType(ctx context.Context, contactID string, contactType domain.ContactType) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindContactByID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("contact %s: %w", contactID, err)
	}
	if !contact.IsActive {
		return nil, fmt.Errorf("%w: contact %s", apperrors.ErrInactiveReference, contactID)
	}
	if contact.Type != contactType {
		return nil, fmt.Errorf("%w: contact %s is not a %s", apperrors.ErrValidation, contactID, contactType)
	}
	return contact, nil
}

func (s *checkService) parseDueDate(raw string) (time.Time, error) {
	dueDate, err := time.ParseInLocation(dateLayout, raw, s.cfg.OrgLocation)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid due date %q, expected YYYY-MM-DD", apperrors.ErrValidation, raw)
	}
	return dueDate, nil
}

// ReceiveCheck registers a customer check entering the safe. A scan of the
// physical instrument is mandatory.
func (s *checkService) ReceiveCheck(ctx context.Context, req dto.ReceiveCheckRequest, actorID string) (*domain.Check, error) {
	if len(req.Attachments) == 0 {
		return nil, apperrors.ErrAttachmentRequired
	}
	amount, err := money.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	dueDate, err := s.parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireContactWithType(ctx, req.ContactID, domain.ContactCustomer); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	check := domain.Check{
		CheckID:      uuid.NewString(),
		SerialNumber: req.SerialNumber,
		BankName:     req.BankName,
		Amount:       amount,
		DueDate:      dueDate,
		Status:       domain.CheckInSafe,
		ContactID:    &req.ContactID,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	move := domain.CheckMove{
		MoveID:    uuid.NewString(),
		CheckID:   check.CheckID,
		Action:    domain.MoveIn,
		ActorID:   actorID,
		CreatedAt: now,
	}
	attachments := buildAttachments(req.Attachments, actorID, now)
	attachment := &attachments[0]
	check.Attachment = attachment

	if err := s.checkRepo.CreateCheck(ctx, check, move, attachment); err != nil {
		s.LogError(ctx, err, "Failed to register received check", slog.String("serial", req.SerialNumber))
		return nil, fmt.Errorf("failed to save check: %w", err)
	}

	s.LogInfo(ctx, "Check received into safe", slog.String("check_id", check.CheckID), slog.String("serial", check.SerialNumber))
	check.Moves = []domain.CheckMove{move}
	return &check, nil
}

// IssueCheck registers a check the organization writes to a payee. The check
// starts in ISSUED; there is no prior instrument to transition.
func (s *checkService) IssueCheck(ctx context.Context, req dto.IssueCheckRequest, actorID string) (*domain.Check, error) {
	if len(req.Attachments) == 0 {
		return nil, apperrors.ErrAttachmentRequired
	}
	amount, err := money.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	dueDate, err := s.parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	if req.ContactID != nil {
		contact, err := s.contactRepo.FindContactByID(ctx, *req.ContactID)
		if err != nil {
			return nil, fmt.Errorf("contact %s: %w", *req.ContactID, err)
		}
		if !contact.IsActive {
			return nil, fmt.Errorf("%w: contact %s", apperrors.ErrInactiveReference, *req.ContactID)
		}
	}

	now := time.Now().UTC()
	check := domain.Check{
		CheckID:      uuid.NewString(),
		SerialNumber: req.SerialNumber,
		BankName:     req.BankName,
		Amount:       amount,
		DueDate:      dueDate,
		Status:       domain.CheckIssued,
		ContactID:    req.ContactID,
		IssuerLabel:  req.IssuerLabel,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	move := domain.CheckMove{
		MoveID:    uuid.NewString(),
		CheckID:   check.CheckID,
		Action:    domain.MoveIssue,
		ActorID:   actorID,
		CreatedAt: now,
	}
	attachments := buildAttachments(req.Attachments, actorID, now)
	attachment := &attachments[0]
	check.Attachment = attachment

	if err := s.checkRepo.CreateCheck(ctx, check, move, attachment); err != nil {
		s.LogError(ctx, err, "Failed to register issued check", slog.String("serial", req.SerialNumber))
		return nil, fmt.Errorf("failed to save check: %w", err)
	}

	s.LogInfo(ctx, "Check issued", slog.String("check_id", check.CheckID), slog.String("serial", check.SerialNumber))
	check.Moves = []domain.CheckMove{move}
	return &check, nil
}

// EndorseCheck hands a held check to a supplier in lieu of cash. Only IN_SAFE
// checks can be endorsed; ENDORSED is terminal.
func (s *checkService) EndorseCheck(ctx context.Context, checkID string, req dto.EndorseCheckRequest, actorID string) (*domain.Check, error) {
	check, err := s.checkRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", checkID, err)
	}
	if check.Status != domain.CheckInSafe {
		return nil, fmt.Errorf("%w: check %s is %s, endorsement requires %s", apperrors.ErrInvalidTransition, checkID, check.Status, domain.CheckInSafe)
	}
	supplier, err := s.requireContactWithType(ctx, req.SupplierContactID, domain.ContactSupplier)
	if err != nil {
		return nil, err
	}

	note := req.Note
	if note == "" {
		note = fmt.Sprintf("Endorsed to %s", supplier.Name)
	}
	move := domain.CheckMove{
		MoveID:    uuid.NewString(),
		CheckID:   checkID,
		Action:    domain.MoveOut,
		Note:      note,
		ActorID:   actorID,
		CreatedAt: time.Now().UTC(),
	}

	// Guarded by the prior status so a concurrent transition loses cleanly.
	if err := s.checkRepo.TransitionCheck(ctx, checkID, domain.CheckInSafe, domain.CheckEndorsed, move); err != nil {
		return nil, fmt.Errorf("failed to endorse check %s: %w", checkID, err)
	}

	s.LogInfo(ctx, "Check endorsed", slog.String("check_id", checkID), slog.String("supplier_id", req.SupplierContactID))
	check.Status = domain.CheckEndorsed
	check.Moves = append(check.Moves, move)
	return check, nil
}

// SettleCheck marks a check PAID and books the check-settlement ledger entry.
// The status flip, the entry and the move all commit together or not at all.
func (s *checkService) SettleCheck(ctx context.Context, checkID string, req dto.SettleCheckRequest, actorID string) (*domain.Check, *domain.Entry, error) {
	check, err := s.checkRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		return nil, nil, fmt.Errorf("check %s: %w", checkID, err)
	}
	if check.Status == domain.CheckPaid {
		return nil, nil, fmt.Errorf("%w: check %s", apperrors.ErrAlreadyPaid, checkID)
	}
	if check.Status == domain.CheckEndorsed {
		return nil, nil, fmt.Errorf("%w: check %s was endorsed and left the organization", apperrors.ErrInvalidTransition, checkID)
	}

	amount, err := money.ParseAmount(req.Amount)
	if err != nil {
		return nil, nil, err
	}
	effectiveDate, err := resolveEffectiveDate(s.cfg.OrgLocation, req.EffectiveDate)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.bankAccountRepo.FindBankAccountByID(ctx, req.BankAccountID); err != nil {
		return nil, nil, fmt.Errorf("bank account %s: %w", req.BankAccountID, err)
	}

	direction, err := domain.DirectionFor(domain.KindCheckSettlement)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	now := time.Now().UTC()
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Settlement of check %s", check.SerialNumber)
	}
	entry := domain.Entry{
		EntryID:       uuid.NewString(),
		Method:        domain.MethodCheck,
		OperationKind: domain.KindCheckSettlement,
		Direction:     direction,
		Amount:        amount,
		CurrencyCode:  s.cfg.CurrencyCode,
		EffectiveDate: effectiveDate,
		Description:   description,
		BankAccountID: &req.BankAccountID,
		ContactID:     check.ContactID,
		CheckID:       &checkID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	move := domain.CheckMove{
		MoveID:    uuid.NewString(),
		CheckID:   checkID,
		Action:    domain.MovePayment,
		EntryID:   &entry.EntryID,
		ActorID:   actorID,
		CreatedAt: now,
	}

	// The repository re-asserts the status we read inside the transaction;
	// any concurrent transition surfaces as ErrAlreadyPaid here and writes
	// nothing.
	createdEntry, err := s.checkRepo.SettleCheck(ctx, checkID, check.Status, entry, move)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to settle check %s: %w", checkID, err)
	}

	s.LogInfo(ctx, "Check settled",
		slog.String("check_id", checkID),
		slog.String("entry_id", createdEntry.EntryID),
		slog.String("sequence_no", createdEntry.SequenceLabel()))

	check.Status = domain.CheckPaid
	check.Moves = append(check.Moves, move)
	return check, createdEntry, nil
}

// GetCheckByID retrieves a check with its move log.
func (s *checkService) GetCheckByID(ctx context.Context, checkID string) (*domain.Check, error) {
	check, err := s.checkRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", checkID, err)
	}
	moves, err := s.checkRepo.FindMovesByCheckID(ctx, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch moves for check %s: %w", checkID, err)
	}
	check.Moves = moves
	return check, nil
}

// ListChecks retrieves a paginated check list, optionally filtered by status.
func (s *checkService) ListChecks(ctx context.Context, params dto.ListChecksParams) ([]domain.Check, *string, error) {
	var status *domain.CheckStatus
	if params.Status != nil {
		st := domain.CheckStatus(*params.Status)
		switch st {
		case domain.CheckInSafe, domain.CheckEndorsed, domain.CheckIssued, domain.CheckPaid:
			status = &st
		default:
			return nil, nil, fmt.Errorf("%w: unknown check status %q", apperrors.ErrValidation, *params.Status)
		}
	}
	checks, nextToken, err := s.checkRepo.ListChecks(ctx, status, params.Limit, params.NextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list checks: %w", err)
	}
	return checks, nextToken, nil
}
