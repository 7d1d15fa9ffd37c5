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
)

type bankAccountService struct {
	BaseService
	bankAccountRepo portsrepo.BankAccountRepository
}

// NewBankAccountService creates a new BankAccountService.
func NewBankAccountService(bankAccountRepo portsrepo.BankAccountRepository) portssvc.BankAccountSvcFacade {
	return &bankAccountService{bankAccountRepo: bankAccountRepo}
}

// Ensure bankAccountService implements the portssvc.BankAccountSvcFacade interface
var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

// CreateBankAccount registers a bank account. The initial balance is fixed at
// creation; non-negative zero is allowed here, unlike entry amounts.
func (s *bankAccountService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, actorID string) (*domain.BankAccount, error) {
	initialBalance, err := decimal.NewFromString(req.InitialBalance)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid initial balance %q", apperrors.ErrInvalidAmount, req.InitialBalance)
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", apperrors.ErrInvalidAmount)
	}

	now := time.Now().UTC()
	account := domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		Name:           req.Name,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		InitialBalance: initialBalance.Round(2),
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.bankAccountRepo.SaveBankAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save bank account", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	s.LogInfo(ctx, "Bank account created", slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

func (s *bankAccountService) GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.bankAccountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("bank account %s: %w", bankAccountID, err)
	}
	return account, nil
}

func (s *bankAccountService) ListBankAccounts(ctx context.Context, includeInactive bool) ([]domain.BankAccount, error) {
	accounts, err := s.bankAccountRepo.ListBankAccounts(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateBankAccount hides an account from new entries. Existing entries
// keep their reference, so accounts are never deleted.
func (s *bankAccountService) DeactivateBankAccount(ctx context.Context, bankAccountID string, actorID string) error {
	if err := s.bankAccountRepo.SetBankAccountActive(ctx, bankAccountID, false, actorID); err != nil {
		return fmt.Errorf("failed to deactivate bank account %s: %w", bankAccountID, err)
	}
	s.LogInfo(ctx, "Bank account deactivated", slog.String("bank_account_id", bankAccountID))
	return nil
}
