package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/opentreso/treasury_app/internal/core/domain"
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

// Ensure MockEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) CreateEntry(ctx context.Context, entry domain.Entry, tagIDs []string, attachments []domain.Attachment, commissionEntry *domain.Entry) (*domain.Entry, error) {
	args := m.Called(ctx, entry, tagIDs, attachments, commissionEntry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, params portsrepo.ListEntriesParams) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.Entry), nextToken, args.Error(2)
}

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock CheckRepository ---
type MockCheckRepository struct {
	mock.Mock
}

var _ portsrepo.CheckRepositoryFacade = (*MockCheckRepository)(nil)

func (m *MockCheckRepository) CreateCheck(ctx context.Context, check domain.Check, move domain.CheckMove, attachment *domain.Attachment) error {
	args := m.Called(ctx, check, move, attachment)
	return args.Error(0)
}

func (m *MockCheckRepository) TransitionCheck(ctx context.Context, checkID string, from, to domain.CheckStatus, move domain.CheckMove) error {
	args := m.Called(ctx, checkID, from, to, move)
	return args.Error(0)
}

func (m *MockCheckRepository) SettleCheck(ctx context.Context, checkID string, from domain.CheckStatus, entry domain.Entry, move domain.CheckMove) (*domain.Entry, error) {
	args := m.Called(ctx, checkID, from, entry, move)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockCheckRepository) FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error) {
	args := m.Called(ctx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckRepository) FindCheckBySerial(ctx context.Context, serialNumber string) (*domain.Check, error) {
	args := m.Called(ctx, serialNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckRepository) ListChecks(ctx context.Context, status *domain.CheckStatus, limit int, nextToken *string) ([]domain.Check, *string, error) {
	args := m.Called(ctx, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Check), returnedNextToken, args.Error(2)
}

func (m *MockCheckRepository) FindMovesByCheckID(ctx context.Context, checkID string) ([]domain.CheckMove, error) {
	args := m.Called(ctx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CheckMove), args.Error(1)
}

// --- Mock BankAccountRepository ---
type MockBankAccountRepository struct {
	mock.Mock
}

var _ portsrepo.BankAccountRepository = (*MockBankAccountRepository)(nil)

func (m *MockBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListBankAccounts(ctx context.Context, includeInactive bool) ([]domain.BankAccount, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) SetBankAccountActive(ctx context.Context, bankAccountID string, active bool, updatedBy string) error {
	args := m.Called(ctx, bankAccountID, active, updatedBy)
	return args.Error(0)
}

// --- Mock CardRepository ---
type MockCardRepository struct {
	mock.Mock
}

var _ portsrepo.CardRepository = (*MockCardRepository)(nil)

func (m *MockCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) FindCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardRepository) ListCards(ctx context.Context, includeInactive bool) ([]domain.Card, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

func (m *MockCardRepository) SetCardActive(ctx context.Context, cardID string, active bool, updatedBy string) error {
	args := m.Called(ctx, cardID, active, updatedBy)
	return args.Error(0)
}

// --- Mock ContactRepository ---
type MockContactRepository struct {
	mock.Mock
}

var _ portsrepo.ContactRepository = (*MockContactRepository)(nil)

func (m *MockContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactRepository) ListContacts(ctx context.Context, contactType *domain.ContactType, includeInactive bool) ([]domain.Contact, error) {
	args := m.Called(ctx, contactType, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

func (m *MockContactRepository) SetContactActive(ctx context.Context, contactID string, active bool, updatedBy string) error {
	args := m.Called(ctx, contactID, active, updatedBy)
	return args.Error(0)
}

// --- Mock TagRepository ---
type MockTagRepository struct {
	mock.Mock
}

var _ portsrepo.TagRepository = (*MockTagRepository)(nil)

func (m *MockTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	args := m.Called(ctx, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) FindTagsByIDs(ctx context.Context, tagIDs []string) (map[string]domain.Tag, error) {
	args := m.Called(ctx, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Tag), args.Error(1)
}

func (m *MockTagRepository) FindTagsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.Tag, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.Tag), args.Error(1)
}

func (m *MockTagRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) FoldBankEntries(ctx context.Context, bankAccountID string, recordedAfter *time.Time) (decimal.Decimal, *time.Time, error) {
	args := m.Called(ctx, bankAccountID, recordedAfter)
	if args.Get(0) == nil {
		return decimal.Zero, nil, args.Error(2)
	}
	var latest *time.Time
	if args.Get(1) != nil {
		latestVal := args.Get(1).(time.Time)
		latest = &latestVal
	}
	return args.Get(0).(decimal.Decimal), latest, args.Error(2)
}

func (m *MockReportingRepository) FoldCashEntries(ctx context.Context, recordedAfter *time.Time) (decimal.Decimal, *time.Time, error) {
	args := m.Called(ctx, recordedAfter)
	if args.Get(0) == nil {
		return decimal.Zero, nil, args.Error(2)
	}
	var latest *time.Time
	if args.Get(1) != nil {
		latestVal := args.Get(1).(time.Time)
		latest = &latestVal
	}
	return args.Get(0).(decimal.Decimal), latest, args.Error(2)
}

func (m *MockReportingRepository) CheckExposure(ctx context.Context) (domain.CheckExposure, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CheckExposure), args.Error(1)
}

func (m *MockReportingRepository) ListEntriesByEffectiveWindow(ctx context.Context, from, to time.Time) ([]domain.Entry, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockReportingRepository) ListLedgerRows(ctx context.Context, from, to time.Time) ([]domain.LedgerReportRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerReportRow), args.Error(1)
}

func (m *MockReportingRepository) LatestSnapshot(ctx context.Context, bankAccountID *string) (*domain.BalanceSnapshot, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSnapshot), args.Error(1)
}

func (m *MockReportingRepository) SaveSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) NotifyBackdatedEntry(ctx context.Context, n portssvc.EntryNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotifier) NotifyEntryDeleted(ctx context.Context, n portssvc.EntryNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
