package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/opentreso/treasury_app/internal/apperrors"
	"github.com/opentreso/treasury_app/internal/core/domain"
	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/core/services"
)

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo   *MockReportingRepository
	mockBankAccountRepo *MockBankAccountRepository
	mockTagRepo         *MockTagRepository
	service             portssvc.ReportingSvcFacade
	bankAccount         domain.BankAccount
	actorID             string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockBankAccountRepo = new(MockBankAccountRepository)
	suite.mockTagRepo = new(MockTagRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockBankAccountRepo, suite.mockTagRepo)

	suite.actorID = uuid.NewString()
	suite.bankAccount = domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		Name:           "Main Operating Account",
		InitialBalance: decimal.NewFromInt(1000),
		IsActive:       true,
	}
}

func (suite *ReportingServiceTestSuite) windowEntry(direction domain.Direction, amount string, seq int64) domain.Entry {
	kind := domain.KindCashIn
	if direction == domain.Outflow {
		kind = domain.KindCashOut
	}
	return domain.Entry{
		EntryID:       uuid.NewString(),
		SequenceNo:    seq,
		Method:        domain.MethodCash,
		OperationKind: kind,
		Direction:     direction,
		Amount:        decimal.RequireFromString(amount),
	}
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestBankAccountBalance_NoSnapshot() {
	ctx := context.Background()
	id := suite.bankAccount.BankAccountID
	suite.mockBankAccountRepo.On("FindBankAccountByID", ctx, id).Return(&suite.bankAccount, nil).Once()
	suite.mockReportingRepo.On("LatestSnapshot", ctx, &id).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReportingRepo.On("FoldBankEntries", ctx, id, (*time.Time)(nil)).Return(decimal.NewFromInt(-250), nil, nil).Once()

	balance, err := suite.service.BankAccountBalance(ctx, id)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(750)), "got %s", balance)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBankAccountBalance_SnapshotShortensFold() {
	ctx := context.Background()
	id := suite.bankAccount.BankAccountID
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	snapshot := &domain.BalanceSnapshot{
		SnapshotID:    uuid.NewString(),
		BankAccountID: &id,
		Balance:       decimal.NewFromInt(500),
		AsOf:          asOf,
	}
	suite.mockBankAccountRepo.On("FindBankAccountByID", ctx, id).Return(&suite.bankAccount, nil).Once()
	suite.mockReportingRepo.On("LatestSnapshot", ctx, &id).Return(snapshot, nil).Once()
	// The fold must start at the checkpoint, not at the initial balance.
	suite.mockReportingRepo.On("FoldBankEntries", ctx, id, mock.MatchedBy(func(after *time.Time) bool {
		return after != nil && after.Equal(asOf)
	})).Return(decimal.NewFromInt(-20), nil, nil).Once()

	balance, err := suite.service.BankAccountBalance(ctx, id)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(480)), "got %s", balance)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCashBalance_StartsAtZero() {
	ctx := context.Background()
	suite.mockReportingRepo.On("LatestSnapshot", ctx, (*string)(nil)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReportingRepo.On("FoldCashEntries", ctx, (*time.Time)(nil)).Return(decimal.RequireFromString("75.50"), nil, nil).Once()

	balance, err := suite.service.CashBalance(ctx)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("75.50")))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCheckExposure() {
	ctx := context.Background()
	exposure := domain.CheckExposure{Count: 3, Total: decimal.NewFromInt(40000)}
	suite.mockReportingRepo.On("CheckExposure", ctx).Return(exposure, nil).Once()

	got, err := suite.service.CheckExposure(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(3), got.Count)
	suite.True(got.Total.Equal(decimal.NewFromInt(40000)))
}

func (suite *ReportingServiceTestSuite) TestDayBook_RunningBalanceAndTotals() {
	ctx := context.Background()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	entries := []domain.Entry{
		suite.windowEntry(domain.Inflow, "100", 1),
		suite.windowEntry(domain.Outflow, "40", 2),
		suite.windowEntry(domain.Inflow, "10", 3),
	}
	suite.mockReportingRepo.On("ListEntriesByEffectiveWindow", ctx, from, to).Return(entries, nil).Once()

	report, err := suite.service.DayBook(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 3)
	suite.True(report.Rows[0].RunningBalance.Equal(decimal.NewFromInt(100)))
	suite.True(report.Rows[1].RunningBalance.Equal(decimal.NewFromInt(60)))
	suite.True(report.Rows[2].RunningBalance.Equal(decimal.NewFromInt(70)))
	suite.True(report.Totals.Inflow.Equal(decimal.NewFromInt(110)))
	suite.True(report.Totals.Outflow.Equal(decimal.NewFromInt(40)))
	suite.True(report.Totals.Net.Equal(decimal.NewFromInt(70)))
	// The closing balance is the running balance of the last row.
	suite.True(report.Totals.ClosingBalance.Equal(report.Rows[2].RunningBalance))
}

func (suite *ReportingServiceTestSuite) TestDayBook_EmptyWindow() {
	ctx := context.Background()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	suite.mockReportingRepo.On("ListEntriesByEffectiveWindow", ctx, from, to).Return([]domain.Entry{}, nil).Once()

	report, err := suite.service.DayBook(ctx, from, to)

	suite.Require().NoError(err)
	suite.Empty(report.Rows)
	suite.True(report.Totals.Net.IsZero())
	suite.True(report.Totals.ClosingBalance.IsZero())
}

func (suite *ReportingServiceTestSuite) TestDayBook_WindowEndBeforeStart() {
	ctx := context.Background()
	from := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.DayBook(ctx, from, to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "ListEntriesByEffectiveWindow", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestLedgerReport_TagsAndRunningBalance() {
	ctx := context.Background()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	rowA := domain.LedgerReportRow{DayBookRow: domain.DayBookRow{
		EntryID:   uuid.NewString(),
		Direction: domain.Inflow,
		Amount:    decimal.NewFromInt(200),
	}}
	rowB := domain.LedgerReportRow{DayBookRow: domain.DayBookRow{
		EntryID:   uuid.NewString(),
		Direction: domain.Outflow,
		Amount:    decimal.NewFromInt(50),
	}}
	tag := domain.Tag{TagID: uuid.NewString(), Name: "rent"}
	suite.mockReportingRepo.On("ListLedgerRows", ctx, from, to).Return([]domain.LedgerReportRow{rowA, rowB}, nil).Once()
	suite.mockTagRepo.On("FindTagsByEntryIDs", ctx, []string{rowA.EntryID, rowB.EntryID}).
		Return(map[string][]domain.Tag{rowB.EntryID: {tag}}, nil).Once()

	report, err := suite.service.LedgerReport(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	suite.True(report.Rows[0].RunningBalance.Equal(decimal.NewFromInt(200)))
	suite.True(report.Rows[1].RunningBalance.Equal(decimal.NewFromInt(150)))
	suite.Empty(report.Rows[0].Tags)
	suite.Require().Len(report.Rows[1].Tags, 1)
	suite.Equal("rent", report.Rows[1].Tags[0].Name)
	suite.True(report.Totals.ClosingBalance.Equal(decimal.NewFromInt(150)))
	suite.mockTagRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCreateBalanceSnapshot_Cash() {
	ctx := context.Background()
	lastRecorded := time.Date(2026, 8, 30, 16, 45, 12, 0, time.UTC)
	suite.mockReportingRepo.On("LatestSnapshot", ctx, (*string)(nil)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReportingRepo.On("FoldCashEntries", ctx, (*time.Time)(nil)).Return(decimal.NewFromInt(120), lastRecorded, nil).Once()

	var savedSnapshot domain.BalanceSnapshot
	suite.mockReportingRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.BalanceSnapshot")).
		Run(func(args mock.Arguments) { savedSnapshot = args.Get(1).(domain.BalanceSnapshot) }).
		Return(nil).Once()

	snapshot, err := suite.service.CreateBalanceSnapshot(ctx, nil, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(snapshot)
	suite.Nil(savedSnapshot.BankAccountID)
	suite.True(savedSnapshot.Balance.Equal(decimal.NewFromInt(120)))
	suite.Equal(suite.actorID, savedSnapshot.CreatedBy)
	// AsOf is the recorded-at of the newest entry folded, so a later fold
	// starting strictly after it excludes exactly what the snapshot covers.
	suite.True(savedSnapshot.AsOf.Equal(lastRecorded))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCreateBalanceSnapshot_BankAccount() {
	ctx := context.Background()
	id := suite.bankAccount.BankAccountID
	lastRecorded := time.Date(2026, 8, 29, 9, 0, 3, 0, time.UTC)
	suite.mockBankAccountRepo.On("FindBankAccountByID", ctx, id).Return(&suite.bankAccount, nil).Once()
	suite.mockReportingRepo.On("LatestSnapshot", ctx, &id).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReportingRepo.On("FoldBankEntries", ctx, id, (*time.Time)(nil)).Return(decimal.NewFromInt(500), lastRecorded, nil).Once()

	var savedSnapshot domain.BalanceSnapshot
	suite.mockReportingRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.BalanceSnapshot")).
		Run(func(args mock.Arguments) { savedSnapshot = args.Get(1).(domain.BalanceSnapshot) }).
		Return(nil).Once()

	snapshot, err := suite.service.CreateBalanceSnapshot(ctx, &id, suite.actorID)

	suite.Require().NoError(err)
	suite.True(snapshot.Balance.Equal(decimal.NewFromInt(1500)))
	suite.Require().NotNil(snapshot.BankAccountID)
	suite.Equal(id, *snapshot.BankAccountID)
	suite.True(savedSnapshot.AsOf.Equal(lastRecorded))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCreateBalanceSnapshot_EmptyFoldKeepsPriorAsOf() {
	ctx := context.Background()
	priorAsOf := time.Date(2026, 8, 15, 18, 0, 0, 0, time.UTC)
	prior := &domain.BalanceSnapshot{
		SnapshotID: uuid.NewString(),
		Balance:    decimal.NewFromInt(120),
		AsOf:       priorAsOf,
	}
	suite.mockReportingRepo.On("LatestSnapshot", ctx, (*string)(nil)).Return(prior, nil).Once()
	suite.mockReportingRepo.On("FoldCashEntries", ctx, mock.MatchedBy(func(after *time.Time) bool {
		return after != nil && after.Equal(priorAsOf)
	})).Return(decimal.Zero, nil, nil).Once()

	var savedSnapshot domain.BalanceSnapshot
	suite.mockReportingRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.BalanceSnapshot")).
		Run(func(args mock.Arguments) { savedSnapshot = args.Get(1).(domain.BalanceSnapshot) }).
		Return(nil).Once()

	_, err := suite.service.CreateBalanceSnapshot(ctx, nil, suite.actorID)

	suite.Require().NoError(err)
	suite.True(savedSnapshot.Balance.Equal(decimal.NewFromInt(120)))
	suite.True(savedSnapshot.AsOf.Equal(priorAsOf))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
