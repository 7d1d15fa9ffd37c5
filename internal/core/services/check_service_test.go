package services_test

import (
	"context"
	"fmt"
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
	"github.com/opentreso/treasury_app/internal/dto"
)

// --- Test Suite Setup ---
type CheckServiceTestSuite struct {
	suite.Suite
	mockCheckRepo       *MockCheckRepository
	mockContactRepo     *MockContactRepository
	mockBankAccountRepo *MockBankAccountRepository
	service             portssvc.CheckSvcFacade
	customer            domain.Contact
	supplier            domain.Contact
	bankAccount         domain.BankAccount
	actorID             string
}

func (suite *CheckServiceTestSuite) SetupTest() {
	suite.mockCheckRepo = new(MockCheckRepository)
	suite.mockContactRepo = new(MockContactRepository)
	suite.mockBankAccountRepo = new(MockBankAccountRepository)
	cfg := services.CheckServiceConfig{
		CurrencyCode: "MAD",
		OrgLocation:  time.UTC,
	}
	suite.service = services.NewCheckService(cfg, suite.mockCheckRepo, suite.mockContactRepo, suite.mockBankAccountRepo)

	suite.actorID = uuid.NewString()
	suite.customer = domain.Contact{
		ContactID: uuid.NewString(),
		Name:      "Acme Retail",
		Type:      domain.ContactCustomer,
		IsActive:  true,
	}
	suite.supplier = domain.Contact{
		ContactID: uuid.NewString(),
		Name:      "Paper Supplies SARL",
		Type:      domain.ContactSupplier,
		IsActive:  true,
	}
	suite.bankAccount = domain.BankAccount{
		BankAccountID: uuid.NewString(),
		Name:          "Main Operating Account",
		IsActive:      true,
	}
}

func (suite *CheckServiceTestSuite) receiveRequest() dto.ReceiveCheckRequest {
	return dto.ReceiveCheckRequest{
		SerialNumber: "CHK-90213",
		BankName:     "Banque Populaire",
		Amount:       "12500.00",
		DueDate:      "2026-10-15",
		ContactID:    suite.customer.ContactID,
		Attachments: []dto.AttachmentPayload{
			{StoragePath: "checks/chk-90213.pdf", FileName: "chk-90213.pdf", MimeType: "application/pdf", SizeBytes: 20480},
		},
	}
}

// --- Test Cases ---

func (suite *CheckServiceTestSuite) TestReceiveCheck_Success() {
	ctx := context.Background()
	req := suite.receiveRequest()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.customer.ContactID).Return(&suite.customer, nil).Once()

	var savedCheck domain.Check
	var savedMove domain.CheckMove
	suite.mockCheckRepo.On("CreateCheck", ctx, mock.AnythingOfType("domain.Check"), mock.AnythingOfType("domain.CheckMove"), mock.Anything).
		Run(func(args mock.Arguments) {
			savedCheck = args.Get(1).(domain.Check)
			savedMove = args.Get(2).(domain.CheckMove)
		}).
		Return(nil).Once()

	check, err := suite.service.ReceiveCheck(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(check)
	suite.Equal(domain.CheckInSafe, check.Status)
	suite.Equal(domain.CheckInSafe, savedCheck.Status)
	suite.Equal(domain.MoveIn, savedMove.Action)
	suite.Equal(savedCheck.CheckID, savedMove.CheckID)
	suite.Require().NotNil(savedCheck.Attachment)
	suite.Equal("chk-90213.pdf", savedCheck.Attachment.FileName)
	suite.mockCheckRepo.AssertExpectations(suite.T())
}

func (suite *CheckServiceTestSuite) TestReceiveCheck_AttachmentRequired() {
	ctx := context.Background()
	req := suite.receiveRequest()
	req.Attachments = nil

	_, err := suite.service.ReceiveCheck(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAttachmentRequired)
	suite.mockContactRepo.AssertNotCalled(suite.T(), "FindContactByID", mock.Anything, mock.Anything)
	suite.mockCheckRepo.AssertNotCalled(suite.T(), "CreateCheck", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CheckServiceTestSuite) TestReceiveCheck_ContactNotCustomer() {
	ctx := context.Background()
	req := suite.receiveRequest()
	req.ContactID = suite.supplier.ContactID
	suite.mockContactRepo.On("FindContactByID", ctx, suite.supplier.ContactID).Return(&suite.supplier, nil).Once()

	_, err := suite.service.ReceiveCheck(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCheckRepo.AssertNotCalled(suite.T(), "CreateCheck", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CheckServiceTestSuite) TestReceiveCheck_DuplicateSerial() {
	ctx := context.Background()
	req := suite.receiveRequest()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.customer.ContactID).Return(&suite.customer, nil).Once()
	suite.mockCheckRepo.On("CreateCheck", ctx, mock.AnythingOfType("domain.Check"), mock.AnythingOfType("domain.CheckMove"), mock.Anything).
		Return(fmt.Errorf("%w: serial number %q", apperrors.ErrDuplicate, req.SerialNumber)).Once()

	_, err := suite.service.ReceiveCheck(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CheckServiceTestSuite) TestIssueCheck_Success() {
	ctx := context.Background()
	req := dto.IssueCheckRequest{
		SerialNumber: "CHK-00077",
		BankName:     "Attijariwafa",
		Amount:       "8000.00",
		DueDate:      "2026-09-30",
		IssuerLabel:  "Landlord September rent",
		Attachments: []dto.AttachmentPayload{
			{StoragePath: "checks/chk-00077.jpg", FileName: "chk-00077.jpg"},
		},
	}

	var savedMove domain.CheckMove
	suite.mockCheckRepo.On("CreateCheck", ctx, mock.AnythingOfType("domain.Check"), mock.AnythingOfType("domain.CheckMove"), mock.Anything).
		Run(func(args mock.Arguments) { savedMove = args.Get(2).(domain.CheckMove) }).
		Return(nil).Once()

	check, err := suite.service.IssueCheck(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.CheckIssued, check.Status)
	suite.Equal(domain.MoveIssue, savedMove.Action)
	suite.mockCheckRepo.AssertExpectations(suite.T())
}

func (suite *CheckServiceTestSuite) TestEndorseCheck_RequiresInSafe() {
	ctx := context.Background()
	issued := &domain.Check{CheckID: uuid.NewString(), Status: domain.CheckIssued}
	suite.mockCheckRepo.On("FindCheckByID", ctx, issued.CheckID).Return(issued, nil).Once()

	req := dto.EndorseCheckRequest{SupplierContactID: suite.supplier.ContactID}
	_, err := suite.service.EndorseCheck(ctx, issued.CheckID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockCheckRepo.AssertNotCalled(suite.T(), "TransitionCheck", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CheckServiceTestSuite) TestEndorseCheck_Success() {
	ctx := context.Background()
	held := &domain.Check{CheckID: uuid.NewString(), Status: domain.CheckInSafe, ContactID: &suite.customer.ContactID}
	suite.mockCheckRepo.On("FindCheckByID", ctx, held.CheckID).Return(held, nil).Once()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.supplier.ContactID).Return(&suite.supplier, nil).Once()

	var savedMove domain.CheckMove
	suite.mockCheckRepo.On("TransitionCheck", ctx, held.CheckID, domain.CheckInSafe, domain.CheckEndorsed, mock.AnythingOfType("domain.CheckMove")).
		Run(func(args mock.Arguments) { savedMove = args.Get(4).(domain.CheckMove) }).
		Return(nil).Once()

	req := dto.EndorseCheckRequest{SupplierContactID: suite.supplier.ContactID}
	check, err := suite.service.EndorseCheck(ctx, held.CheckID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.CheckEndorsed, check.Status)
	suite.Equal(domain.MoveOut, savedMove.Action)
	suite.Equal("Endorsed to Paper Supplies SARL", savedMove.Note)
	suite.mockCheckRepo.AssertExpectations(suite.T())
}

func (suite *CheckServiceTestSuite) TestEndorseCheck_ConcurrentLoser() {
	ctx := context.Background()
	held := &domain.Check{CheckID: uuid.NewString(), Status: domain.CheckInSafe}
	suite.mockCheckRepo.On("FindCheckByID", ctx, held.CheckID).Return(held, nil).Once()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.supplier.ContactID).Return(&suite.supplier, nil).Once()
	suite.mockCheckRepo.On("TransitionCheck", ctx, held.CheckID, domain.CheckInSafe, domain.CheckEndorsed, mock.AnythingOfType("domain.CheckMove")).
		Return(apperrors.ErrInvalidTransition).Once()

	req := dto.EndorseCheckRequest{SupplierContactID: suite.supplier.ContactID}
	_, err := suite.service.EndorseCheck(ctx, held.CheckID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *CheckServiceTestSuite) settleRequest() dto.SettleCheckRequest {
	return dto.SettleCheckRequest{
		BankAccountID: suite.bankAccount.BankAccountID,
		Amount:        "12500.00",
	}
}

func (suite *CheckServiceTestSuite) TestSettleCheck_Success() {
	ctx := context.Background()
	held := &domain.Check{
		CheckID:      uuid.NewString(),
		SerialNumber: "CHK-90213",
		Status:       domain.CheckInSafe,
		ContactID:    &suite.customer.ContactID,
		Amount:       decimal.RequireFromString("12500.00"),
	}
	suite.mockCheckRepo.On("FindCheckByID", ctx, held.CheckID).Return(held, nil).Once()
	suite.mockBankAccountRepo.On("FindBankAccountByID", ctx, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()

	var savedEntry domain.Entry
	var savedMove domain.CheckMove
	suite.mockCheckRepo.On("SettleCheck", ctx, held.CheckID, domain.CheckInSafe, mock.AnythingOfType("domain.Entry"), mock.AnythingOfType("domain.CheckMove")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(3).(domain.Entry)
			savedMove = args.Get(4).(domain.CheckMove)
		}).
		Return(&domain.Entry{EntryID: uuid.NewString(), SequenceNo: 11}, nil).Once()

	check, entry, err := suite.service.SettleCheck(ctx, held.CheckID, suite.settleRequest(), suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.CheckPaid, check.Status)
	suite.Equal(int64(11), entry.SequenceNo)
	suite.Equal(domain.MethodCheck, savedEntry.Method)
	suite.Equal(domain.KindCheckSettlement, savedEntry.OperationKind)
	suite.Equal(domain.Inflow, savedEntry.Direction)
	suite.Require().NotNil(savedEntry.CheckID)
	suite.Equal(held.CheckID, *savedEntry.CheckID)
	suite.Equal("Settlement of check CHK-90213", savedEntry.Description)
	suite.Equal(domain.MovePayment, savedMove.Action)
	suite.Require().NotNil(savedMove.EntryID)
	suite.Equal(savedEntry.EntryID, *savedMove.EntryID)
	suite.mockCheckRepo.AssertExpectations(suite.T())
}

func (suite *CheckServiceTestSuite) TestSettleCheck_AlreadyPaid() {
	ctx := context.Background()
	paid := &domain.Check{CheckID: uuid.NewString(), Status: domain.CheckPaid}
	suite.mockCheckRepo.On("FindCheckByID", ctx, paid.CheckID).Return(paid, nil).Once()

	_, _, err := suite.service.SettleCheck(ctx, paid.CheckID, suite.settleRequest(), suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyPaid)
	suite.mockCheckRepo.AssertNotCalled(suite.T(), "SettleCheck", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CheckServiceTestSuite) TestSettleCheck_EndorsedIsTerminal() {
	ctx := context.Background()
	endorsed := &domain.Check{CheckID: uuid.NewString(), Status: domain.CheckEndorsed}
	suite.mockCheckRepo.On("FindCheckByID", ctx, endorsed.CheckID).Return(endorsed, nil).Once()

	_, _, err := suite.service.SettleCheck(ctx, endorsed.CheckID, suite.settleRequest(), suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockCheckRepo.AssertNotCalled(suite.T(), "SettleCheck", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CheckServiceTestSuite) TestSettleCheck_LosesToConcurrentTransition() {
	ctx := context.Background()
	held := &domain.Check{CheckID: uuid.NewString(), Status: domain.CheckInSafe}
	suite.mockCheckRepo.On("FindCheckByID", ctx, held.CheckID).Return(held, nil).Once()
	suite.mockBankAccountRepo.On("FindBankAccountByID", ctx, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()

	// The guard carries the status read before the race. An endorse committing
	// in between leaves the check ENDORSED, so the IN_SAFE-conditioned update
	// matches nothing and the settlement must not go through.
	suite.mockCheckRepo.On("SettleCheck", ctx, held.CheckID, domain.CheckInSafe, mock.AnythingOfType("domain.Entry"), mock.AnythingOfType("domain.CheckMove")).
		Return(nil, apperrors.ErrAlreadyPaid).Once()

	check, entry, err := suite.service.SettleCheck(ctx, held.CheckID, suite.settleRequest(), suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyPaid)
	suite.Nil(check)
	suite.Nil(entry)
	suite.mockCheckRepo.AssertExpectations(suite.T())
}

func (suite *CheckServiceTestSuite) TestListChecks_BadStatus() {
	ctx := context.Background()
	badStatus := "FLOATING"
	params := dto.ListChecksParams{Status: &badStatus, Limit: 50}

	_, _, err := suite.service.ListChecks(ctx, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCheckRepo.AssertNotCalled(suite.T(), "ListChecks", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckService(t *testing.T) {
	suite.Run(t, new(CheckServiceTestSuite))
}
