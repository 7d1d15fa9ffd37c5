package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/dto"
	"github.com/opentreso/treasury_app/internal/middleware"
)

// reportingHandler handles HTTP requests for balances and reports.
type reportingHandler struct {
	reportingService   portssvc.ReportingSvcFacade
	bankAccountService portssvc.BankAccountSvcFacade
	currencyCode       string
}

func newReportingHandler(rs portssvc.ReportingSvcFacade, bas portssvc.BankAccountSvcFacade, currencyCode string) *reportingHandler {
	return &reportingHandler{
		reportingService:   rs,
		bankAccountService: bas,
		currencyCode:       currencyCode,
	}
}

// registerReportingRoutes registers routes related to balances and reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, bankAccountService portssvc.BankAccountSvcFacade, currencyCode string) {
	h := newReportingHandler(reportingService, bankAccountService, currencyCode)

	reports := rg.Group("/reports")
	{
		reports.GET("/balances", h.getBalances)
		reports.GET("/check-exposure", h.getCheckExposure)
		reports.GET("/day-book", h.getDayBook)
		reports.GET("/ledger", h.getLedgerReport)
		reports.POST("/snapshots", h.createSnapshot)
	}
}

const reportDateLayout = "2006-01-02"

func (h *reportingHandler) bindWindow(c *gin.Context) (time.Time, time.Time, bool) {
	var params dto.ReportWindowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return time.Time{}, time.Time{}, false
	}
	from, err := time.Parse(reportDateLayout, params.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(reportDateLayout, params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// getBalances godoc
// @Summary Get all point-in-time balances
// @Description Recomputes the cash balance and every active bank account balance from the entry log
// @Tags reports
// @Produce json
// @Success 200 {object} dto.BalancesResponse
// @Failure 500 {object} map[string]string "Failed to compute balances"
// @Security BearerAuth
// @Router /reports/balances [get]
func (h *reportingHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ctx := c.Request.Context()

	cash, err := h.reportingService.CashBalance(ctx)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute cash balance")
		return
	}

	accounts, err := h.bankAccountService.ListBankAccounts(ctx, false)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list bank accounts")
		return
	}

	resp := dto.BalancesResponse{
		Cash: dto.CashBalanceResponse{Balance: cash, CurrencyCode: h.currencyCode},
	}
	for _, account := range accounts {
		balance, err := h.reportingService.BankAccountBalance(ctx, account.BankAccountID)
		if err != nil {
			respondServiceError(c, logger, err, "Failed to compute bank account balance")
			return
		}
		resp.BankAccounts = append(resp.BankAccounts, dto.BankAccountBalanceResponse{
			BankAccountID: account.BankAccountID,
			Name:          account.Name,
			Balance:       balance,
			CurrencyCode:  h.currencyCode,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// getCheckExposure godoc
// @Summary Get checks awaiting collection
// @Description Returns count and total of customer checks still in the safe
// @Tags reports
// @Produce json
// @Success 200 {object} domain.CheckExposure
// @Security BearerAuth
// @Router /reports/check-exposure [get]
func (h *reportingHandler) getCheckExposure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	exposure, err := h.reportingService.CheckExposure(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute check exposure")
		return
	}
	c.JSON(http.StatusOK, exposure)
}

// getDayBook godoc
// @Summary Get the day-book report
// @Description Ordered window report with per-row running balances starting at zero
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.DayBookReport
// @Failure 400 {object} map[string]string "Invalid window"
// @Security BearerAuth
// @Router /reports/day-book [get]
func (h *reportingHandler) getDayBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to, ok := h.bindWindow(c)
	if !ok {
		return
	}

	report, err := h.reportingService.DayBook(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build day book")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getLedgerReport godoc
// @Summary Get the full ledger report
// @Description Day-book ordering plus resolved reference names and tags; the input contract for PDF/CSV rendering
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.LedgerReport
// @Failure 400 {object} map[string]string "Invalid window"
// @Security BearerAuth
// @Router /reports/ledger [get]
func (h *reportingHandler) getLedgerReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to, ok := h.bindWindow(c)
	if !ok {
		return
	}

	report, err := h.reportingService.LedgerReport(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build ledger report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// createSnapshot godoc
// @Summary Checkpoint a balance
// @Description Saves the current balance of a bank account (or cash when omitted) so later reads fold a shorter window
// @Tags reports
// @Accept json
// @Produce json
// @Param snapshot body dto.CreateSnapshotRequest true "Snapshot target"
// @Success 201 {object} domain.BalanceSnapshot
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /reports/snapshots [post]
func (h *reportingHandler) createSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	snapshot, err := h.reportingService.CreateBalanceSnapshot(c.Request.Context(), req.BankAccountID, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create snapshot")
		return
	}
	logger.Info("Balance snapshot created", slog.String("snapshot_id", snapshot.SnapshotID))
	c.JSON(http.StatusCreated, snapshot)
}
