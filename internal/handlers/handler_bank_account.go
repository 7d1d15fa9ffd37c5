package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/dto"
	"github.com/opentreso/treasury_app/internal/middleware"
)

// bankAccountHandler handles HTTP requests for bank account reference data.
type bankAccountHandler struct {
	bankAccountService portssvc.BankAccountSvcFacade
}

func newBankAccountHandler(bas portssvc.BankAccountSvcFacade) *bankAccountHandler {
	return &bankAccountHandler{bankAccountService: bas}
}

// registerBankAccountRoutes registers routes related to bank accounts.
func registerBankAccountRoutes(rg *gin.RouterGroup, bankAccountService portssvc.BankAccountSvcFacade) {
	h := newBankAccountHandler(bankAccountService)

	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.createBankAccount)
		accounts.GET("", h.listBankAccounts)
		accounts.GET("/:id", h.getBankAccountByID)
		accounts.DELETE("/:id", h.deactivateBankAccount)
	}
}

// createBankAccount godoc
// @Summary Register a bank account
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /bank-accounts [post]
func (h *bankAccountHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create bank account", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.bankAccountService.CreateBankAccount(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create bank account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Tags bank-accounts
// @Produce json
// @Param includeInactive query bool false "Include deactivated accounts"
// @Success 200 {array} dto.BankAccountResponse
// @Security BearerAuth
// @Router /bank-accounts [get]
func (h *bankAccountHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	includeInactive := c.Query("includeInactive") == "true"

	accounts, err := h.bankAccountService.ListBankAccounts(c.Request.Context(), includeInactive)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list bank accounts")
		return
	}

	responses := make([]dto.BankAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = dto.ToBankAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getBankAccountByID godoc
// @Summary Get a bank account
// @Tags bank-accounts
// @Produce json
// @Param id path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{id} [get]
func (h *bankAccountHandler) getBankAccountByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.bankAccountService.GetBankAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve bank account")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// deactivateBankAccount godoc
// @Summary Deactivate a bank account
// @Description Hides the account from new entries; existing entries keep their reference
// @Tags bank-accounts
// @Produce json
// @Param id path string true "Bank account ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{id} [delete]
func (h *bankAccountHandler) deactivateBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.bankAccountService.DeactivateBankAccount(c.Request.Context(), c.Param("id"), actorID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate bank account")
		return
	}
	c.Status(http.StatusNoContent)
}
