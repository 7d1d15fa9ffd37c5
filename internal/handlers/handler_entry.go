package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opentreso/treasury_app/internal/core/domain"
	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/dto"
	"github.com/opentreso/treasury_app/internal/middleware"
)

// entryHandler handles HTTP requests for ledger entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(es portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{entryService: es}
}

// registerEntryRoutes registers routes related to ledger entries.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.POST("/cash-in", h.createCashIn)
		entries.POST("/cash-out", h.createCashOut)
		entries.POST("/bank-in", h.createBankIn)
		entries.POST("/bank-out", h.createBankOut)
		entries.POST("/pos-collections", h.createPosCollection)
		entries.POST("/card-expenses", h.createCardExpense)
		entries.POST("/card-payments", h.createCardPayment)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntryByID)
		entries.DELETE("/:id", h.deleteEntry)
	}
}

// createSingleEntry is the shared handler body for the operation kinds that
// produce exactly one entry.
func createSingleEntry[R any](c *gin.Context, operation string, create func(ctx *gin.Context, req R, actorID string) (*domain.Entry, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := create(c, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record "+operation)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateEntryResponse{Entry: dto.ToEntryResponse(entry)})
}

// createCashIn godoc
// @Summary Record a cash inflow
// @Description Records money received in cash
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateCashInRequest true "Cash in details"
// @Success 201 {object} dto.CreateEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /entries/cash-in [post]
func (h *entryHandler) createCashIn(c *gin.Context) {
	createSingleEntry(c, "cash in", func(ctx *gin.Context, req dto.CreateCashInRequest, actorID string) (*domain.Entry, error) {
		return h.entryService.CashIn(ctx.Request.Context(), req, actorID)
	})
}

// createCashOut godoc
// @Summary Record a cash outflow
// @Description Records money paid out in cash with its expense category
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateCashOutRequest true "Cash out details"
// @Success 201 {object} dto.CreateEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /entries/cash-out [post]
func (h *entryHandler) createCashOut(c *gin.Context) {
	createSingleEntry(c, "cash out", func(ctx *gin.Context, req dto.CreateCashOutRequest, actorID string) (*domain.Entry, error) {
		return h.entryService.CashOut(ctx.Request.Context(), req, actorID)
	})
}

// createBankIn godoc
// @Summary Record an incoming bank transfer
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateBankInRequest true "Bank in details"
// @Success 201 {object} dto.CreateEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /entries/bank-in [post]
func (h *entryHandler) createBankIn(c *gin.Context) {
	createSingleEntry(c, "bank in", func(ctx *gin.Context, req dto.CreateBankInRequest, actorID string) (*domain.Entry, error) {
		return h.entryService.BankIn(ctx.Request.Context(), req, actorID)
	})
}

// createBankOut godoc
// @Summary Record an outgoing bank transfer
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateBankOutRequest true "Bank out details"
// @Success 201 {object} dto.CreateEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /entries/bank-out [post]
func (h *entryHandler) createBankOut(c *gin.Context) {
	createSingleEntry(c, "bank out", func(ctx *gin.Context, req dto.CreateBankOutRequest, actorID string) (*domain.Entry, error) {
		return h.entryService.BankOut(ctx.Request.Context(), req, actorID)
	})
}

// createCardExpense godoc
// @Summary Record a card purchase
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateCardExpenseRequest true "Card expense details"
// @Success 201 {object} dto.CreateEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /entries/card-expenses [post]
func (h *entryHandler) createCardExpense(c *gin.Context) {
	createSingleEntry(c, "card expense", func(ctx *gin.Context, req dto.CreateCardExpenseRequest, actorID string) (*domain.Entry, error) {
		return h.entryService.CardExpense(ctx.Request.Context(), req, actorID)
	})
}

// createCardPayment godoc
// @Summary Record a payment onto a card
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateCardPaymentRequest true "Card payment details"
// @Success 201 {object} dto.CreateEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /entries/card-payments [post]
func (h *entryHandler) createCardPayment(c *gin.Context) {
	createSingleEntry(c, "card payment", func(ctx *gin.Context, req dto.CreateCardPaymentRequest, actorID string) (*domain.Entry, error) {
		return h.entryService.CardPayment(ctx.Request.Context(), req, actorID)
	})
}

// createPosCollection godoc
// @Summary Record a POS collection
// @Description Records a card-terminal collection, deriving the missing leg of the gross/commission/net breakdown
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreatePosCollectionRequest true "POS collection details"
// @Success 201 {object} dto.CreateEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or missing POS field"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /entries/pos-collections [post]
func (h *entryHandler) createPosCollection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePosCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for POS collection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, commissionEntry, err := h.entryService.PosCollection(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record POS collection")
		return
	}

	resp := dto.CreateEntryResponse{Entry: dto.ToEntryResponse(entry)}
	if commissionEntry != nil {
		ce := dto.ToEntryResponse(commissionEntry)
		resp.CommissionEntry = &ce
	}
	c.JSON(http.StatusCreated, resp)
}

// listEntries godoc
// @Summary List ledger entries
// @Description Retrieves a filtered, token-paginated list of entries ordered by effective date
// @Tags entries
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param method query string false "Payment method filter"
// @Param bankAccountID query string false "Bank account filter"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, nextToken, err := h.entryService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	})
}

// getEntryByID godoc
// @Summary Get a ledger entry
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /entries/{id} [get]
func (h *entryHandler) getEntryByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Hard-delete a ledger entry
// @Description Permanently removes an entry and its tag and attachment links; the deletion is notified to the external channel
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /entries/{id} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), entryID, actorID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete entry")
		return
	}
	logger.Info("Entry deleted", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}
