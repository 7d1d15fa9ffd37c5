package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/dto"
	"github.com/opentreso/treasury_app/internal/middleware"
)

// checkHandler handles HTTP requests for the check lifecycle.
type checkHandler struct {
	checkService portssvc.CheckSvcFacade
}

func newCheckHandler(cs portssvc.CheckSvcFacade) *checkHandler {
	return &checkHandler{checkService: cs}
}

// registerCheckRoutes registers routes related to checks.
func registerCheckRoutes(rg *gin.RouterGroup, checkService portssvc.CheckSvcFacade) {
	h := newCheckHandler(checkService)

	checks := rg.Group("/checks")
	{
		checks.POST("/receive", h.receiveCheck)
		checks.POST("/issue", h.issueCheck)
		checks.POST("/:id/endorse", h.endorseCheck)
		checks.POST("/:id/settle", h.settleCheck)
		checks.GET("", h.listChecks)
		checks.GET("/:id", h.getCheckByID)
	}
}

// receiveCheck godoc
// @Summary Receive a customer check into the safe
// @Description Registers a customer check with a mandatory scan attachment; the check starts IN_SAFE
// @Tags checks
// @Accept json
// @Produce json
// @Param check body dto.ReceiveCheckRequest true "Check details"
// @Success 201 {object} dto.CheckResponse
// @Failure 400 {object} map[string]string "Invalid input or missing attachment"
// @Failure 404 {object} map[string]string "Contact not found"
// @Security BearerAuth
// @Router /checks/receive [post]
func (h *checkHandler) receiveCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReceiveCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for receive check", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	check, err := h.checkService.ReceiveCheck(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to receive check")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCheckResponse(check))
}

// issueCheck godoc
// @Summary Issue an organization check
// @Description Registers a check written by the organization; the check starts ISSUED
// @Tags checks
// @Accept json
// @Produce json
// @Param check body dto.IssueCheckRequest true "Check details"
// @Success 201 {object} dto.CheckResponse
// @Failure 400 {object} map[string]string "Invalid input or missing attachment"
// @Security BearerAuth
// @Router /checks/issue [post]
func (h *checkHandler) issueCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IssueCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for issue check", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	check, err := h.checkService.IssueCheck(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to issue check")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCheckResponse(check))
}

// endorseCheck godoc
// @Summary Endorse a held check to a supplier
// @Description Hands an IN_SAFE check to a supplier in lieu of cash; the check becomes ENDORSED
// @Tags checks
// @Accept json
// @Produce json
// @Param id path string true "Check ID"
// @Param endorsement body dto.EndorseCheckRequest true "Supplier details"
// @Success 200 {object} dto.CheckResponse
// @Failure 404 {object} map[string]string "Check or supplier not found"
// @Failure 409 {object} map[string]string "Check is not in the safe"
// @Security BearerAuth
// @Router /checks/{id}/endorse [post]
func (h *checkHandler) endorseCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID := c.Param("id")
	var req dto.EndorseCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	check, err := h.checkService.EndorseCheck(c.Request.Context(), checkID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to endorse check")
		return
	}
	c.JSON(http.StatusOK, dto.ToCheckResponse(check))
}

// settleCheck godoc
// @Summary Settle a check
// @Description Marks a check PAID and books the linked check-settlement ledger entry atomically
// @Tags checks
// @Accept json
// @Produce json
// @Param id path string true "Check ID"
// @Param settlement body dto.SettleCheckRequest true "Settlement details"
// @Success 200 {object} dto.SettleCheckResponse
// @Failure 404 {object} map[string]string "Check or bank account not found"
// @Failure 409 {object} map[string]string "Check is already paid"
// @Security BearerAuth
// @Router /checks/{id}/settle [post]
func (h *checkHandler) settleCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID := c.Param("id")
	var req dto.SettleCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	check, entry, err := h.checkService.SettleCheck(c.Request.Context(), checkID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to settle check")
		return
	}
	c.JSON(http.StatusOK, dto.SettleCheckResponse{
		Check: dto.ToCheckResponse(check),
		Entry: dto.ToEntryResponse(entry),
	})
}

// listChecks godoc
// @Summary List checks
// @Tags checks
// @Produce json
// @Param status query string false "Status filter (IN_SAFE, ENDORSED, ISSUED, PAID)"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListChecksResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /checks [get]
func (h *checkHandler) listChecks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListChecksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	checks, nextToken, err := h.checkService.ListChecks(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list checks")
		return
	}
	c.JSON(http.StatusOK, dto.ListChecksResponse{
		Checks:    dto.ToCheckResponses(checks),
		NextToken: nextToken,
	})
}

// getCheckByID godoc
// @Summary Get a check with its move log
// @Tags checks
// @Produce json
// @Param id path string true "Check ID"
// @Success 200 {object} dto.CheckResponse
// @Failure 404 {object} map[string]string "Check not found"
// @Security BearerAuth
// @Router /checks/{id} [get]
func (h *checkHandler) getCheckByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID := c.Param("id")

	check, err := h.checkService.GetCheckByID(c.Request.Context(), checkID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve check")
		return
	}
	c.JSON(http.StatusOK, dto.ToCheckResponse(check))
}
