package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/dto"
	"github.com/opentreso/treasury_app/internal/middleware"
)

// cardHandler handles HTTP requests for card reference data.
type cardHandler struct {
	cardService portssvc.CardSvcFacade
}

func newCardHandler(cs portssvc.CardSvcFacade) *cardHandler {
	return &cardHandler{cardService: cs}
}

// registerCardRoutes registers routes related to cards.
func registerCardRoutes(rg *gin.RouterGroup, cardService portssvc.CardSvcFacade) {
	h := newCardHandler(cardService)

	cards := rg.Group("/cards")
	{
		cards.POST("", h.createCard)
		cards.GET("", h.listCards)
		cards.GET("/:id", h.getCardByID)
		cards.DELETE("/:id", h.deactivateCard)
	}
}

// createCard godoc
// @Summary Register a card
// @Tags cards
// @Accept json
// @Produce json
// @Param card body dto.CreateCardRequest true "Card details"
// @Success 201 {object} dto.CardResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /cards [post]
func (h *cardHandler) createCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create card", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create card")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCardResponse(card))
}

// listCards godoc
// @Summary List cards
// @Tags cards
// @Produce json
// @Param includeInactive query bool false "Include deactivated cards"
// @Success 200 {array} dto.CardResponse
// @Security BearerAuth
// @Router /cards [get]
func (h *cardHandler) listCards(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	includeInactive := c.Query("includeInactive") == "true"

	cards, err := h.cardService.ListCards(c.Request.Context(), includeInactive)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list cards")
		return
	}

	responses := make([]dto.CardResponse, len(cards))
	for i := range cards {
		responses[i] = dto.ToCardResponse(&cards[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getCardByID godoc
// @Summary Get a card
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} dto.CardResponse
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /cards/{id} [get]
func (h *cardHandler) getCardByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	card, err := h.cardService.GetCardByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve card")
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}

// deactivateCard godoc
// @Summary Deactivate a card
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /cards/{id} [delete]
func (h *cardHandler) deactivateCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.cardService.DeactivateCard(c.Request.Context(), c.Param("id"), actorID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate card")
		return
	}
	c.Status(http.StatusNoContent)
}
