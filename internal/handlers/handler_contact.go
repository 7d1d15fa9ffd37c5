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

// contactHandler handles HTTP requests for counterparty reference data.
type contactHandler struct {
	contactService portssvc.ContactSvcFacade
}

func newContactHandler(cs portssvc.ContactSvcFacade) *contactHandler {
	return &contactHandler{contactService: cs}
}

// registerContactRoutes registers routes related to contacts.
func registerContactRoutes(rg *gin.RouterGroup, contactService portssvc.ContactSvcFacade) {
	h := newContactHandler(contactService)

	contacts := rg.Group("/contacts")
	{
		contacts.POST("", h.createContact)
		contacts.GET("", h.listContacts)
		contacts.GET("/:id", h.getContactByID)
		contacts.DELETE("/:id", h.deactivateContact)
	}
}

// createContact godoc
// @Summary Register a counterparty
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body dto.CreateContactRequest true "Contact details"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /contacts [post]
func (h *contactHandler) createContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create contact", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create contact")
		return
	}
	c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}

// listContacts godoc
// @Summary List counterparties
// @Tags contacts
// @Produce json
// @Param type query string false "Contact type filter (CUSTOMER, SUPPLIER, OTHER)"
// @Param includeInactive query bool false "Include deactivated contacts"
// @Success 200 {array} dto.ContactResponse
// @Security BearerAuth
// @Router /contacts [get]
func (h *contactHandler) listContacts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	includeInactive := c.Query("includeInactive") == "true"

	var contactType *domain.ContactType
	if raw := c.Query("type"); raw != "" {
		ct := domain.ContactType(raw)
		switch ct {
		case domain.ContactCustomer, domain.ContactSupplier, domain.ContactOther:
			contactType = &ct
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown contact type: " + raw})
			return
		}
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), contactType, includeInactive)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list contacts")
		return
	}

	responses := make([]dto.ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = dto.ToContactResponse(&contacts[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getContactByID godoc
// @Summary Get a counterparty
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} dto.ContactResponse
// @Failure 404 {object} map[string]string "Contact not found"
// @Security BearerAuth
// @Router /contacts/{id} [get]
func (h *contactHandler) getContactByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	contact, err := h.contactService.GetContactByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve contact")
		return
	}
	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// deactivateContact godoc
// @Summary Deactivate a counterparty
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Contact not found"
// @Security BearerAuth
// @Router /contacts/{id} [delete]
func (h *contactHandler) deactivateContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.contactService.DeactivateContact(c.Request.Context(), c.Param("id"), actorID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate contact")
		return
	}
	c.Status(http.StatusNoContent)
}
