package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/dto"
	"github.com/opentreso/treasury_app/internal/middleware"
)

// tagHandler handles HTTP requests for entry tags.
type tagHandler struct {
	tagService portssvc.TagSvcFacade
}

func newTagHandler(ts portssvc.TagSvcFacade) *tagHandler {
	return &tagHandler{tagService: ts}
}

// registerTagRoutes registers routes related to tags.
func registerTagRoutes(rg *gin.RouterGroup, tagService portssvc.TagSvcFacade) {
	h := newTagHandler(tagService)

	tags := rg.Group("/tags")
	{
		tags.POST("", h.createTag)
		tags.GET("", h.listTags)
	}
}

// createTag godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body dto.CreateTagRequest true "Tag details"
// @Success 201 {object} domain.Tag
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Tag name already exists"
// @Security BearerAuth
// @Router /tags [post]
func (h *tagHandler) createTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create tag", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create tag")
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// listTags godoc
// @Summary List tags
// @Tags tags
// @Produce json
// @Success 200 {array} domain.Tag
// @Security BearerAuth
// @Router /tags [get]
func (h *tagHandler) listTags(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tags, err := h.tagService.ListTags(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list tags")
		return
	}
	c.JSON(http.StatusOK, tags)
}
