package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/dto"
	"github.com/opentreso/treasury_app/internal/middleware"
)

// authHandler handles authentication requests.
type authHandler struct {
	tokenService portssvc.TokenSvcFacade
	userService  portssvc.UserSvcFacade
}

func newAuthHandler(ts portssvc.TokenSvcFacade, us portssvc.UserSvcFacade) *authHandler {
	return &authHandler{tokenService: ts, userService: us}
}

// registerAuthRoutes registers the unauthenticated auth routes. The caller is
// expected to rate-limit this group.
func registerAuthRoutes(rg *gin.RouterGroup, tokenService portssvc.TokenSvcFacade, userService portssvc.UserSvcFacade) {
	h := newAuthHandler(tokenService, userService)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/register", h.register)
	}
}

// login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.tokenService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// register godoc
// @Summary Register a new staff user
// @Description Self-service registration; the new user is recorded as their own creator
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	// Self registration: the new user is their own creator in the audit trail.
	user, err := h.userService.CreateUser(c.Request.Context(), req, "SELF_REGISTER")
	if err != nil {
		respondServiceError(c, logger, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}
