package handlers

import (
	"github.com/gin-gonic/gin"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	swaggerFiles "github.com/swaggo/files"

	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/middleware"
	"github.com/opentreso/treasury_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	registerCustomValidators()

	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerPublicAuthRoutes(r, cfg, services)
	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// registerPublicAuthRoutes mounts the unauthenticated login and registration
// routes behind a per-IP rate limit.
func registerPublicAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	rate, err := limiter.NewRateFromFormatted(cfg.AuthRateLimit)
	if err != nil {
		// Misconfigured rate formats fall back to a conservative default.
		rate, _ = limiter.NewRateFromFormatted("20-M")
	}
	limiterInstance := limiter.New(memory.NewStore(), rate)

	public := r.Group("/api/v1", middleware.RateLimit(limiterInstance))
	registerAuthRoutes(public, services.Token, services.User)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to
// the entity route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerEntryRoutes(v1, services.Entry)
	registerCheckRoutes(v1, services.Check)
	registerReportingRoutes(v1, services.Reporting, services.BankAccount, cfg.CurrencyCode)
	registerBankAccountRoutes(v1, services.BankAccount)
	registerCardRoutes(v1, services.Card)
	registerContactRoutes(v1, services.Contact)
	registerTagRoutes(v1, services.Tag)
	registerUserRoutes(v1, services.User)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
