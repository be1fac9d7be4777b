package handlers

import (
	"fmt"

	"github.com/SscSPs/hr_memo_app/cmd/docs"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/middleware"
	"github.com/SscSPs/hr_memo_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// v1Middleware runs after authentication on every /api/v1 route.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	v1Middleware ...gin.HandlerFunc,
) error {
	r.GET("/", getHome)
	r.GET("/health", getHealth)

	loginLimiter, err := middleware.NewMemoryRateLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("login rate limiter: %w", err)
	}
	verifyLimiter, err := middleware.NewMemoryRateLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("mfa rate limiter: %w", err)
	}

	// Public authentication routes
	registerAuthRoutes(r, cfg, services, middleware.RateLimit(loginLimiter))

	setupAPIV1Routes(r, cfg, services, middleware.RateLimit(verifyLimiter), v1Middleware)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	verifyLimit gin.HandlerFunc,
	extra []gin.HandlerFunc,
) {
	chain := append([]gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret)}, extra...)
	v1 := r.Group("/api/v1", chain...)

	RegisterEmployeeRoutes(v1, services.Employee, services.Memorandum)
	RegisterMFARoutes(v1, services.MFA, verifyLimit)
	RegisterMemorandumRoutes(v1, services.Memorandum, services.Employee)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
