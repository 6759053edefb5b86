package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mpalashb/secureprime-digital-agency/internal/delivery/http/middleware"
	"github.com/mpalashb/secureprime-digital-agency/internal/domain"
	"github.com/mpalashb/secureprime-digital-agency/internal/usecase"
	"github.com/mpalashb/secureprime-digital-agency/pkg/apperror"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC      domain.ContactUsecase
	ConsultationUC domain.ConsultationUsecase
	HealthUC       usecase.HealthUsecase
	Release        bool          // GIN_MODE=release
	RequestTimeout time.Duration // form requests, matches the idempotency pending TTL
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Release))
	r.Use(middleware.ErrorHandler())

	r.NoMethod(func(c *gin.Context) {
		c.Error(apperror.MethodNotAllowed())
	})
	r.NoRoute(func(c *gin.Context) {
		c.Error(apperror.New(http.StatusNotFound, "Not found", nil))
	})

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public form routes
	forms := v1.Group("")
	forms.Use(middleware.RequestTimeout(deps.RequestTimeout))
	forms.Use(middleware.IdempotencyKey())
	{
		NewContactHandler(forms, deps.ContactUC)
		NewConsultationHandler(forms, deps.ConsultationUC)
	}

	return r
}
