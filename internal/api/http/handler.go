package apiHttp

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/taskhub/backend/docs"
	"github.com/taskhub/backend/pkg/limiter"
	"github.com/taskhub/backend/pkg/logger"
	"github.com/taskhub/backend/pkg/validator"

	internalV1 "github.com/taskhub/backend/internal/api/http/internal/v1"
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services *service.Services
	config   *config.Config
}

func NewHandlers(services *service.Services, cfg *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   cfg,
	}
}

func (h *Handler) Init() *gin.Engine {
	if h.config.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		ginzap.RecoveryWithZap(logger.Logger(), true),
		corsMiddleware(h.config.CORS.AllowedOrigins),
		limiter.Limit(h.config.Limiter.RPS, h.config.Limiter.Burst, h.config.Limiter.TTL),
	)

	if h.config.HttpServer.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.NewHandler(), ginSwagger.InstanceName("internal")))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.config)
	api := router.Group("/api")
	internalHandlersV1.Init(api)
}
