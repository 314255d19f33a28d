package v1

import (
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// @title TaskHub API
// @version 1.0
// @description Multi-tenant project and task management API

// @BasePath /api/v1

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services *service.Services
	config   *config.Config
}

func NewHandler(services *service.Services, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initAuthRoutes(v1)
	h.initUsersRoutes(v1)
	h.initWorkspacesRoutes(v1)
	h.initProjectsRoutes(v1)
}
