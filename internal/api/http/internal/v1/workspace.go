package v1

import (
	"net/http"

	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initWorkspacesRoutes(api *gin.RouterGroup) {
	workspaces := api.Group("/workspaces", h.userIdentityMiddleware)
	{
		workspaces.POST("", h.createWorkspace)
		workspaces.GET("", h.listWorkspaces)
		workspaces.GET("/:workspaceId", h.getWorkspace)
		workspaces.GET("/:workspaceId/projects", h.listWorkspaceProjects)
	}
}

// idParam parses a uuid path parameter, answering 400 when it is malformed.
func idParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, InvalidIDCode)
		return uuid.Nil, false
	}
	return id, true
}

type createWorkspaceRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	Color       string `json:"color" binding:"omitempty,color"`
}

// @Summary Create workspace
// @Tags Workspaces
// @Description Creates a workspace owned by the caller
// @ModuleID createWorkspace
// @Accept  json
// @Produce  json
// @Param input body createWorkspaceRequest true "workspace"
// @Success 201 {object} domain.Workspace
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /workspaces [post]
func (h *Handler) createWorkspace(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	var req createWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	workspace, err := h.services.Workspaces.Create(c.Request.Context(), user.ID, service.CreateWorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		serviceErrorResponse(c, err, "create workspace failed")
		return
	}

	c.JSON(http.StatusCreated, workspace)
}

// @Summary List workspaces
// @Tags Workspaces
// @Description Workspaces the caller is a member of, newest first
// @ModuleID listWorkspaces
// @Produce  json
// @Success 200 {array} domain.Workspace
// @Failure 401 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /workspaces [get]
func (h *Handler) listWorkspaces(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	workspaces, err := h.services.Workspaces.List(c.Request.Context(), user.ID)
	if err != nil {
		serviceErrorResponse(c, err, "list workspaces failed")
		return
	}

	if workspaces == nil {
		workspaces = []*domain.Workspace{}
	}
	c.JSON(http.StatusOK, workspaces)
}

// @Summary Workspace details
// @Tags Workspaces
// @ModuleID getWorkspace
// @Produce  json
// @Param workspaceId path string true "workspace id"
// @Success 200 {object} domain.Workspace
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /workspaces/{workspaceId} [get]
func (h *Handler) getWorkspace(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	workspaceID, ok := idParam(c, "workspaceId")
	if !ok {
		return
	}

	workspace, err := h.services.Workspaces.Get(c.Request.Context(), user.ID, workspaceID)
	if err != nil {
		serviceErrorResponse(c, err, "get workspace failed")
		return
	}

	c.JSON(http.StatusOK, workspace)
}

type workspaceProjectsResponse struct {
	Projects  []*domain.Project `json:"projects"`
	Workspace *domain.Workspace `json:"workspace"`
}

// @Summary Workspace projects
// @Tags Workspaces
// @Description Non-archived projects of a workspace
// @ModuleID listWorkspaceProjects
// @Produce  json
// @Param workspaceId path string true "workspace id"
// @Success 200 {object} workspaceProjectsResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /workspaces/{workspaceId}/projects [get]
func (h *Handler) listWorkspaceProjects(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	workspaceID, ok := idParam(c, "workspaceId")
	if !ok {
		return
	}

	workspace, projects, err := h.services.Workspaces.ListProjects(c.Request.Context(), user.ID, workspaceID)
	if err != nil {
		serviceErrorResponse(c, err, "list workspace projects failed")
		return
	}

	if projects == nil {
		projects = []*domain.Project{}
	}
	c.JSON(http.StatusOK, workspaceProjectsResponse{Projects: projects, Workspace: workspace})
}
