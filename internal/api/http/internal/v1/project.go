package v1

import (
	"net/http"
	"time"

	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Every route under /projects names its first segment :id because gin does not
// allow differently named wildcards at one position. For create-project it is
// the workspace id.
func (h *Handler) initProjectsRoutes(api *gin.RouterGroup) {
	projects := api.Group("/projects", h.userIdentityMiddleware)
	{
		projects.POST("/:id/create-project", h.createProject)
		projects.GET("/:id", h.getProject)
		projects.GET("/:id/tasks", h.listProjectTasks)
		projects.POST("/:id/tasks", h.createTask)
	}
}

type projectMemberRequest struct {
	User uuid.UUID `json:"user" binding:"required"`
	Role string    `json:"role" binding:"required,projectrole"`
}

type createProjectRequest struct {
	Title       string                 `json:"title" binding:"required,min=3,max=200"`
	Description string                 `json:"description" binding:"max=2000"`
	Status      string                 `json:"status" binding:"required,projectstatus"`
	StartDate   time.Time              `json:"startDate" binding:"required"`
	DueDate     *time.Time             `json:"dueDate"`
	Tags        string                 `json:"tags"`
	Members     []projectMemberRequest `json:"members" binding:"dive"`
}

type projectResponse struct {
	Message string          `json:"message"`
	Project *domain.Project `json:"project"`
}

// @Summary Create project
// @Tags Projects
// @Description Creates a project in a workspace the caller belongs to
// @ModuleID createProject
// @Accept  json
// @Produce  json
// @Param id path string true "workspace id"
// @Param input body createProjectRequest true "project"
// @Success 201 {object} projectResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /projects/{id}/create-project [post]
func (h *Handler) createProject(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	workspaceID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	members := make([]service.ProjectMemberInput, len(req.Members))
	for i, m := range req.Members {
		members[i] = service.ProjectMemberInput{UserID: m.User, Role: domain.ProjectRole(m.Role)}
	}

	project, err := h.services.Projects.Create(c.Request.Context(), user.ID, workspaceID, service.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.ProjectStatus(req.Status),
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		Members:     members,
	})
	if err != nil {
		serviceErrorResponse(c, err, "create project failed")
		return
	}

	c.JSON(http.StatusCreated, projectResponse{Message: "Project created successfully", Project: project})
}

// @Summary Project details
// @Tags Projects
// @ModuleID getProject
// @Produce  json
// @Param id path string true "project id"
// @Success 200 {object} projectResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /projects/{id} [get]
func (h *Handler) getProject(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	projectID, ok := idParam(c, "id")
	if !ok {
		return
	}

	project, err := h.services.Projects.Get(c.Request.Context(), user.ID, projectID)
	if err != nil {
		serviceErrorResponse(c, err, "get project failed")
		return
	}

	c.JSON(http.StatusOK, projectResponse{Message: "Project details fetched successfully", Project: project})
}

type projectTasksResponse struct {
	Message string          `json:"message"`
	Project *domain.Project `json:"project"`
	Tasks   []*domain.Task  `json:"tasks"`
}

// @Summary Project tasks
// @Tags Projects
// @Description Non-archived tasks ordered by due date then priority
// @ModuleID listProjectTasks
// @Produce  json
// @Param id path string true "project id"
// @Success 200 {object} projectTasksResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /projects/{id}/tasks [get]
func (h *Handler) listProjectTasks(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	projectID, ok := idParam(c, "id")
	if !ok {
		return
	}

	project, tasks, err := h.services.Projects.ListTasks(c.Request.Context(), user.ID, projectID)
	if err != nil {
		serviceErrorResponse(c, err, "list project tasks failed")
		return
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	c.JSON(http.StatusOK, projectTasksResponse{
		Message: "Project tasks fetched successfully",
		Project: project,
		Tasks:   tasks,
	})
}
