package v1

import (
	"net/http"
	"time"

	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createTaskRequest struct {
	Title       string      `json:"title" binding:"required,max=200"`
	Description string      `json:"description" binding:"max=2000"`
	Status      string      `json:"status" binding:"omitempty,taskstatus"`
	Priority    string      `json:"priority" binding:"omitempty,taskpriority"`
	DueDate     *time.Time  `json:"dueDate"`
	Assignees   []uuid.UUID `json:"assignees" binding:"required,min=1"`
}

type taskResponse struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"task"`
}

// @Summary Create task
// @Tags Tasks
// @Description Creates a task and notifies assignees by email in the background
// @ModuleID createTask
// @Accept  json
// @Produce  json
// @Param id path string true "project id"
// @Param input body createTaskRequest true "task"
// @Success 201 {object} taskResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /projects/{id}/tasks [post]
func (h *Handler) createTask(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	projectID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	task, err := h.services.Tasks.Create(c.Request.Context(), user, projectID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		Assignees:   req.Assignees,
	})
	if err != nil {
		serviceErrorResponse(c, err, "create task failed")
		return
	}

	c.JSON(http.StatusCreated, taskResponse{Message: "Task created successfully", Task: task})
}
