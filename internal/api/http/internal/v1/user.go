package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initUsersRoutes(api *gin.RouterGroup) {
	users := api.Group("/users", h.userIdentityMiddleware)
	{
		users.GET("/me", h.getMe)
	}
}

// @Summary Current user
// @Tags Users
// @Description Returns the authenticated user
// @ModuleID getMe
// @Produce  json
// @Success 200 {object} domain.User
// @Failure 401 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /users/me [get]
func (h *Handler) getMe(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	me, err := h.services.Users.GetMe(c.Request.Context(), user.ID)
	if err != nil {
		serviceErrorResponse(c, err, "get me failed")
		return
	}

	c.JSON(http.StatusOK, me)
}
