package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/service"
	"github.com/taskhub/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	userCtx             = "user"
)

var errNoToken = errors.New("no token provided")

// userIdentityMiddleware resolves the bearer session token to a user record.
// A missing header or unknown user is 401, a bad or foreign-purpose token is 403.
func (h *Handler) userIdentityMiddleware(c *gin.Context) {
	token, err := parseAuthHeader(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, NoTokenProvidedCode)
		return
	}

	user, err := h.services.Users.Authenticate(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrInvalidTokenPurpose):
			errorResponse(c, http.StatusForbidden, ForbiddenCode)
		default:
			logger.Error("authenticate failed", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		}
		return
	}

	c.Set(userCtx, user)
	c.Next()
}

func parseAuthHeader(c *gin.Context) (string, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return "", errNoToken
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" || headerParts[1] == "" {
		return "", errNoToken
	}

	return headerParts[1], nil
}

func getUser(c *gin.Context) (*domain.User, error) {
	v, ok := c.Get(userCtx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	user, ok := v.(*domain.User)
	if !ok {
		return nil, errors.New("user has invalid type")
	}

	return user, nil
}

// mustUser is used by handlers mounted behind userIdentityMiddleware.
func mustUser(c *gin.Context) (*domain.User, bool) {
	user, err := getUser(c)
	if err != nil {
		logger.Error("get user from context failed", zap.Error(err))
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return nil, false
	}
	return user, true
}
