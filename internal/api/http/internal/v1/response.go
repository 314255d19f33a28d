package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/taskhub/backend/internal/service"
	"github.com/taskhub/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type messageResponse struct {
	Message string `json:"message"`
}

func errorResponse(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		errorResponse(c, http.StatusBadRequest, InvalidRequestCode)
		return
	}

	out := make([]ValidationError, len(verr))
	for i, ferr := range verr {
		out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
	}
	response := ValidationErrorStruct{
		ErrorCode:    ValidationErrorCode,
		ErrorMessage: ValidationErrorMessage,
	}
	response.Errors = out
	c.AbortWithStatusJSON(http.StatusBadRequest, response)
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "uuid":
		return "Invalid id"
	case "min":
		return fmt.Sprintf("Must be at least %v characters long", value)
	case "max":
		return fmt.Sprintf("Must be at most %v characters long", value)
	case "color":
		return "Invalid hex color"
	case "projectstatus", "taskstatus", "taskpriority", "projectrole":
		return "Unsupported value"
	}
	return tag
}

type serviceError struct {
	err    error
	status int
	code   ErrorCode
}

// serviceErrors is checked in order; the first match wins.
var serviceErrors = []serviceError{
	{service.ErrDeliveryFailed, http.StatusInternalServerError, EmailDeliveryFailedCode},
	{service.ErrUserAlreadyExist, http.StatusBadRequest, UserAlreadyExistsCode},
	{service.ErrRegistrationDenied, http.StatusForbidden, RegistrationDeniedCode},
	{service.ErrUserNotFound, http.StatusNotFound, UserNotFoundCode},
	{service.ErrInvalidToken, http.StatusUnauthorized, InvalidTokenCode},
	{service.ErrInvalidTokenPurpose, http.StatusUnauthorized, InvalidTokenPurposeCode},
	{service.ErrTokenNotFound, http.StatusBadRequest, TokenNotFoundCode},
	{service.ErrEmailAlreadyVerified, http.StatusBadRequest, EmailAlreadyVerifiedCode},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, InvalidCredentialsCode},
	{service.ErrEmailNotVerified, http.StatusBadRequest, EmailNotVerifiedCode},
	{service.ErrVerificationResent, http.StatusBadRequest, VerificationResentCode},
	{service.ErrMissingFields, http.StatusBadRequest, MissingFieldsCode},
	{service.ErrPasswordsMismatch, http.StatusBadRequest, PasswordsMismatchCode},
	{service.ErrPasswordTooShort, http.StatusBadRequest, PasswordTooShortCode},

	{service.ErrWorkspaceNotFound, http.StatusNotFound, WorkspaceNotFoundCode},
	{service.ErrNotWorkspaceMember, http.StatusUnauthorized, NotWorkspaceMemberCode},
	{service.ErrMemberNotInWorkspace, http.StatusBadRequest, MemberNotInWorkspaceCode},
	{service.ErrProjectNotFound, http.StatusNotFound, ProjectNotFoundCode},
	{service.ErrNotProjectMember, http.StatusUnauthorized, NotProjectMemberCode},
	{service.ErrInvalidDateRange, http.StatusBadRequest, InvalidDateRangeCode},
	{service.ErrAssigneeNotMember, http.StatusBadRequest, AssigneeNotMemberCode},
}

// serviceErrorResponse maps a service error to its status and body. Anything unknown
// is logged and reported as a bare 500.
func serviceErrorResponse(c *gin.Context, err error, msg string) {
	for _, se := range serviceErrors {
		if errors.Is(err, se.err) {
			if se.status >= http.StatusInternalServerError {
				logger.Error(msg, zap.Error(err))
			}
			errorResponse(c, se.status, se.code)
			return
		}
	}

	logger.Error(msg, zap.Error(err))
	errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
}
