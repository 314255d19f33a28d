package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/service"
	"github.com/taskhub/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/verify-email", h.verifyEmail)
		auth.POST("/login", h.login)
		auth.POST("/reset-password-request", h.resetPasswordRequest)
		auth.POST("/reset-password", h.resetPassword)
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// @Summary Register
// @Tags Auth
// @Description Creates an unverified account and sends the verification link
// @ModuleID register
// @Accept  json
// @Produce  json
// @Param input body registerRequest true "account"
// @Success 201 {object} messageResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 403 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	err := h.services.Users.Register(c.Request.Context(), service.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		serviceErrorResponse(c, err, "register failed")
		return
	}

	c.JSON(http.StatusCreated, messageResponse{Message: "Verification email sent. Please check your inbox."})
}

type verifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// @Summary Verify email
// @Tags Auth
// @Description Consumes an email-verification token
// @ModuleID verifyEmail
// @Accept  json
// @Produce  json
// @Param input body verifyEmailRequest true "token"
// @Success 200 {object} messageResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/verify-email [post]
func (h *Handler) verifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Users.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		serviceErrorResponse(c, err, "verify email failed")
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Email verified successfully"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginResponse struct {
	Message   string      `json:"message"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      domain.User `json:"user"`
}

// @Summary Login
// @Tags Auth
// @Description Issues a session token for a verified account
// @ModuleID login
// @Accept  json
// @Produce  json
// @Param input body loginRequest true "credentials"
// @Success 200 {object} loginResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	session, err := h.services.Users.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		serviceErrorResponse(c, err, "login failed")
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Message:   "Login successful",
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      session.User,
	})
}

type resetPasswordRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary Request password reset
// @Tags Auth
// @Description Sends a reset-password link to a verified account
// @ModuleID resetPasswordRequest
// @Accept  json
// @Produce  json
// @Param input body resetPasswordRequestRequest true "email"
// @Success 200 {object} messageResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/reset-password-request [post]
func (h *Handler) resetPasswordRequest(c *gin.Context) {
	var req resetPasswordRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	err := h.services.Users.RequestPasswordReset(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, messageResponse{Message: "Reset password email sent"})
	case errors.Is(err, service.ErrUserNotFound):
		errorResponse(c, http.StatusBadRequest, UserNotFoundCode)
	case errors.Is(err, service.ErrEmailNotVerified):
		errorResponse(c, http.StatusBadRequest, EmailNotVerifiedResetCode)
	case errors.Is(err, service.ErrDeliveryFailed):
		logger.Error("send reset password email failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, ResetDeliveryFailedCode)
	default:
		serviceErrorResponse(c, err, "request password reset failed")
	}
}

// Field presence is checked by the service so that the rejection order stays
// missing, token, mismatch, length.
type resetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// @Summary Reset password
// @Tags Auth
// @Description Consumes a reset-password token and sets a new password
// @ModuleID resetPassword
// @Accept  json
// @Produce  json
// @Param input body resetPasswordRequest true "token and new password"
// @Success 200 {object} messageResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/reset-password [post]
func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	err := h.services.Users.ResetPassword(c.Request.Context(), service.ResetPasswordInput{
		Token:           req.Token,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		serviceErrorResponse(c, err, "reset password failed")
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Password reset successful"})
}
