package service

import (
	"embed"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/domain"
	emailProvider "github.com/taskhub/backend/pkg/email"
	"github.com/taskhub/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templates embed.FS

const (
	verificationTemplate  = "templates/verification_email.html"
	resetPasswordTemplate = "templates/reset_password_email.html"
	taskAssignedTemplate  = "templates/task_assigned_email.html"
)

// Notifier delivers the auth flow links. Delivery is synchronous.
type Notifier interface {
	SendVerificationEmail(input LinkEmailInput) error
	SendPasswordResetEmail(input LinkEmailInput) error
}

type EmailService struct {
	sender  emailProvider.Sender
	config  config.EmailConfig
	ttl     func(domain.TokenPurpose) time.Duration
	enabled bool
}

func NewEmailService(sender emailProvider.Sender, cfg config.EmailConfig, jwt config.JWTConfig) *EmailService {
	ttl := map[domain.TokenPurpose]time.Duration{
		domain.PurposeEmailVerification: jwt.EmailVerificationTTL,
		domain.PurposeResetPassword:     jwt.ResetPasswordTTL,
	}

	return &EmailService{
		enabled: cfg.Enabled,
		sender:  sender,
		config:  cfg,
		ttl:     func(p domain.TokenPurpose) time.Duration { return ttl[p] },
	}
}

type LinkEmailInput struct {
	Email string
	Name  string
	Token string
}

type linkEmailTemplateInput struct {
	Name      string
	Link      string
	ExpiresIn string
}

func (s *EmailService) SendVerificationEmail(input LinkEmailInput) error {
	return s.sendLink(input, "Email Verification", "/verify-email", verificationTemplate, domain.PurposeEmailVerification)
}

func (s *EmailService) SendPasswordResetEmail(input LinkEmailInput) error {
	return s.sendLink(input, "Reset your password", "/reset-password", resetPasswordTemplate, domain.PurposeResetPassword)
}

func (s *EmailService) sendLink(input LinkEmailInput, subject, path, tmpl string, purpose domain.TokenPurpose) error {
	link := s.link(path, input.Token)

	if !s.enabled {
		logger.Info("email delivery disabled, link logged instead",
			zap.String("to", input.Email),
			zap.String("purpose", purpose.String()),
			zap.String("link", link),
		)
		return nil
	}

	templateInput := linkEmailTemplateInput{
		Name:      input.Name,
		Link:      link,
		ExpiresIn: humanDuration(s.ttl(purpose)),
	}
	sendInput := emailProvider.SendEmailInput{
		Subject: subject,
		To:      input.Email,
		Text:    fmt.Sprintf("Hi %s,\n\nOpen this link within %s:\n%s\n", input.Name, templateInput.ExpiresIn, link),
	}

	if err := sendInput.GenerateBodyFromHTML(templates, tmpl, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	return s.sender.Send(sendInput)
}

type TaskAssignedEmailInput struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AssignedBy   string    `json:"assigned_by"`
	ProjectID    uuid.UUID `json:"project_id"`
	ProjectTitle string    `json:"project_title"`
	TaskTitle    string    `json:"task_title"`
	Priority     string    `json:"priority"`
	DueDate      string    `json:"due_date,omitempty"`
}

type taskAssignedTemplateInput struct {
	TaskAssignedEmailInput
	Link string
}

func (s *EmailService) SendTaskAssignedEmail(input TaskAssignedEmailInput) error {
	link := strings.TrimRight(s.config.FrontendURL, "/") + "/projects/" + input.ProjectID.String()

	if !s.enabled {
		logger.Info("email delivery disabled, task assignment not sent",
			zap.String("to", input.Email),
			zap.String("task", input.TaskTitle),
		)
		return nil
	}

	sendInput := emailProvider.SendEmailInput{
		Subject: "New task: " + input.TaskTitle,
		To:      input.Email,
		Text:    fmt.Sprintf("%s assigned you %q in %s.\n%s\n", input.AssignedBy, input.TaskTitle, input.ProjectTitle, link),
	}

	if err := sendInput.GenerateBodyFromHTML(templates, taskAssignedTemplate, taskAssignedTemplateInput{input, link}); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	return s.sender.Send(sendInput)
}

func (s *EmailService) link(path, token string) string {
	return strings.TrimRight(s.config.FrontendURL, "/") + path + "?token=" + url.QueryEscape(token)
}

func humanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "a short while"
	case d%time.Hour == 0:
		if d == time.Hour {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", d/time.Hour)
	default:
		return fmt.Sprintf("%d minutes", d/time.Minute)
	}
}

var _ Notifier = (*EmailService)(nil)
