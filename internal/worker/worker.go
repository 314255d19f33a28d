package worker

import (
	"context"

	"github.com/taskhub/backend/internal/queue/task"
	"github.com/taskhub/backend/internal/service"
)

type Workers struct {
	EmailSender EmailSender
}

type Deps struct {
	EmailService *service.EmailService
}

type EmailSender interface {
	SendTaskAssignedEmail(ctx context.Context, data task.TaskAssignedEmail) error
}

// TaskAssignedMailer is the part of service.EmailService the worker needs.
type TaskAssignedMailer interface {
	SendTaskAssignedEmail(input service.TaskAssignedEmailInput) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailService),
	}
}
