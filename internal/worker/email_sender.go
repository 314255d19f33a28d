package worker

import (
	"context"
	"fmt"

	"github.com/taskhub/backend/internal/queue/task"
	"github.com/taskhub/backend/internal/service"
	"github.com/taskhub/backend/pkg/logger"

	"go.uber.org/zap"
)

type emailSender struct {
	mailer TaskAssignedMailer
}

func newEmailSender(mailer TaskAssignedMailer) *emailSender {
	return &emailSender{
		mailer: mailer,
	}
}

func (s *emailSender) SendTaskAssignedEmail(ctx context.Context, data task.TaskAssignedEmail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	input := service.TaskAssignedEmailInput{
		Email:        data.Email,
		Name:         data.Name,
		AssignedBy:   data.AssignedBy,
		ProjectID:    data.ProjectID,
		ProjectTitle: data.ProjectTitle,
		TaskTitle:    data.TaskTitle,
		Priority:     data.Priority,
		DueDate:      data.DueDate,
	}

	if err := s.mailer.SendTaskAssignedEmail(input); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	logger.Debug("task assigned email sent", zap.String("task_id", data.TaskID.String()), zap.String("to", data.Email))

	return nil
}
