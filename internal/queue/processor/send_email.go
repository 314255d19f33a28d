package processor

import (
	"context"
	"encoding/json"

	"github.com/taskhub/backend/internal/queue/task"
	"github.com/taskhub/backend/internal/worker"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

type taskAssignedEmailProcessor struct {
	workers *worker.Workers
}

func NewTaskAssignedEmailProcessor(workers *worker.Workers) *taskAssignedEmailProcessor {
	return &taskAssignedEmailProcessor{
		workers: workers,
	}
}

func (p *taskAssignedEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.TaskAssignedEmail
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		// a payload that does not decode now never will
		return errors.Wrapf(asynq.SkipRetry, "process task assigned email json unmarshal failed: %v", err)
	}

	if data.Email == "" {
		return errors.Wrap(asynq.SkipRetry, "task assigned email without recipient")
	}

	if err := p.workers.EmailSender.SendTaskAssignedEmail(ctx, data); err != nil {
		return errors.Wrap(err, "send task assigned email failed")
	}

	return nil
}
