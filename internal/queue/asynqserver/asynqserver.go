package asynqserver

import (
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/queue/client"
	"github.com/taskhub/backend/internal/queue/processor"
	"github.com/taskhub/backend/internal/queue/task"
	"github.com/taskhub/backend/internal/worker"
	"github.com/taskhub/backend/pkg/logger"

	"github.com/hibiken/asynq"
)

func New(cfg *config.Config, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)

	concurrency := cfg.Queue.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	srv := asynq.NewServer(
		client.RedisOptions(cfg.Cache),
		asynq.Config{
			Concurrency: concurrency,
			LogLevel:    asynq.ErrorLevel,
			Logger:      logger.Logger().Sugar(),
			Queues:      queues,
		},
	)

	return srv, mux
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.TaskAssignedEmailTaskName, processor.NewTaskAssignedEmailProcessor(workers))
	queues := map[string]int{
		task.SendEmailQueueName: 1,
	}
	return mux, queues
}
