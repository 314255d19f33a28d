package main

import (
	"os"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/queue/asynqserver"
	"github.com/taskhub/backend/internal/service"
	"github.com/taskhub/backend/internal/worker"
	"github.com/taskhub/backend/pkg/email/smtp"
	"github.com/taskhub/backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()

	logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting taskhub worker", zap.String("env", cfg.Env))

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.FromName, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		logger.Error("smtp sender creation failed", zap.Error(err))
		os.Exit(1)
	}

	workers := worker.NewWorkers(worker.Deps{
		EmailService: service.NewEmailService(emailSender, cfg.Email, cfg.Auth.JWT),
	})

	srv, mux := asynqserver.New(cfg, workers)

	// Run blocks until SIGTERM or SIGINT and shuts the server down.
	if err := srv.Run(mux); err != nil {
		logger.Error("asynq server stopped with error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("worker stopped")
}
