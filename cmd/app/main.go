package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/taskhub/backend/internal/api/http"
	"github.com/taskhub/backend/internal/cache"
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/queue/client"
	"github.com/taskhub/backend/internal/repository"
	"github.com/taskhub/backend/internal/server"
	"github.com/taskhub/backend/internal/service"
	"github.com/taskhub/backend/internal/service/riskscreen"
	"github.com/taskhub/backend/pkg/auth"
	"github.com/taskhub/backend/pkg/email/smtp"
	"github.com/taskhub/backend/pkg/hash"
	"github.com/taskhub/backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting taskhub api", zap.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		logger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			logger.Error("error when closing", zap.Error(err))
		}
	}()
	logger.Info("mysql connection done")

	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(context.Background(), dbMySQL); err != nil {
			logger.Error("mysql migration failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("mysql migrations applied")
	}

	rdb, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		logger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer rdb.Close()

	queueClient := client.New(cfg.Cache)
	defer queueClient.Close()

	hasher := hash.NewBcryptHasher(cfg.Auth.BcryptCost)

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Error("auth manager creation err", zap.Error(err))
		os.Exit(1)
	}

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.FromName, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		logger.Error("smtp sender creation failed", zap.Error(err))
		os.Exit(1)
	}

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hasher,
		TokenManager: tokenManager,
		Repos:        repos,
		Notifier:     service.NewEmailService(emailSender, cfg.Email, cfg.Auth.JWT),
		Screener:     riskscreen.New(cfg.Risk, rdb),
		Queue:        queueClient,
	})
	handlers := apiHttp.NewHandlers(services, cfg)

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init())
	go func() {
		if err := srv.Run(); err != nil {
			logger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}

	logger.Info("app stopped")
}
