package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/yourorg/bragboard-client/internal/client"
	"github.com/yourorg/bragboard-client/internal/config"
	"github.com/yourorg/bragboard-client/internal/localstate"
	"github.com/yourorg/bragboard-client/internal/model"
	"github.com/yourorg/bragboard-client/internal/notify"
	"github.com/yourorg/bragboard-client/internal/session"
	"github.com/yourorg/bragboard-client/internal/theme"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Open local state storage
	store, err := localstate.Open(cfg.State.Path, logger)
	if err != nil {
		logger.Fatal("Failed to open local state", zap.Error(err))
	}
	defer store.Close()

	creds := localstate.NewCredentials(store)

	// Create API clients
	api := client.New(cfg.API.BaseURL, cfg.API.Timeout, creds, logger)
	authClient := client.NewAuthClient(api)
	userClient := client.NewUserClient(api)
	notificationClient := client.NewNotificationClient(api)

	// Restore the session from persisted credentials
	sess := session.NewStore(authClient, userClient, creds, logger)

	// Create the notification poller; it runs only while signed in
	poller := notify.New(notificationClient, nil, cfg.Notifications.PollInterval, cfg.Notifications.FetchLimit, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start polling while a user is signed in, stop on sign-out
	sess.OnChange(func(user *model.User) {
		if user != nil {
			poller.Start(ctx)
		} else {
			poller.Stop()
		}
	})

	// Apply the persisted display preference, falling back to the configured
	// system signal
	themeCtl := theme.NewController(
		store,
		theme.NewFixedSource(theme.Mode(cfg.Theme.SystemMode)),
		theme.ApplierFunc(func(mode theme.Mode) {
			logger.Info("Applied display mode", zap.String("mode", string(mode)))
		}),
		logger,
	)
	defer themeCtl.Close()

	sess.Initialize(ctx)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down client...")
	poller.Stop()
	logger.Info("Client exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// Create logger config
	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
