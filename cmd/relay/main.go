package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"posbusRelay/internal/config"
	gwusecase "posbusRelay/internal/modules/gateway/application/usecase"
	gwinfra "posbusRelay/internal/modules/gateway/infrastructure"
	gwtransport "posbusRelay/internal/modules/gateway/interface"
	"posbusRelay/internal/modules/relay/application/handler"
	"posbusRelay/internal/modules/relay/application/port"
	"posbusRelay/internal/modules/relay/domain"
	"posbusRelay/internal/modules/relay/infrastructure"
	"posbusRelay/internal/platform/broker"
	"posbusRelay/internal/shared/auth"
	"posbusRelay/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("relay config resolved", slog.String("url", cfg.Relay.URL), slog.String("userId", cfg.Relay.UserID), slog.String("worldId", cfg.Relay.WorldID))

	// Session-scoped relay core, construido explícitamente (sin singletons).
	emitter := infrastructure.NewEmitter()
	registry := infrastructure.NewTopicRegistry()
	dispatcher := infrastructure.NewDispatcher(emitter, registry)
	adapter := infrastructure.NewAdapter(cfg.Relay.URL, cfg.Relay.Token, cfg.Relay.UserID, dispatcher)

	// Subscriber stores
	roster := handler.NewVoiceChatRoster()
	roster.Attach(emitter)
	notifications := handler.NewNotificationLog(64)
	notifications.Attach(emitter)

	if worldID := cfg.Relay.WorldID; worldID != "" {
		emitter.On(domain.EventPosBusConnected, func(domain.Event) {
			adapter.SetWorld(worldID)
		})
	}

	// Gateway fan-out plus optional Kafka archive
	hub := gwinfra.NewHub()
	commands := gwinfra.NewCommandProcessor(hub, registry)

	var sink port.EventSink
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := broker.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer publisher.Close()
		sink = publisher
		slog.Info("kafka archive enabled", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.Topic))
	}

	forward := gwusecase.NewForwardUseCase(hub, sink)
	forward.Attach(emitter)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	adapter.Start(ctx)

	// Echo server
	e := echo.New()
	e.Logger.SetOutput(log.Writer())

	validator := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	e.GET("/ws/events", gwtransport.NewEventsWebsocketHandler(hub, commands, validator))
	e.GET("/healthz", gwtransport.NewHealthHandler(adapter, registry, roster, notifications))

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	// Esperar señales
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	cancel()
	forward.Detach()
	roster.Detach()
	notifications.Detach()
	emitter.RemoveAllListeners()
	e.Close()
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
