package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/absmach/edgefl"
	"github.com/absmach/edgefl/client"
	"github.com/absmach/edgefl/events"
	"github.com/absmach/edgefl/gateway"
	"github.com/absmach/edgefl/gateway/api"
	"github.com/absmach/edgefl/normalizer"
	"github.com/absmach/edgefl/pkg/metrics"
	"github.com/absmach/edgefl/pkg/mqtt"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

const (
	svcName         = "edgefl-gateway"
	shutdownTimeout = 10 * time.Second
)

var configPath string

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	flag.StringVar(&configPath, "config", "", "Path to a TOML profile")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := edgefl.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := configureLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("Starting EDGEFL gateway", slog.String("server_url", client.ServerURL(cfg.ServerURL)))

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer closeCancel()
		if err := publisher.Close(closeCtx); err != nil {
			logger.Warn("Failed to close event publisher", slog.Any("error", err))
		}
	}()

	norm := normalizer.NewService()
	norm = normalizer.TracingMiddleware(norm, otel.Tracer(svcName))
	normCounter, normLatency := metrics.NormalizerMetrics("edgefl")
	norm = normalizer.MetricsMiddleware(norm, normCounter, normLatency)
	norm = normalizer.LoggingMiddleware(norm, logger)

	sdk := client.New(cfg.ServerURL, client.WithTimeout(cfg.RequestTimeout))

	svc := gateway.NewService(norm, sdk, publisher, cfg.DecodeTimeout, logger)
	counter, latency := metrics.MakeMetrics("edgefl", "gateway")
	svc = gateway.MetricsMiddleware(svc, counter, latency)
	svc = gateway.LoggingMiddleware(svc, logger)

	server := &http.Server{
		Addr:              cfg.Gateway.Addr(),
		Handler:           api.MakeHandler(svc, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Gateway listening", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("gateway server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down gateway")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newPublisher(cfg edgefl.Config, logger *slog.Logger) (events.Publisher, error) {
	if !cfg.MQTTEnabled() {
		logger.Info("No MQTT broker configured, submission events are disabled")

		return events.NewNoopPublisher(), nil
	}

	clientID := cfg.MQTT.ClientID
	if clientID == "" {
		clientID = svcName
	}

	ps, err := mqtt.NewPubSub(mqtt.Config{
		URL:         cfg.MQTT.URL,
		ClientID:    clientID,
		Username:    cfg.MQTT.Username,
		Password:    cfg.MQTT.Password,
		StatusTopic: mqtt.StatusTopic(cfg.MQTT.Topic),
		Timeout:     cfg.MQTT.Timeout,
		CAPath:      cfg.MQTT.CAPath,
		CertPath:    cfg.MQTT.CertPath,
		KeyPath:     cfg.MQTT.KeyPath,
	}, logger)
	if err != nil {
		return nil, err
	}

	return events.NewMQTTPublisher(ps, cfg.MQTT.Topic), nil
}

func configureLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		log.Printf("Invalid log level: %s. Defaulting to info.\n", level)
		logLevel = slog.LevelInfo
	}

	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(logHandler)
}
