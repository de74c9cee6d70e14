package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/absmach/edgefl"
	"github.com/absmach/edgefl/cli"
	"github.com/absmach/edgefl/client"
	"github.com/absmach/edgefl/pkg/mqtt"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		configPath string
		serverURL  string
		logLevel   string
	)

	rootCmd := &cobra.Command{
		Use:   "edgefl",
		Short: "EDGEFL federated learning client",
		Long:  `Initialize nodes, drive federated training and submit inputs for inference.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := edgefl.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if serverURL != "" {
				cfg.ServerURL = serverURL
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			cli.SetLogger(configureLogger(cfg.LogLevel))
			cli.SetSDK(client.New(cfg.ServerURL, client.WithTimeout(cfg.RequestTimeout)))
			cli.SetDefaults(cli.Defaults{
				Index:         cfg.Index,
				Nodes:         cfg.Nodes,
				EventsTopic:   cfg.MQTT.Topic,
				DecodeTimeout: cfg.DecodeTimeout,
			})
			cli.SetMQTTConfig(mqtt.Config{
				URL:      cfg.MQTT.URL,
				ClientID: cfg.MQTT.ClientID,
				Username: cfg.MQTT.Username,
				Password: cfg.MQTT.Password,
				Timeout:  cfg.MQTT.Timeout,
				CAPath:   cfg.MQTT.CAPath,
				CertPath: cfg.MQTT.CertPath,
				KeyPath:  cfg.MQTT.KeyPath,
			})

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a TOML profile (defaults to $"+edgefl.ConfigEnv+")")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "Server URL (defaults to localhost:8080)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		cli.NewInitCmd(),
		cli.NewTrainCmd(),
		cli.NewInferCmd(),
		cli.NewNormalizeCmd(),
		cli.NewNodesCmd(),
		cli.NewSampleCmd(),
		cli.NewEventsCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}

func configureLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		log.Printf("Invalid log level: %s. Defaulting to info.\n", level)
		logLevel = slog.LevelInfo
	}

	logHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(logHandler)
}
