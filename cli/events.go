package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/absmach/edgefl/pkg/mqtt"
	"github.com/spf13/cobra"
)

var errNoBroker = errors.New("no MQTT broker configured, set EDGEFL_MQTT_URL")

var newPubSub = mqtt.NewPubSub

// NewEventsCmd returns the command group for gateway submission events.
func NewEventsCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "events [watch]",
		Short: "Submission events published by the gateway",
		Long:  ``,
	}

	watchCmd := cobra.Command{
		Use:   "watch",
		Short: "Print submission events as they arrive",
		Long:  `Subscribe to the events topic and print every event until interrupted.`,
		Run: func(cmd *cobra.Command, args []string) {
			topic, _ := cmd.Flags().GetString("topic")
			if err := watchEvents(cmd, topic); err != nil {
				logErrorCmd(*cmd, err)
			}
		},
	}
	watchCmd.Flags().StringP("topic", "t", "", "Topic to watch (defaults to the configured events topic)")
	cmd.AddCommand(&watchCmd)

	return &cmd
}

func watchEvents(cmd *cobra.Command, topic string) error {
	if mqttCfg.URL == "" {
		return errNoBroker
	}
	if topic == "" {
		topic = defaults.EventsTopic
	}

	cfg := mqttCfg
	if cfg.ClientID == "" {
		cfg.ClientID = "edgefl-watch-" + namegen.Generate()
	}

	ps, err := newPubSub(cfg, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := ps.Subscribe(ctx, topic, func(_ string, msg map[string]any) error {
		logJSONCmd(*cmd, msg)
		return nil
	}); err != nil {
		return err
	}
	logOKCmd(*cmd, fmt.Sprintf("watching %s", topic))

	<-ctx.Done()

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ps.Unsubscribe(shutdown, topic); err != nil {
		logger.Warn("Failed to unsubscribe", slog.String("topic", topic), slog.Any("error", err))
	}

	return ps.Disconnect(shutdown)
}
