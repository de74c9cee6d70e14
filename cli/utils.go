package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/absmach/edgefl/client"
	"github.com/absmach/edgefl/pkg/mqtt"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	prettyjson "github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"
)

var (
	sdk      client.API
	logger   = slog.New(slog.NewTextHandler(io.Discard, nil))
	defaults Defaults
	mqttCfg  mqtt.Config
)

// Defaults are the values commands fall back to when a flag is not given.
type Defaults struct {
	Index         string
	Nodes         []string
	EventsTopic   string
	DecodeTimeout time.Duration
}

func SetSDK(s client.API) {
	sdk = s
}

func SetLogger(l *slog.Logger) {
	logger = l
}

func SetDefaults(d Defaults) {
	defaults = d
}

func SetMQTTConfig(cfg mqtt.Config) {
	mqttCfg = cfg
}

func logJSONCmd(cmd cobra.Command, iList ...any) {
	for _, i := range iList {
		m, err := json.Marshal(i)
		if err != nil {
			logErrorCmd(cmd, err)
			return
		}

		pj, err := prettyjson.Format(m)
		if err != nil {
			logErrorCmd(cmd, err)
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", string(pj))
	}
}

func logErrorCmd(cmd cobra.Command, err error) {
	boldRed := color.New(color.FgRed, color.Bold)
	boldRed.Fprint(cmd.ErrOrStderr(), "\nerror: ")

	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", color.RedString(err.Error()))
}

func logUsageCmd(cmd cobra.Command, u string) {
	fmt.Fprint(cmd.OutOrStdout(), color.YellowString("\nusage: %s\n\n", u))
}

func logOKCmd(cmd cobra.Command, msg string) {
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", color.BlueString(msg))
}
