package cli

import (
	"fmt"

	"github.com/absmach/edgefl/normalizer"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// NewSampleCmd returns the command that prints a random 28x28 array, ready
// to be passed to --json.
func NewSampleCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "sample",
		Short: "Generate a random 28x28 sample array",
		Long:  ``,
		Run: func(cmd *cobra.Command, args []string) {
			seed, _ := cmd.Flags().GetUint64("seed")

			data, err := json.Marshal(normalizer.SampleGrid(newRand(seed)))
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		},
	}

	cmd.Flags().Uint64("seed", 0, "Random seed (0 picks one from the clock)")

	return &cmd
}
