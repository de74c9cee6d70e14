package cli

import (
	"github.com/absmach/edgefl/pkg/fl"
	"github.com/spf13/cobra"
)

func trainCmds() []cobra.Command {
	return []cobra.Command{
		{
			Use:   "start",
			Short: "Start a training run",
			Long:  `Start a fresh training run of --rounds rounds on an index.`,
			Run: func(cmd *cobra.Command, args []string) {
				rounds, _ := cmd.Flags().GetInt("rounds")
				minParams, _ := cmd.Flags().GetInt("min-params")

				resp, err := sdk.StartTraining(cmd.Context(), fl.TrainingRequest{
					TotalRounds: rounds,
					MinParams:   minParams,
					Index:       indexFlag(cmd),
				})
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, resp)
			},
		},
		{
			Use:   "continue",
			Short: "Continue training from the last aggregated round",
			Long:  ``,
			Run: func(cmd *cobra.Command, args []string) {
				rounds, _ := cmd.Flags().GetInt("additional-rounds")
				minParams, _ := cmd.Flags().GetInt("min-params")

				resp, err := sdk.ContinueTraining(cmd.Context(), fl.ContinueTrainingRequest{
					AdditionalRounds: rounds,
					MinParams:        minParams,
					Index:            indexFlag(cmd),
				})
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, resp)
			},
		},
		{
			Use:   "min-params",
			Short: "Change how many node updates a round waits for",
			Long:  ``,
			Run: func(cmd *cobra.Command, args []string) {
				value, _ := cmd.Flags().GetInt("value")

				resp, err := sdk.UpdateMinParams(cmd.Context(), fl.UpdateMinParamsRequest{
					UpdatedMinParams: value,
					Index:            indexFlag(cmd),
				})
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, resp)
			},
		},
	}
}

// NewTrainCmd returns the training command group.
func NewTrainCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "train [start|continue|min-params]",
		Short: "Federated training",
		Long:  `Start, continue and tune federated training runs.`,
	}

	trainCmd := trainCmds()
	for i := range trainCmd {
		trainCmd[i].Flags().StringP("index", "x", "", "Index name (defaults to the configured index)")
		cmd.AddCommand(&trainCmd[i])
	}

	startCmd := &trainCmd[0]
	startCmd.Flags().IntP("rounds", "r", fl.DefaultTotalRounds, "Total rounds (1-100)")
	startCmd.Flags().IntP("min-params", "m", fl.DefaultMinParams, "Minimum node updates per round (1-10)")

	continueCmd := &trainCmd[1]
	continueCmd.Flags().IntP("additional-rounds", "r", fl.DefaultTotalRounds, "Rounds to add (1-100)")
	continueCmd.Flags().IntP("min-params", "m", fl.DefaultMinParams, "Minimum node updates per round (1-10)")

	minParamsCmd := &trainCmd[2]
	minParamsCmd.Flags().IntP("value", "v", fl.DefaultMinParams, "New minimum node updates per round (1-10)")

	return &cmd
}

func indexFlag(cmd *cobra.Command) string {
	if index, _ := cmd.Flags().GetString("index"); index != "" {
		return index
	}

	return defaults.Index
}
