package cli

import (
	"github.com/spf13/cobra"
)

func nodesCmds() []cobra.Command {
	return []cobra.Command{
		{
			Use:   "probe",
			Short: "Check which nodes answer",
			Long:  `Send a GET to every node URL concurrently and report which ones are reachable.`,
			Run: func(cmd *cobra.Command, args []string) {
				nodes, _ := cmd.Flags().GetStringSlice("node")
				if len(nodes) == 0 {
					nodes = defaults.Nodes
				}

				statuses, err := sdk.ProbeNodes(cmd.Context(), nodes)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, statuses)
			},
		},
	}
}

// NewNodesCmd returns the node command group.
func NewNodesCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "nodes [probe]",
		Short: "Participating nodes",
		Long:  ``,
	}

	cmds := nodesCmds()
	for i := range cmds {
		cmd.AddCommand(&cmds[i])
	}

	probeCmd := &cmds[0]
	probeCmd.Flags().StringSliceP("node", "n", []string{}, "Node URL, repeat for every node (defaults to the configured nodes)")

	return &cmd
}
