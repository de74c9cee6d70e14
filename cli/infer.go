package cli

import (
	"github.com/absmach/edgefl/pkg/fl"
	smqerrors "github.com/absmach/supermq/pkg/errors"
	"github.com/spf13/cobra"
)

var errNormalize = smqerrors.New("failed to normalize input")

// NewInferCmd returns the command that normalizes an input and submits it
// for inference.
func NewInferCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "infer",
		Short: "Run inference on a JSON array, PNG image or drawn grid",
		Long: "Normalize the input and submit it to the inference endpoint.\n" +
			"Usage:\n" +
			"\tedgefl infer --index digits --json '[[0,...],...]'\n" +
			"\tedgefl infer --index xray --file chest.png\n" +
			"\tedgefl infer --index digits --grid seven.txt\n" +
			"\tedgefl infer --index digits --sample\n",
		Run: func(cmd *cobra.Command, args []string) {
			raw, err := readInput(cmd)
			if err != nil {
				logErrorCmd(*cmd, err)
				logUsageCmd(*cmd, cmd.Use+" [--json TEXT | --file PATH | --grid PATH | --sample]")
				return
			}

			tensor, err := normalizeInput(cmd, raw)
			if err != nil {
				logErrorCmd(*cmd, smqerrors.Wrap(errNormalize, err))
				return
			}

			resp, err := sdk.Infer(cmd.Context(), fl.InferRequest{
				Input: tensor.Value(),
				Index: indexFlag(cmd),
			})
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, resp)
		},
	}

	cmd.Flags().StringP("index", "x", "", "Index name (defaults to the configured index)")
	addInputFlags(&cmd)

	return &cmd
}
