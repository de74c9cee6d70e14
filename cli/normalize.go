package cli

import (
	"fmt"
	"os"

	"github.com/absmach/edgefl/normalizer"
	smqerrors "github.com/absmach/supermq/pkg/errors"
	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatCBOR = "cbor"
)

var errFormat = smqerrors.New("unsupported output format")

type tensorDoc struct {
	Shape []int `json:"shape" cbor:"shape"`
	Input any   `json:"input" cbor:"input"`
}

// NewNormalizeCmd returns the command that prints the tensor an input
// normalizes to, without contacting the server.
func NewNormalizeCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "normalize",
		Short: "Normalize an input into the tensor sent for inference",
		Long: "Normalize a JSON array, PNG image or drawn grid and print the tensor.\n" +
			"Usage:\n" +
			"\tedgefl normalize --file chest.png --format cbor --out chest.cbor\n",
		Run: func(cmd *cobra.Command, args []string) {
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")

			raw, err := readInput(cmd)
			if err != nil {
				logErrorCmd(*cmd, err)
				logUsageCmd(*cmd, cmd.Use+" [--json TEXT | --file PATH | --grid PATH | --sample] [--format json|cbor]")
				return
			}

			tensor, err := normalizeInput(cmd, raw)
			if err != nil {
				logErrorCmd(*cmd, smqerrors.Wrap(errNormalize, err))
				return
			}

			data, err := encodeTensor(tensor, format)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			if out == "" {
				if format == formatJSON {
					logJSONCmd(*cmd, tensorDoc{Shape: tensor.Shape, Input: tensor.Value()})
					return
				}
				_, _ = cmd.OutOrStdout().Write(data)
				return
			}

			if err := os.WriteFile(out, data, 0o644); err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logOKCmd(*cmd, fmt.Sprintf("wrote %s tensor %v to %s", format, tensor.Shape, out))
		},
	}

	cmd.Flags().String("format", formatJSON, "Output format: json or cbor")
	cmd.Flags().StringP("out", "o", "", "Write the tensor to this file instead of stdout")
	addInputFlags(&cmd)

	return &cmd
}

func encodeTensor(t normalizer.Tensor, format string) ([]byte, error) {
	doc := tensorDoc{Shape: t.Shape, Input: t.Value()}

	switch format {
	case formatJSON:
		return json.Marshal(doc)
	case formatCBOR:
		return cbor.Marshal(doc)
	default:
		return nil, smqerrors.Wrap(errFormat, fmt.Errorf("%q", format))
	}
}
