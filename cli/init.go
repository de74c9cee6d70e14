package cli

import (
	"errors"
	"strings"

	"github.com/0x6flab/namegenerator"
	"github.com/absmach/edgefl/pkg/fl"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var namegen = namegenerator.NewGenerator()

// NewInitCmd returns the command that registers nodes and an index.
func NewInitCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "init",
		Short: "Initialize EDGEFL with node URLs and an index",
		Long: "Register participating node URLs and the index they train on.\n" +
			"Usage:\n" +
			"\tedgefl init --node http://localhost:8081 --node http://localhost:8082 --index digits\n" +
			"\tedgefl init -i\n",
		Run: func(cmd *cobra.Command, args []string) {
			index, _ := cmd.Flags().GetString("index")
			nodes, _ := cmd.Flags().GetStringSlice("node")
			module, _ := cmd.Flags().GetString("module")
			moduleFile, _ := cmd.Flags().GetString("module-file")
			dbName, _ := cmd.Flags().GetString("db-name")
			interactive, _ := cmd.Flags().GetBool("interactive")
			generate, _ := cmd.Flags().GetBool("generate-index")

			switch {
			case generate:
				index = namegen.Generate()
			case index == "":
				index = defaults.Index
			}
			if len(nodes) == 0 {
				nodes = defaults.Nodes
			}

			if interactive {
				var err error
				if index, nodes, err = initForm(index, nodes); err != nil {
					logErrorCmd(*cmd, err)
					return
				}
			}

			req := fl.InitRequest{
				NodeURLs:   nodes,
				Index:      index,
				Module:     module,
				ModuleFile: moduleFile,
				DBName:     dbName,
			}
			resp, err := sdk.Init(cmd.Context(), req)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, resp)
		},
	}

	cmd.Flags().StringP("index", "x", "", "Index name (defaults to the configured index)")
	cmd.Flags().StringSliceP("node", "n", []string{}, "Node URL, repeat for every participating node")
	cmd.Flags().String("module", "", "Training module to deploy")
	cmd.Flags().String("module-file", "", "Path of the module file on the server")
	cmd.Flags().String("db-name", "", "Database backing the index")
	cmd.Flags().BoolP("interactive", "i", false, "Fill in the index and node URLs in a form")
	cmd.Flags().Bool("generate-index", false, "Use a freshly generated index name")

	return &cmd
}

func initForm(index string, nodes []string) (string, []string, error) {
	urls := strings.Join(nodes, "\n")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Index").
				Value(&index).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("index is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Node URLs").
				Description("One URL per line").
				Value(&urls).
				Validate(func(s string) error {
					if len(fl.CleanNodeURLs(strings.Split(s, "\n"))) == 0 {
						return errors.New("at least one node URL is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", nil, err
	}

	return index, fl.CleanNodeURLs(strings.Split(urls, "\n")), nil
}
