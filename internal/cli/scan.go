package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "scan FILE",
		Short: "Print the dependency structure of a manifest",
		Long: `Scan a Cargo.toml and print where its [dependencies] table starts and ends,
and the line ranges of every [dependencies.<name>] table. No network access.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(args[0], 0, 0)
			if err != nil {
				return err
			}
			s := c.scanner().Structure(req.Key, req.Document)

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			renderStructure(out, args[0], s)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON")
	return cmd
}
