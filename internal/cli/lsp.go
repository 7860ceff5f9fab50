package cli

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/matzehuels/cargoassist/internal/lsp"
	"github.com/matzehuels/cargoassist/pkg/buildinfo"
)

// lspCommand creates the lsp command.
func (c *CLI) lspCommand() *cobra.Command {
	var (
		tcp   string
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server",
		Long: `Serve textDocument/completion for Cargo.toml files over stdio, or over TCP
with --tcp. Point your editor's LSP client at "cargoassist lsp".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// glsp logs through commonlog; stdout belongs to the protocol.
			verbosity := 0
			if debug {
				verbosity = 2
			}
			commonlog.Configure(verbosity, nil)

			st, err := c.newStack(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			srv := lsp.New(st.engine, loggerFromContext(cmd.Context()), buildinfo.Version)
			if tcp != "" {
				c.Logger.Info("Language server listening", "addr", tcp)
				return srv.RunTCP(tcp, debug)
			}
			return srv.RunStdio(debug)
		},
	}

	cmd.Flags().StringVar(&tcp, "tcp", "", "listen on this TCP address instead of stdio")
	cmd.Flags().BoolVar(&debug, "debug", false, "log protocol traffic")
	return cmd
}
