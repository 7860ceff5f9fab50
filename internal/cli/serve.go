package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cargoassist/internal/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP completion API",
		Long: `Serve POST /v1/complete, POST /v1/scan, GET /v1/stats and GET /healthz.
The address defaults to the listen key of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStack(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			addr := st.cfg.Listen
			if listen != "" {
				addr = listen
			}
			c.Logger.Info("API listening", "addr", addr, "backend", st.cfg.Backend)
			return api.New(st.engine, st.data, loggerFromContext(ctx)).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides the config file)")
	return cmd
}
