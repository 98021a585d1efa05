package cli

import (
	"github.com/spf13/cobra"

	"github.com/thoree/pedtools/internal/server"
)

// serveCommand creates the serve command for running the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pedigree HTTP server",
		Long: `Serve starts an HTTP server that accepts pedigree definitions via POST
/pedigrees and exposes stored pedigrees as tables and SVG diagrams.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			artifacts, err := newCache(noCache)
			if err != nil {
				return err
			}
			defer artifacts.Close()

			srv := server.New(artifacts, c.Logger)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the rendered-diagram cache")
	return cmd
}
