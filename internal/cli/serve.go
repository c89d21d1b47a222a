package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP playground",
		Long: `Serve exposes the resolver as a JSON API and serves the placement gallery
and state charts:

  GET  /healthz
  GET  /api/v1/placements
  POST /api/v1/resolve
  GET  /gallery.svg
  GET  /states/{mode}.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config
			if addr != "" {
				cfg.Server.Addr = addr
			}
			printNextStep("Gallery", "http://"+displayAddr(cfg.Server.Addr)+"/gallery.svg")
			return server.Run(cmd.Context(), server.Options{Config: cfg, Logger: c.Logger})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config server.addr)")
	return cmd
}

// displayAddr turns a listen address such as ":8080" into a browsable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
