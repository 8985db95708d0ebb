package commands

import (
	"github.com/spf13/cobra"

	"github.com/nwgo/networth-projector/internal/web"
)

func newServeCommand() *cobra.Command {
	var (
		addr  string
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		Long:  "Starts an HTTP server exposing POST /api/project, GET /healthz, and GET /metrics.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := web.NewServer(addr, newLogger(debug))
			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}
