package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/locallibrary/internal/entrypoint"
)

func newServeCmd() *cobra.Command {
	var (
		host string
		port int32
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default when no command is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("host") {
				cfg.HTTP.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.HTTP.Port = port
			}
			return runServe()
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen address, overrides HOST")
	cmd.Flags().Int32Var(&port, "port", 0, "Listen port, overrides PORT")
	return cmd
}

func runServe() error {
	return entrypoint.Run(cfg, version)
}
