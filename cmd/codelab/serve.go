package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	codelab "github.com/goliatone/go-codelab"
)

func newServeCommand(state *cliState) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the site, watch for changes, and serve it locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flag overrides require rebuilding the module so the preview
			// server and its rebuild loop share the same configuration.
			if host != "" || port != 0 {
				cfg := state.cfg
				if host != "" {
					cfg.Preview.Host = host
				}
				if port != 0 {
					cfg.Preview.Port = port
				}
				module, err := codelab.New(cfg)
				if err != nil {
					return err
				}
				state.cfg = module.Config()
				state.module = module
			}

			server, err := state.module.Preview()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cmd.Printf("serving %s on http://%s\n", state.cfg.Build.OutputDir, server.Addr())
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "interface to bind the preview server to")
	cmd.Flags().IntVar(&port, "port", 0, "port for the preview server")
	return cmd
}
