package main

import (
	"github.com/spf13/cobra"

	"git-guide/pkg/guide"
	"git-guide/pkg/serve"
)

func newServeCmd(a *app) *cobra.Command {
	var addr, hostKey string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the guide over SSH",
		Long: `Serve the interactive guide over SSH. Each connection gets its own session;
copying sends an OSC 52 sequence to the connecting terminal.`,
		Example: `  git-guide serve
  git-guide serve --addr 0.0.0.0:23234
  ssh -p 23234 localhost`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}
			if hostKey == "" {
				hostKey = guide.ExpandPath(cfg.Serve.HostKey)
			}
			if hostKey == "" {
				if hostKey, err = serve.DefaultHostKeyPath(); err != nil {
					return err
				}
			}

			srv, err := serve.New(serve.Config{
				Addr:        addr,
				HostKeyPath: hostKey,
				ThemeName:   cfg.Theme,
				UI: guide.UIOptions{
					StartPath:     cfg.StartRoute,
					Section:       cfg.StartSection,
					CopiedTimeout: cfg.CopiedTimeout(),
				},
				Logger: a.stderrLogger(cfg),
			})
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+guide.DefaultServeAddr+")")
	cmd.Flags().StringVar(&hostKey, "host-key", "", "SSH host key path, generated when missing")
	return cmd
}
