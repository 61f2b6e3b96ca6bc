package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgview/internal/server"
	"github.com/matzehuels/pkgview/pkg/observability"
	"github.com/matzehuels/pkgview/pkg/registry"
)

// serveOpts holds flag overrides for the configured server settings.
type serveOpts struct {
	addr   string
	dir    string
	origin string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve package headers over HTTP",
		Long: `Serve package headers over HTTP.

Routes:
  GET /healthz                         liveness probe
  GET /api/packages                    names in the registry directory
  GET /api/header/<package>[@version]  header JSON, ?filename= selects a file`,
		Example: `  pkgview serve --dir ./registry --addr :8080
  pkgview serve --config pkgview.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if opts.addr != "" {
				cfg.Server.Addr = opts.addr
			}
			if opts.dir != "" {
				cfg.Registry.Dir = opts.dir
			}
			if opts.origin != "" {
				cfg.Server.Origin = opts.origin
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			store, err := registry.NewFileStore(cfg.Registry.Dir)
			if err != nil {
				return err
			}

			hooks := logHooks{logger: c.Logger}
			observability.SetResolveHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			srv := server.New(store, server.Options{
				Origin: cfg.Server.Origin,
				Logger: c.Logger,
			})
			printInfo(cmd.OutOrStdout(), "serving %s on %s", store.Dir(), cfg.Server.Addr)
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr, cfg.Server.ShutdownTimeout.Duration)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "registry directory (default from config)")
	cmd.Flags().StringVar(&opts.origin, "origin", "", "origin prepended to file URLs")

	return cmd
}
