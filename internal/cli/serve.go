package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gqlcanvas/internal/server"
	"github.com/matzehuels/gqlcanvas/pkg/config"
	"github.com/matzehuels/gqlcanvas/pkg/observability/prom"
	"github.com/matzehuels/gqlcanvas/pkg/store"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr    string
	mode    string
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the canvas HTTP API",
		Long: `Run the canvas HTTP API.

Canvases are kept in the store configured under [store] (memory by default)
and rendered artifacts in the cache configured under [cache]. Prometheus
metrics are served at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides [server] addr)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "default layout mode: precomputed, deferred")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	mode, err := resolveMode(cfg, opts.mode)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom.New(reg).Install()

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	st, err := newStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(server.Config{
		Runner:            runner,
		Store:             st,
		Logger:            c.Logger,
		Addr:              cfg.Server.Addr,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout.Duration,
		Mode:              mode,
		SnapshotTTL:       cfg.Store.TTL.Duration,
		Metrics:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	return srv.Serve(ctx)
}

// newStore opens the configured canvas store.
func newStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.StoreFile:
		return store.NewFileStore(cfg.Dir)
	case config.StoreMongo:
		return store.NewMongoStore(ctx, store.MongoOptions{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	case config.StoreMemory, "":
		return store.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
