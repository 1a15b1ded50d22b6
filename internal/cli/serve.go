package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/api"
	"github.com/matzehuels/cartesian/pkg/cache"
	"github.com/matzehuels/cartesian/pkg/state"
)

// shutdownTimeout bounds how long in-flight requests may finish.
const shutdownTimeout = 10 * time.Second

// storeFlags select a state backend.
type storeFlags struct {
	url   string
	redis string
	mongo string
	dir   string
}

// register adds the flags to cmd, or to cmd and its subcommands when
// persistent is set.
func (f *storeFlags) register(cmd *cobra.Command, persistent bool) {
	fs := cmd.Flags()
	if persistent {
		fs = cmd.PersistentFlags()
	}
	fs.StringVar(&f.url, "state", "", "state store URL (memory, file:///dir, redis://host/db, mongodb://host/db)")
	fs.StringVar(&f.redis, "redis", "", "Redis address for chart state")
	fs.StringVar(&f.mongo, "mongo", "", "MongoDB URI for chart state")
	fs.StringVar(&f.dir, "state-dir", "", "directory for chart state files")
	cmd.MarkFlagsMutuallyExclusive("state", "redis", "mongo", "state-dir")
}

// open returns the selected store, defaulting to fallback.
func (f *storeFlags) open(ctx context.Context, fallback func() (state.Store, error)) (state.Store, error) {
	switch {
	case f.url != "":
		return state.Open(ctx, f.url)
	case f.redis != "":
		s, err := state.NewRedisStore(ctx, state.RedisConfig{Addr: f.redis})
		if err != nil {
			return nil, err
		}
		return s, nil
	case f.mongo != "":
		s, err := state.NewMongoStore(ctx, state.MongoConfig{URI: f.mongo})
		if err != nil {
			return nil, err
		}
		return s, nil
	case f.dir != "":
		s, err := state.NewFileStore(f.dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return fallback()
}

// cacheFlags select the response cache.
type cacheFlags struct {
	dir     string
	entries int
	ttl     time.Duration
	off     bool
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.dir, "cache-dir", "", "cache responses on disk in this directory")
	fs.IntVar(&f.entries, "cache-entries", cache.DefaultMemoryEntries, "in-memory cache size")
	fs.DurationVar(&f.ttl, "cache-ttl", time.Hour, "response cache TTL (0 never expires)")
	fs.BoolVar(&f.off, "no-cache", false, "disable the response cache")
	cmd.MarkFlagsMutuallyExclusive("cache-dir", "no-cache")
}

func (f *cacheFlags) open() (cache.Cache, error) {
	switch {
	case f.off:
		return cache.NewNullCache(), nil
	case f.dir != "":
		c, err := cache.NewFileCache(f.dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return cache.NewMemoryCache(f.entries), nil
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr   string
		flags  chartFlags
		stores storeFlags
		caches cacheFlags
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := flags.load()
			if err != nil {
				return err
			}
			store, err := stores.open(ctx, func() (state.Store, error) { return state.NewMemoryStore(), nil })
			if err != nil {
				return err
			}
			defer store.Close()
			responses, err := caches.open()
			if err != nil {
				return err
			}
			defer responses.Close()

			handler := api.New(store,
				api.WithConfig(cfg),
				api.WithLogger(logger),
				api.WithCache(responses, caches.ttl),
			).Handler()
			srv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
			}
			errc := make(chan error, 1)
			go func() {
				logger.Info("Listening", "addr", addr)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info("Shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	flags.register(cmd)
	stores.register(cmd, false)
	caches.register(cmd)
	return cmd
}
