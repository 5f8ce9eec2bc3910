package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatsvg/pkg/cache"
	"github.com/matzehuels/heatsvg/pkg/pipeline"
	"github.com/matzehuels/heatsvg/pkg/server"
)

type serveOpts struct {
	addr          string
	redisAddr     string
	redisUser     string
	redisPassword string
	redisDB       int
	cacheScope    string
	noCache       bool
	maxBody       int64
}

func (c *CLI) serveCommand() *cobra.Command {
	var so serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the heatmap rendering API over HTTP",
		Long: `Serve starts an HTTP API:

  POST /render?format=svg|png|pdf|json   {"records": [...], "options": {...}}
  GET  /presets
  GET  /healthz

Rendered artifacts are cached on disk, or in redis when --redis is set so
several instances can share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &so)
		},
	}

	f := cmd.Flags()
	f.StringVar(&so.addr, "addr", ":8080", "listen address")
	f.StringVar(&so.redisAddr, "redis", "", "redis address for a shared cache, e.g. localhost:6379")
	f.StringVar(&so.redisUser, "redis-user", "", "redis username")
	f.StringVar(&so.redisPassword, "redis-password", "", "redis password")
	f.IntVar(&so.redisDB, "redis-db", 0, "redis database number")
	f.StringVar(&so.cacheScope, "cache-scope", "", "prefix for cache keys, to keep deployments sharing a cache apart")
	f.BoolVar(&so.noCache, "no-cache", false, "disable caching")
	f.Int64Var(&so.maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, so *serveOpts) error {
	logger := loggerFromContext(ctx)

	cc, backend, err := serveCache(ctx, so)
	if err != nil {
		return err
	}

	var keyer cache.Keyer
	if so.cacheScope != "" {
		keyer = cache.NewScopedKeyer(nil, so.cacheScope)
	}
	runner := pipeline.NewRunner(cc, keyer, logger)
	defer runner.Close()

	printSuccess("Serving on %s", StyleTitle.Render(so.addr))
	printKeyValue("cache", backend)
	if so.cacheScope != "" {
		printKeyValue("scope", so.cacheScope)
	}

	srv := server.New(server.Config{
		Addr:         so.addr,
		Runner:       runner,
		Logger:       logger,
		MaxBodyBytes: so.maxBody,
	})
	return srv.ListenAndServe(ctx)
}

// serveCache picks the cache backend and returns a label describing it.
func serveCache(ctx context.Context, so *serveOpts) (cache.Cache, string, error) {
	switch {
	case so.noCache:
		return cache.NewNullCache(), "disabled", nil
	case so.redisAddr != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     so.redisAddr,
			Username: so.redisUser,
			Password: so.redisPassword,
			DB:       so.redisDB,
		})
		if err != nil {
			return nil, "", fmt.Errorf("connect redis: %w", err)
		}
		return rc, "redis " + so.redisAddr, nil
	}
	cc, err := newCache(false)
	if err != nil {
		return nil, "", err
	}
	if fc, ok := cc.(*cache.FileCache); ok {
		return fc, "file " + fc.Dir(), nil
	}
	return cc, "disabled", nil
}
