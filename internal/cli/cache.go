package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gqlcanvas/pkg/cache"
	"github.com/matzehuels/gqlcanvas/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cc, err := newCache(cmd.Context(), cfg.Cache, false)
			if err != nil {
				return err
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				printInfo(cmd.ErrOrStderr(), "Cache backend %q has nothing to clear", cfg.Cache.Backend)
				return nil
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			stderr := cmd.ErrOrStderr()
			printSuccess(stderr, "Cleared %d cached entries", count)
			if fc, ok := cc.(*cache.FileCache); ok {
				printDetail(stderr, "Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the render cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			switch cfg.Cache.Backend {
			case config.CacheRedis:
				printKeyValue(c.Out, "redis", cfg.Cache.Redis.Addr+"/"+fmt.Sprint(cfg.Cache.Redis.DB))
				printKeyValue(c.Out, "prefix", cfg.Cache.Redis.Prefix)
				return nil
			case config.CacheNone:
				printInfo(c.Out, "Caching is disabled")
				return nil
			}
			dir := cfg.Cache.Dir
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(c.Out, dir)
			return nil
		},
	}
}
