package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gqlcanvas/pkg/cache"
	"github.com/matzehuels/gqlcanvas/pkg/graph"
	"github.com/matzehuels/gqlcanvas/pkg/observability"
	"github.com/matzehuels/gqlcanvas/pkg/query"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so that caching and instrumentation live in one
// place.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL applies to cached artifacts. Defaults to cache.TTLArtifact.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Execute builds the canvas of body and renders the requested formats.
func (r *Runner) Execute(ctx context.Context, body []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result, err := r.Build(ctx, body, opts)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result.Canvas, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build parses body and lays out its canvas, emitting stage hooks.
func (r *Runner) Build(ctx context.Context, body []byte, opts Options) (*Result, error) {
	opts.SetDefaults()
	hooks := observability.Pipeline()

	parseStart := time.Now()
	hooks.OnParseStart(ctx, len(body))
	req, err := query.ParseRequest(body)
	parseTime := time.Since(parseStart)
	hooks.OnParseComplete(ctx, parseTime, err)
	if err != nil {
		return nil, err
	}

	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, string(opts.Mode))
	canvas, warnings := Assemble(req, opts.LayoutConfig())
	layoutTime := time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, string(opts.Mode), len(canvas.Nodes), len(warnings), layoutTime)

	result := newResult(canvas, warnings)
	result.Stats.ParseTime = parseTime
	result.Stats.LayoutTime = layoutTime
	if data, err := graph.MarshalResult(canvas); err == nil {
		result.CanvasHash = cache.Hash(data)
	}

	for _, w := range warnings {
		r.Logger.Warn(w)
	}
	r.Logger.Info("built canvas",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"variables", result.Stats.VariableCount,
		"mode", opts.Mode,
		"duration", parseTime+layoutTime)

	return result, nil
}

// RenderWithCacheInfo renders canvas with caching and reports whether every
// artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, canvas *graph.ParsedResult, opts Options) (map[string][]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	canvasData, err := graph.MarshalResult(canvas)
	if err != nil {
		return nil, false, fmt.Errorf("serialize canvas for cache key: %w", err)
	}
	canvasHash := cache.Hash(canvasData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !cachedFormats[format] {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(canvasHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		} else if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	start := time.Now()
	hooks.OnRenderStart(ctx, missing)
	rendered, err := Render(ctx, canvas, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if !cachedFormats[format] {
			continue
		}
		key := r.Keyer.ArtifactKey(canvasHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, canvas *graph.ParsedResult, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, canvas, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
