package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Babdus/protolanguage-v2/pkg/cache"
	treeio "github.com/Babdus/protolanguage-v2/pkg/io"
	"github.com/Babdus/protolanguage-v2/pkg/observability"
	"github.com/Babdus/protolanguage-v2/pkg/render/radial/layout"
	"github.com/Babdus/protolanguage-v2/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration

	layoutCache   cache.Cache
	artifactCache cache.Cache
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
		Cache:         c,
		Keyer:         keyer,
		Logger:        logger,
		TTL:           DefaultTTL,
		layoutCache:   cache.Observed(c, "layout"),
		artifactCache: cache.Observed(c, "artifact"),
	}
}

// Load reads and validates the tree at src. Any failure aborts the run
// before layout.
func (r *Runner) Load(ctx context.Context, src string) (*tree.Node, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, src)
	start := time.Now()

	root, err := treeio.LoadTree(ctx, src)
	count := 0
	if err == nil {
		count = root.Count()
	}
	hooks.OnLoadComplete(ctx, src, count, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded tree", "source", src, "nodes", count)
	return root, nil
}

// Execute runs layout and render for root.
func (r *Runner) Execute(ctx context.Context, root *tree.Node, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := tree.Validate(root); err != nil {
		return nil, err
	}

	data, err := treeio.MarshalJSON(root)
	if err != nil {
		return nil, fmt.Errorf("hash tree: %w", err)
	}
	result := &Result{TreeHash: cache.Hash(data)}
	result.Stats.Summarize(root)

	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, root, result.TreeHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(l.Nodes),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, root, result.TreeHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the layout of root, reading and filling the
// cache. Decoded layouts carry no Trees.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, root *tree.Node, treeHash string, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Layout{}, false, err
	}
	key := r.Keyer.LayoutKey(treeHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.layoutCache.Get(ctx, key); err == nil && hit {
			var cached layout.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, true, nil
			}
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, root.Count())
	start := time.Now()

	var layoutOpts []layout.Option
	if opts.BranchLengths {
		layoutOpts = append(layoutOpts, layout.WithBranchLengths())
	}
	if opts.LeavesAligned {
		layoutOpts = append(layoutOpts, layout.WithLeavesAligned())
	}
	l, err := layout.Build(root, opts.Radius, layoutOpts...)
	hooks.OnLayoutComplete(ctx, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if data, err := json.Marshal(l); err == nil {
		if err := r.layoutCache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "key", "layout", "error", err)
		}
	}
	return l, false, nil
}

// RenderWithCacheInfo produces every requested format, reading and filling
// the cache. The render hit flag is set only when every format was cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, root *tree.Node, treeHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.artifactCache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, l, root, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
		if err := r.artifactCache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "key", "artifact", "format", format, "error", err)
		}
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
