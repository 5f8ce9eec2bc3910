package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heatsvg/pkg/cache"
	"github.com/matzehuels/heatsvg/pkg/observability"
	"github.com/matzehuels/heatsvg/pkg/records"
)

// Cache key types reported to observability hooks.
const (
	keyTypeScene    = "scene"
	keyTypeArtifact = "artifact"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means DefaultKeyer, a nil cache
// disables caching and a nil logger means log.Default().
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the scene and render stages for recs.
func (r *Runner) Execute(ctx context.Context, recs []records.Record, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.Fields.Check(recs); err != nil {
		return nil, err
	}

	result := &Result{Stats: Stats{Records: len(recs)}}

	sceneKey, err := r.SceneKey(recs, opts)
	if err != nil {
		return nil, err
	}
	result.SceneKey = sceneKey

	start := time.Now()
	scene, hit := r.SceneWithCacheInfo(ctx, sceneKey, recs, opts)
	result.Scene = scene
	result.Stats.Clustered = len(scene.Points)
	result.Stats.ClusterTime = time.Since(start)
	result.CacheInfo.SceneHit = hit

	opts.Logger.Info("built scene",
		"records", len(recs),
		"clustered", len(scene.Points),
		"cached", hit,
		"duration", result.Stats.ClusterTime)

	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, sceneKey, scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Output.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SceneKey derives the scene cache key from the records' content and the
// validated options.
func (r *Runner) SceneKey(recs []records.Record, opts Options) (string, error) {
	recordsHash, err := cache.HashJSON(recs)
	if err != nil {
		return "", fmt.Errorf("hash records: %w", err)
	}
	return r.Keyer.SceneKey(recordsHash, opts.SceneKeyOpts()), nil
}

// SceneWithCacheInfo returns the scene for recs, reusing a cached one unless
// opts.Refresh is set. Cache failures are treated as misses.
func (r *Runner) SceneWithCacheInfo(ctx context.Context, key string, recs []records.Record, opts Options) (Scene, bool) {
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var s Scene
			if err := json.Unmarshal(data, &s); err == nil && s.Root != nil {
				observability.Cache().OnCacheHit(ctx, keyTypeScene)
				return s, true
			}
		} else if err != nil {
			opts.Logger.Warn("scene cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeScene)
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnClusterStart(ctx, len(recs))
	s := BuildScene(recs, opts)
	hooks.OnClusterComplete(ctx, len(recs), len(s.Points), time.Since(start))

	opts.Logger.Debug("clustered points",
		"points", len(recs),
		"clustered", len(s.Points),
		"radius", opts.Radius)

	if data, err := json.Marshal(s); err == nil {
		r.store(ctx, key, keyTypeScene, data, cache.TTLScene, opts.Logger)
	}
	return s, false
}

// RenderWithCacheInfo serializes the scene in every requested format. Only
// formats missing from the cache are rendered; the hit flag is true when none
// were.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sceneKey string, s Scene, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Output.Formats))
	var missing []string

	for _, format := range opts.Output.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(sceneKey, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, missing)
	rendered, err := Render(ctx, opts.Document(s), missing, opts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(sceneKey, opts.ArtifactKeyOpts(format))
		r.store(ctx, key, keyTypeArtifact, data, cache.TTLArtifact, opts.Logger)
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// SceneKeyOpts returns the cache key inputs for the scene stage.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	stops := make([]string, len(o.resolved))
	for i, s := range o.resolved {
		stops[i] = fmt.Sprintf("%g:%s", s.Offset, s.Color.Hex())
	}
	var blur float64
	if o.Blur != nil {
		blur = *o.Blur
	}
	return cache.SceneKeyOpts{
		Gradient:      strings.Join(stops, ","),
		Interpolation: o.Interpolation,
		PaletteSize:   o.PaletteSize,
		Radius:        o.Radius,
		Blur:          blur,
		MaxWeight:     o.MaxWeight,
		IDSuffix:      o.IDSuffix,
		Fields:        fmt.Sprintf("%s|%s|%s|%g", o.Fields.X, o.Fields.Y, o.Fields.Weight, o.Fields.MissingWeight()),
	}
}

// ArtifactKeyOpts returns the cache key inputs for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Width:      o.Output.Width,
		Height:     o.Output.Height,
		Padding:    o.Output.Padding,
		Fit:        !o.Output.Fixed,
		Background: o.Output.Background,
	}
	if format == FormatPNG {
		k.Scale = o.Output.Scale
	}
	return k
}
