// Package pipeline turns GraphQL request bodies into canvases and renders
// them.
//
// The CLI and the API server both go through this package so that a body
// yields the same canvas and artifacts on every surface.
//
// # Stages
//
//  1. Parse: decode the body and parse the query ([query.ParseRequest])
//  2. Layout: build the layout tree and place nodes ([layout.BuildTree], [layout.Place])
//  3. Render: draw the canvas (SVG, PNG, PDF, DOT) or serialize it (JSON, output)
//
// Stages 1 and 2 are pure and are exposed as [Build]. Rendering goes through
// a [Runner], which caches graphviz output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, body, pipeline.Options{
//	    Mode:    layout.ModePrecomputed,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    // errors.UserMessage(err) is ready to show
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gqlcanvas/pkg/cache"
	"github.com/matzehuels/gqlcanvas/pkg/errors"
	"github.com/matzehuels/gqlcanvas/pkg/graph"
	"github.com/matzehuels/gqlcanvas/pkg/layout"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultScale is the PNG resolution multiplier.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG    = "svg"
	FormatPNG    = "png"
	FormatPDF    = "pdf"
	FormatDOT    = "dot"
	FormatJSON   = "json"
	FormatOutput = "output"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:    true,
	FormatPNG:    true,
	FormatPDF:    true,
	FormatDOT:    true,
	FormatJSON:   true,
	FormatOutput: true,
}

// cachedFormats are produced by graphviz and worth caching.
var cachedFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ContentTypes maps formats to their MIME types.
var ContentTypes = map[string]string{
	FormatSVG:    "image/svg+xml",
	FormatPNG:    "image/png",
	FormatPDF:    "application/pdf",
	FormatDOT:    "text/vnd.graphviz",
	FormatJSON:   "application/json",
	FormatOutput: "application/json",
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Layout options
	Mode layout.Mode `json:"mode,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)

	// Geometry overrides the layout constants. Its Mode is ignored in
	// favour of Mode above.
	Geometry *layout.Config `json:"-"`
	Logger   *log.Logger    `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Canvas is the positioned graph.
	Canvas *graph.ParsedResult

	// CanvasHash is the content hash of the serialized canvas.
	CanvasHash string

	// Warnings lists non-fatal findings: duplicate or unresolved fragments,
	// recursive spreads, an unknown operation name, ignored variables.
	Warnings []string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	VariableCount int
	ParseTime     time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, dot, json, output)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Mode == "" {
		o.Mode = layout.ModePrecomputed
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every field.
func (o *Options) Validate() error {
	o.SetDefaults()
	if _, err := layout.ParseMode(string(o.Mode)); err != nil {
		return err
	}
	if o.Scale < 0 {
		return fmt.Errorf("invalid scale: %v", o.Scale)
	}
	if o.Geometry != nil {
		if err := o.LayoutConfig().Validate(); err != nil {
			return err
		}
	}
	return ValidateFormats(o.Formats)
}

// LayoutConfig returns the layout constants for this run.
func (o *Options) LayoutConfig() layout.Config {
	cfg := layout.DefaultConfig()
	if o.Geometry != nil {
		cfg = *o.Geometry
	}
	cfg.Mode = o.Mode
	if cfg.Mode == "" {
		cfg.Mode = layout.ModePrecomputed
	}
	return cfg
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:   format,
		Mode:     string(o.Mode),
		Detailed: o.Detailed,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
