// Package pipeline runs the load → layout → render stages behind the CLI
// and the HTTP service.
//
// # Architecture
//
//  1. Load: read and validate the tree (file, stdin or URL)
//  2. Layout: assign polar coordinates to every node
//  3. Render: produce each requested output format
//
// A malformed tree or an unavailable source aborts the run before anything
// is drawn. Layouts and artifacts are cached under a content hash of the
// tree and the options that influence them.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	root, err := runner.Load(ctx, "tree.json")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, root, pipeline.Options{
//	    LinkStyle: "arc",
//	    Formats:   []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Babdus/protolanguage-v2/pkg/cache"
	"github.com/Babdus/protolanguage-v2/pkg/errors"
	"github.com/Babdus/protolanguage-v2/pkg/render/radial"
	"github.com/Babdus/protolanguage-v2/pkg/tree"
)

const (
	// DefaultRadius is the outer radius of the layout in SVG user units.
	DefaultRadius = 300.0

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultTTL is how long layouts and artifacts stay cached.
	DefaultTTL = 7 * 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatHTML = "html"
	FormatDOT  = "dot"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatJSON, FormatHTML, FormatDOT, FormatPDF, FormatPNG}

// Visualization types.
const (
	VizRadial   = "radial"
	VizNodelink = "nodelink"
)

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Radius        float64 `json:"radius,omitempty"`
	BranchLengths bool    `json:"branch_lengths,omitempty"`
	LeavesAligned bool    `json:"leaves_aligned,omitempty"`

	// Render options
	VizType   string   `json:"viz_type,omitempty"`
	LinkStyle string   `json:"link_style,omitempty"`
	Formats   []string `json:"formats,omitempty"`
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	Margin    float64  `json:"margin,omitempty"` // 0 means the sink default
	Title     string   `json:"title,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"` // Branch lengths and metadata in DOT labels
	Scale     float64  `json:"scale,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"` // Skip cache reads

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	linkStyle radial.LinkStyle
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// TreeHash is the content hash of the input tree.
	TreeHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LeafCount  int
	Depth      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if vizType != VizRadial && vizType != VizNodelink {
		return errors.New(errors.ErrCodeInvalidInput, "invalid viz_type: %q (must be one of: radial, nodelink)", vizType)
	}
	return nil
}

// Copy returns o with its validation state cleared, so fields changed on
// the copy are checked again.
func (o Options) Copy() Options {
	o.Formats = slices.Clone(o.Formats)
	o.linkStyle = 0
	o.validated = false
	return o
}

// ValidateAndSetDefaults applies defaults and checks every field. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.VizType == "" {
		o.VizType = VizRadial
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

	style, err := radial.ParseLinkStyle(o.LinkStyle)
	if err != nil {
		return err
	}
	o.linkStyle = style
	o.LinkStyle = style.String()

	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for name, v := range map[string]float64{"radius": o.Radius, "width": o.Width, "height": o.Height, "margin": o.Margin, "scale": o.Scale} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be a finite non-negative number, got %v", name, v)
		}
	}
	if o.Radius == 0 || o.Scale == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "radius and scale must be positive")
	}

	o.validated = true
	return nil
}

// Style returns the parsed link style. It is valid after
// ValidateAndSetDefaults.
func (o *Options) Style() radial.LinkStyle { return o.linkStyle }

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Radius:        o.Radius,
		BranchLengths: o.BranchLengths,
		LeavesAligned: o.LeavesAligned,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Layout:    o.LayoutKeyOpts(),
		VizType:   o.VizType,
		Format:    format,
		LinkStyle: o.LinkStyle,
		Width:     o.Width,
		Height:    o.Height,
		Margin:    o.Margin,
		Scale:     o.Scale,
		Detailed:  o.Detailed,
		Title:     o.Title,
	}
}

// Summarize fills the tree statistics of s.
func (s *Stats) Summarize(root *tree.Node) {
	s.NodeCount = root.Count()
	s.LeafCount = len(root.Leaves())
	s.Depth = root.Depth()
}
