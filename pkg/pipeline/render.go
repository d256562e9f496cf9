package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/Babdus/protolanguage-v2/pkg/render/nodelink"
	"github.com/Babdus/protolanguage-v2/pkg/render/radial/layout"
	"github.com/Babdus/protolanguage-v2/pkg/render/radial/sink"
	"github.com/Babdus/protolanguage-v2/pkg/tree"
)

// Render generates output artifacts in the requested formats. Options must
// have been validated.
func Render(ctx context.Context, l layout.Layout, root *tree.Node, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	if opts.VizType == VizNodelink || slices.Contains(opts.Formats, FormatDOT) {
		dot = nodelink.ToDOT(root, nodelink.Options{Detailed: opts.Detailed})
	}

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			if opts.VizType == VizNodelink {
				data, err = nodelink.RenderSVG(ctx, dot)
			} else {
				data, err = sink.RenderSVG(l, svgOpts...)
			}
		case FormatPDF:
			if opts.VizType == VizNodelink {
				data, err = nodelink.RenderPDF(ctx, dot)
			} else {
				data, err = sink.RenderPDF(l, sink.WithPDFSVGOptions(svgOpts...))
			}
		case FormatPNG:
			if opts.VizType == VizNodelink {
				data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
			} else {
				data, err = sink.RenderPNG(l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
			}
		case FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONLinkStyle(opts.Style()), sink.WithJSONTitle(opts.Title))
		case FormatHTML:
			var htmlOpts []sink.HTMLOption
			if opts.Title != "" {
				htmlOpts = append(htmlOpts, sink.WithHTMLTitle(opts.Title))
			}
			data, err = sink.RenderHTML(root, htmlOpts...)
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithLinkStyle(opts.Style())}
	if opts.Width > 0 || opts.Height > 0 {
		svgOpts = append(svgOpts, sink.WithSize(opts.Width, opts.Height))
	}
	if opts.Margin > 0 {
		svgOpts = append(svgOpts, sink.WithMargin(opts.Margin))
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	return svgOpts
}
