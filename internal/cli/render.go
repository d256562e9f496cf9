package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Babdus/protolanguage-v2/pkg/errors"
	treeio "github.com/Babdus/protolanguage-v2/pkg/io"
	"github.com/Babdus/protolanguage-v2/pkg/pipeline"
)

// stdoutPath makes render write a single artifact to stdout.
const stdoutPath = "-"

// defaultBase names outputs when the input is stdin or a URL.
const defaultBase = "dendrogram"

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output  string
	formats string
	noCache bool
	pipeline.Options
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <tree.json|-|URL>",
		Short: "Render a tree as a radial dendrogram",
		Long: `Render lays the tree out on concentric circles (root at the center, leaves
on the outside) and writes one file per requested format.

Links are drawn either as radial curves (--style straight) or as arcs along
the parent's circle followed by a radial segment (--style arc).`,
		Example: `  dendro render tree.json --style arc -o tree.svg
  dendro render tree.json -f svg,json,html --branch-lengths
  dendro build dist.csv | dendro render - -o - > tree.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyRenderConfig(cmd, &opts)
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", `output file (single format), base path (several), or "-" for stdout`)
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.Formats, ", ")+" (comma-separated)")
	f.StringVarP(&opts.LinkStyle, "style", "s", "", "link style: straight (default), arc")
	f.StringVar(&opts.VizType, "viz", pipeline.VizRadial, "visualization: radial, nodelink (Graphviz twopi)")
	f.Float64VarP(&opts.Radius, "radius", "r", pipeline.DefaultRadius, "outer radius of the layout")
	f.BoolVar(&opts.BranchLengths, "branch-lengths", false, "place nodes by cumulative branch length")
	f.BoolVar(&opts.LeavesAligned, "leaves-aligned", false, "push every leaf to the outer radius")
	f.Float64Var(&opts.Width, "width", 0, "SVG width (default: fit the viewBox)")
	f.Float64Var(&opts.Height, "height", 0, "SVG height (default: fit the viewBox)")
	f.Float64Var(&opts.Margin, "margin", 0, "space around the outer radius for labels")
	f.StringVar(&opts.Title, "title", "", "document title")
	f.BoolVar(&opts.Detailed, "detailed", false, "show branch lengths and metadata (nodelink)")
	f.Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	f.BoolVar(&opts.Refresh, "refresh", false, "ignore cached results but store new ones")

	_ = cmd.RegisterFlagCompletionFunc("style", cobra.FixedCompletions([]string{"straight", "arc"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("viz", cobra.FixedCompletions([]string{pipeline.VizRadial, pipeline.VizNodelink}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// applyRenderConfig fills flags the user did not set from the config file.
func (c *CLI) applyRenderConfig(cmd *cobra.Command, opts *renderOpts) {
	rc := c.config.Render
	changed := cmd.Flags().Changed
	if !changed("style") {
		opts.LinkStyle = rc.LinkStyle
	}
	if !changed("radius") && rc.Radius > 0 {
		opts.Radius = rc.Radius
	}
	if !changed("margin") {
		opts.Margin = rc.Margin
	}
	if !changed("format") && len(rc.Formats) > 0 {
		opts.formats = strings.Join(rc.Formats, ",")
	}
	if !changed("branch-lengths") {
		opts.BranchLengths = rc.BranchLengths
	}
	if !changed("leaves-aligned") {
		opts.LeavesAligned = rc.LeavesAligned
	}
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	opts.Formats = parseFormats(opts.formats)
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.output == stdoutPath && len(opts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(opts.Formats))
	}
	if opts.output == stdoutPath {
		out = os.Stderr
		defer func() { out = os.Stdout }()
	}

	runner, err := c.newRunner(ctx, opts.noCache, nil)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	root, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	result, err := runner.Execute(ctx, root, opts.Options)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", input))

	if opts.output == stdoutPath {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(opts.output, input, opts.Formats)
	for _, format := range opts.Formats {
		if filepath.Clean(paths[format]) == filepath.Clean(input) {
			return errors.New(errors.ErrCodeInvalidInput, "output %s would overwrite the input; pass -o", paths[format])
		}
	}
	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}

	printSuccess("Rendered %s", input)
	printStats(result.Stats.NodeCount, result.Stats.LeafCount, result.Stats.Depth, result.CacheInfo.RenderHit)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths maps each format to a file. A single format uses output as
// given; several formats share output's base name with one extension each.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, or derives the
// base from input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		if input == treeio.StdinSource || errors.IsURL(input) {
			return defaultBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
