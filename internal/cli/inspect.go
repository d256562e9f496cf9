package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	treeio "github.com/Babdus/protolanguage-v2/pkg/io"
	"github.com/Babdus/protolanguage-v2/pkg/render/radial"
	"github.com/Babdus/protolanguage-v2/pkg/render/radial/layout"
)

type inspectOpts struct {
	style         string
	radius        float64
	branchLengths bool
	leavesAligned bool
	table         bool
}

func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <tree.json|-|URL>",
		Short: "Browse the computed placement of every node",
		Long: `Inspect lays the tree out and lists each node with its polar coordinates,
its rotation, and the anchor of its label. The list is interactive; pass
--table to print it instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("style") {
				opts.style = c.config.Render.LinkStyle
			}
			if !cmd.Flags().Changed("radius") {
				opts.radius = c.config.Render.Radius
			}
			return runInspect(cmd.Context(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.style, "style", "s", "straight", "link style: straight, arc")
	f.Float64VarP(&opts.radius, "radius", "r", 300, "outer radius of the layout")
	f.BoolVar(&opts.branchLengths, "branch-lengths", false, "place nodes by cumulative branch length")
	f.BoolVar(&opts.leavesAligned, "leaves-aligned", false, "push every leaf to the outer radius")
	f.BoolVar(&opts.table, "table", false, "print a table instead of the interactive list")

	return cmd
}

func runInspect(ctx context.Context, input string, opts inspectOpts) error {
	sc, err := inspectScene(ctx, input, opts)
	if err != nil {
		return err
	}

	if opts.table {
		fmt.Fprintln(out, nodeTable(sc.Nodes, 0, -1))
		return nil
	}

	_, err = tea.NewProgram(NewNodeListModel(sc), tea.WithContext(ctx)).Run()
	return err
}

func inspectScene(ctx context.Context, input string, opts inspectOpts) (radial.Scene, error) {
	style, err := radial.ParseLinkStyle(opts.style)
	if err != nil {
		return radial.Scene{}, err
	}
	root, err := treeio.LoadTree(ctx, input)
	if err != nil {
		return radial.Scene{}, err
	}

	var lopts []layout.Option
	if opts.branchLengths {
		lopts = append(lopts, layout.WithBranchLengths())
	}
	if opts.leavesAligned {
		lopts = append(lopts, layout.WithLeavesAligned())
	}
	l, err := layout.Build(root, opts.radius, lopts...)
	if err != nil {
		return radial.Scene{}, err
	}
	loggerFromContext(ctx).Debug("built layout", "nodes", len(l.Nodes), "links", len(l.Links))
	return l.Scene(style)
}
