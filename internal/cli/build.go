package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	treeio "github.com/Babdus/protolanguage-v2/pkg/io"
	"github.com/Babdus/protolanguage-v2/pkg/phylo"
)

func (c *CLI) buildCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build <matrix.csv|->",
		Short: "Build a tree from a distance matrix by neighbor joining",
		Long: `Build reads a symmetric distance matrix as CSV (a header row of names
after an empty cell, then one row per name) and joins it into a binary tree
with branch lengths. The tree is written as JSON, ready for render.`,
		Example: `  dendro build distances.csv -o tree.json
  dendro build distances.csv | dendro render - --branch-lengths -o tree.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func runBuild(ctx context.Context, input, output string) error {
	logger := loggerFromContext(ctx)

	m, err := readMatrix(input)
	if err != nil {
		return err
	}
	logger.Debug("read matrix", "taxa", m.Len())

	prog := newProgress(logger)
	spin := newSpinner(ctx, os.Stderr, fmt.Sprintf("Joining %d taxa", m.Len()))
	spin.Start()
	root, err := phylo.NeighborJoin(m)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Joined %d taxa", m.Len()))

	if output == "" || output == stdoutPath {
		return treeio.WriteJSON(root, os.Stdout)
	}
	if err := treeio.ExportJSON(root, output); err != nil {
		return err
	}

	printSuccess("Built tree from %s", input)
	printStats(root.Count(), len(root.Leaves()), root.Depth(), false)
	printFile(output)
	return nil
}

func readMatrix(input string) (*phylo.Matrix, error) {
	if input == treeio.StdinSource {
		return phylo.ReadMatrix(treeio.Stdin)
	}
	return phylo.ImportMatrix(input)
}
