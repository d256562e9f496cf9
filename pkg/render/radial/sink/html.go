package sink

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Babdus/protolanguage-v2/pkg/tree"
)

// HTMLOption configures HTML rendering via [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title  string
	width  string
	height string
}

// WithHTMLTitle sets the page and chart title.
func WithHTMLTitle(title string) HTMLOption { return func(r *htmlRenderer) { r.title = title } }

// WithHTMLSize sets the chart size as CSS lengths (default "100vw" by "100vh").
func WithHTMLSize(width, height string) HTMLOption {
	return func(r *htmlRenderer) { r.width, r.height = width, height }
}

// RenderHTML writes an interactive radial tree page for root. Nodes can be
// collapsed and the view panned and zoomed in the browser.
func RenderHTML(root *tree.Node, opts ...HTMLOption) ([]byte, error) {
	if err := tree.Validate(root); err != nil {
		return nil, err
	}
	r := htmlRenderer{title: "dendrogram", width: "100vw", height: "100vh"}
	for _, opt := range opts {
		opt(&r)
	}

	page := components.NewPage()
	page.AddCharts(treeChart(root, r))

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func treeChart(root *tree.Node, r htmlRenderer) *charts.Tree {
	chart := charts.NewTree()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: r.title,
			Width:     r.width,
			Height:    r.height,
		}),
		charts.WithTitleOpts(opts.Title{Title: r.title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	chart.AddSeries(
		"tree",
		[]opts.TreeData{*treeData(root)},
		charts.WithTreeOpts(opts.TreeChart{
			Layout:           "radial",
			Roam:             opts.Bool(true),
			InitialTreeDepth: -1,
		}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)
	return chart
}

func treeData(n *tree.Node) *opts.TreeData {
	d := &opts.TreeData{Name: n.Name}
	for _, c := range n.Children {
		d.Children = append(d.Children, treeData(c))
	}
	return d
}
