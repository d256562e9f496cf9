package radial

// NodeView is a node with its computed placement and label.
type NodeView struct {
	Node      Node
	Placement Placement
	Label     Label
}

// LinkView is a link with its computed path.
type LinkView struct {
	Link Link
	Path Path
}

// Scene is everything a sink needs to draw a dendrogram.
type Scene struct {
	Style LinkStyle
	Nodes []NodeView
	Links []LinkView
}

// BuildScene validates nodes and links and computes their geometry. The
// output preserves input order. The first malformed node or link aborts the
// build with a MALFORMED_NODE error.
func BuildScene(nodes []Node, links []Link, style LinkStyle) (Scene, error) {
	sc := Scene{
		Style: style,
		Nodes: make([]NodeView, 0, len(nodes)),
		Links: make([]LinkView, 0, len(links)),
	}
	for _, n := range nodes {
		if err := Validate(n); err != nil {
			return Scene{}, err
		}
		sc.Nodes = append(sc.Nodes, NodeView{Node: n, Placement: PlaceNode(n), Label: PlaceLabel(n)})
	}
	for _, l := range links {
		if err := ValidateLink(l); err != nil {
			return Scene{}, err
		}
		sc.Links = append(sc.Links, LinkView{Link: l, Path: LinkPath(style, l)})
	}
	return sc, nil
}

// Bounds returns the smallest radius that contains every node.
func (sc Scene) Bounds() float64 {
	var r float64
	for _, n := range sc.Nodes {
		r = max(r, n.Node.Radius)
	}
	return r
}
