package sink

import (
	"encoding/json"

	"github.com/Babdus/protolanguage-v2/pkg/render/radial"
	"github.com/Babdus/protolanguage-v2/pkg/render/radial/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	linkStyle radial.LinkStyle
	title     string
}

// WithJSONLinkStyle selects the link geometry whose paths are exported.
func WithJSONLinkStyle(s radial.LinkStyle) JSONOption {
	return func(r *jsonRenderer) { r.linkStyle = s }
}

// WithJSONTitle records a title in the output.
func WithJSONTitle(title string) JSONOption { return func(r *jsonRenderer) { r.title = title } }

type jsonOutput struct {
	Title     string     `json:"title,omitempty"`
	Radius    float64    `json:"radius"`
	LinkStyle string     `json:"link_style"`
	Nodes     []jsonNode `json:"nodes"`
	Links     []jsonLink `json:"links"`
}

type jsonNode struct {
	Name       string    `json:"name"`
	Angle      float64   `json:"angle"`
	Radius     float64   `json:"radius"`
	ChildCount int       `json:"child_count"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Transform  string    `json:"transform"`
	Label      jsonLabel `json:"label"`
}

type jsonLabel struct {
	Text      string  `json:"text,omitempty"`
	Offset    float64 `json:"offset"`
	Anchor    string  `json:"anchor"`
	Transform string  `json:"transform"`
	Visible   bool    `json:"visible"`
}

type jsonLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Path   string `json:"path"`
}

// RenderJSON exports the computed geometry of l.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{linkStyle: radial.Straight}
	for _, opt := range opts {
		opt(&r)
	}

	sc, err := l.Scene(r.linkStyle)
	if err != nil {
		return nil, err
	}

	out := jsonOutput{
		Title:     r.title,
		Radius:    l.Radius,
		LinkStyle: r.linkStyle.String(),
		Nodes:     make([]jsonNode, 0, len(sc.Nodes)),
		Links:     make([]jsonLink, 0, len(sc.Links)),
	}
	for _, nv := range sc.Nodes {
		p := nv.Placement.Point()
		out.Nodes = append(out.Nodes, jsonNode{
			Name:       nv.Node.Name,
			Angle:      nv.Node.Angle,
			Radius:     nv.Node.Radius,
			ChildCount: nv.Node.ChildCount,
			X:          p.X,
			Y:          p.Y,
			Transform:  nv.Placement.Transform(),
			Label: jsonLabel{
				Text:      nv.Label.Text,
				Offset:    nv.Label.Offset,
				Anchor:    nv.Label.Anchor,
				Transform: nv.Label.Transform,
				Visible:   nv.Label.Visible,
			},
		})
	}
	for _, lv := range sc.Links {
		out.Links = append(out.Links, jsonLink{
			Source: lv.Link.Source.Name,
			Target: lv.Link.Target.Name,
			Path:   lv.Path.String(),
		})
	}

	return json.MarshalIndent(out, "", "  ")
}
