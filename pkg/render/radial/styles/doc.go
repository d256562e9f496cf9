// Package styles defines how a radial dendrogram scene is drawn as SVG.
//
// A [Style] writes the shared definitions, one element per link and one
// group per node. [Simple] is the stock flat style; [ForLinkStyle] returns
// the preset tuned for each link geometry (arc links use larger node
// markers so the elbows read clearly).
package styles
