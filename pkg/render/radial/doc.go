// Package radial computes the geometry of a radial dendrogram.
//
// # Overview
//
// Nodes arrive already laid out in polar coordinates: an angle in degrees
// in [0, 360) measured clockwise from twelve o'clock, and a radius (distance
// from the root). This package turns them into drawable geometry:
//
//   - [PlaceNode]: the node's transform, "rotate by angle-90, then translate
//     by radius", and the Cartesian point it lands on
//   - [PlaceLabel]: text anchor and offset that keep labels upright on both
//     halves of the circle; only leaves get a visible label
//   - [StraightLinkPath]: the standard radial link, a cubic curve whose
//     control points sit at the mid radius
//   - [ArcLinkPath]: an elbow connector, an arc at the parent's radius
//     followed by a radial segment to the child
//
// [BuildScene] validates a whole node and link set and computes all of the
// above in one pass. The result is consumed by the output sinks in
// [github.com/Babdus/protolanguage-v2/pkg/render/radial/sink].
//
// # Coordinates
//
// The Cartesian mapping used everywhere is
//
//	x = r·cos((angle−90)·π/180)
//	y = r·sin((angle−90)·π/180)
//
// with y pointing down, as in SVG. Angle 0 is straight up, 90 is right.
//
// # Arc Sweep
//
// Arc links always start at the parent and end at the child. When the
// parent's angle is greater than the child's the arc sweeps
// counter-clockwise (sweep flag 0), otherwise clockwise (sweep flag 1). The
// large-arc flag is always 0. Links that cross the 0°/360° seam are not
// special-cased.
//
// All functions are pure and safe for concurrent use.
package radial
