// Package geom provides the geometric core of the Sketch model:
// points, sizes and rectangles in canvas coordinates, the eight-handle
// resize model, and the string forms rectangles take inside persisted
// property records.
//
// # Coordinate system
//
// All geometry uses canvas coordinates: x grows rightward and y grows
// downward, so a rectangle's "upper" edge is its MinY and its "lower"
// edge its MaxY. Coordinates are float64 throughout.
//
// # Handles
//
// A [Handle] names one of the eight resize handles at a rectangle's
// corners and edge midpoints, or [NoHandle]. Handles are derived from
// a rectangle on demand with [HandlePoint] and [HandlePoints]; they
// are never stored. [HandleUnderPoint] hit-tests a point against the
// square hit boxes ([HandleWidth] wide) in a fixed priority order and
// returns the first match.
//
// # Resizing
//
// [Resize] implements handle dragging: the edges a handle controls
// follow the target point while the opposite edges stay fixed. When a
// drag crosses the opposite edge the rectangle is normalized back to
// non-negative size, the handle identity is remapped to the side it
// now occupies ([Handle.FlippedHorizontally], [Handle.FlippedVertically]),
// and the flip is reported to the caller.
package geom
