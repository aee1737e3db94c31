package geom

// Edge membership per handle. Middle handles affect one axis only.

func affectsLeft(h Handle) bool {
	return h == UpperLeft || h == MiddleLeft || h == LowerLeft
}

func affectsRight(h Handle) bool {
	return h == UpperRight || h == MiddleRight || h == LowerRight
}

func affectsUpper(h Handle) bool {
	return h == UpperLeft || h == UpperMiddle || h == UpperRight
}

func affectsLower(h Handle) bool {
	return h == LowerLeft || h == LowerMiddle || h == LowerRight
}

// Resize moves the edges controlled by handle to point, holding the
// opposite edges fixed, and returns the resulting rectangle together
// with the handle's (possibly flipped) identity.
//
// Dragging a handle past the opposite edge makes the intermediate
// width or height negative; the rectangle is normalized back to
// non-negative size by swapping the origin, the handle is remapped
// through the left-right or top-bottom relabeling table, and the
// corresponding flip flag is returned. A width or height of exactly
// zero is not a flip. The flip flags carry no geometric meaning of
// their own; callers that track orientation (image mirroring) react
// to them, everyone else ignores them.
func Resize(bounds Rect, handle Handle, point Point) (Rect, Handle, bool, bool) {
	r := bounds
	flippedH := false
	flippedV := false

	if affectsLeft(handle) {
		r.Width = bounds.MaxX() - point.X
		r.X = point.X
	} else if affectsRight(handle) {
		r.Width = point.X - bounds.MinX()
	}
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
		handle = handle.FlippedHorizontally()
		flippedH = true
	}

	if affectsUpper(handle) {
		r.Height = bounds.MaxY() - point.Y
		r.Y = point.Y
	} else if affectsLower(handle) {
		r.Height = point.Y - bounds.MinY()
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
		handle = handle.FlippedVertically()
		flippedV = true
	}

	return r, handle, flippedH, flippedV
}
