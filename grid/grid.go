// Package grid provides the snapping grid: spacing, constraining and
// visibility state, point and rectangle alignment, and the temporary
// reveal that follows a spacing change.
package grid

import (
	"math"
	"sync"
	"time"

	"github.com/MaddTheSane/Sketch/geom"
)

// DefaultSpacing is the spacing of a freshly created grid
const DefaultSpacing = 8.0

// Grid is a snapping grid. A grid with spacing <= 0 is not usable:
// it never snaps and never draws. The zero value is not ready to use;
// call New.
//
// Methods are safe for concurrent use; the hide timer fires on its
// own goroutine.
type Grid struct {
	// HideDelay is how long a spacing change keeps a normally hidden
	// grid visible. Set it before the first SetSpacing call.
	HideDelay time.Duration

	mu               sync.Mutex
	spacing          float64
	alwaysShown      bool
	constraining     bool
	temporarilyShown bool
	hideTimer        *time.Timer
}

// New creates a grid with default spacing, hidden and not constraining
func New() *Grid {
	return &Grid{
		HideDelay: time.Second,
		spacing:   DefaultSpacing,
	}
}

// Spacing returns the grid spacing
func (g *Grid) Spacing() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.spacing
}

// SetSpacing changes the grid spacing. If the grid is usable but not
// always shown, it becomes visible for HideDelay so the user can see
// what changed; a further spacing change within that window extends
// the reveal instead of queueing another hide.
func (g *Grid) SetSpacing(spacing float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.spacing = spacing
	if g.alwaysShown || spacing <= 0 {
		return
	}

	g.temporarilyShown = true
	if g.hideTimer == nil {
		g.hideTimer = time.AfterFunc(g.HideDelay, g.stopShowingTemporarily)
	} else {
		g.hideTimer.Reset(g.HideDelay)
	}
}

func (g *Grid) stopShowingTemporarily() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.temporarilyShown = false
}

// IsAlwaysShown reports whether the grid draws regardless of recent
// spacing changes
func (g *Grid) IsAlwaysShown() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.alwaysShown
}

// SetAlwaysShown shows or hides the grid permanently. Turning it on
// cancels any pending temporary reveal.
func (g *Grid) SetAlwaysShown(shown bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.alwaysShown = shown
	if shown {
		g.temporarilyShown = false
		if g.hideTimer != nil {
			g.hideTimer.Stop()
		}
	}
}

// IsConstraining reports whether interactive points snap to the grid
func (g *Grid) IsConstraining() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.constraining
}

// SetConstraining enables or disables interactive point snapping
func (g *Grid) SetConstraining(constraining bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.constraining = constraining
}

// IsUsable reports whether the grid can snap at all (spacing > 0)
func (g *Grid) IsUsable() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.spacing > 0
}

// IsVisible reports whether a renderer should draw the grid right now
func (g *Grid) IsVisible() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.spacing > 0 && (g.alwaysShown || g.temporarilyShown)
}

// ConstrainedPoint snaps p to the nearest grid intersection when the
// grid is usable and constraining; otherwise p is returned unchanged
func (g *Grid) ConstrainedPoint(p geom.Point) geom.Point {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.spacing <= 0 || !g.constraining {
		return p
	}
	return geom.Point{
		X: snap(p.X, g.spacing),
		Y: snap(p.Y, g.spacing),
	}
}

// AlignedRect snaps the rectangle's origin and its opposite corner to
// the grid independently, then derives the size from their difference,
// so every edge lands on a grid line. Unlike ConstrainedPoint this is
// not gated by the constraining flag, only by usability.
func (g *Grid) AlignedRect(r geom.Rect) geom.Rect {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.spacing <= 0 {
		return r
	}

	upperLeft := geom.Point{
		X: snap(r.MinX(), g.spacing),
		Y: snap(r.MinY(), g.spacing),
	}
	lowerRight := geom.Point{
		X: snap(r.MaxX(), g.spacing),
		Y: snap(r.MaxY(), g.spacing),
	}
	return geom.Rect{
		X:      upperLeft.X,
		Y:      upperLeft.Y,
		Width:  lowerRight.X - upperLeft.X,
		Height: lowerRight.Y - upperLeft.Y,
	}
}

// snap quantizes x to the nearest multiple of spacing, rounding half
// away from the origin's negative side (half up)
func snap(x, spacing float64) float64 {
	return math.Floor(x/spacing+0.5) * spacing
}
