package wm

import "github.com/dodorz/mosaic/internal/geometry"

// DragSession tracks pointer history for interactive window moves. It
// is owned by the Pipeline, whose single event loop is the only writer.
type DragSession struct {
	// lastSample is the previous pointer position, nil before the
	// first event of a session. Deltas come from consecutive samples.
	lastSample *geometry.Point

	// moving is set once a drag has begun and cleared on release. The
	// tiling-to-floating promotion happens exactly once per session,
	// guarded by this flag.
	moving bool
}

// Moving reports whether a drag is in progress.
func (d *DragSession) Moving() bool {
	return d.moving
}

// Reset clears the session, ending any drag in progress.
func (d *DragSession) Reset() {
	d.lastSample = nil
	d.moving = false
}

// delta returns the movement since the previous sample, zero when this
// is the first sample of the session.
func (d *DragSession) delta(p geometry.Point) geometry.Point {
	if d.lastSample == nil {
		return geometry.Point{}
	}
	return p.Sub(*d.lastSample)
}

// sample records the pointer position for the next delta.
func (d *DragSession) sample(p geometry.Point) {
	d.lastSample = &p
}
