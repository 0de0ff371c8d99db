package wm

import (
	"github.com/dodorz/mosaic/internal/container"
	"github.com/dodorz/mosaic/internal/geometry"
)

// Retile recomputes tiled geometry for the whole tree. Each workspace
// divides its rect among its tiling children as a horizontal split;
// split containers divide their assigned rect along their orientation.
// Floating, minimized and fullscreen windows are skipped.
func Retile(t *container.Tree) {
	for _, monitor := range t.Children(t.Root()) {
		for _, workspace := range t.Children(monitor) {
			rect, err := t.Rect(workspace)
			if err != nil {
				continue
			}
			tileInto(t, workspace, rect, container.Horizontal)
		}
	}
}

// tileInto assigns rect to the tiling children of id along the given
// axis, recursing through splits. The last child absorbs the division
// remainder so the children exactly cover the parent rect.
func tileInto(t *container.Tree, id container.ID, rect geometry.Rect, orientation container.Orientation) {
	children := t.TilingChildren(id)
	if len(children) == 0 {
		return
	}

	n := len(children)
	for i, child := range children {
		part := rect
		switch orientation {
		case container.Horizontal:
			w := rect.Width / n
			part.X = rect.X + i*w
			part.Width = w
			if i == n-1 {
				part.Width = rect.Width - (n-1)*w
			}
		case container.Vertical:
			h := rect.Height / n
			part.Y = rect.Y + i*h
			part.Height = h
			if i == n-1 {
				part.Height = rect.Height - (n-1)*h
			}
		}
		_ = t.SetRect(child, part)

		if kind, err := t.Kind(child); err == nil && kind == container.KindSplit {
			axis, err := t.Orientation(child)
			if err != nil {
				continue
			}
			tileInto(t, child, part, axis)
		}
	}
}

// TargetFrame resolves the frame a managed window should occupy on the
// platform: minimized windows have none, fullscreen windows cover their
// monitor, everything else uses the tree rect.
func TargetFrame(s *State, w *Window) (geometry.Rect, bool) {
	switch w.State.Kind {
	case StateMinimized:
		return geometry.Rect{}, false
	case StateFullscreen:
		monitor, ok := s.Tree.AncestorOfKind(w.Node, container.KindMonitor)
		if !ok {
			break
		}
		rect, err := s.Tree.Rect(monitor)
		if err != nil {
			break
		}
		return rect, true
	}
	rect, err := s.Tree.Rect(w.Node)
	if err != nil {
		return geometry.Rect{}, false
	}
	return rect, true
}
