package wm

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/dodorz/mosaic/internal/container"
	"github.com/dodorz/mosaic/internal/geometry"
	"github.com/dodorz/mosaic/internal/platform"
)

// Settings are the per-event behavior switches the pipeline consults,
// derived from the user config.
type Settings struct {
	// FocusFollowsCursor makes plain pointer motion move the focus to
	// the window under the cursor.
	FocusFollowsCursor bool
	// DragModifier is the key that, held together with the primary
	// button, turns pointer motion into a window drag.
	DragModifier platform.Key
}

// MouseMoveEvent is one pointer motion sample.
type MouseMoveEvent struct {
	Point       geometry.Point
	IsMouseDown bool
}

// Pipeline turns pointer events into model mutations. It owns the
// drag session and is the single writer of the State it is handed;
// each event runs to completion before the next is processed.
type Pipeline struct {
	platform platform.Platform
	drag     DragSession
	logger   *log.Logger
}

// NewPipeline returns a pipeline bound to a platform adapter.
func NewPipeline(p platform.Platform, logger *log.Logger) *Pipeline {
	return &Pipeline{platform: p, logger: logger}
}

// Drag exposes the session for inspection; the pipeline remains the
// only writer.
func (pl *Pipeline) Drag() *DragSession {
	return &pl.drag
}

// HandleMouseMove processes one pointer event: drag handling first,
// then focus-follow, in that fixed order. A failure aborts the event
// with no partial model mutation; the next event supersedes it. The
// pointer sample is recorded regardless of outcome so later deltas
// stay continuous.
func (pl *Pipeline) HandleMouseMove(ev MouseMoveEvent, s *State, cfg Settings) error {
	defer pl.drag.sample(ev.Point)

	if err := pl.handleDrag(ev, s, cfg); err != nil {
		pl.logger.Warn("mouse move dropped",
			"x", ev.Point.X, "y", ev.Point.Y, "down", ev.IsMouseDown, "err", err)
		return fmt.Errorf("mouse move at %+v: %w", ev.Point, err)
	}
	if err := pl.handleFocusFollow(ev, s, cfg); err != nil {
		pl.logger.Warn("focus follow dropped",
			"x", ev.Point.X, "y", ev.Point.Y, "err", err)
		return fmt.Errorf("mouse move at %+v: %w", ev.Point, err)
	}
	return nil
}

// handleDrag moves the window under the cursor while the drag modifier
// and primary button are both held. The first qualifying sample
// promotes a tiled window to floating exactly once per session.
func (pl *Pipeline) handleDrag(ev MouseMoveEvent, s *State, cfg Settings) error {
	if !ev.IsMouseDown || !pl.platform.IsKeyPressed(cfg.DragModifier) {
		if !ev.IsMouseDown && pl.drag.moving {
			pl.endDrag(s)
		}
		return nil
	}

	handle, err := pl.platform.WindowFromPoint(ev.Point)
	if err != nil {
		return fmt.Errorf("drag: %w", err)
	}
	w, ok := s.WindowFromHandle(handle)
	if !ok {
		return fmt.Errorf("drag: handle %d: %w", handle, ErrNotManaged)
	}
	frame, err := s.Tree.Rect(w.Node)
	if err != nil {
		return fmt.Errorf("drag: %w", err)
	}

	delta := pl.drag.delta(ev.Point)

	if !pl.drag.moving {
		if w.State.Kind == StateTiling {
			fc := FloatingConfig{Centered: false, ShownOnTop: true}
			if err := UpdateWindowState(s, w, FloatingState(fc)); err != nil {
				return fmt.Errorf("drag: %w", err)
			}
		}
		w.Drag = &ActiveDrag{IsMoving: true}
		pl.drag.moving = true
	}

	if delta != (geometry.Point{}) {
		if err := s.Tree.SetRect(w.Node, frame.Translate(delta)); err != nil {
			return fmt.Errorf("drag: %w", err)
		}
	}
	s.Pending.QueueRedraw(w.Node)
	if s.Focused() != w.Node {
		s.SetFocusedDescendant(w.Node)
	}
	s.Pending.FocusChange = true
	return nil
}

// endDrag clears the session and any active-drag record on release.
func (pl *Pipeline) endDrag(s *State) {
	for _, w := range s.Windows() {
		if w.Drag != nil {
			w.Drag = nil
			s.Pending.QueueRedraw(w.Node)
		}
	}
	pl.drag.Reset()
}

// handleFocusFollow moves focus to the window under the cursor on
// plain motion. Nothing under the cursor, an unmanaged window, or the
// already-focused window are all no-ops.
func (pl *Pipeline) handleFocusFollow(ev MouseMoveEvent, s *State, cfg Settings) error {
	if ev.IsMouseDown || !cfg.FocusFollowsCursor {
		return nil
	}

	handle, err := pl.platform.WindowFromPoint(ev.Point)
	if err != nil {
		if errors.Is(err, platform.ErrWindowGone) {
			return nil
		}
		return fmt.Errorf("focus follow: %w", err)
	}
	root, err := pl.platform.RootAncestor(handle)
	if err != nil {
		if errors.Is(err, platform.ErrWindowGone) {
			return nil
		}
		return fmt.Errorf("focus follow: %w", err)
	}
	w, ok := s.WindowFromHandle(root)
	if !ok {
		return nil
	}
	if s.Focused() == w.Node {
		return nil
	}
	s.SetFocusedDescendant(w.Node)
	s.Pending.FocusChange = true
	return nil
}

// FocusWindow moves focus to the given window node explicitly, for
// click-to-focus and keyboard cycling. Focusing the focused window is
// a no-op.
func (pl *Pipeline) FocusWindow(s *State, node container.ID) error {
	if _, ok := s.WindowAt(node); !ok {
		return fmt.Errorf("focus %s: %w", node, ErrNotManaged)
	}
	if s.Focused() == node {
		return nil
	}
	s.SetFocusedDescendant(node)
	s.Pending.FocusChange = true
	return nil
}
