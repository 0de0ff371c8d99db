package wm

import (
	"fmt"

	"github.com/dodorz/mosaic/internal/container"
)

// UpdateWindowState drives the window state machine. Re-entering the
// current state kind is a no-op: no tree mutation, nothing queued.
// Every real transition queues the window and its affected parents for
// redraw, and sets the pending focus flag when the focused window is
// involved. Any failure leaves state untouched; all fallible lookups
// run before the first mutation.
func UpdateWindowState(s *State, w *Window, next WindowState) error {
	if w.State.Kind == next.Kind {
		return nil
	}

	switch next.Kind {
	case StateFloating:
		if err := floatWindow(s, w, next.Floating); err != nil {
			return err
		}
	case StateTiling:
		if err := tileWindow(s, w); err != nil {
			return err
		}
	case StateMinimized, StateFullscreen:
		if err := suspendWindow(s, w, next); err != nil {
			return err
		}
	}

	if s.focused == w.Node {
		s.Pending.FocusChange = true
	}
	return nil
}

// RestoreWindow reverses a minimize or fullscreen transition, putting
// the window back into exactly the state it was entered from.
func RestoreWindow(s *State, w *Window) error {
	if w.State.Prior == nil {
		return fmt.Errorf("restore %s: state %s has no prior", w.Node, w.State.Kind)
	}
	return UpdateWindowState(s, w, *w.State.Prior)
}

// floatWindow moves a window out of the tiling layout. A window still
// sitting in its tiling slot is detached, its position remembered, and
// reattached as a non-tiling child of its workspace; a window restored
// from minimized or fullscreen that was already floating keeps its
// place and only has its state updated.
func floatWindow(s *State, w *Window, cfg FloatingConfig) error {
	if w.floatedFrom != container.None {
		// Already a floating child of the workspace.
		w.State = FloatingState(cfg)
		s.Pending.QueueRedraw(w.Node)
		return nil
	}

	parent, hasParent := s.Tree.Parent(w.Node)
	if !hasParent {
		return fmt.Errorf("float %s: %w", w.Node, ErrNotManaged)
	}
	workspace, ok := s.Tree.AncestorOfKind(w.Node, container.KindWorkspace)
	if !ok {
		return fmt.Errorf("float %s: %w", w.Node, ErrNoWorkspace)
	}
	index, err := s.Tree.ChildIndex(w.Node)
	if err != nil {
		return fmt.Errorf("float %s: %w", w.Node, err)
	}
	wsRect, err := s.Tree.Rect(workspace)
	if err != nil {
		return fmt.Errorf("float %s: %w", w.Node, err)
	}
	frame, err := s.Tree.Rect(w.Node)
	if err != nil {
		return fmt.Errorf("float %s: %w", w.Node, err)
	}

	if err := s.Tree.Detach(w.Node); err != nil {
		return fmt.Errorf("float %s: %w", w.Node, err)
	}
	if err := s.Tree.AppendChild(workspace, w.Node); err != nil {
		return fmt.Errorf("float %s: %w", w.Node, err)
	}
	if err := s.Tree.SetTiling(w.Node, false); err != nil {
		return fmt.Errorf("float %s: %w", w.Node, err)
	}
	if cfg.Centered {
		if err := s.Tree.SetRect(w.Node, frame.CenterIn(wsRect)); err != nil {
			return fmt.Errorf("float %s: %w", w.Node, err)
		}
	}

	w.floatedFrom = parent
	w.floatedIndex = index
	w.State = FloatingState(cfg)
	s.Pending.QueueRedraw(parent)
	s.Pending.QueueRedraw(w.Node)
	return nil
}

// tileWindow returns a window to the tiling layout. A floated window is
// reinserted at its remembered parent and index when that parent still
// exists, otherwise adjacent to the focused container; a window that
// never left its slot (minimized or fullscreen in place) only rejoins
// layout.
func tileWindow(s *State, w *Window) error {
	if w.floatedFrom == container.None {
		if err := s.Tree.SetTiling(w.Node, true); err != nil {
			return fmt.Errorf("tile %s: %w", w.Node, err)
		}
		w.State = TilingState()
		if parent, ok := s.Tree.Parent(w.Node); ok {
			s.Pending.QueueRedraw(parent)
		}
		s.Pending.QueueRedraw(w.Node)
		return nil
	}

	target := w.floatedFrom
	index := w.floatedIndex
	if !s.Tree.Exists(target) {
		target, index = insertionPointNearFocus(s, w)
	}

	workspace, _ := s.Tree.Parent(w.Node)
	if err := s.Tree.Detach(w.Node); err != nil {
		return fmt.Errorf("tile %s: %w", w.Node, err)
	}
	// Clamp after the detach: when the target is the window's own
	// workspace the pre-detach child count includes the window itself.
	if n := len(s.Tree.Children(target)); index > n {
		index = n
	}
	if err := s.Tree.InsertChild(target, index, w.Node); err != nil {
		// Reattach where the window was so a failed insert does not
		// leave it orphaned.
		_ = s.Tree.AppendChild(workspace, w.Node)
		return fmt.Errorf("tile %s: %w", w.Node, err)
	}
	if err := s.Tree.SetTiling(w.Node, true); err != nil {
		return fmt.Errorf("tile %s: %w", w.Node, err)
	}

	w.floatedFrom = container.None
	w.floatedIndex = 0
	w.State = TilingState()
	s.Pending.QueueRedraw(target)
	s.Pending.QueueRedraw(w.Node)
	if workspace != container.None {
		s.Pending.QueueRedraw(workspace)
	}
	return nil
}

// insertionPointNearFocus picks where a re-tiling window lands when its
// remembered parent is gone: immediately after the focused container,
// falling back to the end of the window's workspace.
func insertionPointNearFocus(s *State, w *Window) (container.ID, int) {
	if s.focused != container.None && s.focused != w.Node && s.Tree.Exists(s.focused) {
		if parent, ok := s.Tree.Parent(s.focused); ok {
			if idx, err := s.Tree.ChildIndex(s.focused); err == nil {
				return parent, idx + 1
			}
		}
	}
	workspace, ok := s.Tree.AncestorOfKind(w.Node, container.KindWorkspace)
	if !ok {
		workspace, _ = s.Tree.Parent(w.Node)
	}
	return workspace, len(s.Tree.Children(workspace))
}

// suspendWindow enters minimized or fullscreen. The current state is
// recorded so the reverse transition can restore it exactly; a restore
// that itself lands on minimized or fullscreen keeps the prior it
// already remembers. The window keeps its tree position but drops out
// of layout.
func suspendWindow(s *State, w *Window, next WindowState) error {
	if err := s.Tree.SetTiling(w.Node, false); err != nil {
		return fmt.Errorf("%s %s: %w", next.Kind, w.Node, err)
	}
	if next.Prior == nil {
		prior := w.State
		next.Prior = &prior
	}
	w.State = next
	if parent, ok := s.Tree.Parent(w.Node); ok {
		s.Pending.QueueRedraw(parent)
	}
	s.Pending.QueueRedraw(w.Node)
	return nil
}
