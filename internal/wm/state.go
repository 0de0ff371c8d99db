package wm

import (
	"errors"
	"fmt"

	"github.com/dodorz/mosaic/internal/container"
	"github.com/dodorz/mosaic/internal/geometry"
	"github.com/dodorz/mosaic/internal/platform"
)

// Sentinel errors for window management operations.
var (
	ErrAlreadyManaged = errors.New("window handle is already managed")
	ErrNotManaged     = errors.New("window is not managed")
	ErrNoWorkspace    = errors.New("window has no workspace ancestor")
)

// State is the window manager model: the container tree, the managed
// window index (by container node and by native handle), the focus
// cursor and the pending-sync accumulator. It has a single writer, the
// event pipeline; nothing here is safe for concurrent mutation.
type State struct {
	Tree    *container.Tree
	Pending *PendingSync

	windows  map[container.ID]*Window
	byHandle map[platform.WindowID]container.ID
	focused  container.ID
}

// NewState returns a State holding an empty tree.
func NewState() *State {
	return &State{
		Tree:     container.New(),
		Pending:  NewPendingSync(),
		windows:  make(map[container.ID]*Window),
		byHandle: make(map[platform.WindowID]container.ID),
	}
}

// ManageWindow creates a window container for handle, attaches it as
// the last tiling child of parent and indexes it. The new window starts
// in the tiling state.
func (s *State) ManageWindow(handle platform.WindowID, parent container.ID, frame geometry.Rect) (*Window, error) {
	if _, ok := s.byHandle[handle]; ok {
		return nil, fmt.Errorf("manage %d: %w", handle, ErrAlreadyManaged)
	}
	node := s.Tree.NewWindow(frame)
	if err := s.Tree.AppendChild(parent, node); err != nil {
		_ = s.Tree.Remove(node)
		return nil, fmt.Errorf("manage %d: %w", handle, err)
	}
	w := &Window{Handle: handle, Node: node, State: TilingState()}
	s.windows[node] = w
	s.byHandle[handle] = node
	s.Pending.QueueRedraw(parent)
	return w, nil
}

// UnmanageWindow removes the window from the tree and drops it from
// both indices. The former parent is queued for redraw so the layout
// closes the gap.
func (s *State) UnmanageWindow(node container.ID) error {
	w, ok := s.windows[node]
	if !ok {
		return fmt.Errorf("unmanage %s: %w", node, ErrNotManaged)
	}
	parent, hasParent := s.Tree.Parent(node)
	if err := s.Tree.Detach(node); err != nil {
		return fmt.Errorf("unmanage %s: %w", node, err)
	}
	if err := s.Tree.Remove(node); err != nil {
		return fmt.Errorf("unmanage %s: %w", node, err)
	}
	delete(s.windows, node)
	delete(s.byHandle, w.Handle)
	if s.focused == node {
		s.focused = container.None
		s.Pending.FocusChange = true
	}
	if hasParent {
		s.Pending.QueueRedraw(parent)
	}
	return nil
}

// WindowFromHandle resolves a native handle to its managed window.
func (s *State) WindowFromHandle(handle platform.WindowID) (*Window, bool) {
	node, ok := s.byHandle[handle]
	if !ok {
		return nil, false
	}
	return s.windows[node], true
}

// WindowAt returns the managed window for a container node.
func (s *State) WindowAt(node container.ID) (*Window, bool) {
	w, ok := s.windows[node]
	return w, ok
}

// Windows returns all managed windows in tree order under the root.
func (s *State) Windows() []*Window {
	var out []*Window
	var walk func(id container.ID)
	walk = func(id container.ID) {
		if w, ok := s.windows[id]; ok {
			out = append(out, w)
			return
		}
		for _, c := range s.Tree.Children(id) {
			walk(c)
		}
	}
	walk(s.Tree.Root())
	return out
}

// Focused returns the focused container, None when nothing is focused.
func (s *State) Focused() container.ID {
	return s.focused
}

// SetFocusedDescendant moves the focus cursor. It does not touch the
// pending-sync flags; callers decide whether the platform focus must
// follow.
func (s *State) SetFocusedDescendant(id container.ID) {
	s.focused = id
}

// DiscoverWindows enumerates the platform's top-level windows and
// manages every manageable one that is not yet indexed, attaching them
// to workspace. Already-managed and unmanageable handles are skipped.
func DiscoverWindows(s *State, p platform.Platform, workspace container.ID) ([]*Window, error) {
	handles, err := p.Windows()
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	var added []*Window
	for _, h := range handles {
		if _, ok := s.WindowFromHandle(h); ok {
			continue
		}
		manageable, err := p.IsManageable(h)
		if err != nil {
			// The window closed mid-enumeration; skip it.
			if errors.Is(err, platform.ErrWindowGone) {
				continue
			}
			return added, fmt.Errorf("discover %d: %w", h, err)
		}
		if !manageable {
			continue
		}
		frame, err := p.Frame(h)
		if err != nil {
			if errors.Is(err, platform.ErrWindowGone) {
				continue
			}
			return added, fmt.Errorf("discover %d: %w", h, err)
		}
		w, err := s.ManageWindow(h, workspace, frame)
		if err != nil {
			return added, err
		}
		added = append(added, w)
	}
	return added, nil
}
