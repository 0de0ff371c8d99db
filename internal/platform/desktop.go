package platform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dodorz/mosaic/internal/geometry"
)

// DesktopWindow is one simulated native window.
type DesktopWindow struct {
	ID       WindowID
	Frame    geometry.Rect
	Z        int
	Visible  bool
	Cloaked  bool
	Toplevel bool
	// Owner links a popup to its owning top-level window; zero for
	// top-level windows.
	Owner WindowID

	Title       string
	ProcessName string
	ClassName   string
}

// Desktop is an in-memory Platform implementation. It backs the demo
// front end and the core's tests: windows are plain records with frames
// and a z-order, and modifier state is set explicitly by the caller.
type Desktop struct {
	mu      sync.Mutex
	windows map[WindowID]*DesktopWindow
	pressed map[Key]bool
	nextID  WindowID
	nextZ   int
	// Focused is the handle last passed to SetForeground.
	focused WindowID
}

// NewDesktop creates an empty simulated desktop.
func NewDesktop() *Desktop {
	return &Desktop{
		windows: make(map[WindowID]*DesktopWindow),
		pressed: make(map[Key]bool),
		nextID:  1,
	}
}

// AddWindow creates a visible top-level window and returns its handle.
func (d *Desktop) AddWindow(frame geometry.Rect, title, processName, className string) WindowID {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextID
	d.nextID++
	d.nextZ++
	d.windows[id] = &DesktopWindow{
		ID:          id,
		Frame:       frame,
		Z:           d.nextZ,
		Visible:     true,
		Toplevel:    true,
		Title:       title,
		ProcessName: processName,
		ClassName:   className,
	}
	return id
}

// AddOwnedWindow creates a popup owned by another window, used to
// exercise root-ancestor resolution.
func (d *Desktop) AddOwnedWindow(owner WindowID, frame geometry.Rect) WindowID {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextID
	d.nextID++
	d.nextZ++
	d.windows[id] = &DesktopWindow{
		ID:      id,
		Frame:   frame,
		Z:       d.nextZ,
		Visible: true,
		Owner:   owner,
	}
	return id
}

// CloseWindow removes a window from the desktop.
func (d *Desktop) CloseWindow(id WindowID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.windows, id)
}

// SetKeyPressed records modifier state for IsKeyPressed queries.
func (d *Desktop) SetKeyPressed(key Key, pressed bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pressed[key] = pressed
}

// Raise moves the window to the top of the z-order.
func (d *Desktop) Raise(id WindowID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, ok := d.windows[id]; ok {
		d.nextZ++
		w.Z = d.nextZ
	}
}

// Focused returns the handle last given foreground focus.
func (d *Desktop) Focused() WindowID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.focused
}

// Windows implements Platform. Handles are returned in z-order, topmost
// last, matching creation/raise order.
func (d *Desktop) Windows() ([]WindowID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	all := make([]*DesktopWindow, 0, len(d.windows))
	for _, w := range d.windows {
		all = append(all, w)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Z < all[j].Z })
	out := make([]WindowID, len(all))
	for i, w := range all {
		out[i] = w.ID
	}
	return out, nil
}

// WindowFromPoint implements Platform: topmost visible window whose
// frame contains the point.
func (d *Desktop) WindowFromPoint(p geometry.Point) (WindowID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var best *DesktopWindow
	for _, w := range d.windows {
		if !w.Visible || w.Cloaked || !w.Frame.Contains(p) {
			continue
		}
		if best == nil || w.Z > best.Z {
			best = w
		}
	}
	if best == nil {
		return 0, fmt.Errorf("window at %+v: %w", p, ErrWindowGone)
	}
	return best.ID, nil
}

// RootAncestor implements Platform by following owner links.
func (d *Desktop) RootAncestor(id WindowID) (WindowID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[id]
	if !ok {
		return 0, fmt.Errorf("root ancestor of %d: %w", id, ErrWindowGone)
	}
	for w.Owner != 0 {
		owner, ok := d.windows[w.Owner]
		if !ok {
			break
		}
		w = owner
	}
	return w.ID, nil
}

// Frame implements Platform.
func (d *Desktop) Frame(id WindowID) (geometry.Rect, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[id]
	if !ok {
		return geometry.Rect{}, fmt.Errorf("frame of %d: %w", id, ErrWindowGone)
	}
	return w.Frame, nil
}

// SetFrame implements Platform.
func (d *Desktop) SetFrame(id WindowID, frame geometry.Rect) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[id]
	if !ok {
		return fmt.Errorf("set frame of %d: %w", id, ErrWindowGone)
	}
	w.Frame = frame
	return nil
}

// IsVisible implements Platform.
func (d *Desktop) IsVisible(id WindowID) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[id]
	if !ok {
		return false, fmt.Errorf("visibility of %d: %w", id, ErrWindowGone)
	}
	return w.Visible && !w.Cloaked, nil
}

// IsManageable implements Platform: visible, top-level and not an owned
// popup.
func (d *Desktop) IsManageable(id WindowID) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[id]
	if !ok {
		return false, fmt.Errorf("manageability of %d: %w", id, ErrWindowGone)
	}
	return w.Visible && !w.Cloaked && w.Toplevel && w.Owner == 0, nil
}

// IsKeyPressed implements Platform.
func (d *Desktop) IsKeyPressed(key Key) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pressed[key]
}

// SetForeground implements Platform.
func (d *Desktop) SetForeground(id WindowID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[id]
	if !ok {
		return fmt.Errorf("focus %d: %w", id, ErrWindowGone)
	}
	d.focused = w.ID
	return nil
}

// Title implements Platform.
func (d *Desktop) Title(id WindowID) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[id]
	if !ok {
		return "", fmt.Errorf("title of %d: %w", id, ErrWindowGone)
	}
	return w.Title, nil
}

// ProcessName implements Platform.
func (d *Desktop) ProcessName(id WindowID) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[id]
	if !ok {
		return "", fmt.Errorf("process of %d: %w", id, ErrWindowGone)
	}
	return w.ProcessName, nil
}

// ClassName implements Platform.
func (d *Desktop) ClassName(id WindowID) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[id]
	if !ok {
		return "", fmt.Errorf("class of %d: %w", id, ErrWindowGone)
	}
	return w.ClassName, nil
}
