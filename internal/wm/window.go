// Package wm holds the window manager state: the container tree, the
// managed-window index, the window state machine and the event pipeline
// translating pointer events into tree mutations plus a batched
// pending-sync change-set consumed by the synchronizer.
package wm

import (
	"github.com/dodorz/mosaic/internal/container"
	"github.com/dodorz/mosaic/internal/platform"
)

// StateKind discriminates the window state variants.
type StateKind int

const (
	// StateTiling windows participate in automatic layout.
	StateTiling StateKind = iota
	// StateFloating windows keep a user-placed frame above the layout.
	StateFloating
	// StateMinimized windows are hidden and skipped by layout.
	StateMinimized
	// StateFullscreen windows cover their whole monitor.
	StateFullscreen
)

// String implements fmt.Stringer for log output.
func (k StateKind) String() string {
	switch k {
	case StateTiling:
		return "tiling"
	case StateFloating:
		return "floating"
	case StateMinimized:
		return "minimized"
	case StateFullscreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// FloatingConfig is the placement policy applied when a window leaves
// the tiling layout.
type FloatingConfig struct {
	// Centered places the window at the center of its workspace.
	Centered bool
	// ShownOnTop keeps the window above tiled siblings when applied.
	ShownOnTop bool
}

// WindowState is a tagged variant. Floating carries its placement
// config; Minimized and Fullscreen remember the state they were entered
// from so the reverse transition restores it exactly.
type WindowState struct {
	Kind     StateKind
	Floating FloatingConfig
	Prior    *WindowState
}

// TilingState returns the tiling variant.
func TilingState() WindowState {
	return WindowState{Kind: StateTiling}
}

// FloatingState returns the floating variant with the given placement.
func FloatingState(cfg FloatingConfig) WindowState {
	return WindowState{Kind: StateFloating, Floating: cfg}
}

// MinimizedState returns the minimized variant. The prior state is
// recorded by UpdateWindowState at transition time.
func MinimizedState() WindowState {
	return WindowState{Kind: StateMinimized}
}

// FullscreenState returns the fullscreen variant. The prior state is
// recorded by UpdateWindowState at transition time.
func FullscreenState() WindowState {
	return WindowState{Kind: StateFullscreen}
}

// ActiveDrag records an in-progress interactive move of a window.
type ActiveDrag struct {
	// IsMoving is set once the first qualifying pointer sample has
	// been processed for this drag.
	IsMoving bool
}

// Window pairs a native window handle with its container node. Geometry
// lives in the tree; the window carries state, the remembered tiling
// position used when a floating window re-tiles, and metadata fetched
// from the platform at most once.
type Window struct {
	Handle platform.WindowID
	Node   container.ID
	State  WindowState

	// Drag is non-nil while an interactive move is in progress.
	Drag *ActiveDrag

	// floatedFrom remembers the tiling parent and child index the
	// window occupied before floating, None while tiled.
	floatedFrom  container.ID
	floatedIndex int

	title       string
	titleOK     bool
	processName string
	processOK   bool
	className   string
	classOK     bool
}

// Title returns the window title, fetching it from the platform on
// first call only. The cached value is never invalidated.
func (w *Window) Title(p platform.Platform) (string, error) {
	if w.titleOK {
		return w.title, nil
	}
	t, err := p.Title(w.Handle)
	if err != nil {
		return "", err
	}
	w.title = t
	w.titleOK = true
	return t, nil
}

// ProcessName returns the owning process name, fetched at most once.
func (w *Window) ProcessName(p platform.Platform) (string, error) {
	if w.processOK {
		return w.processName, nil
	}
	n, err := p.ProcessName(w.Handle)
	if err != nil {
		return "", err
	}
	w.processName = n
	w.processOK = true
	return n, nil
}

// ClassName returns the window class, fetched at most once.
func (w *Window) ClassName(p platform.Platform) (string, error) {
	if w.classOK {
		return w.className, nil
	}
	c, err := p.ClassName(w.Handle)
	if err != nil {
		return "", err
	}
	w.className = c
	w.classOK = true
	return c, nil
}
