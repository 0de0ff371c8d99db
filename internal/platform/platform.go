// Package platform abstracts window-system operations behind a narrow
// contract so the window-manager core never talks to a desktop directly.
// All calls are synchronous and expected to return quickly; a slow
// implementation stalls the single event-processing path.
package platform

import (
	"errors"

	"github.com/dodorz/mosaic/internal/geometry"
)

// WindowID is a platform-neutral native window handle.
type WindowID uint32

// Key identifies a keyboard key for input-state queries.
type Key int

const (
	// KeyAlt is the default drag modifier.
	KeyAlt Key = iota
	// KeySuper is the OS/logo key.
	KeySuper
	// KeyShift is the shift modifier.
	KeyShift
	// KeyCtrl is the control modifier.
	KeyCtrl
)

// ErrWindowGone is returned when a handle no longer refers to a live
// window, for example because it closed between event capture and
// processing.
var ErrWindowGone = errors.New("native window no longer exists")

// Platform is the adapter contract consumed by the core.
type Platform interface {
	// Windows enumerates the current top-level window handles.
	Windows() ([]WindowID, error)

	// WindowFromPoint resolves the topmost window at a screen point.
	WindowFromPoint(p geometry.Point) (WindowID, error)

	// RootAncestor resolves the topmost owning window of a handle.
	// Top-level windows resolve to themselves.
	RootAncestor(id WindowID) (WindowID, error)

	// Frame returns the window's current frame rectangle.
	Frame(id WindowID) (geometry.Rect, error)

	// SetFrame moves and resizes the window.
	SetFrame(id WindowID, frame geometry.Rect) error

	// IsVisible reports whether the window is actually visible,
	// including the cloaked check for windows that carry a visible
	// style without being shown.
	IsVisible(id WindowID) (bool, error)

	// IsManageable reports whether the window should be managed at
	// all: visible, top-level, focusable and not an owned menu popup.
	IsManageable(id WindowID) (bool, error)

	// IsKeyPressed reports whether the key is currently held.
	IsKeyPressed(key Key) bool

	// SetForeground asks the window to gain input focus.
	SetForeground(id WindowID) error

	// Title returns the window title. Safe to call repeatedly; the
	// core caches it after first retrieval.
	Title(id WindowID) (string, error)

	// ProcessName returns the name of the owning process.
	ProcessName(id WindowID) (string, error)

	// ClassName returns the window class.
	ClassName(id WindowID) (string, error)
}
