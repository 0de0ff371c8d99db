package wm

import (
	"testing"

	"github.com/dodorz/mosaic/internal/geometry"
)

func TestApplyPushesFramesAndFocus(t *testing.T) {
	f := newFixture(t)
	a := f.addWindow(t, geometry.Rect{})
	b := f.addWindow(t, geometry.Rect{})
	f.state.SetFocusedDescendant(b.Node)
	f.state.Pending.FocusChange = true
	sy := f.synchronizer()

	if err := sy.Apply(f.state); err != nil {
		t.Fatalf("apply: %v", err)
	}

	gotA, err := f.desktop.Frame(a.Handle)
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	if gotA != (geometry.Rect{Width: 100, Height: 100}) {
		t.Errorf("platform frame a = %+v", gotA)
	}
	gotB, err := f.desktop.Frame(b.Handle)
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	if gotB != (geometry.Rect{X: 100, Width: 100, Height: 100}) {
		t.Errorf("platform frame b = %+v", gotB)
	}
	if f.desktop.Focused() != b.Handle {
		t.Errorf("platform focus = %d, want %d", f.desktop.Focused(), b.Handle)
	}
	if !f.state.Pending.Empty() {
		t.Error("successful apply left pending work")
	}
}

func TestApplyIsIdempotentWhenEmpty(t *testing.T) {
	f := newFixture(t)
	w := f.addWindow(t, geometry.Rect{})
	sy := f.synchronizer()

	if err := sy.Apply(f.state); err != nil {
		t.Fatalf("apply: %v", err)
	}
	// Move the platform window behind the manager's back; an empty
	// apply must not touch it.
	moved := geometry.Rect{X: 5, Y: 5, Width: 10, Height: 10}
	if err := f.desktop.SetFrame(w.Handle, moved); err != nil {
		t.Fatalf("set frame: %v", err)
	}
	if err := sy.Apply(f.state); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	got, _ := f.desktop.Frame(w.Handle)
	if got != moved {
		t.Errorf("empty apply pushed a frame: %+v", got)
	}
}

func TestApplyFailureRequeuesChangeSet(t *testing.T) {
	f := newFixture(t)
	w := f.addWindow(t, geometry.Rect{})
	f.state.Pending.FocusChange = true
	f.state.SetFocusedDescendant(w.Node)
	sy := f.synchronizer()

	// The platform window vanishes before the apply runs.
	f.desktop.CloseWindow(w.Handle)

	if err := sy.Apply(f.state); err == nil {
		t.Fatal("apply against a closed window succeeded")
	}
	if f.state.Pending.Empty() {
		t.Error("failed apply dropped the change-set")
	}
	if !f.state.Pending.FocusChange {
		t.Error("failed apply dropped the focus flag")
	}
	if !f.state.Pending.Queued(f.workspace) {
		t.Error("failed apply dropped the redraw queue")
	}
}

func TestApplySkipsDegenerateFrames(t *testing.T) {
	f := newFixture(t)
	w := f.addWindow(t, geometry.Rect{})
	sy := f.synchronizer()
	if err := sy.Apply(f.state); err != nil {
		t.Fatalf("apply: %v", err)
	}
	before, err := f.desktop.Frame(w.Handle)
	if err != nil {
		t.Fatalf("frame: %v", err)
	}

	// The workspace collapses to zero width, e.g. mid-resize; the
	// retile squeezes the window to nothing.
	if err := f.state.Tree.SetRect(f.workspace, geometry.Rect{Height: 100}); err != nil {
		t.Fatalf("shrink workspace: %v", err)
	}
	f.state.Pending.QueueRedraw(w.Node)
	if err := sy.Apply(f.state); err != nil {
		t.Fatalf("apply after shrink: %v", err)
	}
	got, _ := f.desktop.Frame(w.Handle)
	if got != before {
		t.Errorf("degenerate frame pushed: %+v", got)
	}
}

func TestApplySkipsMinimizedWindows(t *testing.T) {
	f := newFixture(t)
	a := f.addWindow(t, geometry.Rect{})
	b := f.addWindow(t, geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4})
	if err := UpdateWindowState(f.state, b, MinimizedState()); err != nil {
		t.Fatalf("minimize: %v", err)
	}
	sy := f.synchronizer()

	if err := sy.Apply(f.state); err != nil {
		t.Fatalf("apply: %v", err)
	}
	gotA, _ := f.desktop.Frame(a.Handle)
	if gotA != (geometry.Rect{Width: 200, Height: 100}) {
		t.Errorf("tiled frame = %+v, want full workspace", gotA)
	}
	gotB, _ := f.desktop.Frame(b.Handle)
	if gotB != (geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}) {
		t.Errorf("minimized frame pushed: %+v", gotB)
	}
}
