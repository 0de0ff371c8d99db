package wm

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/dodorz/mosaic/internal/container"
	"github.com/dodorz/mosaic/internal/geometry"
	"github.com/dodorz/mosaic/internal/platform"
)

// fixture bundles a simulated desktop with a state whose tree holds a
// single monitor and workspace covering 200x100.
type fixture struct {
	desktop   *platform.Desktop
	state     *State
	monitor   container.ID
	workspace container.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{desktop: platform.NewDesktop(), state: NewState()}
	tr := f.state.Tree
	f.monitor = tr.NewMonitor(geometry.Rect{Width: 200, Height: 100})
	if err := tr.AppendChild(tr.Root(), f.monitor); err != nil {
		t.Fatalf("attach monitor: %v", err)
	}
	f.workspace = tr.NewWorkspace(geometry.Rect{Width: 200, Height: 100})
	if err := tr.AppendChild(f.monitor, f.workspace); err != nil {
		t.Fatalf("attach workspace: %v", err)
	}
	return f
}

// addWindow creates a desktop window and manages it under the
// workspace.
func (f *fixture) addWindow(t *testing.T, frame geometry.Rect) *Window {
	t.Helper()
	h := f.desktop.AddWindow(frame, "term", "shell", "Terminal")
	w, err := f.state.ManageWindow(h, f.workspace, frame)
	if err != nil {
		t.Fatalf("manage window: %v", err)
	}
	return w
}

func (f *fixture) pipeline() *Pipeline {
	return NewPipeline(f.desktop, testLogger())
}

func (f *fixture) synchronizer() *Synchronizer {
	return NewSynchronizer(f.desktop, testLogger())
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func mustRect(t *testing.T, tr *container.Tree, id container.ID) geometry.Rect {
	t.Helper()
	r, err := tr.Rect(id)
	if err != nil {
		t.Fatalf("rect of %s: %v", id, err)
	}
	return r
}
