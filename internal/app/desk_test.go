package app

import (
	"io"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/dodorz/mosaic/internal/config"
	"github.com/dodorz/mosaic/internal/wm"
)

func newTestDesk(t *testing.T) *Desk {
	t.Helper()
	return NewDesk(Options{
		UserConfig:     config.DefaultConfig(),
		Logger:         log.New(io.Discard),
		InitialWindows: 2,
	})
}

func TestNewDeskManagesInitialWindows(t *testing.T) {
	d := newTestDesk(t)
	if got := len(d.state.Windows()); got != 2 {
		t.Fatalf("managed windows = %d, want 2", got)
	}
	if _, ok := d.state.WindowAt(d.state.Focused()); !ok {
		t.Error("no focused window after startup")
	}
}

func TestKeySpawnAndClose(t *testing.T) {
	d := newTestDesk(t)

	d.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if got := len(d.state.Windows()); got != 3 {
		t.Fatalf("windows after spawn = %d, want 3", got)
	}

	d.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	d.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if got := len(d.state.Windows()); got != 1 {
		t.Fatalf("windows after closes = %d, want 1", got)
	}
}

func TestToggleFloatAndRetile(t *testing.T) {
	d := newTestDesk(t)
	w, _ := d.state.WindowAt(d.state.Focused())

	d.Update(tea.KeyPressMsg{Code: 'f', Text: "f"})
	if w.State.Kind != wm.StateFloating {
		t.Fatalf("state after f = %s, want floating", w.State.Kind)
	}
	// The configured default centers windows floated by command.
	if !w.State.Floating.Centered {
		t.Error("command float ignored the centered policy")
	}

	d.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if w.State.Kind != wm.StateTiling {
		t.Fatalf("state after space = %s, want tiling", w.State.Kind)
	}
}

func TestMinimizeToggleRestores(t *testing.T) {
	d := newTestDesk(t)
	w, _ := d.state.WindowAt(d.state.Focused())

	d.Update(tea.KeyPressMsg{Code: 'm', Text: "m"})
	if w.State.Kind != wm.StateMinimized {
		t.Fatalf("state = %s, want minimized", w.State.Kind)
	}
	d.Update(tea.KeyPressMsg{Code: 'm', Text: "m"})
	if w.State.Kind != wm.StateTiling {
		t.Fatalf("state = %s, want tiling restored", w.State.Kind)
	}
}

func TestTickAppliesPendingSync(t *testing.T) {
	d := newTestDesk(t)
	if d.state.Pending.Empty() {
		t.Fatal("startup queued no pending work")
	}

	d.Update(TickerMsg(time.Now()))
	if !d.state.Pending.Empty() {
		t.Error("tick left pending work unapplied")
	}

	// The simulated platform now carries the tiled frames.
	windows := d.state.Windows()
	for _, w := range windows {
		simFrame, err := d.sim.Frame(w.Handle)
		if err != nil {
			t.Fatalf("frame: %v", err)
		}
		want, ok := wm.TargetFrame(d.state, w)
		if !ok {
			continue
		}
		if simFrame != want {
			t.Errorf("platform frame %+v, want %+v", simFrame, want)
		}
	}
}

func TestFocusCycling(t *testing.T) {
	d := newTestDesk(t)
	first := d.state.Focused()

	d.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if d.state.Focused() == first {
		t.Error("tab did not move focus")
	}
	d.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if d.state.Focused() != first {
		t.Error("cycling did not wrap around")
	}
}
