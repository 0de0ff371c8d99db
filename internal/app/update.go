package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/dodorz/mosaic/internal/geometry"
	"github.com/dodorz/mosaic/internal/platform"
	"github.com/dodorz/mosaic/internal/wm"
)

// applyFPS is the rate of the apply tick draining pending sync.
const applyFPS = 30

// TickerMsg drives the apply loop.
type TickerMsg time.Time

// TickCmd schedules the next apply tick.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/applyFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Init implements tea.Model.
func (d *Desk) Init() tea.Cmd {
	return TickCmd()
}

// Update implements tea.Model. Pointer messages run through the window
// manager pipeline; the timer tick samples system info and applies the
// pending change-set to the simulated platform.
func (d *Desk) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		d.updateSystemInfo()
		if err := d.sync.Apply(d.state); err != nil {
			d.lastErr = err.Error()
		}
		return d, TickCmd()

	case tea.WindowSizeMsg:
		d.resize(msg.Width, msg.Height)
		return d, nil

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button == tea.MouseLeft {
			d.mouseDown = true
		}
		d.routeMouse(mouse)
		d.clickFocus(mouse)
		return d, nil

	case tea.MouseMotionMsg:
		d.routeMouse(msg.Mouse())
		return d, nil

	case tea.MouseReleaseMsg:
		mouse := msg.Mouse()
		d.mouseDown = false
		d.routeMouse(mouse)
		return d, nil

	case tea.KeyPressMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

// routeMouse mirrors the modifier state into the simulated platform
// and feeds the sample through the pipeline. Pipeline errors are
// per-event conditions: they are surfaced on the status bar and the
// next sample supersedes them.
func (d *Desk) routeMouse(mouse tea.Mouse) {
	d.sim.SetKeyPressed(platform.KeyAlt, mouse.Mod&tea.ModAlt != 0)
	d.sim.SetKeyPressed(platform.KeyShift, mouse.Mod&tea.ModShift != 0)
	d.sim.SetKeyPressed(platform.KeyCtrl, mouse.Mod&tea.ModCtrl != 0)

	ev := wm.MouseMoveEvent{
		Point:       geometry.Point{X: mouse.X, Y: mouse.Y},
		IsMouseDown: d.mouseDown,
	}
	if err := d.pipeline.HandleMouseMove(ev, d.state, d.settings); err != nil {
		d.lastErr = err.Error()
	}
}

// clickFocus focuses and raises the window under a plain left click.
func (d *Desk) clickFocus(mouse tea.Mouse) {
	if mouse.Button != tea.MouseLeft {
		return
	}
	handle, err := d.sim.WindowFromPoint(geometry.Point{X: mouse.X, Y: mouse.Y})
	if err != nil {
		return
	}
	w, ok := d.state.WindowFromHandle(handle)
	if !ok {
		return
	}
	d.sim.Raise(handle)
	if err := d.pipeline.FocusWindow(d.state, w.Node); err != nil {
		d.logger.Error("click focus", "err", err)
	}
}

func (d *Desk) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		d.quitting = true
		return d, tea.Quit
	case "n":
		d.spawnWindow()
	case "x":
		d.closeFocused()
	case "f":
		d.toggleFloat()
	case "m":
		d.toggleState(wm.StateMinimized, wm.MinimizedState())
	case "z":
		d.toggleState(wm.StateFullscreen, wm.FullscreenState())
	case "space":
		d.retileAll()
	case "tab":
		d.focusNext()
	}
	return d, nil
}
