// Package app implements the interactive demo desktop: a bubbletea
// model that owns a simulated platform, feeds pointer events through
// the window manager pipeline and applies the pending change-set on a
// timer tick.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/dodorz/mosaic/internal/config"
	"github.com/dodorz/mosaic/internal/container"
	"github.com/dodorz/mosaic/internal/geometry"
	"github.com/dodorz/mosaic/internal/platform"
	"github.com/dodorz/mosaic/internal/wm"
)

// cpuHistorySize is the number of CPU samples kept for the status bar.
const cpuHistorySize = 10

// Options configures a new Desk.
type Options struct {
	UserConfig *config.UserConfig
	Logger     *log.Logger
	// InitialWindows is how many demo windows to open on startup.
	InitialWindows int
}

// Desk is the demo desktop model. It is the owner of the simulated
// platform and the window manager state; bubbletea's single event loop
// makes it the single writer both require.
type Desk struct {
	sim      *platform.Desktop
	state    *wm.State
	pipeline *wm.Pipeline
	sync     *wm.Synchronizer
	logger   *log.Logger

	settings    wm.Settings
	floatingCfg wm.FloatingConfig

	monitor   container.ID
	workspace container.ID

	width  int
	height int

	mouseDown bool
	nextID    int

	cpuHistory []float64
	ramUsage   float64
	lastErr    string

	quitting bool
}

// NewDesk builds the model with one monitor and one workspace. The
// window rects are in terminal cells until the first resize arrives.
func NewDesk(opts Options) *Desk {
	cfg := opts.UserConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	sim := platform.NewDesktop()
	state := wm.NewState()
	d := &Desk{
		sim:         sim,
		state:       state,
		pipeline:    wm.NewPipeline(sim, logger),
		sync:        wm.NewSynchronizer(sim, logger),
		logger:      logger,
		settings:    cfg.Settings(),
		floatingCfg: cfg.FloatingDefaults(),
		width:       80,
		height:      24,
	}
	d.monitor = state.Tree.NewMonitor(d.screenRect())
	if err := state.Tree.AppendChild(state.Tree.Root(), d.monitor); err != nil {
		logger.Error("attach monitor", "err", err)
	}
	d.workspace = state.Tree.NewWorkspace(d.workspaceRect())
	if err := state.Tree.AppendChild(d.monitor, d.workspace); err != nil {
		logger.Error("attach workspace", "err", err)
	}

	n := opts.InitialWindows
	if n <= 0 {
		n = 2
	}
	for range n {
		d.spawnWindow()
	}
	return d
}

// screenRect is the full terminal area.
func (d *Desk) screenRect() geometry.Rect {
	return geometry.Rect{Width: d.width, Height: d.height}
}

// workspaceRect is the screen minus the one-row status bar.
func (d *Desk) workspaceRect() geometry.Rect {
	h := d.height - 1
	if h < 1 {
		h = 1
	}
	return geometry.Rect{Width: d.width, Height: h}
}

// spawnWindow creates a simulated platform window and manages it.
func (d *Desk) spawnWindow() {
	d.nextID++
	title := fmt.Sprintf("window %d", d.nextID)
	frame := geometry.Rect{
		X:      2 * d.nextID,
		Y:      d.nextID,
		Width:  40,
		Height: 12,
	}
	handle := d.sim.AddWindow(frame, title, "mosaic-demo", "DemoWindow")
	w, err := d.state.ManageWindow(handle, d.workspace, frame)
	if err != nil {
		d.logger.Error("manage window", "handle", handle, "err", err)
		d.lastErr = err.Error()
		return
	}
	d.state.SetFocusedDescendant(w.Node)
	d.state.Pending.FocusChange = true
}

// closeFocused closes the focused window on both sides.
func (d *Desk) closeFocused() {
	w, ok := d.state.WindowAt(d.state.Focused())
	if !ok {
		return
	}
	handle := w.Handle
	if err := d.state.UnmanageWindow(w.Node); err != nil {
		d.logger.Error("unmanage window", "node", w.Node, "err", err)
		d.lastErr = err.Error()
		return
	}
	d.sim.CloseWindow(handle)
	d.focusNext()
}

// focusNext cycles focus through the managed windows in tree order.
func (d *Desk) focusNext() {
	windows := d.state.Windows()
	if len(windows) == 0 {
		return
	}
	next := windows[0]
	for i, w := range windows {
		if w.Node == d.state.Focused() {
			next = windows[(i+1)%len(windows)]
			break
		}
	}
	if err := d.pipeline.FocusWindow(d.state, next.Node); err != nil {
		d.logger.Error("cycle focus", "err", err)
	}
}

// toggleFloat flips the focused window between tiling and floating
// using the configured placement policy.
func (d *Desk) toggleFloat() {
	w, ok := d.state.WindowAt(d.state.Focused())
	if !ok {
		return
	}
	next := wm.FloatingState(d.floatingCfg)
	if w.State.Kind == wm.StateFloating {
		next = wm.TilingState()
	}
	if err := wm.UpdateWindowState(d.state, w, next); err != nil {
		d.logger.Error("toggle float", "node", w.Node, "err", err)
		d.lastErr = err.Error()
	}
}

// toggleState drives minimize and fullscreen: entering when elsewhere,
// restoring the prior state when already there.
func (d *Desk) toggleState(kind wm.StateKind, next wm.WindowState) {
	w, ok := d.state.WindowAt(d.state.Focused())
	if !ok {
		return
	}
	var err error
	if w.State.Kind == kind {
		err = wm.RestoreWindow(d.state, w)
	} else {
		err = wm.UpdateWindowState(d.state, w, next)
	}
	if err != nil {
		d.logger.Error("toggle state", "node", w.Node, "kind", kind, "err", err)
		d.lastErr = err.Error()
	}
}

// retileAll returns every window to the tiling layout.
func (d *Desk) retileAll() {
	for _, w := range d.state.Windows() {
		if w.State.Kind == wm.StateTiling {
			continue
		}
		if err := wm.UpdateWindowState(d.state, w, wm.TilingState()); err != nil {
			d.logger.Error("retile", "node", w.Node, "err", err)
			d.lastErr = err.Error()
		}
	}
}

// WantsMotion reports whether a plain motion event can have any
// effect: a button is held (potential drag) or focus follows the
// cursor. Used by the program's message filter to skip useless wakes.
func (d *Desk) WantsMotion(tea.MouseMotionMsg) bool {
	return d.mouseDown || d.settings.FocusFollowsCursor || d.pipeline.Drag().Moving()
}

// updateSystemInfo refreshes the CPU history and RAM usage shown in
// the status bar.
func (d *Desk) updateSystemInfo() {
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		d.cpuHistory = append(d.cpuHistory, percents[0])
		if len(d.cpuHistory) > cpuHistorySize {
			d.cpuHistory = d.cpuHistory[len(d.cpuHistory)-cpuHistorySize:]
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		d.ramUsage = vm.UsedPercent
	}
}

// resize propagates a new terminal size into the tree.
func (d *Desk) resize(width, height int) {
	d.width, d.height = width, height
	if err := d.state.Tree.SetRect(d.monitor, d.screenRect()); err != nil {
		d.logger.Error("resize monitor", "err", err)
	}
	if err := d.state.Tree.SetRect(d.workspace, d.workspaceRect()); err != nil {
		d.logger.Error("resize workspace", "err", err)
	}
	d.state.Pending.QueueRedraw(d.workspace)
}
