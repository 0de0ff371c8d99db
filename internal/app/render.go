package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dodorz/mosaic/internal/wm"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// layer z bands: floating shown-on-top windows sit above tiled ones,
// the focused window above its band, the status bar above everything.
const (
	zShownOnTop = 100
	zFocused    = 1000
	zStatusBar  = 10000
)

// GetCanvas renders every visible window as a layer composed onto one
// canvas. Geometry comes from the model tree, not the simulated
// platform, so drags are visible before the next apply tick.
func (d *Desk) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas()

	focusedStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62"))
	unfocusedStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	for i, w := range d.state.Windows() {
		if w.State.Kind == wm.StateMinimized {
			continue
		}
		frame, ok := wm.TargetFrame(d.state, w)
		if !ok || frame.Width < 2 || frame.Height < 2 {
			continue
		}

		focused := w.Node == d.state.Focused()
		style := unfocusedStyle
		if focused {
			style = focusedStyle
		}

		title, err := w.Title(d.sim)
		if err != nil {
			title = fmt.Sprintf("handle %d", w.Handle)
		}
		content := d.windowContent(w, title, frame.Width-2, frame.Height-2)
		box := style.Width(frame.Width - 2).Height(frame.Height - 2).Render(content)

		z := i + 1
		if w.State.Kind == wm.StateFloating && w.State.Floating.ShownOnTop {
			z += zShownOnTop
		}
		if focused {
			z += zFocused
		}
		layer := lipgloss.NewLayer(box).
			X(frame.X).Y(frame.Y).Z(z).ID(string(w.Node))
		canvas.AddLayers(layer)
	}

	bar := lipgloss.NewLayer(d.statusBar()).
		X(0).Y(d.height - 1).Z(zStatusBar).ID("statusbar")
	canvas.AddLayers(bar)
	return canvas
}

// windowContent fills a window body with its title and state line.
func (d *Desk) windowContent(w *wm.Window, title string, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	lines := make([]string, 0, height)
	lines = append(lines, truncate(title, width))
	if height > 1 {
		lines = append(lines, truncate(w.State.Kind.String(), width))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// statusBar renders the one-row bar: focused window, window count,
// CPU sparkline, RAM usage and the last per-event error if any.
func (d *Desk) statusBar() string {
	focused := "none"
	if w, ok := d.state.WindowAt(d.state.Focused()); ok {
		if title, err := w.Title(d.sim); err == nil {
			focused = fmt.Sprintf("%s [%s]", title, w.State.Kind)
		}
	}

	left := fmt.Sprintf(" %s | windows: %d", focused, len(d.state.Windows()))
	right := fmt.Sprintf("cpu %s | ram %.0f%% ", d.cpuSparkline(), d.ramUsage)
	if d.lastErr != "" {
		left += " | " + truncate(d.lastErr, 40)
	}

	pad := d.width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	bar := left + strings.Repeat(" ", pad) + right
	return lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("252")).
		Width(d.width).
		Render(truncate(bar, d.width))
}

// cpuSparkline turns the CPU history into a tiny bar graph.
func (d *Desk) cpuSparkline() string {
	if len(d.cpuHistory) == 0 {
		return strings.Repeat(string(sparkRunes[0]), cpuHistorySize)
	}
	var sb strings.Builder
	for _, v := range d.cpuHistory {
		idx := int(v / 100 * float64(len(sparkRunes)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		sb.WriteRune(sparkRunes[idx])
	}
	return sb.String()
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width {
		r = r[:width]
	}
	return string(r)
}

// View implements tea.Model.
func (d *Desk) View() tea.View {
	var view tea.View
	if d.quitting {
		view.SetContent("")
		return view
	}
	view.SetContent(lipgloss.Sprint(d.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	return view
}
