package wm

import (
	"testing"

	"github.com/dodorz/mosaic/internal/container"
)

func TestQueueRedrawDeduplicates(t *testing.T) {
	p := NewPendingSync()
	a, b := container.NewID(), container.NewID()

	p.QueueRedraw(a)
	p.QueueRedraw(b)
	p.QueueRedraw(a)
	p.QueueRedraw(a)

	if p.Len() != 2 {
		t.Errorf("queue length = %d, want 2", p.Len())
	}
	_, redraw := p.Drain()
	if len(redraw) != 2 || redraw[0] != a || redraw[1] != b {
		t.Errorf("drained %v, want [%s %s]", redraw, a, b)
	}
}

func TestDrainClearsEverything(t *testing.T) {
	p := NewPendingSync()
	a := container.NewID()
	p.QueueRedraw(a)
	p.FocusChange = true

	focus, redraw := p.Drain()
	if !focus || len(redraw) != 1 {
		t.Fatalf("drained focus=%v redraw=%v", focus, redraw)
	}
	if !p.Empty() {
		t.Error("accumulator not empty after drain")
	}
	// A second drain yields nothing; the first was all-or-nothing.
	focus, redraw = p.Drain()
	if focus || len(redraw) != 0 {
		t.Errorf("second drain returned focus=%v redraw=%v", focus, redraw)
	}
}

func TestRequeueMergesWithNewWork(t *testing.T) {
	p := NewPendingSync()
	a, b := container.NewID(), container.NewID()
	p.QueueRedraw(a)
	p.FocusChange = true

	focus, redraw := p.Drain()
	p.QueueRedraw(b)
	p.QueueRedraw(a)
	p.Requeue(focus, redraw)

	if !p.FocusChange {
		t.Error("requeue dropped the focus flag")
	}
	if p.Len() != 2 {
		t.Errorf("queue length = %d, want 2", p.Len())
	}
	if !p.Queued(a) || !p.Queued(b) {
		t.Error("requeue lost a container")
	}
}
