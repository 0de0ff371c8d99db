package wm

import "github.com/dodorz/mosaic/internal/container"

// PendingSync accumulates the effects of processed events until the
// synchronizer pushes them to the platform. The redraw queue has set
// semantics: queueing a container already queued is a no-op.
type PendingSync struct {
	// FocusChange is set when the focused container changed and the
	// platform focus must be updated on the next apply.
	FocusChange bool

	redraw map[container.ID]struct{}
	order  []container.ID
}

// NewPendingSync returns an empty accumulator.
func NewPendingSync() *PendingSync {
	return &PendingSync{redraw: make(map[container.ID]struct{})}
}

// QueueRedraw marks a container as needing its geometry reapplied.
func (p *PendingSync) QueueRedraw(id container.ID) {
	if _, ok := p.redraw[id]; ok {
		return
	}
	p.redraw[id] = struct{}{}
	p.order = append(p.order, id)
}

// Queued reports whether id is currently in the redraw queue.
func (p *PendingSync) Queued(id container.ID) bool {
	_, ok := p.redraw[id]
	return ok
}

// Len returns the number of queued containers.
func (p *PendingSync) Len() int {
	return len(p.order)
}

// Empty reports whether there is nothing to apply.
func (p *PendingSync) Empty() bool {
	return !p.FocusChange && len(p.order) == 0
}

// Drain returns the accumulated focus flag and redraw queue in
// insertion order and clears both. The accumulator is left empty even
// if the caller fails to apply the change-set; failed sets are handed
// back whole via Requeue.
func (p *PendingSync) Drain() (focusChange bool, redraw []container.ID) {
	focusChange = p.FocusChange
	redraw = p.order
	p.FocusChange = false
	p.order = nil
	p.redraw = make(map[container.ID]struct{})
	return focusChange, redraw
}

// Requeue puts a drained change-set back, merging with anything queued
// since the drain.
func (p *PendingSync) Requeue(focusChange bool, redraw []container.ID) {
	if focusChange {
		p.FocusChange = true
	}
	for _, id := range redraw {
		p.QueueRedraw(id)
	}
}
