package wm

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/dodorz/mosaic/internal/container"
	"github.com/dodorz/mosaic/internal/platform"
)

// Synchronizer is the apply phase: it drains the pending-sync
// accumulator, derives tiled geometry from the tree and pushes frames
// and focus to the platform. Model mutation and platform IO never
// interleave; the pipeline mutates, the synchronizer applies.
type Synchronizer struct {
	platform platform.Platform
	logger   *log.Logger
}

// NewSynchronizer returns a synchronizer bound to a platform adapter.
func NewSynchronizer(p platform.Platform, logger *log.Logger) *Synchronizer {
	return &Synchronizer{platform: p, logger: logger}
}

// Apply flushes the pending change-set. On a platform failure the
// drained set is requeued whole so the next tick retries; successfully
// pushed frames are not rolled back.
func (sy *Synchronizer) Apply(s *State) error {
	if s.Pending.Empty() {
		return nil
	}
	focusChange, dirty := s.Pending.Drain()

	Retile(s.Tree)

	pushed := make(map[container.ID]struct{})
	for _, id := range dirty {
		for _, w := range windowsUnder(s, id) {
			if _, done := pushed[w.Node]; done {
				continue
			}
			pushed[w.Node] = struct{}{}
			frame, ok := TargetFrame(s, w)
			if !ok || frame.IsEmpty() {
				// Retiling a too-small workspace can squeeze a
				// window to nothing; never push a degenerate frame.
				continue
			}
			if err := sy.platform.SetFrame(w.Handle, frame); err != nil {
				s.Pending.Requeue(focusChange, dirty)
				sy.logger.Warn("apply frame failed",
					"handle", w.Handle, "node", w.Node, "err", err)
				return fmt.Errorf("apply frame of %d: %w", w.Handle, err)
			}
		}
	}

	if focusChange {
		if w, ok := s.WindowAt(s.Focused()); ok {
			if err := sy.platform.SetForeground(w.Handle); err != nil {
				s.Pending.Requeue(true, dirty)
				sy.logger.Warn("apply focus failed",
					"handle", w.Handle, "err", err)
				return fmt.Errorf("apply focus of %d: %w", w.Handle, err)
			}
		}
	}
	return nil
}

// windowsUnder collects the managed windows in the subtree rooted at
// id, id itself included. Containers removed since they were queued
// contribute nothing.
func windowsUnder(s *State, id container.ID) []*Window {
	if !s.Tree.Exists(id) {
		return nil
	}
	var out []*Window
	var walk func(container.ID)
	walk = func(n container.ID) {
		if w, ok := s.windows[n]; ok {
			out = append(out, w)
			return
		}
		for _, c := range s.Tree.Children(n) {
			walk(c)
		}
	}
	walk(id)
	return out
}
