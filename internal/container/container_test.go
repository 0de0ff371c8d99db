package container

import (
	"errors"
	"testing"

	"github.com/dodorz/mosaic/internal/geometry"
)

func newTestTree(t *testing.T) (*Tree, ID, ID) {
	t.Helper()
	tr := New()
	monitor := tr.NewMonitor(geometry.Rect{Width: 1920, Height: 1080})
	workspace := tr.NewWorkspace(geometry.Rect{Width: 1920, Height: 1080})
	if err := tr.AppendChild(tr.Root(), monitor); err != nil {
		t.Fatalf("attach monitor: %v", err)
	}
	if err := tr.AppendChild(monitor, workspace); err != nil {
		t.Fatalf("attach workspace: %v", err)
	}
	return tr, monitor, workspace
}

// checkConsistency verifies that every container's stored parent reference
// matches the parent that owns it, and vice versa.
func checkConsistency(t *testing.T, tr *Tree) {
	t.Helper()
	for id, n := range tr.nodes {
		if n.parent != None {
			found := false
			for _, c := range tr.nodes[n.parent].children {
				if c == id {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("container %s has parent %s but is not among its children", id, n.parent)
			}
		}
		for _, c := range n.children {
			child, ok := tr.nodes[c]
			if !ok {
				t.Errorf("container %s owns unknown child %s", id, c)
				continue
			}
			if child.parent != id {
				t.Errorf("child %s of %s stores parent %s", c, id, child.parent)
			}
		}
	}
}

func TestInsertDetachConsistency(t *testing.T) {
	tr, _, workspace := newTestTree(t)

	a := tr.NewWindow(geometry.Rect{Width: 100, Height: 100})
	b := tr.NewWindow(geometry.Rect{Width: 100, Height: 100})
	c := tr.NewWindow(geometry.Rect{Width: 100, Height: 100})

	if err := tr.AppendChild(workspace, a); err != nil {
		t.Fatalf("append a: %v", err)
	}
	if err := tr.AppendChild(workspace, c); err != nil {
		t.Fatalf("append c: %v", err)
	}
	if err := tr.InsertChild(workspace, 1, b); err != nil {
		t.Fatalf("insert b: %v", err)
	}

	want := []ID{a, b, c}
	got := tr.Children(workspace)
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	checkConsistency(t, tr)

	if err := tr.Detach(b); err != nil {
		t.Fatalf("detach b: %v", err)
	}
	if _, ok := tr.Parent(b); ok {
		t.Error("detached container still reports a parent")
	}
	if got := tr.Children(workspace); len(got) != 2 {
		t.Errorf("children after detach = %v, want [a c]", got)
	}
	checkConsistency(t, tr)
}

func TestInsertAttachedChildFails(t *testing.T) {
	tr, _, workspace := newTestTree(t)

	w := tr.NewWindow(geometry.Rect{})
	if err := tr.AppendChild(workspace, w); err != nil {
		t.Fatalf("append: %v", err)
	}

	split := tr.NewSplit(Horizontal)
	if err := tr.AppendChild(workspace, split); err != nil {
		t.Fatalf("append split: %v", err)
	}

	// Inserting without detaching first must fail, not be corrected.
	err := tr.AppendChild(split, w)
	if !errors.Is(err, ErrAttached) {
		t.Fatalf("insert of attached child: err = %v, want ErrAttached", err)
	}
	checkConsistency(t, tr)
}

func TestAcyclicity(t *testing.T) {
	tr, _, workspace := newTestTree(t)

	outer := tr.NewSplit(Horizontal)
	inner := tr.NewSplit(Vertical)
	if err := tr.AppendChild(workspace, outer); err != nil {
		t.Fatalf("append outer: %v", err)
	}
	if err := tr.AppendChild(outer, inner); err != nil {
		t.Fatalf("append inner: %v", err)
	}

	// outer is an ancestor of inner; detaching outer and inserting it
	// below its own descendant must be rejected.
	if err := tr.Detach(outer); err != nil {
		t.Fatalf("detach: %v", err)
	}
	err := tr.AppendChild(inner, outer)
	if !errors.Is(err, ErrWouldCycle) {
		t.Fatalf("cyclic insert: err = %v, want ErrWouldCycle", err)
	}

	// Self-insertion is the degenerate cycle.
	err = tr.AppendChild(outer, outer)
	if !errors.Is(err, ErrWouldCycle) {
		t.Fatalf("self insert: err = %v, want ErrWouldCycle", err)
	}

	// No container is ever its own ancestor.
	for id := range tr.nodes {
		if tr.IsAncestor(id, id) {
			t.Errorf("container %s is its own ancestor", id)
		}
	}
}

func TestRootAncestor(t *testing.T) {
	tr, monitor, workspace := newTestTree(t)

	w := tr.NewWindow(geometry.Rect{})
	if err := tr.AppendChild(workspace, w); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := tr.RootAncestor(w)
	if err != nil {
		t.Fatalf("root ancestor: %v", err)
	}
	if got != tr.Root() {
		t.Errorf("root ancestor = %s, want root %s", got, tr.Root())
	}

	anc := tr.Ancestors(w)
	want := []ID{workspace, monitor, tr.Root()}
	if len(anc) != len(want) {
		t.Fatalf("ancestors = %v, want %v", anc, want)
	}
	for i := range want {
		if anc[i] != want[i] {
			t.Errorf("ancestors[%d] = %s, want %s", i, anc[i], want[i])
		}
	}

	ws, ok := tr.AncestorOfKind(w, KindWorkspace)
	if !ok || ws != workspace {
		t.Errorf("AncestorOfKind(workspace) = %s, %v", ws, ok)
	}
}

func TestWindowCannotOwnChildren(t *testing.T) {
	tr, _, workspace := newTestTree(t)

	w := tr.NewWindow(geometry.Rect{})
	other := tr.NewWindow(geometry.Rect{})
	if err := tr.AppendChild(workspace, w); err != nil {
		t.Fatalf("append: %v", err)
	}

	err := tr.AppendChild(w, other)
	if !errors.Is(err, ErrNoChildren) {
		t.Fatalf("insert into window: err = %v, want ErrNoChildren", err)
	}
}

func TestInsertIndexOutOfRange(t *testing.T) {
	tr, _, workspace := newTestTree(t)

	w := tr.NewWindow(geometry.Rect{})
	err := tr.InsertChild(workspace, 5, w)
	if !errors.Is(err, ErrIndexRange) {
		t.Fatalf("out-of-range insert: err = %v, want ErrIndexRange", err)
	}
}

func TestRemove(t *testing.T) {
	tr, _, workspace := newTestTree(t)

	w := tr.NewWindow(geometry.Rect{})
	if err := tr.AppendChild(workspace, w); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := tr.Remove(workspace); !errors.Is(err, ErrNotLeaf) {
		t.Fatalf("remove non-leaf: err = %v, want ErrNotLeaf", err)
	}
	if err := tr.Remove(w); err != nil {
		t.Fatalf("remove window: %v", err)
	}
	if tr.Exists(w) {
		t.Error("removed container still present")
	}
	if got := tr.Children(workspace); got != nil {
		t.Errorf("children after remove = %v, want none", got)
	}
	if err := tr.Remove(tr.Root()); !errors.Is(err, ErrRootRemoval) {
		t.Fatalf("remove root: err = %v, want ErrRootRemoval", err)
	}
}

func TestTilingChildren(t *testing.T) {
	tr, _, workspace := newTestTree(t)

	a := tr.NewWindow(geometry.Rect{})
	b := tr.NewWindow(geometry.Rect{})
	for _, id := range []ID{a, b} {
		if err := tr.AppendChild(workspace, id); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	if err := tr.SetTiling(b, false); err != nil {
		t.Fatalf("set tiling: %v", err)
	}
	got := tr.TilingChildren(workspace)
	if len(got) != 1 || got[0] != a {
		t.Errorf("tiling children = %v, want [%s]", got, a)
	}
	// Ordered children still include the floating window.
	if got := tr.Children(workspace); len(got) != 2 {
		t.Errorf("children = %v, want both windows", got)
	}
}

func TestLookupMissIsNotFound(t *testing.T) {
	tr := New()
	if _, err := tr.Kind(ID("missing")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("kind of missing: err = %v, want ErrNotFound", err)
	}
	if _, err := tr.Rect(ID("missing")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("rect of missing: err = %v, want ErrNotFound", err)
	}
}
