// Package container implements the window-management tree as an arena of
// containers keyed by opaque identifiers. Parent/child relations are ID
// references resolved through the Tree; every mutating operation enforces
// the one-parent invariant, which is what keeps the graph acyclic.
package container

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dodorz/mosaic/internal/geometry"
)

// ID is the opaque identity of a container. IDs are unique per Tree.
type ID string

// None is the zero ID, used for detached containers and missing lookups.
const None ID = ""

// NewID returns a fresh container identity.
func NewID() ID {
	return ID(uuid.NewString())
}

// Kind discriminates the container variants.
type Kind int

const (
	// KindRoot is the single topmost container of a tree.
	KindRoot Kind = iota
	// KindMonitor represents a physical display.
	KindMonitor
	// KindWorkspace is a virtual desktop on a monitor.
	KindWorkspace
	// KindSplit is an intermediate layout node dividing its rect
	// among its tiling children.
	KindSplit
	// KindWindow is a leaf bound to a platform window.
	KindWindow
)

// String implements fmt.Stringer for log output.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindMonitor:
		return "monitor"
	case KindWorkspace:
		return "workspace"
	case KindSplit:
		return "split"
	case KindWindow:
		return "window"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Orientation is the axis a split divides its children along.
type Orientation int

const (
	// Horizontal lays children out left to right.
	Horizontal Orientation = iota
	// Vertical lays children out top to bottom.
	Vertical
)

// Sentinel errors. ErrNotFound is a recoverable per-event condition; the
// remaining errors are invariant violations and must never be absorbed.
var (
	ErrNotFound    = errors.New("container not found")
	ErrAttached    = errors.New("container already has a parent")
	ErrWouldCycle  = errors.New("insertion would make a container its own ancestor")
	ErrNotLeaf     = errors.New("container still has children")
	ErrNoChildren  = errors.New("container kind cannot own children")
	ErrIndexRange  = errors.New("child index out of range")
	ErrRootRemoval = errors.New("the root container cannot be detached or removed")
)

// node is the arena entry for one container.
type node struct {
	id       ID
	kind     Kind
	parent   ID
	children []ID

	rect        geometry.Rect
	orientation Orientation
	// tiling is false for windows in a non-tiling state; such children
	// stay in the tree but are skipped by layout derivation.
	tiling bool
}

// Tree is the arena owning all containers. It is not safe for concurrent
// mutation; the event pipeline is the single writer.
type Tree struct {
	nodes map[ID]*node
	root  ID
}

// New creates an arena holding only the root container.
func New() *Tree {
	t := &Tree{nodes: make(map[ID]*node)}
	root := &node{id: NewID(), kind: KindRoot, tiling: true}
	t.nodes[root.id] = root
	t.root = root.id
	return t
}

// Root returns the identity of the single root container.
func (t *Tree) Root() ID {
	return t.root
}

// NewMonitor allocates a detached monitor container covering rect.
func (t *Tree) NewMonitor(rect geometry.Rect) ID {
	return t.alloc(KindMonitor, rect, true)
}

// NewWorkspace allocates a detached workspace container covering rect.
func (t *Tree) NewWorkspace(rect geometry.Rect) ID {
	return t.alloc(KindWorkspace, rect, true)
}

// NewSplit allocates a detached split container with the given orientation.
func (t *Tree) NewSplit(orientation Orientation) ID {
	id := t.alloc(KindSplit, geometry.Rect{}, true)
	t.nodes[id].orientation = orientation
	return id
}

// NewWindow allocates a detached window container with an initial frame.
func (t *Tree) NewWindow(frame geometry.Rect) ID {
	return t.alloc(KindWindow, frame, true)
}

func (t *Tree) alloc(kind Kind, rect geometry.Rect, tiling bool) ID {
	n := &node{id: NewID(), kind: kind, rect: rect, tiling: tiling}
	t.nodes[n.id] = n
	return n.id
}

// Kind returns the variant of the container, or an ErrNotFound.
func (t *Tree) Kind(id ID) (Kind, error) {
	n, ok := t.nodes[id]
	if !ok {
		return 0, fmt.Errorf("kind of %s: %w", id, ErrNotFound)
	}
	return n.kind, nil
}

// Exists reports whether id is present in the arena.
func (t *Tree) Exists(id ID) bool {
	_, ok := t.nodes[id]
	return ok
}

// Parent returns the owning parent of id, or false when id is the root or
// currently detached.
func (t *Tree) Parent(id ID) (ID, bool) {
	n, ok := t.nodes[id]
	if !ok || n.parent == None {
		return None, false
	}
	return n.parent, true
}

// Children returns the ordered children sequence. Leaf windows return nil.
// The returned slice is a copy; callers may not mutate tree order through it.
func (t *Tree) Children(id ID) []ID {
	n, ok := t.nodes[id]
	if !ok || len(n.children) == 0 {
		return nil
	}
	out := make([]ID, len(n.children))
	copy(out, n.children)
	return out
}

// canParent reports whether kind may own children.
func canParent(kind Kind) bool {
	return kind != KindWindow
}

// InsertChild inserts child into parent's children at index and points the
// child's parent reference back at parent. The caller must have detached
// the child first: inserting an attached container is an invariant
// violation, not something silently corrected.
func (t *Tree) InsertChild(parent ID, index int, child ID) error {
	p, ok := t.nodes[parent]
	if !ok {
		return fmt.Errorf("insert into %s: %w", parent, ErrNotFound)
	}
	c, ok := t.nodes[child]
	if !ok {
		return fmt.Errorf("insert %s: %w", child, ErrNotFound)
	}
	if !canParent(p.kind) {
		return fmt.Errorf("insert into %s %s: %w", p.kind, parent, ErrNoChildren)
	}
	if c.parent != None {
		return fmt.Errorf("insert %s into %s: %w", child, parent, ErrAttached)
	}
	if child == parent || t.isAncestor(child, parent) {
		return fmt.Errorf("insert %s into %s: %w", child, parent, ErrWouldCycle)
	}
	if index < 0 || index > len(p.children) {
		return fmt.Errorf("insert %s at %d of %d: %w", child, index, len(p.children), ErrIndexRange)
	}

	p.children = append(p.children, None)
	copy(p.children[index+1:], p.children[index:])
	p.children[index] = child
	c.parent = parent
	return nil
}

// AppendChild inserts child as the last child of parent.
func (t *Tree) AppendChild(parent, child ID) error {
	p, ok := t.nodes[parent]
	if !ok {
		return fmt.Errorf("append to %s: %w", parent, ErrNotFound)
	}
	return t.InsertChild(parent, len(p.children), child)
}

// Detach removes child from its parent's children sequence and clears its
// parent reference. Detaching an already-detached container is a no-op.
func (t *Tree) Detach(child ID) error {
	c, ok := t.nodes[child]
	if !ok {
		return fmt.Errorf("detach %s: %w", child, ErrNotFound)
	}
	if c.kind == KindRoot {
		return fmt.Errorf("detach %s: %w", child, ErrRootRemoval)
	}
	if c.parent == None {
		return nil
	}
	p := t.nodes[c.parent]
	for i, id := range p.children {
		if id == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	c.parent = None
	return nil
}

// ChildIndex returns the position of child within its parent's children.
func (t *Tree) ChildIndex(child ID) (int, error) {
	c, ok := t.nodes[child]
	if !ok {
		return 0, fmt.Errorf("index of %s: %w", child, ErrNotFound)
	}
	if c.parent == None {
		return 0, fmt.Errorf("index of %s: %w", child, ErrNotFound)
	}
	for i, id := range t.nodes[c.parent].children {
		if id == child {
			return i, nil
		}
	}
	// Unreachable while the one-parent invariant holds.
	return 0, fmt.Errorf("index of %s: %w", child, ErrNotFound)
}

// Remove destroys a detached or leaf container. Containers that still own
// children must be emptied first so no subtree is silently dropped.
func (t *Tree) Remove(id ID) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	if n.kind == KindRoot {
		return fmt.Errorf("remove %s: %w", id, ErrRootRemoval)
	}
	if len(n.children) > 0 {
		return fmt.Errorf("remove %s: %w", id, ErrNotLeaf)
	}
	if err := t.Detach(id); err != nil {
		return err
	}
	delete(t.nodes, id)
	return nil
}

// RootAncestor walks parent references to the topmost container owning id.
// A detached container is its own root ancestor.
func (t *Tree) RootAncestor(id ID) (ID, error) {
	n, ok := t.nodes[id]
	if !ok {
		return None, fmt.Errorf("root ancestor of %s: %w", id, ErrNotFound)
	}
	for n.parent != None {
		n = t.nodes[n.parent]
	}
	return n.id, nil
}

// IsAncestor reports whether ancestor appears on the parent chain of id.
func (t *Tree) IsAncestor(ancestor, id ID) bool {
	if _, ok := t.nodes[ancestor]; !ok {
		return false
	}
	return t.isAncestor(ancestor, id)
}

func (t *Tree) isAncestor(ancestor, id ID) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	for n.parent != None {
		if n.parent == ancestor {
			return true
		}
		n = t.nodes[n.parent]
	}
	return false
}

// Ancestors returns the parent chain of id from nearest to root.
func (t *Tree) Ancestors(id ID) []ID {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	var out []ID
	for n.parent != None {
		out = append(out, n.parent)
		n = t.nodes[n.parent]
	}
	return out
}

// AncestorOfKind walks up from id to the nearest ancestor of the given
// kind, id itself included.
func (t *Tree) AncestorOfKind(id ID, kind Kind) (ID, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return None, false
	}
	for {
		if n.kind == kind {
			return n.id, true
		}
		if n.parent == None {
			return None, false
		}
		n = t.nodes[n.parent]
	}
}

// Rect returns the stored position of the container.
func (t *Tree) Rect(id ID) (geometry.Rect, error) {
	n, ok := t.nodes[id]
	if !ok {
		return geometry.Rect{}, fmt.Errorf("rect of %s: %w", id, ErrNotFound)
	}
	return n.rect, nil
}

// SetRect stores a new position for the container.
func (t *Tree) SetRect(id ID, rect geometry.Rect) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set rect of %s: %w", id, ErrNotFound)
	}
	n.rect = rect
	return nil
}

// Orientation returns the split axis of a split container.
func (t *Tree) Orientation(id ID) (Orientation, error) {
	n, ok := t.nodes[id]
	if !ok {
		return 0, fmt.Errorf("orientation of %s: %w", id, ErrNotFound)
	}
	return n.orientation, nil
}

// IsTiling reports whether the container participates in automatic layout.
// Non-window containers always do; windows drop out while floating,
// minimized or fullscreen.
func (t *Tree) IsTiling(id ID) bool {
	n, ok := t.nodes[id]
	return ok && n.tiling
}

// SetTiling flips a window in or out of automatic layout.
func (t *Tree) SetTiling(id ID, tiling bool) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set tiling of %s: %w", id, ErrNotFound)
	}
	n.tiling = tiling
	return nil
}

// TilingChildren returns the ordered children participating in layout.
func (t *Tree) TilingChildren(id ID) []ID {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	var out []ID
	for _, c := range n.children {
		if t.nodes[c].tiling {
			out = append(out, c)
		}
	}
	return out
}
