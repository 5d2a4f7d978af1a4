package arbor

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DockNodeFlag configures a dock tree. Flags are meaningful on roots and are
// inherited by a subtree promoted to root.
type DockNodeFlag uint8

const (
	DockNoBringToFront  DockNodeFlag = 1 << iota // activating a leaf does not raise the tree
	DockAllowSingleLeaf                          // the root survives with a single leaf

	DockNone DockNodeFlag = 0
)

// NodeKind distinguishes leaves from splits.
type NodeKind uint8

const (
	NodeLeaf  NodeKind = iota // hosts exactly one panel
	NodeSplit                 // divides its rect between two children
)

func (k NodeKind) String() string {
	if k == NodeSplit {
		return "split"
	}
	return "leaf"
}

// Split holds the layout of a split node. Children[0] is the left or top
// child depending on Axis; Ratio is the share of Children[0].
type Split struct {
	Children [2]ID
	Axis     Axis
	Ratio    float64
}

// DockNode is a node of a dock tree. Leaves reference their panel by ID;
// splits hold two children.
type DockNode struct {
	ID     ID
	Parent ID
	Kind   NodeKind
	Panel  ID    // valid for leaves
	Split  Split // valid for splits
	Rect   Rect
	Flags  DockNodeFlag
	Label  string
}

// IsLeaf reports whether n hosts a panel.
func (n *DockNode) IsLeaf() bool { return n.Kind == NodeLeaf }

// IsRoot reports whether n has no parent.
func (n *DockNode) IsRoot() bool { return n.Parent.IsNull() }

// DockTree stores every dock node of every tree in one table keyed by ID.
// Roots are the nodes without a parent.
type DockTree struct {
	nodes map[ID]*DockNode
}

// NewDockTree returns an empty dock tree table.
func NewDockTree() *DockTree {
	return &DockTree{nodes: make(map[ID]*DockNode)}
}

// Node returns the node for id. It panics on a dangling handle.
func (t *DockTree) Node(id ID) *DockNode {
	n, ok := t.nodes[id]
	if !ok {
		panic(fmt.Sprintf("arbor: dangling dock node handle %v", id))
	}
	return n
}

// Lookup returns the node for id and whether it exists.
func (t *DockTree) Lookup(id ID) (*DockNode, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Len returns the number of nodes across all trees.
func (t *DockTree) Len() int { return len(t.nodes) }

// Roots returns the root of every tree in ascending ID order.
func (t *DockTree) Roots() []ID {
	var roots []ID
	for id, n := range t.nodes {
		if n.IsRoot() {
			roots = append(roots, id)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	return roots
}

func (t *DockTree) insert(n *DockNode) {
	if _, ok := t.nodes[n.ID]; ok {
		panic(fmt.Sprintf("arbor: dock node %v already exists", n.ID))
	}
	t.nodes[n.ID] = n
}

func (t *DockTree) mustLeaf(id ID, op string) *DockNode {
	n := t.Node(id)
	if !n.IsLeaf() {
		panic(fmt.Sprintf("arbor: %s: dock node %v is a split, want a leaf", op, id))
	}
	return n
}

func (t *DockTree) mustSplit(id ID, op string) *DockNode {
	n := t.Node(id)
	if n.IsLeaf() {
		panic(fmt.Sprintf("arbor: %s: dock node %v is a leaf, want a split", op, id))
	}
	return n
}

// AddRoot creates a new single-leaf tree hosting panel and returns its root.
func (t *DockTree) AddRoot(rect Rect, panel ID, flags DockNodeFlag) ID {
	id := deriveID(panel, 0)
	t.insert(&DockNode{ID: id, Kind: NodeLeaf, Panel: panel, Rect: rect, Flags: flags})
	return id
}

// splitRect divides r along axis so the first part covers ratio of it.
func splitRect(r Rect, axis Axis, ratio float64) (Rect, Rect) {
	first := r.Extent(axis) * ratio
	a, b := r, r
	if axis == AxisX {
		a.Width = first
		b.X += first
		b.Width -= first
	} else {
		a.Height = first
		b.Y += first
		b.Height -= first
	}
	return a, b
}

func splitParams(dir Dir, ratio float64, op string) (Axis, float64) {
	if dir.IsCorner() {
		panic(fmt.Sprintf("arbor: %s: direction %v is not cardinal", op, dir))
	}
	if !(ratio > 0 && ratio <= 1) {
		panic(fmt.Sprintf("arbor: %s: ratio %v out of (0, 1]", op, ratio))
	}
	if dir == DirE || dir == DirS {
		ratio = 1 - ratio
	}
	return dir.Axis(), ratio
}

// SplitNode turns leaf id into a split with two new leaves. ratio is the
// share given to the side named by dir. It returns the leaf for the content
// that was already there, then the leaf for the incoming panel. Neither new
// leaf has a panel assigned yet.
func (t *DockTree) SplitNode(id ID, ratio float64, dir Dir) (existing, incoming ID) {
	n := t.mustLeaf(id, "SplitNode")
	axis, ratio := splitParams(dir, ratio, "SplitNode")

	n1 := deriveID(id, 0)
	n2 := deriveID(id, 1)
	t.insert(&DockNode{ID: n1, Parent: id, Kind: NodeLeaf})
	t.insert(&DockNode{ID: n2, Parent: id, Kind: NodeLeaf})

	n.Kind = NodeSplit
	n.Panel = NullID
	n.Split = Split{Children: [2]ID{n1, n2}, Axis: axis, Ratio: ratio}
	t.RecomputeRects(id, n.Rect)

	if dir == DirW || dir == DirN {
		return n2, n1
	}
	return n1, n2
}

// MergeNodes docks the whole tree rooted at docking beside leaf target.
// The target becomes a split holding a new leaf with its former panel and
// the docking subtree. It returns the new leaf now hosting target's panel.
func (t *DockTree) MergeNodes(target, docking ID, ratio float64, dir Dir) ID {
	tn := t.mustLeaf(target, "MergeNodes")
	dn := t.Node(docking)
	if !dn.IsRoot() {
		panic(fmt.Sprintf("arbor: MergeNodes: dock node %v is not a root", docking))
	}
	if t.Root(target) == docking {
		panic(fmt.Sprintf("arbor: MergeNodes: dock node %v merged into its own tree", docking))
	}
	axis, ratio := splitParams(dir, ratio, "MergeNodes")

	old := deriveID(target, 1)
	t.insert(&DockNode{ID: old, Parent: target, Kind: NodeLeaf, Panel: tn.Panel, Rect: tn.Rect})
	dn.Parent = target

	children := [2]ID{old, docking}
	if dir == DirW || dir == DirN {
		children = [2]ID{docking, old}
	}
	tn.Kind = NodeSplit
	tn.Panel = NullID
	tn.Split = Split{Children: children, Axis: axis, Ratio: ratio}
	t.RecomputeRects(target, tn.Rect)
	return old
}

// RecomputeRects assigns rect to node id and re-lays out its subtree from
// the stored ratios. Calling it twice with the same rect is a no-op.
func (t *DockTree) RecomputeRects(id ID, rect Rect) {
	type job struct {
		id   ID
		rect Rect
	}
	stack := []job{{id, rect}}
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.Node(j.id)
		n.Rect = j.rect
		if n.IsLeaf() {
			continue
		}
		a, b := splitRect(j.rect, n.Split.Axis, n.Split.Ratio)
		stack = append(stack, job{n.Split.Children[1], b}, job{n.Split.Children[0], a})
	}
}

// SetSplitRatio moves the boundary of split id. Nested boundaries keep their
// absolute position: each descendant split recomputes its ratio from where
// its first child currently ends.
func (t *DockTree) SetSplitRatio(id ID, ratio float64) {
	n := t.mustSplit(id, "SetSplitRatio")
	n.Split.Ratio = clamp(ratio, 0, 1)
	t.layoutChildren(n)

	stack := []ID{n.Split.Children[1], n.Split.Children[0]}
	for len(stack) > 0 {
		c := t.Node(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
		if c.IsLeaf() {
			continue
		}
		a := c.Split.Axis
		if size := c.Rect.Extent(a); size > 0 {
			first := t.Node(c.Split.Children[0])
			pos := first.Rect.End(a)
			c.Split.Ratio = clamp((pos-c.Rect.Start(a))/size, 0, 1)
		}
		t.layoutChildren(c)
		stack = append(stack, c.Split.Children[1], c.Split.Children[0])
	}
}

func (t *DockTree) layoutChildren(n *DockNode) {
	a, b := splitRect(n.Rect, n.Split.Axis, n.Split.Ratio)
	t.Node(n.Split.Children[0]).Rect = a
	t.Node(n.Split.Children[1]).Rect = b
}

// SplitRange returns how far the boundary of split id may move along its
// axis without crossing a nested boundary: from the furthest start of the
// first subtree's leaves to the nearest end of the second subtree's leaves.
func (t *DockTree) SplitRange(id ID) (lo, hi float64) {
	n := t.mustSplit(id, "SplitRange")
	a := n.Split.Axis
	lo, hi = n.Rect.Start(a), n.Rect.End(a)

	left := math.Inf(-1)
	for _, l := range t.Leaves(n.Split.Children[0]) {
		left = math.Max(left, t.Node(l).Rect.Start(a))
	}
	right := math.Inf(1)
	for _, l := range t.Leaves(n.Split.Children[1]) {
		right = math.Min(right, t.Node(l).Rect.End(a))
	}
	lo = math.Max(lo, left)
	hi = math.Min(hi, right)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// neighborParams maps a cardinal direction to the split axis that borders
// it and the child slot the walked-from node must occupy.
func neighborParams(dir Dir) (Axis, int) {
	switch dir {
	case DirN:
		return AxisY, 1
	case DirE:
		return AxisX, 0
	case DirS:
		return AxisY, 0
	case DirW:
		return AxisX, 1
	}
	panic(fmt.Sprintf("arbor: neighbor direction %v is not cardinal", dir))
}

// SplitToward returns the nearest ancestor split whose boundary lies on the
// dir side of id, or NullID if that side is the tree's outer edge.
func (t *DockTree) SplitToward(id ID, dir Dir) ID {
	axis, slot := neighborParams(dir)
	cur := id
	for parent := t.Node(cur).Parent; !parent.IsNull(); parent = t.Node(cur).Parent {
		p := t.Node(parent)
		if p.Split.Axis == axis && p.Split.Children[slot] == cur {
			return parent
		}
		cur = parent
	}
	return NullID
}

// Neighbor returns a leaf touching id on the dir side, or NullID if that
// side is the tree's outer edge.
func (t *DockTree) Neighbor(id ID, dir Dir) ID {
	split := t.SplitToward(id, dir)
	if split.IsNull() {
		return NullID
	}
	_, slot := neighborParams(dir)
	n := t.Node(t.Node(split).Split.Children[1-slot])
	for !n.IsLeaf() {
		n = t.Node(n.Split.Children[slot])
	}
	return n.ID
}

// Neighbors returns the neighbors of id in the order N, E, S, W.
func (t *DockTree) Neighbors(id ID) [4]ID {
	return [4]ID{
		t.Neighbor(id, DirN),
		t.Neighbor(id, DirE),
		t.Neighbor(id, DirS),
		t.Neighbor(id, DirW),
	}
}

// Root returns the root of the tree containing id.
func (t *DockTree) Root(id ID) ID {
	n := t.Node(id)
	for !n.IsRoot() {
		n = t.Node(n.Parent)
	}
	return n.ID
}

// Leaves returns the leaves under id, first child before second.
func (t *DockTree) Leaves(id ID) []ID {
	var leaves []ID
	t.walk(id, func(n *DockNode) {
		if n.IsLeaf() {
			leaves = append(leaves, n.ID)
		}
	})
	return leaves
}

// Tree returns every node under id, including id, in pre-order.
func (t *DockTree) Tree(id ID) []ID {
	var all []ID
	t.walk(id, func(n *DockNode) { all = append(all, n.ID) })
	return all
}

func (t *DockTree) walk(id ID, fn func(*DockNode)) {
	stack := []ID{id}
	for len(stack) > 0 {
		n := t.Node(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
		fn(n)
		if !n.IsLeaf() {
			stack = append(stack, n.Split.Children[1], n.Split.Children[0])
		}
	}
}

// Undock removes leaf id from its tree and frees its panel. The panel gets
// its pre-dock size back and is drawn directly above its former tree. The
// tree is repaired:
//
//   - a lone root leaf is deleted together with its tree;
//   - a sibling of the root split becomes the new root, unless it is a leaf
//     of a tree that does not allow single leaves, in which case it is freed
//     too and the tree dissolves;
//   - otherwise the sibling takes the parent's place under the grandparent.
func (t *DockTree) Undock(id ID, panels Panels, order *DrawOrder) {
	n := t.mustLeaf(id, "Undock")
	p := panels.Get(n.Panel)
	if p.Dock != id {
		panic(fmt.Sprintf("arbor: Undock: panel %q is docked at %v, not %v", p.Name, p.Dock, id))
	}
	root := t.Root(id)

	p.Dock = NullID
	if p.HasPreDock {
		p.Size = p.SizePreDock
	}
	order.InsertAfter(DockRoot(root), PanelRoot(p.ID))

	if n.IsRoot() {
		delete(t.nodes, id)
		order.Remove(DockRoot(root))
		return
	}

	parent := t.Node(n.Parent)
	sibID := parent.Split.Children[0]
	if sibID == id {
		sibID = parent.Split.Children[1]
	}
	sib := t.Node(sibID)

	if parent.IsRoot() {
		if sib.IsLeaf() && parent.Flags&DockAllowSingleLeaf == 0 {
			sp := panels.Get(sib.Panel)
			sp.Dock = NullID
			sp.moveTo(parent.Rect.Min())
			sp.Size = parent.Rect.Size()
			order.InsertAfter(DockRoot(parent.ID), PanelRoot(sp.ID))
			delete(t.nodes, id)
			delete(t.nodes, sibID)
			delete(t.nodes, parent.ID)
			order.Remove(DockRoot(parent.ID))
			return
		}

		sib.Parent = NullID
		sib.Flags |= parent.Flags
		if sib.Label == "" {
			sib.Label = parent.Label
		}
		delete(t.nodes, id)
		delete(t.nodes, parent.ID)
		t.RecomputeRects(sibID, parent.Rect)
		order.Replace(DockRoot(parent.ID), DockRoot(sibID))
		return
	}

	gp := t.Node(parent.Parent)
	if gp.Split.Children[0] == parent.ID {
		gp.Split.Children[0] = sibID
	} else {
		gp.Split.Children[1] = sibID
	}
	sib.Parent = gp.ID
	delete(t.nodes, id)
	delete(t.nodes, parent.ID)
	t.RecomputeRects(sibID, parent.Rect)
}

// check verifies the structural invariants of every tree against the panel
// registry.
func (t *DockTree) check(panels Panels) error {
	for id, n := range t.nodes {
		if n.ID != id {
			return fmt.Errorf("dock node %v stored under %v", n.ID, id)
		}
		if !n.IsRoot() {
			p, ok := t.nodes[n.Parent]
			if !ok {
				return fmt.Errorf("dock node %v: dangling parent %v", id, n.Parent)
			}
			if p.IsLeaf() || (p.Split.Children[0] != id && p.Split.Children[1] != id) {
				return fmt.Errorf("dock node %v: parent %v does not list it as a child", id, n.Parent)
			}
		}
		if n.IsLeaf() {
			p, ok := panels[n.Panel]
			if !ok {
				return fmt.Errorf("dock leaf %v: dangling panel %v", id, n.Panel)
			}
			if p.Dock != id {
				return fmt.Errorf("dock leaf %v: panel %q points at %v", id, p.Name, p.Dock)
			}
			continue
		}
		for _, c := range n.Split.Children {
			cn, ok := t.nodes[c]
			if !ok {
				return fmt.Errorf("dock split %v: dangling child %v", id, c)
			}
			if cn.Parent != id {
				return fmt.Errorf("dock split %v: child %v has parent %v", id, c, cn.Parent)
			}
		}
		if n.Split.Children[0] == n.Split.Children[1] {
			return fmt.Errorf("dock split %v: both children are %v", id, n.Split.Children[0])
		}
	}
	return nil
}

// String renders every tree as an indented outline. Used by debug output.
func (t *DockTree) String() string {
	var b strings.Builder
	for _, root := range t.Roots() {
		t.dump(&b, root, 0)
	}
	return b.String()
}

func (t *DockTree) dump(b *strings.Builder, id ID, depth int) {
	n := t.Node(id)
	indent := strings.Repeat("  ", depth)
	r := n.Rect
	if n.IsLeaf() {
		fmt.Fprintf(b, "%sleaf %v panel=%v [%.0f,%.0f %.0fx%.0f]\n", indent, n.ID, n.Panel, r.X, r.Y, r.Width, r.Height)
		return
	}
	fmt.Fprintf(b, "%ssplit %v axis=%v ratio=%.3f [%.0f,%.0f %.0fx%.0f]\n", indent, n.ID, n.Split.Axis, n.Split.Ratio, r.X, r.Y, r.Width, r.Height)
	t.dump(b, n.Split.Children[0], depth+1)
	t.dump(b, n.Split.Children[1], depth+1)
}
