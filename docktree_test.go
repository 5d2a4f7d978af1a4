package arbor

import (
	"math"
	"strings"
	"testing"
)

// dockFixture builds free panels registered in a Panels map and a draw order
// listing them.
func dockFixture(names ...string) (*DockTree, Panels, *DrawOrder, []*Panel) {
	t := NewDockTree()
	ps := Panels{}
	order := &DrawOrder{}
	var out []*Panel
	for _, n := range names {
		p := newPanel(HashString(n), n, 0)
		ps[p.ID] = p
		order.Push(PanelRoot(p.ID))
		out = append(out, p)
	}
	return t, ps, order, out
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func rectApprox(a, b Rect) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Width, b.Width) && approx(a.Height, b.Height)
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestSplitNodeDirections(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 100, Height: 200}
	tests := []struct {
		dir          Dir
		existing     Rect
		incoming     Rect
		wantAxis     Axis
		wantRatio    float64
		incomingSlot int
	}{
		{DirW, Rect{25, 0, 75, 200}, Rect{0, 0, 25, 200}, AxisX, 0.25, 0},
		{DirE, Rect{0, 0, 75, 200}, Rect{75, 0, 25, 200}, AxisX, 0.75, 1},
		{DirN, Rect{0, 50, 100, 150}, Rect{0, 0, 100, 50}, AxisY, 0.25, 0},
		{DirS, Rect{0, 0, 100, 150}, Rect{0, 150, 100, 50}, AxisY, 0.75, 1},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			tree := NewDockTree()
			root := tree.AddRoot(area, HashString("a"), DockNone)
			existing, incoming := tree.SplitNode(root, 0.25, tt.dir)

			n := tree.Node(root)
			if n.IsLeaf() {
				t.Fatal("root is still a leaf after SplitNode")
			}
			if n.Split.Axis != tt.wantAxis {
				t.Errorf("axis = %v, want %v", n.Split.Axis, tt.wantAxis)
			}
			if !approx(n.Split.Ratio, tt.wantRatio) {
				t.Errorf("ratio = %v, want %v", n.Split.Ratio, tt.wantRatio)
			}
			if n.Split.Children[tt.incomingSlot] != incoming {
				t.Errorf("incoming leaf is not child %d", tt.incomingSlot)
			}
			if got := tree.Node(existing).Rect; !rectApprox(got, tt.existing) {
				t.Errorf("existing rect = %+v, want %+v", got, tt.existing)
			}
			if got := tree.Node(incoming).Rect; !rectApprox(got, tt.incoming) {
				t.Errorf("incoming rect = %+v, want %+v", got, tt.incoming)
			}
			if tree.Node(existing).Parent != root || tree.Node(incoming).Parent != root {
				t.Error("new leaves are not parented to the split")
			}
		})
	}
}

func TestSplitNodePanics(t *testing.T) {
	tree := NewDockTree()
	root := tree.AddRoot(Rect{Width: 10, Height: 10}, HashString("a"), DockNone)

	expectPanic(t, "corner dir", func() { tree.SplitNode(root, 0.5, DirNE) })
	expectPanic(t, "zero ratio", func() { tree.SplitNode(root, 0, DirW) })
	expectPanic(t, "ratio above one", func() { tree.SplitNode(root, 1.5, DirW) })
	expectPanic(t, "dangling", func() { tree.SplitNode(ID(12345), 0.5, DirW) })

	tree.SplitNode(root, 0.5, DirW)
	expectPanic(t, "split is not a leaf", func() { tree.SplitNode(root, 0.5, DirW) })
}

func TestRecomputeRectsIdempotent(t *testing.T) {
	tree := NewDockTree()
	root := tree.AddRoot(Rect{Width: 100, Height: 100}, HashString("a"), DockNone)
	_, inc := tree.SplitNode(root, 0.3, DirE)
	tree.SplitNode(inc, 0.5, DirS)

	r := Rect{X: 10, Y: 20, Width: 300, Height: 150}
	tree.RecomputeRects(root, r)
	first := map[ID]Rect{}
	for _, id := range tree.Tree(root) {
		first[id] = tree.Node(id).Rect
	}
	tree.RecomputeRects(root, r)
	for _, id := range tree.Tree(root) {
		if got := tree.Node(id).Rect; got != first[id] {
			t.Errorf("node %v rect = %+v after second pass, want %+v", id, got, first[id])
		}
	}
	if got := tree.Node(root).Rect; got != r {
		t.Errorf("root rect = %+v, want %+v", got, r)
	}
}

func TestSplitRectsCoverParent(t *testing.T) {
	tree := NewDockTree()
	root := tree.AddRoot(Rect{Width: 640, Height: 480}, HashString("a"), DockNone)
	_, b := tree.SplitNode(root, 0.4, DirE)
	c, _ := tree.SplitNode(b, 0.3, DirN)
	tree.SplitNode(c, 0.5, DirW)

	for _, id := range tree.Tree(root) {
		n := tree.Node(id)
		if n.IsLeaf() {
			continue
		}
		a := tree.Node(n.Split.Children[0]).Rect
		b := tree.Node(n.Split.Children[1]).Rect
		ax := n.Split.Axis
		if !approx(a.Start(ax), n.Rect.Start(ax)) || !approx(b.End(ax), n.Rect.End(ax)) {
			t.Errorf("split %v: children do not span the parent", id)
		}
		if !approx(a.End(ax), b.Start(ax)) {
			t.Errorf("split %v: gap between children %v and %v", id, a.End(ax), b.Start(ax))
		}
		if !approx(a.Extent(ax.Other()), n.Rect.Extent(ax.Other())) {
			t.Errorf("split %v: cross extent differs", id)
		}
	}
}

func TestMergeNodes(t *testing.T) {
	tree, ps, _, p := dockFixture("a", "b", "c")
	a, b, c := p[0], p[1], p[2]

	// b and c form a tree.
	rootB := tree.AddRoot(Rect{Width: 200, Height: 100}, b.ID, DockNone)
	b.Dock = rootB
	eb, ic := tree.SplitNode(rootB, 0.5, DirE)
	tree.Node(eb).Panel, b.Dock = b.ID, eb
	tree.Node(ic).Panel, c.Dock = c.ID, ic

	// a is a tree of its own.
	rootA := tree.AddRoot(Rect{X: 300, Width: 100, Height: 100}, a.ID, DockNone)
	a.Dock = rootA

	old := tree.MergeNodes(rootA, rootB, 0.5, DirS)
	tree.Node(old).Panel = a.ID
	a.Dock = old

	if got := tree.Root(eb); got != rootA {
		t.Errorf("Root(b) = %v, want %v", got, rootA)
	}
	if tree.Node(rootB).Parent != rootA {
		t.Errorf("merged root parent = %v, want %v", tree.Node(rootB).Parent, rootA)
	}
	if got := tree.Node(rootB).Rect; !rectApprox(got, Rect{X: 300, Y: 50, Width: 100, Height: 50}) {
		t.Errorf("merged subtree rect = %+v", got)
	}
	if got := tree.Node(ic).Rect; !rectApprox(got, Rect{X: 350, Y: 50, Width: 50, Height: 50}) {
		t.Errorf("c rect = %+v", got)
	}
	if err := tree.check(ps); err != nil {
		t.Errorf("check: %v", err)
	}

	expectPanic(t, "merge into own tree", func() { tree.MergeNodes(old, rootA, 0.5, DirW) })
}

func TestSetSplitRatioKeepsNestedBoundaries(t *testing.T) {
	tree := NewDockTree()
	root := tree.AddRoot(Rect{Width: 300, Height: 100}, HashString("a"), DockNone)
	// [a | [b | c]] with boundaries at x=100 and x=200.
	_, right := tree.SplitNode(root, 2.0/3, DirE)
	tree.SplitNode(right, 0.5, DirE)

	nested := tree.Node(right)
	before := tree.Node(nested.Split.Children[0]).Rect.End(AxisX)
	if !approx(before, 200) {
		t.Fatalf("nested boundary = %v, want 200", before)
	}

	tree.SetSplitRatio(root, 0.5)
	if got := tree.Node(right).Rect.X; !approx(got, 150) {
		t.Errorf("right subtree x = %v, want 150", got)
	}
	if got := tree.Node(nested.Split.Children[0]).Rect.End(AxisX); !approx(got, 200) {
		t.Errorf("nested boundary moved to %v, want 200", got)
	}
	if got := tree.Node(right).Split.Ratio; !approx(got, 50.0/150) {
		t.Errorf("nested ratio = %v, want %v", got, 50.0/150)
	}

	tree.SetSplitRatio(root, 2)
	if got := tree.Node(root).Split.Ratio; got != 1 {
		t.Errorf("ratio = %v, want clamped 1", got)
	}
	expectPanic(t, "leaf", func() { tree.SetSplitRatio(nested.Split.Children[1], 0.5) })
}

func TestSplitRange(t *testing.T) {
	tree := NewDockTree()
	root := tree.AddRoot(Rect{Width: 300, Height: 100}, HashString("a"), DockNone)
	_, right := tree.SplitNode(root, 2.0/3, DirE)
	tree.SplitNode(right, 0.5, DirE)

	lo, hi := tree.SplitRange(root)
	if !approx(lo, 0) || !approx(hi, 200) {
		t.Errorf("SplitRange = (%v, %v), want (0, 200)", lo, hi)
	}
	lo, hi = tree.SplitRange(right)
	if !approx(lo, 100) || !approx(hi, 300) {
		t.Errorf("nested SplitRange = (%v, %v), want (100, 300)", lo, hi)
	}
}

func TestNeighbors(t *testing.T) {
	tree := NewDockTree()
	root := tree.AddRoot(Rect{Width: 200, Height: 200}, HashString("a"), DockNone)
	// left | (top / bottom)
	left, right := tree.SplitNode(root, 0.5, DirE)
	top, bottom := tree.SplitNode(right, 0.5, DirS)

	tests := []struct {
		name string
		id   ID
		want [4]ID
	}{
		{"left", left, [4]ID{NullID, top, NullID, NullID}},
		{"top", top, [4]ID{NullID, NullID, bottom, left}},
		{"bottom", bottom, [4]ID{top, NullID, NullID, left}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tree.Neighbors(tt.id); got != tt.want {
				t.Errorf("Neighbors = %v, want %v", got, tt.want)
			}
		})
	}
	if got := tree.SplitToward(top, DirW); got != root {
		t.Errorf("SplitToward(top, W) = %v, want root", got)
	}
	if got := tree.SplitToward(top, DirS); got != right {
		t.Errorf("SplitToward(top, S) = %v, want %v", got, right)
	}
	expectPanic(t, "corner", func() { tree.Neighbor(top, DirSE) })
}

func TestLeavesAndTreeOrder(t *testing.T) {
	tree := NewDockTree()
	root := tree.AddRoot(Rect{Width: 100, Height: 100}, HashString("a"), DockNone)
	l, r := tree.SplitNode(root, 0.5, DirE)

	leaves := tree.Leaves(root)
	if len(leaves) != 2 || leaves[0] != l || leaves[1] != r {
		t.Errorf("Leaves = %v, want [%v %v]", leaves, l, r)
	}
	all := tree.Tree(root)
	if len(all) != 3 || all[0] != root {
		t.Errorf("Tree = %v, want root first and 3 nodes", all)
	}
	if got := tree.Root(r); got != root {
		t.Errorf("Root = %v, want %v", got, root)
	}
}

// dockPair docks b beside a in a fresh tree and returns the root.
func dockPair(tree *DockTree, a, b *Panel, flags DockNodeFlag) ID {
	a.SizePreDock, a.HasPreDock = a.Size, true
	b.SizePreDock, b.HasPreDock = b.Size, true
	root := tree.AddRoot(Rect{Width: 400, Height: 200}, a.ID, flags)
	ea, ib := tree.SplitNode(root, 0.5, DirE)
	tree.Node(ea).Panel, a.Dock = a.ID, ea
	tree.Node(ib).Panel, b.Dock = b.ID, ib
	return root
}

func TestUndockDissolvesPair(t *testing.T) {
	tree, ps, order, p := dockFixture("a", "b")
	a, b := p[0], p[1]
	a.Size = Vec2{120, 90}
	root := dockPair(tree, a, b, DockNone)
	order.Retain(func(RootID) bool { return false })
	order.Push(DockRoot(root))

	tree.Undock(b.Dock, ps, order)

	if a.IsDocked() || b.IsDocked() {
		t.Fatalf("panels still docked: a=%v b=%v", a.Dock, b.Dock)
	}
	if tree.Len() != 0 {
		t.Errorf("tree has %d nodes, want 0", tree.Len())
	}
	if a.Size != (Vec2{400, 200}) || a.Pos != (Vec2{0, 0}) {
		t.Errorf("sibling pos/size = %v/%v, want it to fill the former root", a.Pos, a.Size)
	}
	if b.Size != b.SizePreDock {
		t.Errorf("undocked size = %v, want pre-dock %v", b.Size, b.SizePreDock)
	}
	if order.Contains(DockRoot(root)) {
		t.Error("draw order still lists the dissolved tree")
	}
	if !order.Contains(PanelRoot(a.ID)) || !order.Contains(PanelRoot(b.ID)) {
		t.Errorf("draw order = %v, want both panels", order.Roots())
	}
	if err := tree.check(ps); err != nil {
		t.Errorf("check: %v", err)
	}
}

func TestUndockAllowSingleLeaf(t *testing.T) {
	tree, ps, order, p := dockFixture("space", "b")
	space, b := p[0], p[1]
	root := dockPair(tree, space, b, DockAllowSingleLeaf|DockNoBringToFront)
	tree.Node(root).Label = "dockspace"
	order.Retain(func(RootID) bool { return false })
	order.Push(DockRoot(root))

	oldLeaf := space.Dock
	tree.Undock(b.Dock, ps, order)

	if !space.IsDocked() || space.Dock != oldLeaf {
		t.Fatalf("dockspace panel dock = %v, want %v", space.Dock, oldLeaf)
	}
	n := tree.Node(oldLeaf)
	if !n.IsRoot() {
		t.Error("surviving leaf is not a root")
	}
	if n.Flags&DockAllowSingleLeaf == 0 || n.Flags&DockNoBringToFront == 0 {
		t.Errorf("flags = %v, want inherited from old root", n.Flags)
	}
	if n.Label != "dockspace" {
		t.Errorf("label = %q, want inherited", n.Label)
	}
	if n.Rect != (Rect{Width: 400, Height: 200}) {
		t.Errorf("rect = %+v, want the old root rect", n.Rect)
	}
	if !order.Contains(DockRoot(oldLeaf)) || order.Contains(DockRoot(root)) {
		t.Errorf("draw order = %v, want the root replaced", order.Roots())
	}

	// Undocking the lone leaf removes the tree.
	tree.Undock(oldLeaf, ps, order)
	if space.IsDocked() || tree.Len() != 0 {
		t.Errorf("lone leaf undock left dock=%v nodes=%d", space.Dock, tree.Len())
	}
}

func TestUndockGrandparent(t *testing.T) {
	tree, ps, order, p := dockFixture("a", "b", "c")
	a, b, c := p[0], p[1], p[2]
	root := dockPair(tree, a, b, DockNone)
	c.SizePreDock, c.HasPreDock = c.Size, true
	eb, ic := tree.SplitNode(b.Dock, 0.5, DirS)
	tree.Node(eb).Panel, b.Dock = b.ID, eb
	tree.Node(ic).Panel, c.Dock = c.ID, ic
	order.Retain(func(RootID) bool { return false })
	order.Push(DockRoot(root))

	tree.Undock(c.Dock, ps, order)

	if !b.IsDocked() {
		t.Fatal("b was freed, want it to take its parent's place")
	}
	if got := tree.Node(b.Dock).Rect; got != (Rect{X: 200, Width: 200, Height: 200}) {
		t.Errorf("b rect = %+v, want the right half", got)
	}
	if tree.Node(b.Dock).Parent != root {
		t.Errorf("b parent = %v, want root", tree.Node(b.Dock).Parent)
	}
	if tree.Len() != 3 {
		t.Errorf("nodes = %d, want 3", tree.Len())
	}
	if err := tree.check(ps); err != nil {
		t.Errorf("check: %v", err)
	}
}

func TestUndockRootSiblingSplit(t *testing.T) {
	tree, ps, order, p := dockFixture("a", "b", "c")
	a, b, c := p[0], p[1], p[2]
	root := dockPair(tree, a, b, DockNone)
	c.SizePreDock, c.HasPreDock = c.Size, true
	eb, ic := tree.SplitNode(b.Dock, 0.5, DirS)
	right := tree.Node(eb).Parent
	tree.Node(eb).Panel, b.Dock = b.ID, eb
	tree.Node(ic).Panel, c.Dock = c.ID, ic
	order.Retain(func(RootID) bool { return false })
	order.Push(DockRoot(root))

	tree.Undock(a.Dock, ps, order)

	if !tree.Node(right).IsRoot() {
		t.Fatal("sibling split was not promoted to root")
	}
	if got := tree.Node(right).Rect; got != (Rect{Width: 400, Height: 200}) {
		t.Errorf("promoted rect = %+v, want the old root rect", got)
	}
	if !order.Contains(DockRoot(right)) || order.Contains(DockRoot(root)) {
		t.Errorf("draw order = %v", order.Roots())
	}
	if err := tree.check(ps); err != nil {
		t.Errorf("check: %v", err)
	}
}

func TestUndockPanics(t *testing.T) {
	tree, ps, order, p := dockFixture("a", "b")
	root := dockPair(tree, p[0], p[1], DockNone)
	expectPanic(t, "split", func() { tree.Undock(root, ps, order) })
	expectPanic(t, "dangling", func() { tree.Undock(ID(99), ps, order) })
}

func TestDockTreeString(t *testing.T) {
	tree := NewDockTree()
	root := tree.AddRoot(Rect{Width: 100, Height: 100}, HashString("a"), DockNone)
	tree.SplitNode(root, 0.5, DirE)
	s := tree.String()
	if !strings.Contains(s, "split") || strings.Count(s, "leaf") != 2 {
		t.Errorf("String() = %q", s)
	}
}
