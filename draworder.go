package arbor

import "fmt"

// RootKind tells whether a draw-order entry is a free panel or a dock tree.
type RootKind uint8

const (
	RootPanel RootKind = iota
	RootDock
)

// RootID is an entry of the draw order: a free top-level panel or the root
// of a dock tree.
type RootID struct {
	Kind RootKind
	ID   ID
}

// PanelRoot returns the draw-order entry for a free panel.
func PanelRoot(id ID) RootID { return RootID{Kind: RootPanel, ID: id} }

// DockRoot returns the draw-order entry for a dock tree root.
func DockRoot(id ID) RootID { return RootID{Kind: RootDock, ID: id} }

func (r RootID) String() string {
	if r.Kind == RootDock {
		return fmt.Sprintf("Dock(%v)", r.ID)
	}
	return fmt.Sprintf("Panel(%v)", r.ID)
}

// DrawOrder lists top-level roots back to front. Each root appears at most
// once.
type DrawOrder struct {
	roots []RootID
}

// Roots returns the entries back to front. The slice must not be modified.
func (o *DrawOrder) Roots() []RootID { return o.roots }

// Len returns the number of entries.
func (o *DrawOrder) Len() int { return len(o.roots) }

// Index returns the position of r, or -1.
func (o *DrawOrder) Index(r RootID) int {
	for i, e := range o.roots {
		if e == r {
			return i
		}
	}
	return -1
}

// Contains reports whether r is in the list.
func (o *DrawOrder) Contains(r RootID) bool { return o.Index(r) >= 0 }

// Push appends r on top. It panics if r is already present.
func (o *DrawOrder) Push(r RootID) {
	if o.Contains(r) {
		panic(fmt.Sprintf("arbor: draw order already contains %v", r))
	}
	o.roots = append(o.roots, r)
}

// InsertAfter places r directly above anchor, or on top when anchor is not
// present. An existing entry for r is moved.
func (o *DrawOrder) InsertAfter(anchor, r RootID) {
	o.Remove(r)
	i := o.Index(anchor)
	if i < 0 {
		o.roots = append(o.roots, r)
		return
	}
	o.roots = append(o.roots, RootID{})
	copy(o.roots[i+2:], o.roots[i+1:])
	o.roots[i+1] = r
}

// Replace swaps old for r in place. When old is missing r is appended.
func (o *DrawOrder) Replace(old, r RootID) {
	i := o.Index(old)
	if i < 0 {
		if !o.Contains(r) {
			o.roots = append(o.roots, r)
		}
		return
	}
	if j := o.Index(r); j >= 0 && j != i {
		o.removeAt(j)
		if j < i {
			i--
		}
	}
	o.roots[i] = r
}

// Remove deletes r if present.
func (o *DrawOrder) Remove(r RootID) {
	if i := o.Index(r); i >= 0 {
		o.removeAt(i)
	}
}

func (o *DrawOrder) removeAt(i int) {
	copy(o.roots[i:], o.roots[i+1:])
	o.roots[len(o.roots)-1] = RootID{}
	o.roots = o.roots[:len(o.roots)-1]
}

// BringToFront moves r to the top. It reports whether r was present.
func (o *DrawOrder) BringToFront(r RootID) bool {
	i := o.Index(r)
	if i < 0 {
		return false
	}
	copy(o.roots[i:], o.roots[i+1:])
	o.roots[len(o.roots)-1] = r
	return true
}

// Retain keeps only the entries for which keep returns true.
func (o *DrawOrder) Retain(keep func(RootID) bool) {
	n := 0
	for _, r := range o.roots {
		if keep(r) {
			o.roots[n] = r
			n++
		}
	}
	for i := n; i < len(o.roots); i++ {
		o.roots[i] = RootID{}
	}
	o.roots = o.roots[:n]
}

func (o *DrawOrder) check() error {
	seen := make(map[RootID]bool, len(o.roots))
	for _, r := range o.roots {
		if seen[r] {
			return fmt.Errorf("draw order lists %v twice", r)
		}
		seen[r] = true
	}
	return nil
}
