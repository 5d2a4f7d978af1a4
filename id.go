package arbor

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ID is an opaque 64-bit handle for panels, dock nodes, and items.
// Zero is reserved as the null handle.
type ID uint64

// NullID is the null handle.
const NullID ID = 0

// IsNull reports whether id is the null handle.
func (id ID) IsNull() bool { return id == NullID }

func (id ID) String() string {
	if id == NullID {
		return "ID(null)"
	}
	return fmt.Sprintf("ID(%016x)", uint64(id))
}

// HashString returns the global ID for label, independent of any id stack.
// Panels that are not children are identified this way so the same title
// always resolves to the same panel.
func HashString(label string) ID {
	return hashSeeded(NullID, label)
}

// hashSeeded hashes label in the scope of seed. The result is never NullID.
func hashSeeded(seed ID, label string) ID {
	var d xxhash.Digest
	d.Reset()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(seed))
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(label)
	return nonNull(d.Sum64())
}

// deriveID returns a child handle of id. Dock splits use n = 0 and n = 1 for
// their two children so split ids are reproducible across runs.
func deriveID(id ID, n uint64) ID {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(id)+n)
	return nonNull(xxhash.Sum64(buf[:]))
}

func nonNull(h uint64) ID {
	if h == 0 {
		return 1
	}
	return ID(h)
}

// --- Id stack ---

// GenID hashes label in the scope of the current panel's id stack.
func (c *Context) GenID(label string) ID {
	return hashSeeded(c.idSeed(), label)
}

// PushID pushes a new scope derived from label onto the current panel's id
// stack and returns it. Every PushID must be matched by a PopID before End.
func (c *Context) PushID(label string) ID {
	id := c.GenID(label)
	p := c.current()
	p.idStack = append(p.idStack, id)
	return id
}

// PopID pops the scope pushed by the matching PushID.
func (c *Context) PopID() {
	p := c.current()
	if len(p.idStack) <= 1 {
		panic(fmt.Sprintf("arbor: PopID on panel %q with empty id stack", p.Name))
	}
	p.idStack = p.idStack[:len(p.idStack)-1]
}

func (c *Context) idSeed() ID {
	if c.currentPanel.IsNull() {
		return NullID
	}
	p := c.panels.Get(c.currentPanel)
	if len(p.idStack) == 0 {
		return p.ID
	}
	return p.idStack[len(p.idStack)-1]
}
