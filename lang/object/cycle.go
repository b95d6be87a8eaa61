package object

// color marks a heap container's status in the trial-deletion cycle
// collector, ported from original_source's cycle-collector design notes
// (spec §4.6): Black is live/reachable, Gray is a collection candidate,
// White means collected (part of an unreachable cycle).
type color uint8

const (
	colorBlack color = iota
	// colorPurple marks a container buffered into the possible-roots set
	// by Decref; distinct from colorGray, which is used only internally
	// during a CollectCycles pass, so a pass can tell "not yet visited
	// this scan" apart from "buffered as a candidate root".
	colorPurple
	colorGray
	colorWhite
)

// container is implemented by Array and Table, the two reference-counted
// heap types subject to cycle collection. header (embedded by both)
// supplies the refcount/color/buffered bookkeeping; children enumerates
// the container's own outgoing references to other containers (array
// elements, table entries — not a table's method map, which holds
// compiled functions rather than cyclic container edges).
type container interface {
	header() *cycleHeader
	children(yield func(container))
	// freeContents clears the container's own storage (elements/entries)
	// once it has been identified as garbage, dropping its references to
	// children (which the collector has already accounted for).
	freeContents()
}

// cycleHeader is the bookkeeping embedded in every container.
type cycleHeader struct {
	refcount int32
	clr      color
	buffered bool
}

func (h *cycleHeader) header() *cycleHeader { return h }

// Heap owns the collector state shared by every Array/Table allocated
// from it; a VM owns exactly one Heap, matching spec §5's one-heap-per-VM
// resource model. The default threshold mirrors the "grows beyond a
// threshold" trigger in spec §4.6 without pretending to tune it.
type Heap struct {
	roots     []container
	threshold int
}

// NewHeap returns a heap with the default possible-roots threshold.
func NewHeap() *Heap { return &Heap{threshold: 64} }

// Incref increments a container's refcount and marks it Black (definitely
// live), mirroring a fresh reference being taken (a local binding, a
// table field write, a closure's captured cell).
func (h *Heap) Incref(c container) {
	if c == nil {
		return
	}
	hdr := c.header()
	hdr.refcount++
	hdr.clr = colorBlack
}

// Decref drops one reference to c. On a decrement to zero, c (and its
// reachable-only-through-c children) is freed immediately. Otherwise c is
// marked Purple and buffered into the possible-roots set, per the standard
// Bacon & Rad trial-deletion algorithm; once the roots set crosses the
// heap's threshold, a collection pass runs.
func (h *Heap) Decref(c container) {
	if c == nil {
		return
	}
	hdr := c.header()
	hdr.refcount--
	if hdr.refcount == 0 {
		h.release(c)
		return
	}
	if hdr.clr != colorPurple {
		hdr.clr = colorPurple
		if !hdr.buffered {
			hdr.buffered = true
			h.roots = append(h.roots, c)
		}
	}
	if len(h.roots) >= h.threshold {
		h.CollectCycles()
	}
}

// release is reached only when a container's refcount hits zero directly
// (no cycle involved): its children are decref'd in turn and its own
// storage is dropped.
func (h *Heap) release(c container) {
	c.header().buffered = false
	c.children(func(child container) { h.Decref(child) })
	c.freeContents()
}

// CollectCycles runs one full trial-deletion pass over the current
// possible-roots set: mark-gray (tentatively decrement internal edges),
// scan (restore Black for anything still externally reachable, else mark
// White), then collect every White container as garbage.
func (h *Heap) CollectCycles() {
	roots := h.roots
	h.roots = nil

	for _, c := range roots {
		// every root leaves the buffer, so a later Decref can buffer it again
		c.header().buffered = false
		if c.header().clr == colorPurple {
			markGray(c)
		}
	}
	for _, c := range roots {
		scanRoot(c)
	}
	whites := make(map[container]bool)
	for _, c := range roots {
		collectWhite(c, whites)
	}
	for c := range whites {
		c.header().buffered = false
		c.freeContents()
	}
}

func markGray(c container) {
	hdr := c.header()
	if hdr.clr == colorGray {
		return
	}
	hdr.clr = colorGray
	c.children(func(child container) {
		child.header().refcount--
		markGray(child)
	})
}

func scanRoot(c container) {
	hdr := c.header()
	if hdr.clr != colorGray {
		return
	}
	if hdr.refcount > 0 {
		scanBlack(c)
	} else {
		hdr.clr = colorWhite
		c.children(func(child container) { scanRoot(child) })
	}
}

func scanBlack(c container) {
	hdr := c.header()
	hdr.clr = colorBlack
	c.children(func(child container) {
		child.header().refcount++
		if child.header().clr != colorBlack {
			scanBlack(child)
		}
	})
}

func collectWhite(c container, whites map[container]bool) {
	hdr := c.header()
	if hdr.clr != colorWhite || whites[c] {
		return
	}
	whites[c] = true
	c.children(func(child container) { collectWhite(child, whites) })
}
