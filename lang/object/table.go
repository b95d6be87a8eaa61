package object

import (
	"sort"

	"github.com/dolthub/swiss"
)

// smallTableLimit is the entry count above which Table promotes its
// string-keyed entries from a sorted linear array to a dolthub/swiss
// hashed map, per spec §3: "Maps are stored as sorted linear arrays for
// <=16 entries, and promoted to hashed maps above that threshold."
const smallTableLimit = 16

type tableEntry struct {
	Key   string
	Value Object
}

// Method is one entry of a Table's method map: either a host-implemented
// method or a compiled Function, both optionally bound with an implicit
// receiver (spec §3's "with or without implicit self-binding").
type Method struct {
	Host         HostFunc
	Fn           *Function
	ImplicitSelf bool
}

// Table is Lico's reference-counted, cycle-collectible string-keyed
// record, grounded on the teacher's machine/map.go (same small-map-then-
// swiss promotion idea, generalized: the teacher promotes unconditionally
// to swiss, Lico keeps a sorted linear tier for small tables per spec).
type Table struct {
	cycleHeader
	heap *Heap

	small []tableEntry // sorted by Key while len(small) <= smallTableLimit
	large *swiss.Map[string, Object]

	methods map[string]Method
}

// NewTable allocates an empty table owned by heap.
func NewTable(heap *Heap) *Table {
	t := &Table{heap: heap}
	t.refcount = 1
	t.clr = colorBlack
	return t
}

func (t *Table) Len() int {
	if t.large != nil {
		return t.large.Count()
	}
	return len(t.small)
}

// Get looks up key among the table's entries (not its methods).
func (t *Table) Get(key string) (Object, bool) {
	if t.large != nil {
		return t.large.Get(key)
	}
	i := t.search(key)
	if i < len(t.small) && t.small[i].Key == key {
		return t.small[i].Value, true
	}
	return Object{}, false
}

func (t *Table) search(key string) int {
	return sort.Search(len(t.small), func(i int) bool { return t.small[i].Key >= key })
}

// Set inserts or overwrites key's entry.
func (t *Table) Set(key string, v Object) {
	if t.large != nil {
		if old, ok := t.large.Get(key); ok {
			decrefObject(t.heap, old)
		}
		t.large.Put(key, v)
		increfObject(t.heap, v)
		return
	}
	i := t.search(key)
	if i < len(t.small) && t.small[i].Key == key {
		decrefObject(t.heap, t.small[i].Value)
		t.small[i].Value = v
		increfObject(t.heap, v)
		return
	}
	if len(t.small) >= smallTableLimit {
		t.promote()
		t.Set(key, v)
		return
	}
	t.small = append(t.small, tableEntry{})
	copy(t.small[i+1:], t.small[i:])
	t.small[i] = tableEntry{Key: key, Value: v}
	increfObject(t.heap, v)
}

func (t *Table) promote() {
	m := swiss.NewMap[string, Object](uint32(len(t.small) * 2))
	for _, e := range t.small {
		m.Put(e.Key, e.Value)
	}
	t.large = m
	t.small = nil
}

// Delete removes key's entry, if present.
func (t *Table) Delete(key string) {
	if t.large != nil {
		if old, ok := t.large.Get(key); ok {
			decrefObject(t.heap, old)
			t.large.Delete(key)
		}
		return
	}
	i := t.search(key)
	if i < len(t.small) && t.small[i].Key == key {
		decrefObject(t.heap, t.small[i].Value)
		t.small = append(t.small[:i], t.small[i+1:]...)
	}
}

// SetMethod installs a user-defined method, taking precedence over any
// built-in method of the same name for dispatch purposes (spec §4.6).
func (t *Table) SetMethod(name string, m Method) {
	if t.methods == nil {
		t.methods = make(map[string]Method)
	}
	t.methods[name] = m
}

func (t *Table) GetMethod(name string) (Method, bool) {
	m, ok := t.methods[name]
	return m, ok
}

func (t *Table) children(yield func(container)) {
	if t.large != nil {
		t.large.Iter(func(_ string, v Object) bool {
			if c, ok := containerOf(v); ok {
				yield(c)
			}
			return false
		})
		return
	}
	for _, e := range t.small {
		if c, ok := containerOf(e.Value); ok {
			yield(c)
		}
	}
}

func (t *Table) freeContents() {
	t.small = nil
	t.large = nil
	t.methods = nil
}

func (t *Table) Drop() { t.heap.Decref(t) }

// equalTables compares entries only, ignoring each side's method map
// (spec §3: "Equality ignores method-map identity and compares entries
// structurally"), and is invariant to insertion order since it compares
// by key lookup rather than by position.
func equalTables(a, b *Table, visited *visitedSet) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if visited.seenPair(ptrOf(a), ptrOf(b)) {
		return true
	}
	if a.Len() != b.Len() {
		return false
	}
	ok := true
	a.forEachEntry(func(k string, v Object) bool {
		bv, found := b.Get(k)
		if !found || !equalVisited(v, bv, visited) {
			ok = false
			return true
		}
		return false
	})
	return ok
}

// forEachEntry visits every (key, value) entry, stopping early if yield
// returns true.
func (t *Table) forEachEntry(yield func(key string, v Object) (stop bool)) {
	if t.large != nil {
		t.large.Iter(func(k string, v Object) bool { return yield(k, v) })
		return
	}
	for _, e := range t.small {
		if yield(e.Key, e.Value) {
			return
		}
	}
}

// ForEach visits every (key, value) entry of t, for callers (the VM's
// table iteration protocol, builtins) outside this package.
func (t *Table) ForEach(yield func(key string, v Object)) {
	t.forEachEntry(func(k string, v Object) bool {
		yield(k, v)
		return false
	})
}
