package vm

import (
	"fmt"

	"github.com/lico-lang/lico/lang/object"
)

// iterator is the VM-internal protocol GetIter/IterMoveNext/IterCurrent
// drive (spec §4.5); it is never a first-class Lico value; the VM keeps a
// stack of active iterators separate from the operand Stack (grounded on
// the teacher's opcode.go ITERPUSH/ITERJMP comments describing "the
// iterator stack" the same way).
type iterator interface {
	// moveNext advances the iterator. ok is false once exhausted, in
	// which case current must not be called again.
	moveNext() (ok bool, err *Exception)
	current() object.Object
}

type arrayIterator struct {
	arr     *object.Array
	version uint64
	idx     int
	cur     object.Object
}

func (it *arrayIterator) moveNext() (bool, *Exception) {
	if it.arr.Version() != it.version {
		return false, &Exception{Message: "array modified during iteration"}
	}
	if it.idx >= it.arr.Len() {
		return false, nil
	}
	v, _ := it.arr.Get(it.idx)
	it.cur = v
	it.idx++
	return true, nil
}

func (it *arrayIterator) current() object.Object { return it.cur }

type tableIterator struct {
	heap *object.Heap
	keys []string
	vals []object.Object
	idx  int
}

func newTableIterator(heap *object.Heap, t *object.Table) *tableIterator {
	it := &tableIterator{heap: heap}
	t.ForEach(func(k string, v object.Object) {
		it.keys = append(it.keys, k)
		it.vals = append(it.vals, v)
	})
	return it
}

func (it *tableIterator) moveNext() (bool, *Exception) {
	if it.idx >= len(it.keys) {
		return false, nil
	}
	it.idx++
	return true, nil
}

func (it *tableIterator) current() object.Object {
	// Tables iterate as (key, value) pairs presented as a 2-element
	// array, matching the teacher's Tuple-as-iteration-item convention
	// in machine/map.go's mapIterator.
	i := it.idx - 1
	return object.FromArray(object.NewArray(it.heap, []object.Object{object.String(it.keys[i]), it.vals[i]}))
}

type stringIterator struct {
	runes []rune
	idx   int
}

func (it *stringIterator) moveNext() (bool, *Exception) {
	if it.idx >= len(it.runes) {
		return false, nil
	}
	it.idx++
	return true, nil
}

func (it *stringIterator) current() object.Object {
	return object.String(string(it.runes[it.idx-1]))
}

func getIter(heap *object.Heap, o object.Object) (iterator, *Exception) {
	switch o.Kind {
	case object.KindArray:
		return &arrayIterator{arr: o.Array, version: o.Array.Version()}, nil
	case object.KindTable:
		return newTableIterator(heap, o.Table), nil
	case object.KindString:
		return &stringIterator{runes: []rune(o.Str)}, nil
	default:
		return nil, &Exception{Message: fmt.Sprintf("value of type %s is not iterable", o.TypeName())}
	}
}
