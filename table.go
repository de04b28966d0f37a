package zval

import (
	"maps"
	"math"
)

const noSlot int32 = -1

// slot is one entry of a table. prev/next link live slots in insertion
// order; freed slots are chained through next on the free list.
//
// value is either a direct value or, when its type is TypeReference, the
// aliased variant. Promotion from direct to aliased is one way.
type slot struct {
	key   Key
	value Value
	prev  int32
	next  int32
	live  bool
}

// table is the insertion-ordered hash map behind every Array.
//
// A table may be shared by several arrays (refs > 1); shared tables are read
// only and the first array writing to one clones it. Slot indexes survive the
// clone, which keeps iterator and cursor positions valid across the copy.
type table struct {
	slots []slot
	index map[Key]int32
	head  int32
	tail  int32
	free  int32

	count    int
	intCount int

	// maxInt caches the greatest integer key. Removing it only marks the cache
	// stale; the next append recomputes it with a full scan.
	maxInt   int64
	hasInt   bool
	maxStale bool

	refs int32
	// visited guards recursive walks (comparison, export) against cycles,
	// which can only go through reference cells
	visited bool
}

func newTable(capacity int) *table {
	return &table{
		slots: make([]slot, 0, capacity),
		index: make(map[Key]int32, capacity),
		head:  noSlot,
		tail:  noSlot,
		free:  noSlot,
		refs:  1,
	}
}

func (t *table) lookup(k Key) int32 {
	if i, ok := t.index[k]; ok {
		return i
	}

	return noSlot
}

// insert links a new slot at the end of the order list. k must be absent.
func (t *table) insert(k Key, v Value) int32 {
	s := slot{key: k, value: v, prev: t.tail, next: noSlot, live: true}

	var i int32
	if t.free != noSlot {
		i = t.free
		t.free = t.slots[i].next
		t.slots[i] = s
	} else {
		i = int32(len(t.slots))
		t.slots = append(t.slots, s)
	}

	if t.tail != noSlot {
		t.slots[t.tail].next = i
	} else {
		t.head = i
	}
	t.tail = i
	t.index[k] = i
	t.count++

	if !k.str {
		t.intCount++
		if !t.hasInt || k.i > t.maxInt {
			t.maxInt = k.i
			t.hasInt = true
			// a key above the stale cache is above every live key too
			t.maxStale = false
		}
	}

	return i
}

// remove unlinks k and returns its value and the slot that followed it.
func (t *table) remove(k Key) (v Value, removed, next int32, ok bool) {
	i, ok := t.index[k]
	if !ok {
		return Value{}, noSlot, noSlot, false
	}

	s := &t.slots[i]
	if s.prev != noSlot {
		t.slots[s.prev].next = s.next
	} else {
		t.head = s.next
	}
	if s.next != noSlot {
		t.slots[s.next].prev = s.prev
	} else {
		t.tail = s.prev
	}

	delete(t.index, k)
	t.count--
	if !k.str {
		t.intCount--
		if t.hasInt && k.i == t.maxInt {
			t.maxStale = true
		}
	}

	v, next = s.value, s.next
	*s = slot{prev: noSlot, next: t.free}
	t.free = i

	return v, i, next, true
}

// nextIntKey returns the key append would use, false when the maximum int64
// key is already taken.
func (t *table) nextIntKey() (int64, bool) {
	if t.maxStale {
		t.recomputeMax()
	}
	if !t.hasInt {
		return 0, true
	}
	if t.maxInt == math.MaxInt64 {
		return 0, false
	}

	return t.maxInt + 1, true
}

func (t *table) recomputeMax() {
	t.hasInt = false
	t.maxInt = 0
	for i := t.head; i != noSlot; i = t.slots[i].next {
		if k := t.slots[i].key; !k.str && (!t.hasInt || k.i > t.maxInt) {
			t.maxInt = k.i
			t.hasInt = true
		}
	}
	t.maxStale = false
}

// clone copies the slot chain for a writer leaving a shared table. Nested
// arrays are shared copy-on-write with the original, references keep their
// identity.
func (t *table) clone() *table {
	c := &table{
		slots:    make([]slot, len(t.slots), cap(t.slots)),
		index:    maps.Clone(t.index),
		head:     t.head,
		tail:     t.tail,
		free:     t.free,
		count:    t.count,
		intCount: t.intCount,
		maxInt:   t.maxInt,
		hasInt:   t.hasInt,
		maxStale: t.maxStale,
		refs:     1,
	}
	copy(c.slots, t.slots)

	for i := c.head; i != noSlot; i = c.slots[i].next {
		if v := c.slots[i].value; v.typ == TypeArray {
			c.slots[i].value = Value{typ: TypeArray, p: v.p.(*Array).Clone()}
		}
	}

	return c
}

// promote turns slot i into the aliased variant and returns its cell.
func (t *table) promote(i int32) *Reference {
	s := &t.slots[i]
	if r := s.value.Reference(); r != nil {
		return r
	}

	r := &Reference{value: s.value}
	s.value = RefValue(r)

	return r
}

// release drops one owner; the last owner releases nested arrays.
func (t *table) release() {
	t.refs--
	if t.refs > 0 {
		return
	}

	for i := t.head; i != noSlot; i = t.slots[i].next {
		if v := t.slots[i].value; v.typ == TypeArray {
			v.p.(*Array).Release()
		}
	}
}

// relink rewrites the order list to follow order, which must hold every live slot.
func (t *table) relink(order []int32) {
	t.head, t.tail = noSlot, noSlot
	for _, i := range order {
		t.slots[i].prev = t.tail
		t.slots[i].next = noSlot
		if t.tail != noSlot {
			t.slots[t.tail].next = i
		} else {
			t.head = i
		}
		t.tail = i
	}
}

// renumber replaces every key by its position, like sort() does.
func (t *table) renumber() {
	clear(t.index)
	var n int64
	for i := t.head; i != noSlot; i = t.slots[i].next {
		k := IntKey(n)
		t.slots[i].key = k
		t.index[k] = i
		n++
	}

	t.intCount = t.count
	t.hasInt = t.count > 0
	t.maxInt = n - 1
	if !t.hasInt {
		t.maxInt = 0
	}
	t.maxStale = false
}
