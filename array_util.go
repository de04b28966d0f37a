package zval

// FromList returns a list holding vs under the keys 0..len(vs)-1.
func FromList(vs ...Value) *Array {
	a := NewArraySized(len(vs))
	for i, v := range vs {
		a.table.insert(IntKey(int64(i)), v.assigned())
	}

	return a
}

// Fill returns an array holding n copies of v under consecutive integer keys
// starting at start, like array_fill.
func Fill(start int64, n int, v Value) *Array {
	a := NewArraySized(n)
	for i := 0; i < n; i++ {
		a.table.insert(IntKey(start+int64(i)), v.assigned())
	}

	return a
}

// put stores v under k without assignment semantics, for arrays being built.
func (a *Array) put(k Key, v Value) {
	if i := a.table.lookup(k); i != noSlot {
		a.table.slots[i].value = v

		return
	}
	a.table.insert(k, v)
}

// slotCopy returns the value another array stores for a slot it copies from
// a: references stay shared, arrays are shared copy-on-write.
func slotCopy(v Value) Value {
	if v.typ == TypeArray {
		return Value{typ: TypeArray, p: v.p.(*Array).Clone()}
	}

	return v
}

// KeyList returns the keys of a as a list, like array_keys.
func (a *Array) KeyList() *Array {
	t := a.table
	l := NewArraySized(t.count)
	var n int64
	for i := t.head; i != noSlot; i = t.slots[i].next {
		l.table.insert(IntKey(n), t.slots[i].key.Value())
		n++
	}

	return l
}

// ValueList returns the values of a as a list, like array_values.
func (a *Array) ValueList() *Array {
	t := a.table
	l := NewArraySized(t.count)
	var n int64
	for i := t.head; i != noSlot; i = t.slots[i].next {
		l.table.insert(IntKey(n), slotCopy(t.slots[i].value))
		n++
	}

	return l
}

// IsList reports whether the keys of a are 0, 1, 2... in order, like array_is_list.
func (a *Array) IsList() bool {
	t := a.table
	if t.intCount != t.count {
		return false
	}

	var n int64
	for i := t.head; i != noSlot; i = t.slots[i].next {
		if t.slots[i].key.i != n {
			return false
		}
		n++
	}

	return true
}

// Search returns the first key whose value equals v, loosely or strictly,
// like array_search.
func (a *Array) Search(v Value, strict bool) (Key, bool) {
	t := a.table
	for i := t.head; i != noSlot; i = t.slots[i].next {
		s := &t.slots[i]
		if strict && StrictEquals(s.value, v) || !strict && LooseEquals(s.value, v) {
			return s.key, true
		}
	}

	return Key{}, false
}

// Contains reports whether a holds v, like in_array.
func (a *Array) Contains(v Value, strict bool) bool {
	_, ok := a.Search(v, strict)

	return ok
}

// Merge concatenates arrays like array_merge: integer keys are renumbered,
// later string keys overwrite earlier ones.
func Merge(arrays ...*Array) *Array {
	n := 0
	for _, a := range arrays {
		n += a.Count()
	}

	m := NewArraySized(n)
	var next int64
	for _, a := range arrays {
		t := a.table
		for i := t.head; i != noSlot; i = t.slots[i].next {
			s := &t.slots[i]
			if !s.key.str {
				m.table.insert(IntKey(next), slotCopy(s.value))
				next++

				continue
			}

			if j := m.table.lookup(s.key); j != noSlot {
				m.table.slots[j].value = slotCopy(s.value)

				continue
			}
			m.table.insert(s.key, slotCopy(s.value))
		}
	}

	return m
}

// Plus returns the union a + b: the elements of a followed by those of b
// whose keys a lacks.
func (a *Array) Plus(b *Array) *Array {
	u := a.Clone()
	t := b.table
	for i := t.head; i != noSlot; i = t.slots[i].next {
		s := &t.slots[i]
		if u.table.lookup(s.key) != noSlot {
			continue
		}
		u.ensureWritable()
		u.table.insert(s.key, slotCopy(s.value))
	}
	u.Reset()

	return u
}
