package zval

// The internal pointer, as moved by current(), next(), prev(), reset() and end().

func (a *Array) cursorSlot() int32 {
	if a.cursor == nil {
		return a.table.head
	}

	return a.cursor.slot
}

func (a *Array) setCursor(i int32) {
	if a.cursor == nil {
		a.cursor = &position{}
		a.track(a.cursor)
	}
	a.cursor.slot = i
	a.cursor.moved = false
}

// Current returns the element under the internal pointer, false past the end.
func (a *Array) Current() (Value, bool) {
	i := a.cursorSlot()
	if i == noSlot {
		return Null(), false
	}

	return a.table.slots[i].value.Deref(), true
}

// Key returns the key under the internal pointer, false past the end.
func (a *Array) Key() (Key, bool) {
	i := a.cursorSlot()
	if i == noSlot {
		return Key{}, false
	}

	return a.table.slots[i].key, true
}

// Next advances the internal pointer and returns the new current element.
func (a *Array) Next() (Value, bool) {
	if i := a.cursorSlot(); i != noSlot {
		a.setCursor(a.table.slots[i].next)
	}

	return a.Current()
}

// Prev moves the internal pointer back and returns the new current element.
// Moving back from the first element leaves the pointer past the end.
func (a *Array) Prev() (Value, bool) {
	if i := a.cursorSlot(); i != noSlot {
		a.setCursor(a.table.slots[i].prev)
	}

	return a.Current()
}

// Reset rewinds the internal pointer to the first element.
func (a *Array) Reset() (Value, bool) {
	if a.cursor != nil {
		a.untrack(a.cursor)
		a.cursor = nil
	}

	return a.Current()
}

// End moves the internal pointer to the last element.
func (a *Array) End() (Value, bool) {
	a.setCursor(a.table.tail)

	return a.Current()
}
