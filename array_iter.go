package zval

import (
	"iter"
	"slices"
)

// Values iterates over a snapshot of a, like foreach ($a as $k => $v).
// Writes to a during the loop separate it from the snapshot and are not seen.
// Arrays are yielded borrowed.
func (a *Array) Values() iter.Seq2[Key, Value] {
	return func(yield func(Key, Value) bool) {
		t := a.table
		t.refs++
		// values yielded from the snapshot stay valid after the loop: drop
		// the share without releasing nested arrays
		defer func() { t.refs-- }()

		for i := t.head; i != noSlot; i = t.slots[i].next {
			s := &t.slots[i]
			if !yield(s.key, s.value.Deref()) {
				return
			}
		}
	}
}

// Keys iterates over the keys of a snapshot of a.
func (a *Array) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for k := range a.Values() {
			if !yield(k) {
				return
			}
		}
	}
}

// References iterates over a itself, like foreach ($a as $k => &$v): each
// element is turned into a reference cell before being yielded. Elements
// appended during the loop are visited, removed ones are skipped.
func (a *Array) References() iter.Seq2[Key, *Reference] {
	return func(yield func(Key, *Reference) bool) {
		p := &position{slot: a.table.head}
		a.track(p)
		defer a.untrack(p)

		for p.slot != noSlot {
			a.ensureWritable()
			t := a.table
			i := p.slot
			if int(i) >= len(t.slots) || !t.slots[i].live {
				return
			}

			r := t.promote(i)
			if !yield(t.slots[i].key, r) {
				return
			}

			if p.moved {
				p.moved = false

				continue
			}
			if int(p.slot) >= len(a.table.slots) {
				return
			}
			p.slot = a.table.slots[p.slot].next
		}
	}
}

func (a *Array) track(p *position) {
	a.positions = append(a.positions, p)
}

func (a *Array) untrack(p *position) {
	if i := slices.Index(a.positions, p); i >= 0 {
		a.positions = slices.Delete(a.positions, i, i+1)
	}
}
