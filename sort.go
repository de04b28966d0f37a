package zval

import "slices"

// Sort orders the elements of a by value with c, stably. With keepKeys the
// key/value associations are kept (asort), otherwise the elements are
// renumbered from 0 (sort). The internal pointer is reset.
//
// When c fails (Strict or ArrayKey comparators), a is left in its original
// order and the error is returned.
func (a *Array) Sort(c Comparator, keepKeys bool) error {
	return a.sortSlots(func(p, q *slot) (int, error) {
		return c.Compare(p.value, q.value)
	}, !keepKeys)
}

// SortKeys orders the elements of a by key with c, stably (ksort).
func (a *Array) SortKeys(c Comparator) error {
	return a.sortSlots(func(p, q *slot) (int, error) {
		if c.kind == Regular || c.kind == ArrayKey {
			r := CompareKeys(p.key, q.key)
			if c.reverse {
				r = -r
			}
			return r, nil
		}
		return c.Compare(p.key.Value(), q.key.Value())
	}, false)
}

func (a *Array) sortSlots(cmp func(p, q *slot) (int, error), renumber bool) error {
	a.ensureWritable()
	t := a.table

	order := make([]int32, 0, t.count)
	for i := t.head; i != noSlot; i = t.slots[i].next {
		order = append(order, i)
	}

	var err error
	slices.SortStableFunc(order, func(i, j int32) int {
		if err != nil {
			return 0
		}
		c, cerr := cmp(&t.slots[i], &t.slots[j])
		if cerr != nil {
			err = cerr
		}

		return c
	})
	if err != nil {
		return err
	}

	t.relink(order)
	if renumber {
		t.renumber()
	}
	a.Reset()

	return nil
}
