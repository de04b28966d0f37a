package zval

// Array is a PHP array: an ordered map from Key to Value with by-value
// semantics. Assigning an array shares its storage copy-on-write; the first
// write through either holder separates them.
//
// An *Array is owned by exactly one holder (a variable, a slot or a
// reference cell). Use Clone to obtain another holder.
type Array struct {
	table *table

	// returnInPlace lets the next assignment take this array without sharing
	returnInPlace bool

	// cursor is the internal pointer used by current()/next(); nil means the first element
	cursor    *position
	positions []*position
}

// position is a slot index kept valid across removals.
type position struct {
	slot int32
	// moved is set when the slot under the position was removed and the
	// position advanced to the following one
	moved bool
}

// CopyReason tells DeepCopy which PHP operation the copy implements.
type CopyReason uint8

const (
	// CopyCloned keeps reference cells shared between the copies.
	CopyCloned CopyReason = iota
	// CopyAssigned dereferences reference cells, like a copy made on assignment.
	CopyAssigned
	// CopyReturned moves the array out when it was marked with ReturnInPlace,
	// and behaves like CopyCloned otherwise.
	CopyReturned
)

func (r CopyReason) String() string {
	switch r {
	case CopyCloned:
		return "cloned"
	case CopyAssigned:
		return "assigned"
	case CopyReturned:
		return "returned"
	}

	return "unknown"
}

func NewArray() *Array {
	return NewArraySized(0)
}

// NewArraySized returns an empty array with room for n elements.
func NewArraySized(n int) *Array {
	return &Array{table: newTable(n)}
}

// Count returns the number of elements.
func (a *Array) Count() int {
	return a.table.count
}

// IntCount returns the number of integer keys.
func (a *Array) IntCount() int {
	return a.table.intCount
}

// StringCount returns the number of string keys.
func (a *Array) StringCount() int {
	return a.table.count - a.table.intCount
}

// MaxIntKey returns the greatest integer key, false when there is none.
func (a *Array) MaxIntKey() (int64, bool) {
	t := a.table
	if t.maxStale {
		t.recomputeMax()
	}

	return t.maxInt, t.hasInt
}

// ensureWritable separates a from the other holders of its table.
func (a *Array) ensureWritable() {
	if a.table.refs <= 1 {
		return
	}

	a.table.refs--
	a.table = a.table.clone()
	metrics.CopyOnWrite()
}

// Clone returns a new holder sharing a's storage copy-on-write. It also
// copies the internal pointer.
func (a *Array) Clone() *Array {
	a.table.refs++
	c := &Array{table: a.table}
	if a.cursor != nil {
		c.cursor = &position{slot: a.cursor.slot}
		c.positions = []*position{c.cursor}
	}

	return c
}

// ReturnInPlace marks a as a temporary: the next assignment takes it over
// without sharing. Producers call it on arrays they are about to drop.
func (a *Array) ReturnInPlace() {
	a.returnInPlace = true
}

func (a *Array) shareForAssign() *Array {
	if a.returnInPlace {
		a.returnInPlace = false

		return a
	}

	return a.Clone()
}

// Release gives up a's share of its storage. a must not be used afterwards.
// Releasing is optional: storage that is never released is still collected,
// its other holders only pay for one extra copy on their next write.
func (a *Array) Release() {
	if a.table == nil {
		return
	}

	a.table.release()
	a.table = newTable(0)
	a.cursor = nil
	a.positions = nil
}

// keyFor canonicalizes a key operand, reporting illegal and lossy ones.
func keyFor(key Value) (Key, bool) {
	k, lossy, err := keyOf(key)
	if err != nil {
		report(IllegalKeyType, "Cannot access offset of type %s on array", key.TypeName())

		return Key{}, false
	}
	if lossy {
		report(ImplicitFloatKey, "Implicit conversion from float %s to int loses precision", FormatFloat(key.Deref().Float(), -1))
	}

	return k, true
}

// Get returns the value stored under key, dereferenced. A missing key
// reports an UndefinedKey diagnostic and yields null.
func (a *Array) Get(key Value) Value {
	k, ok := keyFor(key)
	if !ok {
		return Null()
	}

	v, ok := a.GetKey(k)
	if !ok {
		reportUndefinedKey(k)
	}

	return v
}

// GetQuiet is Get without the UndefinedKey diagnostic, for probes like isset
// and the null coalescing operator.
func (a *Array) GetQuiet(key Value) Value {
	k, ok := keyFor(key)
	if !ok {
		return Null()
	}
	v, _ := a.GetKey(k)

	return v
}

// GetKey looks up a canonical key. Arrays are returned borrowed.
func (a *Array) GetKey(k Key) (Value, bool) {
	t := a.table
	i := t.lookup(k)
	if i == noSlot {
		return Null(), false
	}

	return t.slots[i].value.Deref(), true
}

// Has reports whether key exists, like array_key_exists.
func (a *Array) Has(key Value) bool {
	k, _, err := keyOf(key)
	if err != nil {
		return false
	}

	return a.table.lookup(k) != noSlot
}

// IsSet reports whether key exists and is not null.
func (a *Array) IsSet(key Value) bool {
	return !a.GetQuiet(key).IsNull()
}

// Set assigns v under key. When the slot holds a reference the assignment
// goes through it and is visible to every alias.
func (a *Array) Set(key, v Value) {
	k, ok := keyFor(key)
	if !ok {
		return
	}

	a.SetKey(k, v)
}

// SetKey assigns v under a canonical key.
func (a *Array) SetKey(k Key, v Value) {
	// taken before separating so that $a[k] = $a stores the old contents
	v = v.assigned()
	a.ensureWritable()

	t := a.table
	i := t.lookup(k)
	if i == noSlot {
		t.insert(k, v)

		return
	}

	s := &t.slots[i]
	if r := s.value.Reference(); r != nil {
		r.value = v

		return
	}
	s.value = v
}

// SetRef binds the slot under key to r, like $a[k] = &$x. A nil r binds a
// new cell holding null.
func (a *Array) SetRef(key Value, r *Reference) {
	k, ok := keyFor(key)
	if !ok {
		return
	}

	a.ensureWritable()
	t := a.table
	if i := t.lookup(k); i != noSlot {
		t.slots[i].value = RefValue(r)

		return
	}
	t.insert(k, RefValue(r))
}

// GetRef returns the reference cell for key, promoting the slot to the
// aliased variant. A missing key is created holding null.
func (a *Array) GetRef(key Value) *Reference {
	k, ok := keyFor(key)
	if !ok {
		// writes through the detached cell are lost, as PHP does
		return &Reference{}
	}

	a.ensureWritable()
	t := a.table
	i := t.lookup(k)
	if i == noSlot {
		r := &Reference{}
		t.insert(k, RefValue(r))

		return r
	}

	return t.promote(i)
}

// Remove deletes key, like unset($a[k]). It reports whether the key existed.
func (a *Array) Remove(key Value) bool {
	k, ok := keyFor(key)
	if !ok {
		return false
	}
	_, ok = a.RemoveKey(k)

	return ok
}

// RemoveKey deletes a canonical key and returns the removed value.
func (a *Array) RemoveKey(k Key) (Value, bool) {
	if a.table.lookup(k) == noSlot {
		return Null(), false
	}

	a.ensureWritable()
	v, removed, next, _ := a.table.remove(k)
	for _, p := range a.positions {
		if p.slot == removed {
			p.slot = next
			p.moved = true
		}
	}

	return v.Deref(), true
}

// Append adds v under the next integer key (one past the greatest integer
// key ever seen that is still valid, 0 for none) and returns that key.
// It fails with ErrNextElementOccupied when that key would overflow.
func (a *Array) Append(v Value) (Key, error) {
	return a.appendSlot(v.assigned())
}

// AppendRef adds r under the next integer key, like $a[] = &$x. A nil r
// appends a new cell holding null.
func (a *Array) AppendRef(r *Reference) (Key, error) {
	return a.appendSlot(RefValue(r))
}

func (a *Array) appendSlot(v Value) (Key, error) {
	a.ensureWritable()

	n, ok := a.table.nextIntKey()
	if !ok {
		report(NextElementOccupied, "Cannot add element to the array as the next element is already occupied")

		return Key{}, ErrNextElementOccupied
	}

	k := IntKey(n)
	a.table.insert(k, v)

	return k, nil
}

// vivifyArray returns the array a write like $x[k] = v would go through:
// null and false become a new array.
func vivifyArray(v Value) (*Array, bool) {
	switch v.typ {
	case TypeNull:
		return NewArray(), true
	case TypeBool:
		if v.Bool() {
			return nil, false
		}
		report(FalseToArray, "Automatic conversion of false to array is deprecated")

		return NewArray(), true
	case TypeArray:
		return v.p.(*Array), true
	}

	return nil, false
}

// EnsureArray returns the array stored under key, creating it when the key
// is missing or holds null, for nested writes like $a[k][] = v. The
// returned array is owned by a and writable in place. It returns nil and
// reports MisusedAsArray when the slot holds a scalar.
func (a *Array) EnsureArray(key Value) *Array {
	k, ok := keyFor(key)
	if !ok {
		return nil
	}

	a.ensureWritable()
	t := a.table
	i := t.lookup(k)
	if i == noSlot {
		n := NewArray()
		t.insert(k, ArrayValue(n))

		return n
	}

	s := &t.slots[i]
	if r := s.value.Reference(); r != nil {
		n, ok := r.ensureArray()
		if !ok {
			report(MisusedAsArray, "Cannot use a scalar value as an array")
		}

		return n
	}

	n, ok := vivifyArray(s.value)
	if !ok {
		report(MisusedAsArray, "Cannot use a scalar value as an array")

		return nil
	}
	if s.value.typ != TypeArray {
		s.value = ArrayValue(n)
	}

	return n
}

// EnsureObject returns the object stored under key, creating a StdClass when
// the key is missing or holds null, for writes like $a[k]->p = v. It returns
// null and reports MisusedAsObject when the slot holds anything else.
func (a *Array) EnsureObject(key Value) Value {
	k, ok := keyFor(key)
	if !ok {
		return Null()
	}

	a.ensureWritable()
	t := a.table
	i := t.lookup(k)
	if i == noSlot {
		o := ObjectValue(NewStdClass())
		t.insert(k, o)

		return o
	}

	s := &t.slots[i]
	cur := s.value.Deref()
	switch cur.typ {
	case TypeObject:
		return cur
	case TypeNull:
		o := ObjectValue(NewStdClass())
		if r := s.value.Reference(); r != nil {
			r.value = o
		} else {
			s.value = o
		}

		return o
	}

	report(MisusedAsObject, "Attempt to assign property on %s", cur.TypeName())

	return Null()
}

// Enter marks a as being walked. It returns false when a is already being
// walked, in which case the caller must not descend and must not call Leave.
func (a *Array) Enter() bool {
	if a.table.visited {
		metrics.RecursionGuard()

		return false
	}
	a.table.visited = true

	return true
}

// Leave clears the mark set by a successful Enter.
func (a *Array) Leave() {
	a.table.visited = false
}

// DeepCopy returns a copy of a with nested arrays copied eagerly. Objects
// are handles and stay shared. A cycle is cut at the array already being
// copied, which is shared copy-on-write instead.
func (a *Array) DeepCopy(reason CopyReason) *Array {
	if reason == CopyReturned && a.returnInPlace {
		a.returnInPlace = false

		return a
	}

	metrics.DeepCopy(reason)

	return a.deepCopy(reason)
}

func (a *Array) deepCopy(reason CopyReason) *Array {
	if !a.Enter() {
		return a.Clone()
	}
	defer a.Leave()

	t := a.table
	c := NewArraySized(t.count)
	for i := t.head; i != noSlot; i = t.slots[i].next {
		s := t.slots[i]
		v := s.value
		switch {
		case v.typ == TypeArray:
			v = ArrayValue(v.p.(*Array).deepCopy(reason))
		case v.typ == TypeReference && reason == CopyAssigned:
			v = v.Deref()
			if v.typ == TypeArray {
				v = ArrayValue(v.p.(*Array).deepCopy(reason))
			}
		}
		c.table.insert(s.key, v)
	}
	c.table.maxInt, c.table.hasInt, c.table.maxStale = t.maxInt, t.hasInt, t.maxStale

	return c
}
