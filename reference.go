package zval

// Reference is a PHP reference (&$x): a mutable box shared by every variable
// and array slot aliasing it. Assigning through any alias is visible to all.
//
// A Reference never contains another Reference.
type Reference struct {
	value Value
}

// NewReference returns a cell holding v.
func NewReference(v Value) *Reference {
	return &Reference{value: v.assigned()}
}

// Get returns the referenced value. Arrays are returned borrowed: mutate them
// through EnsureArray or after cloning.
func (r *Reference) Get() Value {
	return r.value
}

// Set assigns v to every alias of r.
func (r *Reference) Set(v Value) {
	r.value = v.assigned()
}

// ensureArray turns a null or false referenced value into an array and returns it.
func (r *Reference) ensureArray() (*Array, bool) {
	a, ok := vivifyArray(r.value)
	if ok && r.value.typ != TypeArray {
		r.value = ArrayValue(a)
	}

	return a, ok
}
