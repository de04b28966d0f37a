package zval

import "sync/atomic"

var lastObjectID atomic.Uint64

// StdClass is PHP's generic object: a bag of dynamic properties. It is the
// object created when a write auto-vivifies an object, like $a[k]->p = v.
type StdClass struct {
	id    uint64
	props *Array
}

func NewStdClass() *StdClass {
	return &StdClass{id: lastObjectID.Add(1), props: NewArray()}
}

// ObjectFromArray returns a StdClass whose properties are a copy of a, like
// an (object) cast.
func ObjectFromArray(a *Array) *StdClass {
	o := NewStdClass()
	o.props.Release()
	o.props = a.Clone()

	return o
}

func (o *StdClass) ClassName() string {
	return "stdClass"
}

// ID returns the object handle shown by var_dump.
func (o *StdClass) ID() uint64 {
	return o.id
}

// Get reads a property, reporting undefined ones.
func (o *StdClass) Get(name string) Value {
	v, ok := o.props.GetKey(StringKey(name))
	if !ok {
		report(UndefinedKey, "Undefined property: stdClass::$%s", name)
	}

	return v
}

func (o *StdClass) Set(name string, v Value) {
	o.props.SetKey(StringKey(name), v)
}

func (o *StdClass) Unset(name string) {
	o.props.RemoveKey(StringKey(name))
}

// Has reports whether the property exists, like property_exists.
func (o *StdClass) Has(name string) bool {
	_, ok := o.props.GetKey(StringKey(name))

	return ok
}

// Properties returns the property table, borrowed.
func (o *StdClass) Properties() *Array {
	return o.props
}

// ToArray returns a copy of the properties, like an (array) cast.
func (o *StdClass) ToArray() *Array {
	return o.props.Clone()
}
