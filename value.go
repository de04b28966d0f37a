package zval

import (
	"fmt"
	"math"
)

// Type is the runtime type of a Value.
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeArray
	TypeObject
	// TypeReference marks a value stored through a Reference (&$x).
	TypeReference
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	case TypeReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Value is a PHP value. The zero Value is null.
//
// Arrays are held by pointer; storing an array into a slot or a reference
// goes through copy-on-write sharing so that PHP's by-value semantics hold.
type Value struct {
	typ Type
	// n holds booleans, integers and the bits of floats
	n int64
	s string
	// p holds *Array, *Reference or an opaque host object
	p any
}

// ClassNamer is implemented by host objects that want a PHP class name in
// diagnostics and dumps.
type ClassNamer interface {
	ClassName() string
}

func Null() Value {
	return Value{}
}

func Bool(b bool) Value {
	if b {
		return Value{typ: TypeBool, n: 1}
	}

	return Value{typ: TypeBool}
}

func Int(i int64) Value {
	return Value{typ: TypeInt, n: i}
}

func Float(f float64) Value {
	return Value{typ: TypeFloat, n: int64(math.Float64bits(f))}
}

func String(s string) Value {
	return Value{typ: TypeString, s: s}
}

// ArrayValue wraps a as a value. A nil array yields an empty one.
func ArrayValue(a *Array) Value {
	if a == nil {
		a = NewArray()
	}

	return Value{typ: TypeArray, p: a}
}

// RefValue wraps a reference cell. A nil r yields a new cell holding null.
func RefValue(r *Reference) Value {
	if r == nil {
		r = &Reference{}
	}

	return Value{typ: TypeReference, p: r}
}

// ObjectValue wraps an opaque host object. A nil object yields null.
func ObjectValue(obj any) Value {
	if obj == nil {
		return Null()
	}

	return Value{typ: TypeObject, p: obj}
}

// Type returns the type of v without dereferencing.
func (v Value) Type() Type {
	return v.typ
}

func (v Value) IsNull() bool {
	return v.Deref().typ == TypeNull
}

func (v Value) IsArray() bool {
	return v.Deref().typ == TypeArray
}

func (v Value) IsReference() bool {
	return v.typ == TypeReference
}

// Deref returns the value a reference points to, or v itself.
func (v Value) Deref() Value {
	if v.typ == TypeReference {
		return v.p.(*Reference).value
	}

	return v
}

// Bool returns the payload of a bool value.
func (v Value) Bool() bool {
	return v.n != 0
}

// Int returns the payload of an int value.
func (v Value) Int() int64 {
	return v.n
}

// Float returns the payload of a float value.
func (v Value) Float() float64 {
	return math.Float64frombits(uint64(v.n))
}

// Str returns the payload of a string value.
func (v Value) Str() string {
	return v.s
}

// Array returns the array held by v (through a reference if needed), or nil.
func (v Value) Array() *Array {
	v = v.Deref()
	if v.typ != TypeArray {
		return nil
	}

	return v.p.(*Array)
}

// Reference returns the reference cell of v, or nil when v is not a reference.
func (v Value) Reference() *Reference {
	if v.typ != TypeReference {
		return nil
	}

	return v.p.(*Reference)
}

// Object returns the host object held by v, or nil.
func (v Value) Object() any {
	v = v.Deref()
	if v.typ != TypeObject {
		return nil
	}

	return v.p
}

// TypeName returns the name get_debug_type() would give.
func (v Value) TypeName() string {
	v = v.Deref()
	if v.typ == TypeObject {
		return className(v.p)
	}

	return v.typ.String()
}

func className(obj any) string {
	if n, ok := obj.(ClassNamer); ok {
		return n.ClassName()
	}

	return fmt.Sprintf("%T", obj)
}

// assigned returns the value to store when v is assigned somewhere: arrays
// are shared copy-on-write, references are dereferenced.
func (v Value) assigned() Value {
	v = v.Deref()
	if v.typ == TypeArray {
		return Value{typ: TypeArray, p: v.p.(*Array).shareForAssign()}
	}

	return v
}

// GoString implements fmt.GoStringer for test failure output.
func (v Value) GoString() string {
	switch v.typ {
	case TypeNull:
		return "NULL"
	case TypeBool:
		if v.Bool() {
			return "bool(true)"
		}
		return "bool(false)"
	case TypeString:
		return fmt.Sprintf("string(%q)", v.s)
	case TypeArray:
		return fmt.Sprintf("array(%d)", v.p.(*Array).Count())
	case TypeReference:
		return "&" + v.Deref().GoString()
	case TypeObject:
		return "object(" + className(v.p) + ")"
	}

	return fmt.Sprintf("%s(%s)", v.typ, v.ToString())
}
