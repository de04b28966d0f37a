package zval

import (
	"reflect"
	"slices"
	"strconv"
)

// KeyValuePair is an entry of an ordered associative array on the Go side.
type KeyValuePair struct {
	Key   string
	Value any
}

// AssociativeArray is an ordered Go map: Order lists the keys of Map in
// iteration order.
type AssociativeArray struct {
	Map   map[string]any
	Order []string
}

// NewAssociativeArray creates an array holding entries in order. Keys are
// canonicalized, so "1" and "01" are the integer 1 and the string "01".
func NewAssociativeArray(entries ...KeyValuePair) *Array {
	arr := NewArraySized(len(entries))
	for _, pair := range entries {
		arr.put(StringKey(pair.Key), PHPValue(pair.Value))
	}

	return arr
}

// NewPackedArray creates a list holding values.
func NewPackedArray(values ...any) *Array {
	arr := NewArraySized(len(values))
	for i, v := range values {
		arr.table.insert(IntKey(int64(i)), PHPValue(v))
	}

	return arr
}

// PHPMap converts a Go map to an array. Go maps are unordered: keys are
// inserted in sorted order to keep the result deterministic.
func PHPMap(m map[string]any) *Array {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return PHPAssociativeArray(AssociativeArray{Map: m, Order: keys})
}

// PHPAssociativeArray converts an ordered Go map to an array.
func PHPAssociativeArray(arr AssociativeArray) *Array {
	a := NewArraySized(len(arr.Order))
	for _, k := range arr.Order {
		a.put(StringKey(k), PHPValue(arr.Map[k]))
	}

	return a
}

// PHPPackedArray converts a slice to a list.
func PHPPackedArray(s []any) *Array {
	return NewPackedArray(s...)
}

// Entries returns all ordered key-value pairs with keys in their string form.
func (a *Array) Entries() []KeyValuePair {
	entries := make([]KeyValuePair, 0, a.Count())
	for k, v := range a.Values() {
		entries = append(entries, KeyValuePair{Key: k.String(), Value: GoValue(v)})
	}

	return entries
}

// GoMap converts an array to a Go map, losing the order. Integer keys are
// converted to their decimal form.
func GoMap(a *Array) map[string]any {
	m := make(map[string]any, a.Count())
	for k, v := range a.Values() {
		m[k.String()] = GoValue(v)
	}

	return m
}

// GoAssociativeArray converts an array to an ordered Go map.
func GoAssociativeArray(a *Array) AssociativeArray {
	arr := AssociativeArray{
		Map:   make(map[string]any, a.Count()),
		Order: make([]string, 0, a.Count()),
	}
	for k, v := range a.Values() {
		key := k.String()
		arr.Map[key] = GoValue(v)
		arr.Order = append(arr.Order, key)
	}

	return arr
}

// GoPackedArray returns the values of an array as a slice, dropping the keys.
func GoPackedArray(a *Array) []any {
	s := make([]any, 0, a.Count())
	for _, v := range a.Values() {
		s = append(s, GoValue(v))
	}

	return s
}

// GoValue converts a value to its natural Go form: nil, bool, int64,
// float64, string, []any for lists, AssociativeArray for other arrays and the
// object itself for objects.
func GoValue(v Value) any {
	v = v.Deref()
	switch v.typ {
	case TypeBool:
		return v.Bool()
	case TypeInt:
		return v.n
	case TypeFloat:
		return v.Float()
	case TypeString:
		return v.s
	case TypeArray:
		a := v.p.(*Array)
		if a.IsList() {
			return GoPackedArray(a)
		}
		return GoAssociativeArray(a)
	case TypeObject:
		return v.p
	}

	return nil
}

// PHPValue converts a Go value: integers become Int, floats Float, slices
// lists, maps with string or integer keys arrays, and anything else an
// object. Arrays of this package are shared copy-on-write and a *Reference
// binds the slot it is stored in as an alias.
func PHPValue(value any) Value {
	switch v := value.(type) {
	case nil:
		return Null()
	case Value:
		return v.assigned()
	case *Array:
		return ArrayValue(v.Clone())
	case *Reference:
		return RefValue(v)
	case bool:
		return Bool(v)
	case int:
		return Int(int64(v))
	case int64:
		return Int(v)
	case float64:
		return Float(v)
	case string:
		return String(v)
	case []any:
		return ArrayValue(PHPPackedArray(v))
	case map[string]any:
		return ArrayValue(PHPMap(v))
	case AssociativeArray:
		return ArrayValue(PHPAssociativeArray(v))
	case []KeyValuePair:
		return ArrayValue(NewAssociativeArray(v...))
	}

	return reflectValue(reflect.ValueOf(value))
}

func reflectValue(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > 1<<63-1 {
			// like PHP integer overflow
			return Float(float64(u))
		}
		return Int(int64(u))
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return String(string(rv.Bytes()))
		}
		a := NewArraySized(rv.Len())
		for i := 0; i < rv.Len(); i++ {
			a.table.insert(IntKey(int64(i)), PHPValue(rv.Index(i).Interface()))
		}
		return ArrayValue(a)
	case reflect.Map:
		return ArrayValue(reflectMap(rv))
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
	}

	return ObjectValue(rv.Interface())
}

// reflectMap converts a map with scalar keys, in sorted key order.
func reflectMap(rv reflect.Value) *Array {
	keys := rv.MapKeys()
	pairs := make([]keyed, 0, len(keys))
	for _, mk := range keys {
		var k Key
		switch mk.Kind() {
		case reflect.String:
			k = StringKey(mk.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			k = IntKey(mk.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			k = StringKey(strconv.FormatUint(mk.Uint(), 10))
		default:
			kk, err := KeyOf(PHPValue(mk.Interface()))
			if err != nil {
				report(IllegalKeyType, "Cannot access offset of type %s on array", mk.Type())
				continue
			}
			k = kk
		}
		pairs = append(pairs, keyed{k, PHPValue(rv.MapIndex(mk).Interface())})
	}
	slices.SortFunc(pairs, func(p, q keyed) int {
		return CompareKeys(p.key, q.key)
	})

	a := NewArraySized(len(pairs))
	for _, p := range pairs {
		a.put(p.key, p.value)
	}

	return a
}
