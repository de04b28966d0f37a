package zval

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"strings"
)

// Compare implements PHP's regular comparison (<=>, ==, <, sort) of two
// values. It returns -1, 0 or 1. When the operands have no defined order, an
// Incomparable diagnostic is reported and 0 is returned.
func Compare(x, y Value) int {
	c, err := compareValues(x, y)
	if err != nil {
		report(Incomparable, "%s", err)

		return 0
	}

	return c
}

// CompareChecked is Compare returning an error wrapping ErrIncomparable
// instead of reporting a diagnostic.
func CompareChecked(x, y Value) (int, error) {
	return compareValues(x, y)
}

// LooseEquals implements ==. Operands without a defined order are not equal.
func LooseEquals(x, y Value) bool {
	c, err := compareValues(x, y)
	if err != nil {
		report(Incomparable, "%s", err)

		return false
	}

	return c == 0
}

// CompareNumbers compares two numeric values (Int or Float). NaN compares
// greater than everything, like PHP does.
func CompareNumbers(x, y Value) int {
	x, y = x.Deref(), y.Deref()
	if x.typ == TypeInt && y.typ == TypeInt {
		return compareInts(x.n, y.n)
	}

	return compareFloats(x.ToFloat(), y.ToFloat())
}

// CompareStrings compares two strings the way == and < do: numerically when
// both are numeric strings, byte-wise otherwise.
func CompareStrings(a, b string) int {
	return smartCompareStrings(a, b)
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

func compareFloats(a, b float64) int {
	switch {
	case a == b:
		return 0
	case a < b:
		return -1
	}

	return 1
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}

	return -1
}

func isNumber(t Type) bool {
	return t == TypeInt || t == TypeFloat
}

// smartCompareStrings follows zendi_smart_strcmp.
func smartCompareStrings(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	r1, r2 := scanNumeric(s1), scanNumeric(s2)
	if r1.kind == NotNumeric || r1.trailing || r2.kind == NotNumeric || r2.trailing {
		return strings.Compare(s1, s2)
	}

	// both overflowed to the same side: the float values are meaningless
	if r1.oflow != 0 && r1.oflow == r2.oflow && r1.f-r2.f == 0 {
		return strings.Compare(s1, s2)
	}

	if r1.kind == NumericInt && r2.kind == NumericInt {
		return compareInts(r1.i, r2.i)
	}

	d1, d2 := r1.f, r2.f
	switch {
	case r1.kind != NumericFloat:
		if r2.oflow != 0 {
			return -r2.oflow
		}
		d1 = float64(r1.i)
	case r2.kind != NumericFloat:
		if r1.oflow != 0 {
			return r1.oflow
		}
		d2 = float64(r2.i)
	case d1 == d2 && (math.IsInf(d1, 0) || math.IsNaN(d1)):
		return strings.Compare(s1, s2)
	}

	switch d := d1 - d2; {
	case d > 0:
		return 1
	case d < 0:
		return -1
	}

	return 0
}

// compareNumberToString compares an Int or Float with a string: numerically
// when the string is numeric, otherwise as the string form of the number.
func compareNumberToString(n Value, s string) int {
	if n.typ == TypeFloat && math.IsNaN(n.Float()) {
		return 1
	}

	if v, ok := ParseNumeric(s); ok {
		return CompareNumbers(n, v)
	}

	return strings.Compare(n.ToString(), s)
}

func compareValues(x, y Value) (int, error) {
	x, y = x.Deref(), y.Deref()
	tx, ty := x.typ, y.typ

	switch {
	case tx == TypeInt && ty == TypeInt:
		return compareInts(x.n, y.n), nil
	case isNumber(tx) && isNumber(ty):
		return compareFloats(x.ToFloat(), y.ToFloat()), nil
	case tx == TypeArray && ty == TypeArray:
		return compareArrays(x.p.(*Array), y.p.(*Array))
	case tx == TypeString && ty == TypeString:
		return smartCompareStrings(x.s, y.s), nil
	case tx == TypeNull && ty == TypeString:
		if y.s == "" {
			return 0, nil
		}
		return -1, nil
	case tx == TypeString && ty == TypeNull:
		if x.s == "" {
			return 0, nil
		}
		return 1, nil
	case isNumber(tx) && ty == TypeString:
		return compareNumberToString(x, y.s), nil
	case tx == TypeString && isNumber(ty):
		if ty == TypeFloat && math.IsNaN(y.Float()) {
			return 1, nil
		}
		return -compareNumberToString(y, x.s), nil
	case tx == TypeObject || ty == TypeObject:
		return compareObjects(x, y)
	case tx == TypeNull || tx == TypeBool || ty == TypeNull || ty == TypeBool:
		return compareBools(x.ToBool(), y.ToBool()), nil
	case tx == TypeArray:
		return 1, nil
	case ty == TypeArray:
		return -1, nil
	}

	return 0, nil
}

func sameObject(a, b any) bool {
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}

	return a == b
}

func compareObjects(x, y Value) (int, error) {
	if x.typ == TypeObject && y.typ == TypeObject {
		if sameObject(x.p, y.p) {
			return 0, nil
		}

		sx, okx := x.p.(*StdClass)
		sy, oky := y.p.(*StdClass)
		if okx && oky {
			return compareArrays(sx.props, sy.props)
		}

		reason := "objects have no defined order"
		if className(x.p) != className(y.p) {
			reason = "objects of different classes"
		}

		return 0, &IncomparableError{Left: x.TypeName(), Right: y.TypeName(), Reason: reason}
	}

	obj, other, sign := x, y, 1
	if y.typ == TypeObject {
		obj, other, sign = y, x, -1
	}

	switch other.typ {
	case TypeBool:
		return sign * compareBools(true, other.Bool()), nil
	case TypeInt, TypeFloat:
		report(Conversion, "Object of class %s could not be converted to %s", className(obj.p), other.typ)
		return sign * CompareNumbers(Int(1), other), nil
	case TypeString:
		if s, ok := obj.p.(interface{ String() string }); ok {
			return sign * smartCompareStrings(s.String(), other.s), nil
		}
	}

	// null, arrays and strings without a string form order below any object
	return sign, nil
}

// keyed is a slot snapshot used by order-independent array comparison.
type keyed struct {
	key   Key
	value Value
}

func sortedPairs(a *Array) []keyed {
	t := a.table
	pairs := make([]keyed, 0, t.count)
	for i := t.head; i != noSlot; i = t.slots[i].next {
		pairs = append(pairs, keyed{t.slots[i].key, t.slots[i].value})
	}
	slices.SortStableFunc(pairs, func(p, q keyed) int {
		return CompareKeys(p.key, q.key)
	})

	return pairs
}

// errRecursion is returned when a comparison walks into a pair of arrays it
// is already comparing.
var errRecursion = &IncomparableError{Left: "array", Right: "array", Reason: "nesting level too deep, recursive dependency"}

// compareArrays orders arrays by element count, then pairs elements by key
// and compares their values. An array holding a key the other lacks compares
// greater.
func compareArrays(a, b *Array) (int, error) {
	if a == b || a.table == b.table {
		return 0, nil
	}
	if c := compareInts(int64(a.Count()), int64(b.Count())); c != 0 {
		return c, nil
	}

	if a.table.visited && b.table.visited {
		metrics.RecursionGuard()

		return 0, errRecursion
	}
	if !a.table.visited {
		a.table.visited = true
		defer a.Leave()
	}
	if !b.table.visited {
		b.table.visited = true
		defer b.Leave()
	}

	pa, pb := sortedPairs(a), sortedPairs(b)
	for i := range pa {
		if pa[i].key != pb[i].key {
			return 1, nil
		}
		c, err := compareValues(pa[i].value, pb[i].value)
		if err != nil || c != 0 {
			return c, err
		}
	}

	return 0, nil
}

// StrictEquals implements ===: same type and same value, arrays with the same
// key/value pairs in the same order, objects being the same instance.
func StrictEquals(x, y Value) bool {
	eq, err := strictEquals(x, y)
	if err != nil {
		report(Incomparable, "%s", err)
	}

	return eq
}

func strictEquals(x, y Value) (bool, error) {
	x, y = x.Deref(), y.Deref()
	if x.typ != y.typ {
		return false, nil
	}

	switch x.typ {
	case TypeNull:
		return true, nil
	case TypeBool, TypeInt:
		return x.n == y.n, nil
	case TypeFloat:
		return x.Float() == y.Float(), nil
	case TypeString:
		return x.s == y.s, nil
	case TypeArray:
		return strictEqualArrays(x.p.(*Array), y.p.(*Array))
	case TypeObject:
		return sameObject(x.p, y.p), nil
	}

	return false, nil
}

func strictEqualArrays(a, b *Array) (bool, error) {
	if a == b || a.table == b.table {
		return true, nil
	}
	if a.Count() != b.Count() {
		return false, nil
	}

	if a.table.visited && b.table.visited {
		metrics.RecursionGuard()

		return false, errRecursion
	}
	if !a.table.visited {
		a.table.visited = true
		defer a.Leave()
	}
	if !b.table.visited {
		b.table.visited = true
		defer b.Leave()
	}

	ta, tb := a.table, b.table
	for i, j := ta.head, tb.head; i != noSlot; i, j = ta.slots[i].next, tb.slots[j].next {
		if ta.slots[i].key != tb.slots[j].key {
			return false, nil
		}
		eq, err := strictEquals(ta.slots[i].value, tb.slots[j].value)
		if err != nil || !eq {
			return false, err
		}
	}

	return true, nil
}

// IsIncomparable reports whether err comes from operands without a defined order.
func IsIncomparable(err error) bool {
	return errors.Is(err, ErrIncomparable)
}
