package zval

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrIllegalKeyType is returned when a value cannot be used as an array key.
var ErrIllegalKeyType = errors.New("illegal offset type")

// Key is the canonical identity of an array slot: either an integer or a
// string. Strings holding a canonical decimal integer ("8", "-3") are always
// stored as integers, so StringKey("8") == IntKey(8) while "08" stays a string.
//
// Key is comparable and can be used as a Go map key.
type Key struct {
	s   string
	i   int64
	str bool
}

// IntKey returns the integer key i.
func IntKey(i int64) Key {
	return Key{i: i}
}

// StringKey returns the canonical key for s.
func StringKey(s string) Key {
	if i, ok := canonicalInt(s); ok {
		return Key{i: i}
	}

	return Key{s: s, str: true}
}

// canonicalInt reports whether s is the canonical decimal representation of
// an int64: no leading zeros (except "0" itself), no "+", no "-0", no spaces.
func canonicalInt(s string) (int64, bool) {
	n := len(s)
	if n == 0 || n > 20 {
		return 0, false
	}

	d := 0
	if s[0] == '-' {
		d = 1
		if n == 1 {
			return 0, false
		}
	}
	if s[d] == '0' {
		if n == 1 {
			return 0, true
		}
		return 0, false
	}
	for j := d; j < n; j++ {
		if !isDigit(s[j]) {
			return 0, false
		}
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}

	return i, true
}

// IsString reports whether k is a string key.
func (k Key) IsString() bool {
	return k.str
}

// IsInt reports whether k is an integer key.
func (k Key) IsInt() bool {
	return !k.str
}

// Int returns the integer of an integer key, 0 for string keys.
func (k Key) Int() int64 {
	return k.i
}

// String returns the key as PHP would print it.
func (k Key) String() string {
	if k.str {
		return k.s
	}

	return strconv.FormatInt(k.i, 10)
}

// Value returns the key as a PHP value (Int or String).
func (k Key) Value() Value {
	if k.str {
		return String(k.s)
	}

	return Int(k.i)
}

// GoString helps tests and debuggers tell 8 from "8".
func (k Key) GoString() string {
	if k.str {
		return strconv.Quote(k.s)
	}

	return strconv.FormatInt(k.i, 10)
}

// KeyOf converts a scalar to an array key following PHP's rules: booleans
// become 0 or 1, null becomes "", floats are truncated toward zero and
// strings are canonicalized. Arrays and objects are rejected.
func KeyOf(v Value) (Key, error) {
	k, _, err := keyOf(v)

	return k, err
}

// keyOf also reports whether a float key lost its fractional part.
func keyOf(v Value) (k Key, lossy bool, err error) {
	v = v.Deref()
	switch v.typ {
	case TypeInt:
		return IntKey(v.n), false, nil
	case TypeString:
		return StringKey(v.s), false, nil
	case TypeBool:
		return IntKey(v.n), false, nil
	case TypeNull:
		return Key{str: true}, false, nil
	case TypeFloat:
		f := v.Float()
		i := floatToInt(f)
		return IntKey(i), math.IsNaN(f) || math.IsInf(f, 0) || float64(i) != f, nil
	}

	return Key{}, false, fmt.Errorf("%w: %s", ErrIllegalKeyType, v.TypeName())
}

// CompareKeys orders two keys the way ksort's regular mode does: integers
// numerically, strings with the numeric-aware string comparison and mixed
// pairs as regular comparison of an int with a string.
func CompareKeys(a, b Key) int {
	switch {
	case !a.str && !b.str:
		return compareInts(a.i, b.i)
	case a.str && b.str:
		return smartCompareStrings(a.s, b.s)
	case a.str:
		return -compareNumberToString(Int(b.i), a.s)
	default:
		return compareNumberToString(Int(a.i), b.s)
	}
}
