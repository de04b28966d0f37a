package zval

import "strings"

// ComparatorKind selects how a Comparator orders values. The kinds mirror
// the SORT_* flags of PHP's sort functions.
type ComparatorKind uint8

const (
	// Regular is the loose comparison of <=>.
	Regular ComparatorKind = iota
	// Strict orders identical values as equal and refuses to order values of
	// different types.
	Strict
	// Numeric compares the float conversions of both operands.
	Numeric
	// StringOrdinal compares the string conversions byte-wise.
	StringOrdinal
	// Natural compares the string conversions in natural order.
	Natural
	// ArrayKey compares operands converted to array keys.
	ArrayKey
	// UserCallback delegates to a function.
	UserCallback
	// LocaleString compares the string conversions with the collation of the
	// configured locale.
	LocaleString
)

func (k ComparatorKind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Strict:
		return "strict"
	case Numeric:
		return "numeric"
	case StringOrdinal:
		return "string"
	case Natural:
		return "natural"
	case ArrayKey:
		return "key"
	case UserCallback:
		return "callback"
	case LocaleString:
		return "locale"
	}

	return "unknown"
}

// Comparator is one of a closed set of orderings used by sorting and
// searching. The zero Comparator is Regular.
type Comparator struct {
	kind     ComparatorKind
	foldCase bool
	reverse  bool
	fn       func(x, y Value) int
}

func RegularComparator() Comparator {
	return Comparator{kind: Regular}
}

func StrictComparator() Comparator {
	return Comparator{kind: Strict}
}

func NumericComparator() Comparator {
	return Comparator{kind: Numeric}
}

// StringComparator compares string conversions, ignoring ASCII case when
// foldCase is set (SORT_STRING | SORT_FLAG_CASE).
func StringComparator(foldCase bool) Comparator {
	return Comparator{kind: StringOrdinal, foldCase: foldCase}
}

// NaturalComparator compares string conversions with NaturalCompare.
func NaturalComparator(foldCase bool) Comparator {
	return Comparator{kind: Natural, foldCase: foldCase}
}

func KeyComparator() Comparator {
	return Comparator{kind: ArrayKey}
}

// CallbackComparator orders values by the sign of fn's result, like usort.
func CallbackComparator(fn func(x, y Value) int) Comparator {
	return Comparator{kind: UserCallback, fn: fn}
}

func LocaleComparator() Comparator {
	return Comparator{kind: LocaleString}
}

// ComparatorOf returns the comparator of the given kind. UserCallback needs
// CallbackComparator and yields a Regular comparator here.
func ComparatorOf(kind ComparatorKind, foldCase bool) Comparator {
	if kind == UserCallback {
		kind = Regular
	}

	return Comparator{kind: kind, foldCase: foldCase}
}

// Kind returns the kind of c.
func (c Comparator) Kind() ComparatorKind {
	return c.kind
}

// Reverse returns c with the order inverted, as rsort and arsort use.
func (c Comparator) Reverse() Comparator {
	c.reverse = !c.reverse

	return c
}

// Compare orders x and y. Only Strict and ArrayKey comparators return
// errors: Strict for values of different types or without an order,
// ArrayKey for values that are not valid keys.
func (c Comparator) Compare(x, y Value) (int, error) {
	r, err := c.compare(x.Deref(), y.Deref())
	if c.reverse {
		r = -r
	}

	return r, err
}

func (c Comparator) compare(x, y Value) (int, error) {
	switch c.kind {
	case Strict:
		if StrictEquals(x, y) {
			return 0, nil
		}
		if x.typ != y.typ {
			return 0, &IncomparableError{Left: x.TypeName(), Right: y.TypeName(), Reason: "different types"}
		}
		return CompareChecked(x, y)
	case Numeric:
		return compareFloats(x.ToFloat(), y.ToFloat()), nil
	case StringOrdinal:
		a, b := x.ToString(), y.ToString()
		if c.foldCase {
			return compareFolded(a, b), nil
		}
		return strings.Compare(a, b), nil
	case Natural:
		return NaturalCompare(x.ToString(), y.ToString(), c.foldCase), nil
	case ArrayKey:
		kx, err := KeyOf(x)
		if err != nil {
			return 0, err
		}
		ky, err := KeyOf(y)
		if err != nil {
			return 0, err
		}
		return CompareKeys(kx, ky), nil
	case UserCallback:
		return compareInts(int64(c.fn(x, y)), 0), nil
	case LocaleString:
		return CompareLocale(x.ToString(), y.ToString()), nil
	}

	return Compare(x, y), nil
}

// compareFolded compares two strings ignoring ASCII case.
func compareFolded(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ca, cb := lower(a[i]), lower(b[i])
		if ca != cb {
			return compareInts(int64(ca), int64(cb))
		}
	}

	return compareInts(int64(len(a)), int64(len(b)))
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}

	return c
}
