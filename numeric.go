package zval

import (
	"math"
	"strconv"
)

// NumericKind tells what a numeric string parses to.
type NumericKind uint8

const (
	NotNumeric NumericKind = iota
	NumericInt
	NumericFloat
)

// numericScan is the result of scanning a string with PHP's numeric string grammar.
type numericScan struct {
	kind NumericKind
	i    int64
	f    float64
	// oflow is -1 or 1 when an integer literal did not fit in an int64 and was parsed as a float.
	oflow int
	// trailing is set when non-whitespace data follows the number ("12abc").
	trailing bool
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// scanNumeric implements the grammar of PHP numeric strings:
//
//	WHITESPACE* [+-]? (DIGITS ("." DIGITS?)? | "." DIGITS) ([eE] [+-]? DIGITS)? WHITESPACE*
//
// When data other than whitespace follows the number, trailing is set and the
// leading number is still returned, callers decide whether a prefix is acceptable.
func scanNumeric(s string) numericScan {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}

	intDigits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		intDigits++
	}

	isFloat := false
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
			fracDigits++
		}
		if intDigits > 0 || fracDigits > 0 {
			isFloat = true
			i = j
		}
	}

	if intDigits == 0 && fracDigits == 0 {
		return numericScan{}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '-' || s[j] == '+') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			isFloat = true
			i = j
		}
	}

	end := i
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	res := numericScan{trailing: i != len(s)}

	lit := s[start:end]
	if !isFloat {
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			res.kind = NumericInt
			res.i = n
			return res
		}
		// integer literal out of range, PHP falls back to a float
		res.oflow = 1
		if lit[0] == '-' {
			res.oflow = -1
		}
	}

	// ParseFloat reports ErrRange for overflow while still returning ±Inf, which is what PHP yields.
	f, _ := strconv.ParseFloat(lit, 64)
	res.kind = NumericFloat
	res.f = f

	return res
}

// ParseNumeric parses s as a PHP numeric string. Leading and trailing
// whitespace is allowed, anything else makes the string non-numeric.
// The returned value is an Int or a Float.
func ParseNumeric(s string) (Value, bool) {
	r := scanNumeric(s)
	if r.kind == NotNumeric || r.trailing {
		return Null(), false
	}
	if r.kind == NumericInt {
		return Int(r.i), true
	}

	return Float(r.f), true
}

// IsNumeric reports whether s is a PHP numeric string ("10", " 1e3 ", ".5").
func IsNumeric(s string) bool {
	r := scanNumeric(s)

	return r.kind != NotNumeric && !r.trailing
}

// ParseNumericPrefix parses the leading number of s the way arithmetic
// conversions do ("12abc" is 12). whole is false when data followed the number
// or when s had no leading number at all, in which case the result is Int(0).
func ParseNumericPrefix(s string) (v Value, whole bool) {
	r := scanNumeric(s)
	switch r.kind {
	case NumericInt:
		return Int(r.i), !r.trailing
	case NumericFloat:
		return Float(r.f), !r.trailing
	}

	return Int(0), false
}

const twoPow64 = 18446744073709551616.0

// floatToInt converts like PHP's zend_dval_to_lval: non-finite values become
// 0 and out of range values wrap around modulo 2^64.
func floatToInt(d float64) int64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	if d >= -9223372036854775808.0 && d < 9223372036854775808.0 {
		return int64(d)
	}

	dmod := math.Mod(d, twoPow64)
	if dmod < 0 {
		dmod += twoPow64
	}
	if dmod >= 9223372036854775808.0 {
		dmod -= twoPow64
	}

	return int64(dmod)
}

// floatToIntCap converts like zend_dval_to_lval_cap, used for numeric strings:
// out of range values saturate instead of wrapping.
func floatToIntCap(d float64) int64 {
	if math.IsNaN(d) {
		return 0
	}
	if d >= 9223372036854775808.0 {
		return math.MaxInt64
	}
	if d < -9223372036854775808.0 {
		return math.MinInt64
	}

	return int64(d)
}

// FormatFloat renders f the way PHP converts floats to strings with the given
// precision ini value. A precision of -1 selects the shortest representation
// that round-trips (serialize_precision = -1).
func FormatFloat(f float64, precision int) string {
	return string(appendFloat(nil, f, precision, false))
}

// appendFloat follows zend_gcvt: exponential notation is used when the decimal
// exponent is below -4 or not smaller than the number of significant digits
// allowed by precision. zeroFrac appends ".0" to integral values (var_export).
func appendFloat(dst []byte, f float64, precision int, zeroFrac bool) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, "NAN"...)
	case math.IsInf(f, 1):
		return append(dst, "INF"...)
	case math.IsInf(f, -1):
		return append(dst, "-INF"...)
	}

	ndigit := precision
	if precision == -1 {
		ndigit = 17
	} else if precision == 0 {
		ndigit = 1
		precision = 1
	}

	if math.Signbit(f) {
		dst = append(dst, '-')
		f = -f
	}

	var digits []byte
	decpt := 1
	if f == 0 {
		digits = []byte{'0'}
	} else {
		prec := precision - 1
		if precision == -1 {
			prec = -1
		}
		e := strconv.AppendFloat(nil, f, 'e', prec, 64)
		// e is "d.ddde±XX" or "de±XX"
		mark := 0
		for mark < len(e) && e[mark] != 'e' {
			mark++
		}
		for _, c := range e[:mark] {
			if c != '.' {
				digits = append(digits, c)
			}
		}
		for len(digits) > 1 && digits[len(digits)-1] == '0' {
			digits = digits[:len(digits)-1]
		}
		exp, _ := strconv.Atoi(string(e[mark+1:]))
		decpt = exp + 1
	}

	if decpt < -3 || decpt > ndigit {
		// exponential format, 1.0E+25
		exp := decpt - 1
		sign := byte('+')
		if exp < 0 {
			sign = '-'
			exp = -exp
		}
		dst = append(dst, digits[0], '.')
		if len(digits) == 1 {
			dst = append(dst, '0')
		} else {
			dst = append(dst, digits[1:]...)
		}
		dst = append(dst, 'E', sign)
		return strconv.AppendInt(dst, int64(exp), 10)
	}

	if decpt <= 0 {
		dst = append(dst, '0', '.')
		for ; decpt < 0; decpt++ {
			dst = append(dst, '0')
		}
		return append(dst, digits...)
	}

	for i := 0; i < decpt; i++ {
		if i < len(digits) {
			dst = append(dst, digits[i])
		} else {
			dst = append(dst, '0')
		}
	}
	if decpt < len(digits) {
		dst = append(dst, '.')
		dst = append(dst, digits[decpt:]...)
	} else if zeroFrac {
		dst = append(dst, '.', '0')
	}

	return dst
}
