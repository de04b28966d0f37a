package zval

import (
	"fmt"
	"strconv"
)

// ToBool converts v following PHP's truthiness rules.
func (v Value) ToBool() bool {
	v = v.Deref()
	switch v.typ {
	case TypeBool, TypeInt:
		return v.n != 0
	case TypeFloat:
		// NaN is truthy in PHP
		return v.Float() != 0
	case TypeString:
		return v.s != "" && v.s != "0"
	case TypeArray:
		return v.p.(*Array).Count() != 0
	case TypeObject:
		return true
	}

	return false
}

// ToInt converts v the way an (int) cast does.
func (v Value) ToInt() int64 {
	v = v.Deref()
	switch v.typ {
	case TypeBool, TypeInt:
		return v.n
	case TypeFloat:
		return floatToInt(v.Float())
	case TypeString:
		n, _ := ParseNumericPrefix(v.s)
		if n.typ == TypeFloat {
			return floatToIntCap(n.Float())
		}
		return n.n
	case TypeArray:
		if v.p.(*Array).Count() != 0 {
			return 1
		}
		return 0
	case TypeObject:
		return 1
	}

	return 0
}

// ToFloat converts v the way a (float) cast does.
func (v Value) ToFloat() float64 {
	v = v.Deref()
	switch v.typ {
	case TypeBool, TypeInt:
		return float64(v.n)
	case TypeFloat:
		return v.Float()
	case TypeString:
		n, _ := ParseNumericPrefix(v.s)
		if n.typ == TypeFloat {
			return n.Float()
		}
		return float64(n.n)
	case TypeArray:
		if v.p.(*Array).Count() != 0 {
			return 1
		}
		return 0
	case TypeObject:
		return 1
	}

	return 0
}

// ToString converts v the way a (string) cast does. Floats honour the
// configured precision. Arrays convert to "Array" with a diagnostic.
func (v Value) ToString() string {
	v = v.Deref()
	switch v.typ {
	case TypeBool:
		if v.n != 0 {
			return "1"
		}
		return ""
	case TypeInt:
		return strconv.FormatInt(v.n, 10)
	case TypeFloat:
		return FormatFloat(v.Float(), precision)
	case TypeString:
		return v.s
	case TypeArray:
		report(Conversion, "Array to string conversion")
		return "Array"
	case TypeObject:
		if s, ok := v.p.(fmt.Stringer); ok {
			return s.String()
		}
		name := className(v.p)
		report(Conversion, "Object of class %s could not be converted to string", name)
		return name
	}

	return ""
}

// ToNumber converts v to an Int or a Float for arithmetic.
func (v Value) ToNumber() Value {
	v = v.Deref()
	switch v.typ {
	case TypeInt, TypeFloat:
		return v
	case TypeString:
		n, _ := ParseNumericPrefix(v.s)
		return n
	}

	return Int(v.ToInt())
}
