package zval

import (
	"io"
	"strconv"
	"strings"
)

// The dump functions carry the nesting level explicitly and use the Enter and
// Leave protocol, so cycles through references print a recursion marker
// instead of looping.

// PrintR writes v the way print_r does.
func PrintR(w io.Writer, v Value) error {
	_, err := w.Write(appendPrintR(nil, v, 0))

	return err
}

// SprintR returns the print_r representation of v.
func SprintR(v Value) string {
	return string(appendPrintR(nil, v, 0))
}

func appendSpaces(dst []byte, n int) []byte {
	for ; n > 0; n-- {
		dst = append(dst, ' ')
	}

	return dst
}

func appendPrintR(dst []byte, v Value, indent int) []byte {
	v = v.Deref()
	switch v.typ {
	case TypeArray:
		a := v.p.(*Array)
		dst = append(dst, "Array\n"...)
		if !a.Enter() {
			return append(dst, " *RECURSION*"...)
		}
		defer a.Leave()

		return appendPrintRHash(dst, a, indent)
	case TypeObject:
		dst = append(dst, className(v.p)...)
		dst = append(dst, " Object\n"...)
		o, ok := v.p.(*StdClass)
		if !ok {
			return appendPrintRHash(dst, NewArray(), indent)
		}
		if !o.props.Enter() {
			return append(dst, " *RECURSION*"...)
		}
		defer o.props.Leave()

		return appendPrintRHash(dst, o.props, indent)
	case TypeInt:
		return strconv.AppendInt(dst, v.n, 10)
	}

	return append(dst, v.ToString()...)
}

func appendPrintRHash(dst []byte, a *Array, indent int) []byte {
	dst = appendSpaces(dst, indent)
	dst = append(dst, "(\n"...)

	t := a.table
	for i := t.head; i != noSlot; i = t.slots[i].next {
		s := &t.slots[i]
		dst = appendSpaces(dst, indent+4)
		dst = append(dst, '[')
		dst = append(dst, s.key.String()...)
		dst = append(dst, "] => "...)
		dst = appendPrintR(dst, s.value, indent+8)
		dst = append(dst, '\n')
	}

	dst = appendSpaces(dst, indent)

	return append(dst, ")\n"...)
}

// VarDump writes v the way var_dump does. Floats use the shortest
// representation that round-trips.
func VarDump(w io.Writer, v Value) error {
	_, err := w.Write(appendVarDump(nil, v, 1))

	return err
}

func appendVarDump(dst []byte, v Value, level int) []byte {
	if level > 1 {
		dst = appendSpaces(dst, level-1)
	}

	v = v.Deref()
	switch v.typ {
	case TypeNull:
		return append(dst, "NULL\n"...)
	case TypeBool:
		if v.Bool() {
			return append(dst, "bool(true)\n"...)
		}
		return append(dst, "bool(false)\n"...)
	case TypeInt:
		dst = append(dst, "int("...)
		dst = strconv.AppendInt(dst, v.n, 10)
		return append(dst, ")\n"...)
	case TypeFloat:
		dst = append(dst, "float("...)
		dst = appendFloat(dst, v.Float(), -1, false)
		return append(dst, ")\n"...)
	case TypeString:
		dst = append(dst, "string("...)
		dst = strconv.AppendInt(dst, int64(len(v.s)), 10)
		dst = append(dst, ") \""...)
		dst = append(dst, v.s...)
		return append(dst, "\"\n"...)
	case TypeArray:
		a := v.p.(*Array)
		if !a.Enter() {
			return append(dst, "*RECURSION*\n"...)
		}
		defer a.Leave()

		dst = append(dst, "array("...)
		dst = strconv.AppendInt(dst, int64(a.Count()), 10)
		dst = append(dst, ") {\n"...)
		dst = appendVarDumpElements(dst, a, level, false)
	case TypeObject:
		props := NewArray()
		var id uint64
		if o, ok := v.p.(*StdClass); ok {
			props, id = o.props, o.id
		}
		if !props.Enter() {
			return append(dst, "*RECURSION*\n"...)
		}
		defer props.Leave()

		dst = append(dst, "object("...)
		dst = append(dst, className(v.p)...)
		dst = append(dst, ")#"...)
		dst = strconv.AppendUint(dst, id, 10)
		dst = append(dst, " ("...)
		dst = strconv.AppendInt(dst, int64(props.Count()), 10)
		dst = append(dst, ") {\n"...)
		dst = appendVarDumpElements(dst, props, level, true)
	}

	if level > 1 {
		dst = appendSpaces(dst, level-1)
	}

	return append(dst, "}\n"...)
}

func appendVarDumpElements(dst []byte, a *Array, level int, properties bool) []byte {
	t := a.table
	for i := t.head; i != noSlot; i = t.slots[i].next {
		s := &t.slots[i]
		dst = appendSpaces(dst, level+1)
		dst = append(dst, '[')
		if s.key.str || properties {
			dst = append(dst, '"')
			dst = append(dst, s.key.String()...)
			dst = append(dst, '"')
		} else {
			dst = strconv.AppendInt(dst, s.key.i, 10)
		}
		dst = append(dst, "]=>\n"...)
		dst = appendVarDump(dst, s.value, level+2)
	}

	return dst
}

// VarExport writes v as parsable PHP code, the way var_export does. Cycles
// are exported as NULL with a diagnostic.
func VarExport(w io.Writer, v Value) error {
	_, err := w.Write(appendVarExport(nil, v, 1))

	return err
}

var exportEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\x00", `' . "\0" . '`)

func appendExportString(dst []byte, s string) []byte {
	dst = append(dst, '\'')
	dst = append(dst, exportEscaper.Replace(s)...)

	return append(dst, '\'')
}

func appendVarExport(dst []byte, v Value, level int) []byte {
	v = v.Deref()
	switch v.typ {
	case TypeNull:
		return append(dst, "NULL"...)
	case TypeBool:
		if v.Bool() {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case TypeInt:
		if v.n == -9223372036854775808 {
			// the literal would parse as a float
			return append(dst, "-9223372036854775807-1"...)
		}
		return strconv.AppendInt(dst, v.n, 10)
	case TypeFloat:
		return appendFloat(dst, v.Float(), -1, true)
	case TypeString:
		return appendExportString(dst, v.s)
	case TypeArray:
		a := v.p.(*Array)
		if !a.Enter() {
			report(CircularReference, "var_export does not handle circular references")
			return append(dst, "NULL"...)
		}
		defer a.Leave()

		if level > 1 {
			dst = append(dst, '\n')
			dst = appendSpaces(dst, level-1)
		}
		dst = append(dst, "array (\n"...)

		t := a.table
		for i := t.head; i != noSlot; i = t.slots[i].next {
			s := &t.slots[i]
			dst = appendSpaces(dst, level+1)
			if s.key.str {
				dst = appendExportString(dst, s.key.s)
			} else {
				dst = strconv.AppendInt(dst, s.key.i, 10)
			}
			dst = append(dst, " => "...)
			dst = appendVarExport(dst, s.value, level+2)
			dst = append(dst, ",\n"...)
		}

		if level > 1 {
			dst = appendSpaces(dst, level-1)
		}
		return append(dst, ')')
	case TypeObject:
		o, std := v.p.(*StdClass)
		props := NewArray()
		if std {
			props = o.props
		}
		if !props.Enter() {
			report(CircularReference, "var_export does not handle circular references")
			return append(dst, "NULL"...)
		}
		defer props.Leave()

		if level > 1 {
			dst = append(dst, '\n')
			dst = appendSpaces(dst, level-1)
		}
		if std {
			dst = append(dst, "(object) array(\n"...)
		} else {
			dst = append(dst, '\\')
			dst = append(dst, className(v.p)...)
			dst = append(dst, "::__set_state(array(\n"...)
		}

		t := props.table
		for i := t.head; i != noSlot; i = t.slots[i].next {
			s := &t.slots[i]
			dst = appendSpaces(dst, level+2)
			if s.key.str {
				dst = appendExportString(dst, s.key.s)
			} else {
				dst = strconv.AppendInt(dst, s.key.i, 10)
			}
			dst = append(dst, " => "...)
			dst = appendVarExport(dst, s.value, level+2)
			dst = append(dst, ",\n"...)
		}

		if level > 1 {
			dst = appendSpaces(dst, level-1)
		}
		if std {
			return append(dst, ')')
		}
		return append(dst, "))"...)
	}

	return dst
}
