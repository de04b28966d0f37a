package zval

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// ErrIncomparable is wrapped by errors returned when two values admit no ordering.
	ErrIncomparable = errors.New("values are not comparable")
	// ErrNextElementOccupied is returned when an append would need a key beyond the int64 range.
	ErrNextElementOccupied = errors.New("cannot add element to the array as the next element is already occupied")
)

// IncomparableError describes a comparison that has no defined order.
type IncomparableError struct {
	Left, Right string
	Reason      string
}

func (e *IncomparableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot compare %s with %s: %s", e.Left, e.Right, e.Reason)
	}

	return fmt.Sprintf("cannot compare %s with %s", e.Left, e.Right)
}

func (e *IncomparableError) Unwrap() error {
	return ErrIncomparable
}

// DiagnosticKind classifies a soft diagnostic.
type DiagnosticKind uint8

const (
	IllegalKeyType DiagnosticKind = iota
	UndefinedKey
	MisusedAsArray
	MisusedAsObject
	Incomparable
	NextElementOccupied
	ImplicitFloatKey
	Conversion
	FalseToArray
	CircularReference
)

var diagnosticKindNames = [...]string{
	IllegalKeyType:      "illegal_key_type",
	UndefinedKey:        "undefined_key",
	MisusedAsArray:      "misused_as_array",
	MisusedAsObject:     "misused_as_object",
	Incomparable:        "incomparable",
	NextElementOccupied: "next_element_occupied",
	ImplicitFloatKey:    "implicit_float_key",
	Conversion:          "conversion",
	FalseToArray:        "false_to_array",
	CircularReference:   "circular_reference",
}

func (k DiagnosticKind) String() string {
	if int(k) < len(diagnosticKindNames) {
		return diagnosticKindNames[k]
	}

	return "unknown"
}

// Deprecation reports whether PHP raises k as E_DEPRECATED rather than a warning.
func (k DiagnosticKind) Deprecation() bool {
	return k == ImplicitFloatKey || k == FalseToArray
}

// Diagnostic is a non-fatal condition raised while manipulating values.
// Execution continues with a safe default (null, false or zero).
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

// DiagnosticHandler receives soft diagnostics.
type DiagnosticHandler func(Diagnostic)

func report(kind DiagnosticKind, format string, args ...any) {
	d := Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)}

	metrics.Diagnostic(kind)
	if onDiag != nil {
		onDiag(d)
	}

	if kind.Deprecation() {
		if c := logger.Check(zapcore.DebugLevel, d.Message); c != nil {
			c.Write(zap.Stringer("kind", kind))
		}

		return
	}

	logger.Warn(d.Message, zap.Stringer("kind", kind))
}

func reportUndefinedKey(k Key) {
	if k.str {
		report(UndefinedKey, "Undefined array key %q", k.s)

		return
	}

	report(UndefinedKey, "Undefined array key %d", k.i)
}
