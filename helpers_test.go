package zval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// captureDiagnostics routes diagnostics to a slice for the duration of the test.
func captureDiagnostics(t *testing.T, options ...Option) *[]Diagnostic {
	t.Helper()

	var diags []Diagnostic
	options = append(options, WithDiagnosticHandler(func(d Diagnostic) {
		diags = append(diags, d)
	}))
	require.NoError(t, Init(options...))
	t.Cleanup(Shutdown)

	return &diags
}

func kinds(diags []Diagnostic) []DiagnosticKind {
	k := make([]DiagnosticKind, 0, len(diags))
	for _, d := range diags {
		k = append(k, d.Kind)
	}

	return k
}

func keysOf(a *Array) []Key {
	var keys []Key
	for k := range a.Keys() {
		keys = append(keys, k)
	}

	return keys
}

// selfReferencing builds $a = []; $a[0] = &$r; $r = $a, whose only element
// leads back to its own storage.
func selfReferencing() *Array {
	a := NewArray()
	r := a.GetRef(Int(0))
	r.Set(ArrayValue(a))

	return a
}
