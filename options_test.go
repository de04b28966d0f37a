package zval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/language"
)

func TestWithStringPrecision(t *testing.T) {
	tests := []struct {
		precision int
		expected  string
	}{
		{14, "0.3"},
		{17, "0.30000000000000004"},
		{-1, "0.30000000000000004"},
		{3, "0.3"},
		{1, "0.3"},
	}

	for _, test := range tests {
		require.NoError(t, Init(WithStringPrecision(test.precision)))
		assert.Equal(t, test.expected, Float(0.1+0.2).ToString(), "precision %d", test.precision)
	}
	Shutdown()

	assert.Equal(t, "0.3", Float(0.1+0.2).ToString())
}

func TestWithStringPrecisionOutOfRange(t *testing.T) {
	for _, p := range []int{-2, 41} {
		err := Init(WithStringPrecision(p))
		assert.Error(t, err)
	}
	assert.Equal(t, defaultPrecision, precision)
}

func TestWithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	require.NoError(t, Init(WithLogger(zap.New(core))))
	t.Cleanup(Shutdown)

	a := NewArray()
	a.Get(String("missing"))
	a.Set(Float(1.5), Null())

	configured := logs.FilterMessage("value runtime configured")
	assert.Equal(t, 1, configured.Len())

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, `Undefined array key "missing"`, warnings[0].Message)
	assert.Equal(t, "undefined_key", warnings[0].ContextMap()["kind"])

	deprecations := logs.FilterField(zap.Stringer("kind", ImplicitFloatKey)).All()
	require.Len(t, deprecations, 1)
	assert.Equal(t, zapcore.DebugLevel, deprecations[0].Level)
}

func TestDeprecationsAreNotLoggedAboveDebug(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	require.NoError(t, Init(WithLogger(zap.New(core))))
	t.Cleanup(Shutdown)

	a := NewArray()
	a.Set(String("f"), Bool(false))
	a.EnsureArray(String("f"))

	assert.Equal(t, 0, logs.Len())
}

func TestWithLocale(t *testing.T) {
	require.NoError(t, Init(WithLocale(language.Swedish)))
	t.Cleanup(Shutdown)

	// Swedish sorts ä after z
	assert.Equal(t, 1, CompareLocale("ä", "z"))

	require.NoError(t, Init(WithLocale(language.German)))
	assert.Equal(t, -1, CompareLocale("ä", "z"))
}

func TestDiagnosticKindString(t *testing.T) {
	assert.Equal(t, "next_element_occupied", NextElementOccupied.String())
	assert.Equal(t, "circular_reference", CircularReference.String())
	assert.Equal(t, "unknown", DiagnosticKind(200).String())
	assert.False(t, UndefinedKey.Deprecation())
}

func TestIncomparableError(t *testing.T) {
	err := &IncomparableError{Left: "A", Right: "B", Reason: "objects of different classes"}

	assert.Equal(t, "cannot compare A with B: objects of different classes", err.Error())
	assert.ErrorIs(t, err, ErrIncomparable)
	assert.True(t, IsIncomparable(err))
	assert.Equal(t, "cannot compare A with B", (&IncomparableError{Left: "A", Right: "B"}).Error())
}
