package zval

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintR(t *testing.T) {
	a := NewArray()
	a.Set(String("a"), Int(1))
	a.Set(String("b"), ArrayValue(FromList(Bool(true), Bool(false), Float(1.5))))

	var buf bytes.Buffer
	require.NoError(t, PrintR(&buf, ArrayValue(a)))

	expected := "Array\n(\n    [a] => 1\n    [b] => Array\n        (\n            [0] => 1\n            [1] => \n            [2] => 1.5\n        )\n\n)\n"
	assert.Equal(t, expected, buf.String())
}

func TestPrintRScalars(t *testing.T) {
	assert.Equal(t, "x", SprintR(String("x")))
	assert.Equal(t, "0.3", SprintR(Float(0.1+0.2)))
	assert.Equal(t, "", SprintR(Null()))
	assert.Equal(t, "-3", SprintR(Int(-3)))
}

func TestPrintRObject(t *testing.T) {
	o := NewStdClass()
	o.Set("p", Int(1))

	assert.Equal(t, "stdClass Object\n(\n    [p] => 1\n)\n", SprintR(ObjectValue(o)))
}

func TestPrintRRecursion(t *testing.T) {
	a := selfReferencing()

	assert.Equal(t, "Array\n(\n    [0] => Array\n *RECURSION*\n)\n", SprintR(ArrayValue(a)))
	assert.False(t, a.table.visited)
}

func TestVarDump(t *testing.T) {
	a := NewArray()
	a.Set(String("a"), Int(1))
	a.Set(Int(0), String("x"))
	a.Set(String("f"), Float(1.5))
	a.Set(String("n"), Null())
	a.Set(String("b"), Bool(true))
	a.Set(String("nested"), ArrayValue(NewArray()))

	var buf bytes.Buffer
	require.NoError(t, VarDump(&buf, ArrayValue(a)))

	expected := `array(6) {
  ["a"]=>
  int(1)
  [0]=>
  string(1) "x"
  ["f"]=>
  float(1.5)
  ["n"]=>
  NULL
  ["b"]=>
  bool(true)
  ["nested"]=>
  array(0) {
  }
}
`
	assert.Equal(t, expected, buf.String())
}

func TestVarDumpScalars(t *testing.T) {
	tests := []struct {
		input    Value
		expected string
	}{
		{Float(0.1 + 0.2), "float(0.30000000000000004)\n"},
		{Float(1), "float(1)\n"},
		{Float(math.Inf(-1)), "float(-INF)\n"},
		{Bool(false), "bool(false)\n"},
		{String("héllo"), "string(6) \"héllo\"\n"},
		{RefValue(NewReference(Int(7))), "int(7)\n"},
	}

	for _, test := range tests {
		var buf bytes.Buffer
		require.NoError(t, VarDump(&buf, test.input))
		assert.Equal(t, test.expected, buf.String())
	}
}

func TestVarDumpObject(t *testing.T) {
	o := NewStdClass()
	o.Set("p", Int(1))

	var buf bytes.Buffer
	require.NoError(t, VarDump(&buf, ObjectValue(o)))

	expected := fmt.Sprintf("object(stdClass)#%d (1) {\n  [\"p\"]=>\n  int(1)\n}\n", o.ID())
	assert.Equal(t, expected, buf.String())
}

func TestVarDumpRecursion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, VarDump(&buf, ArrayValue(selfReferencing())))

	assert.Equal(t, "array(1) {\n  [0]=>\n  *RECURSION*\n}\n", buf.String())
}

func TestVarExport(t *testing.T) {
	a := NewArray()
	a.Set(String("a"), Int(1))
	a.Set(Int(0), String("it's"))
	a.Set(String("f"), Float(1))
	a.Set(String("n"), Null())
	a.Set(String("nested"), ArrayValue(FromList(Bool(true))))

	var buf bytes.Buffer
	require.NoError(t, VarExport(&buf, ArrayValue(a)))

	expected := `array (
  'a' => 1,
  0 => 'it\'s',
  'f' => 1.0,
  'n' => NULL,
  'nested' => 
  array (
    0 => true,
  ),
)`
	assert.Equal(t, expected, buf.String())
}

func TestVarExportScalars(t *testing.T) {
	tests := []struct {
		input    Value
		expected string
	}{
		{Int(math.MinInt64), "-9223372036854775807-1"},
		{Float(0.1), "0.1"},
		{Float(-0.5), "-0.5"},
		{Float(1e100), "1.0E+100"},
		{String(`back\slash`), `'back\\slash'`},
		{String("nul\x00byte"), `'nul' . "\0" . 'byte'`},
		{Bool(false), "false"},
	}

	for _, test := range tests {
		var buf bytes.Buffer
		require.NoError(t, VarExport(&buf, test.input))
		assert.Equal(t, test.expected, buf.String())
	}
}

func TestVarExportObject(t *testing.T) {
	o := NewStdClass()
	o.Set("p", Int(1))

	var buf bytes.Buffer
	require.NoError(t, VarExport(&buf, ObjectValue(o)))

	assert.Equal(t, "(object) array(\n   'p' => 1,\n)", buf.String())
}

func TestVarExportRecursion(t *testing.T) {
	diags := captureDiagnostics(t)

	var buf bytes.Buffer
	require.NoError(t, VarExport(&buf, ArrayValue(selfReferencing())))

	assert.Equal(t, "array (\n  0 => NULL,\n)", buf.String())
	assert.Equal(t, []DiagnosticKind{CircularReference}, kinds(*diags))
}
