package main

import (
	"github.com/dunglas/zval"
	"github.com/dunglas/zval/internal/yamlarray"
)

// parseOperand reads a command line operand as a YAML scalar (so 10 is an
// int and "10" a string) or verbatim when asString is set.
func parseOperand(arg string, asString bool) (zval.Value, error) {
	if asString {
		return zval.String(arg), nil
	}

	return yamlarray.Decode([]byte(arg))
}
