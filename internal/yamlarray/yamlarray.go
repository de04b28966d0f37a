// Package yamlarray converts between YAML documents and PHP values. Mapping
// order is preserved in both directions.
package yamlarray

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/dunglas/zval"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedNode = errors.New("unsupported YAML node")

// maxAliasExpansions bounds the aliases a single document may expand, so
// that nested fan-out ("billion laughs") fails instead of exhausting memory.
const maxAliasExpansions = 10000

// decoder tracks the anchors being expanded: an alias nested under its own
// anchor would otherwise recurse forever.
type decoder struct {
	expanding  map[*yaml.Node]bool
	expansions int
}

// Decode parses a YAML document. Mappings become arrays keyed like PHP would
// key them ("1" is the integer 1), sequences become lists. An empty document
// decodes to null.
func Decode(data []byte) (zval.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return zval.Null(), fmt.Errorf("decoding YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return zval.Null(), nil
	}

	d := &decoder{expanding: map[*yaml.Node]bool{}}

	return d.decodeNode(doc.Content[0])
}

// enter resolves alias n, failing when its anchor is already being expanded.
// The returned function must be called once the target has been decoded.
func (d *decoder) enter(n *yaml.Node) (*yaml.Node, func(), error) {
	target := n.Alias
	if target == nil {
		return nil, nil, fmt.Errorf("%w: unresolved alias at line %d", ErrUnsupportedNode, n.Line)
	}
	if d.expanding[target] {
		return nil, nil, fmt.Errorf("%w: recursive alias %q at line %d", ErrUnsupportedNode, n.Value, n.Line)
	}
	d.expansions++
	if d.expansions > maxAliasExpansions {
		return nil, nil, fmt.Errorf("%w: more than %d alias expansions", ErrUnsupportedNode, maxAliasExpansions)
	}

	d.expanding[target] = true

	return target, func() { delete(d.expanding, target) }, nil
}

func (d *decoder) decodeNode(n *yaml.Node) (zval.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return zval.Null(), nil
		}
		return d.decodeNode(n.Content[0])
	case yaml.AliasNode:
		target, leave, err := d.enter(n)
		if err != nil {
			return zval.Null(), err
		}
		defer leave()

		return d.decodeNode(target)
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.SequenceNode:
		a := zval.NewArraySized(len(n.Content))
		for _, c := range n.Content {
			v, err := d.decodeNode(c)
			if err != nil {
				return zval.Null(), err
			}
			if _, err := a.Append(v); err != nil {
				return zval.Null(), err
			}
		}
		return zval.ArrayValue(a), nil
	case yaml.MappingNode:
		a := zval.NewArraySized(len(n.Content) / 2)
		if err := d.decodeMapping(a, n); err != nil {
			return zval.Null(), err
		}
		return zval.ArrayValue(a), nil
	}

	return zval.Null(), fmt.Errorf("%w: kind %d at line %d", ErrUnsupportedNode, n.Kind, n.Line)
}

func (d *decoder) decodeMapping(a *zval.Array, n *yaml.Node) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]

		if kn.ShortTag() == "!!merge" {
			if err := d.merge(a, vn); err != nil {
				return err
			}

			continue
		}

		kv, err := d.decodeNode(kn)
		if err != nil {
			return err
		}
		k, err := zval.KeyOf(kv)
		if err != nil {
			return fmt.Errorf("mapping key at line %d: %w", kn.Line, err)
		}
		v, err := d.decodeNode(vn)
		if err != nil {
			return err
		}
		a.SetKey(k, v)
	}

	return nil
}

// merge applies a "<<" merge key: keys already present win.
func (d *decoder) merge(a *zval.Array, n *yaml.Node) error {
	if n.Kind == yaml.AliasNode {
		target, leave, err := d.enter(n)
		if err != nil {
			return err
		}
		defer leave()
		n = target
	}
	if n.Kind == yaml.SequenceNode {
		for _, c := range n.Content {
			if err := d.merge(a, c); err != nil {
				return err
			}
		}

		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: merge of a non-mapping at line %d", ErrUnsupportedNode, n.Line)
	}

	src := zval.NewArray()
	if err := d.decodeMapping(src, n); err != nil {
		return err
	}
	for k, v := range src.Values() {
		if _, ok := a.GetKey(k); !ok {
			a.SetKey(k, v)
		}
	}

	return nil
}

func decodeScalar(n *yaml.Node) (zval.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return zval.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return zval.Null(), err
		}
		return zval.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return zval.Int(i), nil
		}
		// out of the int64 range, PHP falls back to a float
		var f float64
		if err := n.Decode(&f); err != nil {
			return zval.Null(), err
		}
		return zval.Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return zval.Null(), err
		}
		return zval.Float(f), nil
	case "!!binary":
		b, err := base64.StdEncoding.DecodeString(n.Value)
		if err != nil {
			return zval.Null(), fmt.Errorf("binary scalar at line %d: %w", n.Line, err)
		}
		return zval.String(string(b)), nil
	}

	return zval.String(n.Value), nil
}

// Encode renders v as YAML. Lists become sequences, other arrays mappings in
// their iteration order. Objects are rejected.
func Encode(v zval.Value) ([]byte, error) {
	n, err := encodeNode(v)
	if err != nil {
		return nil, err
	}

	return yaml.Marshal(n)
}

func encodeNode(v zval.Value) (*yaml.Node, error) {
	v = v.Deref()
	switch v.Type() {
	case zval.TypeNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case zval.TypeBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool())}, nil
	case zval.TypeInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.Int(), 10)}, nil
	case zval.TypeFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(v.Float())}, nil
	case zval.TypeString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str()}, nil
	case zval.TypeArray:
		return encodeArray(v.Array())
	}

	return nil, fmt.Errorf("%w: cannot encode %s", ErrUnsupportedNode, v.TypeName())
}

func encodeArray(a *zval.Array) (*yaml.Node, error) {
	if !a.Enter() {
		return nil, fmt.Errorf("%w: circular reference", ErrUnsupportedNode)
	}
	defer a.Leave()

	if a.IsList() {
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, v := range a.Values() {
			c, err := encodeNode(v)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}

		return n, nil
	}

	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range a.Values() {
		kn, err := encodeNode(k.Value())
		if err != nil {
			return nil, err
		}
		c, err := encodeNode(v)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, kn, c)
	}

	return n, nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		// keep the float tag visible
		s += ".0"
	}

	return s
}
