package document

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a single YAML mapping into a document, keeping key
// order. Timestamps become strings; integers and floats become numbers.
func ParseYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("document: parse yaml: %w", err)
	}
	n, err := fromYAML(&root)
	if err != nil {
		return nil, fmt.Errorf("document: parse yaml: %w", err)
	}
	if n.Kind() == NullKind {
		// empty input
		return New(), nil
	}
	doc, err := FromNode(n)
	if err != nil {
		return nil, fmt.Errorf("document: parse yaml: %w", err)
	}
	return doc, nil
}

func fromYAML(y *yaml.Node) (Node, error) {
	switch y.Kind {
	case 0:
		return Null(), nil
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return Null(), nil
		}
		return fromYAML(y.Content[0])
	case yaml.AliasNode:
		if y.Alias == nil {
			return Node{}, errors.New("dangling alias")
		}
		return fromYAML(y.Alias)
	case yaml.MappingNode:
		obj := Object()
		for i := 0; i+1 < len(y.Content); i += 2 {
			k, v := y.Content[i], y.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return Node{}, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			val, err := fromYAML(v)
			if err != nil {
				return Node{}, err
			}
			obj.Put(k.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		items := make([]Node, 0, len(y.Content))
		for _, c := range y.Content {
			it, err := fromYAML(c)
			if err != nil {
				return Node{}, err
			}
			items = append(items, it)
		}
		return Array(items...), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(y)
	default:
		return Node{}, fmt.Errorf("line %d: unsupported yaml node kind %d", y.Line, y.Kind)
	}
}

func fromYAMLScalar(y *yaml.Node) (Node, error) {
	switch y.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return Node{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := y.Decode(&i); err != nil {
			return Node{}, err
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := y.Decode(&f); err != nil {
			return Node{}, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Node{}, fmt.Errorf("line %d: %s is not representable", y.Line, y.Value)
		}
		return Float(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their text.
		return String(y.Value), nil
	}
}

// MarshalYAML renders d as YAML with keys in document order.
func MarshalYAML(d *Document) ([]byte, error) {
	out, err := yaml.Marshal(toYAML(d.root))
	if err != nil {
		return nil, fmt.Errorf("document: marshal yaml: %w", err)
	}
	return out, nil
}

func toYAML(n Node) *yaml.Node {
	switch n.Kind() {
	case ObjectKind:
		y := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range n.obj.keys {
			y.Content = append(y.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				toYAML(n.obj.vals[k]))
		}
		return y
	case ArrayKind:
		y := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, it := range n.arr {
			y.Content = append(y.Content, toYAML(it))
		}
		return y
	case StringKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.s}
	case NumberKind:
		if _, ok := n.AsInt(); ok {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: n.s}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: n.s}
	case BoolKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(n.b)}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
