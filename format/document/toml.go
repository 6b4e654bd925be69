package document

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ParseTOML parses a TOML document. Tables become objects with keys in
// lexical order; date-time values become RFC3339 strings.
func ParseTOML(data []byte) (*Document, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("document: parse toml: %w", err)
	}
	n, err := fromTOML(m)
	if err != nil {
		return nil, fmt.Errorf("document: parse toml: %w", err)
	}
	return &Document{root: n}, nil
}

func fromTOML(v any) (Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := Object()
		for _, k := range keys {
			val, err := fromTOML(x[k])
			if err != nil {
				return Node{}, fmt.Errorf("%s: %w", k, err)
			}
			obj.Put(k, val)
		}
		return obj, nil
	case []any:
		items := make([]Node, 0, len(x))
		for _, it := range x {
			n, err := fromTOML(it)
			if err != nil {
				return Node{}, err
			}
			items = append(items, n)
		}
		return Array(items...), nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int64:
		return Int(x), nil
	case float64:
		return Float(x), nil
	case time.Time:
		return String(x.UTC().Format(time.RFC3339Nano)), nil
	case toml.LocalDateTime:
		return String(x.String()), nil
	case toml.LocalDate:
		return String(x.String()), nil
	case toml.LocalTime:
		return String(x.String()), nil
	default:
		return Node{}, fmt.Errorf("unsupported toml value %T", v)
	}
}

// MarshalTOML renders d as TOML. TOML has no null, so null values are
// omitted; arrays holding null are rejected.
func MarshalTOML(d *Document) ([]byte, error) {
	v, err := toTOML(d.root)
	if err != nil {
		return nil, fmt.Errorf("document: marshal toml: %w", err)
	}
	out, err := toml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("document: marshal toml: %w", err)
	}
	return out, nil
}

func toTOML(n Node) (any, error) {
	switch n.Kind() {
	case ObjectKind:
		m := make(map[string]any, len(n.obj.keys))
		for _, k := range n.obj.keys {
			child := n.obj.vals[k]
			if child.IsNull() {
				continue
			}
			v, err := toTOML(child)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			m[k] = v
		}
		return m, nil
	case ArrayKind:
		out := make([]any, 0, len(n.arr))
		for _, it := range n.arr {
			if it.IsNull() {
				return nil, errors.New("null array element")
			}
			v, err := toTOML(it)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case NumberKind:
		if i, ok := n.AsInt(); ok {
			return i, nil
		}
		f, _ := n.AsFloat()
		return f, nil
	case BoolKind:
		return n.b, nil
	case StringKind:
		return n.s, nil
	default:
		return nil, errors.New("null value")
	}
}
