// Package document implements a tree-shaped format: nested objects holding
// strings, numbers, booleans, arrays and null, as found in JSON, YAML and
// TOML documents.
package document

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind classifies a Node.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is a document value. Numbers keep their source text so integers of
// any size survive a round trip. Objects keep key insertion order.
//
// Object and array nodes share their contents when copied; the zero Node is
// null.
type Node struct {
	kind Kind
	b    bool
	s    string // string value or number text
	arr  []Node
	obj  *object
}

type object struct {
	keys []string
	vals map[string]Node
}

func Null() Node               { return Node{} }
func Bool(b bool) Node         { return Node{kind: BoolKind, b: b} }
func String(s string) Node     { return Node{kind: StringKind, s: s} }
func Int(i int64) Node         { return Node{kind: NumberKind, s: strconv.FormatInt(i, 10)} }
func Float(f float64) Node     { return Node{kind: NumberKind, s: strconv.FormatFloat(f, 'g', -1, 64)} }
func Array(items ...Node) Node { return Node{kind: ArrayKind, arr: items} }

// Number returns a number node from its textual form. It panics if text is
// not a valid JSON number.
func Number(text string) Node {
	if !json.Valid([]byte(text)) {
		panic("document.Number: invalid number " + strconv.Quote(text))
	}
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		panic("document.Number: invalid number " + strconv.Quote(text))
	}
	return Node{kind: NumberKind, s: text}
}

// Object returns an empty object node.
func Object() Node { return Node{kind: ObjectKind, obj: &object{vals: map[string]Node{}}} }

func (n Node) Kind() Kind   { return n.kind }
func (n Node) IsNull() bool { return n.kind == NullKind }

func (n Node) AsBool() (bool, bool)     { return n.b, n.kind == BoolKind }
func (n Node) AsString() (string, bool) { return n.s, n.kind == StringKind }

// NumberText returns the number's source text.
func (n Node) NumberText() (string, bool) { return n.s, n.kind == NumberKind }

// AsInt returns the number as an int64 when it is integral and fits.
func (n Node) AsInt() (int64, bool) {
	if n.kind != NumberKind {
		return 0, false
	}
	i, err := strconv.ParseInt(n.s, 10, 64)
	return i, err == nil
}

// AsFloat returns the number as a float64.
func (n Node) AsFloat() (float64, bool) {
	if n.kind != NumberKind {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.s, 64)
	return f, err == nil
}

// Items returns the elements of an array node.
func (n Node) Items() []Node { return n.arr }

// Keys returns an object's keys in insertion order.
func (n Node) Keys() []string {
	if n.kind != ObjectKind {
		return nil
	}
	return append([]string(nil), n.obj.keys...)
}

// Field returns the value stored under key in an object node.
func (n Node) Field(key string) (Node, bool) {
	if n.kind != ObjectKind {
		return Node{}, false
	}
	v, ok := n.obj.vals[key]
	return v, ok
}

// Put stores v under key, keeping the key's position if it already exists.
// It returns n to allow chaining, and panics if n is not an object.
func (n Node) Put(key string, v Node) Node {
	if n.kind != ObjectKind {
		panic("document.Node.Put: not an object")
	}
	if _, ok := n.obj.vals[key]; !ok {
		n.obj.keys = append(n.obj.keys, key)
	}
	n.obj.vals[key] = v
	return n
}

// Remove deletes key from an object node.
func (n Node) Remove(key string) {
	if n.kind != ObjectKind {
		return
	}
	if _, ok := n.obj.vals[key]; !ok {
		return
	}
	delete(n.obj.vals, key)
	for i, k := range n.obj.keys {
		if k == key {
			n.obj.keys = append(n.obj.keys[:i], n.obj.keys[i+1:]...)
			break
		}
	}
}

// Equal reports deep equality. Object key order is ignored; numbers compare
// by value.
func (n Node) Equal(o Node) bool {
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case NullKind:
		return true
	case BoolKind:
		return n.b == o.b
	case StringKind:
		return n.s == o.s
	case NumberKind:
		if n.s == o.s {
			return true
		}
		a, aok := n.AsFloat()
		b, bok := o.AsFloat()
		return aok && bok && a == b
	case ArrayKind:
		if len(n.arr) != len(o.arr) {
			return false
		}
		for i := range n.arr {
			if !n.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	default:
		if len(n.obj.keys) != len(o.obj.keys) {
			return false
		}
		for k, v := range n.obj.vals {
			w, ok := o.obj.vals[k]
			if !ok || !v.Equal(w) {
				return false
			}
		}
		return true
	}
}

// String renders n as compact JSON.
func (n Node) String() string {
	b := &bytes.Buffer{}
	n.writeJSON(b)
	return b.String()
}

// MarshalJSON writes objects in key order.
func (n Node) MarshalJSON() ([]byte, error) {
	b := &bytes.Buffer{}
	n.writeJSON(b)
	return b.Bytes(), nil
}

func (n Node) writeJSON(b *bytes.Buffer) {
	switch n.kind {
	case NullKind:
		b.WriteString("null")
	case BoolKind:
		b.WriteString(strconv.FormatBool(n.b))
	case NumberKind:
		b.WriteString(n.s)
	case StringKind:
		writeJSONString(b, n.s)
	case ArrayKind:
		b.WriteByte('[')
		for i, it := range n.arr {
			if i > 0 {
				b.WriteByte(',')
			}
			it.writeJSON(b)
		}
		b.WriteByte(']')
	case ObjectKind:
		b.WriteByte('{')
		for i, k := range n.obj.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, k)
			b.WriteByte(':')
			n.obj.vals[k].writeJSON(b)
		}
		b.WriteByte('}')
	}
}

func writeJSONString(b *bytes.Buffer, s string) {
	out, err := json.Marshal(s)
	if err != nil {
		// unreachable for strings; keep output valid
		b.WriteString(strconv.Quote(s))
		return
	}
	b.Write(out)
}
