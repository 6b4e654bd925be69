package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// ParseJSON parses a JSON object into a document, keeping key order and
// number text. Duplicate keys keep the last value.
func ParseJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := readJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("document: parse json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("document: parse json: trailing data after top-level value")
	}
	doc, err := FromNode(root)
	if err != nil {
		return nil, fmt.Errorf("document: parse json: %w", err)
	}
	return doc, nil
}

func readJSON(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Node{}, io.ErrUnexpectedEOF
		}
		return Node{}, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := Object()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Node{}, err
				}
				key, ok := kt.(string)
				if !ok {
					return Node{}, fmt.Errorf("unexpected object key %v", kt)
				}
				val, err := readJSON(dec)
				if err != nil {
					return Node{}, err
				}
				obj.Put(key, val)
			}
			if _, err := dec.Token(); err != nil { // '}'
				return Node{}, err
			}
			return obj, nil
		case '[':
			items := []Node{}
			for dec.More() {
				it, err := readJSON(dec)
				if err != nil {
					return Node{}, err
				}
				items = append(items, it)
			}
			if _, err := dec.Token(); err != nil { // ']'
				return Node{}, err
			}
			return Array(items...), nil
		default:
			return Node{}, fmt.Errorf("unexpected delimiter %q", rune(v))
		}
	case string:
		return String(v), nil
	case json.Number:
		return Node{kind: NumberKind, s: string(v)}, nil
	case float64:
		return Float(v), nil
	case bool:
		return Bool(v), nil
	case nil:
		return Null(), nil
	default:
		return Node{}, fmt.Errorf("unexpected token %T", tok)
	}
}

// MarshalJSON renders d as indented JSON with keys in document order.
func MarshalJSON(d *Document) ([]byte, error) {
	raw, err := d.root.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out := &bytes.Buffer{}
	if err := json.Indent(out, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("document: marshal json: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
