package document

import (
	"strconv"

	schemata "github.com/persistx/schemata"
)

// Document is a mutable document instance whose root is an object. It
// implements schemata.Format[Node]. A Document is not safe for concurrent
// use.
type Document struct {
	root Node
}

// New returns an empty document.
func New() *Document { return &Document{root: Object()} }

// FromNode wraps root, which must be an object, as a document.
func FromNode(root Node) (*Document, error) {
	if root.Kind() != ObjectKind {
		return nil, schemata.TypeMismatch(ObjectKind.String(), root)
	}
	return &Document{root: root}, nil
}

// Root returns the root object.
func (d *Document) Root() Node { return d.root }

func (d *Document) String() string { return d.root.String() }

// Get walks p through objects. Array elements are addressed by decimal
// index.
func (d *Document) Get(p schemata.Path) (Node, bool) {
	cur := d.root
	for _, k := range p {
		switch cur.Kind() {
		case ObjectKind:
			next, ok := cur.Field(k)
			if !ok {
				return Node{}, false
			}
			cur = next
		case ArrayKind:
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 || i >= len(cur.arr) {
				return Node{}, false
			}
			cur = cur.arr[i]
		default:
			return Node{}, false
		}
	}
	return cur, true
}

// Set stores v at p, creating intermediate objects and replacing non-object
// values on the way. Setting the root path replaces the root when v is an
// object.
func (d *Document) Set(p schemata.Path, v Node) {
	if len(p) == 0 {
		if v.Kind() == ObjectKind {
			d.root = v
		}
		return
	}
	cur := d.root
	for _, k := range p[:len(p)-1] {
		next, ok := cur.Field(k)
		if !ok || next.Kind() != ObjectKind {
			next = Object()
			cur.Put(k, next)
		}
		cur = next
	}
	cur.Put(p[len(p)-1], v)
}

// Delete removes the value at p, if any.
func (d *Document) Delete(p schemata.Path) {
	if len(p) == 0 {
		d.root = Object()
		return
	}
	parent, ok := d.Get(p[:len(p)-1])
	if !ok {
		return
	}
	parent.Remove(p[len(p)-1])
}
