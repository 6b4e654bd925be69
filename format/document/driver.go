package document

import (
	"time"

	schemata "github.com/persistx/schemata"
)

// Driver maps primitives onto document nodes: strings and dates as strings
// (dates in RFC3339), ints and doubles as numbers, and nested models as
// objects.
type Driver struct{}

var _ schemata.Driver[Node] = Driver{}

func (Driver) Name() string               { return "document" }
func (Driver) New() schemata.Format[Node] { return New() }
func (Driver) IsNull(v Node) bool         { return v.IsNull() }

func (Driver) Nested(f schemata.Format[Node], p schemata.Path) (schemata.Format[Node], *schemata.ValueError) {
	v, ok := f.Get(p)
	if !ok {
		return nil, schemata.MissingKey()
	}
	if v.Kind() != ObjectKind {
		return nil, schemata.TypeMismatch(ObjectKind.String(), v)
	}
	return &Document{root: v}, nil
}

func (Driver) Attach(f schemata.Format[Node], p schemata.Path, sub schemata.Format[Node]) {
	if root, ok := sub.Get(nil); ok {
		f.Set(p, root)
	}
}

// Primitive converts v towards want. Numbers become ints or doubles as
// requested, and strings become dates when a date is requested.
func (Driver) Primitive(v Node, want schemata.PrimitiveKind) (schemata.Primitive, *schemata.ValueError) {
	switch v.Kind() {
	case NullKind:
		return schemata.NullPrimitive(), nil
	case StringKind:
		if want != schemata.KindDate {
			return schemata.StringPrimitive(v.s), nil
		}
		t, err := time.Parse(time.RFC3339Nano, v.s)
		if err != nil {
			ve := schemata.TypeMismatch(schemata.KindDate.String(), v)
			ve.Cause = err
			return schemata.Primitive{}, ve
		}
		return schemata.DatePrimitive(t), nil
	case NumberKind:
		if i, ok := v.AsInt(); ok && want != schemata.KindDouble {
			return schemata.IntPrimitive(i), nil
		}
		if want == schemata.KindInt {
			return schemata.Primitive{}, schemata.TypeMismatch(schemata.KindInt.String(), v)
		}
		f, ok := v.AsFloat()
		if !ok {
			return schemata.Primitive{}, schemata.TypeMismatch(want.String(), v)
		}
		return schemata.DoublePrimitive(f), nil
	default:
		return schemata.Primitive{}, schemata.TypeMismatch(want.String(), v)
	}
}

func (Driver) Value(p schemata.Primitive) Node {
	switch p.Kind() {
	case schemata.KindDate:
		t, _ := p.Date()
		return String(t.UTC().Format(time.RFC3339Nano))
	case schemata.KindDouble:
		f, _ := p.Double()
		return Float(f)
	case schemata.KindInt:
		i, _ := p.Int()
		return Int(i)
	case schemata.KindString:
		s, _ := p.StringValue()
		return String(s)
	default:
		return Null()
	}
}
