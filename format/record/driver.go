package record

import (
	"fmt"
	"strconv"
	"time"

	schemata "github.com/persistx/schemata"
)

// Driver stores every primitive as text. Dates use RFC3339; the empty
// string stands for null, so a nullable field holding "" decodes to nil.
type Driver struct{}

// emptyRecord marks a nested model that encodes to no keys, so that its
// presence survives flattening.
const emptyRecord = "{}"

var _ schemata.Driver[string] = Driver{}

func (Driver) Name() string                 { return "record" }
func (Driver) New() schemata.Format[string] { return New() }
func (Driver) IsNull(v string) bool         { return v == "" }

func (Driver) Nested(f schemata.Format[string], p schemata.Path) (schemata.Format[string], *schemata.ValueError) {
	r := asRecord("Nested", f)
	k := r.key(p)
	if r.hasChildren(k) {
		return r.view(p), nil
	}
	if v, ok := r.fields[k]; ok {
		if v == emptyRecord {
			return r.view(p), nil
		}
		return nil, schemata.TypeMismatch("record", v)
	}
	return nil, schemata.MissingKey()
}

func (Driver) Attach(f schemata.Format[string], p schemata.Path, sub schemata.Format[string]) {
	dst := asRecord("Attach", f)
	base := dst.key(p)
	entries := asRecord("Attach", sub).Map()
	if len(entries) == 0 {
		dst.fields[base] = emptyRecord
		return
	}
	delete(dst.fields, base)
	for k, v := range entries {
		dst.fields[base+sep+k] = v
	}
}

func asRecord(fn string, f schemata.Format[string]) *Record {
	r, ok := f.(*Record)
	if !ok {
		panic(fmt.Sprintf("record.Driver.%s: unsupported format %T", fn, f))
	}
	return r
}

func (Driver) Primitive(v string, want schemata.PrimitiveKind) (schemata.Primitive, *schemata.ValueError) {
	switch want {
	case schemata.KindInt:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return mismatch(want, v, err)
		}
		return schemata.IntPrimitive(i), nil
	case schemata.KindDouble:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return mismatch(want, v, err)
		}
		return schemata.DoublePrimitive(f), nil
	case schemata.KindDate:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return mismatch(want, v, err)
		}
		return schemata.DatePrimitive(t), nil
	case schemata.KindNull:
		if v != "" {
			return mismatch(want, v, nil)
		}
		return schemata.NullPrimitive(), nil
	default:
		return schemata.StringPrimitive(v), nil
	}
}

func mismatch(want schemata.PrimitiveKind, v string, cause error) (schemata.Primitive, *schemata.ValueError) {
	ve := schemata.TypeMismatch(want.String(), strconv.Quote(v))
	ve.Cause = cause
	return schemata.Primitive{}, ve
}

func (Driver) Value(p schemata.Primitive) string {
	switch p.Kind() {
	case schemata.KindDate:
		t, _ := p.Date()
		return t.UTC().Format(time.RFC3339Nano)
	case schemata.KindDouble:
		f, _ := p.Double()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case schemata.KindInt:
		i, _ := p.Int()
		return strconv.FormatInt(i, 10)
	case schemata.KindString:
		s, _ := p.StringValue()
		return s
	default:
		return ""
	}
}
