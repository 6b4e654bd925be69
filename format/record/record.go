// Package record implements a flat format: a string-keyed map of text
// values, such as an environment file or a database row. Nested models are
// flattened with "."-joined keys, so the author's name of a book lives at
// "author.name".
package record

import (
	"sort"
	"strings"

	schemata "github.com/persistx/schemata"
)

const sep = "."

// Record is a mutable flat record. Views returned for nested models share
// storage with their parent. A Record is not safe for concurrent use.
type Record struct {
	fields map[string]string
	prefix string
}

// New returns an empty record.
func New() *Record { return &Record{fields: map[string]string{}} }

// FromMap wraps a copy of m.
func FromMap(m map[string]string) *Record {
	r := New()
	for k, v := range m {
		r.fields[k] = v
	}
	return r
}

func (r *Record) key(p schemata.Path) string {
	k := strings.Join(p, sep)
	switch {
	case r.prefix == "":
		return k
	case k == "":
		return r.prefix
	default:
		return r.prefix + sep + k
	}
}

func (r *Record) Get(p schemata.Path) (string, bool) {
	if len(p) == 0 {
		return "", false
	}
	v, ok := r.fields[r.key(p)]
	return v, ok
}

func (r *Record) Set(p schemata.Path, v string) {
	if len(p) == 0 {
		return
	}
	r.fields[r.key(p)] = v
}

// Delete removes the value at p together with everything nested below it.
func (r *Record) Delete(p schemata.Path) {
	k := r.key(p)
	for f := range r.fields {
		if k == "" || f == k || strings.HasPrefix(f, k+sep) {
			delete(r.fields, f)
		}
	}
}

// hasChildren reports whether any key is nested below k.
func (r *Record) hasChildren(k string) bool {
	for f := range r.fields {
		if strings.HasPrefix(f, k+sep) {
			return true
		}
	}
	return false
}

// view returns the record nested at p.
func (r *Record) view(p schemata.Path) *Record {
	return &Record{fields: r.fields, prefix: r.key(p)}
}

// Map returns a copy of the record's entries, keyed relative to the view.
func (r *Record) Map() map[string]string {
	out := make(map[string]string, len(r.fields))
	for f, v := range r.fields {
		switch {
		case r.prefix == "":
			out[f] = v
		case strings.HasPrefix(f, r.prefix+sep):
			out[strings.TrimPrefix(f, r.prefix+sep)] = v
		}
	}
	return out
}

// Keys returns the record's keys in lexical order.
func (r *Record) Keys() []string {
	m := r.Map()
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r *Record) Len() int { return len(r.Map()) }
