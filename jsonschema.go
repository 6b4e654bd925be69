package schemata

import (
	"fmt"
	"reflect"
	"sort"

	js "github.com/persistx/schemata/jsonschema"
)

// JSONSchema describes the tree-shaped format instances of m, and of every
// model reachable from it, as a JSON Schema document. Each model becomes a
// definition under $defs and to-one relationships become $ref, so cyclic
// schemas are expressed without expansion. To-many relationships are not
// part of the format and are omitted. Two distinct model types reachable
// under the same schema name are an error.
func JSONSchema(m AnyModel) (*js.Schema, error) {
	root := m.AnySchema()
	defs := map[string]*js.Schema{}
	if err := defineModel(root, defs, map[string]reflect.Type{}); err != nil {
		return nil, err
	}
	return &js.Schema{
		Schema: js.Draft,
		Ref:    "#/$defs/" + root.Name(),
		Defs:   defs,
	}, nil
}

// defineModel adds s and its to-one targets to defs. owners records the
// model type behind each definition name.
func defineModel(s AnySchema, defs map[string]*js.Schema, owners map[string]reflect.Type) error {
	if t, ok := owners[s.Name()]; ok {
		if t != s.Model() {
			return fmt.Errorf("schemata.JSONSchema: models %v and %v share the name %q", t, s.Model(), s.Name())
		}
		return nil
	}
	obj := &js.Schema{Type: "object", Title: s.Name(), Properties: map[string]*js.Schema{}}
	// Registered before recursing so cycles resolve to the pending definition.
	defs[s.Name()] = obj
	owners[s.Name()] = s.Model()
	for _, p := range s.Properties() {
		var ps *js.Schema
		switch p.Type.Kind {
		case PropToMany:
			continue
		case PropToOne:
			related, err := resolveRelated(p.Type)
			if err != nil {
				return fmt.Errorf("schemata.JSONSchema: %s.%s: %w", s.Name(), p.KeyPath, err)
			}
			if err := defineModel(related, defs, owners); err != nil {
				return err
			}
			ps = js.RefTo(related.Name())
		default:
			ps = primitiveSchema(p.Type.Value.Kind)
		}
		if p.Type.Nullable {
			ps = js.Nullable(ps)
		}
		place(obj, p.Path, ps, !p.Type.Nullable)
	}
	sortRequired(obj)
	return nil
}

func primitiveSchema(k PrimitiveKind) *js.Schema {
	switch k {
	case KindDate:
		return &js.Schema{Type: "string", Format: "date-time"}
	case KindDouble:
		return &js.Schema{Type: "number"}
	case KindInt:
		return &js.Schema{Type: "integer"}
	case KindString:
		return &js.Schema{Type: "string"}
	default:
		return &js.Schema{Type: "null"}
	}
}

// place stores ps at path below obj, creating intermediate objects for
// multi-segment paths.
func place(obj *js.Schema, path Path, ps *js.Schema, required bool) {
	for i, k := range path {
		if i == len(path)-1 {
			obj.Properties[k] = ps
		} else {
			next, ok := obj.Properties[k]
			if !ok || next.Type != "object" {
				next = &js.Schema{Type: "object", Properties: map[string]*js.Schema{}}
				obj.Properties[k] = next
			}
			if required {
				addRequired(obj, k)
			}
			obj = next
			continue
		}
		if required {
			addRequired(obj, k)
		}
	}
}

func addRequired(obj *js.Schema, k string) {
	for _, r := range obj.Required {
		if r == k {
			return
		}
	}
	obj.Required = append(obj.Required, k)
}

func sortRequired(obj *js.Schema) {
	sort.Strings(obj.Required)
	for _, p := range obj.Properties {
		if p.Type == "object" && p.Title == "" {
			sortRequired(p)
		}
	}
}
