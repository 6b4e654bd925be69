package schemata

import "reflect"

// AnyModel is anything that can describe its schema without its format or
// model types. Every *Schema satisfies it.
type AnyModel interface {
	AnySchema() AnySchema
}

// AnySchema is a Schema with its format and model types erased.
type AnySchema struct {
	name  string
	model reflect.Type
	order []KeyPath
	props map[KeyPath]AnyProperty
}

func (s AnySchema) Name() string        { return s.name }
func (s AnySchema) Model() reflect.Type { return s.model }

// AnySchema returns s itself, so an AnySchema is also an AnyModel.
func (s AnySchema) AnySchema() AnySchema { return s }

// Properties returns the declared properties in declaration order.
func (s AnySchema) Properties() []AnyProperty {
	out := make([]AnyProperty, 0, len(s.order))
	for _, kp := range s.order {
		out = append(out, s.props[kp])
	}
	return out
}

// Property returns the top-level property declared for p.
func (s AnySchema) Property(p KeyPath) (AnyProperty, bool) {
	prop, ok := s.props[p]
	return prop, ok
}

type searchStep struct {
	path  KeyPath
	chain []AnyProperty
}

// PropertiesFor finds the chain of properties leading from s to target.
//
// The search is breadth first and descends only through to-one
// relationships. Value and to-many properties are leaves. A step is only
// expanded while its composed path is a strict prefix of target, so cyclic
// schemas terminate. The result is empty when target is unreachable.
func (s AnySchema) PropertiesFor(target KeyPath) []AnyProperty {
	if target.IsZero() {
		return []AnyProperty{}
	}
	queue := make([]searchStep, 0, len(s.order))
	for _, p := range s.Properties() {
		queue = append(queue, searchStep{path: p.KeyPath, chain: []AnyProperty{p}})
	}
	for len(queue) > 0 {
		step := queue[0]
		queue = queue[1:]
		if step.path == target {
			return step.chain
		}
		last := step.chain[len(step.chain)-1]
		if last.Type.Kind != PropToOne {
			continue
		}
		if step.path.Len() >= target.Len() || !target.HasPrefix(step.path) {
			continue
		}
		for _, p := range last.Type.Schema().Properties() {
			chain := make([]AnyProperty, len(step.chain), len(step.chain)+1)
			copy(chain, step.chain)
			queue = append(queue, searchStep{path: step.path.Append(p.KeyPath), chain: append(chain, p)})
		}
	}
	return []AnyProperty{}
}

func (s AnySchema) String() string { return describe(s.name, s.Properties()) }
