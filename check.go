package schemata

import (
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/multierr"

	"github.com/persistx/schemata/i18n"
)

// Schema graph problem codes.
const (
	CodeUnresolvedSchema = "unresolved_schema"
	CodeRequiredCycle    = "required_cycle"
)

// CheckError reports a structural problem in a schema graph.
type CheckError struct {
	Code  string
	Model string   // Schema where the problem was found.
	Path  []string // Field paths involved, e.g. the edges of a cycle.
	Cause error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Model, strings.Join(e.Path, " -> "), i18n.T(e.Code, nil))
}

func (e *CheckError) Unwrap() error { return e.Cause }

type requiredEdge struct {
	via    KeyPath
	target reflect.Type
}

type checker struct {
	schemas map[reflect.Type]AnySchema
	edges   map[reflect.Type][]requiredEdge
	order   []reflect.Type
	err     error
}

// Check walks every schema reachable from models through relationships and
// reports all structural problems found, combined into one error:
//   - relationships whose related schema cannot be resolved;
//   - cycles made only of non-nullable to-one relationships, which no
//     finite instance can satisfy.
//
// Use multierr.Errors to split the result into *CheckError values.
func Check(models ...AnyModel) error {
	c := &checker{
		schemas: map[reflect.Type]AnySchema{},
		edges:   map[reflect.Type][]requiredEdge{},
	}
	for _, m := range models {
		c.visit(m.AnySchema())
	}
	c.cycles()
	return c.err
}

func (c *checker) visit(s AnySchema) {
	if _, seen := c.schemas[s.Model()]; seen {
		return
	}
	c.schemas[s.Model()] = s
	c.order = append(c.order, s.Model())
	for _, p := range s.Properties() {
		if p.Type.Kind == PropValue {
			continue
		}
		related, err := resolveRelated(p.Type)
		if err != nil {
			c.err = multierr.Append(c.err, &CheckError{
				Code:  CodeUnresolvedSchema,
				Model: s.Name(),
				Path:  []string{p.KeyPath.String()},
				Cause: err,
			})
			continue
		}
		if p.Type.Kind == PropToOne && !p.Type.Nullable {
			c.edges[s.Model()] = append(c.edges[s.Model()], requiredEdge{via: p.KeyPath, target: related.Model()})
		}
		c.visit(related)
	}
}

func resolveRelated(t PropertyType) (s AnySchema, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return t.Schema(), nil
}

type cycleFrame struct {
	model reflect.Type
	via   KeyPath
}

// cycles runs a depth-first search over required edges and reports each
// distinct cycle once.
func (c *checker) cycles() {
	const (
		white = iota
		grey
		black
	)
	color := map[reflect.Type]int{}
	reported := map[string]bool{}
	var stack []cycleFrame
	var dfs func(m reflect.Type)
	dfs = func(m reflect.Type) {
		color[m] = grey
		for _, e := range c.edges[m] {
			stack = append(stack, cycleFrame{model: m, via: e.via})
			switch color[e.target] {
			case white:
				dfs(e.target)
			case grey:
				c.reportCycle(stack, e.target, reported)
			}
			stack = stack[:len(stack)-1]
		}
		color[m] = black
	}
	for _, m := range c.order {
		if color[m] == white {
			dfs(m)
		}
	}
}

// reportCycle records the cycle closing at start, the suffix of stack that
// begins at start.
func (c *checker) reportCycle(stack []cycleFrame, start reflect.Type, reported map[string]bool) {
	i := len(stack) - 1
	for i > 0 && stack[i].model != start {
		i--
	}
	cycle := stack[i:]
	// Rotate so the same cycle found from another entry point has one key.
	first := 0
	for j := range cycle {
		if c.schemas[cycle[j].model].Name() < c.schemas[cycle[first].model].Name() {
			first = j
		}
	}
	path := make([]string, 0, len(cycle))
	for j := range cycle {
		f := cycle[(first+j)%len(cycle)]
		path = append(path, c.schemas[f.model].Name()+"."+f.via.String())
	}
	key := strings.Join(path, ",")
	if reported[key] {
		return
	}
	reported[key] = true
	c.err = multierr.Append(c.err, &CheckError{
		Code:  CodeRequiredCycle,
		Model: c.schemas[cycle[first].model].Name(),
		Path:  path,
	})
}
