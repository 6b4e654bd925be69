package schemata

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/persistx/schemata/i18n"
)

// Value error codes.
const (
	CodeTypeMismatch = "type_mismatch"
	CodeMissingKey   = "missing_key"
	CodeInvalidValue = "invalid_value"
)

// ValueError is a leaf decode failure for a single value.
type ValueError struct {
	Code        string // One of the codes listed above.
	Expected    string // For type_mismatch: the wire kind the codec wanted.
	Actual      string // Rendering of the offending wire value, when known.
	Description string // For invalid_value: why the value was rejected.
	Cause       error  // Optional: underlying error.
}

// TypeMismatch reports that actual is not of the expected wire kind.
func TypeMismatch(expected string, actual any) *ValueError {
	return &ValueError{Code: CodeTypeMismatch, Expected: expected, Actual: render(actual)}
}

// MissingKey reports that no value exists at the requested path.
func MissingKey() *ValueError {
	return &ValueError{Code: CodeMissingKey}
}

// InvalidValue reports that actual has the right kind but fails validation.
func InvalidValue(actual any, description string) *ValueError {
	return &ValueError{Code: CodeInvalidValue, Actual: render(actual), Description: description}
}

func render(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func (e *ValueError) Error() string {
	return i18n.T(e.Code, map[string]string{
		"expected":    e.Expected,
		"actual":      e.Actual,
		"description": e.Description,
	})
}

func (e *ValueError) Unwrap() error { return e.Cause }

// asValueError normalizes an arbitrary decode failure into a ValueError.
func asValueError(err error, actual any) *ValueError {
	var ve *ValueError
	if errors.As(err, &ve) {
		return ve
	}
	return &ValueError{Code: CodeInvalidValue, Actual: render(actual), Description: err.Error(), Cause: err}
}

// DecodeError accumulates value errors keyed by the JSON Pointer of their
// format path. A nil *DecodeError means no failure.
type DecodeError struct {
	Errors map[string]*ValueError
}

// NewDecodeError creates a DecodeError holding a single failure at p.
func NewDecodeError(p Path, err *ValueError) *DecodeError {
	return &DecodeError{Errors: map[string]*ValueError{p.Pointer(): err}}
}

// Merge returns the union of errs. Later operands overwrite earlier ones on
// colliding paths. Nil operands are skipped; the result is nil when every
// operand is nil.
func Merge(errs ...*DecodeError) *DecodeError {
	var out *DecodeError
	for _, e := range errs {
		if e == nil {
			continue
		}
		if out == nil {
			out = &DecodeError{Errors: make(map[string]*ValueError, len(e.Errors))}
		}
		for k, v := range e.Errors {
			out.Errors[k] = v
		}
	}
	return out
}

// Prefixed returns a copy of e with every path nested under p.
func (e *DecodeError) Prefixed(p Path) *DecodeError {
	if e == nil {
		return nil
	}
	base := p.Pointer()
	out := &DecodeError{Errors: make(map[string]*ValueError, len(e.Errors))}
	for k, v := range e.Errors {
		switch {
		case base == "/":
			out.Errors[k] = v
		case k == "/":
			out.Errors[base] = v
		default:
			out.Errors[base+k] = v
		}
	}
	return out
}

// Len returns the number of failing paths.
func (e *DecodeError) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Errors)
}

// At returns the failure recorded at the given JSON Pointer, if any.
func (e *DecodeError) At(pointer string) *ValueError {
	if e == nil {
		return nil
	}
	return e.Errors[pointer]
}

// Paths returns the failing paths in lexical order.
func (e *DecodeError) Paths() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Issues flattens e into a deterministic, path-ordered list.
func (e *DecodeError) Issues() Issues {
	paths := e.Paths()
	out := make(Issues, 0, len(paths))
	for _, p := range paths {
		ve := e.Errors[p]
		out = append(out, Issue{Path: p, Code: ve.Code, Message: ve.Error(), Cause: ve.Cause})
	}
	return out
}

// Error summarizes the first few failures.
func (e *DecodeError) Error() string {
	if e.Len() == 0 {
		return "schemata: decode failed"
	}
	return "schemata: " + e.Issues().Error()
}

// Unwrap exposes the leaf value errors to errors.Is / errors.As.
func (e *DecodeError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := make([]error, 0, len(e.Errors))
	for _, p := range e.Paths() {
		out = append(out, e.Errors[p])
	}
	return out
}

// AsDecodeError extracts a DecodeError from err using errors.As internally.
func AsDecodeError(err error) (*DecodeError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DecodeError
	if errors.As(err, &de) && de != nil {
		return de, true
	}
	return nil, false
}

// decodeErrorAt places an arbitrary codec failure at p.
func decodeErrorAt(p Path, err error, actual any) *DecodeError {
	var de *DecodeError
	if errors.As(err, &de) && de != nil {
		return de.Prefixed(p)
	}
	return NewDecodeError(p, asValueError(err, actual))
}

// Issue is a single, rendered decode failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /author/name).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

// Issues is a path-ordered list of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. missing_key at /title
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}
