package record

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/subosito/gotenv"
)

var keyRx = regexp.MustCompile(`^[\w.]+$`)

// Parse reads a record from dotenv syntax (KEY=value lines). Unquoted and
// double-quoted values expand ${VAR} references; single-quoted values are
// taken literally.
func Parse(data []byte) (*Record, error) {
	env, err := gotenv.StrictParse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("record: parse: %w", err)
	}
	return FromMap(env), nil
}

var valueEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	`$`, `\$`,
)

// Marshal renders r in dotenv syntax, one double-quoted entry per line in
// key order. Keys may hold only letters, digits, '_' and '.'.
func Marshal(r *Record) ([]byte, error) {
	b := &bytes.Buffer{}
	m := r.Map()
	for _, k := range r.Keys() {
		if !keyRx.MatchString(k) {
			return nil, fmt.Errorf("record: marshal: key %q cannot be written", k)
		}
		fmt.Fprintf(b, "%s=\"%s\"\n", k, valueEscaper.Replace(m[k]))
	}
	return b.Bytes(), nil
}
