package resolve

import (
	"os"
	"strings"
)

// LookupFunc reports the value of a named variable and whether it is set.
type LookupFunc func(name string) (string, bool)

// Expander replaces Unix-style $VAR and ${VAR} references with values from
// Lookup. Expansion is a pure function of the lookup source, so two runs
// under different process environments produce reproducibly distinct
// results.
type Expander struct {
	Lookup LookupFunc
}

// NewExpander returns an Expander backed by the process environment.
func NewExpander() *Expander {
	return &Expander{Lookup: os.LookupEnv}
}

// ExpandString expands every variable reference in s. An unset variable is
// an ExpansionError naming the variable and the field it appeared in; a
// lone '$' with no identifier is kept literally.
func (x *Expander) ExpandString(field, s string) (string, error) {
	if !strings.ContainsRune(s, '$') {
		return s, nil
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '$' {
			b.WriteByte(s[i])
			continue
		}

		name, width := parseRef(s[i+1:])
		if name == "" {
			b.WriteByte('$')
			continue
		}

		value, ok := x.Lookup(name)
		if !ok {
			return "", &ExpansionError{Field: field, Variable: name}
		}
		b.WriteString(value)
		i += width
	}
	return b.String(), nil
}

// ExpandList expands each element of in, returning a new slice. A nil
// input stays nil so list fields keep their absent/empty distinction.
func (x *Expander) ExpandList(field string, in []string) ([]string, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		expanded, err := x.ExpandString(field, s)
		if err != nil {
			return nil, err
		}
		out[i] = expanded
	}
	return out, nil
}

// parseRef reads a variable reference immediately after a '$'. It returns
// the variable name and how many bytes of s the reference consumed, or
// ("", 0) if s does not start a reference.
func parseRef(s string) (string, int) {
	if s == "" {
		return "", 0
	}

	if s[0] == '{' {
		end := strings.IndexByte(s, '}')
		if end <= 1 {
			return "", 0
		}
		name := s[1:end]
		if !isIdent(name) {
			return "", 0
		}
		return name, end + 1
	}

	end := 0
	for end < len(s) && isIdentByte(s[end]) {
		end++
	}
	return s[:end], end
}

func isIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return s != ""
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
