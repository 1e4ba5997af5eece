package expr

import (
	"fmt"
	"strings"
)

func isIDChar(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

// Expand substitutes "$name" and "${name}" in template with the value of the
// named variable. String variables are inserted verbatim, numbers are
// formatted with their unit. With a nil scope only the syntax is checked and
// references are dropped.
func Expand(template string, s Scope) (string, error) {
	var b strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}
		i++
		var name string
		if i < len(template) && template[i] == '{' {
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unfinished \"${...}\" in %q", ErrTemplate, template)
			}
			name = template[i+1 : i+end]
			for j := 0; j < len(name); j++ {
				if !isIDChar(name[j], j == 0) {
					return "", fmt.Errorf("%w: invalid character in variable name in %q", ErrTemplate, template)
				}
			}
			i += end
		} else {
			start := i
			for i < len(template) && isIDChar(template[i], i == start) {
				i++
			}
			if i == start {
				return "", fmt.Errorf("%w: invalid character in variable name in %q", ErrTemplate, template)
			}
			name = template[start:i]
			i--
		}
		if s == nil {
			continue
		}
		if str, ok := s.LookupString(name); ok {
			b.WriteString(str)
			continue
		}
		n, found, err := s.LookupVar(name)
		if err != nil {
			return "", err
		}
		if !found {
			return "", fmt.Errorf("%w %q", ErrUndefinedVar, name)
		}
		b.WriteString(n.String())
	}
	return b.String(), nil
}
