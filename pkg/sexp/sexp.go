// Package sexp reads and writes the S-expressions of KiCad footprint files.
package sexp

import (
	"io"
	"strings"
)

// Sexp is an S-expression node: an atom or a list.
type Sexp interface {
	// IsLeaf returns true if this is an atom (not a list)
	IsLeaf() bool

	// String returns the expression as it would be written
	String() string
}

// Symbol is a bare atom such as a keyword or a number.
type Symbol string

func (s Symbol) IsLeaf() bool { return true }

func (s Symbol) String() string {
	if needsQuote(string(s)) {
		return quote(string(s))
	}
	return string(s)
}

// Str is an atom that is always written quoted.
type Str string

func (s Str) IsLeaf() bool   { return true }
func (s Str) String() string { return quote(string(s)) }

// List is a parenthesized list of expressions.
type List struct {
	elements []Sexp
}

// NewList creates a list headed by the symbol name.
func NewList(name string, elems ...Sexp) *List {
	return &List{elements: append([]Sexp{Symbol(name)}, elems...)}
}

func (l *List) IsLeaf() bool { return false }

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, elem := range l.elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(elem.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Add appends elements and returns the list.
func (l *List) Add(elems ...Sexp) *List {
	l.elements = append(l.elements, elems...)
	return l
}

// Name returns the head symbol of the list, or "" if it has none.
func (l *List) Name() string {
	if len(l.elements) == 0 {
		return ""
	}
	if s, ok := l.elements[0].(Symbol); ok {
		return string(s)
	}
	return ""
}

// Get returns the element at the given index
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Atom returns the text of the atom at index, or "" if it is not an atom.
func (l *List) Atom(index int) string {
	switch s := l.Get(index).(type) {
	case Symbol:
		return string(s)
	case Str:
		return string(s)
	}
	return ""
}

// Len returns the number of elements in the list
func (l *List) Len() int {
	return len(l.elements)
}

// Find returns the first child list named name.
func (l *List) Find(name string) *List {
	for _, e := range l.elements {
		if c, ok := e.(*List); ok && c.Name() == name {
			return c
		}
	}
	return nil
}

// FindAll returns every child list named name.
func (l *List) FindAll(name string) []*List {
	var out []*List
	for _, e := range l.elements {
		if c, ok := e.(*List); ok && c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

// Parse parses all top-level S-expressions from r.
func Parse(r io.Reader) ([]Sexp, error) {
	return NewParser(r).ParseAll()
}

// ParseString parses S-expressions from a string.
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	return strings.ContainsAny(s, " \t\r\n()\"\\#")
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)

func quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}
