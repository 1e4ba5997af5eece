package sexp

import (
	"bufio"
	"io"
	"strings"
)

// LineWidth is the width beyond which Write breaks a list over several lines.
const LineWidth = 99

// Write pretty-prints e to w. Lists that fit in LineWidth stay on one line;
// longer ones keep their leading atoms on the first line and put each child
// list on its own line, indented by two spaces.
func Write(w io.Writer, e Sexp) error {
	bw := bufio.NewWriter(w)
	write(bw, e, 0)
	bw.WriteByte('\n')
	return bw.Flush()
}

// Format returns e as Write would print it.
func Format(e Sexp) string {
	var b strings.Builder
	_ = Write(&b, e)
	return b.String()
}

func write(w *bufio.Writer, e Sexp, indent int) {
	l, ok := e.(*List)
	if !ok {
		w.WriteString(e.String())
		return
	}
	flat := l.String()
	if indent+len(flat) <= LineWidth {
		w.WriteString(flat)
		return
	}

	w.WriteByte('(')
	i := 0
	for ; i < len(l.elements) && l.elements[i].IsLeaf(); i++ {
		if i > 0 {
			w.WriteByte(' ')
		}
		w.WriteString(l.elements[i].String())
	}
	pad := strings.Repeat("  ", indent/2+1)
	for ; i < len(l.elements); i++ {
		w.WriteByte('\n')
		w.WriteString(pad)
		write(w, l.elements[i], len(pad))
	}
	w.WriteByte('\n')
	w.WriteString(strings.Repeat("  ", indent/2))
	w.WriteByte(')')
}
