package inst

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/expr"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

// level is one step of the dynamic scope chain: the frame being generated,
// the reference that placed it and the level of the frame that did.
type level struct {
	frame  *model.Frame
	ref    *model.Obj
	parent *level
}

type loopState struct {
	value       float64
	n           int
	initialized bool
}

// scope resolves variables for expressions evaluated at one level.
type scope struct {
	p   *pass
	lvl *level
}

func (p *pass) scope(lvl *level) scope {
	return scope{p: p, lvl: lvl}
}

// row returns the row a table currently provides: the one being iterated, or
// the active row outside of iteration.
func (p *pass) row(t *model.Table) (*model.Row, bool) {
	if len(t.Rows) == 0 {
		return nil, false
	}
	if r, ok := p.currRow[t]; ok {
		return t.Rows[r], true
	}
	if t.ActiveRow < 0 || t.ActiveRow >= len(t.Rows) {
		return t.Rows[0], true
	}
	return t.Rows[t.ActiveRow], true
}

func (s scope) LookupVar(name string) (expr.Num, bool, error) {
	for lvl := s.lvl; lvl != nil; lvl = lvl.parent {
		for _, t := range lvl.frame.Tables {
			row, ok := s.p.row(t)
			if !ok {
				continue
			}
			for i, v := range t.Vars {
				if v.Name != name {
					continue
				}
				if s.p.visited[v] {
					return expr.Num{}, true, fmt.Errorf("%w through %q", expr.ErrRecursive, name)
				}
				s.p.visited[v] = true
				n, err := expr.Eval(row.Values[i], s.p.scope(lvl))
				delete(s.p.visited, v)
				return n, true, err
			}
		}
		for _, l := range lvl.frame.Loops {
			if l.Name != name {
				continue
			}
			st := s.p.loops[l]
			if st == nil || !st.initialized {
				return expr.Num{}, true, fmt.Errorf("%w %q", expr.ErrUninitializedLoop, name)
			}
			return expr.Scalar(st.value), true, nil
		}
	}
	return expr.Num{}, false, nil
}

func (s scope) LookupString(name string) (string, bool) {
	for lvl := s.lvl; lvl != nil; lvl = lvl.parent {
		for _, t := range lvl.frame.Tables {
			row, ok := s.p.row(t)
			if !ok {
				continue
			}
			for i, v := range t.Vars {
				if v.Name != name {
					continue
				}
				if s.p.visited[v] {
					return "", false
				}
				s.p.visited[v] = true
				str, ok := expr.EvalString(row.Values[i], s.p.scope(lvl))
				delete(s.p.visited, v)
				return str, ok
			}
		}
		for _, l := range lvl.frame.Loops {
			if l.Name == name {
				return "", false
			}
		}
	}
	return "", false
}
