package inst

import (
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

// Session keeps the last good instantiation of a document that is being
// edited. A failed pass leaves the previous Result in place.
type Session struct {
	engine  *Engine
	doc     *model.Document
	result  *Result
	lastErr error
}

// NewSession returns a session for doc. Nothing is instantiated until
// Instantiate is called.
func NewSession(e *Engine, doc *model.Document) *Session {
	if e == nil {
		e = NewEngine()
	}
	return &Session{engine: e, doc: doc}
}

// Document returns the edited document.
func (s *Session) Document() *model.Document { return s.doc }

// Instantiate runs a pass over the document. On success the new result
// replaces the current one, on failure the current one is kept and the
// error is returned and remembered.
func (s *Session) Instantiate() error {
	res, err := s.engine.Instantiate(s.doc)
	s.lastErr = err
	if err != nil {
		s.engine.log.Warn("instantiation failed, keeping previous result", zap.Error(err))
		return err
	}
	s.result = res
	return nil
}

// Result returns the last successful instantiation, or nil.
func (s *Session) Result() *Result { return s.result }

// LastError returns the error of the last pass, nil if it succeeded.
func (s *Session) LastError() error { return s.lastErr }

type activeState struct {
	rows  map[*model.Table]int
	loops map[*model.Loop]int
	refs  map[*model.Frame]*model.Obj
}

func (s *Session) saveActive() activeState {
	st := activeState{
		rows:  make(map[*model.Table]int),
		loops: make(map[*model.Loop]int),
		refs:  make(map[*model.Frame]*model.Obj),
	}
	for _, f := range s.doc.Frames() {
		for _, t := range f.Tables {
			st.rows[t] = t.ActiveRow
		}
		for _, l := range f.Loops {
			st.loops[l] = l.Active
		}
		st.refs[f] = f.ActiveRef
	}
	return st
}

func (st activeState) restore() {
	(&Match{Rows: st.rows, Loops: st.loops, Refs: st.refs}).Apply()
}

// Activate makes the combination that produced target the active one and
// instantiates again. It reports false if no combination produces the
// target. If the new pass fails the previous selection is restored.
func (s *Session) Activate(target Target) (bool, error) {
	m, err := s.engine.Find(s.doc, target)
	if err != nil {
		return false, err
	}
	if m == nil {
		return false, nil
	}
	saved := s.saveActive()
	m.Apply()
	if err := s.Instantiate(); err != nil {
		saved.restore()
		return false, err
	}
	return true, nil
}
