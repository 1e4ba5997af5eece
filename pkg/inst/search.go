package inst

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

// matchTolerance is how far, in internal units, an instance may be from the
// target position and still match.
const matchTolerance = 0.5

// Target identifies an instance to look for: the vector or object it was
// generated from and where it ended up. Vectors are matched by their end
// point, objects by their base and, if End is set, by their second point.
type Target struct {
	Vec *model.Vec
	Obj *model.Obj
	Pos coord.Coord
	End *coord.Coord
}

// TargetOf returns the target that finds inst again.
func TargetOf(inst *Instance) Target {
	if inst.Vec != nil {
		return Target{Vec: inst.Vec, Pos: inst.Shape.(*VecShape).End}
	}
	t := Target{Obj: inst.Obj, Pos: inst.Base}
	if end, ok := secondPoint(inst); ok {
		t.End = &end
	}
	return t
}

// secondPoint returns the point of an object instance that is not its base.
// Arcs use their start point.
func secondPoint(inst *Instance) (coord.Coord, bool) {
	switch s := inst.Shape.(type) {
	case *PadShape:
		return s.Other, true
	case *HoleShape:
		return s.Other, true
	case *LineShape:
		return s.End, true
	case *RectShape:
		return s.End, true
	case *ArcShape:
		rad := s.A1 * math.Pi / 180
		return coord.Pt(inst.Base.X+s.R*math.Cos(rad), inst.Base.Y+s.R*math.Sin(rad)), true
	}
	return coord.Coord{}, false
}

// Match is the combination of table rows, loop iterations and frame
// references that produced a target.
type Match struct {
	Rows  map[*model.Table]int
	Loops map[*model.Loop]int
	Refs  map[*model.Frame]*model.Obj
}

// Apply makes the matched combination the active one.
func (m *Match) Apply() {
	for t, r := range m.Rows {
		t.ActiveRow = r
	}
	for l, n := range m.Loops {
		l.Active = n
	}
	for f, o := range m.Refs {
		f.ActiveRef = o
	}
}

// search tracks a find-and-activate request during a pass. The first match
// in iteration order wins unless the active combination also matches.
// Subtrees that can no longer change the outcome are walked with matching
// suspended.
type search struct {
	target      Target
	match       *Match
	matchActive bool
	suspend     int
}

// descend runs fn for one table row or loop iteration.
func (p *pass) descend(active bool, fn func() error) error {
	s := p.search
	if s == nil || s.match == nil || active {
		return fn()
	}
	s.suspend++
	defer func() { s.suspend-- }()
	return fn()
}

// match records the current combination if it produced the target. inst is
// the instance just generated for o, nil for frame references.
func (p *pass) match(lvl *level, v *model.Vec, o *model.Obj, pos coord.Coord, inst *Instance, active bool) {
	s := p.search
	if s == nil || s.suspend > 0 {
		return
	}
	if v != s.target.Vec || o != s.target.Obj {
		return
	}
	if coord.DistPoint(pos, s.target.Pos) > matchTolerance {
		return
	}
	if s.target.End != nil && inst != nil {
		end, ok := secondPoint(inst)
		if ok && coord.DistPoint(end, *s.target.End) > matchTolerance {
			return
		}
	}
	if s.match != nil && (s.matchActive || !active) {
		return
	}
	s.match = p.snapshot(lvl)
	s.matchActive = active
	if o != nil {
		if ref, ok := o.Shape.(*model.FrameRef); ok {
			s.match.Refs[p.doc.Frame(ref.Frame)] = o
		}
	}
}

func (p *pass) snapshot(lvl *level) *Match {
	m := &Match{
		Rows:  make(map[*model.Table]int),
		Loops: make(map[*model.Loop]int),
		Refs:  make(map[*model.Frame]*model.Obj),
	}
	for l := lvl; l != nil; l = l.parent {
		for _, t := range l.frame.Tables {
			if r, ok := p.currRow[t]; ok {
				m.Rows[t] = r
			}
		}
		for _, loop := range l.frame.Loops {
			if st := p.loops[loop]; st != nil && st.initialized {
				m.Loops[loop] = st.n
			}
		}
		if l.ref != nil {
			m.Refs[l.frame] = l.ref
		}
	}
	return m
}

// Find walks the whole document looking for target. It returns nil if no
// combination produces it.
func (e *Engine) Find(doc *model.Document, target Target) (*Match, error) {
	p := e.newPass(doc)
	p.search = &search{target: target}
	if err := p.generateFrame(doc.Root(), coord.Coord{}, nil, nil, true); err != nil {
		return nil, err
	}
	return p.search.match, nil
}
