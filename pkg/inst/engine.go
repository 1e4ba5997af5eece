package inst

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/expr"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/layer"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

const (
	// MaxIterations bounds a single loop.
	MaxIterations = 1000
)

// DefaultSilkWidth is used for lines, rects and arcs without a width.
var DefaultSilkWidth = coord.MilToUnits(15, 1)

// Engine instantiates documents. An Engine holds no per-pass state and may
// be shared.
type Engine struct {
	log           *zap.Logger
	maxIterations int
	silkWidth     float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for iprint output and refinement warnings.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithMaxIterations changes the loop iteration cap.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxIterations = n
		}
	}
}

// WithDefaultSilkWidth changes the width, in internal units, of silk
// screen objects that do not specify one.
func WithDefaultSilkWidth(w float64) Option {
	return func(e *Engine) {
		if w > 0 {
			e.silkWidth = w
		}
	}
}

// NewEngine returns an engine with the given options applied.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		log:           zap.NewNop(),
		maxIterations: MaxIterations,
		silkWidth:     DefaultSilkWidth,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// pass carries everything one instantiation call needs. Nothing in here
// outlives the call except the Result.
type pass struct {
	e   *Engine
	doc *model.Document
	res *Result

	currRow map[*model.Table]int
	loops   map[*model.Loop]*loopState
	visited map[*model.Var]bool
	vecPos  map[*model.Vec]coord.Coord
	onStack map[*model.Frame]bool

	pkg         *Package
	frameInst   *Instance
	itemsActive bool

	search *search
}

func (e *Engine) newPass(doc *model.Document) *pass {
	res := newResult()
	return &pass{
		e:       e,
		doc:     doc,
		res:     res,
		currRow: make(map[*model.Table]int),
		loops:   make(map[*model.Loop]*loopState),
		visited: make(map[*model.Var]bool),
		vecPos:  make(map[*model.Vec]coord.Coord),
		onStack: make(map[*model.Frame]bool),
		pkg:     res.common,
	}
}

// Instantiate expands doc into a new Result. On failure the returned error
// is an *Error naming the node that could not be instantiated, and no
// Result is returned.
func (e *Engine) Instantiate(doc *model.Document) (*Result, error) {
	start := time.Now()
	p := e.newPass(doc)
	if err := p.run(); err != nil {
		e.log.Debug("instantiation failed", zap.Error(err))
		return nil, err
	}
	e.log.Debug("instantiated",
		zap.Int("packages", len(p.res.packages)),
		zap.Int("instances", p.res.Count()),
		zap.Duration("took", time.Since(start)))
	return p.res, nil
}

func (p *pass) run() error {
	if err := p.generateFrame(p.doc.Root(), coord.Coord{}, nil, nil, true); err != nil {
		return err
	}
	p.linkHoles()
	p.refineLayers()
	return p.instantiateMeas()
}

// ----- instance bookkeeping -----

func (p *pass) propagate(bbox coord.BBox) {
	target := p.frameInst
	if target == nil {
		target = p.res.root
	}
	if target != nil {
		target.BBox.ExpandBox(bbox)
	}
}

func (p *pass) add(inst *Instance, prio Prio) *Instance {
	inst.Outer = p.frameInst
	inst.Active = p.itemsActive
	inst.prio = prio
	p.pkg.insts[prio] = append(p.pkg.insts[prio], inst)
	p.propagate(inst.BBox)
	return inst
}

func (p *pass) beginFrame(ref *model.Obj, f *model.Frame, base coord.Coord, active, activeFrame bool) *Instance {
	inst := &Instance{
		Obj:    ref,
		Base:   base,
		BBox:   coord.PointBox(base),
		Outer:  p.frameInst,
		Active: active,
		Shape:  &FrameShape{Frame: f, ActiveFrame: activeFrame},
		prio:   PrioFrame,
	}
	p.pkg.insts[PrioFrame] = append(p.pkg.insts[PrioFrame], inst)
	if p.res.root == nil {
		p.res.root = inst
	}
	p.frameInst = inst
	return inst
}

func (p *pass) endFrame(inst *Instance) {
	p.frameInst = inst.Outer
	if p.frameInst != nil {
		p.propagate(inst.BBox)
	}
	fs := inst.Shape.(*FrameShape)
	if fs.ActiveFrame && fs.Frame == p.doc.Active {
		p.res.activeFrameBBox = inst.BBox
	}
}

// ----- the walk -----

func (p *pass) generateFrame(f *model.Frame, base coord.Coord, parent *level, ref *model.Obj, active bool) error {
	if p.onStack[f] {
		return fail(f, ErrFrameRecursion)
	}
	p.onStack[f] = true
	defer delete(p.onStack, f)

	var parentFrame *model.Frame
	if parent != nil {
		parentFrame = parent.frame
	}
	lvl := &level{frame: f, ref: ref, parent: parent}
	inst := p.beginFrame(ref, f, base,
		active && parentFrame == p.doc.Active,
		active && f == p.doc.Active)
	err := p.iterateTables(lvl, 0, base, active)
	p.endFrame(inst)
	return err
}

func (p *pass) iterateTables(lvl *level, i int, base coord.Coord, active bool) error {
	tables := lvl.frame.Tables
	if i == len(tables) {
		return p.runLoops(lvl, 0, base, active)
	}
	t := tables[i]
	defer delete(p.currRow, t)
	for r := range t.Rows {
		p.currRow[t] = r
		on := active && r == t.ActiveRow
		if err := p.descend(on, func() error {
			return p.iterateTables(lvl, i+1, base, on)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (p *pass) loopBound(l *model.Loop, lvl *level, e expr.Expr, what string) (float64, error) {
	n, err := expr.Eval(e, p.scope(lvl))
	if err != nil {
		return 0, fail(l, err)
	}
	if !n.IsDimensionless() {
		return 0, fail(l, fmt.Errorf("%w for %s value", ErrLoopBound, what))
	}
	return n.N, nil
}

func (p *pass) runLoops(lvl *level, i int, base coord.Coord, active bool) error {
	loops := lvl.frame.Loops
	if i == len(loops) {
		return p.generateItems(lvl, base, active)
	}
	l := loops[i]

	from, err := p.loopBound(l, lvl, l.From, "start")
	if err != nil {
		return err
	}
	to, err := p.loopBound(l, lvl, l.To, "end")
	if err != nil {
		return err
	}

	st := &loopState{value: from, initialized: true}
	p.loops[l] = st
	defer func() { st.initialized = false }()

	n := 0
	for ; st.value <= to; st.value++ {
		if n >= p.e.maxIterations {
			return fail(l, fmt.Errorf("%w: %s: too many iterations (%d)",
				ErrTooManyIterations, l.Name, p.e.maxIterations))
		}
		st.n = n
		on := active && n == l.Active
		if err := p.descend(on, func() error {
			return p.runLoops(lvl, i+1, base, on)
		}); err != nil {
			return err
		}
		n++
	}
	p.res.loopIterations[l] = n
	return nil
}

func (p *pass) generateItems(lvl *level, base coord.Coord, active bool) error {
	f := lvl.frame
	if f.IsRoot() {
		tmpl := p.doc.PkgName
		if tmpl == "" {
			tmpl = model.DefaultPkgName
		}
		name, err := expr.Expand(tmpl, p.scope(lvl))
		if err != nil {
			return fail(f, err)
		}
		if name == "" {
			name = model.DefaultPkgName
		}
		p.pkg = p.res.selectPackage(name)
	}

	prev := p.itemsActive
	p.itemsActive = active && f == p.doc.Active
	defer func() { p.itemsActive = prev }()

	if err := p.generateVecs(lvl, base, active); err != nil {
		return err
	}
	return p.generateObjs(lvl, base, active)
}

func (p *pass) generateVecs(lvl *level, base coord.Coord, active bool) error {
	for _, v := range lvl.frame.Vecs {
		delete(p.vecPos, v)
	}
	sc := p.scope(lvl)
	for _, v := range lvl.frame.Vecs {
		x, err := expr.EvalLength(v.X, sc)
		if err != nil {
			return fail(v, err)
		}
		y, err := expr.EvalLength(v.Y, sc)
		if err != nil {
			return fail(v, err)
		}
		from, err := p.resolve(v.Base, lvl, base, base)
		if err != nil {
			return fail(v, err)
		}
		pos := from.Add(coord.Pt(x, y))
		p.vecPos[v] = pos
		p.add(&Instance{
			Vec:   v,
			Base:  from,
			BBox:  coord.Box(from, pos),
			Shape: &VecShape{End: pos},
		}, PrioVec)
		p.pkg.samples[v] = append(p.pkg.samples[v], pos)
		p.match(lvl, v, nil, pos, nil, active)
	}
	return nil
}

func (p *pass) width(e expr.Expr, lvl *level) (float64, error) {
	if e == nil {
		return p.e.silkWidth, nil
	}
	return expr.EvalLength(e, p.scope(lvl))
}

func (p *pass) generateObjs(lvl *level, base coord.Coord, active bool) error {
	for _, o := range lvl.frame.Objs {
		if err := p.generateObj(lvl, o, base, active); err != nil {
			// failures inside a referenced frame already name their node
			if _, ok := err.(*Error); ok {
				return err
			}
			return fail(o, err)
		}
	}
	return nil
}

func (p *pass) generateObj(lvl *level, o *model.Obj, base coord.Coord, active bool) error {
	at, err := p.resolve(o.Base, lvl, base, base)
	if err != nil {
		return err
	}
	other := func(r *model.Ref) (coord.Coord, error) {
		return p.resolve(r, lvl, base, at)
	}

	var added *Instance
	switch s := o.Shape.(type) {
	case *model.FrameRef:
		target := p.doc.Frame(s.Frame)
		if target == nil {
			return ErrUnknownFrame
		}
		p.match(lvl, nil, o, at, nil, active)
		return p.generateFrame(target, at, lvl, o, active && target.ActiveRef == o)

	case *model.Line:
		w, err := p.width(s.Width, lvl)
		if err != nil {
			return err
		}
		end, err := other(s.Other)
		if err != nil {
			return err
		}
		added = p.add(&Instance{
			Obj:   o,
			Base:  at,
			BBox:  coord.Box(at, end).Grow(w / 2),
			Shape: &LineShape{End: end, Width: w},
		}, PrioLine)

	case *model.Rect:
		w, err := p.width(s.Width, lvl)
		if err != nil {
			return err
		}
		end, err := other(s.Other)
		if err != nil {
			return err
		}
		added = p.add(&Instance{
			Obj:   o,
			Base:  at,
			BBox:  coord.Box(at, end).Grow(w / 2),
			Shape: &RectShape{End: end, Width: w},
		}, PrioRect)

	case *model.Pad:
		name, err := expr.Expand(s.Name, p.scope(lvl))
		if err != nil {
			return err
		}
		end, err := other(s.Other)
		if err != nil {
			return err
		}
		prio := PrioPadCopper
		if s.Type.IsSpecial() {
			prio = PrioPadSpecial
		}
		added = p.add(&Instance{
			Obj:  o,
			Base: at,
			BBox: coord.Box(at, end),
			Shape: &PadShape{
				Name:    name,
				Other:   end,
				Rounded: s.Rounded,
				Type:    s.Type,
				Layers:  layer.TypeToLayers(s.Type),
			},
		}, prio)

	case *model.Hole:
		end, err := other(s.Other)
		if err != nil {
			return err
		}
		added = p.add(&Instance{
			Obj:   o,
			Base:  at,
			BBox:  coord.Box(at, end),
			Shape: &HoleShape{Other: end},
		}, PrioHole)

	case *model.Arc:
		w, err := p.width(s.Width, lvl)
		if err != nil {
			return err
		}
		start, err := other(s.Start)
		if err != nil {
			return err
		}
		end, err := other(s.End)
		if err != nil {
			return err
		}
		added = p.addArc(o, at, start, end, w)

	case *model.Meas:
		// resolved after the walk, once every sample is known

	case *model.Iprint:
		n, err := expr.Eval(s.Expr, p.scope(lvl))
		if err != nil {
			return err
		}
		p.e.log.Info("iprint",
			zap.String("expr", expr.Unparse(s.Expr)),
			zap.Stringer("value", n),
			zap.Int("line", o.Lineno))
		p.res.prints = append(p.res.prints, Print{Obj: o, Value: n})
		return nil

	default:
		return fmt.Errorf("inst: unknown object type %T", s)
	}

	p.match(lvl, nil, o, at, added, active)
	return nil
}

func (p *pass) addArc(o *model.Obj, center, start, end coord.Coord, width float64) *Instance {
	a1 := coord.Theta(center, start)
	a2 := coord.Theta(center, end)
	prio := PrioArc
	if norm360(a1) == norm360(a2) {
		prio = PrioCirc
	}
	r := coord.DistPoint(center, start)
	bbox := coord.BBox{
		Min: coord.Pt(center.X-r, center.Y-r),
		Max: coord.Pt(center.X+r, center.Y+r),
	}
	return p.add(&Instance{
		Obj:   o,
		Base:  center,
		BBox:  bbox.Grow(width / 2),
		Shape: &ArcShape{R: r, A1: a1, A2: a2, Width: width},
	}, prio)
}

func norm360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
