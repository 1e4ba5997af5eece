package inst

import (
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/expr"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

// Package holds the instances generated for one package name. The common
// package (empty name) holds what was generated before any package was
// selected, i.e. the root frame instance.
type Package struct {
	Name    string
	insts   [numPrios][]*Instance
	samples map[*model.Vec][]coord.Coord
}

func newPackage(name string) *Package {
	return &Package{Name: name, samples: make(map[*model.Vec][]coord.Coord)}
}

// Insts returns the instances of one priority in generation order.
func (p *Package) Insts(prio Prio) []*Instance {
	return p.insts[prio]
}

// All returns every instance of the package, lowest priority first.
func (p *Package) All() []*Instance {
	var res []*Instance
	for _, l := range p.insts {
		res = append(res, l...)
	}
	return res
}

// Print is the value logged by an iprint object.
type Print struct {
	Obj   *model.Obj
	Value expr.Num
}

// Result is the outcome of one successful instantiation pass. It is never
// modified once returned.
type Result struct {
	common   *Package
	packages []*Package
	root     *Instance

	activeFrameBBox coord.BBox
	loopIterations  map[*model.Loop]int
	prints          []Print
}

func newResult() *Result {
	return &Result{
		common:         newPackage(""),
		loopIterations: make(map[*model.Loop]int),
	}
}

// Common returns the package holding instances outside any named package.
func (r *Result) Common() *Package { return r.common }

// Packages returns the named packages in the order they were first selected.
func (r *Result) Packages() []*Package { return r.packages }

// Package returns the package with the given name, or nil.
func (r *Result) Package(name string) *Package {
	if name == "" {
		return r.common
	}
	for _, p := range r.packages {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (r *Result) selectPackage(name string) *Package {
	if p := r.Package(name); p != nil {
		return p
	}
	p := newPackage(name)
	r.packages = append(r.packages, p)
	return p
}

// Each calls fn for every instance, priority by priority. Within one
// priority the common package comes first.
func (r *Result) Each(fn func(*Instance)) {
	all := append([]*Package{r.common}, r.packages...)
	for prio := Prio(0); prio < numPrios; prio++ {
		for _, p := range all {
			for _, i := range p.insts[prio] {
				fn(i)
			}
		}
	}
}

// Count returns the total number of instances.
func (r *Result) Count() int {
	n := 0
	r.Each(func(*Instance) { n++ })
	return n
}

// Root returns the instance of the root frame.
func (r *Result) Root() *Instance { return r.root }

// BBox returns the bounding box of everything instantiated.
func (r *Result) BBox() coord.BBox {
	if r.root == nil {
		return coord.BBox{}
	}
	return r.root.BBox
}

// ActiveFrameBBox returns the bounding box of the active instance of the
// edited frame.
func (r *Result) ActiveFrameBBox() coord.BBox { return r.activeFrameBBox }

// LoopIterations returns the number of iterations the loop ran on its last
// execution in this pass.
func (r *Result) LoopIterations(l *model.Loop) int { return r.loopIterations[l] }

// VecPositions returns every position v took in this pass.
func (r *Result) VecPositions(v *model.Vec) []coord.Coord {
	var res []coord.Coord
	r.Each(func(i *Instance) {
		if i.Vec == v {
			res = append(res, i.Shape.(*VecShape).End)
		}
	})
	return res
}

// ActiveVecPos returns the position of v in the active combination.
func (r *Result) ActiveVecPos(v *model.Vec) (coord.Coord, bool) {
	var pos coord.Coord
	found := false
	r.Each(func(i *Instance) {
		if !found && i.Vec == v && i.Active {
			pos, found = i.Shape.(*VecShape).End, true
		}
	})
	return pos, found
}

// Prints returns the values logged by iprint objects, in evaluation order.
func (r *Result) Prints() []Print { return r.prints }

// Footprint returns the instances that make up package p when exported:
// priority by priority, those of the common package followed by p's own.
func (r *Result) Footprint(p *Package) []*Instance {
	var res []*Instance
	for prio := Prio(0); prio < numPrios; prio++ {
		res = append(res, r.common.insts[prio]...)
		if p != r.common {
			res = append(res, p.insts[prio]...)
		}
	}
	return res
}
