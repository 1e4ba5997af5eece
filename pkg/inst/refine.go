package inst

import (
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/layer"
)

// pads returns the pads of priority prio visible to pkg: its own and those
// of the common package.
func (p *pass) pads(pkg *Package, prio Prio) []*Instance {
	if pkg == p.res.common {
		return pkg.insts[prio]
	}
	return append(append([]*Instance(nil), p.res.common.insts[prio]...), pkg.insts[prio]...)
}

func (p *pass) eachPackage(fn func(*Package)) {
	fn(p.res.common)
	for _, pkg := range p.res.packages {
		fn(pkg)
	}
}

// linkHoles pairs every hole with the first copper pad that contains it.
// Such a pad becomes a plated through-hole pad.
func (p *pass) linkHoles() {
	p.eachPackage(func(pkg *Package) {
		pads := p.pads(pkg, PrioPadCopper)
		for _, h := range pkg.insts[PrioHole] {
			hs := h.Shape.(*HoleShape)
			for _, pad := range pads {
				ps := pad.Shape.(*PadShape)
				if ps.Hole != nil || !Inside(h, pad) {
					continue
				}
				ps.Hole = h
				ps.Layers = layer.ThroughHole(ps.Layers)
				hs.Pad = pad
				break
			}
		}
	})
}

// refineLayers removes from each copper pad the paste and mask layers that
// an overlapping special pad takes over, then reclassifies the pad. A
// special pad that is not entirely on top of the copper is reported but
// still applied.
func (p *pass) refineLayers() {
	p.eachPackage(func(pkg *Package) {
		specials := p.pads(pkg, PrioPadSpecial)
		for _, c := range pkg.insts[PrioPadCopper] {
			cs := c.Shape.(*PadShape)
			before := cs.Layers
			for _, s := range specials {
				if !Overlap(c, s) {
					continue
				}
				ss := s.Shape.(*PadShape)
				if !Inside(s, c) {
					p.e.log.Warn("special pad extends beyond copper",
						zap.String("package", pkg.Name),
						zap.String("pad", cs.Name),
						zap.Stringer("type", ss.Type))
				}
				cs.Layers &^= ss.Layers & (layer.Paste | layer.Mask)
			}
			if cs.Layers != before {
				cs.Type = layer.LayersToType(cs.Layers)
			}
		}
	})
}
