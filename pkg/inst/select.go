package inst

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
)

// SelectRadius is how close, in screen pixels, a point has to be to an
// instance to select it.
const SelectRadius = 5

// Distance returns how far pos is from the drawn outline of the instance.
// Points inside a pad or hole are at distance 0. Frame instances are only
// reachable through their origin.
func (i *Instance) Distance(pos coord.Coord) float64 {
	switch s := i.Shape.(type) {
	case *VecShape:
		return coord.DistLine(pos, i.Base, s.End)
	case *LineShape:
		return math.Max(coord.DistLine(pos, i.Base, s.End)-s.Width/2, 0)
	case *RectShape:
		lo, hi := coord.Sort(i.Base, s.End)
		return math.Max(coord.DistRect(pos, lo, hi)-s.Width/2, 0)
	case *PadShape, *HoleShape:
		lo, hi := i.Corners()
		if coord.InsideRect(pos, lo, hi) {
			return 0
		}
		return coord.DistRect(pos, lo, hi)
	case *ArcShape:
		return math.Max(coord.DistCircle(pos, i.Base, s.R)-s.Width/2, 0)
	case *FrameShape:
		if i.Obj == nil {
			return math.Inf(1)
		}
		return coord.DistPoint(pos, i.Base)
	case *MeasShape:
		a, b := s.Line(i.Base)
		return coord.DistLine(pos, a, b)
	}
	return math.Inf(1)
}

// Select returns the active instance closest to pos, or nil if none is
// within SelectRadius pixels. scale is the size of a pixel in internal
// units. On a tie the instance drawn last wins.
func (r *Result) Select(pos coord.Coord, scale float64) *Instance {
	return r.nearest(pos, scale, false)
}

// SelectAny is like Select but also considers inactive instances, so that
// their combination can be activated. Active instances win ties.
func (r *Result) SelectAny(pos coord.Coord, scale float64) *Instance {
	return r.nearest(pos, scale, true)
}

func (r *Result) nearest(pos coord.Coord, scale float64, inactive bool) *Instance {
	limit := SelectRadius * scale
	var best *Instance
	bestDist := math.Inf(1)
	r.Each(func(i *Instance) {
		if !i.Active && !inactive {
			return
		}
		d := i.Distance(pos)
		if d > limit || d > bestDist {
			return
		}
		if d == bestDist && best.Active && !i.Active {
			return
		}
		best, bestDist = i, d
	})
	return best
}
