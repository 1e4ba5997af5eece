package inst

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

// resolve maps an anchor reference to a position. A nil reference yields
// fallback, a self reference yields self. Named references are searched
// from the current frame outward along the instantiation path.
func (p *pass) resolve(r *model.Ref, lvl *level, fallback, self coord.Coord) (coord.Coord, error) {
	switch {
	case r == nil:
		return fallback, nil
	case r.Self:
		return self, nil
	case r.Vec != nil:
		pos, ok := p.vecPos[r.Vec]
		if !ok {
			return coord.Coord{}, fmt.Errorf("%w: %s", ErrVecNotReady, r)
		}
		return pos, nil
	}
	for l := lvl; l != nil; l = l.parent {
		v := l.frame.FindVec(r.Name)
		if v == nil {
			continue
		}
		pos, ok := p.vecPos[v]
		if !ok {
			return coord.Coord{}, fmt.Errorf("%w: %q", ErrVecNotReady, r.Name)
		}
		return pos, nil
	}
	return coord.Coord{}, fmt.Errorf("%w %q", ErrUnresolvedVec, r.Name)
}
