package inst

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

var (
	ErrUnresolvedVec     = errors.New("inst: unresolved vector")
	ErrVecNotReady       = errors.New("inst: vector used before it is computed")
	ErrTooManyIterations = errors.New("inst: too many iterations")
	ErrLoopBound         = errors.New("inst: incompatible type")
	ErrFrameRecursion    = errors.New("inst: recursive frame reference")
	ErrUnknownFrame      = errors.New("inst: unknown frame")
)

// Error is an instantiation failure. Node is the *model.Table, *model.Loop,
// *model.Vec, *model.Obj or *model.Frame that could not be instantiated.
type Error struct {
	Node any
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", describe(e.Node), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func describe(node any) string {
	switch n := node.(type) {
	case *model.Vec:
		if n.Name == "" {
			return fmt.Sprintf("vector in %s", frameName(n.Frame))
		}
		return fmt.Sprintf("vector %q in %s", n.Name, frameName(n.Frame))
	case *model.Obj:
		if n.Lineno > 0 {
			return fmt.Sprintf("%s at line %d", objKind(n), n.Lineno)
		}
		return fmt.Sprintf("%s in %s", objKind(n), frameName(n.Frame))
	case *model.Loop:
		return fmt.Sprintf("loop %q", n.Name)
	case *model.Table:
		return fmt.Sprintf("table in %s", frameName(n.Frame))
	case *model.Frame:
		return frameName(n)
	}
	return "instantiation"
}

func frameName(f *model.Frame) string {
	if f == nil || f.IsRoot() {
		return "root frame"
	}
	return fmt.Sprintf("frame %q", f.Name)
}

func objKind(o *model.Obj) string {
	switch s := o.Shape.(type) {
	case *model.FrameRef:
		return "frame reference"
	case *model.Line:
		return "line"
	case *model.Rect:
		return "rect"
	case *model.Pad:
		if s.Rounded {
			return "rpad"
		}
		return "pad"
	case *model.Hole:
		return "hole"
	case *model.Arc:
		return "arc"
	case *model.Meas:
		return "measurement"
	case *model.Iprint:
		return "iprint"
	}
	return "object"
}

func fail(node any, err error) error {
	return &Error{Node: node, Err: err}
}
