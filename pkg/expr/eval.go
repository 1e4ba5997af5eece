package expr

import (
	"fmt"
)

// Scope resolves variable names during evaluation.
//
// LookupVar returns found == false if no table column or loop carries the
// name. An error means the name exists but its value could not be computed.
type Scope interface {
	LookupVar(name string) (n Num, found bool, err error)
	LookupString(name string) (s string, found bool)
}

// Eval computes the numeric value of e. Errors are *EvalError values that
// wrap one of the package's sentinel errors.
func Eval(e Expr, s Scope) (Num, error) {
	n, err := eval(e, s)
	if err != nil {
		return Num{}, wrap(e, err)
	}
	return n, nil
}

// EvalLength evaluates e and converts the result to internal units. The
// result must be a plain length (mm or mil, exponent 1).
func EvalLength(e Expr, s Scope) (float64, error) {
	n, err := Eval(e, s)
	if err != nil {
		return 0, err
	}
	u, err := n.ToLength()
	if err != nil {
		return 0, wrap(e, err)
	}
	return u, nil
}

// EvalString returns the string value of a string literal or of a variable
// bound to one. ok is false for anything else.
func EvalString(e Expr, s Scope) (string, bool) {
	switch e := e.(type) {
	case *String:
		return e.Value, true
	case *Var:
		if s == nil {
			return "", false
		}
		return s.LookupString(e.Name)
	}
	return "", false
}

func eval(e Expr, s Scope) (Num, error) {
	switch e := e.(type) {
	case *Number:
		return e.Value, nil
	case *String:
		return Num{}, ErrString
	case *Var:
		if s == nil {
			return Num{}, fmt.Errorf("%w %q", ErrUndefinedVar, e.Name)
		}
		n, found, err := s.LookupVar(e.Name)
		if err != nil {
			return Num{}, err
		}
		if !found {
			return Num{}, fmt.Errorf("%w %q", ErrUndefinedVar, e.Name)
		}
		return n, nil
	case *Neg:
		n, err := eval(e.X, s)
		if err != nil {
			return Num{}, err
		}
		return n.Neg(), nil
	case *Binary:
		a, err := eval(e.X, s)
		if err != nil {
			return Num{}, err
		}
		b, err := eval(e.Y, s)
		if err != nil {
			return Num{}, err
		}
		switch e.Op {
		case Add:
			return a.Add(b)
		case Sub:
			return a.Sub(b)
		case Mul:
			return a.Mul(b), nil
		case Div:
			return a.Div(b)
		}
		return Num{}, fmt.Errorf("expr: unknown operator %q", e.Op)
	case nil:
		return Num{}, fmt.Errorf("expr: missing expression")
	}
	return Num{}, fmt.Errorf("expr: unexpected node %T", e)
}
