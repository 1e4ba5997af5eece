package expr

import (
	"errors"
	"fmt"
)

var (
	ErrUndefinedVar          = errors.New("expr: undefined variable")
	ErrRecursive             = errors.New("expr: recursive evaluation")
	ErrUninitializedLoop     = errors.New("expr: uninitialized loop")
	ErrIncompatibleExponents = errors.New("expr: incompatible exponents")
	ErrDivByZero             = errors.New("expr: division by zero")
	ErrNotDistance           = errors.New("expr: not a distance")
	ErrString                = errors.New("expr: cannot evaluate string")
	ErrTemplate              = errors.New("expr: invalid template")
)

// EvalError reports a failed evaluation together with the expression that
// caused it.
type EvalError struct {
	Text string
	Line int
	Err  error
}

func (e *EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v in %q at line %d", e.Err, e.Text, e.Line)
	}
	return fmt.Sprintf("%v in %q", e.Err, e.Text)
}

func (e *EvalError) Unwrap() error { return e.Err }

// wrap attaches expression context unless err already carries some.
func wrap(e Expr, err error) error {
	var ee *EvalError
	if errors.As(err, &ee) {
		return err
	}
	return &EvalError{Text: Unparse(e), Line: e.Line(), Err: err}
}
