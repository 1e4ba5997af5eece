// Package expr implements the unit-typed arithmetic used by footprint
// definitions: numbers carrying mm or mil dimensions, variable references
// resolved through a Scope, and "$var" template expansion.
package expr

import (
	"strconv"
	"strings"
)

// Expr is a parsed expression. The concrete types are Number, String, Var,
// Neg and Binary.
type Expr interface {
	Line() int
	expr()
}

// Op is a binary operator.
type Op byte

const (
	Add Op = '+'
	Sub Op = '-'
	Mul Op = '*'
	Div Op = '/'
)

// Number is a literal with its unit.
type Number struct {
	Value  Num
	Lineno int
}

// String is a quoted string literal. It only has meaning in name templates
// and table values.
type String struct {
	Value  string
	Lineno int
}

// Var references a table column or loop variable.
type Var struct {
	Name   string
	Lineno int
}

// Neg is unary minus.
type Neg struct {
	X      Expr
	Lineno int
}

// Binary is one of the four arithmetic operators.
type Binary struct {
	Op     Op
	X, Y   Expr
	Lineno int
}

func (e *Number) Line() int { return e.Lineno }
func (e *String) Line() int { return e.Lineno }
func (e *Var) Line() int    { return e.Lineno }
func (e *Neg) Line() int    { return e.Lineno }
func (e *Binary) Line() int { return e.Lineno }

func (*Number) expr() {}
func (*String) expr() {}
func (*Var) expr()    {}
func (*Neg) expr()    {}
func (*Binary) expr() {}

// Const wraps a number into an expression.
func Const(n Num) Expr { return &Number{Value: n} }

// MMExpr is Const(MMNum(v)).
func MMExpr(v float64) Expr { return Const(MMNum(v)) }

// MilExpr is Const(MilNum(v)).
func MilExpr(v float64) Expr { return Const(MilNum(v)) }

// ScalarExpr is Const(Scalar(v)).
func ScalarExpr(v float64) Expr { return Const(Scalar(v)) }

// Ref returns a variable reference.
func Ref(name string) Expr { return &Var{Name: name} }

// Str returns a string literal.
func Str(s string) Expr { return &String{Value: s} }

// Bin builds a binary expression.
func Bin(op Op, x, y Expr) Expr { return &Binary{Op: op, X: x, Y: y} }

const (
	precSum = iota + 1
	precProduct
	precUnary
	precPrimary
)

func precedence(e Expr) int {
	switch e := e.(type) {
	case *Binary:
		if e.Op == Add || e.Op == Sub {
			return precSum
		}
		return precProduct
	case *Neg:
		return precUnary
	default:
		return precPrimary
	}
}

// Unparse renders e as source text with the minimum of parentheses.
func Unparse(e Expr) string {
	var b strings.Builder
	unparse(&b, e)
	return b.String()
}

func unparse(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Number:
		b.WriteString(e.Value.String())
	case *String:
		b.WriteString(strconv.Quote(e.Value))
	case *Var:
		b.WriteString(e.Name)
	case *Neg:
		b.WriteByte('-')
		operand(b, e.X, precUnary, false)
	case *Binary:
		p := precedence(e)
		operand(b, e.X, p, false)
		b.WriteByte(byte(e.Op))
		operand(b, e.Y, p, true)
	}
}

func operand(b *strings.Builder, e Expr, prec int, right bool) {
	p := precedence(e)
	if p < prec || (right && p == prec && prec != precUnary) {
		b.WriteByte('(')
		unparse(b, e)
		b.WriteByte(')')
		return
	}
	unparse(b, e)
}
