package expr

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Expression is the grammar root: a sum of terms.
type Expression struct {
	Pos  lexer.Position
	Head *Term      `@@`
	Tail []*AddTail `@@*`
}

// AddTail is one "+ term" or "- term" continuation.
type AddTail struct {
	Pos  lexer.Position
	Op   string `@("+" | "-")`
	Term *Term  `@@`
}

// Term is a product of unary expressions.
type Term struct {
	Head *Unary     `@@`
	Tail []*MulTail `@@*`
}

// MulTail is one "* x" or "/ x" continuation.
type MulTail struct {
	Pos   lexer.Position
	Op    string `@("*" | "/")`
	Unary *Unary `@@`
}

// Unary is an optionally negated primary.
type Unary struct {
	Pos     lexer.Position
	Neg     *Unary   `  "-" @@`
	Primary *Primary `| @@`
}

// Primary is a literal, a variable or a parenthesized expression.
type Primary struct {
	Pos    lexer.Position
	Number *NumberLit  `  @@`
	String *string     `| @String`
	Var    *string     `| @Ident`
	Sub    *Expression `| "(" @@ ")"`
}

// NumberLit is a number with an optional unit.
type NumberLit struct {
	Value float64 `@Number`
	Unit  string  `@("mm" | "mil")?`
}

// Expr converts the parse tree into an evaluable expression.
func (e *Expression) Expr() Expr {
	res := e.Head.expr()
	for _, t := range e.Tail {
		res = &Binary{Op: Op(t.Op[0]), X: res, Y: t.Term.expr(), Lineno: t.Pos.Line}
	}
	return res
}

func (t *Term) expr() Expr {
	res := t.Head.expr()
	for _, m := range t.Tail {
		res = &Binary{Op: Op(m.Op[0]), X: res, Y: m.Unary.expr(), Lineno: m.Pos.Line}
	}
	return res
}

func (u *Unary) expr() Expr {
	if u.Neg != nil {
		return &Neg{X: u.Neg.expr(), Lineno: u.Pos.Line}
	}
	return u.Primary.expr()
}

func (p *Primary) expr() Expr {
	line := p.Pos.Line
	switch {
	case p.Number != nil:
		n := Scalar(p.Number.Value)
		switch p.Number.Unit {
		case "mm":
			n = MMNum(p.Number.Value)
		case "mil":
			n = MilNum(p.Number.Value)
		}
		return &Number{Value: n, Lineno: line}
	case p.String != nil:
		return &String{Value: *p.String, Lineno: line}
	case p.Var != nil:
		return &Var{Name: *p.Var, Lineno: line}
	default:
		return p.Sub.Expr()
	}
}
