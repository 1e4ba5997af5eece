package expr

import (
	"fmt"
	"sync"

	"github.com/alecthomas/participle/v2"
)

var (
	buildOnce  sync.Once
	exprParser *participle.Parser[Expression]
	buildErr   error
)

func parser() (*participle.Parser[Expression], error) {
	buildOnce.Do(func() {
		exprParser, buildErr = participle.Build[Expression](
			participle.Lexer(ExprLexer),
			participle.Elide("Whitespace"),
			participle.Unquote("String"),
			participle.UseLookahead(2),
		)
		if buildErr != nil {
			buildErr = fmt.Errorf("failed to build parser: %w", buildErr)
		}
	})
	return exprParser, buildErr
}

// Parse parses a standalone expression such as "2*pitch+0.1mm".
func Parse(s string) (Expr, error) {
	p, err := parser()
	if err != nil {
		return nil, err
	}
	tree, err := p.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return tree.Expr(), nil
}

// MustParse is like Parse but panics on error. It is meant for literals in
// code and tests.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}
