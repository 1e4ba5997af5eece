package expr

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Rules are the token rules of the expression language. Languages that embed
// expressions extend them rather than defining their own number and
// identifier tokens.
var Rules = []lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	// Numbers: 1, 1.5, .5, 2e-3. Units follow as a separate identifier.
	{Name: "Number", Pattern: `(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Operator", Pattern: `[-+*/()]`},
}

// ExprLexer tokenizes standalone expressions.
var ExprLexer = lexer.MustSimple(Rules)
