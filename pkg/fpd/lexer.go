package fpd

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// FpdLexer defines the lexical structure of footprint definition files.
// Statements end at a newline or semicolon; Number, String and Ident match
// the expression language so expressions can be embedded as-is.
var FpdLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments - shell style and C block comments
	{Name: "Comment", Pattern: `#[^\n]*|/\*(?:[^*]|\*+[^*/])*\*+/`},

	// Whitespace, newlines excluded
	{Name: "Whitespace", Pattern: `[ \t\r]+`},

	// End of statement, swallowing blank lines
	{Name: "EOL", Pattern: `[\n;][\s;]*`},

	// Keywords
	{Name: "KwPackage", Pattern: `\bpackage\b`},
	{Name: "KwUnit", Pattern: `\bunit\b`},
	{Name: "KwFrame", Pattern: `\bframe\b`},
	{Name: "KwSet", Pattern: `\bset\b`},
	{Name: "KwTable", Pattern: `\btable\b`},
	{Name: "KwLoop", Pattern: `\bloop\b`},
	{Name: "KwVec", Pattern: `\bvec\b`},
	{Name: "KwPad", Pattern: `\br?pad\b`},
	{Name: "KwPadType", Pattern: `\b(?:bare|paste|mask)\b`},
	{Name: "KwHole", Pattern: `\bhole\b`},
	{Name: "KwSilk", Pattern: `\b(?:line|rect|circ)\b`},
	{Name: "KwArc", Pattern: `\barc\b`},
	{Name: "KwMeas", Pattern: `\bmeas[xy]?\b`},
	{Name: "KwSelf", Pattern: `\bself\b`},
	{Name: "KwIprint", Pattern: `%iprint\b`},

	// Literals, shared with the expression language
	{Name: "Number", Pattern: `(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	// Measurement arrows
	{Name: "Arrow", Pattern: `>>|->|<-|<<`},

	// Operators and punctuation
	{Name: "Operator", Pattern: `[-+*/()]`},
	{Name: "Punct", Pattern: `[,:@.{}=]`},
})
