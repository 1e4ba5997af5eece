// Package fpd reads footprint definition (.fpd) files into a model.Document.
//
// A file holds an optional package name template and unit, named frame
// definitions and the statements of the root frame:
//
//	package "SOT23-$n"
//	unit mm
//	frame pin {
//	    set w = 0.5mm
//	    a: vec @(0mm, 0mm)
//	    b: vec a(w, 1mm)
//	    pad "$i" a b
//	}
//	loop i = 1, 3
//	p: vec @(i * 0.95mm, 0mm)
//	frame pin p
//	meas "pitch" p >> p 1mm
package fpd

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/expr"
)

// File is the root of a parsed .fpd file.
type File struct {
	Pos   lexer.Position
	Items []*Item `(@@ | EOL)*`
}

// Item is a top-level declaration or a root frame statement.
type Item struct {
	Package *PackageDecl `  @@`
	Unit    *UnitDecl    `| @@`
	Frame   *FrameDef    `| @@`
	Stmt    *Stmt        `| @@`
}

// PackageDecl sets the package name template.
type PackageDecl struct {
	Pos  lexer.Position
	Name string `"package" @String EOL`
}

// UnitDecl sets the display unit.
type UnitDecl struct {
	Pos  lexer.Position
	Unit string `"unit" @("mm" | "mil" | "auto") EOL`
}

// FrameDef defines a named frame.
type FrameDef struct {
	Pos   lexer.Position
	Name  string  `"frame" @Ident "{" EOL?`
	Stmts []*Stmt `(@@ | EOL)* "}" EOL`
}

// Stmt is one statement inside a frame.
type Stmt struct {
	Set      *SetStmt      `  @@`
	Table    *TableStmt    `| @@`
	Loop     *LoopStmt     `| @@`
	FrameRef *FrameRefStmt `| @@`
	Pad      *PadStmt      `| @@`
	Hole     *HoleStmt     `| @@`
	Silk     *SilkStmt     `| @@`
	Arc      *ArcStmt      `| @@`
	Meas     *MeasStmt     `| @@`
	Iprint   *IprintStmt   `| @@`
	Vec      *VecStmt      `| @@`
}

// SetStmt is a table with one column and one row.
type SetStmt struct {
	Pos   lexer.Position
	Name  string           `"set" @Ident "="`
	Value *expr.Expression `@@ EOL`
}

// TableStmt declares columns and their rows.
type TableStmt struct {
	Pos  lexer.Position
	Vars []string    `"table" EOL? "{" @Ident ("," @Ident)* "}"`
	Rows []*TableRow `(EOL? @@)* EOL`
}

// TableRow is one row of values.
type TableRow struct {
	Pos    lexer.Position
	Values []*expr.Expression `"{" @@ ("," @@)* "}"`
}

// LoopStmt iterates Name from From to To inclusive.
type LoopStmt struct {
	Pos  lexer.Position
	Name string           `"loop" @Ident "="`
	From *expr.Expression `@@ ","`
	To   *expr.Expression `@@ EOL`
}

// FrameRefStmt places a frame at Base.
type FrameRefStmt struct {
	Pos   lexer.Position
	Frame string `"frame" @Ident`
	Base  *Ref   `@@ EOL`
}

// PadStmt is a pad or, with "rpad", a rounded pad.
type PadStmt struct {
	Pos  lexer.Position
	Kind string `@KwPad`
	Name string `@String`
	From *Ref   `@@`
	To   *Ref   `@@`
	Type string `@KwPadType? EOL`
}

// HoleStmt is a drill.
type HoleStmt struct {
	Pos  lexer.Position
	From *Ref `"hole" @@`
	To   *Ref `@@ EOL`
}

// SilkStmt is a line, a rectangle or a circle around From through To.
type SilkStmt struct {
	Pos   lexer.Position
	Kind  string           `@KwSilk`
	From  *Ref             `@@`
	To    *Ref             `@@`
	Width *expr.Expression `@@? EOL`
}

// ArcStmt is an arc around Center from Start to End.
type ArcStmt struct {
	Pos    lexer.Position
	Center *Ref             `"arc" @@`
	Start  *Ref             `@@`
	End    *Ref             `@@`
	Width  *expr.Expression `@@? EOL`
}

// MeasStmt is a measurement between two vectors of any frame.
type MeasStmt struct {
	Pos    lexer.Position
	Kind   string           `@KwMeas`
	Label  *string          `@String?`
	From   *QualifiedRef    `@@`
	Arrow  string           `@Arrow`
	To     *QualifiedRef    `@@`
	Offset *expr.Expression `@@? EOL`
}

// IprintStmt logs an expression on every instantiation.
type IprintStmt struct {
	Pos  lexer.Position
	Expr *expr.Expression `KwIprint @@ EOL`
}

// VecStmt declares a vector.
type VecStmt struct {
	Pos  lexer.Position
	Name string           `(@Ident ":")?`
	Base *Ref             `"vec" @@`
	X    *expr.Expression `"(" @@ ","`
	Y    *expr.Expression `@@ ")" EOL`
}

// Ref is an anchor: "@" the frame origin, "." the previous vector, "self"
// the object's own base, or a vector name.
type Ref struct {
	Pos    lexer.Position
	Origin bool   `  @"@"`
	Prev   bool   `| @"."`
	Self   bool   `| @KwSelf`
	Name   string `| @Ident`
}

// QualifiedRef names a vector, optionally of another frame.
type QualifiedRef struct {
	Pos   lexer.Position
	Frame string `(@Ident ".")?`
	Vec   string `@Ident`
}
