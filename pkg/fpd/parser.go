package fpd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

// Parser reads .fpd files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new .fpd parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(FpdLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// ParseAST parses source into its syntax tree. filename is only used in
// positions.
func (p *Parser) ParseAST(filename, source string) (*File, error) {
	// the last statement needs its terminator too
	if !strings.HasSuffix(source, "\n") {
		source += "\n"
	}
	f, err := p.parser.ParseString(filename, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return f, nil
}

// ParseString parses a definition and builds the document it describes.
func (p *Parser) ParseString(filename, source string) (*model.Document, error) {
	f, err := p.ParseAST(filename, source)
	if err != nil {
		return nil, err
	}
	return Build(f)
}

// Parse reads a definition from r.
func (p *Parser) Parse(filename string, r io.Reader) (*model.Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return p.ParseString(filename, string(b))
}

// ParseFile parses a definition from a file path
func (p *Parser) ParseFile(filename string) (*model.Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(filename, file)
}
