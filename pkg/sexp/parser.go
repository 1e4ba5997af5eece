package sexp

import (
	"fmt"
	"io"
)

// Parser parses S-expressions from a lexer
type Parser struct {
	lexer   *Lexer
	current Token
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// ParseAll parses all top-level S-expressions from the input
func (p *Parser) ParseAll() ([]Sexp, error) {
	var result []Sexp
	for {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.current.Type == TokenEOF {
			return result, nil
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
}

func (p *Parser) next() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *Parser) parseExpr() (Sexp, error) {
	switch p.current.Type {
	case TokenLeftParen:
		return p.parseList()
	case TokenSymbol:
		return Symbol(p.current.Value), nil
	case TokenString:
		return Str(p.current.Value), nil
	default:
		return nil, fmt.Errorf("line %d: unexpected %q: %w", p.current.Line, p.current.Value, ErrUnbalanced)
	}
}

func (p *Parser) parseList() (Sexp, error) {
	start := p.current.Line
	l := &List{}
	for {
		if err := p.next(); err != nil {
			return nil, err
		}
		switch p.current.Type {
		case TokenRightParen:
			return l, nil
		case TokenEOF:
			return nil, fmt.Errorf("line %d: list not closed: %w", start, ErrUnbalanced)
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		l.elements = append(l.elements, e)
	}
}
