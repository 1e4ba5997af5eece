package sexp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode"
)

var (
	ErrUnterminated = errors.New("sexp: unterminated string")
	ErrUnbalanced   = errors.New("sexp: unbalanced parentheses")
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLeftParen
	TokenRightParen
	TokenSymbol
	TokenString
)

// Token is a lexical token and the line it starts on.
type Token struct {
	Type  TokenType
	Value string
	Line  int
}

// Lexer tokenizes S-expressions from an io.Reader
type Lexer struct {
	reader *bufio.Reader
	peeked *rune
	line   int
}

// NewLexer creates a new lexer
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r), line: 1}
}

// NextToken reads the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	for {
		ch, err := l.peek()
		if err == io.EOF {
			return Token{Type: TokenEOF, Line: l.line}, nil
		}
		if err != nil {
			return Token{}, err
		}
		if unicode.IsSpace(ch) {
			l.read()
			continue
		}
		// comments run from # to end of line
		if ch == '#' {
			for {
				c, err := l.read()
				if err != nil || c == '\n' {
					break
				}
			}
			continue
		}
		break
	}

	ch, _ := l.peek()
	line := l.line
	switch ch {
	case '(':
		l.read()
		return Token{Type: TokenLeftParen, Value: "(", Line: line}, nil
	case ')':
		l.read()
		return Token{Type: TokenRightParen, Value: ")", Line: line}, nil
	case '"':
		return l.readString()
	default:
		return l.readSymbol()
	}
}

func (l *Lexer) peek() (rune, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	ch, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	l.peeked = &ch
	return ch, nil
}

func (l *Lexer) read() (rune, error) {
	var ch rune
	if l.peeked != nil {
		ch = *l.peeked
		l.peeked = nil
	} else {
		var err error
		if ch, _, err = l.reader.ReadRune(); err != nil {
			return 0, err
		}
	}
	if ch == '\n' {
		l.line++
	}
	return ch, nil
}

func (l *Lexer) readString() (Token, error) {
	line := l.line
	l.read()

	var result []rune
	for {
		ch, err := l.read()
		if err == io.EOF {
			return Token{}, fmt.Errorf("line %d: %w", line, ErrUnterminated)
		}
		if err != nil {
			return Token{}, err
		}
		if ch == '"' {
			break
		}
		if ch == '\\' {
			next, err := l.read()
			if err != nil {
				return Token{}, fmt.Errorf("line %d: %w", line, ErrUnterminated)
			}
			switch next {
			case 'n':
				next = '\n'
			case 't':
				next = '\t'
			case 'r':
				next = '\r'
			}
			result = append(result, next)
			continue
		}
		result = append(result, ch)
	}
	return Token{Type: TokenString, Value: string(result), Line: line}, nil
}

func (l *Lexer) readSymbol() (Token, error) {
	line := l.line
	var result []rune
	for {
		ch, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			break
		}
		l.read()
		result = append(result, ch)
	}
	return Token{Type: TokenSymbol, Value: string(result), Line: line}, nil
}
