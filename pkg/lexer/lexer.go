package lexer

import (
	"fmt"
	"strings"
)

// LexError reports a malformed lexical unit. The first error aborts the whole
// lex; no resynchronization is attempted and no partial token stream is
// returned.
type LexError struct {
	Message string
}

func (e *LexError) Error() string { return e.Message }

// twoCharOperators are matched greedily before single-character operators.
// Their first character always belongs to operatorStarts.
var twoCharOperators = map[string]bool{
	"<=": true,
	">=": true,
	"==": true,
	"!=": true,
	"**": true,
}

const (
	operatorStarts  = "+-*/<>=!"
	singleOperators = "+-*/%<>=!;,[]"
)

// Lex converts source text into its complete token sequence. The sequence is
// materialized up front; callers restart by lexing again.
func Lex(source string) ([]Token, error) {
	lx := &lexer{source: source}
	return lx.run()
}

type lexer struct {
	source string
	pos    int
}

func (l *lexer) run() ([]Token, error) {
	var tokens []Token
	for l.pos < len(l.source) {
		c := l.source[l.pos]
		switch {
		case isSpace(c):
			l.pos++
		case isDigit(c):
			tok, err := l.scanNumber()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case isWordStart(c):
			tokens = append(tokens, l.scanWord())
		case c == '(' || c == ')':
			tokens = append(tokens, Token{Kind: TokenParen, Text: string(c)})
			l.pos++
		case c == '{' || c == '}':
			tokens = append(tokens, Token{Kind: TokenOperator, Text: string(c)})
			l.pos++
		default:
			tok, ok := l.scanOperator()
			if !ok {
				return nil, &LexError{Message: fmt.Sprintf("unexpected character %q", string(c))}
			}
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

// scanNumber consumes the full run of digits and dots before deciding whether
// the literal is valid, so the error names the whole malformed run.
func (l *lexer) scanNumber() (Token, error) {
	start := l.pos
	dots := 0
	for l.pos < len(l.source) {
		c := l.source[l.pos]
		if c == '.' {
			dots++
		} else if !isDigit(c) {
			break
		}
		l.pos++
	}
	text := l.source[start:l.pos]
	if dots > 1 {
		return Token{}, &LexError{Message: fmt.Sprintf("invalid numeric literal %q", text)}
	}
	if dots == 1 {
		return Token{Kind: TokenFloat, Text: text}, nil
	}
	return Token{Kind: TokenInt, Text: text}, nil
}

func (l *lexer) scanWord() Token {
	start := l.pos
	for l.pos < len(l.source) && isWordChar(l.source[l.pos]) {
		l.pos++
	}
	return Token{Kind: TokenKeyword, Text: l.source[start:l.pos]}
}

func (l *lexer) scanOperator() (Token, bool) {
	c := l.source[l.pos]
	if strings.IndexByte(operatorStarts, c) >= 0 && l.pos+1 < len(l.source) {
		two := l.source[l.pos : l.pos+2]
		if twoCharOperators[two] {
			l.pos += 2
			return Token{Kind: TokenOperator, Text: two}, true
		}
	}
	if strings.IndexByte(singleOperators, c) >= 0 {
		l.pos++
		return Token{Kind: TokenOperator, Text: string(c)}, true
	}
	return Token{}, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordChar(c byte) bool {
	return isWordStart(c) || isDigit(c)
}
