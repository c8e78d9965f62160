package lexer

// TokenKind discriminates the lexical categories produced by Lex.
type TokenKind int

const (
	TokenInt TokenKind = iota
	TokenFloat
	TokenOperator
	TokenKeyword
	TokenParen
)

func (k TokenKind) String() string {
	switch k {
	case TokenInt:
		return "Int"
	case TokenFloat:
		return "Float"
	case TokenOperator:
		return "Operator"
	case TokenKeyword:
		return "Keyword"
	case TokenParen:
		return "Paren"
	default:
		return "Unknown"
	}
}

// Token is a single lexical unit. Tokens are immutable and carry only their
// literal text; the grammar never needs source positions.
//
// Keyword covers both reserved words and user identifiers: the stream has no
// separate identifier kind, and the parser disambiguates by context against
// the reserved-word set.
type Token struct {
	Kind TokenKind
	Text string
}
