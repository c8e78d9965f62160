package parser

import (
	"mite/interpreter-go/pkg/ast"
	"mite/interpreter-go/pkg/lexer"
)

// ParseError reports a grammar violation. The first error aborts the whole
// parse; there is no recovery or resynchronization.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// reservedWords are rejected where the grammar needs a user name and where a
// bare word would otherwise read as a variable reference. def and return are
// dispatched by the statement grammar before name resolution happens and are
// deliberately absent from this set.
var reservedWords = map[string]bool{
	"if":    true,
	"else":  true,
	"var":   true,
	"and":   true,
	"or":    true,
	"print": true,
	"for":   true,
	"while": true,
}

// Parse lexes and parses source text into a single tree. A one-statement
// program is returned as that statement; several statements become a Block.
// Lexical failures surface as *lexer.LexError, grammar failures as
// *ParseError.
func Parse(source string) (ast.Node, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses an already-lexed token sequence.
func ParseTokens(tokens []lexer.Token) (ast.Node, error) {
	p := &parser{tokens: tokens}
	return p.parseProgram()
}

// parser is a cursor over the materialized token buffer with one-token
// lookahead via peek.
type parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) at(kind lexer.TokenKind, text string) bool {
	tok, ok := p.peek()
	return ok && tok.Kind == kind && tok.Text == text
}

func (p *parser) atOperator(sym string) bool { return p.at(lexer.TokenOperator, sym) }
func (p *parser) atKeyword(word string) bool { return p.at(lexer.TokenKeyword, word) }
func (p *parser) atParen(sym string) bool    { return p.at(lexer.TokenParen, sym) }

// advance consumes the current token. Callers check peek first.
func (p *parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *parser) consumeOperator(sym string) bool {
	if p.atOperator(sym) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) consumeParen(sym string) bool {
	if p.atParen(sym) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectOperator(sym, message string) error {
	if p.consumeOperator(sym) {
		return nil
	}
	return &ParseError{Message: message}
}

func (p *parser) expectParen(sym, message string) error {
	if p.consumeParen(sym) {
		return nil
	}
	return &ParseError{Message: message}
}

func (p *parser) parseProgram() (ast.Node, error) {
	var statements []ast.Node
	for p.pos < len(p.tokens) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
		p.consumeOperator(";")
	}
	if len(statements) == 1 {
		return statements[0], nil
	}
	return ast.NewBlock(statements), nil
}

func (p *parser) parseStatement() (ast.Node, error) {
	switch {
	case p.atKeyword("def"):
		return p.parseFunctionDefinition()
	case p.atKeyword("return"):
		p.pos++
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewReturnStatement(value), nil
	case p.atKeyword("print"):
		return p.parsePrint()
	case p.atKeyword("for"):
		return p.parseFor()
	case p.atKeyword("while"):
		return p.parseWhile()
	case p.atKeyword("var"):
		return p.parseVarDecl()
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	// A bare reference followed by '=' converts into an assignment.
	if ident, ok := expr.(*ast.Identifier); ok && p.atOperator("=") {
		p.pos++
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewAssignmentExpression(ident, value), nil
	}
	return expr, nil
}

// parseBlock parses '{' statement* '}' with optional ';' separators. A block
// with exactly one statement collapses to that statement; the collapse is
// part of the grammar and decides how many scopes the evaluator creates.
func (p *parser) parseBlock() (ast.Node, error) {
	if err := p.expectOperator("{", "Expected '{' at beginning of block"); err != nil {
		return nil, err
	}
	var statements []ast.Node
	for !p.atOperator("}") {
		if _, ok := p.peek(); !ok {
			return nil, &ParseError{Message: "Missing closing '}' after block"}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
		p.consumeOperator(";")
	}
	p.pos++
	if len(statements) == 1 {
		return statements[0], nil
	}
	return ast.NewBlock(statements), nil
}

func (p *parser) parseFunctionDefinition() (ast.Node, error) {
	p.pos++
	tok, ok := p.peek()
	if !ok || tok.Kind != lexer.TokenKeyword || reservedWords[tok.Text] {
		return nil, &ParseError{Message: "Expected function name after 'def'"}
	}
	name := ast.NewIdentifier(tok.Text)
	p.pos++
	if err := p.expectParen("(", "Expected '(' after function name"); err != nil {
		return nil, err
	}
	var params []*ast.Identifier
	if !p.atParen(")") {
		for {
			ptok, ok := p.peek()
			if !ok || ptok.Kind != lexer.TokenKeyword {
				return nil, &ParseError{Message: "Expected parameter name"}
			}
			params = append(params, ast.NewIdentifier(ptok.Text))
			p.pos++
			if !p.consumeOperator(",") {
				break
			}
		}
	}
	if err := p.expectParen(")", "Expected ')' after parameter list"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDefinition(name, params, body), nil
}

func (p *parser) parsePrint() (ast.Node, error) {
	p.pos++
	if err := p.expectParen("(", "Expected '(' after 'print'"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectParen(")", "Expected ')' after print argument"); err != nil {
		return nil, err
	}
	return ast.NewPrintExpression(value), nil
}

// parseFor parses 'for' '(' init ';' cond ';' incr ')' block. The init and
// increment slots take full statements, so declarations and assignments work
// there.
func (p *parser) parseFor() (ast.Node, error) {
	p.pos++
	if err := p.expectParen("(", "Expected '(' after 'for'"); err != nil {
		return nil, err
	}
	init, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator(";", "Expected ';' after for-loop initializer"); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator(";", "Expected ';' after for-loop condition"); err != nil {
		return nil, err
	}
	increment, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if err := p.expectParen(")", "Expected ')' after for-loop increment"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewForLoop(init, condition, increment, body), nil
}

func (p *parser) parseWhile() (ast.Node, error) {
	p.pos++
	if err := p.expectParen("(", "Expected '(' after 'while'"); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectParen(")", "Expected ')' after while-loop condition"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(condition, body), nil
}

func (p *parser) parseVarDecl() (ast.Node, error) {
	p.pos++
	tok, ok := p.peek()
	if !ok || tok.Kind != lexer.TokenKeyword || reservedWords[tok.Text] {
		return nil, &ParseError{Message: "Expected variable name after 'var'"}
	}
	name := ast.NewIdentifier(tok.Text)
	p.pos++
	if err := p.expectOperator("=", "Expected '=' after variable name in declaration"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewVariableDeclaration(name, value), nil
}
