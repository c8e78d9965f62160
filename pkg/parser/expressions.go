package parser

import (
	"mite/interpreter-go/pkg/ast"
	"mite/interpreter-go/pkg/lexer"
)

// comparisonOperators do not chain: a < b < c parses the first comparison and
// leaves the rest for the caller, which then fails on the dangling operator.
var comparisonOperators = map[string]bool{
	"<":  true,
	"<=": true,
	">":  true,
	">=": true,
	"==": true,
	"!=": true,
}

// parseExpression is the entry point of the precedence chain:
// or < and < comparison < additive < multiplicative < ** < if/atom.
func (p *parser) parseExpression() (ast.Node, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("or") {
		p.pos++
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression("or", left, right)
	}
	return left, nil
}

func (p *parser) parseLogicalAnd() (ast.Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("and") {
		p.pos++
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression("and", left, right)
	}
	return left, nil
}

func (p *parser) parseComparison() (ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok && tok.Kind == lexer.TokenOperator && comparisonOperators[tok.Text] {
		p.pos++
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpression(tok.Text, left, right), nil
	}
	return left, nil
}

func (p *parser) parseAdditive() (ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != lexer.TokenOperator || (tok.Text != "+" && tok.Text != "-") {
			return left, nil
		}
		p.pos++
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(tok.Text, left, right)
	}
}

func (p *parser) parseMultiplicative() (ast.Node, error) {
	left, err := p.parseExponent()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != lexer.TokenOperator || (tok.Text != "*" && tok.Text != "/" && tok.Text != "%") {
			return left, nil
		}
		p.pos++
		right, err := p.parseExponent()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(tok.Text, left, right)
	}
}

// parseExponent handles at most one '**'. The operator does not associate,
// so 2 ** 3 ** 2 leaves the trailing '** 2' unconsumed and the program
// fails at the statement boundary.
func (p *parser) parseExponent() (ast.Node, error) {
	left, err := p.parseIfLevel()
	if err != nil {
		return nil, err
	}
	if p.atOperator("**") {
		p.pos++
		right, err := p.parseIfLevel()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpression("**", left, right), nil
	}
	return left, nil
}

// parseIfLevel lets a whole conditional act as an operand, giving
// 5 + if c { a } else { b } without parentheses.
func (p *parser) parseIfLevel() (ast.Node, error) {
	if p.atKeyword("if") {
		return p.parseIfExpression()
	}
	return p.parseAtom()
}

func (p *parser) parseIfExpression() (ast.Node, error) {
	p.pos++
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	expr := ast.NewIfExpression(condition, then, nil, nil)
	for p.atKeyword("else") {
		p.pos++
		if p.atKeyword("if") {
			p.pos++
			elifCond, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elifBody, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			expr.ElseIfs = append(expr.ElseIfs, ast.NewElseIfClause(elifCond, elifBody))
			continue
		}
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		expr.Else = elseBody
		return expr, nil
	}
	return expr, nil
}

// parseAtom parses literals, unary minus, parenthesized groups, array
// literals, references and calls, then applies postfix indexing.
func (p *parser) parseAtom() (ast.Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, &ParseError{Message: "Unexpected token in atom"}
	}
	var atom ast.Node
	switch {
	case tok.Kind == lexer.TokenInt:
		p.pos++
		atom = ast.NewIntegerLiteral(tok.Text)
	case tok.Kind == lexer.TokenFloat:
		p.pos++
		atom = ast.NewFloatLiteral(tok.Text)
	case tok.Kind == lexer.TokenParen && tok.Text == "(":
		p.pos++
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectParen(")", "Expected ')' after parenthesized expression"); err != nil {
			return nil, err
		}
		atom = inner
	case tok.Kind == lexer.TokenOperator && tok.Text == "-":
		p.pos++
		operand, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		atom = ast.NewUnaryExpression("-", operand)
	case tok.Kind == lexer.TokenOperator && tok.Text == "[":
		arr, err := p.parseArrayLiteral()
		if err != nil {
			return nil, err
		}
		atom = arr
	case tok.Kind == lexer.TokenKeyword && !reservedWords[tok.Text]:
		p.pos++
		if p.consumeParen("(") {
			args, err := p.parseCallArguments()
			if err != nil {
				return nil, err
			}
			atom = ast.NewFunctionCall(ast.NewIdentifier(tok.Text), args)
		} else {
			atom = ast.NewIdentifier(tok.Text)
		}
	default:
		return nil, &ParseError{Message: "Unexpected token in atom"}
	}
	// Postfix indexing binds tighter than every operator and chains left
	// to right, so m[1][2] indexes the result of m[1].
	for p.atOperator("[") {
		p.pos++
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectOperator("]", "Expected ']' after index expression"); err != nil {
			return nil, err
		}
		atom = ast.NewIndexExpression(atom, index)
	}
	return atom, nil
}

func (p *parser) parseArrayLiteral() (ast.Node, error) {
	p.pos++
	var elements []ast.Node
	if !p.atOperator("]") {
		for {
			element, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
			if !p.consumeOperator(",") {
				break
			}
		}
	}
	if err := p.expectOperator("]", "Expected ']' after array elements"); err != nil {
		return nil, err
	}
	return ast.NewArrayLiteral(elements), nil
}

func (p *parser) parseCallArguments() ([]ast.Node, error) {
	var args []ast.Node
	if p.consumeParen(")") {
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.consumeOperator(",") {
			break
		}
	}
	if err := p.expectParen(")", "Unclosed parenthesis in function call"); err != nil {
		return nil, err
	}
	return args, nil
}
