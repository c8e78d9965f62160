package ast

import "strconv"

// Construction helpers for building trees in tests without the parser.

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(strconv.FormatInt(value, 10))
}

func IntText(text string) *IntegerLiteral {
	return NewIntegerLiteral(text)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(strconv.FormatFloat(value, 'g', -1, 64))
}

func FltText(text string) *FloatLiteral {
	return NewFloatLiteral(text)
}

func Arr(elements ...Node) *ArrayLiteral {
	return NewArrayLiteral(elements)
}

// Expression helpers.

func Neg(operand Node) *UnaryExpression {
	return NewUnaryExpression("-", operand)
}

func Bin(operator string, left, right Node) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Index(target, index Node) *IndexExpression {
	return NewIndexExpression(target, index)
}

func Call(name string, args ...Node) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

func If(condition, then Node) *IfExpression {
	return NewIfExpression(condition, then, nil, nil)
}

func IfElse(condition, then, els Node) *IfExpression {
	return NewIfExpression(condition, then, nil, els)
}

func IfChain(condition, then Node, elseIfs []*ElseIfClause, els Node) *IfExpression {
	return NewIfExpression(condition, then, elseIfs, els)
}

func ElseIf(condition, body Node) *ElseIfClause {
	return NewElseIfClause(condition, body)
}

// Statement helpers.

func Var(name string, value Node) *VariableDeclaration {
	return NewVariableDeclaration(ID(name), value)
}

func Assign(name string, value Node) *AssignmentExpression {
	return NewAssignmentExpression(ID(name), value)
}

func Blk(statements ...Node) *Block {
	return NewBlock(statements)
}

func For(init, condition, increment, body Node) *ForLoop {
	return NewForLoop(init, condition, increment, body)
}

func While(condition, body Node) *WhileLoop {
	return NewWhileLoop(condition, body)
}

func Print(value Node) *PrintExpression {
	return NewPrintExpression(value)
}

func Def(name string, params []string, body Node) *FunctionDefinition {
	var ids []*Identifier
	for _, p := range params {
		ids = append(ids, ID(p))
	}
	return NewFunctionDefinition(ID(name), ids, body)
}

func Ret(value Node) *ReturnStatement {
	return NewReturnStatement(value)
}
