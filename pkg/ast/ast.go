package ast

type NodeType string

const (
	NodeIdentifier           NodeType = "Identifier"
	NodeIntegerLiteral       NodeType = "IntegerLiteral"
	NodeFloatLiteral         NodeType = "FloatLiteral"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeArrayLiteral         NodeType = "ArrayLiteral"
	NodeIndexExpression      NodeType = "IndexExpression"
	NodeIfExpression         NodeType = "IfExpression"
	NodeElseIfClause         NodeType = "ElseIfClause"
	NodeVariableDeclaration  NodeType = "VariableDeclaration"
	NodeAssignmentExpression NodeType = "AssignmentExpression"
	NodeBlock                NodeType = "Block"
	NodeForLoop              NodeType = "ForLoop"
	NodeWhileLoop            NodeType = "WhileLoop"
	NodePrintExpression      NodeType = "PrintExpression"
	NodeFunctionCall         NodeType = "FunctionCall"
	NodeFunctionDefinition   NodeType = "FunctionDefinition"
	NodeReturnStatement      NodeType = "ReturnStatement"
)

// Node is the closed set of tree elements the parser produces. Every
// construct is value-producing, so there is no statement/expression split at
// the type level; consumers switch exhaustively on NodeType.
type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Identifiers & literals.

// Identifier is a variable reference. The lexer has no identifier token kind;
// the parser builds these from keyword tokens that are not reserved words.
type Identifier struct {
	nodeImpl

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// IntegerLiteral keeps the literal's source text; conversion to an
// arbitrary-precision value happens at evaluation time.
type IntegerLiteral struct {
	nodeImpl

	Text string `json:"text"`
}

func NewIntegerLiteral(text string) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Text: text}
}

type FloatLiteral struct {
	nodeImpl

	Text string `json:"text"`
}

func NewFloatLiteral(text string) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Text: text}
}

type ArrayLiteral struct {
	nodeImpl

	Elements []Node `json:"elements"`
}

func NewArrayLiteral(elements []Node) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

// Expressions.

type UnaryExpression struct {
	nodeImpl

	Operator string `json:"operator"`
	Operand  Node   `json:"operand"`
}

func NewUnaryExpression(operator string, operand Node) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl

	Operator string `json:"operator"`
	Left     Node   `json:"left"`
	Right    Node   `json:"right"`
}

func NewBinaryExpression(operator string, left, right Node) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type IndexExpression struct {
	nodeImpl

	Target Node `json:"target"`
	Index  Node `json:"index"`
}

func NewIndexExpression(target, index Node) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Target: target, Index: index}
}

type ElseIfClause struct {
	nodeImpl

	Condition Node `json:"condition"`
	Body      Node `json:"body"`
}

func NewElseIfClause(condition, body Node) *ElseIfClause {
	return &ElseIfClause{nodeImpl: newNodeImpl(NodeElseIfClause), Condition: condition, Body: body}
}

// IfExpression covers both statement-position if/else-if chains and the
// if-inside-arithmetic expression form; the evaluator treats them alike.
type IfExpression struct {
	nodeImpl

	Condition Node            `json:"condition"`
	Then      Node            `json:"then"`
	ElseIfs   []*ElseIfClause `json:"elseIfs,omitempty"`
	Else      Node            `json:"else,omitempty"`
}

func NewIfExpression(condition, then Node, elseIfs []*ElseIfClause, els Node) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), Condition: condition, Then: then, ElseIfs: elseIfs, Else: els}
}

type FunctionCall struct {
	nodeImpl

	Name      *Identifier `json:"name"`
	Arguments []Node      `json:"arguments"`
}

func NewFunctionCall(name *Identifier, arguments []Node) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Name: name, Arguments: arguments}
}

// Statements.

type VariableDeclaration struct {
	nodeImpl

	Name  *Identifier `json:"name"`
	Value Node        `json:"value"`
}

func NewVariableDeclaration(name *Identifier, value Node) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Name: name, Value: value}
}

type AssignmentExpression struct {
	nodeImpl

	Target *Identifier `json:"target"`
	Value  Node        `json:"value"`
}

func NewAssignmentExpression(target *Identifier, value Node) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Target: target, Value: value}
}

// Block is an ordered statement sequence. The parser collapses a block with
// exactly one statement into that statement itself, so a Block node always
// has zero or at least two statements when it comes from source text.
type Block struct {
	nodeImpl

	Statements []Node `json:"statements"`
}

func NewBlock(statements []Node) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

type ForLoop struct {
	nodeImpl

	Init      Node `json:"init"`
	Condition Node `json:"condition"`
	Increment Node `json:"increment"`
	Body      Node `json:"body"`
}

func NewForLoop(init, condition, increment, body Node) *ForLoop {
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop), Init: init, Condition: condition, Increment: increment, Body: body}
}

type WhileLoop struct {
	nodeImpl

	Condition Node `json:"condition"`
	Body      Node `json:"body"`
}

func NewWhileLoop(condition, body Node) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

type PrintExpression struct {
	nodeImpl

	Value Node `json:"value"`
}

func NewPrintExpression(value Node) *PrintExpression {
	return &PrintExpression{nodeImpl: newNodeImpl(NodePrintExpression), Value: value}
}

type FunctionDefinition struct {
	nodeImpl

	Name   *Identifier   `json:"name"`
	Params []*Identifier `json:"params"`
	Body   Node          `json:"body"`
}

func NewFunctionDefinition(name *Identifier, params []*Identifier, body Node) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), Name: name, Params: params, Body: body}
}

type ReturnStatement struct {
	nodeImpl

	Value Node `json:"value"`
}

func NewReturnStatement(value Node) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Value: value}
}
