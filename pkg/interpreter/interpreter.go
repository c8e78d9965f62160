package interpreter

import (
	"io"
	"os"

	"mite/interpreter-go/pkg/ast"
	"mite/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of Mite AST nodes.
type Interpreter struct {
	out      io.Writer
	builtins map[string]runtime.NativeFunctionValue
}

// New returns an interpreter that writes print output to stdout.
func New() *Interpreter {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput returns an interpreter that writes print output to out.
func NewWithOutput(out io.Writer) *Interpreter {
	return &Interpreter{out: out, builtins: newBuiltins()}
}

// Evaluate runs node against a fresh root environment and returns the last
// evaluated value.
func (i *Interpreter) Evaluate(node ast.Node) (runtime.Value, error) {
	return i.EvaluateIn(node, runtime.NewEnvironment(nil))
}

// EvaluateIn runs node against a caller-supplied environment. The REPL
// threads one environment through successive calls to keep bindings alive.
func (i *Interpreter) EvaluateIn(node ast.Node, env *runtime.Environment) (runtime.Value, error) {
	result, err := i.evaluate(node, env)
	if err != nil {
		if _, ok := err.(returnSignal); ok {
			return nil, runtime.NewError(runtime.ReturnOutsideFunction, "Return outside of function")
		}
		return nil, err
	}
	return result, nil
}

func (i *Interpreter) evaluate(node ast.Node, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Identifier:
		return env.Get(n.Name)
	case *ast.IntegerLiteral:
		return evaluateIntegerLiteral(n)
	case *ast.FloatLiteral:
		return evaluateFloatLiteral(n)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.ArrayLiteral:
		return i.evaluateArrayLiteral(n, env)
	case *ast.IndexExpression:
		return i.evaluateIndexExpression(n, env)
	case *ast.IfExpression:
		return i.evaluateIfExpression(n, env)
	case *ast.VariableDeclaration:
		return i.evaluateVariableDeclaration(n, env)
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(n, env)
	case *ast.Block:
		return i.evaluateBlock(n, env)
	case *ast.ForLoop:
		return i.evaluateForLoop(n, env)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, env)
	case *ast.PrintExpression:
		return i.evaluatePrintExpression(n, env)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, env)
	case *ast.FunctionDefinition:
		return i.evaluateFunctionDefinition(n, env)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, env)
	default:
		return nil, runtime.NewError(runtime.UnsupportedNode, "Unsupported node type: %s", node.NodeType())
	}
}

// returnSignal unwinds a return value through the evaluator's error path.
// invokeFunction converts it back into a plain value; everything else lets it
// pass through untouched.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}
