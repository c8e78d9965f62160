package interpreter

import (
	"fmt"

	"mite/interpreter-go/pkg/ast"
	"mite/interpreter-go/pkg/runtime"
)

// evaluateBlock runs statements in order in the given environment and yields
// the last value, or nil for an empty block. Blocks do not open a scope of
// their own; the constructs that want isolation create the child environment
// before calling in.
func (i *Interpreter) evaluateBlock(block *ast.Block, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NilValue{}
	for _, stmt := range block.Statements {
		val, err := i.evaluate(stmt, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func (i *Interpreter) evaluateVariableDeclaration(decl *ast.VariableDeclaration, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluate(decl.Value, env)
	if err != nil {
		return nil, err
	}
	// var always defines in the current scope, shadowing outer bindings.
	env.Define(decl.Name.Name, val)
	return val, nil
}

func (i *Interpreter) evaluateAssignment(assign *ast.AssignmentExpression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluate(assign.Value, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(assign.Target.Name, val); err != nil {
		return nil, err
	}
	return val, nil
}

// evaluateWhileLoop runs the body in the loop's own environment every
// iteration, so declarations made inside persist across iterations and after
// the loop. This differs from for, whose body gets a fresh scope.
func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NilValue{}
	for {
		cond, err := i.evaluate(loop.Condition, env)
		if err != nil {
			return nil, err
		}
		truthy, err := isTruthy(cond)
		if err != nil {
			return nil, err
		}
		if !truthy {
			return result, nil
		}
		val, err := i.evaluate(loop.Body, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
}

// evaluateForLoop runs the initializer, condition, and increment in the
// surrounding scope, so names the header declares stay visible after the
// loop. Each iteration's body gets a fresh child scope.
func (i *Interpreter) evaluateForLoop(loop *ast.ForLoop, env *runtime.Environment) (runtime.Value, error) {
	if _, err := i.evaluate(loop.Init, env); err != nil {
		return nil, err
	}
	var result runtime.Value = runtime.NilValue{}
	for {
		cond, err := i.evaluate(loop.Condition, env)
		if err != nil {
			return nil, err
		}
		truthy, err := isTruthy(cond)
		if err != nil {
			return nil, err
		}
		if !truthy {
			return result, nil
		}
		val, err := i.evaluate(loop.Body, env.Extend())
		if err != nil {
			return nil, err
		}
		result = val
		if _, err := i.evaluate(loop.Increment, env); err != nil {
			return nil, err
		}
	}
}

// evaluatePrintExpression writes the display form of the value plus a newline
// and yields the value itself, so print composes inside larger expressions.
func (i *Interpreter) evaluatePrintExpression(expr *ast.PrintExpression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluate(expr.Value, env)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(i.out, runtime.FormatValue(val))
	return val, nil
}

func (i *Interpreter) evaluateFunctionDefinition(def *ast.FunctionDefinition, env *runtime.Environment) (runtime.Value, error) {
	fn := &runtime.FunctionValue{Declaration: def, Closure: env}
	env.Define(def.Name.Name, fn)
	return fn, nil
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NilValue{}
	if stmt.Value != nil {
		val, err := i.evaluate(stmt.Value, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return nil, returnSignal{value: result}
}
