package interpreter

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"mite/interpreter-go/pkg/ast"
	"mite/interpreter-go/pkg/runtime"
)

func evaluateIntegerLiteral(lit *ast.IntegerLiteral) (runtime.Value, error) {
	val, ok := new(big.Int).SetString(lit.Text, 10)
	if !ok {
		return nil, runtime.NewError(runtime.InvalidOperand, "Invalid integer literal '%s'", lit.Text)
	}
	return runtime.IntegerValue{Val: val}, nil
}

func evaluateFloatLiteral(lit *ast.FloatLiteral) (runtime.Value, error) {
	val, err := strconv.ParseFloat(lit.Text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, runtime.NewError(runtime.InvalidOperand, "Invalid float literal '%s'", lit.Text)
	}
	return runtime.FloatValue{Val: val}, nil
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluate(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	if expr.Operator != "-" {
		return nil, runtime.NewError(runtime.UnsupportedOperator, "Unsupported unary operator '%s'", expr.Operator)
	}
	switch v := operand.(type) {
	case runtime.IntegerValue:
		return runtime.IntegerValue{Val: new(big.Int).Neg(v.Val)}, nil
	case runtime.FloatValue:
		return runtime.FloatValue{Val: -v.Val}, nil
	default:
		return nil, runtime.NewError(runtime.InvalidOperand, "Unary '-' requires a numeric operand, got %s", operand.Kind())
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left, env)
	if err != nil {
		return nil, err
	}
	// Both operands always evaluate; 'and'/'or' do not short-circuit.
	right, err := i.evaluate(expr.Right, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "and":
		// The result is one of the operands, not a bool coercion.
		truthy, err := isTruthy(left)
		if err != nil {
			return nil, err
		}
		if !truthy {
			return left, nil
		}
		return right, nil
	case "or":
		truthy, err := isTruthy(left)
		if err != nil {
			return nil, err
		}
		if truthy {
			return left, nil
		}
		return right, nil
	case "+", "-", "*", "/", "%", "**":
		return evaluateArithmetic(expr.Operator, left, right)
	case "<", "<=", ">", ">=":
		cmp, err := compareNumeric(left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: comparisonOp(expr.Operator, cmp)}, nil
	case "==":
		return runtime.BoolValue{Val: valuesEqual(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !valuesEqual(left, right)}, nil
	default:
		return nil, runtime.NewError(runtime.UnsupportedOperator, "Unsupported operator '%s'", expr.Operator)
	}
}

func evaluateArithmetic(op string, left runtime.Value, right runtime.Value) (runtime.Value, error) {
	li, leftInt := left.(runtime.IntegerValue)
	ri, rightInt := right.(runtime.IntegerValue)
	if leftInt && rightInt {
		return integerArithmetic(op, li.Val, ri.Val)
	}
	if !isNumericValue(left) || !isNumericValue(right) {
		return nil, runtime.NewError(runtime.InvalidOperand, "Arithmetic requires numeric operands")
	}
	// Mixed integer/float promotes to float.
	var a, b float64
	if leftInt {
		a = bigIntToFloat(li.Val)
	} else {
		a = left.(runtime.FloatValue).Val
	}
	if rightInt {
		b = bigIntToFloat(ri.Val)
	} else {
		b = right.(runtime.FloatValue).Val
	}
	return floatArithmetic(op, a, b)
}

func integerArithmetic(op string, a, b *big.Int) (runtime.Value, error) {
	result := new(big.Int)
	switch op {
	case "+":
		result.Add(a, b)
	case "-":
		result.Sub(a, b)
	case "*":
		result.Mul(a, b)
	case "/":
		if b.Sign() == 0 {
			return nil, runtime.NewError(runtime.DivisionByZero, "Division by zero")
		}
		// Division stays integral only when it is exact.
		quo, rem := new(big.Int).QuoRem(a, b, new(big.Int))
		if rem.Sign() != 0 {
			return runtime.FloatValue{Val: bigIntToFloat(a) / bigIntToFloat(b)}, nil
		}
		result = quo
	case "%":
		if b.Sign() == 0 {
			return nil, runtime.NewError(runtime.DivisionByZero, "Division by zero")
		}
		result.Rem(a, b)
	case "**":
		// big.Int.Exp treats a negative exponent as zero, so that case
		// routes through the float path instead.
		if b.Sign() < 0 {
			return runtime.FloatValue{Val: math.Pow(bigIntToFloat(a), bigIntToFloat(b))}, nil
		}
		result.Exp(a, b, nil)
	default:
		return nil, runtime.NewError(runtime.UnsupportedOperator, "Unsupported operator '%s'", op)
	}
	return runtime.IntegerValue{Val: result}, nil
}

func floatArithmetic(op string, a, b float64) (runtime.Value, error) {
	var val float64
	switch op {
	case "+":
		val = a + b
	case "-":
		val = a - b
	case "*":
		val = a * b
	case "/":
		if b == 0 {
			return nil, runtime.NewError(runtime.DivisionByZero, "Division by zero")
		}
		val = a / b
	case "%":
		if b == 0 {
			return nil, runtime.NewError(runtime.DivisionByZero, "Division by zero")
		}
		val = math.Mod(a, b)
	case "**":
		val = math.Pow(a, b)
	default:
		return nil, runtime.NewError(runtime.UnsupportedOperator, "Unsupported operator '%s'", op)
	}
	return runtime.FloatValue{Val: val}, nil
}

func bigIntToFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareNumeric(left, right runtime.Value) (int, error) {
	switch lv := left.(type) {
	case runtime.IntegerValue:
		switch rv := right.(type) {
		case runtime.IntegerValue:
			return lv.Val.Cmp(rv.Val), nil
		case runtime.FloatValue:
			return compareFloats(bigIntToFloat(lv.Val), rv.Val), nil
		}
	case runtime.FloatValue:
		switch rv := right.(type) {
		case runtime.IntegerValue:
			return compareFloats(lv.Val, bigIntToFloat(rv.Val)), nil
		case runtime.FloatValue:
			return compareFloats(lv.Val, rv.Val), nil
		}
	}
	return 0, runtime.NewError(runtime.InvalidOperand, "Comparison requires numeric operands")
}

func comparisonOp(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	default:
		return false
	}
}

// isTruthy applies the strict condition rule: booleans count as themselves,
// numbers as non-zero, and every other kind is an error rather than silently
// truthy.
func isTruthy(val runtime.Value) (bool, error) {
	switch v := val.(type) {
	case runtime.BoolValue:
		return v.Val, nil
	case runtime.IntegerValue:
		return v.Val.Sign() != 0, nil
	case runtime.FloatValue:
		return v.Val != 0, nil
	default:
		return false, runtime.NewError(runtime.InvalidCondition, "Condition must be a boolean or a number, got %s", val.Kind())
	}
}

func isNumericValue(val runtime.Value) bool {
	switch val.(type) {
	case runtime.IntegerValue, runtime.FloatValue:
		return true
	default:
		return false
	}
}

func valuesEqual(left runtime.Value, right runtime.Value) bool {
	switch lv := left.(type) {
	case runtime.BoolValue:
		if rv, ok := right.(runtime.BoolValue); ok {
			return lv.Val == rv.Val
		}
	case runtime.NilValue:
		_, ok := right.(runtime.NilValue)
		return ok
	case runtime.IntegerValue, runtime.FloatValue:
		if isNumericValue(right) {
			cmp, err := compareNumeric(left, right)
			return err == nil && cmp == 0
		}
	case *runtime.ArrayValue:
		rv, ok := right.(*runtime.ArrayValue)
		if !ok || len(lv.Elements) != len(rv.Elements) {
			return false
		}
		for idx := range lv.Elements {
			if !valuesEqual(lv.Elements[idx], rv.Elements[idx]) {
				return false
			}
		}
		return true
	case *runtime.FunctionValue:
		if rv, ok := right.(*runtime.FunctionValue); ok {
			return lv == rv
		}
	case runtime.NativeFunctionValue:
		if rv, ok := right.(runtime.NativeFunctionValue); ok {
			return lv.Name == rv.Name
		}
	}
	return false
}

func (i *Interpreter) evaluateArrayLiteral(lit *ast.ArrayLiteral, env *runtime.Environment) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(lit.Elements))
	for _, elem := range lit.Elements {
		val, err := i.evaluate(elem, env)
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return &runtime.ArrayValue{Elements: elements}, nil
}

func (i *Interpreter) evaluateIndexExpression(expr *ast.IndexExpression, env *runtime.Environment) (runtime.Value, error) {
	target, err := i.evaluate(expr.Target, env)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluate(expr.Index, env)
	if err != nil {
		return nil, err
	}
	arr, ok := target.(*runtime.ArrayValue)
	if !ok {
		return nil, runtime.NewError(runtime.InvalidOperand, "Index target must be an array, got %s", target.Kind())
	}
	iv, ok := index.(runtime.IntegerValue)
	if !ok {
		return nil, runtime.NewError(runtime.NonIntegerIndex, "Array index must be an integer")
	}
	// Indexes are 1-based: the valid range is [1, len].
	if !iv.Val.IsInt64() {
		return nil, runtime.NewError(runtime.IndexOutOfRange, "Array index %s out of range for length %d", iv.Val.String(), len(arr.Elements))
	}
	idx := iv.Val.Int64()
	if idx < 1 || idx > int64(len(arr.Elements)) {
		return nil, runtime.NewError(runtime.IndexOutOfRange, "Array index %d out of range for length %d", idx, len(arr.Elements))
	}
	return arr.Elements[idx-1], nil
}

func (i *Interpreter) evaluateIfExpression(expr *ast.IfExpression, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluate(expr.Condition, env)
	if err != nil {
		return nil, err
	}
	truthy, err := isTruthy(cond)
	if err != nil {
		return nil, err
	}
	if truthy {
		return i.evaluate(expr.Then, env.Extend())
	}
	for _, clause := range expr.ElseIfs {
		cond, err := i.evaluate(clause.Condition, env)
		if err != nil {
			return nil, err
		}
		truthy, err := isTruthy(cond)
		if err != nil {
			return nil, err
		}
		if truthy {
			return i.evaluate(clause.Body, env.Extend())
		}
	}
	if expr.Else != nil {
		return i.evaluate(expr.Else, env.Extend())
	}
	return runtime.NilValue{}, nil
}

func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	// Arguments evaluate before the callee name resolves, so argument
	// errors win over unknown-function errors.
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argNode := range call.Arguments {
		val, err := i.evaluate(argNode, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	name := call.Name.Name
	if bound, err := env.Get(name); err == nil {
		if fn, ok := bound.(*runtime.FunctionValue); ok {
			return i.invokeFunction(fn, args)
		}
	}
	// A missing binding, or one that is not a function, falls through to
	// the built-ins.
	if native, ok := i.builtins[name]; ok {
		return native.Impl(args)
	}
	return nil, runtime.NewError(runtime.UnknownFunction, "Unknown function '%s'", name)
}

func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	decl := fn.Declaration
	if len(args) != len(decl.Params) {
		name := "anonymous"
		if decl.Name != nil {
			name = decl.Name.Name
		}
		return nil, runtime.NewError(runtime.ArityMismatch, "Function '%s' expects %d arguments, got %d", name, len(decl.Params), len(args))
	}
	// Parameters bind in a scope whose parent is the closure environment,
	// not the call site.
	localEnv := fn.Closure.Extend()
	for idx, param := range decl.Params {
		localEnv.Define(param.Name, args[idx])
	}
	result, err := i.evaluate(decl.Body, localEnv)
	if err != nil {
		if ret, ok := err.(returnSignal); ok {
			return ret.value, nil
		}
		return nil, err
	}
	return result, nil
}
