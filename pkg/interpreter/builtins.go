package interpreter

import "mite/interpreter-go/pkg/runtime"

// Built-ins are call-site fallbacks, not environment bindings: a user
// function named max shadows the built-in, while a non-function binding of
// the same name does not block it.
func newBuiltins() map[string]runtime.NativeFunctionValue {
	return map[string]runtime.NativeFunctionValue{
		"max": {Name: "max", Impl: maxBuiltin},
		"min": {Name: "min", Impl: minBuiltin},
	}
}

func maxBuiltin(args []runtime.Value) (runtime.Value, error) {
	return selectNumeric("max", args, func(cmp int) bool { return cmp > 0 })
}

func minBuiltin(args []runtime.Value) (runtime.Value, error) {
	return selectNumeric("min", args, func(cmp int) bool { return cmp < 0 })
}

// selectNumeric scans numeric arguments and keeps the one that better ranks
// against the current best. Ties keep the earlier argument.
func selectNumeric(name string, args []runtime.Value, better func(int) bool) (runtime.Value, error) {
	if len(args) == 0 {
		return nil, runtime.NewError(runtime.ArityMismatch, "Function '%s' expects at least 1 argument, got 0", name)
	}
	for _, arg := range args {
		if !isNumericValue(arg) {
			return nil, runtime.NewError(runtime.InvalidOperand, "Function '%s' requires numeric arguments", name)
		}
	}
	best := args[0]
	for _, arg := range args[1:] {
		cmp, err := compareNumeric(arg, best)
		if err != nil {
			return nil, err
		}
		if better(cmp) {
			best = arg
		}
	}
	return best, nil
}
