package runtime

import (
	"fmt"
	"strings"
)

// FormatValue renders a value the way print, the REPL, and the fixture
// harness show it.
func FormatValue(val Value) string {
	switch v := val.(type) {
	case BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case NilValue:
		return "nil"
	case IntegerValue:
		return v.Val.String()
	case FloatValue:
		return fmt.Sprintf("%g", v.Val)
	case *ArrayValue:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = FormatValue(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *FunctionValue:
		name := "anonymous"
		if v.Declaration != nil && v.Declaration.Name != nil {
			name = v.Declaration.Name.Name
		}
		return fmt.Sprintf("<function %s>", name)
	case NativeFunctionValue:
		return fmt.Sprintf("<native function %s>", v.Name)
	default:
		return fmt.Sprintf("[%s]", val.Kind())
	}
}
