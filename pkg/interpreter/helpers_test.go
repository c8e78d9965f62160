package interpreter

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"mite/interpreter-go/pkg/ast"
	"mite/interpreter-go/pkg/parser"
	"mite/interpreter-go/pkg/runtime"
)

func bigInt(v int64) *big.Int {
	return big.NewInt(v)
}

func parseSource(t *testing.T, source string) ast.Node {
	t.Helper()
	node, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse failed for %q: %v", source, err)
	}
	return node
}

// runSource parses and evaluates source with a fresh interpreter, returning
// the result, the captured print output, and any evaluation error.
func runSource(t *testing.T, source string) (runtime.Value, string, error) {
	t.Helper()
	var out bytes.Buffer
	val, err := NewWithOutput(&out).Evaluate(parseSource(t, source))
	return val, out.String(), err
}

func evalSource(t *testing.T, source string) runtime.Value {
	t.Helper()
	val, _, err := runSource(t, source)
	if err != nil {
		t.Fatalf("evaluation failed for %q: %v", source, err)
	}
	return val
}

func evalSourceErr(t *testing.T, source string) error {
	t.Helper()
	val, _, err := runSource(t, source)
	if err == nil {
		t.Fatalf("expected error for %q, got %#v", source, val)
	}
	return err
}

func expectInt(t *testing.T, val runtime.Value, want int64) {
	t.Helper()
	iv, ok := val.(runtime.IntegerValue)
	if !ok || iv.Val.Cmp(bigInt(want)) != 0 {
		t.Fatalf("expected integer %d, got %#v", want, val)
	}
}

func expectFloat(t *testing.T, val runtime.Value, want float64) {
	t.Helper()
	fv, ok := val.(runtime.FloatValue)
	if !ok || fv.Val != want {
		t.Fatalf("expected float %g, got %#v", want, val)
	}
}

func expectBool(t *testing.T, val runtime.Value, want bool) {
	t.Helper()
	bv, ok := val.(runtime.BoolValue)
	if !ok || bv.Val != want {
		t.Fatalf("expected bool %v, got %#v", want, val)
	}
}

func expectNil(t *testing.T, val runtime.Value) {
	t.Helper()
	if _, ok := val.(runtime.NilValue); !ok {
		t.Fatalf("expected nil, got %#v", val)
	}
}

func expectRuntimeError(t *testing.T, err error, code runtime.ErrorCode, contains string) {
	t.Helper()
	var rerr *runtime.Error
	if !errors.As(err, &rerr) {
		t.Fatalf("unexpected error type: %v", err)
	}
	if rerr.Code != code {
		t.Fatalf("unexpected error code %s (message %q), want %s", rerr.Code, rerr.Message, code)
	}
	if contains != "" && !strings.Contains(rerr.Message, contains) {
		t.Fatalf("message %q does not contain %q", rerr.Message, contains)
	}
}
