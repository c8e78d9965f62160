package runtime

import (
	"errors"
	"math/big"
	"testing"
)

func intVal(v int64) IntegerValue {
	return IntegerValue{Val: big.NewInt(v)}
}

func TestDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", intVal(10))

	val, err := env.Get("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	iv, ok := val.(IntegerValue)
	if !ok || iv.Val.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("unexpected result %#v", val)
	}
}

func TestGetWalksParentChain(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("x", intVal(1))
	child := root.Extend().Extend()

	val, err := child.Get("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv := val.(IntegerValue); iv.Val.Int64() != 1 {
		t.Fatalf("unexpected result %#v", val)
	}
}

func TestGetUndefined(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get("missing")
	if err == nil {
		t.Fatalf("expected error for undefined variable")
	}
	var rtErr *Error
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if rtErr.Code != UndefinedVariable {
		t.Fatalf("code = %q, want UndefinedVariable", rtErr.Code)
	}
	if rtErr.Message != "Undefined variable 'missing'" {
		t.Fatalf("unexpected message %q", rtErr.Message)
	}
}

func TestDefineShadowsOuterBinding(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", intVal(1))
	inner := outer.Extend()
	inner.Define("x", intVal(2))

	val, _ := inner.Get("x")
	if iv := val.(IntegerValue); iv.Val.Int64() != 2 {
		t.Fatalf("inner lookup = %#v, want shadowed value", val)
	}
	val, _ = outer.Get("x")
	if iv := val.(IntegerValue); iv.Val.Int64() != 1 {
		t.Fatalf("outer binding disturbed: %#v", val)
	}
}

func TestAssignMutatesNearestDefiningScope(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", intVal(1))
	inner := outer.Extend()

	if err := inner.Assign("x", intVal(5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	val, _ := outer.Get("x")
	if iv := val.(IntegerValue); iv.Val.Int64() != 5 {
		t.Fatalf("outer binding = %#v, want 5", val)
	}
	if len(inner.Snapshot()) != 0 {
		t.Fatalf("assign must not create a binding in the inner scope")
	}
}

func TestAssignUndefined(t *testing.T) {
	env := NewEnvironment(nil)
	err := env.Assign("ghost", intVal(1))
	var rtErr *Error
	if !errors.As(err, &rtErr) || rtErr.Code != UndefinedVariable {
		t.Fatalf("expected UndefinedVariable, got %v", err)
	}
}

func TestKeysSorted(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("b", intVal(2))
	env.Define("a", intVal(1))
	env.Define("c", intVal(3))

	keys := env.Keys()
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestSnapshotExcludesParentBindings(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("x", intVal(1))
	child := root.Extend()
	child.Define("y", intVal(2))

	snap := child.Snapshot()
	if _, ok := snap["x"]; ok {
		t.Fatalf("snapshot should cover only the scope's own bindings: %v", snap)
	}
	if _, ok := snap["y"]; !ok {
		t.Fatalf("snapshot missing own binding: %v", snap)
	}
}
