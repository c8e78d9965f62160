package ast

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNodeTypesMatchConstructors(t *testing.T) {
	cases := []struct {
		node Node
		want NodeType
	}{
		{ID("x"), NodeIdentifier},
		{Int(42), NodeIntegerLiteral},
		{Flt(3.14), NodeFloatLiteral},
		{Neg(Int(1)), NodeUnaryExpression},
		{Bin("+", Int(1), Int(2)), NodeBinaryExpression},
		{Arr(Int(1), Int(2)), NodeArrayLiteral},
		{Index(ID("a"), Int(1)), NodeIndexExpression},
		{If(Int(1), Int(2)), NodeIfExpression},
		{ElseIf(Int(1), Int(2)), NodeElseIfClause},
		{Var("x", Int(1)), NodeVariableDeclaration},
		{Assign("x", Int(1)), NodeAssignmentExpression},
		{Blk(Int(1), Int(2)), NodeBlock},
		{For(Var("i", Int(0)), Bin("<", ID("i"), Int(3)), Assign("i", Bin("+", ID("i"), Int(1))), Blk()), NodeForLoop},
		{While(Bin("<", ID("i"), Int(3)), Blk()), NodeWhileLoop},
		{Print(Int(1)), NodePrintExpression},
		{Call("max", Int(1), Int(2)), NodeFunctionCall},
		{Def("f", []string{"a"}, Ret(ID("a"))), NodeFunctionDefinition},
		{Ret(Int(1)), NodeReturnStatement},
	}
	for _, tc := range cases {
		if got := tc.node.NodeType(); got != tc.want {
			t.Fatalf("NodeType = %q, want %q", got, tc.want)
		}
	}
}

func TestLiteralHelpersKeepSourceText(t *testing.T) {
	if got := Int(42).Text; got != "42" {
		t.Fatalf("Int(42).Text = %q, want 42", got)
	}
	if got := IntText("123456789012345678901234567890").Text; got != "123456789012345678901234567890" {
		t.Fatalf("IntText lost digits: %q", got)
	}
	if got := Flt(3.14).Text; got != "3.14" {
		t.Fatalf("Flt(3.14).Text = %q, want 3.14", got)
	}
	if got := FltText("10.").Text; got != "10." {
		t.Fatalf("FltText(10.).Text = %q, want 10.", got)
	}
}

func TestMarshalCarriesTypeDiscriminator(t *testing.T) {
	node := Bin("+", Int(5), ID("x"))
	data, err := json.Marshal(node)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`"type":"BinaryExpression"`,
		`"type":"IntegerLiteral"`,
		`"type":"Identifier"`,
		`"operator":"+"`,
		`"text":"5"`,
		`"name":"x"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("marshaled node missing %s: %s", want, out)
		}
	}
}

func TestMarshalOmitsAbsentElseBranches(t *testing.T) {
	data, err := json.Marshal(If(Int(1), Int(2)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	if strings.Contains(out, `"elseIfs"`) || strings.Contains(out, `"else"`) {
		t.Fatalf("absent branches should be omitted: %s", out)
	}
}

func TestDefBuildsParameterIdentifiers(t *testing.T) {
	def := Def("add", []string{"a", "b"}, Ret(Bin("+", ID("a"), ID("b"))))
	if def.Name.Name != "add" {
		t.Fatalf("name = %q", def.Name.Name)
	}
	if len(def.Params) != 2 || def.Params[0].Name != "a" || def.Params[1].Name != "b" {
		t.Fatalf("params = %#v", def.Params)
	}
}
