package lexer

import (
	"strings"
	"testing"
)

func mustLex(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := Lex(source)
	if err != nil {
		t.Fatalf("Lex(%q) returned error: %v", source, err)
	}
	return tokens
}

func TestLexArithmeticExpression(t *testing.T) {
	tokens := mustLex(t, "5 + 3")
	want := []Token{
		{Kind: TokenInt, Text: "5"},
		{Kind: TokenOperator, Text: "+"},
		{Kind: TokenInt, Text: "3"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(tokens), len(want), tokens)
	}
	for i, tok := range tokens {
		if tok != want[i] {
			t.Fatalf("token %d = %v, want %v", i, tok, want[i])
		}
	}
}

func TestLexNumberClassification(t *testing.T) {
	cases := []struct {
		source string
		kind   TokenKind
		text   string
	}{
		{"42", TokenInt, "42"},
		{"0", TokenInt, "0"},
		{"3.14", TokenFloat, "3.14"},
		{"10.", TokenFloat, "10."},
	}
	for _, tc := range cases {
		tokens := mustLex(t, tc.source)
		if len(tokens) != 1 {
			t.Fatalf("Lex(%q) = %v, want single token", tc.source, tokens)
		}
		if tokens[0].Kind != tc.kind || tokens[0].Text != tc.text {
			t.Fatalf("Lex(%q) = %v, want {%v %q}", tc.source, tokens[0], tc.kind, tc.text)
		}
	}
}

func TestLexInvalidNumberAbortsWholeLex(t *testing.T) {
	tokens, err := Lex("1 + 1.2.3")
	if err == nil {
		t.Fatalf("expected error for literal with two dots, got tokens %v", tokens)
	}
	var lexErr *LexError
	if le, ok := err.(*LexError); ok {
		lexErr = le
	} else {
		t.Fatalf("expected *LexError, got %T: %v", err, err)
	}
	if !strings.Contains(lexErr.Message, "1.2.3") {
		t.Fatalf("error should name the whole malformed run, got %q", lexErr.Message)
	}
	if tokens != nil {
		t.Fatalf("expected no tokens alongside error, got %v", tokens)
	}
}

func TestLexTwoCharOperatorsAreGreedy(t *testing.T) {
	cases := map[string]string{
		"a <= b":  "<=",
		"a >= b":  ">=",
		"a == b":  "==",
		"a != b":  "!=",
		"a ** b":  "**",
		"2**3":    "**",
		"x<=10":   "<=",
		"x <ten>": "<",
	}
	for source, op := range cases {
		tokens := mustLex(t, source)
		found := false
		for _, tok := range tokens {
			if tok.Kind == TokenOperator && tok.Text == op {
				found = true
			}
		}
		if !found {
			t.Fatalf("Lex(%q): operator %q missing from %v", source, op, tokens)
		}
	}
}

func TestLexDoubleStarNotSplit(t *testing.T) {
	tokens := mustLex(t, "2 ** 3")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %v", tokens)
	}
	if tokens[1].Text != "**" {
		t.Fatalf("middle token = %v, want **", tokens[1])
	}
}

func TestLexWordTokens(t *testing.T) {
	tokens := mustLex(t, "var foo_1 = _bar + while")
	wantTexts := []string{"var", "foo_1", "=", "_bar", "+", "while"}
	if len(tokens) != len(wantTexts) {
		t.Fatalf("token count = %d, want %d (%v)", len(tokens), len(wantTexts), tokens)
	}
	for i, text := range wantTexts {
		if tokens[i].Text != text {
			t.Fatalf("token %d = %q, want %q", i, tokens[i].Text, text)
		}
	}
	// Reserved words and identifiers share one token kind.
	for _, i := range []int{0, 1, 3, 5} {
		if tokens[i].Kind != TokenKeyword {
			t.Fatalf("token %d kind = %v, want Keyword", i, tokens[i].Kind)
		}
	}
}

func TestLexDelimiters(t *testing.T) {
	tokens := mustLex(t, "( ) { } [ ] ; ,")
	wantKinds := []TokenKind{
		TokenParen, TokenParen,
		TokenOperator, TokenOperator,
		TokenOperator, TokenOperator,
		TokenOperator, TokenOperator,
	}
	if len(tokens) != len(wantKinds) {
		t.Fatalf("token count = %d, want %d", len(tokens), len(wantKinds))
	}
	for i, kind := range wantKinds {
		if tokens[i].Kind != kind {
			t.Fatalf("token %d (%q) kind = %v, want %v", i, tokens[i].Text, tokens[i].Kind, kind)
		}
	}
}

func TestLexUnexpectedCharacter(t *testing.T) {
	for _, source := range []string{"5 @ 3", "a & b", ".5"} {
		if _, err := Lex(source); err == nil {
			t.Fatalf("Lex(%q): expected unexpected-character error", source)
		}
	}
}

func TestLexSkipsWhitespace(t *testing.T) {
	tokens := mustLex(t, "\n\t 1 \r\n +\t2 ")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %v", tokens)
	}
}

func TestLexEmptySource(t *testing.T) {
	tokens := mustLex(t, "")
	if len(tokens) != 0 {
		t.Fatalf("expected no tokens for empty source, got %v", tokens)
	}
}

func TestLexWholeStatement(t *testing.T) {
	tokens := mustLex(t, "for ( var i = 0; i < 3; i = i + 1 ) { sum = sum + i }")
	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	joined := strings.Join(texts, " ")
	want := "for ( var i = 0 ; i < 3 ; i = i + 1 ) { sum = sum + i }"
	if joined != want {
		t.Fatalf("token texts = %q, want %q", joined, want)
	}
}
