package parser

import (
	"strings"
	"testing"
)

func TestNodeKindNames(t *testing.T) {
	seen := map[string]NodeKind{}
	for _, k := range NodeKinds() {
		name := k.String()
		if name == "Unknown" {
			t.Errorf("NodeKind(%d) has no name", k)
			continue
		}
		if prev, ok := seen[name]; ok {
			t.Errorf("%q names both %d and %d", name, prev, k)
		}
		seen[name] = k
	}
	if got := NodeKind(9999).String(); got != "Unknown" {
		t.Errorf("NodeKind(9999).String() = %q", got)
	}
}

func TestNodeIsExpression(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want bool
	}{
		{KindIdentifier, true},
		{KindLiteral, true},
		{KindLambdaExpr, true},
		{KindSwitchExpr, true},
		{KindTernaryExpr, true},
		{KindWhitespace, false},
		{KindExprStmt, false},
		{KindSwitchRule, false},
		{KindArguments, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.IsExpression(); got != tt.want {
				t.Errorf("IsExpression() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNodeAddChildSkipsNil(t *testing.T) {
	decl := &Node{Kind: KindRecordDecl}
	decl.AddChild(nil) // no modifiers
	decl.AddChild(&Node{Kind: KindToken})
	if len(decl.Children) != 1 {
		t.Errorf("got %d children, want 1", len(decl.Children))
	}
}

func TestNodeMissing(t *testing.T) {
	at := Position{Offset: 9, Line: 1, Column: 10}
	missing := &Node{Kind: KindError, Span: Span{Start: at, End: at}, Error: &Error{Message: "expected )"}}
	stray := &Node{Kind: KindError, Span: Span{Start: at, End: Position{Offset: 10}}}
	stray.AddChild(&Node{Kind: KindToken, Token: &Token{Kind: TokenRParen, Literal: ")"}})

	if !missing.IsMissing() || !missing.IsLeaf() {
		t.Error("a zero-width error leaf is a missing placeholder")
	}
	if stray.IsMissing() {
		t.Error("an error node wrapping a token is not missing")
	}
	if !stray.IsError() || stray.IsLeaf() {
		t.Error("a stray token is an error with a child")
	}

	stmt := &Node{Kind: KindIfStmt}
	stmt.AddChild(&Node{Kind: KindToken, Token: &Token{Kind: TokenIf, Literal: "if"}})
	if stmt.HasError() {
		t.Error("no error yet")
	}
	stmt.AddChild(missing)
	if !stmt.HasError() {
		t.Error("HasError does not see the missing parenthesis")
	}
}

func TestNewLeaf(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		kind NodeKind
		err  string
	}{
		{"identifier", Token{Kind: TokenIdent, Literal: "foo"}, KindIdentifier, ""},
		{"keyword", Token{Kind: TokenWhile, Literal: "while"}, KindToken, ""},
		{"string", Token{Kind: TokenStringLiteral, Literal: `"a"`}, KindLiteral, ""},
		{"open string", Token{Kind: TokenStringLiteral, Literal: `"a`, Unterminated: true}, KindLiteral, "unterminated literal"},
		{"open text block", Token{Kind: TokenTextBlock, Literal: `"""` + "\n", Unterminated: true}, KindLiteral, "unterminated literal"},
		{"line comment", Token{Kind: TokenLineComment, Literal: "// x"}, KindLineComment, ""},
		{"whitespace", Token{Kind: TokenWhitespace, Literal: "\n  "}, KindWhitespace, ""},
		{"bad character", Token{Kind: TokenError, Literal: "#"}, KindError, "unexpected character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newLeaf(tt.tok)
			if n.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", n.Kind, tt.kind)
			}
			var msg string
			if n.Error != nil {
				msg = n.Error.Message
				if n.Error.Got == nil || n.Error.Got.Literal != tt.tok.Literal {
					t.Errorf("error does not carry the token")
				}
			}
			if msg != tt.err {
				t.Errorf("error = %q, want %q", msg, tt.err)
			}
			if n.TokenLiteral() != tt.tok.Literal {
				t.Errorf("TokenLiteral() = %q", n.TokenLiteral())
			}
		})
	}
}

func TestNodeStringShowsErrors(t *testing.T) {
	node := Parse([]byte("class A { void m() { foo( } }"))
	out := node.StringWithPositions()
	if !strings.Contains(out, "ERROR: expected )") {
		t.Errorf("missing parenthesis not shown:\n%s", out)
	}
	call := findNode(node, KindCallExpr)
	if call == nil {
		t.Fatal("expected a call")
	}
	if got := call.FirstChildOfKind(KindArguments); got == nil || !got.HasError() {
		t.Errorf("arguments = %v", got)
	}
	if got := call.ChildrenOfKind(KindArguments); len(got) != 1 {
		t.Errorf("got %d argument lists", len(got))
	}
}
