package parser

import (
	"testing"
)

func TestTokenKindNames(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenWhitespace, "Whitespace"},
		{TokenLineComment, "LineComment"},
		{TokenTextBlock, "TextBlock"},
		{TokenRParen, ")"},
		{TokenRBrace, "}"},
		{TokenRBracket, "]"},
		{TokenSemicolon, ";"},
		{TokenColon, ":"},
		{TokenArrow, "->"},
		{TokenKind(9999), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

// Missing placeholders are matched by message, so the punctuation names
// must stay what the parser writes after "expected ".
func TestMissingMessagesUseTokenNames(t *testing.T) {
	node := Parse([]byte("class A { void m() { int[] a = new int[1; } }"))
	found := false
	walk(node, func(n *Node) {
		if n.IsMissing() && n.Error.Message == "expected "+TokenRBracket.String() {
			found = true
			if len(n.Error.Expected) != 1 || n.Error.Expected[0] != TokenRBracket {
				t.Errorf("expected = %v", n.Error.Expected)
			}
		}
	})
	if !found {
		t.Errorf("no missing ]:\n%s", node)
	}
}

func TestLookupContextualKeywords(t *testing.T) {
	// record, yield, sealed, var and when are identifiers to the lexer
	for _, ident := range []string{"record", "yield", "sealed", "var", "when", "permits"} {
		if got := LookupKeyword(ident); got != TokenIdent {
			t.Errorf("LookupKeyword(%q) = %v, want identifier", ident, got)
		}
		if !IsContextualKeyword(ident) {
			t.Errorf("%q is not contextual", ident)
		}
	}
	for ident, want := range map[string]TokenKind{
		"synchronized": TokenSynchronized,
		"instanceof":   TokenInstanceof,
		"default":      TokenDefault,
	} {
		if got := LookupKeyword(ident); got != want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", ident, got, want)
		}
	}
}

func TestTokenTrivia(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want bool
	}{
		{TokenWhitespace, true},
		{TokenComment, true},
		{TokenLineComment, true},
		{TokenIdent, false},
		{TokenError, false},
		{TokenEOF, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := (Token{Kind: tt.kind}).IsTrivia(); got != tt.want {
				t.Errorf("IsTrivia() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenLenAndPosition(t *testing.T) {
	lexer := NewLexer([]byte("if\n  \"abc"), "A.java")
	lexer.NextToken()
	lexer.NextToken()
	tok := lexer.NextToken()
	if tok.Kind != TokenStringLiteral || !tok.Unterminated {
		t.Fatalf("got %v unterminated=%v", tok.Kind, tok.Unterminated)
	}
	if tok.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tok.Len())
	}
	if got := tok.Span.Start.String(); got != "A.java:2:3" {
		t.Errorf("start = %s", got)
	}
	if got := (Position{Line: 2, Column: 3}).String(); got != "2:3" {
		t.Errorf("position without file = %s", got)
	}
}
