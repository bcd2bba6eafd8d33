// Package parser provides an error-tolerant parser for Java source code.
//
// # Overview
//
// The parser produces a concrete syntax tree (CST) for possibly incomplete
// input. It is built for editor tooling that runs on every keystroke, so it
// never gives up: whatever the input, Finish returns a tree that covers it.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (CST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	                                        ┌─────────────┐
//	                                        │   Trivia    │
//	                                        │  attachment │
//	                                        └─────────────┘
//
// # Tree shape
//
// Every significant token is a leaf: keywords and punctuation are
// KindToken, names are KindIdentifier and literals are KindLiteral. Inner
// nodes group leaves into declarations, statements and expressions.
//
// Something the grammar requires but the input lacks becomes a zero-width
// KindError leaf placed at the end of the preceding token:
//
//	if (x > 0
//
//	IfStmt
//	  Token if
//	  Token (
//	  BinaryExpr
//	    Identifier x
//	    Token >
//	    Literal 0
//	  Error ERROR: expected )
//	  Error ERROR: expected statement
//
// Tokens that fit nowhere are wrapped in non-empty KindError nodes. A
// statement never consumes a closing brace it did not open, so a broken
// statement does not swallow the rest of its block.
//
// Literals that run into the end of their line carry an Error with the
// message "unterminated literal" and Token.Unterminated set.
//
// # Trivia
//
// With WithTrivia, whitespace and comments are kept as KindWhitespace,
// KindComment and KindLineComment leaves. Each goes to the deepest node
// whose span strictly contains it, so the concatenated leaves of the root
// reproduce the input byte for byte.
//
// # Usage
//
//	p := parser.ParseCompilationUnit(r, parser.WithFile("Main.java"), parser.WithTrivia())
//	root := p.Finish()
//
// Parse is a shorthand for byte slices. ParseExpression parses a single
// expression instead of a compilation unit.
//
// # Source Context
//
// Every node carries a Span of two Positions with a byte offset, a 1-based
// line and a 1-based byte column.
package parser
