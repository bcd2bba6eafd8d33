// Package smartenter adapts the repair engine to Java: it converts the
// tolerant parser's tree into a syntax.Tree, classifies Java node kinds and
// provides the Java repair rules and completion actions.
package smartenter

import (
	"github.com/dhamidi/smartenter/java/parser"
	"github.com/dhamidi/smartenter/repair"
	"github.com/dhamidi/smartenter/syntax"
)

var (
	statementKinds = kinds(
		parser.KindEmptyStmt, parser.KindExprStmt, parser.KindIfStmt, parser.KindForStmt,
		parser.KindEnhancedForStmt, parser.KindWhileStmt, parser.KindDoStmt,
		parser.KindSwitchStmt, parser.KindReturnStmt, parser.KindBreakStmt,
		parser.KindContinueStmt, parser.KindThrowStmt, parser.KindTryStmt,
		parser.KindSynchronizedStmt, parser.KindAssertStmt, parser.KindLabeledStmt,
		parser.KindLocalVarDecl, parser.KindLocalClassDecl, parser.KindYieldStmt,
		parser.KindSwitchLabel, parser.KindSwitchRule, parser.KindForInit, parser.KindForUpdate,
	)
	classKinds = kinds(
		parser.KindClassDecl, parser.KindInterfaceDecl, parser.KindEnumDecl,
		parser.KindRecordDecl, parser.KindAnnotationDecl,
	)
	methodKinds = kinds(parser.KindMethodDecl, parser.KindConstructorDecl)
	memberKinds = classKinds.Or(methodKinds).Or(kinds(
		parser.KindFieldDecl, parser.KindEnumConstant, parser.KindInitializer,
		parser.KindModuleDirective,
	))
)

// Grammar returns the Java kind classification for the repair engine.
func Grammar() *repair.Grammar {
	return &repair.Grammar{
		Statement:  statementKinds,
		Comment:    kinds(parser.KindComment, parser.KindLineComment),
		Whitespace: kinds(parser.KindWhitespace),
		CodeBlock:  kinds(parser.KindBlock, parser.KindSwitchBody),
		Member:     memberKinds,
		Import:     kinds(parser.KindImportDecl),
		Package:    kinds(parser.KindPackageDecl),
		Annotation: kinds(parser.KindAnnotation),
		ClassLike:  classKinds,
		MethodLike: methodKinds,
		Ternary:    kinds(parser.KindTernaryExpr),
		ForLoop:    kinds(parser.KindForStmt),

		IsClosingBrace: func(t *syntax.Tree, leaf syntax.NodeID) bool {
			return tokenOf(t, leaf) == parser.TokenRBrace
		},
		BraceTerminated: braceTerminated,
		ForInitializer:  forInitializer,
		Condition:       condition,
		Body:            body,
		KindName: func(k syntax.Kind) string {
			return parser.NodeKind(k).String()
		},
	}
}

// braceTerminated accepts the nodes whose closing brace does not end a
// statement: anonymous class bodies, array initialisers, lambda and switch
// expression bodies, and the body of a do loop that still lacks its while.
func braceTerminated(t *syntax.Tree, id syntax.NodeID) bool {
	parent := kindOf(t, t.Parent(id))
	switch kindOf(t, id) {
	case parser.KindArrayInit:
		return true
	case parser.KindClassBody:
		return parent == parser.KindNewExpr
	case parser.KindSwitchBody:
		return parent == parser.KindSwitchExpr
	case parser.KindBlock:
		switch parent {
		case parser.KindLambdaExpr:
			return true
		case parser.KindDoStmt:
			return tokenChild(t, t.Parent(id), parser.TokenWhile) == syntax.NoNode
		}
	}
	return false
}

func forInitializer(t *syntax.Tree, forLoop syntax.NodeID) syntax.NodeID {
	open := tokenChild(t, forLoop, parser.TokenLParen)
	if open == syntax.NoNode {
		return syntax.NoNode
	}
	init := next(t, forLoop, open)
	switch kindOf(t, init) {
	case parser.KindLocalVarDecl, parser.KindForInit:
		return init
	}
	return syntax.NoNode
}

// condition returns the parenthesised header expression of a control
// statement. It may be a missing placeholder.
func condition(t *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	switch kindOf(t, id) {
	case parser.KindForStmt:
		first := semicolons(t, id)[0]
		if first == syntax.NoNode {
			return syntax.NoNode
		}
		c := next(t, id, first)
		if c == syntax.NoNode || kindOf(t, c) == parser.KindForUpdate || slotOf(t, c) == parser.TokenSemicolon {
			return syntax.NoNode
		}
		return c
	case parser.KindIfStmt, parser.KindWhileStmt, parser.KindDoStmt, parser.KindSwitchStmt,
		parser.KindSwitchExpr, parser.KindSynchronizedStmt, parser.KindCatchClause:
		open := slot(t, id, parser.TokenLParen)
		if open == syntax.NoNode {
			return syntax.NoNode
		}
		return next(t, id, open)
	}
	return syntax.NoNode
}

// body returns the statement, block or class body a construct controls.
func body(t *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	switch kindOf(t, id) {
	case parser.KindIfStmt:
		close := slot(t, id, parser.TokenRParen)
		if close == syntax.NoNode {
			return syntax.NoNode
		}
		return next(t, id, close)
	case parser.KindWhileStmt, parser.KindForStmt, parser.KindEnhancedForStmt, parser.KindLambdaExpr,
		parser.KindLabeledStmt:
		return lastChild(t, id)
	case parser.KindDoStmt:
		return next(t, id, tokenChild(t, id, parser.TokenDo))
	case parser.KindTryStmt, parser.KindCatchClause, parser.KindFinallyClause, parser.KindSynchronizedStmt,
		parser.KindMethodDecl, parser.KindConstructorDecl, parser.KindInitializer:
		return bodySlot(t, id, parser.KindBlock)
	case parser.KindSwitchStmt, parser.KindSwitchExpr:
		return bodySlot(t, id, parser.KindSwitchBody)
	case parser.KindClassDecl, parser.KindInterfaceDecl, parser.KindEnumDecl, parser.KindRecordDecl,
		parser.KindAnnotationDecl:
		return bodySlot(t, id, parser.KindClassBody)
	case parser.KindSwitchRule:
		arrow := tokenChild(t, id, parser.TokenArrow)
		if arrow == syntax.NoNode {
			return syntax.NoNode
		}
		return next(t, id, arrow)
	}
	return syntax.NoNode
}

// bodySlot returns the first child of kind k, or the placeholder standing
// for a missing opening brace.
func bodySlot(t *syntax.Tree, id syntax.NodeID, k parser.NodeKind) syntax.NodeID {
	for _, c := range t.Children(id) {
		if kindOf(t, c) == k || missingWith(t, c, "expected {") {
			return c
		}
	}
	return syntax.NoNode
}

// semicolons returns the two header separators of a for loop; either may
// be a missing placeholder, or NoNode when the header has no parentheses.
func semicolons(t *syntax.Tree, forLoop syntax.NodeID) [2]syntax.NodeID {
	out := [2]syntax.NodeID{syntax.NoNode, syntax.NoNode}
	i := 0
	for _, c := range t.Children(forLoop) {
		if i < 2 && slotOf(t, c) == parser.TokenSemicolon {
			out[i] = c
			i++
		}
	}
	return out
}

// slotOf returns the token kind a leaf holds or stands for.
func slotOf(t *syntax.Tree, id syntax.NodeID) parser.TokenKind {
	if tk := tokenOf(t, id); tk != parser.TokenEOF {
		return tk
	}
	if !isMissing(t, id) {
		return parser.TokenEOF
	}
	for _, tk := range []parser.TokenKind{parser.TokenSemicolon, parser.TokenLParen, parser.TokenRParen,
		parser.TokenLBrace, parser.TokenRBrace, parser.TokenRBracket, parser.TokenColon, parser.TokenArrow} {
		if isMissingToken(t, id, tk) {
			return tk
		}
	}
	return parser.TokenEOF
}
