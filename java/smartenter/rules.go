package smartenter

import (
	"strings"

	"github.com/dhamidi/smartenter/java/parser"
	"github.com/dhamidi/smartenter/repair"
	"github.com/dhamidi/smartenter/syntax"
	"github.com/dhamidi/smartenter/text"
)

// Rules returns the Java repair rules in the order they must run. A nil
// resolver closes unterminated calls at their syntactic end.
func Rules(r Resolver) []repair.Rule {
	return []repair.Rule{
		{Name: "unterminated-literal", Apply: closeLiteral},
		{Name: "missing-call-paren", Apply: callParen(r)},
		{Name: "for-update", Apply: forUpdate},
		{Name: "control-header", Apply: controlHeader},
		{Name: "ternary-colon", Apply: ternaryColon},
		{Name: "switch-label-colon", Apply: switchLabelColon},
		{Name: "missing-body", Apply: missingBody},
		{Name: "missing-return-value", Apply: missingReturnValue},
		{Name: "trailing-separator", Apply: trailingSeparator},
		{Name: "list-closer", Apply: listCloser},
	}
}

// appendAt inserts str at offset. When only blanks follow offset on its
// line they are replaced.
func appendAt(s *repair.Session, offset int, str string) error {
	src := s.Buffer().Bytes()
	tail := text.ShiftForward(src, offset, " \t")
	if tail < len(src) && src[tail] != '\n' && src[tail] != '\r' {
		tail = offset
	}
	return s.Replace(offset, tail, str)
}

// afterBlanks skips spaces and tabs from offset.
func afterBlanks(s *repair.Session, offset int) int {
	return text.ShiftForward(s.Buffer().Bytes(), offset, " \t")
}

func separator(s *repair.Session) string {
	if s.Style().SpaceAfterSemicolon {
		return "; "
	}
	return ";"
}

func closeLiteral(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	if kindOf(t, id) != parser.KindLiteral || t.Node(id).Err != "unterminated literal" {
		return nil
	}
	from, to := t.Range(id)
	switch tokenOf(t, id) {
	case parser.TokenStringLiteral:
		return s.Insert(to, `"`)
	case parser.TokenCharLiteral:
		return s.Insert(to, "'")
	case parser.TokenTextBlock:
		// a text block runs to the end of input, so it is closed on the
		// caret's line
		buf := s.Buffer()
		caret := s.Caret()
		if caret <= from || caret > to {
			return s.Insert(to, `"""`)
		}
		if buf.Line(caret) == buf.Line(from) {
			return s.Insert(buf.LineEnd(caret), "\n"+buf.LineIndent(from)+`"""`)
		}
		return s.Insert(buf.LineEnd(caret), `"""`)
	}
	return nil
}

func isCall(k parser.NodeKind) bool {
	switch k {
	case parser.KindCallExpr, parser.KindNewExpr, parser.KindExplicitConstructorInvocation:
		return true
	}
	return false
}

// elements returns the entries of a bracketed list or body, including a
// missing entry after a trailing comma but not its delimiters.
func elements(t *syntax.Tree, list syntax.NodeID) []syntax.NodeID {
	var out []syntax.NodeID
	for _, c := range significant(t, list) {
		switch slotOf(t, c) {
		case parser.TokenLParen, parser.TokenRParen, parser.TokenLBrace, parser.TokenRBrace,
			parser.TokenComma, parser.TokenSemicolon:
			continue
		}
		out = append(out, c)
	}
	return out
}

// openArguments returns the argument list of a call when it lacks its
// closing parenthesis.
func openArguments(t *syntax.Tree, call syntax.NodeID) syntax.NodeID {
	if !isCall(kindOf(t, call)) {
		return syntax.NoNode
	}
	args := t.Child(call, kinds(parser.KindArguments))
	if args == syntax.NoNode || !isMissingToken(t, lastChild(t, args), parser.TokenRParen) {
		return syntax.NoNode
	}
	return args
}

func callParen(r Resolver) func(*repair.Session, syntax.NodeID) error {
	return func(s *repair.Session, id syntax.NodeID) error {
		t := s.Tree()
		if !isCall(kindOf(t, id)) {
			return nil
		}
		args := t.Child(id, kinds(parser.KindArguments))
		if args == syntax.NoNode {
			if m := lastChild(t, id); missingWith(t, m, "expected (") {
				return appendAt(s, start(t, m), "()")
			}
			return nil
		}
		elems := elements(t, args)
		if !isMissingToken(t, lastChild(t, args), parser.TokenRParen) {
			if n := len(elems); n > 0 && isMissing(t, elems[n-1]) {
				s.RegisterError(afterBlanks(s, start(t, elems[n-1])))
			}
			return nil
		}

		open := tokenChild(t, args, parser.TokenLParen)
		n := len(elems)
		switch {
		case n == 0:
			return appendAt(s, end(t, open), ")")
		case !sameLine(t, end(t, open), start(t, elems[0])):
			return s.Insert(end(t, open), ")")
		case isMissing(t, elems[n-1]):
			at := start(t, elems[n-1])
			if err := appendAt(s, at, " )"); err != nil {
				return err
			}
			s.RegisterError(at + 1)
			return nil
		}
		if k := keep(t, r, id, args, n); k < n {
			at := end(t, open)
			if k > 0 {
				at = textEnd(t, elems[k-1])
			}
			return s.Insert(at, ")")
		}
		return appendAt(s, textEnd(t, args), ")")
	}
}

// keep decides how many of a call's n arguments belong to it. Arguments
// the call cannot take are left to an enclosing unterminated call that can.
func keep(t *syntax.Tree, r Resolver, call, args syntax.NodeID, n int) int {
	if r == nil {
		return n
	}
	own := r.Arities(t, call)
	if len(own) == 0 || accepts(own, n) {
		return n
	}
	list := t.Parent(call)
	if kindOf(t, list) != parser.KindArguments || openArguments(t, t.Parent(list)) != list {
		return n
	}
	outer := r.Arities(t, t.Parent(list))
	before := 0
	for _, e := range elements(t, list) {
		if e == call {
			break
		}
		before++
	}
	for k := n - 1; k >= 0; k-- {
		if accepts(own, k) && (len(outer) == 0 || accepts(outer, before+1+n-k)) {
			return k
		}
	}
	return n
}

func accepts(as []Arity, n int) bool {
	for _, a := range as {
		if a.Accepts(n) {
			return true
		}
	}
	return false
}

// headerHasError reports whether anything before the body of a for loop
// carries an error.
func headerHasError(t *syntax.Tree, forLoop syntax.NodeID) bool {
	close := slot(t, forLoop, parser.TokenRParen)
	for _, c := range t.Children(forLoop) {
		if t.HasError(c) {
			return true
		}
		if c == close {
			break
		}
	}
	return false
}

// forUpdate puts the error offset into the first empty clause of a for
// header whose separator is missing, inserting the separator after a
// clause that is already there.
func forUpdate(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	if kindOf(t, id) != parser.KindForStmt {
		return nil
	}
	open := tokenChild(t, id, parser.TokenLParen)
	if open == syntax.NoNode {
		return nil
	}
	close := slot(t, id, parser.TokenRParen)
	caret := s.Caret()
	inHeader := caret >= end(t, open) && (isMissing(t, close) || caret <= start(t, close))
	if !inHeader && !headerHasError(t, id) {
		return nil
	}

	semi := semicolons(t, id)
	if semi[0] == syntax.NoNode || semi[1] == syntax.NoNode {
		return nil
	}
	if isMissing(t, semi[0]) {
		init := forInitializer(t, id)
		if isEmpty(t, init) {
			s.RegisterError(end(t, open))
			return nil
		}
		return terminateClause(s, textEnd(t, init))
	}
	if isMissing(t, semi[1]) {
		cond := condition(t, id)
		if isEmpty(t, cond) {
			s.RegisterError(afterBlanks(s, end(t, semi[0])))
			return nil
		}
		return terminateClause(s, textEnd(t, cond))
	}
	if update := next(t, id, semi[1]); kindOf(t, update) == parser.KindForUpdate && isEmpty(t, update) {
		s.RegisterError(afterBlanks(s, end(t, semi[1])))
	}
	return nil
}

func terminateClause(s *repair.Session, at int) error {
	sep := separator(s)
	if err := appendAt(s, at, sep); err != nil {
		return err
	}
	s.RegisterError(at + len(sep))
	return nil
}

func controlHeader(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	switch kindOf(t, id) {
	case parser.KindIfStmt:
		done, err := parens(s, id, skeleton(s, id))
		if err != nil || !done {
			return err
		}
		close := slot(t, id, parser.TokenRParen)
		if missingWith(t, body(t, id), "expected statement") {
			s.RegisterError(end(t, close))
		}
		return nil
	case parser.KindWhileStmt, parser.KindSwitchStmt, parser.KindSwitchExpr,
		parser.KindSynchronizedStmt, parser.KindCatchClause:
		_, err := parens(s, id, skeleton(s, id))
		return err
	case parser.KindForStmt, parser.KindEnhancedForStmt:
		return forHeader(s, id)
	case parser.KindDoStmt:
		return doWhile(s, id)
	}
	return nil
}

// parens repairs the parenthesised condition of a header and reports
// whether it was already complete. skeleton is used when there is neither
// an opening parenthesis nor a condition.
func parens(s *repair.Session, id syntax.NodeID, skeleton func() error) (bool, error) {
	t := s.Tree()
	open := slot(t, id, parser.TokenLParen)
	close := slot(t, id, parser.TokenRParen)
	if open == syntax.NoNode || close == syntax.NoNode {
		return false, nil
	}
	cond := next(t, id, open)
	empty := cond == close || isEmpty(t, cond)

	switch {
	case isMissing(t, open) && empty:
		return false, skeleton()
	case isMissing(t, open):
		if err := s.Insert(textEnd(t, cond), ")"); err != nil {
			return false, err
		}
		return false, s.Insert(start(t, cond), "(")
	case isMissing(t, close) && empty:
		if err := appendAt(s, end(t, open), ")"); err != nil {
			return false, err
		}
		s.RegisterError(end(t, open))
		return false, nil
	case isMissing(t, close):
		return false, appendAt(s, textEnd(t, cond), ")")
	case empty:
		s.RegisterError(end(t, open))
		return false, nil
	}
	return true, nil
}

// skeleton replaces a header that has no parentheses with `keyword ()`,
// keeping comments that were on it, and puts the error offset inside.
func skeleton(s *repair.Session, id syntax.NodeID) func() error {
	return func() error {
		t := s.Tree()
		buf := s.Buffer()
		kw := t.FirstLeaf(id, trivia)
		from := start(t, id)
		to := min(buf.LineEnd(from), textEnd(t, id))
		if b := body(t, id); b != syntax.NoNode && !isEmpty(t, b) {
			to = min(to, start(t, b))
		}
		to = max(end(t, kw), text.ShiftBackward(buf.Bytes(), to-1, " \t")+1)

		var comments []string
		t.Walk(id, func(n syntax.NodeID) bool {
			a, b := t.Range(n)
			if b <= from || a >= to {
				return false
			}
			if k := kindOf(t, n); k == parser.KindComment || k == parser.KindLineComment {
				comments = append(comments, t.Text(n))
			}
			return true
		})

		head := t.Text(kw) + " ("
		repl := head + ")"
		if len(comments) > 0 {
			repl += " " + strings.Join(comments, " ")
		}
		if err := s.Replace(from, to, repl); err != nil {
			return err
		}
		s.RegisterError(from + len(head))
		return nil
	}
}

// forHeader closes a for header after its last token and the blanks that
// follow it.
func forHeader(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	open := slot(t, id, parser.TokenLParen)
	if open == syntax.NoNode {
		return nil
	}
	if isMissing(t, open) {
		return skeleton(s, id)()
	}
	close := slot(t, id, parser.TokenRParen)
	if !isMissing(t, close) {
		return nil
	}
	return s.Insert(afterBlanks(s, start(t, close)), ")")
}

// doWhile appends the missing while of a do loop, or repairs its condition.
func doWhile(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	b := body(t, id)
	if b == syntax.NoNode || isMissing(t, b) {
		return nil
	}
	w := tokenChild(t, id, parser.TokenWhile)
	if w == syntax.NoNode {
		at := end(t, b)
		if err := appendAt(s, at, " while()"); err != nil {
			return err
		}
		s.RegisterError(at + len(" while("))
		return nil
	}
	_, err := parens(s, id, func() error {
		at := end(t, w)
		if err := appendAt(s, at, "()"); err != nil {
			return err
		}
		s.RegisterError(at + 1)
		return nil
	})
	return err
}

func ternaryColon(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	if kindOf(t, id) != parser.KindTernaryExpr {
		return nil
	}
	q := tokenChild(t, id, parser.TokenQuestion)
	then := next(t, id, q)
	if then == syntax.NoNode || isMissing(t, then) {
		s.RegisterError(afterBlanks(s, end(t, q)))
		return nil
	}
	colon := next(t, id, then)
	if isMissingToken(t, colon, parser.TokenColon) {
		at := textEnd(t, then)
		if err := appendAt(s, at, " : "); err != nil {
			return err
		}
		s.RegisterError(at + len(" : "))
		return nil
	}
	if els := next(t, id, colon); els == syntax.NoNode || isMissing(t, els) {
		s.RegisterError(afterBlanks(s, end(t, colon)))
	}
	return nil
}

// arrowStyle reports whether a switch body uses `case ... ->` rules.
func arrowStyle(t *syntax.Tree, switchBody syntax.NodeID) bool {
	return t.Child(switchBody, kinds(parser.KindSwitchRule)) != syntax.NoNode
}

func switchLabelColon(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	if kindOf(t, id) != parser.KindSwitchLabel {
		return nil
	}
	m := lastChild(t, id)
	if !missingWith(t, m, "expected :") {
		return nil
	}
	sep := ":"
	if arrowStyle(t, t.Parent(id)) {
		sep = " ->"
	}
	cs := significant(t, id)
	if len(cs) > 1 && tokenOf(t, cs[0]) == parser.TokenCase && isMissing(t, cs[1]) {
		at := end(t, cs[0])
		if err := appendAt(s, at, " "+strings.TrimSpace(sep)); err != nil {
			return err
		}
		s.RegisterError(at + 1)
		return nil
	}
	return appendAt(s, start(t, m), sep)
}

func missingBody(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	k := kindOf(t, id)
	switch k {
	case parser.KindWhileStmt, parser.KindForStmt, parser.KindEnhancedForStmt:
		if isMissing(t, slot(t, id, parser.TokenRParen)) {
			return nil
		}
		if b := body(t, id); missingWith(t, b, "expected statement") {
			return appendAt(s, start(t, b), " {}")
		}
	case parser.KindDoStmt:
		if b := body(t, id); missingWith(t, b, "expected statement") {
			return appendAt(s, start(t, b), " {}")
		}
	case parser.KindSynchronizedStmt, parser.KindCatchClause, parser.KindSwitchStmt, parser.KindSwitchExpr:
		if isMissing(t, slot(t, id, parser.TokenRParen)) {
			return nil
		}
		return braces(s, id)
	case parser.KindTryStmt:
		if res := t.Child(id, kinds(parser.KindResources)); res != syntax.NoNode && isMissing(t, lastChild(t, res)) {
			return nil
		}
		return braces(s, id)
	case parser.KindFinallyClause, parser.KindClassDecl, parser.KindInterfaceDecl,
		parser.KindEnumDecl, parser.KindAnnotationDecl:
		return braces(s, id)
	case parser.KindMethodDecl, parser.KindConstructorDecl:
		if !paramsClosed(t, id) || (k == parser.KindMethodDecl && !mustHaveBody(t, id)) {
			return nil
		}
		return braces(s, id)
	case parser.KindRecordDecl:
		return recordBody(s, id)
	case parser.KindLambdaExpr, parser.KindSwitchRule:
		if b := body(t, id); missingWith(t, b, "expected body") {
			return openBlock(s, start(t, b))
		}
	}
	return nil
}

// braces inserts ` {}` where the body of id is missing.
func braces(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	if b := body(t, id); missingWith(t, b, "expected {") {
		return appendAt(s, start(t, b), " {}")
	}
	return nil
}

func recordBody(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	var header syntax.NodeID = syntax.NoNode
	for _, c := range t.Children(id) {
		if missingWith(t, c, "expected (") {
			header = c
		}
	}
	b := body(t, id)
	noBody := missingWith(t, b, "expected {")
	switch {
	case header != syntax.NoNode && noBody && start(t, header) == start(t, b):
		return appendAt(s, start(t, header), "() {}")
	case header != syntax.NoNode:
		return s.Insert(start(t, header), "()")
	case noBody && paramsClosed(t, id):
		return appendAt(s, start(t, b), " {}")
	}
	return nil
}

func paramsClosed(t *syntax.Tree, decl syntax.NodeID) bool {
	params := t.Child(decl, kinds(parser.KindParameters))
	return params == syntax.NoNode || !isMissing(t, lastChild(t, params))
}

// mustHaveBody reports whether a method declaration needs a body rather
// than a semicolon.
func mustHaveBody(t *syntax.Tree, method syntax.NodeID) bool {
	if hasModifier(t, method, parser.TokenAbstract) || hasModifier(t, method, parser.TokenNative) {
		return false
	}
	switch kindOf(t, t.Ancestor(method, classKinds)) {
	case parser.KindInterfaceDecl:
		return hasModifier(t, method, parser.TokenDefault) ||
			hasModifier(t, method, parser.TokenStatic) ||
			hasModifier(t, method, parser.TokenPrivate)
	case parser.KindAnnotationDecl:
		return false
	}
	return true
}

// openBlock inserts a block with an empty indented line and resumes on
// that line without running a completion action.
func openBlock(s *repair.Session, at int) error {
	indent := s.Buffer().LineIndent(at)
	inner := indent + s.Style().Unit()
	if err := appendAt(s, at, " {\n"+inner+"\n"+indent+"}"); err != nil {
		return err
	}
	s.SetResumePoint(at + len(" {\n") + len(inner))
	s.SkipCompletion()
	return nil
}

func missingReturnValue(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	if kindOf(t, id) != parser.KindReturnStmt {
		return nil
	}
	cs := significant(t, id)
	if len(cs) != 2 || !isMissingToken(t, cs[1], parser.TokenSemicolon) {
		return nil
	}
	kw := end(t, cs[0])
	if lineOf(t, kw) != lineOf(t, s.Caret()) {
		return nil
	}
	s.RegisterError(kw)
	return nil
}

var simpleStatements = kinds(
	parser.KindExprStmt, parser.KindLocalVarDecl, parser.KindReturnStmt, parser.KindThrowStmt,
	parser.KindBreakStmt, parser.KindContinueStmt, parser.KindYieldStmt, parser.KindAssertStmt,
	parser.KindFieldDecl, parser.KindImportDecl, parser.KindPackageDecl, parser.KindModuleDirective,
	parser.KindDoStmt,
)

func trailingSeparator(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	k := kindOf(t, id)
	switch k {
	case parser.KindMethodDecl:
		b := body(t, id)
		if missingWith(t, b, "expected {") && paramsClosed(t, id) && !mustHaveBody(t, id) {
			return appendAt(s, start(t, b), ";")
		}
		return nil
	case parser.KindIfStmt, parser.KindWhileStmt, parser.KindForStmt, parser.KindEnhancedForStmt:
		return oneLiner(s, id)
	}
	if !simpleStatements.Has(t.Kind(id)) {
		return nil
	}
	switch kindOf(t, t.Parent(id)) {
	case parser.KindForStmt, parser.KindEnhancedForStmt:
		return nil
	}
	if at, ok := patternBreak(s, id); ok {
		return s.Insert(at, ";")
	}

	m := lastChild(t, id)
	if !isMissingToken(t, m, parser.TokenSemicolon) {
		return nil
	}
	switch k {
	case parser.KindReturnStmt:
		kw := significant(t, id)[0]
		if e, ok := s.ErrorOffset(); ok && e == end(t, kw) && next(t, id, kw) == m {
			return nil
		}
	case parser.KindDoStmt:
		if isEmpty(t, condition(t, id)) || isMissing(t, slot(t, id, parser.TokenRParen)) {
			return nil
		}
	}
	return terminate(s, start(t, m))
}

// terminate inserts a semicolon at offset. A pending error offset among
// the blanks that follow stays in front of it. Nothing is inserted right
// after an opening brace, which is closed first.
func terminate(s *repair.Session, at int) error {
	src := s.Buffer().Bytes()
	if b := text.ShiftBackward(src, at-1, " \t\r\n"); b >= 0 && src[b] == '{' {
		return nil
	}
	if e, ok := s.ErrorOffset(); ok && e > at && e <= afterBlanks(s, at) {
		return s.Insert(e, ";")
	}
	return appendAt(s, at, ";")
}

// oneLiner terminates a simple statement used as the body of a control
// statement on the header's line. The header may still lack its closing
// parenthesis.
func oneLiner(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	b := body(t, id)
	if b == syntax.NoNode || !simpleStatements.Has(t.Kind(b)) {
		return nil
	}
	close := slot(t, id, parser.TokenRParen)
	if close == syntax.NoNode || !sameLine(t, end(t, close), start(t, b)) {
		return nil
	}
	if m := lastChild(t, b); isMissingToken(t, m, parser.TokenSemicolon) {
		return terminate(s, start(t, m))
	}
	return nil
}

// patternBreak finds an instanceof type pattern on the caret's line whose
// binding name was taken from a later line, and returns the end of its
// type.
func patternBreak(s *repair.Session, id syntax.NodeID) (int, bool) {
	t := s.Tree()
	line := lineOf(t, s.Caret())
	at, found := 0, false
	t.Walk(id, func(n syntax.NodeID) bool {
		if found {
			return false
		}
		switch kindOf(t, n) {
		case parser.KindBlock, parser.KindClassBody, parser.KindLambdaExpr:
			return false
		case parser.KindTypePattern:
			typ := t.Child(n, kinds(parser.KindType))
			name := t.Child(n, kinds(parser.KindIdentifier))
			if typ != syntax.NoNode && name != syntax.NoNode &&
				lineOf(t, end(t, typ)) == line && lineOf(t, start(t, name)) > line {
				at, found = end(t, typ), true
			}
			return false
		}
		return true
	})
	return at, found
}

func listCloser(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	switch kindOf(t, id) {
	case parser.KindParameters, parser.KindResources:
		return closeParens(s, id)
	case parser.KindArguments:
		if isCall(kindOf(t, t.Parent(id))) {
			return nil
		}
		return closeParens(s, id)
	case parser.KindArrayInit:
		return closeArrayInit(s, id)
	case parser.KindClassBody, parser.KindSwitchBody, parser.KindBlock:
		if !braceTerminated(t, id) || kindOf(t, t.Parent(id)) == parser.KindDoStmt {
			return nil
		}
		return closeBody(s, id)
	case parser.KindNewArrayExpr, parser.KindArrayAccess:
		for _, c := range t.Children(id) {
			if isMissingToken(t, c, parser.TokenRBracket) {
				return appendAt(s, start(t, c), "]")
			}
		}
	}
	return nil
}

// closeParens closes a parenthesised list that is not a call's. A first
// entry on a later line than the opener was taken from the code below, so
// the list is closed right after the opener.
func closeParens(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	m := lastChild(t, id)
	if !isMissingToken(t, m, parser.TokenRParen) {
		return nil
	}
	open := tokenChild(t, id, parser.TokenLParen)
	if els := elements(t, id); open != syntax.NoNode && len(els) > 0 && !sameLine(t, end(t, open), start(t, els[0])) {
		return s.Insert(end(t, open), ")")
	}
	return appendAt(s, start(t, m), ")")
}

// closeArrayInit closes an initializer after its last element, or right
// after the opener when the caret is on the opener's line and the elements
// come from later lines.
func closeArrayInit(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	m := lastChild(t, id)
	if !isMissingToken(t, m, parser.TokenRBrace) {
		return nil
	}
	open := tokenChild(t, id, parser.TokenLBrace)
	els := elements(t, id)
	if open != syntax.NoNode && len(els) > 0 &&
		!sameLine(t, end(t, open), start(t, els[0])) && sameLine(t, end(t, open), s.Caret()) {
		return s.Insert(end(t, open), "}")
	}
	return appendAt(s, start(t, m), "}")
}

// closeBody closes an anonymous class, lambda or switch expression body.
// An empty body gets an indented line to resume on.
func closeBody(s *repair.Session, id syntax.NodeID) error {
	t := s.Tree()
	m := lastChild(t, id)
	open := tokenChild(t, id, parser.TokenLBrace)
	if open == syntax.NoNode || !isMissingToken(t, m, parser.TokenRBrace) {
		return nil
	}
	indent := s.Buffer().LineIndent(start(t, open))
	els := elements(t, id)
	if len(els) == 0 {
		at := end(t, open)
		inner := indent + s.Style().Unit()
		if err := appendAt(s, at, "\n"+inner+"\n"+indent+"}"); err != nil {
			return err
		}
		s.SetResumePoint(at + 1 + len(inner))
		s.SkipCompletion()
		return nil
	}
	last := textEnd(t, els[len(els)-1])
	if sameLine(t, end(t, open), last) {
		return appendAt(s, last, " }")
	}
	return appendAt(s, last, "\n"+indent+"}")
}
