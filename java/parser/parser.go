package parser

import "io"

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithTrivia keeps whitespace and comments in the tree as leaves of the
// deepest node that strictly contains them.
func WithTrivia() Option {
	return func(p *Parser) {
		p.withTrivia = true
	}
}

type parseFunc func(*Parser) *Node

// Parser is a tolerant recursive descent parser. It never fails: missing
// tokens become zero-width KindError leaves and stray tokens are wrapped in
// KindError nodes, so every significant token of the input ends up in the
// tree exactly once.
type Parser struct {
	file       string
	withTrivia bool
	reader     io.Reader
	input      []byte
	tokens     []Token
	trivia     []Token
	pos        int
	entry      parseFunc
	// unclosed counts opening braces without a matching closing brace.
	unclosed int
}

func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		reader: r,
		entry:  (*Parser).parseCompilationUnit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func ParseExpression(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		reader: r,
		entry:  (*Parser).parseExpressionEntry,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses a whole compilation unit from src.
func Parse(src []byte, opts ...Option) *Node {
	p := ParseCompilationUnit(nil, opts...)
	p.input = src
	return p.Finish()
}

// Trivia returns the whitespace and comment tokens of the last parse.
func (p *Parser) Trivia() []Token {
	return p.trivia
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	if p.reader == nil {
		p.input = []byte{}
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// Finish parses the input. It returns nil only when the input cannot be
// read.
func (p *Parser) Finish() *Node {
	if err := p.readAll(); err != nil {
		return nil
	}
	p.tokenize()
	p.pos = 0
	result := p.entry(p)
	if p.withTrivia {
		attachTrivia(result, p.trivia)
	}
	return result
}

func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.tokens = nil
	p.trivia = nil
	p.pos = 0
}

func (p *Parser) tokenize() {
	p.tokens = nil
	p.trivia = nil
	p.unclosed = 0
	lexer := NewLexer(p.input, p.file)
	for {
		tok := lexer.NextToken()
		if tok.IsTrivia() {
			p.trivia = append(p.trivia, tok)
			continue
		}
		switch tok.Kind {
		case TokenLBrace:
			p.unclosed++
		case TokenRBrace:
			p.unclosed--
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	return p.tokenAt(p.pos + n)
}

func (p *Parser) tokenAt(i int) Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

// checkIdent reports whether the next token is the identifier lit, which is
// how contextual keywords are recognised.
func (p *Parser) checkIdent(lit string) bool {
	tok := p.peek()
	return tok.Kind == TokenIdent && tok.Literal == lit
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

func (p *Parser) isIdentifierLike() bool {
	return p.check(TokenIdent)
}

// mustProgress returns a function that reports whether the parser has
// advanced since mustProgress was called. Loops use it to wrap a token
// nothing could parse into an error node instead of spinning.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		return p.pos != saved
	}
}

// prevEnd is where a missing token is placed: the end of the last consumed
// token.
func (p *Parser) prevEnd() Position {
	if p.pos == 0 {
		return p.tokens[0].Span.Start
	}
	return p.tokens[p.pos-1].Span.End
}

// sameLine reports whether the next token starts on the line the previous
// token ends on.
func (p *Parser) sameLine() bool {
	if p.pos == 0 {
		return true
	}
	return p.peek().Span.Start.Line == p.tokens[p.pos-1].Span.End.Line
}

func leafKind(kind TokenKind) NodeKind {
	switch kind {
	case TokenIdent:
		return KindIdentifier
	case TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral, TokenStringLiteral,
		TokenTextBlock, TokenTrue, TokenFalse, TokenNull:
		return KindLiteral
	case TokenWhitespace:
		return KindWhitespace
	case TokenComment:
		return KindComment
	case TokenLineComment:
		return KindLineComment
	case TokenError:
		return KindError
	}
	return KindToken
}

func newLeaf(tok Token) *Node {
	n := &Node{Kind: leafKind(tok.Kind), Span: tok.Span, Token: &tok}
	switch {
	case tok.Unterminated:
		n.Error = &Error{Message: "unterminated literal", Got: &tok}
	case tok.Kind == TokenError:
		n.Error = &Error{Message: "unexpected character", Got: &tok}
	}
	return n
}

// take consumes the next token as a leaf of n.
func (p *Parser) take(n *Node) *Node {
	leaf := newLeaf(p.advance())
	n.AddChild(leaf)
	return leaf
}

// expect consumes a token of the given kind into n, or adds a missing
// token placeholder.
func (p *Parser) expect(n *Node, kind TokenKind) bool {
	if p.check(kind) {
		p.take(n)
		return true
	}
	n.AddChild(p.missing("expected "+kind.String(), kind))
	return false
}

// outdented reports whether the next token is a closing brace that
// belongs to an enclosing construct rather than to the brace at token index
// open: the input has unclosed braces and the closing brace sits on a later
// line, left of the first token on the opener's line.
func (p *Parser) outdented(open int) bool {
	if p.unclosed <= 0 || !p.check(TokenRBrace) {
		return false
	}
	line := p.tokens[open].Span.Start.Line
	first := open
	for first > 0 && p.tokens[first-1].Span.Start.Line == line {
		first--
	}
	tok := p.peek()
	return tok.Span.Start.Line > line && tok.Span.Start.Column < p.tokens[first].Span.Start.Column
}

// expectClosingBrace closes the expression-level construct opened at token
// index open. An outdented brace is left to the enclosing block.
func (p *Parser) expectClosingBrace(n *Node, open int) bool {
	if p.outdented(open) {
		n.AddChild(p.missing("expected "+TokenRBrace.String(), TokenRBrace))
		return false
	}
	return p.expect(n, TokenRBrace)
}

func (p *Parser) expectIdentifier(n *Node) bool {
	if p.isIdentifierLike() {
		p.take(n)
		return true
	}
	n.AddChild(p.missing("expected identifier", TokenIdent))
	return false
}

// missing returns a zero-width error leaf at the end of the previous token.
func (p *Parser) missing(msg string, expected ...TokenKind) *Node {
	pos := p.prevEnd()
	got := p.peek()
	return &Node{
		Kind: KindError,
		Span: Span{Start: pos, End: pos},
		Error: &Error{
			Message:  msg,
			Expected: expected,
			Got:      &got,
		},
	}
}

// skipOne wraps the next token into an error node.
func (p *Parser) skipOne() *Node {
	tok := p.peek()
	n := &Node{
		Kind:  KindError,
		Error: &Error{Message: "unexpected " + tok.Kind.String(), Got: &tok},
	}
	p.take(n)
	return p.finishNode(n)
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// finishNode derives the span of n from its children. A node without
// children is zero-width at the end of the previous token.
func (p *Parser) finishNode(n *Node) *Node {
	if len(n.Children) == 0 {
		pos := p.prevEnd()
		n.Span = Span{Start: pos, End: pos}
		return n
	}
	n.Span = Span{Start: n.Children[0].Span.Start, End: n.Children[len(n.Children)-1].Span.End}
	return n
}

func (p *Parser) parseExpressionEntry() *Node {
	n := p.parseExpression()
	if p.check(TokenEOF) {
		return n
	}
	wrap := p.startNode(KindError)
	wrap.Error = &Error{Message: "unexpected input after expression"}
	wrap.AddChild(n)
	for !p.check(TokenEOF) {
		p.take(wrap)
	}
	return p.finishNode(wrap)
}

func (p *Parser) parseCompilationUnit() *Node {
	node := p.startNode(KindCompilationUnit)

	if p.check(TokenPackage) || p.isAnnotatedPackage() {
		node.AddChild(p.parsePackageDecl())
	}

	for !p.check(TokenEOF) {
		progress := p.mustProgress()
		var child *Node
		switch {
		case p.check(TokenImport):
			child = p.parseImportDecl()
		case p.check(TokenSemicolon):
			child = newLeaf(p.advance())
		case p.isModuleDecl():
			child = p.parseModuleDecl()
		default:
			child = p.parseTypeDecl()
		}
		if !progress() {
			node.AddChild(p.skipOne())
			continue
		}
		node.AddChild(child)
	}

	eof := p.peek().Span.Start
	node.Span = Span{Start: Position{File: p.file, Line: 1, Column: 1}, End: eof}
	return node
}

// skipAnnotationsAhead returns the token index after any annotations
// starting at i, without consuming anything.
func (p *Parser) skipAnnotationsAhead(i int) int {
	for p.tokenAt(i).Kind == TokenAt && p.tokenAt(i+1).Kind != TokenInterface {
		i++
		for p.tokenAt(i).Kind == TokenIdent {
			i++
			if p.tokenAt(i).Kind != TokenDot {
				break
			}
			i++
		}
		if p.tokenAt(i).Kind == TokenLParen {
			i = p.skipParensAhead(i)
		}
	}
	return i
}

// skipParensAhead returns the index after the parenthesis matching the one
// at i, or the EOF index when it is unbalanced.
func (p *Parser) skipParensAhead(i int) int {
	depth := 0
	for ; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
			if depth == 0 {
				return i + 1
			}
		case TokenEOF:
			return i
		}
	}
	return len(p.tokens) - 1
}

func (p *Parser) isAnnotatedPackage() bool {
	if !p.check(TokenAt) {
		return false
	}
	return p.tokenAt(p.skipAnnotationsAhead(p.pos)).Kind == TokenPackage
}

func (p *Parser) isModuleDecl() bool {
	i := p.skipAnnotationsAhead(p.pos)
	tok := p.tokenAt(i)
	if tok.Kind == TokenIdent && tok.Literal == "open" {
		i++
		tok = p.tokenAt(i)
	}
	return tok.Kind == TokenIdent && tok.Literal == "module" && p.tokenAt(i+1).Kind == TokenIdent
}

func (p *Parser) parseModuleDecl() *Node {
	node := p.startNode(KindModuleDecl)
	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}
	if p.checkIdent("open") {
		p.take(node)
	}
	p.take(node)
	node.AddChild(p.parseQualifiedName())
	if !p.check(TokenLBrace) {
		node.AddChild(p.missing("expected {", TokenLBrace))
		return p.finishNode(node)
	}
	body := p.startNode(KindClassBody)
	p.take(body)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		child := p.parseModuleDirective()
		if !progress() {
			body.AddChild(p.skipOne())
			continue
		}
		body.AddChild(child)
	}
	p.expect(body, TokenRBrace)
	node.AddChild(p.finishNode(body))
	return p.finishNode(node)
}

// parseModuleDirective parses requires, exports, opens, uses and provides
// directives. Their shapes only matter up to the terminating semicolon.
func (p *Parser) parseModuleDirective() *Node {
	if !p.isIdentifierLike() {
		return p.missing("expected module directive")
	}
	node := p.startNode(KindModuleDirective)
	p.take(node)
	for p.match(TokenIdent, TokenDot, TokenComma, TokenStatic) {
		p.take(node)
	}
	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parsePackageDecl() *Node {
	node := p.startNode(KindPackageDecl)
	if mods := p.parseModifiers(); mods != nil {
		node.AddChild(mods)
	}
	p.expect(node, TokenPackage)
	node.AddChild(p.parseQualifiedName())
	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseImportDecl() *Node {
	node := p.startNode(KindImportDecl)
	p.take(node)
	if p.check(TokenStatic) || (p.checkIdent("module") && p.peekN(1).Kind == TokenIdent) {
		p.take(node)
	}
	name := p.startNode(KindQualifiedName)
	p.expectIdentifier(name)
	for p.check(TokenDot) {
		p.take(name)
		if p.check(TokenStar) {
			p.take(name)
			break
		}
		p.expectIdentifier(name)
	}
	node.AddChild(p.finishNode(name))
	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

// parseQualifiedName returns a single identifier leaf or a QualifiedName.
func (p *Parser) parseQualifiedName() *Node {
	if !p.isIdentifierLike() {
		return p.missing("expected identifier", TokenIdent)
	}
	first := newLeaf(p.advance())
	if !p.check(TokenDot) || p.peekN(1).Kind != TokenIdent {
		return first
	}
	node := p.startNode(KindQualifiedName)
	node.AddChild(first)
	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.take(node)
		p.take(node)
	}
	return p.finishNode(node)
}

func (p *Parser) isTypeDeclStart() bool {
	switch {
	case p.match(TokenClass, TokenInterface, TokenEnum):
		return true
	case p.check(TokenAt) && p.peekN(1).Kind == TokenInterface:
		return true
	case p.checkIdent("record") && p.peekN(1).Kind == TokenIdent:
		return true
	}
	return false
}

func (p *Parser) parseTypeDecl() *Node {
	mods := p.parseModifiers()
	if p.isTypeDeclStart() {
		return p.parseTypeDeclRest(mods)
	}
	return p.parseMember(mods)
}

func (p *Parser) parseTypeDeclRest(mods *Node) *Node {
	switch {
	case p.check(TokenClass):
		return p.parseClassDecl(mods)
	case p.check(TokenInterface):
		return p.parseInterfaceDecl(mods)
	case p.check(TokenEnum):
		return p.parseEnumDecl(mods)
	case p.check(TokenAt):
		return p.parseAnnotationDecl(mods)
	}
	return p.parseRecordDecl(mods)
}

func (p *Parser) isModifier() bool {
	switch p.peek().Kind {
	case TokenPublic, TokenProtected, TokenPrivate, TokenStatic, TokenAbstract,
		TokenFinal, TokenNative, TokenTransient, TokenVolatile, TokenStrictfp,
		TokenNonSealed:
		return true
	case TokenSynchronized:
		return p.peekN(1).Kind != TokenLParen
	case TokenDefault:
		next := p.peekN(1).Kind
		return next != TokenColon && next != TokenArrow
	case TokenAt:
		return p.peekN(1).Kind != TokenInterface
	case TokenIdent:
		if p.checkIdent("sealed") {
			switch next := p.peekN(1); next.Kind {
			case TokenClass, TokenInterface, TokenAbstract, TokenPublic, TokenProtected,
				TokenPrivate, TokenStatic, TokenStrictfp, TokenAt:
				return true
			case TokenIdent:
				return next.Literal == "record"
			}
		}
	}
	return false
}

// parseModifiers returns nil when there are none.
func (p *Parser) parseModifiers() *Node {
	if !p.isModifier() {
		return nil
	}
	node := p.startNode(KindModifiers)
	for p.isModifier() {
		if p.check(TokenAt) {
			node.AddChild(p.parseAnnotation())
			continue
		}
		p.take(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseAnnotation() *Node {
	node := p.startNode(KindAnnotation)
	p.take(node)
	node.AddChild(p.parseQualifiedName())
	if p.check(TokenLParen) {
		args := p.startNode(KindArguments)
		p.take(args)
		for !p.check(TokenRParen) && p.canStartElementValue() {
			if p.isIdentifierLike() && p.peekN(1).Kind == TokenAssign {
				elem := p.startNode(KindAnnotationElement)
				p.take(elem)
				p.take(elem)
				elem.AddChild(p.parseElementValue())
				args.AddChild(p.finishNode(elem))
			} else {
				args.AddChild(p.parseElementValue())
			}
			if !p.check(TokenComma) {
				break
			}
			p.take(args)
		}
		p.expect(args, TokenRParen)
		node.AddChild(p.finishNode(args))
	}
	return p.finishNode(node)
}

func (p *Parser) canStartElementValue() bool {
	return p.check(TokenAt) || p.check(TokenLBrace) || p.canStartExpression()
}

func (p *Parser) parseElementValue() *Node {
	switch {
	case p.check(TokenAt):
		return p.parseAnnotation()
	case p.check(TokenLBrace):
		return p.parseArrayInit(true)
	case p.canStartExpression():
		return p.parseTernary()
	}
	return p.missing("expected element value")
}

func (p *Parser) parseClassDecl(mods *Node) *Node {
	node := p.startNode(KindClassDecl)
	node.AddChild(mods)
	p.take(node)
	p.expectIdentifier(node)
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	p.parseTypeClauses(node)
	p.parseBodyOrMissing(node, false)
	return p.finishNode(node)
}

func (p *Parser) parseInterfaceDecl(mods *Node) *Node {
	node := p.startNode(KindInterfaceDecl)
	node.AddChild(mods)
	p.take(node)
	p.expectIdentifier(node)
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	p.parseTypeClauses(node)
	p.parseBodyOrMissing(node, false)
	return p.finishNode(node)
}

func (p *Parser) parseEnumDecl(mods *Node) *Node {
	node := p.startNode(KindEnumDecl)
	node.AddChild(mods)
	p.take(node)
	p.expectIdentifier(node)
	p.parseTypeClauses(node)
	p.parseBodyOrMissing(node, true)
	return p.finishNode(node)
}

func (p *Parser) parseRecordDecl(mods *Node) *Node {
	node := p.startNode(KindRecordDecl)
	node.AddChild(mods)
	p.take(node)
	p.expectIdentifier(node)
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if p.check(TokenLParen) {
		node.AddChild(p.parseParameters())
	} else {
		node.AddChild(p.missing("expected (", TokenLParen))
	}
	p.parseTypeClauses(node)
	p.parseBodyOrMissing(node, false)
	return p.finishNode(node)
}

func (p *Parser) parseAnnotationDecl(mods *Node) *Node {
	node := p.startNode(KindAnnotationDecl)
	node.AddChild(mods)
	p.take(node)
	p.take(node)
	p.expectIdentifier(node)
	p.parseBodyOrMissing(node, false)
	return p.finishNode(node)
}

func (p *Parser) parseBodyOrMissing(node *Node, enum bool) {
	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBody(enum, false))
		return
	}
	node.AddChild(p.missing("expected {", TokenLBrace))
}

func (p *Parser) parseTypeClauses(node *Node) {
	for {
		var kind NodeKind
		switch {
		case p.check(TokenExtends):
			kind = KindExtendsClause
		case p.check(TokenImplements):
			kind = KindImplementsClause
		case p.checkIdent("permits"):
			kind = KindPermitsClause
		default:
			return
		}
		clause := p.startNode(kind)
		p.take(clause)
		clause.AddChild(p.parseType())
		for p.check(TokenComma) {
			p.take(clause)
			clause.AddChild(p.parseType())
		}
		node.AddChild(p.finishNode(clause))
	}
}

func (p *Parser) parseTypeParameters() *Node {
	node := p.startNode(KindTypeParameters)
	p.take(node)
	for p.isIdentifierLike() || p.check(TokenAt) {
		param := p.startNode(KindTypeParameter)
		for p.check(TokenAt) {
			param.AddChild(p.parseAnnotation())
		}
		p.expectIdentifier(param)
		if p.check(TokenExtends) {
			p.take(param)
			param.AddChild(p.parseType())
			for p.check(TokenBitAnd) {
				p.take(param)
				param.AddChild(p.parseType())
			}
		}
		node.AddChild(p.finishNode(param))
		if !p.check(TokenComma) {
			break
		}
		p.take(node)
	}
	p.expectGT(node)
	return p.finishNode(node)
}

func isPrimitive(kind TokenKind) bool {
	switch kind {
	case TokenBoolean, TokenByte, TokenChar, TokenShort, TokenInt, TokenLong,
		TokenFloat, TokenDouble, TokenVoid:
		return true
	}
	return false
}

// parseType parses a type including array dimensions.
func (p *Parser) parseType() *Node {
	node := p.parseClassType()
	if node.IsMissing() {
		return node
	}
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.take(node)
		p.take(node)
	}
	return p.finishNode(node)
}

// parseClassType parses a type without array dimensions.
func (p *Parser) parseClassType() *Node {
	node := p.startNode(KindType)
	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}
	switch {
	case isPrimitive(p.peek().Kind):
		p.take(node)
	case p.isIdentifierLike():
		p.take(node)
		if p.check(TokenLT) {
			node.AddChild(p.parseTypeArguments())
		}
		for p.check(TokenDot) && (p.peekN(1).Kind == TokenIdent || p.peekN(1).Kind == TokenAt) {
			p.take(node)
			for p.check(TokenAt) {
				node.AddChild(p.parseAnnotation())
			}
			p.expectIdentifier(node)
			if p.check(TokenLT) {
				node.AddChild(p.parseTypeArguments())
			}
		}
	default:
		if len(node.Children) == 0 {
			return p.missing("expected type")
		}
		node.AddChild(p.missing("expected type"))
	}
	return p.finishNode(node)
}

func (p *Parser) parseTypeArguments() *Node {
	node := p.startNode(KindTypeArguments)
	p.take(node)
	for !p.match(TokenGT, TokenShr, TokenUShr) {
		if p.check(TokenQuestion) {
			w := p.startNode(KindWildcard)
			p.take(w)
			if p.match(TokenExtends, TokenSuper) {
				p.take(w)
				w.AddChild(p.parseType())
			}
			node.AddChild(p.finishNode(w))
		} else if p.isIdentifierLike() || isPrimitive(p.peek().Kind) || p.check(TokenAt) {
			node.AddChild(p.parseType())
		} else {
			break
		}
		if !p.check(TokenComma) {
			break
		}
		p.take(node)
	}
	p.expectGT(node)
	return p.finishNode(node)
}

// expectGT consumes one '>' into n, splitting '>>', '>>>' and friends.
func (p *Parser) expectGT(n *Node) bool {
	var remainder TokenKind
	switch p.peek().Kind {
	case TokenGT:
		p.take(n)
		return true
	case TokenShr:
		remainder = TokenGT
	case TokenUShr:
		remainder = TokenShr
	case TokenGE:
		remainder = TokenAssign
	case TokenShrAssign:
		remainder = TokenGE
	case TokenUShrAssign:
		remainder = TokenShrAssign
	default:
		n.AddChild(p.missing("expected >", TokenGT))
		return false
	}
	n.AddChild(newLeaf(p.splitToken(TokenGT, remainder)))
	return true
}

// splitToken cuts the first character off the next token and returns it
// as a token of kind first, leaving the rest in the stream.
func (p *Parser) splitToken(first, remainder TokenKind) Token {
	tok := p.tokens[p.pos]
	mid := Position{
		File:   tok.Span.Start.File,
		Offset: tok.Span.Start.Offset + 1,
		Line:   tok.Span.Start.Line,
		Column: tok.Span.Start.Column + 1,
	}
	p.tokens[p.pos] = Token{
		Kind:    remainder,
		Literal: tok.Literal[1:],
		Span:    Span{Start: mid, End: tok.Span.End},
	}
	return Token{
		Kind:    first,
		Literal: tok.Literal[:1],
		Span:    Span{Start: tok.Span.Start, End: mid},
	}
}

// parseClassBody parses a class body. The body of an anonymous class is
// an expression and may leave an outdented closing brace to its enclosing
// block.
func (p *Parser) parseClassBody(enum, anonymous bool) *Node {
	node := p.startNode(KindClassBody)
	open := p.pos
	p.take(node)
	if enum {
		p.parseEnumConstants(node)
	}
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		var child *Node
		if p.check(TokenSemicolon) {
			child = newLeaf(p.advance())
		} else {
			child = p.parseClassMember()
		}
		if !progress() {
			node.AddChild(p.skipOne())
			continue
		}
		node.AddChild(child)
	}
	if anonymous {
		p.expectClosingBrace(node, open)
	} else {
		p.expect(node, TokenRBrace)
	}
	return p.finishNode(node)
}

func (p *Parser) parseEnumConstants(body *Node) {
	for p.isIdentifierLike() || p.check(TokenAt) {
		c := p.startNode(KindEnumConstant)
		for p.check(TokenAt) {
			c.AddChild(p.parseAnnotation())
		}
		p.expectIdentifier(c)
		if p.check(TokenLParen) {
			c.AddChild(p.parseArguments())
		}
		if p.check(TokenLBrace) {
			c.AddChild(p.parseClassBody(false, false))
		}
		body.AddChild(p.finishNode(c))
		if !p.check(TokenComma) {
			break
		}
		p.take(body)
	}
	if p.check(TokenSemicolon) {
		p.take(body)
	}
}

func (p *Parser) parseClassMember() *Node {
	if p.check(TokenLBrace) || (p.check(TokenStatic) && p.peekN(1).Kind == TokenLBrace) {
		node := p.startNode(KindInitializer)
		if p.check(TokenStatic) {
			p.take(node)
		}
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	}
	mods := p.parseModifiers()
	if p.isTypeDeclStart() {
		return p.parseTypeDeclRest(mods)
	}
	return p.parseMember(mods)
}

// parseMember parses a field, method or constructor after its modifiers.
// With nothing recognisable it returns the modifiers wrapped in an error,
// or a missing placeholder when there were none.
func (p *Parser) parseMember(mods *Node) *Node {
	var typeParams *Node
	if p.check(TokenLT) {
		typeParams = p.parseTypeParameters()
	}
	if p.isIdentifierLike() && (p.peekN(1).Kind == TokenLParen || p.peekN(1).Kind == TokenLBrace) {
		return p.parseConstructor(mods, typeParams)
	}
	if isPrimitive(p.peek().Kind) || p.isIdentifierLike() || p.check(TokenAt) {
		typ := p.parseType()
		if p.isIdentifierLike() && p.peekN(1).Kind == TokenLParen {
			return p.parseMethod(mods, typeParams, typ)
		}
		return p.parseField(mods, typ)
	}
	if mods == nil && typeParams == nil {
		return p.missing("expected declaration")
	}
	node := p.startNode(KindError)
	node.Error = &Error{Message: "expected declaration"}
	node.AddChild(mods)
	node.AddChild(typeParams)
	return p.finishNode(node)
}

func (p *Parser) parseConstructor(mods, typeParams *Node) *Node {
	node := p.startNode(KindConstructorDecl)
	node.AddChild(mods)
	node.AddChild(typeParams)
	p.take(node)
	if p.check(TokenLParen) {
		node.AddChild(p.parseParameters())
	}
	p.parseThrows(node)
	if p.check(TokenLBrace) {
		node.AddChild(p.parseBlock())
	} else {
		node.AddChild(p.missing("expected {", TokenLBrace))
	}
	return p.finishNode(node)
}

func (p *Parser) parseMethod(mods, typeParams, typ *Node) *Node {
	node := p.startNode(KindMethodDecl)
	node.AddChild(mods)
	node.AddChild(typeParams)
	node.AddChild(typ)
	p.take(node)
	node.AddChild(p.parseParameters())
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.take(node)
		p.take(node)
	}
	p.parseThrows(node)
	switch {
	case p.check(TokenLBrace):
		node.AddChild(p.parseBlock())
	case p.check(TokenSemicolon):
		p.take(node)
	case p.check(TokenDefault):
		p.take(node)
		node.AddChild(p.parseElementValue())
		p.expect(node, TokenSemicolon)
	default:
		node.AddChild(p.missing("expected {", TokenLBrace, TokenSemicolon))
	}
	return p.finishNode(node)
}

func (p *Parser) parseThrows(node *Node) {
	if !p.check(TokenThrows) {
		return
	}
	list := p.startNode(KindThrowsList)
	p.take(list)
	list.AddChild(p.parseType())
	for p.check(TokenComma) {
		p.take(list)
		list.AddChild(p.parseType())
	}
	node.AddChild(p.finishNode(list))
}

func (p *Parser) parseField(mods, typ *Node) *Node {
	node := p.startNode(KindFieldDecl)
	node.AddChild(mods)
	node.AddChild(typ)
	p.parseVariables(node)
	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

// parseVariables parses comma separated declarators into node.
func (p *Parser) parseVariables(node *Node) {
	for {
		node.AddChild(p.parseVariable())
		if !p.check(TokenComma) {
			return
		}
		p.take(node)
	}
}

func (p *Parser) parseVariable() *Node {
	node := p.startNode(KindVariable)
	p.expectIdentifier(node)
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.take(node)
		p.take(node)
	}
	if p.check(TokenAssign) {
		p.take(node)
		node.AddChild(p.parseVarInit())
	}
	return p.finishNode(node)
}

func (p *Parser) parseVarInit() *Node {
	if p.check(TokenLBrace) {
		return p.parseArrayInit(false)
	}
	if p.canStartExpression() {
		return p.parseExpression()
	}
	return p.missing("expected expression")
}

func (p *Parser) parseArrayInit(elementValues bool) *Node {
	node := p.startNode(KindArrayInit)
	open := p.pos
	p.take(node)
	for p.check(TokenLBrace) || p.check(TokenAt) || p.canStartExpression() {
		if elementValues {
			node.AddChild(p.parseElementValue())
		} else {
			node.AddChild(p.parseVarInit())
		}
		if !p.check(TokenComma) {
			break
		}
		p.take(node)
	}
	p.expectClosingBrace(node, open)
	return p.finishNode(node)
}

func (p *Parser) parseParameters() *Node {
	node := p.startNode(KindParameters)
	p.take(node)
	for p.isModifier() || p.isIdentifierLike() || isPrimitive(p.peek().Kind) {
		node.AddChild(p.parseParameter())
		if !p.check(TokenComma) {
			break
		}
		p.take(node)
	}
	p.expect(node, TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseParameter() *Node {
	node := p.startNode(KindParameter)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseType())
	for p.check(TokenBitOr) {
		p.take(node)
		node.AddChild(p.parseType())
	}
	if p.check(TokenEllipsis) {
		p.take(node)
	}
	switch {
	case p.check(TokenThis):
		p.take(node)
	case p.isIdentifierLike() && p.peekN(1).Kind == TokenDot && p.peekN(2).Kind == TokenThis:
		p.take(node)
		p.take(node)
		p.take(node)
	default:
		p.expectIdentifier(node)
	}
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.take(node)
		p.take(node)
	}
	return p.finishNode(node)
}
