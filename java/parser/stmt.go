package parser

func (p *Parser) parseBlock() *Node {
	node := p.startNode(KindBlock)
	p.expect(node, TokenLBrace)
	p.parseBlockStatements(node)
	p.expect(node, TokenRBrace)
	return p.finishNode(node)
}

// parseBlockStatements parses statements up to, not including, the
// closing brace of the enclosing block.
func (p *Parser) parseBlockStatements(node *Node) {
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		stmt := p.parseBlockStatement()
		if !progress() {
			node.AddChild(p.skipOne())
			continue
		}
		node.AddChild(stmt)
	}
}

func (p *Parser) parseBlockStatement() *Node {
	if p.isLocalClassDecl() {
		node := p.startNode(KindLocalClassDecl)
		node.AddChild(p.parseTypeDeclRest(p.parseModifiers()))
		return p.finishNode(node)
	}
	if p.isLocalVarDecl() {
		node := p.parseLocalVarDecl()
		p.expect(node, TokenSemicolon)
		return p.finishNode(node)
	}
	return p.parseStatement()
}

// parseStatement never consumes a closing brace: where no statement can
// start it returns a missing placeholder without advancing.
func (p *Parser) parseStatement() *Node {
	switch p.peek().Kind {
	case TokenLBrace:
		return p.parseBlock()
	case TokenSemicolon:
		node := p.startNode(KindEmptyStmt)
		p.take(node)
		return p.finishNode(node)
	case TokenIf:
		return p.parseIfStmt()
	case TokenFor:
		return p.parseForStmt()
	case TokenWhile:
		return p.parseWhileStmt()
	case TokenDo:
		return p.parseDoStmt()
	case TokenSwitch:
		return p.parseSwitchStmt()
	case TokenReturn:
		return p.parseKeywordStmt(KindReturnStmt, true)
	case TokenThrow:
		return p.parseKeywordStmt(KindThrowStmt, false)
	case TokenBreak:
		return p.parseJumpStmt(KindBreakStmt)
	case TokenContinue:
		return p.parseJumpStmt(KindContinueStmt)
	case TokenTry:
		return p.parseTryStmt()
	case TokenSynchronized:
		return p.parseSynchronizedStmt()
	case TokenAssert:
		return p.parseAssertStmt()
	case TokenIdent:
		if p.peekN(1).Kind == TokenColon {
			return p.parseLabeledStmt()
		}
		if p.isYield() {
			return p.parseKeywordStmt(KindYieldStmt, true)
		}
	}
	if p.canStartExpression() {
		return p.parseExprStmt()
	}
	return p.missing("expected statement")
}

func (p *Parser) isYield() bool {
	if !p.checkIdent("yield") {
		return false
	}
	switch p.peekN(1).Kind {
	case TokenAssign, TokenDot, TokenLBracket, TokenIncrement, TokenDecrement,
		TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign,
		TokenLParen:
		return false
	}
	return true
}

func (p *Parser) parseExprStmt() *Node {
	node := p.startNode(KindExprStmt)
	node.AddChild(p.parseExpression())
	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

// parseKeywordStmt parses `kw [expr] ;`. With optional set the expression
// may be absent.
func (p *Parser) parseKeywordStmt(kind NodeKind, optional bool) *Node {
	node := p.startNode(kind)
	p.take(node)
	switch {
	case p.canStartExpression():
		node.AddChild(p.parseExpression())
	case !optional:
		node.AddChild(p.missing("expected expression"))
	}
	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseJumpStmt(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.take(node)
	if p.isIdentifierLike() && p.sameLine() {
		p.take(node)
	}
	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseAssertStmt() *Node {
	node := p.startNode(KindAssertStmt)
	p.take(node)
	node.AddChild(p.parseExpressionOrMissing())
	if p.check(TokenColon) {
		p.take(node)
		node.AddChild(p.parseExpressionOrMissing())
	}
	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseLabeledStmt() *Node {
	node := p.startNode(KindLabeledStmt)
	p.take(node)
	p.take(node)
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

// parseCondition parses a parenthesised header expression. Without an
// opening parenthesis the expression is only taken from the same line.
func (p *Parser) parseCondition(node *Node) {
	if p.check(TokenLParen) {
		p.take(node)
		node.AddChild(p.parseExpressionOrMissing())
		p.expect(node, TokenRParen)
		return
	}
	node.AddChild(p.missing("expected (", TokenLParen))
	if p.sameLine() && p.canStartExpression() {
		node.AddChild(p.parseExpression())
	} else {
		node.AddChild(p.missing("expected expression"))
	}
	node.AddChild(p.missing("expected )", TokenRParen))
}

func (p *Parser) parseIfStmt() *Node {
	node := p.startNode(KindIfStmt)
	p.take(node)
	p.parseCondition(node)
	node.AddChild(p.parseStatement())
	if p.check(TokenElse) {
		p.take(node)
		node.AddChild(p.parseStatement())
	}
	return p.finishNode(node)
}

func (p *Parser) parseWhileStmt() *Node {
	node := p.startNode(KindWhileStmt)
	p.take(node)
	p.parseCondition(node)
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

// parseDoStmt records a missing `while` as a single placeholder; the rest
// of the tail is not reported.
func (p *Parser) parseDoStmt() *Node {
	node := p.startNode(KindDoStmt)
	p.take(node)
	node.AddChild(p.parseStatement())
	if !p.check(TokenWhile) {
		node.AddChild(p.missing("expected while", TokenWhile))
		return p.finishNode(node)
	}
	p.take(node)
	p.parseCondition(node)
	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseForStmt() *Node {
	node := p.startNode(KindForStmt)
	p.take(node)
	if !p.check(TokenLParen) {
		node.AddChild(p.missing("expected (", TokenLParen))
		node.AddChild(p.missing("expected )", TokenRParen))
		node.AddChild(p.parseStatement())
		return p.finishNode(node)
	}
	p.take(node)

	if p.isEnhancedFor() {
		node.Kind = KindEnhancedForStmt
		decl := p.parseLocalVarDecl()
		node.AddChild(decl)
		p.take(node)
		node.AddChild(p.parseExpressionOrMissing())
		p.expect(node, TokenRParen)
		node.AddChild(p.parseStatement())
		return p.finishNode(node)
	}

	if p.isLocalVarDecl() {
		node.AddChild(p.parseLocalVarDecl())
	} else {
		node.AddChild(p.parseExpressionList(KindForInit))
	}
	p.expect(node, TokenSemicolon)
	if p.canStartExpression() {
		node.AddChild(p.parseExpression())
	}
	p.expect(node, TokenSemicolon)
	node.AddChild(p.parseExpressionList(KindForUpdate))
	p.expect(node, TokenRParen)
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

func (p *Parser) parseExpressionList(kind NodeKind) *Node {
	node := p.startNode(kind)
	for p.canStartExpression() {
		node.AddChild(p.parseExpression())
		if !p.check(TokenComma) {
			break
		}
		p.take(node)
	}
	return p.finishNode(node)
}

func (p *Parser) isEnhancedFor() bool {
	save := p.pos
	defer func() { p.pos = save }()
	p.skipModifiers()
	if !p.skipType() || !p.isIdentifierLike() {
		return false
	}
	p.advance()
	return p.check(TokenColon)
}

func (p *Parser) parseSwitchStmt() *Node {
	node := p.startNode(KindSwitchStmt)
	p.take(node)
	p.parseCondition(node)
	if p.check(TokenLBrace) {
		node.AddChild(p.parseSwitchBody(false))
	} else {
		node.AddChild(p.missing("expected {", TokenLBrace))
	}
	return p.finishNode(node)
}

// parseSwitchBody parses the braces of a switch. The body of a switch
// expression may leave an outdented closing brace to its enclosing block.
func (p *Parser) parseSwitchBody(expression bool) *Node {
	node := p.startNode(KindSwitchBody)
	open := p.pos
	p.take(node)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		var child *Node
		if p.check(TokenCase) || p.check(TokenDefault) {
			child = p.parseSwitchLabel()
		} else {
			child = p.parseBlockStatement()
		}
		if !progress() {
			node.AddChild(p.skipOne())
			continue
		}
		node.AddChild(child)
	}
	if expression {
		p.expectClosingBrace(node, open)
	} else {
		p.expect(node, TokenRBrace)
	}
	return p.finishNode(node)
}

// parseSwitchLabel parses `case ...:` into a SwitchLabel and
// `case ... -> body` into a SwitchRule. A label with neither separator is
// a SwitchLabel missing its colon.
func (p *Parser) parseSwitchLabel() *Node {
	node := p.startNode(KindSwitchLabel)
	p.take(node)
	if node.Children[0].Token.Kind == TokenCase {
		for {
			if p.check(TokenDefault) {
				p.take(node)
			} else {
				node.AddChild(p.parseCaseLabel())
			}
			if !p.check(TokenComma) {
				break
			}
			p.take(node)
		}
		if p.checkIdent("when") {
			guard := p.startNode(KindGuard)
			p.take(guard)
			guard.AddChild(p.parseExpressionOrMissing())
			node.AddChild(p.finishNode(guard))
		}
	}
	switch {
	case p.check(TokenColon):
		p.take(node)
	case p.check(TokenArrow):
		node.Kind = KindSwitchRule
		p.take(node)
		switch {
		case p.check(TokenLBrace):
			node.AddChild(p.parseBlock())
		case p.check(TokenThrow):
			node.AddChild(p.parseKeywordStmt(KindThrowStmt, false))
		case p.canStartExpression():
			node.AddChild(p.parseExprStmt())
		default:
			node.AddChild(p.missing("expected body"))
		}
	default:
		node.AddChild(p.missing("expected :", TokenColon, TokenArrow))
	}
	return p.finishNode(node)
}

func (p *Parser) parseCaseLabel() *Node {
	if p.isPattern() {
		return p.parsePattern()
	}
	return p.parseTernary()
}

// isPattern reports whether a type pattern or record pattern starts here.
func (p *Parser) isPattern() bool {
	save := p.pos
	defer func() { p.pos = save }()
	p.skipModifiers()
	if !p.skipType() {
		return false
	}
	return p.isIdentifierLike() || p.check(TokenLParen)
}

func (p *Parser) parsePattern() *Node {
	mods := p.parseModifiers()
	typ := p.parseType()
	if p.check(TokenLParen) {
		node := p.startNode(KindRecordPattern)
		node.AddChild(mods)
		node.AddChild(typ)
		p.take(node)
		for p.isPattern() || p.checkIdent("_") {
			if p.checkIdent("_") {
				p.take(node)
			} else {
				node.AddChild(p.parsePattern())
			}
			if !p.check(TokenComma) {
				break
			}
			p.take(node)
		}
		p.expect(node, TokenRParen)
		return p.finishNode(node)
	}
	node := p.startNode(KindTypePattern)
	node.AddChild(mods)
	node.AddChild(typ)
	p.expectIdentifier(node)
	return p.finishNode(node)
}

func (p *Parser) parseTryStmt() *Node {
	node := p.startNode(KindTryStmt)
	p.take(node)
	if p.check(TokenLParen) {
		res := p.startNode(KindResources)
		p.take(res)
		for p.isLocalVarDecl() || p.canStartExpression() {
			if p.isLocalVarDecl() {
				res.AddChild(p.parseLocalVarDecl())
			} else {
				res.AddChild(p.parseExpression())
			}
			if !p.check(TokenSemicolon) {
				break
			}
			p.take(res)
		}
		p.expect(res, TokenRParen)
		node.AddChild(p.finishNode(res))
	}
	p.parseBlockOrMissing(node)
	for p.check(TokenCatch) {
		c := p.startNode(KindCatchClause)
		p.take(c)
		if p.check(TokenLParen) {
			p.take(c)
			if p.isModifier() || p.isIdentifierLike() {
				c.AddChild(p.parseParameter())
			} else {
				c.AddChild(p.missing("expected parameter"))
			}
			p.expect(c, TokenRParen)
		} else {
			c.AddChild(p.missing("expected (", TokenLParen))
			c.AddChild(p.missing("expected parameter"))
			c.AddChild(p.missing("expected )", TokenRParen))
		}
		p.parseBlockOrMissing(c)
		node.AddChild(p.finishNode(c))
	}
	if p.check(TokenFinally) {
		f := p.startNode(KindFinallyClause)
		p.take(f)
		p.parseBlockOrMissing(f)
		node.AddChild(p.finishNode(f))
	}
	return p.finishNode(node)
}

func (p *Parser) parseBlockOrMissing(node *Node) {
	if p.check(TokenLBrace) {
		node.AddChild(p.parseBlock())
		return
	}
	node.AddChild(p.missing("expected {", TokenLBrace))
}

func (p *Parser) parseSynchronizedStmt() *Node {
	node := p.startNode(KindSynchronizedStmt)
	p.take(node)
	p.parseCondition(node)
	p.parseBlockOrMissing(node)
	return p.finishNode(node)
}

func (p *Parser) isLocalClassDecl() bool {
	save := p.pos
	defer func() { p.pos = save }()
	p.skipModifiers()
	return p.isTypeDeclStart() && !p.check(TokenAt)
}

// isLocalVarDecl reports whether a local variable declaration starts here:
// modifiers and a type followed by a name. Without modifiers the name must
// be on the type's line or be followed by something only a declarator can
// have, so an unfinished `foo` line does not swallow the next statement.
func (p *Parser) isLocalVarDecl() bool {
	save := p.pos
	defer func() { p.pos = save }()
	if p.checkIdent("yield") && p.isYield() {
		return false
	}
	hadMods := p.skipModifiers()
	primitive := isPrimitive(p.peek().Kind) && !p.check(TokenVoid)
	if !p.skipType() {
		return false
	}
	if !p.isIdentifierLike() {
		return primitive && !p.check(TokenDot) && !p.check(TokenColonColon)
	}
	if hadMods || p.sameLine() {
		return true
	}
	switch p.peekN(1).Kind {
	case TokenAssign, TokenSemicolon, TokenComma, TokenColon, TokenLBracket:
		return true
	}
	return false
}

func (p *Parser) parseLocalVarDecl() *Node {
	node := p.startNode(KindLocalVarDecl)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseType())
	p.parseVariables(node)
	return p.finishNode(node)
}

// skipModifiers advances past modifiers and annotations and reports
// whether there were any. Lookahead only.
func (p *Parser) skipModifiers() bool {
	start := p.pos
	for p.isModifier() {
		if p.check(TokenAt) {
			p.pos = p.skipAnnotationsAhead(p.pos)
			continue
		}
		p.advance()
	}
	return p.pos != start
}

// skipType advances past a type and reports whether one was there.
// Lookahead only.
func (p *Parser) skipType() bool {
	p.pos = p.skipAnnotationsAhead(p.pos)
	switch {
	case isPrimitive(p.peek().Kind):
		p.advance()
	case p.isIdentifierLike():
		p.advance()
		if !p.skipTypeArguments() {
			return false
		}
		for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
			p.advance()
			p.advance()
			if !p.skipTypeArguments() {
				return false
			}
		}
	default:
		return false
	}
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
	}
	return true
}

func (p *Parser) skipTypeArguments() bool {
	if !p.check(TokenLT) {
		return true
	}
	depth := 0
	for {
		switch p.peek().Kind {
		case TokenLT:
			depth++
		case TokenGT:
			depth--
		case TokenShr:
			depth -= 2
		case TokenUShr:
			depth -= 3
		case TokenIdent, TokenDot, TokenComma, TokenQuestion, TokenExtends, TokenSuper,
			TokenLBracket, TokenRBracket, TokenAt, TokenBitAnd,
			TokenBoolean, TokenByte, TokenChar, TokenShort, TokenInt, TokenLong,
			TokenFloat, TokenDouble:
		default:
			return false
		}
		p.advance()
		if depth <= 0 {
			return true
		}
	}
}
