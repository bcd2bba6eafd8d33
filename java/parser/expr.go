package parser

var binaryPrecedence = map[TokenKind]int{
	TokenOr:         1,
	TokenAnd:        2,
	TokenBitOr:      3,
	TokenBitXor:     4,
	TokenBitAnd:     5,
	TokenEQ:         6,
	TokenNE:         6,
	TokenLT:         7,
	TokenGT:         7,
	TokenLE:         7,
	TokenGE:         7,
	TokenInstanceof: 7,
	TokenShl:        8,
	TokenShr:        8,
	TokenUShr:       8,
	TokenPlus:       9,
	TokenMinus:      9,
	TokenStar:       10,
	TokenSlash:      10,
	TokenPercent:    10,
}

func isAssignOp(kind TokenKind) bool {
	switch kind {
	case TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign,
		TokenPercentAssign, TokenAndAssign, TokenOrAssign, TokenXorAssign,
		TokenShlAssign, TokenShrAssign, TokenUShrAssign:
		return true
	}
	return false
}

func isLiteral(kind TokenKind) bool {
	return leafKind(kind) == KindLiteral
}

func (p *Parser) canStartExpression() bool {
	kind := p.peek().Kind
	switch kind {
	case TokenIdent, TokenThis, TokenSuper, TokenNew, TokenSwitch, TokenLParen,
		TokenPlus, TokenMinus, TokenNot, TokenBitNot, TokenIncrement, TokenDecrement:
		return true
	}
	return isLiteral(kind) || isPrimitive(kind)
}

func (p *Parser) parseExpressionOrMissing() *Node {
	if p.canStartExpression() {
		return p.parseExpression()
	}
	return p.missing("expected expression")
}

func (p *Parser) parseExpression() *Node {
	if p.isLambda() {
		return p.parseLambda()
	}
	lhs := p.parseTernary()
	if !isAssignOp(p.peek().Kind) {
		return lhs
	}
	node := p.startNode(KindAssignExpr)
	node.AddChild(lhs)
	p.take(node)
	if p.check(TokenLBrace) {
		node.AddChild(p.parseArrayInit(false))
	} else {
		node.AddChild(p.parseExpressionOrMissing())
	}
	return p.finishNode(node)
}

func (p *Parser) parseTernary() *Node {
	cond := p.parseBinary(1)
	if !p.check(TokenQuestion) {
		return cond
	}
	node := p.startNode(KindTernaryExpr)
	node.AddChild(cond)
	p.take(node)
	node.AddChild(p.parseExpressionOrMissing())
	if !p.check(TokenColon) {
		node.AddChild(p.missing("expected :", TokenColon))
		return p.finishNode(node)
	}
	p.take(node)
	switch {
	case p.isLambda():
		node.AddChild(p.parseLambda())
	case p.canStartExpression():
		node.AddChild(p.parseTernary())
	default:
		node.AddChild(p.missing("expected expression"))
	}
	return p.finishNode(node)
}

func (p *Parser) parseBinary(minPrec int) *Node {
	left := p.parseUnary()
	for {
		prec, ok := binaryPrecedence[p.peek().Kind]
		if !ok || prec < minPrec {
			return left
		}
		if p.check(TokenInstanceof) {
			node := p.startNode(KindInstanceofExpr)
			node.AddChild(left)
			p.take(node)
			if p.isPattern() {
				node.AddChild(p.parsePattern())
			} else {
				node.AddChild(p.parseType())
			}
			left = p.finishNode(node)
			continue
		}
		node := p.startNode(KindBinaryExpr)
		node.AddChild(left)
		p.take(node)
		if p.canStartExpression() {
			node.AddChild(p.parseBinary(prec + 1))
		} else {
			node.AddChild(p.missing("expected expression"))
		}
		left = p.finishNode(node)
	}
}

func (p *Parser) parseUnary() *Node {
	switch p.peek().Kind {
	case TokenPlus, TokenMinus, TokenNot, TokenBitNot, TokenIncrement, TokenDecrement:
		node := p.startNode(KindUnaryExpr)
		p.take(node)
		if p.canStartExpression() {
			node.AddChild(p.parseUnary())
		} else {
			node.AddChild(p.missing("expected expression"))
		}
		return p.finishNode(node)
	case TokenLParen:
		if p.isCast() {
			return p.parseCast()
		}
	}
	return p.parsePostfix()
}

func (p *Parser) isCast() bool {
	save := p.pos
	defer func() { p.pos = save }()
	p.advance()
	primitive := isPrimitive(p.peek().Kind)
	if !p.skipType() {
		return false
	}
	for p.check(TokenBitAnd) {
		p.advance()
		if !p.skipType() {
			return false
		}
	}
	if !p.check(TokenRParen) {
		return false
	}
	p.advance()
	if primitive {
		return true
	}
	switch p.peek().Kind {
	case TokenIdent, TokenLParen, TokenNot, TokenBitNot, TokenThis, TokenSuper,
		TokenNew, TokenSwitch:
		return true
	}
	return isLiteral(p.peek().Kind)
}

func (p *Parser) parseCast() *Node {
	node := p.startNode(KindCastExpr)
	p.take(node)
	node.AddChild(p.parseType())
	for p.check(TokenBitAnd) {
		p.take(node)
		node.AddChild(p.parseType())
	}
	p.expect(node, TokenRParen)
	switch {
	case p.isLambda():
		node.AddChild(p.parseLambda())
	case p.canStartExpression():
		node.AddChild(p.parseUnary())
	default:
		node.AddChild(p.missing("expected expression"))
	}
	return p.finishNode(node)
}

func (p *Parser) parsePostfix() *Node {
	left := p.parsePrimary()
	if left.IsMissing() {
		return left
	}
	for {
		switch p.peek().Kind {
		case TokenDot:
			left = p.parseSelector(left)
		case TokenLBracket:
			if p.peekN(1).Kind == TokenRBracket {
				node := p.startNode(KindType)
				node.AddChild(left)
				for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
					p.take(node)
					p.take(node)
				}
				left = p.finishNode(node)
				continue
			}
			node := p.startNode(KindArrayAccess)
			node.AddChild(left)
			p.take(node)
			node.AddChild(p.parseExpressionOrMissing())
			p.expect(node, TokenRBracket)
			left = p.finishNode(node)
		case TokenColonColon:
			node := p.startNode(KindMethodRef)
			node.AddChild(left)
			p.take(node)
			if p.check(TokenLT) {
				node.AddChild(p.parseTypeArguments())
			}
			if p.check(TokenNew) {
				p.take(node)
			} else {
				p.expectIdentifier(node)
			}
			left = p.finishNode(node)
		case TokenIncrement, TokenDecrement:
			node := p.startNode(KindPostfixExpr)
			node.AddChild(left)
			p.take(node)
			left = p.finishNode(node)
		default:
			return left
		}
	}
}

// parseSelector parses what follows a dot: a field, a method call, a class
// literal, a qualified this or super, or an inner class creation.
func (p *Parser) parseSelector(left *Node) *Node {
	switch p.peekN(1).Kind {
	case TokenClass:
		node := p.startNode(KindClassLiteral)
		node.AddChild(left)
		p.take(node)
		p.take(node)
		return p.finishNode(node)
	case TokenNew:
		node := p.startNode(KindFieldAccess)
		node.AddChild(left)
		p.take(node)
		node.AddChild(p.parseNew())
		return p.finishNode(node)
	}
	node := p.startNode(KindFieldAccess)
	node.AddChild(left)
	p.take(node)
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}
	if p.match(TokenThis, TokenSuper) {
		p.take(node)
	} else {
		p.expectIdentifier(node)
	}
	access := p.finishNode(node)
	if !p.check(TokenLParen) {
		return access
	}
	call := p.startNode(KindCallExpr)
	call.AddChild(access)
	call.AddChild(p.parseArguments())
	return p.finishNode(call)
}

func (p *Parser) parsePrimary() *Node {
	tok := p.peek()
	switch {
	case isLiteral(tok.Kind):
		return newLeaf(p.advance())
	case tok.Kind == TokenIdent:
		if p.peekN(1).Kind == TokenLParen {
			node := p.startNode(KindCallExpr)
			p.take(node)
			node.AddChild(p.parseArguments())
			return p.finishNode(node)
		}
		return newLeaf(p.advance())
	case tok.Kind == TokenThis || tok.Kind == TokenSuper:
		if p.peekN(1).Kind == TokenLParen {
			node := p.startNode(KindExplicitConstructorInvocation)
			p.take(node)
			node.AddChild(p.parseArguments())
			return p.finishNode(node)
		}
		return newLeaf(p.advance())
	case tok.Kind == TokenLParen:
		node := p.startNode(KindParenExpr)
		p.take(node)
		node.AddChild(p.parseExpressionOrMissing())
		p.expect(node, TokenRParen)
		return p.finishNode(node)
	case tok.Kind == TokenNew:
		return p.parseNew()
	case tok.Kind == TokenSwitch:
		node := p.startNode(KindSwitchExpr)
		p.take(node)
		p.parseCondition(node)
		if p.check(TokenLBrace) {
			node.AddChild(p.parseSwitchBody(true))
		} else {
			node.AddChild(p.missing("expected {", TokenLBrace))
		}
		return p.finishNode(node)
	case isPrimitive(tok.Kind):
		return p.parseType()
	}
	return p.missing("expected expression")
}

func (p *Parser) parseNew() *Node {
	node := p.startNode(KindNewExpr)
	p.take(node)
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}
	node.AddChild(p.parseClassType())
	switch {
	case p.check(TokenLBracket):
		node.Kind = KindNewArrayExpr
		for p.check(TokenLBracket) {
			p.take(node)
			if p.canStartExpression() {
				node.AddChild(p.parseExpression())
			}
			p.expect(node, TokenRBracket)
		}
		if p.check(TokenLBrace) {
			node.AddChild(p.parseArrayInit(false))
		}
	case p.check(TokenLParen):
		node.AddChild(p.parseArguments())
		if p.check(TokenLBrace) {
			node.AddChild(p.parseClassBody(false, true))
		}
	default:
		node.AddChild(p.missing("expected (", TokenLParen))
	}
	return p.finishNode(node)
}

func (p *Parser) parseArguments() *Node {
	node := p.startNode(KindArguments)
	p.take(node)
	for p.canStartExpression() {
		node.AddChild(p.parseExpression())
		if !p.check(TokenComma) {
			break
		}
		p.take(node)
		if !p.canStartExpression() {
			node.AddChild(p.missing("expected expression"))
			break
		}
	}
	p.expect(node, TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) isLambda() bool {
	if p.check(TokenIdent) && p.peekN(1).Kind == TokenArrow {
		return true
	}
	if !p.check(TokenLParen) {
		return false
	}
	end := p.skipParensAhead(p.pos)
	return p.tokenAt(end-1).Kind == TokenRParen && p.tokenAt(end).Kind == TokenArrow
}

func (p *Parser) parseLambdaBody() *Node {
	node := p.startNode(KindBlock)
	open := p.pos
	p.take(node)
	p.parseBlockStatements(node)
	p.expectClosingBrace(node, open)
	return p.finishNode(node)
}

func (p *Parser) parseLambda() *Node {
	node := p.startNode(KindLambdaExpr)
	if p.check(TokenIdent) {
		p.take(node)
	} else {
		params := p.startNode(KindParameters)
		p.take(params)
		for p.isModifier() || p.isIdentifierLike() || isPrimitive(p.peek().Kind) {
			next := p.peekN(1).Kind
			if p.isIdentifierLike() && (next == TokenComma || next == TokenRParen) {
				param := p.startNode(KindParameter)
				p.take(param)
				params.AddChild(p.finishNode(param))
			} else {
				params.AddChild(p.parseParameter())
			}
			if !p.check(TokenComma) {
				break
			}
			p.take(params)
		}
		p.expect(params, TokenRParen)
		node.AddChild(p.finishNode(params))
	}
	p.expect(node, TokenArrow)
	switch {
	case p.check(TokenLBrace):
		node.AddChild(p.parseLambdaBody())
	case p.canStartExpression():
		node.AddChild(p.parseExpression())
	default:
		node.AddChild(p.missing("expected body"))
	}
	return p.finishNode(node)
}
