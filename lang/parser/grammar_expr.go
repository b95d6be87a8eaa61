package parser

import "github.com/lico-lang/lico/lang/token"

// Binding powers follow the standard Pratt-parsing trick: an operator at
// precedence level p gets (left, right) = (2p+1, 2p+2) if left-associative
// or (2p+2, 2p+1) if right-associative. A recursive call only consumes an
// operator whose left power is >= the caller's minimum; it then recurses
// for the right-hand side with that operator's right power as the new
// minimum. Using 2p+1/2p+2 instead of plain p keeps every precedence
// level two binding powers apart, which is what makes left- and
// right-associativity fall out of which of the pair is larger, rather
// than needing a separate associativity check at each step.
func left(p int) (lbp, rbp int) { return 2*p + 1, 2*p + 2 }

// prefixBindingPower is the binding power every prefix operator parses
// its operand at: higher than any infix operator's left power, so a
// prefix op always binds tighter than whatever follows it (e.g. `-a + b`
// is `(-a) + b`, never `-(a + b)`).
const prefixBindingPower = 255

// precedence levels, low to high.
const (
	precOr = iota
	precAnd
	precEquality
	precComparison
	precRange
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdditive
	precMultiplicative
)

func infixBindingPower(k token.SyntaxKind) (lbp, rbp int, ok bool) {
	switch k {
	case token.OR_KW:
		lbp, rbp = left(precOr)
	case token.AND_KW:
		lbp, rbp = left(precAnd)
	case token.EQ2, token.BANGEQ:
		lbp, rbp = left(precEquality)
	case token.LT, token.GT, token.LTEQ, token.GTEQ:
		lbp, rbp = left(precComparison)
	case token.DOT2:
		lbp, rbp = left(precRange)
	case token.PIPE:
		lbp, rbp = left(precBitOr)
	case token.CARET:
		lbp, rbp = left(precBitXor)
	case token.AMP:
		lbp, rbp = left(precBitAnd)
	case token.LT2, token.GT2:
		lbp, rbp = left(precShift)
	case token.PLUS, token.MINUS:
		lbp, rbp = left(precAdditive)
	case token.STAR, token.SLASH, token.PERCENT:
		lbp, rbp = left(precMultiplicative)
	default:
		return 0, 0, false
	}
	return lbp, rbp, true
}

func isPrefixOp(k token.SyntaxKind) bool {
	switch k {
	case token.PLUS, token.MINUS, token.BANG, token.TILDE, token.NOT_KW:
		return true
	}
	return false
}

// exprFirst is the set of tokens that can begin an expression, used by
// callers deciding whether an expression is present at all (e.g. an
// optional initializer) without committing to parsing one.
func exprFirst(k token.SyntaxKind) bool {
	if isPrefixOp(k) {
		return true
	}
	switch k {
	case token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE, token.NIL,
		token.IDENT, token.OPENPAREN, token.OPENBRACKET, token.OPENBRACE,
		token.FUNC_KW, token.IF_KW, token.DO_KW:
		return true
	}
	return false
}

// parseExpr parses a full expression at the lowest precedence.
func parseExpr(p *Parser) CompletedMarker {
	return exprBP(p, -1)
}

func exprBP(p *Parser, minBP int) CompletedMarker {
	lhs := lhsExpr(p)
	lhs = postfixChain(p, lhs)

	for {
		k := p.nth(0)
		lbp, rbp, ok := infixBindingPower(k)
		if !ok || lbp < minBP {
			break
		}
		m := p.Precede(lhs)
		p.Bump() // operator
		exprBP(p, rbp)
		lhs = p.Complete(m, token.BINARY_EXPR)
	}
	return lhs
}

// lhsExpr parses a prefix operator chain (if any) followed by a single
// atom, with no postfix operators applied yet.
func lhsExpr(p *Parser) CompletedMarker {
	if isPrefixOp(p.nth(0)) {
		m := p.Start()
		p.Bump()
		exprBP(p, prefixBindingPower)
		return p.Complete(m, token.PREFIX_EXPR)
	}
	return atomExpr(p)
}

// postfixChain wraps lhs in INDEX_EXPR / FIELD_EXPR / CALL_EXPR /
// METHOD_CALL_EXPR nodes for as long as a postfix operator follows,
// binding tighter than any infix operator (`a.b()[0]` is one chain, not
// reparsed at a lower level).
func postfixChain(p *Parser, lhs CompletedMarker) CompletedMarker {
	for {
		switch p.nth(0) {
		case token.DOT:
			m := p.Precede(lhs)
			p.Bump()
			if p.at(token.IDENT) {
				parseName(p)
			} else {
				p.ErrorRecover("expected a field name after '.'")
			}
			lhs = p.Complete(m, token.FIELD_EXPR)

		case token.OPENBRACKET:
			m := p.Precede(lhs)
			p.Bump()
			parseExpr(p)
			p.Expect(token.CLOSEBRACKET)
			lhs = p.Complete(m, token.INDEX_EXPR)

		case token.OPENPAREN:
			m := p.Precede(lhs)
			parseArgList(p)
			lhs = p.Complete(m, token.CALL_EXPR)

		case token.ARROW:
			m := p.Precede(lhs)
			p.Bump()
			if p.at(token.IDENT) {
				parseName(p)
			} else {
				p.ErrorRecover("expected a method name after '->'")
			}
			if p.at(token.OPENPAREN) {
				parseArgList(p)
			} else {
				p.ErrorRecover("expected an argument list", token.SEMI)
			}
			lhs = p.Complete(m, token.METHOD_CALL_EXPR)

		default:
			return lhs
		}
	}
}

func atomExpr(p *Parser) CompletedMarker {
	switch p.nth(0) {
	case token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE, token.NIL:
		return parseLiteral(p)

	case token.IDENT:
		return parseLocalVar(p)

	case token.OPENPAREN:
		m := p.Start()
		p.Bump()
		parseExpr(p)
		p.Expect(token.CLOSEPAREN)
		return p.Complete(m, token.PAREN_EXPR)

	case token.OPENBRACKET:
		return parseArrayConst(p)

	case token.OPENBRACE:
		return parseTableConst(p)

	case token.FUNC_KW:
		return parseFuncConst(p)

	case token.IF_KW:
		return parseIfExpr(p)

	case token.DO_KW:
		return parseDoExpr(p)

	default:
		m := p.Start()
		p.ErrorRecover("expected an expression")
		return p.Complete(m, token.ERROR)
	}
}

func parseDoExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.DO_KW)
	parseBlockUntil(p, token.END_KW)
	p.Expect(token.END_KW)
	return p.Complete(m, token.DO_EXPR)
}

func parseIfExpr(p *Parser) CompletedMarker {
	m := p.Start()
	parseIfBranch(p)
	for p.at(token.ELIF_KW) {
		parseElifBranch(p)
	}
	if p.at(token.ELSE_KW) {
		parseElseBranch(p)
	}
	p.Expect(token.END_KW)
	return p.Complete(m, token.IF_EXPR)
}

func parseIfBranch(p *Parser) {
	p.Expect(token.IF_KW)
	parseExpr(p)
	p.Expect(token.THEN_KW)
	parseBlockUntil(p, token.ELIF_KW, token.ELSE_KW, token.END_KW)
}

func parseElifBranch(p *Parser) {
	m := p.Start()
	p.Expect(token.ELIF_KW)
	parseExpr(p)
	p.Expect(token.THEN_KW)
	parseBlockUntil(p, token.ELIF_KW, token.ELSE_KW, token.END_KW)
	p.Complete(m, token.ELIF_BRANCH)
}

func parseElseBranch(p *Parser) {
	m := p.Start()
	p.Expect(token.ELSE_KW)
	parseBlockUntil(p, token.END_KW)
	p.Complete(m, token.ELSE_BRANCH)
}
