package parser

import "github.com/lico-lang/lico/lang/token"

// stmtFirst is the set of tokens that can begin a statement, used by
// parseBlockUntil to decide whether to keep parsing statements or stop
// (either because a block terminator was reached, or because recovery
// has nothing left it recognizes).
func stmtFirst(k token.SyntaxKind) bool {
	switch k {
	case token.VAR_KW, token.FUNC_KW, token.FOR_KW, token.WHILE_KW,
		token.RETURN_KW, token.BREAK_KW, token.CONTINUE_KW:
		return true
	}
	return exprFirst(k)
}

// parseProgram is the grammar's entry point: a PROGRAM node wrapping every
// top-level statement through end of input.
func parseProgram(p *Parser) CompletedMarker {
	m := p.Start()
	parseBlockUntil(p)
	// trailing trivia belongs inside PROGRAM, so the tree's root is the
	// PROGRAM node itself rather than a wrapper around it
	p.bumpTrivia()
	return p.Complete(m, token.PROGRAM)
}

// parseBlockUntil parses statements until the next significant token is
// one of stop, or input is exhausted. It does not consume the stop
// token itself; callers Expect it afterward.
func parseBlockUntil(p *Parser, stop ...token.SyntaxKind) {
	for !p.atEOF() {
		k := p.nth(0)
		for _, s := range stop {
			if k == s {
				return
			}
		}
		if !stmtFirst(k) {
			p.ErrorRecover("expected a statement", stop...)
			continue
		}
		parseStmt(p)
	}
}

func parseStmt(p *Parser) {
	switch p.nth(0) {
	case token.VAR_KW:
		parseVarStmt(p)
	case token.FUNC_KW:
		parseFuncStmt(p)
	case token.FOR_KW:
		parseForStmt(p)
	case token.WHILE_KW:
		parseWhileStmt(p)
	case token.RETURN_KW:
		parseReturnStmt(p)
	case token.BREAK_KW:
		parseBreakStmt(p)
	case token.CONTINUE_KW:
		parseContinueStmt(p)
	default:
		parseExprOrAttrStmt(p)
	}
	// a statement terminator is optional punctuation, not required: consume
	// it if present so it doesn't get swept into the next statement's error
	// recovery.
	for p.at(token.SEMI) {
		p.Bump()
	}
}

func parseVarStmt(p *Parser) {
	m := p.Start()
	p.Expect(token.VAR_KW)
	parseName(p)
	if p.at(token.EQ) {
		p.Bump()
		parseExpr(p)
	}
	p.Complete(m, token.VAR_STMT)
}

// parseFuncStmt parses `func name[.name...][-> method](params) ... end`.
// The optional `-> method` clause, mirroring `recv->method(args)` call
// syntax, names the method being installed on the table the preceding
// NamePath resolves to; without it, NamePath is an ordinary (possibly
// dotted) assignment target for a plain function value.
func parseFuncStmt(p *Parser) {
	m := p.Start()
	p.Expect(token.FUNC_KW)
	parseNamePath(p)
	if p.at(token.ARROW) {
		p.Bump()
		parseName(p)
	}
	parseParamList(p)
	parseBlockUntil(p, token.END_KW)
	p.Expect(token.END_KW)
	p.Complete(m, token.FUNC_STMT)
}

func parseForStmt(p *Parser) {
	m := p.Start()
	p.Expect(token.FOR_KW)
	parseName(p)
	p.Expect(token.IN_KW)
	parseExpr(p)
	p.Expect(token.DO_KW)
	parseBlockUntil(p, token.END_KW)
	p.Expect(token.END_KW)
	p.Complete(m, token.FOR_STMT)
}

func parseWhileStmt(p *Parser) {
	m := p.Start()
	p.Expect(token.WHILE_KW)
	parseExpr(p)
	p.Expect(token.DO_KW)
	parseBlockUntil(p, token.END_KW)
	p.Expect(token.END_KW)
	p.Complete(m, token.WHILE_STMT)
}

func parseReturnStmt(p *Parser) {
	m := p.Start()
	p.Expect(token.RETURN_KW)
	if exprFirst(p.nth(0)) {
		parseExpr(p)
	}
	p.Complete(m, token.RETURN_STMT)
}

func parseBreakStmt(p *Parser) {
	m := p.Start()
	p.Expect(token.BREAK_KW)
	p.Complete(m, token.BREAK_STMT)
}

func parseContinueStmt(p *Parser) {
	m := p.Start()
	p.Expect(token.CONTINUE_KW)
	p.Complete(m, token.CONTINUE_STMT)
}

// parseExprOrAttrStmt parses an expression statement, then checks for a
// trailing `= expr`: if present, the expression just parsed was actually
// an assignment target (a LOCAL_VAR, FIELD_EXPR or INDEX_EXPR) and the
// whole thing is wrapped as an ATTR_STMT instead of EXPR_STMT. Assignment
// is only ever recognized here, at statement position, and only once: in
// `a = b = c` the second `=` is left over, and the enclosing block reports
// it as "expected a statement".
func parseExprOrAttrStmt(p *Parser) {
	m := p.Start()
	lhs := parseExpr(p)
	_ = lhs
	if p.at(token.EQ) {
		p.Bump()
		parseExpr(p)
		p.Complete(m, token.ATTR_STMT)
		return
	}
	p.Complete(m, token.EXPR_STMT)
}
