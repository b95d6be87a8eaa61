package parser

import "github.com/lico-lang/lico/lang/token"

// parseName wraps a single IDENT token in a NAME node.
func parseName(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.IDENT)
	return p.Complete(m, token.NAME)
}

// parseNamePath parses a dotted chain of names (`a.b.c`), used for
// function statement targets (`func a.b.c() ... end`), which is the one
// place a dotted name is a declaration target rather than a FIELD_EXPR
// read/write chain.
func parseNamePath(p *Parser) CompletedMarker {
	m := p.Start()
	parseName(p)
	for p.at(token.DOT) {
		p.Bump()
		parseName(p)
	}
	return p.Complete(m, token.NAME_PATH)
}

// parseLocalVar wraps a bare identifier reference in a LOCAL_VAR node;
// dotted/indexed access is built up afterward by postfixChain's
// FIELD_EXPR/INDEX_EXPR wrapping, not here.
func parseLocalVar(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.IDENT)
	return p.Complete(m, token.LOCAL_VAR)
}

func parseLiteral(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump()
	return p.Complete(m, token.LITERAL)
}

// parseArrayConst parses `[ expr, expr, ... ]`, trailing comma allowed.
func parseArrayConst(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.OPENBRACKET)
	for !p.at(token.CLOSEBRACKET) && !p.atEOF() {
		parseExpr(p)
		if !p.at(token.CLOSEBRACKET) {
			if !p.Expect(token.COMMA) {
				p.ErrorRecover("expected ',' or ']'", token.CLOSEBRACKET)
			}
		}
	}
	p.Expect(token.CLOSEBRACKET)
	return p.Complete(m, token.ARRAY_CONST)
}

// parseTableConst parses `{ field, field, ... }`.
func parseTableConst(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.OPENBRACE)
	for !p.at(token.CLOSEBRACE) && !p.atEOF() {
		parseTableField(p)
		if !p.at(token.CLOSEBRACE) {
			if !p.Expect(token.COMMA) {
				p.ErrorRecover("expected ',' or '}'", token.CLOSEBRACE)
			}
		}
	}
	p.Expect(token.CLOSEBRACE)
	return p.Complete(m, token.TABLE_CONST)
}

// parseTableField parses one table constructor entry: either
//
//	name = expr            (TABLE_FIELD_NAME_IDENT)
//	[expr] = expr          (TABLE_FIELD_NAME_EXPR)
//	func name(...) ... end (a method: sugar for name = func(...) ... end)
//	expr                   (positional array-style entry within a table)
func parseTableField(p *Parser) CompletedMarker {
	m := p.Start()

	if p.at(token.FUNC_KW) {
		fm := p.Start()
		p.Bump() // func
		parseName(p)
		p.Complete(fm, token.TABLE_FIELD_NAME_IDENT)
		parseParamList(p)
		parseBlockUntil(p, token.END_KW)
		p.Expect(token.END_KW)
		return p.Complete(m, token.TABLE_FIELD)
	}

	if p.at(token.OPENBRACKET) {
		nm := p.Start()
		p.Bump()
		parseExpr(p)
		p.Expect(token.CLOSEBRACKET)
		p.Complete(nm, token.TABLE_FIELD_NAME_EXPR)
		if p.at(token.COLON) {
			// `[expr]: expr` is reported but still parsed as `[expr] = expr`.
			p.errors = append(p.errors, Diagnostic{Message: "expected '=', found ':'", Range: p.currentRange()})
			p.Bump()
		} else {
			p.Expect(token.EQ)
		}
		parseExpr(p)
		return p.Complete(m, token.TABLE_FIELD)
	}

	if p.at(token.IDENT) && p.nth(1) == token.EQ {
		nm := p.Start()
		parseName(p)
		p.Complete(nm, token.TABLE_FIELD_NAME_IDENT)
		p.Bump() // '='
		parseExpr(p)
		return p.Complete(m, token.TABLE_FIELD)
	}

	parseExpr(p)
	return p.Complete(m, token.TABLE_FIELD)
}

// parseFuncConst parses an anonymous function literal:
// `func(params) ... end`.
func parseFuncConst(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.FUNC_KW)
	parseParamList(p)
	parseBlockUntil(p, token.END_KW)
	p.Expect(token.END_KW)
	return p.Complete(m, token.FUNC_CONST)
}

// parseParamList parses `(name, name, ...)`, recovering to the closing
// paren on a malformed entry so one bad parameter doesn't desync the rest
// of the function.
func parseParamList(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.OPENPAREN)
	for !p.at(token.CLOSEPAREN) && !p.atEOF() {
		if p.at(token.IDENT) {
			parseName(p)
		} else {
			p.ErrorRecover("expected a parameter name", token.COMMA, token.CLOSEPAREN)
		}
		if !p.at(token.CLOSEPAREN) {
			if !p.Expect(token.COMMA) {
				p.ErrorRecover("expected ',' or ')'", token.CLOSEPAREN)
			}
		}
	}
	p.Expect(token.CLOSEPAREN)
	return p.Complete(m, token.PARAM_LIST)
}

// parseArgList parses `(expr, expr, ...)`.
func parseArgList(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.OPENPAREN)
	for !p.at(token.CLOSEPAREN) && !p.atEOF() {
		parseExpr(p)
		if !p.at(token.CLOSEPAREN) {
			if !p.Expect(token.COMMA) {
				p.ErrorRecover("expected ',' or ')'", token.CLOSEPAREN)
			}
		}
	}
	p.Expect(token.CLOSEPAREN)
	return p.Complete(m, token.ARG_LIST)
}
