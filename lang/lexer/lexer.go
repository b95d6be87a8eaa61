package lexer

import (
	"github.com/lico-lang/lico/lang/token"
)

// Lexeme is one token produced by Lex: its kind/length pair plus whatever
// extra classification that kind carries (only one of Int/Float/Str is
// meaningful, selected by Token.Kind).
type Lexeme struct {
	Token token.Token
	Int   token.IntInfo
	Float token.FloatInfo
	Str   token.StringInfo
}

// Lex tokenizes src in full and returns every lexeme, including trivia
// (whitespace, comments) and a trailing synthetic EOF-less end: callers
// that need an explicit end-of-input marker check for reaching the end of
// the returned slice, the lexer never emits an EOF token itself. The
// lexer never fails outright: malformed input (unterminated strings,
// invalid identifiers, illegal bytes) still produces a token stream,
// classified so the parser or diagnostics layer can react to it.
func Lex(src string) []Lexeme {
	l := &lexer{cur: newCursor(src)}
	var out []Lexeme
	for !l.cur.atEnd() {
		out = append(out, l.next())
	}
	return out
}

type lexer struct {
	cur *cursor
}

func (l *lexer) next() Lexeme {
	l.cur.startToken()
	r, ok := l.cur.next()
	if !ok {
		return Lexeme{Token: token.Token{Kind: token.ERROR, Len: 0}}
	}

	switch {
	case isWhitespaceChar(r):
		l.cur.eatWhile(isWhitespaceChar)
		return l.finish(token.WHITESPACE)

	case r == '#':
		return l.lexComment()

	case r == '"' || r == '\'':
		return l.lexString(r)

	case isDecimalDigit(r) || (r == '.' && peekIsDigit(l.cur)):
		l.cur.pos = l.cur.bumped // rewind, number() re-reads from the start
		return l.lexNumber()

	case isIdentStartChar(r):
		l.cur.eatWhile(isIdentContinueChar)
		text := l.text()
		if kw, ok := token.Keywords[text]; ok {
			return l.finish(kw)
		}
		return l.finish(token.IDENT)

	case isEmojiChar(r):
		l.cur.eatWhile(isIdentContinueChar)
		return l.finish(token.ERROR)

	default:
		return l.lexPunct(r)
	}
}

func (l *lexer) text() string {
	return l.cur.src[l.cur.bumped:l.cur.pos]
}

func (l *lexer) finish(kind token.SyntaxKind) Lexeme {
	return Lexeme{Token: token.Token{Kind: kind, Len: l.cur.bump()}}
}

func peekIs(c *cursor, want rune) bool {
	r, w := c.peek()
	return w > 0 && r == want
}

func peekIsDigit(c *cursor) bool {
	r, w := c.peek()
	return w > 0 && isDecimalDigit(r)
}

// twoCharPuncts lists every two-rune punctuation token, checked before
// falling back to a single-rune lookup; longest match wins.
var twoCharPuncts = map[[2]rune]token.SyntaxKind{
	{'-', '>'}: token.ARROW,
	{'!', '='}: token.BANGEQ,
	{'=', '='}: token.EQ2,
	{'<', '<'}: token.LT2,
	{'<', '='}: token.LTEQ,
	{'>', '>'}: token.GT2,
	{'>', '='}: token.GTEQ,
	{'.', '.'}: token.DOT2,
}

var oneCharPuncts = map[rune]token.SyntaxKind{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'&': token.AMP,
	'|': token.PIPE,
	'^': token.CARET,
	'~': token.TILDE,
	'!': token.BANG,
	'=': token.EQ,
	'<': token.LT,
	'>': token.GT,
	'.': token.DOT,
	'@': token.AT,
	',': token.COMMA,
	':': token.COLON,
	'(': token.OPENPAREN,
	')': token.CLOSEPAREN,
	'{': token.OPENBRACE,
	'}': token.CLOSEBRACE,
	'[': token.OPENBRACKET,
	']': token.CLOSEBRACKET,
}

func (l *lexer) lexPunct(first rune) Lexeme {
	if second, w := l.cur.peek(); w > 0 {
		if kind, ok := twoCharPuncts[[2]rune{first, second}]; ok {
			l.cur.next()
			return l.finish(kind)
		}
	}
	if kind, ok := oneCharPuncts[first]; ok {
		return l.finish(kind)
	}
	return l.finish(token.ERROR)
}
