package lexer

import "github.com/lico-lang/lico/lang/token"

// lexString classifies a STRING token, tracking only the quote character
// and whether a matching close quote was found — it does not interpret
// escape sequences, which is deferred to IR lowering so the lexer never
// needs to allocate a decoded buffer per original_source's lexer (it only
// ever returns a Token{kind,len}, no value). A backslash always escapes
// the following rune, including the opening quote, so `'\''` lexes as one
// terminated string.
func (l *lexer) lexString(quote rune) Lexeme {
	kind := token.DoubleQuote
	if quote == '\'' {
		kind = token.SingleQuote
	}

	terminated := false
	for {
		r, w := l.cur.peek()
		if w == 0 || r == '\n' {
			break
		}
		l.cur.next()
		if r == '\\' {
			if _, w2 := l.cur.peek(); w2 > 0 {
				l.cur.next()
			}
			continue
		}
		if r == quote {
			terminated = true
			break
		}
	}

	return Lexeme{
		Token: token.Token{Kind: token.STRING, Len: l.cur.bump()},
		Str:   token.StringInfo{Quote: kind, Terminated: terminated},
	}
}
