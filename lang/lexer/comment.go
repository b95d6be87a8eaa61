package lexer

import "github.com/lico-lang/lico/lang/token"

// lexComment consumes a line comment, whose leading '#' the caller has
// already consumed, through end of line (exclusive); the newline itself is
// a separate whitespace token, matching the trivia split original_source
// keeps between COMMENT and WHITESPACE.
func (l *lexer) lexComment() Lexeme {
	l.cur.eatWhile(func(c rune) bool { return c != '\n' })
	return l.finish(token.COMMENT)
}
