package lexer

import "unicode"

// isWhitespaceChar classifies a rune as insignificant whitespace. Grounded
// on the Unicode ranges the original lexer uses (matching .NET's
// Char.IsWhiteSpace plus a couple of bidi marks), which is wider than Go's
// own unicode.IsSpace.
func isWhitespaceChar(c rune) bool {
	switch {
	case c == '\t', c == '\n', c == '\v', c == '\f', c == '\r':
		return true
	case c == '\u0085', c == '\u200E', c == '\u200F':
		// NEL, left-to-right mark, right-to-left mark
		return true
	case c == ' ', c == '\u00A0', c == '\u1680':
		// space, no-break space, ogham space mark
		return true
	case c >= '\u2000' && c <= '\u200A':
		// en quad .. hair space
		return true
	case c == '\u202F', c == '\u205F', c == '\u3000':
		// narrow no-break space, medium mathematical space, ideographic space
		return true
	case c == '\u2028', c == '\u2029':
		// line separator, paragraph separator
		return true
	}
	return false
}

// isIdentStartChar reports whether c may begin an identifier: underscore
// or a Unicode "XID_Start" character. Go's unicode package has no direct
// XID tables, so this approximates XID_Start with the Letter category,
// which covers the overwhelming majority of identifiers the original's
// unicode-ident crate accepts.
func isIdentStartChar(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

// isIdentContinueChar reports whether c may continue an identifier after
// its first character: XID_Continue, approximated with
// Letter/Mark/Number/Connector-punctuation categories.
func isIdentContinueChar(c rune) bool {
	return c == '_' ||
		unicode.IsLetter(c) ||
		unicode.IsDigit(c) ||
		unicode.Is(unicode.Mn, c) ||
		unicode.Is(unicode.Mc, c) ||
		unicode.Is(unicode.Pc, c)
}

// isEmojiChar approximates the original's emoji-class check used to reject
// identifiers that start with an emoji rune (producing an InvalidIdent
// token instead of IDENT). Go's unicode tables have no Emoji property, so
// this approximates it with the Unicode "Other Symbol" category, which
// contains the bulk of emoji code points and excludes ASCII entirely
// (ASCII is handled by isIdentStartChar already, never reaching here).
func isEmojiChar(c rune) bool {
	return c > unicode.MaxASCII && unicode.Is(unicode.So, c)
}

func isDecimalDigit(c rune) bool { return c >= '0' && c <= '9' }

func isHexDigit(c rune) bool {
	return isDecimalDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isOctalDigit(c rune) bool { return c >= '0' && c <= '7' }

func isBinaryDigit(c rune) bool { return c == '0' || c == '1' }
