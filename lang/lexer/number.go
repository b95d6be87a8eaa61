package lexer

import "github.com/lico-lang/lico/lang/token"

// lexNumber classifies an INT or FLOAT token starting at the cursor's
// current (just-rewound) position. It records the numeric base and
// whether the digit run after a base prefix or exponent marker was empty,
// but never parses the value itself — value decoding happens once, at
// IR-lowering time, against the final literal text (see lang/ir).
// Grounded on original_source's lexer number-scanning (base prefix
// detection then digit/fraction/exponent runs), adapted to the teacher's
// habit of keeping an emptyInt/emptyExponent flag rather than erroring
// immediately (scanner/number.go's `digsep` bit similarly defers the "has
// no digits" diagnostic to the caller).
func (l *lexer) lexNumber() Lexeme {
	l.cur.startToken()

	base := token.Decimal
	r, _ := l.cur.peek()
	if r == '0' {
		l.cur.next()
		if r2, w := l.cur.peek(); w > 0 {
			switch r2 {
			case 'x', 'X':
				l.cur.next()
				base = token.Hexadecimal
			case 'o', 'O':
				l.cur.next()
				base = token.Octal
			case 'b', 'B':
				l.cur.next()
				base = token.Binary
			}
		}
	}

	digitPred := digitPredicateFor(base)
	// A leading '0' with no base prefix is itself a decimal digit.
	hadDigits := l.eatDigits(digitPred) || (r == '0' && base == token.Decimal)

	isFloat := false
	if r, w := l.cur.peek(); w > 0 && r == '.' {
		if r2, w2 := l.cur.peek2(); !(w2 > 0 && r2 == '.') {
			// a single '.' followed by more digits is a fraction; '..' is the
			// range punctuation and must not be swallowed here.
			isFloat = true
			l.cur.next()
			hadDigits = l.eatDigits(digitPred) || hadDigits
		}
	}

	emptyExponent := false
	if r, w := l.cur.peek(); w > 0 && (r == 'e' || r == 'E') {
		isFloat = true
		l.cur.next()
		if r2, w2 := l.cur.peek(); w2 > 0 && (r2 == '+' || r2 == '-') {
			l.cur.next()
		}
		emptyExponent = !l.eatDigits(isDecimalDigit)
	}

	if isFloat {
		return Lexeme{
			Token: token.Token{Kind: token.FLOAT, Len: l.cur.bump()},
			Float: token.FloatInfo{EmptyExponent: emptyExponent},
		}
	}
	return Lexeme{
		Token: token.Token{Kind: token.INT, Len: l.cur.bump()},
		Int:   token.IntInfo{Base: base, EmptyInt: !hadDigits},
	}
}

func digitPredicateFor(base token.NumBase) func(rune) bool {
	switch base {
	case token.Binary:
		return isBinaryDigit
	case token.Octal:
		return isOctalDigit
	case token.Hexadecimal:
		return isHexDigit
	default:
		return isDecimalDigit
	}
}

// eatDigits consumes a run of digits (allowing '_' separators, which are
// accepted but not validated for placement at this layer) and reports
// whether at least one real digit was seen.
func (l *lexer) eatDigits(pred func(rune) bool) bool {
	seen := false
	for {
		r, w := l.cur.peek()
		if w == 0 {
			return seen
		}
		if r == '_' {
			l.cur.next()
			continue
		}
		if !pred(r) {
			return seen
		}
		seen = true
		l.cur.next()
	}
}
