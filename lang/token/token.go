package token

// Token is the lexer's output unit: a kind and a byte length, not a byte
// range. The lexer is only ever asked for the next token's length and
// advances a cursor by it; TextRange values are computed by whoever is
// assembling a token stream into a tree (see lang/cst), not by the lexer
// itself.
type Token struct {
	Kind SyntaxKind
	Len  uint32
}

// NumBase is the base a numeric literal token was lexed in.
type NumBase uint8

const (
	Binary NumBase = iota
	Octal
	Decimal
	Hexadecimal
)

// QuoteKind distinguishes single- and double-quoted string literals; both
// are accepted with identical semantics, but the CST keeps the original
// quote character for lossless printing.
type QuoteKind uint8

const (
	SingleQuote QuoteKind = iota
	DoubleQuote
)

// IntInfo carries the extra classification an INT token needs beyond its
// kind and length: the base it was written in, and whether the digits
// after the base prefix were empty (e.g. "0x" with no hex digits), which
// is a lexer-level error recorded but not fatal to tokenizing.
type IntInfo struct {
	Base     NumBase
	EmptyInt bool
}

// FloatInfo carries the extra classification a FLOAT token needs: whether
// an exponent marker ('e'/'E') was present with no digits following it.
type FloatInfo struct {
	EmptyExponent bool
}

// StringInfo carries the extra classification a STRING token needs: which
// quote character delimited it, and whether a closing quote was found
// before the token ended (an unterminated string still produces a token,
// so the lexer never panics or aborts on malformed input).
type StringInfo struct {
	Quote      QuoteKind
	Terminated bool
}
