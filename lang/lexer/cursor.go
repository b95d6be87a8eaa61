package lexer

import "unicode/utf8"

// cursor walks source bytes one rune at a time, tracking how many bytes
// remain so that bump can compute the length of the token just consumed.
// Grounded on original_source's lexer Cursor (chars/remaining_len/peek/
// eat_while/bump), translated from Rust's char iterator to a byte-offset
// walk since Go strings are not iterated as indexable rune sequences.
type cursor struct {
	src    string
	pos    int // byte offset of the next unread byte
	bumped int // byte offset at the start of the token being built
}

func newCursor(src string) *cursor {
	return &cursor{src: src}
}

// peek returns the next rune without consuming it, or utf8.RuneError with
// a zero width at end of input.
func (c *cursor) peek() (rune, int) {
	if c.pos >= len(c.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(c.src[c.pos:])
}

// peek2 looks one rune further ahead than peek, used for lookahead like
// '..' vs '.'.
func (c *cursor) peek2() (rune, int) {
	_, w1 := c.peek()
	if w1 == 0 || c.pos+w1 >= len(c.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(c.src[c.pos+w1:])
}

// next consumes and returns the next rune, or (utf8.RuneError, false) at
// end of input.
func (c *cursor) next() (rune, bool) {
	r, w := c.peek()
	if w == 0 {
		return utf8.RuneError, false
	}
	c.pos += w
	return r, true
}

// eatWhile consumes runes while pred holds, stopping at end of input.
func (c *cursor) eatWhile(pred func(rune) bool) {
	for {
		r, w := c.peek()
		if w == 0 || !pred(r) {
			return
		}
		_ = r
		c.pos += w
	}
}

// atEnd reports whether the cursor has consumed all of src.
func (c *cursor) atEnd() bool { return c.pos >= len(c.src) }

// startToken marks the current position as the start of the token about to
// be lexed; bump measures length relative to this mark.
func (c *cursor) startToken() { c.bumped = c.pos }

// bump finalizes the token started at the last startToken call, returning
// its byte length.
func (c *cursor) bump() uint32 { return uint32(c.pos - c.bumped) }
