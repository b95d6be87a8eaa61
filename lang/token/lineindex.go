package token

import "sort"

// LineIndex maps byte offsets to 1-based line / 0-based column pairs, per
// spec's external diagnostic format. It is built once from source text and
// reused for every diagnostic produced against that text; nothing in the
// lexer or parser carries line/column information directly, so this is
// the only place that pays the cost of finding them.
type LineIndex struct {
	// lineStarts[i] is the byte offset of the first byte of line i+1.
	lineStarts []uint32
}

// NewLineIndex scans src once for line breaks ('\n') and records where
// each line begins.
func NewLineIndex(src []byte) *LineIndex {
	starts := []uint32{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	return &LineIndex{lineStarts: starts}
}

// LineCol returns the 1-based line and 0-based column of the given byte
// offset.
func (li *LineIndex) LineCol(offset uint32) (line, col int) {
	i := sort.Search(len(li.lineStarts), func(i int) bool {
		return li.lineStarts[i] > offset
	})
	lineIdx := i - 1
	if lineIdx < 0 {
		lineIdx = 0
	}
	return lineIdx + 1, int(offset - li.lineStarts[lineIdx])
}
