package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIndex(t *testing.T) {
	src := []byte("ab\ncd\n\nef")
	li := NewLineIndex(src)

	line, col := li.LineCol(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, col)

	line, col = li.LineCol(1)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = li.LineCol(3)
	assert.Equal(t, 2, line)
	assert.Equal(t, 0, col)

	line, col = li.LineCol(6)
	assert.Equal(t, 3, line)
	assert.Equal(t, 0, col)

	line, col = li.LineCol(7)
	assert.Equal(t, 4, line)
	assert.Equal(t, 0, col)
}

func TestTextRange(t *testing.T) {
	r := NewRange(2, 5)
	assert.Equal(t, uint32(3), r.Len())
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(5))

	r2 := NewRange(4, 8)
	assert.Equal(t, NewRange(2, 8), r.Cover(r2))
	assert.Equal(t, NewRange(12, 15), r.Shift(10))
}
