package zithril

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Buffer is a fixed-size 2-D grid of Cells addressed by (x, y), row-major.
// It owns its cell array for its lifetime.
type Buffer struct {
	width, height int
	cells         []Cell
}

// NewBuffer allocates a buffer of the given size, filled with DefaultCell.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Buffer{width: width, height: height, cells: make([]Cell, width*height)}
	b.Clear()
	return b
}

// Width and Height return the buffer's dimensions.
func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Area returns the buffer's full extent as a Rect at origin (0, 0).
func (b *Buffer) Area() Rect { return Rect{Width: b.width, Height: b.height} }

func (b *Buffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, false
	}
	return y*b.width + x, true
}

// Get returns the cell at (x, y). Out-of-bounds coordinates return the
// default cell; this never fails.
func (b *Buffer) Get(x, y int) Cell {
	idx, ok := b.index(x, y)
	if !ok {
		return DefaultCell
	}
	return b.cells[idx]
}

// Set writes cell at (x, y). If cell.Width == 2, a width-0 placeholder is
// also written at (x+1, y) with the same style; if there is no room for
// the placeholder the wide cell is demoted to a single-width space instead
// of being written partially. If the cell previously at (x, y) was the
// placeholder of a wide cell at (x-1, y), that wide cell is demoted to a
// space. If the cell previously at (x, y) was itself the head of a wide
// cell and is being overwritten by a non-wide cell, the now-orphaned
// placeholder at (x+1, y) is reset to the default cell.
func (b *Buffer) Set(x, y int, cell Cell) {
	idx, ok := b.index(x, y)
	if !ok {
		return
	}

	prev := b.cells[idx]
	if prev.IsPlaceholder() && x > 0 {
		if pIdx, pok := b.index(x-1, y); pok {
			wide := b.cells[pIdx]
			if wide.Width == 2 {
				b.cells[pIdx] = Cell{Rune: ' ', Width: 1, Style: wide.Style}
			}
		}
	}

	if cell.Width == 2 {
		nIdx, nok := b.index(x+1, y)
		if !nok {
			b.cells[idx] = Cell{Rune: ' ', Width: 1, Style: cell.Style}
			return
		}
		b.cells[idx] = cell
		b.cells[nIdx] = placeholder(cell.Style)
		return
	}

	if prev.Width == 2 {
		if nIdx, nok := b.index(x+1, y); nok {
			b.cells[nIdx] = DefaultCell
		}
	}
	b.cells[idx] = cell
}

// Fill writes cell to every position in the intersection of rect and the
// buffer's own area.
func (b *Buffer) Fill(rect Rect, cell Cell) {
	area := rect.Intersection(b.Area())
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			b.Set(x, y, cell)
		}
	}
}

// Clear resets every cell to DefaultCell.
func (b *Buffer) Clear() {
	b.Fill(b.Area(), DefaultCell)
}

// SetString renders a UTF-8 string at (x, y) with the given style,
// advancing by each grapheme cluster's display width and emitting
// placeholders for wide glyphs. Writing clips at the row's right edge: a
// wide glyph that would not fully fit is demoted to a single-width space
// and no further clusters are written. Calling with x already at or past
// the buffer's width writes nothing. Returns the number of columns
// advanced.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	if y < 0 || y >= b.height || x < 0 || x >= b.width {
		return 0
	}

	col := x
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Str()
		w := runewidth.StringWidth(cluster)
		if w > 2 {
			w = 2
		}
		if w == 0 {
			// Pure combining sequence with no base rune preceding it in
			// this call; nothing to attach it to, so it is dropped.
			continue
		}
		if col >= b.width {
			break
		}
		if col+w > b.width {
			b.Set(col, y, Cell{Rune: ' ', Width: 1, Style: style})
			col++
			break
		}
		runes := []rune(cluster)
		b.Set(col, y, Cell{Rune: runes[0], Width: uint8(w), Style: style})
		col += w
	}
	return col - x
}

// Resize reallocates the buffer to the new dimensions, preserving the
// overlapping region of content and zeroing (DefaultCell) everything else.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	newCells := make([]Cell, width*height)
	for i := range newCells {
		newCells[i] = DefaultCell
	}

	minW := min(width, b.width)
	minH := min(height, b.height)
	for y := 0; y < minH; y++ {
		srcStart := y * b.width
		dstStart := y * width
		copy(newCells[dstStart:dstStart+minW], b.cells[srcStart:srcStart+minW])
	}

	b.width = width
	b.height = height
	b.cells = newCells
	b.fixRowEdges()
}

// fixRowEdges demotes any wide cell left dangling at the last column of a
// row (its placeholder column no longer exists after a resize).
func (b *Buffer) fixRowEdges() {
	if b.width == 0 {
		return
	}
	for y := 0; y < b.height; y++ {
		idx := y*b.width + b.width - 1
		if b.cells[idx].Width == 2 {
			b.cells[idx] = Cell{Rune: ' ', Width: 1, Style: b.cells[idx].Style}
		}
	}
}

// Equal reports cell-wise equality between two same-or-different-sized
// buffers (differing dimensions are simply unequal).
func (b *Buffer) Equal(o *Buffer) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.cells {
		if !b.cells[i].Equal(o.cells[i]) {
			return false
		}
	}
	return true
}

// runeDisplayWidth returns 0 for combining/zero-width runes, 2 for
// East-Asian Wide/Full-Width runes, else 1.
func runeDisplayWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// CopyFrom overwrites b's contents with o's, resizing b to match if needed.
func (b *Buffer) CopyFrom(o *Buffer) {
	if b.width != o.width || b.height != o.height {
		b.width, b.height = o.width, o.height
		b.cells = make([]Cell, len(o.cells))
	}
	copy(b.cells, o.cells)
}
