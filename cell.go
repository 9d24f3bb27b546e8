package zithril

// Cell is one terminal character cell: a Unicode scalar value, its display
// width (0, 1, or 2), and a style.
type Cell struct {
	Rune  rune
	Width uint8
	Style Style
}

// DefaultCell is the cell a buffer is filled with: a space of width 1 and
// the empty style. It differs from the Go zero value Cell{}, whose width 0
// marks a placeholder.
var DefaultCell = Cell{Rune: ' ', Width: 1, Style: Empty}

// placeholder is the width-0 cell following a wide cell's first column.
func placeholder(style Style) Cell {
	return Cell{Rune: ' ', Width: 0, Style: style}
}

// IsPlaceholder reports whether c is a wide-cell continuation marker.
func (c Cell) IsPlaceholder() bool { return c.Width == 0 }

// Equal reports structural equality, comparing styles semantically (via
// Style.Equal) rather than by raw struct equality so cells reconstructed
// through a different code path (e.g. a golden-file round trip) still
// compare equal despite incidental floating-point noise in Color.RGB.
func (c Cell) Equal(o Cell) bool {
	return c.Rune == o.Rune && c.Width == o.Width && c.Style.Equal(o.Style)
}
