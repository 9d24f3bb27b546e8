package harness

import (
	"fmt"

	zithril "github.com/hotschmoe/zithril-sub000"
)

// ExpectCell asserts that the cell at (x, y) carries the rune ch. On
// mismatch a failure is recorded and execution continues.
func (h *Harness) ExpectCell(x, y int, ch rune) bool {
	cell := h.curr.Get(x, y)
	if cell.Rune == ch {
		return true
	}
	h.record("expect_cell", string(ch), string(cell.Rune))
	return false
}

// ExpectString asserts that, starting at (x, y), consecutive cells spell
// s, advancing by each cell's display width so wide glyphs consume two
// columns.
func (h *Harness) ExpectString(x, y int, s string) bool {
	col := x
	for _, r := range s {
		cell := h.curr.Get(col, y)
		if cell.Rune != r {
			h.record("expect_string", s, fmt.Sprintf("mismatch at (%d,%d): want %q got %q", col, y, r, cell.Rune))
			return false
		}
		width := int(cell.Width)
		if width < 1 {
			width = 1
		}
		col += width
	}
	return true
}

// ExpectStyle asserts that the cell at (x, y) carries attr.
func (h *Harness) ExpectStyle(x, y int, attr zithril.Attr) bool {
	cell := h.curr.Get(x, y)
	if cell.Style.Attrs.Has(attr) {
		return true
	}
	h.record("expect_style", attrName(attr), "missing")
	return false
}

// ExpectEmpty asserts that the cell at (x, y) is a default space with
// empty style.
func (h *Harness) ExpectEmpty(x, y int) bool {
	cell := h.curr.Get(x, y)
	if cell.Rune == ' ' && cell.Style.IsEmpty() {
		return true
	}
	h.record("expect_empty", "empty", fmt.Sprintf("rune=%q style=%+v", cell.Rune, cell.Style))
	return false
}

// ExpectAction asserts that the last recorded action matches kind,
// "none" or "quit".
func (h *Harness) ExpectAction(kind string) bool {
	var ok bool
	switch kind {
	case "none":
		_, ok = h.lastAction.(NoAction)
	case "quit":
		_, ok = h.lastAction.(QuitAction)
	}
	if !ok {
		h.record("expect_action", kind, actionLabel(h.lastAction))
	}
	return ok
}

// ExpectQuit is shorthand for ExpectAction("quit").
func (h *Harness) ExpectQuit() bool {
	return h.ExpectAction("quit")
}

func actionLabel(a Action) string {
	switch a.(type) {
	case NoAction:
		return "none"
	case QuitAction:
		return "quit"
	default:
		return fmt.Sprintf("%T", a)
	}
}

func attrName(a zithril.Attr) string {
	switch a {
	case zithril.AttrBold:
		return "bold"
	case zithril.AttrItalic:
		return "italic"
	case zithril.AttrUnderline:
		return "underline"
	case zithril.AttrDim:
		return "dim"
	case zithril.AttrBlink:
		return "blink"
	case zithril.AttrReverse:
		return "reverse"
	case zithril.AttrStrikethrough:
		return "strikethrough"
	case zithril.AttrOverline:
		return "overline"
	default:
		return "unknown"
	}
}
