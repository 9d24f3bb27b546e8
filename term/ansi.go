package term

import (
	"bufio"
	"io"
	"strconv"

	zithril "github.com/hotschmoe/zithril-sub000"
)

// Writer is the buffered ANSI output sink: cursor moves, clears, styles,
// and glyphs append to a bounded internal buffer; Flush writes it to the
// wrapped stream. When the buffer fills it auto-flushes (bufio.Writer's
// own behaviour) before accepting more. Style writes are dedup-suppressed
// against the previously emitted style.
type Writer struct {
	out *bufio.Writer

	posBuf []byte

	haveStyle bool
	lastStyle zithril.Style
}

// NewWriter wraps dst with a 64KB output buffer, matching the sizing the
// teacher repo used for its terminal writer.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{
		out:    bufio.NewWriterSize(dst, 64*1024),
		posBuf: make([]byte, 0, 32),
	}
}

// Flush writes any buffered bytes to the wrapped stream.
func (w *Writer) Flush() error {
	return w.out.Flush()
}

// EnterAlternateScreen emits ESC [?1049h.
func (w *Writer) EnterAlternateScreen() { w.out.WriteString("\x1b[?1049h") }

// LeaveAlternateScreen emits ESC [?1049l.
func (w *Writer) LeaveAlternateScreen() { w.out.WriteString("\x1b[?1049l") }

// HideCursor emits ESC [?25l.
func (w *Writer) HideCursor() { w.out.WriteString("\x1b[?25l") }

// ShowCursor emits ESC [?25h.
func (w *Writer) ShowCursor() { w.out.WriteString("\x1b[?25h") }

// ClearScreen emits ESC [2J ESC [H.
func (w *Writer) ClearScreen() { w.out.WriteString("\x1b[2J\x1b[H") }

// EnableMouse emits the legacy mouse-tracking triplet.
func (w *Writer) EnableMouse() { w.out.WriteString("\x1b[?1000h\x1b[?1002h\x1b[?1003h") }

// DisableMouse emits the legacy mouse-tracking triplet's disable form, in
// reverse order of EnableMouse.
func (w *Writer) DisableMouse() { w.out.WriteString("\x1b[?1003l\x1b[?1002l\x1b[?1000l") }

// EnableSGRMouse emits ESC [?1006h.
func (w *Writer) EnableSGRMouse() { w.out.WriteString("\x1b[?1006h") }

// DisableSGRMouse emits ESC [?1006l.
func (w *Writer) DisableSGRMouse() { w.out.WriteString("\x1b[?1006l") }

// EnableBracketedPaste emits ESC [?2004h.
func (w *Writer) EnableBracketedPaste() { w.out.WriteString("\x1b[?2004h") }

// DisableBracketedPaste emits ESC [?2004l.
func (w *Writer) DisableBracketedPaste() { w.out.WriteString("\x1b[?2004l") }

// ResetStyle emits ESC [0m and clears the dedup cache.
func (w *Writer) ResetStyle() {
	w.out.WriteString("\x1b[0m")
	w.haveStyle = false
}

// MoveCursor writes the cursor-position escape for 0-based (x, y),
// reusing a scratch buffer to avoid an fmt.Fprintf allocation per call.
func (w *Writer) MoveCursor(x, y int) {
	w.posBuf = w.posBuf[:0]
	w.posBuf = append(w.posBuf, '\x1b', '[')
	w.posBuf = strconv.AppendInt(w.posBuf, int64(y+1), 10)
	w.posBuf = append(w.posBuf, ';')
	w.posBuf = strconv.AppendInt(w.posBuf, int64(x+1), 10)
	w.posBuf = append(w.posBuf, 'H')
	w.out.Write(w.posBuf)
}

// WriteRune writes a single glyph byte sequence.
func (w *Writer) WriteRune(r rune) { w.out.WriteRune(r) }

// WriteString writes raw text verbatim (used for pre-composed segments).
func (w *Writer) WriteString(s string) { w.out.WriteString(s) }

// SetStyle emits the SGR sequence for st, unless it is identical to the
// last style this writer emitted.
func (w *Writer) SetStyle(st zithril.Style) {
	if w.haveStyle && st.Equal(w.lastStyle) {
		return
	}
	if w.haveStyle {
		w.out.WriteString("\x1b[0m")
	}
	w.writeAttrs(st)
	w.writeColor(st)
	w.lastStyle = st
	w.haveStyle = true
}

func (w *Writer) writeAttrs(st zithril.Style) {
	if st.Attrs.Has(zithril.AttrBold) {
		w.out.WriteString("\x1b[1m")
	}
	if st.Attrs.Has(zithril.AttrDim) {
		w.out.WriteString("\x1b[2m")
	}
	if st.Attrs.Has(zithril.AttrItalic) {
		w.out.WriteString("\x1b[3m")
	}
	if st.Attrs.Has(zithril.AttrUnderline) {
		w.out.WriteString("\x1b[4m")
	}
	if st.Attrs.Has(zithril.AttrBlink) {
		w.out.WriteString("\x1b[5m")
	}
	if st.Attrs.Has(zithril.AttrReverse) {
		w.out.WriteString("\x1b[7m")
	}
	if st.Attrs.Has(zithril.AttrStrikethrough) {
		w.out.WriteString("\x1b[9m")
	}
	if st.Attrs.Has(zithril.AttrOverline) {
		w.out.WriteString("\x1b[53m")
	}
}

func (w *Writer) writeColor(st zithril.Style) {
	if st.HasFg {
		w.writeColorCode(st.Fg, false)
	}
	if st.HasBg {
		w.writeColorCode(st.Bg, true)
	}
}

func (w *Writer) writeColorCode(c zithril.Color, bg bool) {
	switch c.Kind {
	case zithril.ColorBasic:
		w.out.WriteString(basicSGR(c.Basic, bg))
	case zithril.ColorIndexed:
		base := "38;5;"
		if bg {
			base = "48;5;"
		}
		w.out.WriteString("\x1b[")
		w.out.WriteString(base)
		w.out.WriteString(strconv.Itoa(int(c.Index)))
		w.out.WriteString("m")
	case zithril.ColorRGB:
		r, g, b := c.RGB255()
		base := "38;2;"
		if bg {
			base = "48;2;"
		}
		w.out.WriteString("\x1b[")
		w.out.WriteString(base)
		w.out.WriteString(strconv.Itoa(int(r)))
		w.out.WriteString(";")
		w.out.WriteString(strconv.Itoa(int(g)))
		w.out.WriteString(";")
		w.out.WriteString(strconv.Itoa(int(b)))
		w.out.WriteString("m")
	}
}

func basicSGR(c zithril.BasicColor, bg bool) string {
	n := int(c)
	var code int
	switch {
	case n < 8 && !bg:
		code = 30 + n
	case n < 8 && bg:
		code = 40 + n
	case n >= 8 && !bg:
		code = 90 + (n - 8)
	default:
		code = 100 + (n - 8)
	}
	return "\x1b[" + strconv.Itoa(code) + "m"
}
