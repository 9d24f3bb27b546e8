package term

import (
	"bytes"
	"testing"

	zithril "github.com/hotschmoe/zithril-sub000"
)

func TestWriterBasicSequences(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.EnterAlternateScreen()
	w.HideCursor()
	w.MoveCursor(2, 4)
	w.Flush()

	want := "\x1b[?1049h\x1b[?25l\x1b[5;3H"
	if got := buf.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestWriterStyleDedup(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	st := zithril.Empty.WithAttr(zithril.AttrBold)

	w.SetStyle(st)
	w.Flush()
	firstLen := buf.Len()
	w.SetStyle(st) // identical; should emit nothing more
	w.Flush()
	if buf.Len() != firstLen {
		t.Fatalf("expected no additional bytes for identical style, grew from %d to %d", firstLen, buf.Len())
	}
}

func TestWriterStyleChangeResetsFirst(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.SetStyle(zithril.Empty.WithAttr(zithril.AttrBold))
	w.SetStyle(zithril.Empty.WithAttr(zithril.AttrItalic))
	w.Flush()

	got := buf.String()
	if !bytes.Contains([]byte(got), []byte("\x1b[0m")) {
		t.Fatalf("expected a reset between differing styles, got %q", got)
	}
}

func TestWriterMouseDisableReversesEnableOrder(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.EnableMouse()
	w.DisableMouse()
	w.Flush()

	want := "\x1b[?1000h\x1b[?1002h\x1b[?1003h\x1b[?1003l\x1b[?1002l\x1b[?1000l"
	if got := buf.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
