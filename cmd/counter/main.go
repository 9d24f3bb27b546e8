// Command counter is a minimal zithril application: + increments, -
// decrements, q or Esc quits. It exists to exercise the frame, input, and
// term packages together in a real event loop.
package main

import (
	"fmt"
	"os"

	zithril "github.com/hotschmoe/zithril-sub000"
	"github.com/hotschmoe/zithril-sub000/input"
	"github.com/hotschmoe/zithril-sub000/term"
)

type model struct {
	count int
	quit  bool
}

func update(m *model, ev input.Event) {
	switch e := ev.(type) {
	case input.KeyEvent:
		switch e.Key {
		case input.KeyEsc:
			m.quit = true
		case input.KeyChar:
			switch e.Rune {
			case '+':
				m.count++
			case '-':
				m.count--
			case 'q':
				m.quit = true
			}
		}
	}
}

func view(m *model, f *zithril.Frame) {
	buf := f.Buffer()
	buf.Clear()
	buf.SetString(2, 1, fmt.Sprintf("count: %d", m.count), zithril.Empty.WithAttr(zithril.AttrBold))
	buf.SetString(2, 2, "+/- to change, q to quit", zithril.Empty)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			term.RecoverTerminal()
			panic(r)
		}
	}()

	backend, err := term.Open(term.DefaultConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "counter: failed to open terminal:", err)
		os.Exit(1)
	}
	defer backend.Close()

	w, h, err := backend.Size()
	if err != nil {
		w, h = 80, 24
	}

	prev := zithril.NewBuffer(w, h)
	frame := zithril.NewFrame(zithril.NewBuffer(w, h))
	m := &model{}
	parser := input.NewParser()

	view(m, frame)
	drawFull(backend, frame.Buffer())
	prev.CopyFrom(frame.Buffer())

	readBuf := make([]byte, 256)
	for !m.quit {
		n, err := backend.ReadStdin(readBuf)
		if err != nil {
			break
		}
		ev, ok := parser.Feed(readBuf[:n])
		for ok {
			if r, isResize := ev.(input.ResizeEvent); isResize {
				frame.Buffer().Resize(r.Width, r.Height)
				prev.Resize(r.Width, r.Height)
			} else {
				update(m, ev)
			}

			view(m, frame)
			drawDiff(backend, prev, frame.Buffer())
			prev.CopyFrom(frame.Buffer())

			ev, ok = parser.Feed(nil)
		}
	}
}

func drawFull(backend *term.Backend, buf *zithril.Buffer) {
	empty := zithril.NewBuffer(buf.Width(), buf.Height())
	drawDiff(backend, empty, buf)
}

func drawDiff(backend *term.Backend, prev, curr *zithril.Buffer) {
	segs, err := zithril.Diff(prev, curr)
	if err != nil {
		return
	}
	w := backend.Writer()
	for _, seg := range segs {
		if seg.MoveCursor {
			w.MoveCursor(seg.X, seg.Y)
		}
		w.SetStyle(seg.Style)
		for _, r := range seg.Runes {
			w.WriteRune(r)
		}
	}
	_ = w.Flush()
}
