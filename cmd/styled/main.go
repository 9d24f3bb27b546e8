// Command styled renders a two-pane layout with colour and mouse-hover
// feedback, exercising the layout solver and the full colour model
// alongside the counter example's plain key handling.
package main

import (
	"fmt"
	"os"

	zithril "github.com/hotschmoe/zithril-sub000"
	"github.com/hotschmoe/zithril-sub000/input"
	"github.com/hotschmoe/zithril-sub000/term"
)

type model struct {
	hoverX, hoverY int
	lastPaste      string
	quit           bool
}

func update(m *model, ev input.Event) {
	switch e := ev.(type) {
	case input.KeyEvent:
		if e.Key == input.KeyEsc || (e.Key == input.KeyChar && e.Rune == 'q') {
			m.quit = true
		}
	case input.MouseEvent:
		if e.Kind == input.MouseMove || e.Kind == input.MouseDrag {
			m.hoverX, m.hoverY = e.X, e.Y
		}
	case input.PasteEvent:
		m.lastPaste = e.Text
	}
}

func view(m *model, f *zithril.Frame) {
	buf := f.Buffer()
	buf.Clear()
	area := buf.Area()

	panes := f.Layout(area, zithril.Horizontal, []zithril.Constraint{
		zithril.Length(24),
		zithril.Flex(1),
	})

	sidebar, main := panes[0], panes[1]

	sidebarStyle := zithril.Empty.WithBg(zithril.NewBasicColor(zithril.Blue)).WithFg(zithril.NewBasicColor(zithril.White))
	buf.Fill(sidebar, zithril.Cell{Rune: ' ', Width: 1, Style: sidebarStyle})
	buf.SetString(sidebar.X+1, sidebar.Y+1, "zithril demo", sidebarStyle.WithAttr(zithril.AttrBold))
	buf.SetString(sidebar.X+1, sidebar.Y+3, fmt.Sprintf("hover: %d,%d", m.hoverX, m.hoverY), sidebarStyle)

	accent := zithril.Empty.WithFg(zithril.NewRGBColor(255, 160, 0))
	buf.SetString(main.X+2, main.Y+1, "move the mouse, paste some text, q to quit", zithril.Empty)
	if m.lastPaste != "" {
		buf.SetString(main.X+2, main.Y+3, "pasted: "+m.lastPaste, accent)
	}
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			term.RecoverTerminal()
			panic(r)
		}
	}()

	cfg := term.DefaultConfig()
	cfg.MouseCapture = true
	cfg.BracketedPaste = true

	backend, err := term.Open(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "styled: failed to open terminal:", err)
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
	drawDiff(backend, prev, frame.Buffer())
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
