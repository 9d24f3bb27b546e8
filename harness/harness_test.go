package harness

import (
	"fmt"
	"testing"

	zithril "github.com/hotschmoe/zithril-sub000"
	"github.com/hotschmoe/zithril-sub000/input"
)

type counterState struct {
	count int
}

func counterUpdate(s any, ev input.Event) Action {
	st := s.(*counterState)
	if ke, ok := ev.(input.KeyEvent); ok {
		switch {
		case ke.Key == input.KeyChar && ke.Rune == '+':
			st.count++
		case ke.Key == input.KeyChar && ke.Rune == 'q':
			return QuitAction{}
		}
	}
	return NoAction{}
}

func counterView(s any, f *zithril.Frame) {
	st := s.(*counterState)
	f.Buffer().SetString(0, 0, fmt.Sprintf("Count: %d", st.count), zithril.Empty)
}

// TestCounterIncrementsAndRenders exercises scenario S1.
func TestCounterIncrementsAndRenders(t *testing.T) {
	st := &counterState{}
	src := "size 40 10\nkey +\nkey +\nkey +\nexpect_string 0 0 \"Count: 3\"\n"
	h, err := Run(src, st, counterUpdate, counterView)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !h.Passed() {
		t.Fatalf("expected all assertions to pass, got failures: %#v", h.Failures())
	}
}

// TestQuitOnKey exercises scenario S3.
func TestQuitOnKey(t *testing.T) {
	st := &counterState{}
	src := "size 40 10\nkey q\nexpect_quit\n"
	h, err := Run(src, st, counterUpdate, counterView)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !h.Passed() {
		t.Fatalf("expected quit assertion to pass, got failures: %#v", h.Failures())
	}
	if !h.Quit() {
		t.Fatalf("expected Quit() true")
	}
}

type styledState struct{}

func styledUpdate(s any, ev input.Event) Action { return NoAction{} }

func styledView(s any, f *zithril.Frame) {
	f.Buffer().SetString(0, 0, "Bold", zithril.Empty.WithAttr(zithril.AttrBold))
	f.Buffer().SetString(0, 1, "Normal", zithril.Empty)
}

// TestStyledOutput exercises scenario S2: the first assertion passes, the
// second fails because row 1 carries no bold attribute.
func TestStyledOutput(t *testing.T) {
	st := &styledState{}
	src := "size 40 10\nexpect_style 0 0 bold\nexpect_style 0 1 bold\n"
	h, err := Run(src, st, styledUpdate, styledView)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.Failures()) != 1 {
		t.Fatalf("want exactly 1 failure, got %d: %#v", len(h.Failures()), h.Failures())
	}
	if h.Failures()[0].Expected != "bold" {
		t.Fatalf("unexpected failure %#v", h.Failures()[0])
	}
}

func TestTypeInjectsOneKeyPerCodepoint(t *testing.T) {
	var typed []rune
	upd := func(s any, ev input.Event) Action {
		if ke, ok := ev.(input.KeyEvent); ok {
			typed = append(typed, ke.Rune)
		}
		return NoAction{}
	}
	h := New(nil, upd, func(s any, f *zithril.Frame) {})
	h.Type("ab")
	if string(typed) != "ab" {
		t.Fatalf("want \"ab\", got %q", string(typed))
	}
	if h.FrameCount() != 2 {
		t.Fatalf("want frame count 2, got %d", h.FrameCount())
	}
}

func TestRawInjectSGRMouse(t *testing.T) {
	var got []input.Event
	upd := func(s any, ev input.Event) Action {
		got = append(got, ev)
		return NoAction{}
	}
	h := New(nil, upd, func(s any, f *zithril.Frame) {})
	h.RawInject([]byte("\x1b[<0;10;20M"))

	if len(got) != 1 {
		t.Fatalf("want 1 event, got %d", len(got))
	}
	me, ok := got[0].(input.MouseEvent)
	if !ok || me.X != 9 || me.Y != 19 || me.Kind != input.MouseDown {
		t.Fatalf("unexpected event %#v", got[0])
	}
}

func TestResizeReallocatesBuffers(t *testing.T) {
	h := New(nil, func(s any, ev input.Event) Action { return NoAction{} }, func(s any, f *zithril.Frame) {})
	h.Resize(10, 5)
	if h.Buffer().Width() != 10 || h.Buffer().Height() != 5 {
		t.Fatalf("want 10x5, got %dx%d", h.Buffer().Width(), h.Buffer().Height())
	}
}
