// Package harness implements a headless update/view/diff driver and a
// line-oriented scenario language for testing application code without
// any terminal I/O.
package harness

import (
	zithril "github.com/hotschmoe/zithril-sub000"
	"github.com/hotschmoe/zithril-sub000/input"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Action is a sealed sum over what an application's update function can
// return. Applications needing richer action variants carry them inside
// their own state and use expect_action only for the none/quit shortcut
// the scenario language documents.
type Action interface {
	isAction()
}

// NoAction is the harness's recorded action before any event has been
// injected, and whatever an update function returns to mean "nothing
// happened".
type NoAction struct{}

func (NoAction) isAction() {}

// QuitAction signals the application wants to end its event loop.
type QuitAction struct{}

func (QuitAction) isAction() {}

// UpdateFunc advances state in response to one event and reports what
// happened.
type UpdateFunc func(state any, ev input.Event) Action

// ViewFunc renders state into frame.
type ViewFunc func(state any, frame *zithril.Frame)

// Failure is a single non-fatal assertion failure: execution continues
// after one is recorded.
type Failure struct {
	Line     int
	Label    string
	Expected string
	Actual   string
}

// Harness drives one application's update/view cycle deterministically.
type Harness struct {
	state  any
	update UpdateFunc
	view   ViewFunc

	prev *zithril.Buffer
	curr *zithril.Buffer

	frameCount int
	lastAction Action
	lastDiff   []zithril.Segment
	quit       bool

	failures    []Failure
	currentLine int

	parser *input.Parser
}

// New creates a harness with the default 80x24 buffer size.
func New(state any, update UpdateFunc, view ViewFunc) *Harness {
	return NewSized(state, update, view, defaultWidth, defaultHeight)
}

// NewSized creates a harness with an explicit initial buffer size.
func NewSized(state any, update UpdateFunc, view ViewFunc, width, height int) *Harness {
	h := &Harness{
		state:      state,
		update:     update,
		view:       view,
		prev:       zithril.NewBuffer(width, height),
		curr:       zithril.NewBuffer(width, height),
		lastAction: NoAction{},
	}
	h.runView()
	return h
}

func (h *Harness) runView() {
	h.curr.Clear()
	f := zithril.NewFrame(h.curr)
	h.view(h.state, f)
}

// Inject runs one full update/view/diff cycle for ev: invoke update
// (recording the action), clear the current buffer, run view into it,
// diff against the previous cycle's buffer, then copy current over
// previous. Frame count increments by one.
func (h *Harness) Inject(ev input.Event) {
	action := h.update(h.state, ev)
	h.lastAction = action

	h.runView()

	segs, _ := zithril.Diff(h.prev, h.curr)
	h.lastDiff = segs

	h.prev.CopyFrom(h.curr)
	h.frameCount++

	if _, ok := action.(QuitAction); ok {
		h.quit = true
	}
}

// Key injects a single key event.
func (h *Harness) Key(key input.Key, r rune, mod input.Mod) {
	h.Inject(input.KeyEvent{Key: key, Rune: r, Mod: mod})
}

// Char injects a plain character keypress with no modifiers.
func (h *Harness) Char(r rune) {
	h.Key(input.KeyChar, r, 0)
}

// Type injects one key event per codepoint of s, in order.
func (h *Harness) Type(s string) {
	for _, r := range s {
		h.Char(r)
	}
}

// Click injects a down/up pair at (x, y).
func (h *Harness) Click(x, y int) {
	h.Inject(input.MouseEvent{X: x, Y: y, Kind: input.MouseDown})
	h.Inject(input.MouseEvent{X: x, Y: y, Kind: input.MouseUp})
}

// RightClick injects a down/up pair at (x, y) with the ctrl modifier.
func (h *Harness) RightClick(x, y int) {
	h.Inject(input.MouseEvent{X: x, Y: y, Kind: input.MouseDown, Mod: input.ModCtrl})
	h.Inject(input.MouseEvent{X: x, Y: y, Kind: input.MouseUp, Mod: input.ModCtrl})
}

// MouseDown injects a single button-down event.
func (h *Harness) MouseDown(x, y int) {
	h.Inject(input.MouseEvent{X: x, Y: y, Kind: input.MouseDown})
}

// MouseUp injects a single button-up event.
func (h *Harness) MouseUp(x, y int) {
	h.Inject(input.MouseEvent{X: x, Y: y, Kind: input.MouseUp})
}

// Drag injects down at (x1, y1), a drag event at (x2, y2), then up at
// (x2, y2).
func (h *Harness) Drag(x1, y1, x2, y2 int) {
	h.Inject(input.MouseEvent{X: x1, Y: y1, Kind: input.MouseDown})
	h.Inject(input.MouseEvent{X: x2, Y: y2, Kind: input.MouseDrag})
	h.Inject(input.MouseEvent{X: x2, Y: y2, Kind: input.MouseUp})
}

// Hover injects a motion event with no buttons held.
func (h *Harness) Hover(x, y int) {
	h.Inject(input.MouseEvent{X: x, Y: y, Kind: input.MouseMove})
}

// ScrollUp injects a wheel-up event at (x, y).
func (h *Harness) ScrollUp(x, y int) {
	h.Inject(input.MouseEvent{X: x, Y: y, Kind: input.MouseScrollUp})
}

// ScrollDown injects a wheel-down event at (x, y).
func (h *Harness) ScrollDown(x, y int) {
	h.Inject(input.MouseEvent{X: x, Y: y, Kind: input.MouseScrollDown})
}

// Tick injects a single synthetic tick event.
func (h *Harness) Tick() {
	h.Inject(input.TickEvent{})
}

// TickN injects n synthetic tick events in sequence.
func (h *Harness) TickN(n int) {
	for i := 0; i < n; i++ {
		h.Tick()
	}
}

// Resize reallocates both buffers to (width, height), preserving
// overlapping content, then delivers a resize event.
func (h *Harness) Resize(width, height int) {
	h.prev.Resize(width, height)
	h.curr.Resize(width, height)
	h.Inject(input.ResizeEvent{Width: width, Height: height})
}

// RawInject feeds raw bytes through an internal parser, injecting every
// event the parser produces from them (and anything still buffered from
// earlier raw injections).
func (h *Harness) RawInject(data []byte) {
	if h.parser == nil {
		h.parser = input.NewParser()
	}
	ev, ok := h.parser.Feed(data)
	for ok {
		h.Inject(ev)
		ev, ok = h.parser.Feed(nil)
	}
}

// Buffer returns the current (most recently rendered) buffer.
func (h *Harness) Buffer() *zithril.Buffer { return h.curr }

// LastAction returns the action most recently returned by update.
func (h *Harness) LastAction() Action { return h.lastAction }

// LastDiff returns the diff segments computed for the most recent cycle.
func (h *Harness) LastDiff() []zithril.Segment { return h.lastDiff }

// FrameCount returns the number of completed update/view/diff cycles.
func (h *Harness) FrameCount() int { return h.frameCount }

// Quit reports whether a QuitAction has ever been recorded.
func (h *Harness) Quit() bool { return h.quit }

// Failures returns every recorded assertion failure, in order.
func (h *Harness) Failures() []Failure { return h.failures }

// Passed reports whether no assertion has failed.
func (h *Harness) Passed() bool { return len(h.failures) == 0 }

func (h *Harness) record(label, expected, actual string) {
	h.failures = append(h.failures, Failure{
		Line:     h.currentLine,
		Label:    label,
		Expected: expected,
		Actual:   actual,
	})
}
