// Package input implements the byte-level state machine that decodes raw
// terminal input into structured key, mouse, and paste events. The parser
// never produces a ResizeEvent; that type is part of the Event set for
// event loops that detect size changes by other means.
package input

// Event is a sealed sum over {KeyEvent, MouseEvent, ResizeEvent, TickEvent,
// PasteEvent, CommandResultEvent}. The marker method closes the set to
// this package; callers type-switch to recover the concrete variant.
type Event interface {
	isEvent()
}

// Key identifies a special key or signals that Rune carries a literal
// character.
type Key int

const (
	KeyChar Key = iota
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Mod is a bitset of modifier keys.
type Mod uint8

const (
	ModCtrl Mod = 1 << iota
	ModAlt
	ModShift
)

// Has reports whether the full modifier set contains m.
func (s Mod) Has(m Mod) bool { return s&m != 0 }

// KeyEvent is a single keypress: a key code, the literal rune when
// Key == KeyChar, and any held modifiers.
type KeyEvent struct {
	Key  Key
	Rune rune
	Mod  Mod
}

func (KeyEvent) isEvent() {}

// MouseKind identifies the variety of mouse event.
type MouseKind int

const (
	MouseDown MouseKind = iota
	MouseUp
	MouseDrag
	MouseMove
	MouseScrollUp
	MouseScrollDown
)

// MouseEvent is a single mouse action at 0-based terminal coordinates.
type MouseEvent struct {
	X, Y int
	Kind MouseKind
	Mod  Mod
}

func (MouseEvent) isEvent() {}

// ResizeEvent reports the terminal's new dimensions.
type ResizeEvent struct {
	Width, Height int
}

func (ResizeEvent) isEvent() {}

// TickEvent is a synthetic, application-driven time-step event; the core
// parser never produces one (it is injected by the event loop / harness),
// but it is part of the sealed Event set so update functions can switch
// over it uniformly.
type TickEvent struct{}

func (TickEvent) isEvent() {}

// PasteEvent carries bracketed-paste content accumulated between the
// opening (CSI 200~) and closing (CSI 201~) sequences. See the Open
// Question decision in SPEC_FULL.md §9: the core surfaces paste content
// rather than discarding it.
type PasteEvent struct {
	Text string
}

func (PasteEvent) isEvent() {}

// CommandResultEvent carries the outcome of an application-issued
// asynchronous command (e.g. a background job's result delivered through
// the application's own event queue); the core parser never produces one.
type CommandResultEvent struct {
	Name string
	Err  error
	Data any
}

func (CommandResultEvent) isEvent() {}
