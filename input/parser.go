package input

import (
	"strconv"
	"unicode/utf8"
)

type state int

const (
	stateGround state = iota
	statePasteActive
)

const pasteEndMarker = "\x1b[201~"

// Parser is a single-threaded, single-owner byte-level decoder: Feed
// consumes bytes and, once a complete event can be constructed, returns
// it; otherwise it retains the partial sequence and waits for more bytes
// on the next call. It never blocks.
type Parser struct {
	state state
	buf   []byte
}

// NewParser returns a parser starting in the ground state.
func NewParser() *Parser {
	return &Parser{}
}

// Feed appends data to the parser's internal buffer and attempts to
// decode events. It loops internally past any eventless state
// transitions (e.g. entering bracketed-paste mode produces no user-facing
// event) but returns as soon as one real event is ready, leaving anything
// after it buffered for the next call. If the buffered data cannot yet
// form a complete event, Feed returns (nil, false) and retains the data.
func (p *Parser) Feed(data []byte) (Event, bool) {
	p.buf = append(p.buf, data...)

	for {
		var (
			ev        Event
			hasEvent  bool
			consumed  int
			needMore  bool
		)

		if p.state == statePasteActive {
			ev, hasEvent, consumed, needMore = p.decodePaste(p.buf)
		} else {
			ev, hasEvent, consumed, needMore = p.decodeGround(p.buf)
		}

		if needMore {
			return nil, false
		}

		p.buf = p.buf[consumed:]

		if hasEvent {
			return ev, true
		}

		if len(p.buf) == 0 {
			return nil, false
		}
		// Eventless transition (e.g. entered paste mode); keep draining.
	}
}

// Pending reports how many bytes are currently buffered awaiting more
// input.
func (p *Parser) Pending() int {
	return len(p.buf)
}

// ResolvePendingEscape decides a buffered bare ESC: if exactly one
// unconsumed ESC byte is buffered, it resolves to a lone Esc key event.
// Nothing in this module calls it; term.Backend.ReadStdin blocks until a
// byte arrives and has no read timeout, so a caller decides when to give
// up waiting for a follow-up byte.
func (p *Parser) ResolvePendingEscape() (Event, bool) {
	if p.state == stateGround && len(p.buf) == 1 && p.buf[0] == 0x1b {
		p.buf = p.buf[:0]
		return KeyEvent{Key: KeyEsc}, true
	}
	return nil, false
}

func (p *Parser) decodePaste(buf []byte) (ev Event, hasEvent bool, consumed int, needMore bool) {
	idx := indexOf(buf, pasteEndMarker)
	if idx < 0 {
		// No terminator yet. If buf could not possibly contain one (too
		// short) or simply hasn't arrived, wait for more bytes -- but if
		// buf is suspiciously long without a terminator we still just
		// keep waiting; pasted text has no length limit in this core.
		return nil, false, 0, true
	}
	text := string(buf[:idx])
	p.state = stateGround
	return PasteEvent{Text: text}, true, idx + len(pasteEndMarker), false
}

func indexOf(buf []byte, marker string) int {
	m := []byte(marker)
	if len(buf) < len(m) {
		return -1
	}
	for i := 0; i+len(m) <= len(buf); i++ {
		match := true
		for j := range m {
			if buf[i+j] != m[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func (p *Parser) decodeGround(buf []byte) (ev Event, hasEvent bool, consumed int, needMore bool) {
	if len(buf) == 0 {
		return nil, false, 0, true
	}

	b0 := buf[0]

	switch {
	case b0 == 0x1b:
		return p.decodeEscape(buf)
	case b0 == 0x09:
		return KeyEvent{Key: KeyTab}, true, 1, false
	case b0 == 0x0a || b0 == 0x0d:
		return KeyEvent{Key: KeyEnter}, true, 1, false
	case b0 == 0x7f:
		return KeyEvent{Key: KeyBackspace}, true, 1, false
	case b0 == 0x00:
		return KeyEvent{Key: KeyChar, Rune: ' ', Mod: ModCtrl}, true, 1, false
	case b0 >= 0x01 && b0 <= 0x08, b0 == 0x0b, b0 == 0x0c, b0 >= 0x0e && b0 <= 0x1a:
		r := rune('a' + int(b0) - 1)
		return KeyEvent{Key: KeyChar, Rune: r, Mod: ModCtrl}, true, 1, false
	case b0 >= 0x20 && b0 <= 0x7e:
		return KeyEvent{Key: KeyChar, Rune: rune(b0)}, true, 1, false
	case b0 >= 0x80 && b0 <= 0xf4:
		if !utf8.FullRune(buf) {
			return nil, false, 0, true
		}
		r, size := utf8.DecodeRune(buf)
		return KeyEvent{Key: KeyChar, Rune: r}, true, size, false
	default:
		// Unrecognised control byte; drop it to keep making progress.
		return nil, false, 1, false
	}
}

func (p *Parser) decodeEscape(buf []byte) (ev Event, hasEvent bool, consumed int, needMore bool) {
	if len(buf) < 2 {
		return nil, false, 0, true
	}
	next := buf[1]
	switch {
	case next == '[':
		return p.decodeCSI(buf)
	case next == 'O':
		return p.decodeSS3(buf)
	case next == 0x1b:
		return KeyEvent{Key: KeyEsc, Mod: ModAlt}, true, 2, false
	case next == 0x7f:
		return KeyEvent{Key: KeyBackspace, Mod: ModAlt}, true, 2, false
	case next >= 0x20 && next <= 0x7e:
		return KeyEvent{Key: KeyChar, Rune: rune(next), Mod: ModAlt}, true, 2, false
	default:
		// Lone Esc; reprocess next as a fresh ground-state byte.
		return KeyEvent{Key: KeyEsc}, true, 1, false
	}
}

func (p *Parser) decodeSS3(buf []byte) (ev Event, hasEvent bool, consumed int, needMore bool) {
	if len(buf) < 3 {
		return nil, false, 0, true
	}
	var key Key
	switch buf[2] {
	case 'A':
		key = KeyUp
	case 'B':
		key = KeyDown
	case 'C':
		key = KeyRight
	case 'D':
		key = KeyLeft
	case 'H':
		key = KeyHome
	case 'F':
		key = KeyEnd
	case 'P':
		key = KeyF1
	case 'Q':
		key = KeyF2
	case 'R':
		key = KeyF3
	case 'S':
		key = KeyF4
	default:
		return nil, false, 3, false
	}
	return KeyEvent{Key: key}, true, 3, false
}

func (p *Parser) decodeCSI(buf []byte) (ev Event, hasEvent bool, consumed int, needMore bool) {
	rest := buf[2:]
	if len(rest) == 0 {
		return nil, false, 0, true
	}

	if rest[0] == '<' {
		mev, has, n, more := decodeSGRMouse(rest[1:])
		if more {
			return nil, false, 0, true
		}
		return mev, has, n + 3, false // ESC [ < + n
	}

	if rest[0] == 'M' {
		if len(rest) < 4 {
			return nil, false, 0, true
		}
		mev := decodeX10Mouse(rest[1], rest[2], rest[3])
		return mev, true, 2 + 4, false // ESC [ M cb cx cy
	}

	for i := 0; i < len(rest); i++ {
		b := rest[i]
		if b >= 0x40 && b <= 0x7e {
			e, has := dispatchCSIFinal(rest[:i], b, p)
			return e, has, 2 + i + 1, false
		}
	}
	return nil, false, 0, true
}

func dispatchCSIFinal(params []byte, final byte, p *Parser) (Event, bool) {
	p1, p2 := parseTwoParams(params)
	mod := modFromP2(p2)

	switch final {
	case 'A':
		return KeyEvent{Key: KeyUp, Mod: mod}, true
	case 'B':
		return KeyEvent{Key: KeyDown, Mod: mod}, true
	case 'C':
		return KeyEvent{Key: KeyRight, Mod: mod}, true
	case 'D':
		return KeyEvent{Key: KeyLeft, Mod: mod}, true
	case 'H':
		return KeyEvent{Key: KeyHome, Mod: mod}, true
	case 'F':
		return KeyEvent{Key: KeyEnd, Mod: mod}, true
	case 'Z':
		return KeyEvent{Key: KeyBacktab}, true
	case 'P':
		return KeyEvent{Key: KeyF1, Mod: mod}, true
	case 'Q':
		return KeyEvent{Key: KeyF2, Mod: mod}, true
	case 'R':
		return KeyEvent{Key: KeyF3, Mod: mod}, true
	case 'S':
		return KeyEvent{Key: KeyF4, Mod: mod}, true
	case '~':
		switch p1 {
		case 1, 7:
			return KeyEvent{Key: KeyHome, Mod: mod}, true
		case 2:
			return KeyEvent{Key: KeyInsert, Mod: mod}, true
		case 3:
			return KeyEvent{Key: KeyDelete, Mod: mod}, true
		case 4, 8:
			return KeyEvent{Key: KeyEnd, Mod: mod}, true
		case 5:
			return KeyEvent{Key: KeyPgUp, Mod: mod}, true
		case 6:
			return KeyEvent{Key: KeyPgDown, Mod: mod}, true
		case 11, 12, 13, 14, 15:
			return KeyEvent{Key: Key(int(KeyF1) + (p1 - 11)), Mod: mod}, true
		case 17, 18, 19, 20, 21:
			return KeyEvent{Key: Key(int(KeyF6) + (p1 - 17)), Mod: mod}, true
		case 23, 24:
			return KeyEvent{Key: Key(int(KeyF11) + (p1 - 23)), Mod: mod}, true
		case 200:
			p.state = statePasteActive
			return nil, false
		case 201:
			p.state = stateGround
			return nil, false
		}
		return nil, false
	default:
		return nil, false
	}
}

// parseTwoParams splits a CSI parameter byte string on ';' and returns the
// first two fields as integers (0 if absent or malformed).
func parseTwoParams(b []byte) (p1, p2 int) {
	s := string(b)
	parts := splitSemicolon(s)
	if len(parts) > 0 {
		p1, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		p2, _ = strconv.Atoi(parts[1])
	}
	return p1, p2
}

func splitSemicolon(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// modFromP2 decodes the shift/alt/ctrl modifier bitset from a CSI
// modifier parameter: 0 or 1 means no modifiers; otherwise m = p2-1 with
// bit0=shift, bit1=alt, bit2=ctrl.
func modFromP2(p2 int) Mod {
	if p2 <= 1 {
		return 0
	}
	m := p2 - 1
	var mod Mod
	if m&0x1 != 0 {
		mod |= ModShift
	}
	if m&0x2 != 0 {
		mod |= ModAlt
	}
	if m&0x4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

// decodeSGRMouse parses "cb;cx;cy" followed by 'M' or 'm', where rest is
// everything after "ESC[<". Returns the consumed length relative to rest.
func decodeSGRMouse(rest []byte) (ev Event, hasEvent bool, consumed int, needMore bool) {
	for i := 0; i < len(rest); i++ {
		if rest[i] == 'M' || rest[i] == 'm' {
			params := string(rest[:i])
			parts := splitSemicolon(params)
			var cb, cx, cy int
			if len(parts) > 0 {
				cb, _ = strconv.Atoi(parts[0])
			}
			if len(parts) > 1 {
				cx, _ = strconv.Atoi(parts[1])
			}
			if len(parts) > 2 {
				cy, _ = strconv.Atoi(parts[2])
			}

			pressed := rest[i] == 'M'
			button := cb & 0x3
			shift := cb&0x4 != 0
			alt := cb&0x8 != 0
			ctrl := cb&0x10 != 0
			motion := cb&0x20 != 0
			wheel := cb&0x40 != 0

			var kind MouseKind
			switch {
			case wheel && button == 0:
				kind = MouseScrollUp
			case wheel:
				kind = MouseScrollDown
			case motion:
				kind = MouseDrag
			case !pressed:
				kind = MouseUp
			default:
				kind = MouseDown
			}

			var mod Mod
			if shift {
				mod |= ModShift
			}
			if alt {
				mod |= ModAlt
			}
			if ctrl {
				mod |= ModCtrl
			}

			return MouseEvent{X: cx - 1, Y: cy - 1, Kind: kind, Mod: mod}, true, i + 1, false
		}
	}
	return nil, false, 0, true
}

// decodeX10Mouse parses the legacy 3-byte form: each byte is the encoded
// value + 32. Coordinates are 1-based in the wire form and are converted
// to 0-based here.
func decodeX10Mouse(cb, cx, cy byte) Event {
	cbv := int(cb) - 32
	cxv := int(cx) - 32 - 1
	cyv := int(cy) - 32 - 1

	button := cbv & 0x3
	shift := cbv&0x4 != 0
	alt := cbv&0x8 != 0
	ctrl := cbv&0x10 != 0
	motion := cbv&0x20 != 0
	wheel := cbv&0x40 != 0

	var kind MouseKind
	switch {
	case wheel && button == 0:
		kind = MouseScrollUp
	case wheel:
		kind = MouseScrollDown
	case motion:
		// Preferred over the button==3 release indication when both are
		// set (spec.md §9 Open Questions).
		kind = MouseDrag
	case button == 3:
		kind = MouseUp
	default:
		kind = MouseDown
	}

	var mod Mod
	if shift {
		mod |= ModShift
	}
	if alt {
		mod |= ModAlt
	}
	if ctrl {
		mod |= ModCtrl
	}

	return MouseEvent{X: cxv, Y: cyv, Kind: kind, Mod: mod}
}
