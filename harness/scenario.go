package harness

import (
	"fmt"
	"strconv"
	"strings"

	zithril "github.com/hotschmoe/zithril-sub000"
	"github.com/hotschmoe/zithril-sub000/input"
)

// Directive is one parsed line of the scenario language.
type Directive struct {
	Line int
	Name string
	Args []string
}

// Parse tokenizes src into directives. Blank and '#'-prefixed lines are
// skipped. A malformed quoted string fails the parse; directives already
// accumulated are discarded along with the error, per the scenario
// parser's error policy.
func Parse(src string) ([]Directive, error) {
	lines := strings.Split(src, "\n")
	var directives []Directive
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		tokens, err := tokenize(trimmed)
		if err != nil {
			return nil, fmt.Errorf("scenario line %d: %w", i+1, err)
		}
		if len(tokens) == 0 {
			continue
		}
		directives = append(directives, Directive{Line: i + 1, Name: tokens[0], Args: tokens[1:]})
	}
	return directives, nil
}

// tokenize splits a trimmed line on whitespace, honouring double-quoted
// strings with \", \\, \n, \t escapes.
func tokenize(line string) ([]string, error) {
	var toks []string
	i, n := 0, len(line)
	for i < n {
		for i < n && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}
		if line[i] == '"' {
			i++
			var sb strings.Builder
			closed := false
			for i < n {
				c := line[i]
				if c == '"' {
					closed = true
					i++
					break
				}
				if c == '\\' && i+1 < n {
					switch line[i+1] {
					case '"':
						sb.WriteByte('"')
					case '\\':
						sb.WriteByte('\\')
					case 'n':
						sb.WriteByte('\n')
					case 't':
						sb.WriteByte('\t')
					default:
						sb.WriteByte('\\')
						sb.WriteByte(line[i+1])
					}
					i += 2
					continue
				}
				sb.WriteByte(c)
				i++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated quoted string")
			}
			toks = append(toks, sb.String())
			continue
		}
		start := i
		for i < n && line[i] != ' ' && line[i] != '\t' {
			i++
		}
		toks = append(toks, line[start:i])
	}
	return toks, nil
}

// Run parses src, honours a leading "size" directive to pick the
// harness's initial dimensions, constructs the harness, and executes the
// remaining directives.
func Run(src string, state any, update UpdateFunc, view ViewFunc) (*Harness, error) {
	directives, err := Parse(src)
	if err != nil {
		return nil, err
	}

	width, height := defaultWidth, defaultHeight
	start := 0
	if len(directives) > 0 && directives[0].Name == "size" {
		w, ht, serr := parseSize(directives[0])
		if serr != nil {
			return nil, serr
		}
		width, height, start = w, ht, 1
	}

	h := NewSized(state, update, view, width, height)
	if err := Execute(h, directives[start:]); err != nil {
		return h, err
	}
	return h, nil
}

// Execute runs already-parsed directives (excluding any leading "size")
// against h, honouring "repeat N" for the directive that follows it.
func Execute(h *Harness, directives []Directive) error {
	repeat := 1
	for _, d := range directives {
		h.currentLine = d.Line
		if d.Name == "repeat" {
			n, err := parseIntArg(d, 0)
			if err != nil {
				return err
			}
			repeat = n
			continue
		}
		times := repeat
		repeat = 1
		for i := 0; i < times; i++ {
			if err := execDirective(h, d); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseSize(d Directive) (int, int, error) {
	if len(d.Args) != 2 {
		return 0, 0, fmt.Errorf("line %d: size wants 2 arguments", d.Line)
	}
	w, err1 := strconv.Atoi(d.Args[0])
	h, err2 := strconv.Atoi(d.Args[1])
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("line %d: size wants integer arguments", d.Line)
	}
	return w, h, nil
}

func parseIntArg(d Directive, idx int) (int, error) {
	if idx >= len(d.Args) {
		return 0, fmt.Errorf("line %d: %s missing argument %d", d.Line, d.Name, idx)
	}
	n, err := strconv.Atoi(d.Args[idx])
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", d.Line, d.Name, err)
	}
	return n, nil
}

func execDirective(h *Harness, d Directive) error {
	switch d.Name {
	case "key":
		if len(d.Args) != 1 {
			return fmt.Errorf("line %d: key wants 1 argument", d.Line)
		}
		key, r, mod, err := parseKeySpec(d.Args[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", d.Line, err)
		}
		h.Key(key, r, mod)

	case "type":
		if len(d.Args) != 1 {
			return fmt.Errorf("line %d: type wants 1 argument", d.Line)
		}
		h.Type(d.Args[0])

	case "click", "right_click", "mouse_down", "mouse_up", "hover":
		x, y, err := parseXY(d)
		if err != nil {
			return err
		}
		switch d.Name {
		case "click":
			h.Click(x, y)
		case "right_click":
			h.RightClick(x, y)
		case "mouse_down":
			h.MouseDown(x, y)
		case "mouse_up":
			h.MouseUp(x, y)
		case "hover":
			h.Hover(x, y)
		}

	case "drag":
		if len(d.Args) != 4 {
			return fmt.Errorf("line %d: drag wants 4 arguments", d.Line)
		}
		x1, err := parseIntArg(d, 0)
		if err != nil {
			return err
		}
		y1, err := parseIntArg(d, 1)
		if err != nil {
			return err
		}
		x2, err := parseIntArg(d, 2)
		if err != nil {
			return err
		}
		y2, err := parseIntArg(d, 3)
		if err != nil {
			return err
		}
		h.Drag(x1, y1, x2, y2)

	case "scroll_up", "scroll_down":
		x, y, err := parseXY(d)
		if err != nil {
			return err
		}
		if d.Name == "scroll_up" {
			h.ScrollUp(x, y)
		} else {
			h.ScrollDown(x, y)
		}

	case "tick":
		if len(d.Args) == 0 {
			h.Tick()
			return nil
		}
		n, err := parseIntArg(d, 0)
		if err != nil {
			return err
		}
		h.TickN(n)

	case "expect_string":
		if len(d.Args) != 3 {
			return fmt.Errorf("line %d: expect_string wants 3 arguments", d.Line)
		}
		x, err := parseIntArg(d, 0)
		if err != nil {
			return err
		}
		y, err := parseIntArg(d, 1)
		if err != nil {
			return err
		}
		h.ExpectString(x, y, d.Args[2])

	case "expect_cell":
		if len(d.Args) != 3 {
			return fmt.Errorf("line %d: expect_cell wants 3 arguments", d.Line)
		}
		x, err := parseIntArg(d, 0)
		if err != nil {
			return err
		}
		y, err := parseIntArg(d, 1)
		if err != nil {
			return err
		}
		runes := []rune(d.Args[2])
		if len(runes) == 0 {
			return fmt.Errorf("line %d: expect_cell wants a non-empty character", d.Line)
		}
		h.ExpectCell(x, y, runes[0])

	case "expect_empty":
		x, y, err := parseXY(d)
		if err != nil {
			return err
		}
		h.ExpectEmpty(x, y)

	case "expect_style":
		if len(d.Args) != 3 {
			return fmt.Errorf("line %d: expect_style wants 3 arguments", d.Line)
		}
		x, err := parseIntArg(d, 0)
		if err != nil {
			return err
		}
		y, err := parseIntArg(d, 1)
		if err != nil {
			return err
		}
		attr, err := parseAttrName(d.Args[2])
		if err != nil {
			return fmt.Errorf("line %d: %w", d.Line, err)
		}
		h.ExpectStyle(x, y, attr)

	case "expect_action":
		if len(d.Args) != 1 {
			return fmt.Errorf("line %d: expect_action wants 1 argument", d.Line)
		}
		h.ExpectAction(d.Args[0])

	case "expect_quit":
		h.ExpectQuit()

	case "snapshot":
		if len(d.Args) != 1 {
			return fmt.Errorf("line %d: snapshot wants 1 argument", d.Line)
		}
		h.Snapshot(d.Args[0])

	default:
		return fmt.Errorf("line %d: unknown directive %q", d.Line, d.Name)
	}
	return nil
}

func parseXY(d Directive) (int, int, error) {
	if len(d.Args) != 2 {
		return 0, 0, fmt.Errorf("line %d: %s wants 2 arguments", d.Line, d.Name)
	}
	x, err := parseIntArg(d, 0)
	if err != nil {
		return 0, 0, err
	}
	y, err := parseIntArg(d, 1)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

var specialKeyNames = map[string]input.Key{
	"enter":     input.KeyEnter,
	"escape":    input.KeyEsc,
	"tab":       input.KeyTab,
	"backtab":   input.KeyBacktab,
	"backspace": input.KeyBackspace,
	"up":        input.KeyUp,
	"down":      input.KeyDown,
	"left":      input.KeyLeft,
	"right":     input.KeyRight,
	"home":      input.KeyHome,
	"end":       input.KeyEnd,
	"page_up":   input.KeyPgUp,
	"page_down": input.KeyPgDown,
	"insert":    input.KeyInsert,
	"delete":    input.KeyDelete,
	"f1":        input.KeyF1, "f2": input.KeyF2, "f3": input.KeyF3, "f4": input.KeyF4,
	"f5": input.KeyF5, "f6": input.KeyF6, "f7": input.KeyF7, "f8": input.KeyF8,
	"f9": input.KeyF9, "f10": input.KeyF10, "f11": input.KeyF11, "f12": input.KeyF12,
}

// parseKeySpec parses a "key" directive argument: a bare character, a
// special key name, or modifier tokens joined to either with '+'.
func parseKeySpec(tok string) (input.Key, rune, input.Mod, error) {
	if tok == "+" {
		return input.KeyChar, '+', 0, nil
	}
	parts := strings.Split(tok, "+")
	var mod input.Mod
	for _, p := range parts[:len(parts)-1] {
		switch p {
		case "ctrl":
			mod |= input.ModCtrl
		case "alt":
			mod |= input.ModAlt
		case "shift":
			mod |= input.ModShift
		default:
			return 0, 0, 0, fmt.Errorf("unknown modifier %q", p)
		}
	}

	last := parts[len(parts)-1]
	if key, ok := specialKeyNames[last]; ok {
		return key, 0, mod, nil
	}
	runes := []rune(last)
	if len(runes) == 1 {
		return input.KeyChar, runes[0], mod, nil
	}
	return 0, 0, 0, fmt.Errorf("unknown key %q", last)
}

func parseAttrName(name string) (zithril.Attr, error) {
	switch name {
	case "bold":
		return zithril.AttrBold, nil
	case "italic":
		return zithril.AttrItalic, nil
	case "underline":
		return zithril.AttrUnderline, nil
	case "dim":
		return zithril.AttrDim, nil
	case "blink":
		return zithril.AttrBlink, nil
	case "reverse":
		return zithril.AttrReverse, nil
	case "strikethrough":
		return zithril.AttrStrikethrough, nil
	case "overline":
		return zithril.AttrOverline, nil
	default:
		return 0, fmt.Errorf("unknown style attribute %q", name)
	}
}
