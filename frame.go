package zithril

import "github.com/hotschmoe/zithril-sub000/layout"

// Direction and Constraint are re-exported from the layout package so
// application code that only needs Frame.Layout does not have to import
// zithril/layout directly.
type Direction = layout.Direction

const (
	Horizontal = layout.Horizontal
	Vertical   = layout.Vertical
)

type Constraint = layout.Constraint

// Constraint constructors, re-exported for the same reason.
var (
	Length = layout.NewLength
	MinLen = layout.NewMin
	MaxLen = layout.NewMax
	Ratio  = layout.NewRatio
	Flex   = layout.NewFlex
)

// layoutCacheSize bounds Frame's remembered-layout-results ring buffer
// (spec.md §6: "a small fixed-size cache of recent layout results for
// later inspection; overflow silently drops the oldest").
const layoutCacheSize = 8

// layoutCacheEntry records one past Layout call for later inspection
// (primarily by the test harness and by widgets that want to reuse a
// sibling's computed geometry).
type layoutCacheEntry struct {
	Area        Rect
	Direction   Direction
	Constraints []Constraint
	Result      []Rect
}

// Frame is the view function's handle onto the current frame: it exposes
// the buffer's full size, delegates layout splitting to the §4.2 solver,
// and renders widgets into the back buffer.
type Frame struct {
	buf *Buffer

	cache      [layoutCacheSize]layoutCacheEntry
	cacheCount int
	cacheNext  int
}

// NewFrame wraps buf for one view pass.
func NewFrame(buf *Buffer) *Frame {
	return &Frame{buf: buf}
}

// Size returns the full buffer area.
func (f *Frame) Size() Rect {
	return f.buf.Area()
}

// Buffer exposes the underlying cell buffer directly, for widgets or test
// code that needs lower-level access than Render provides.
func (f *Frame) Buffer() *Buffer {
	return f.buf
}

// Layout splits area along direction per constraints (delegating to
// zithril/layout) and records the call in the frame's bounded cache.
func (f *Frame) Layout(area Rect, direction Direction, constraints []Constraint) []Rect {
	lreq := layout.Rect{X: area.X, Y: area.Y, Width: area.Width, Height: area.Height}
	lresult := layout.Split(lreq, direction, constraints)

	result := make([]Rect, len(lresult))
	for i, r := range lresult {
		result[i] = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
	}

	f.cache[f.cacheNext] = layoutCacheEntry{Area: area, Direction: direction, Constraints: constraints, Result: result}
	f.cacheNext = (f.cacheNext + 1) % layoutCacheSize
	if f.cacheCount < layoutCacheSize {
		f.cacheCount++
	}

	return result
}

// LayoutHistory returns recorded layout calls, most recent first, up to
// the cache's bound. Overflow silently drops the oldest entry, per §6.
func (f *Frame) LayoutHistory() []layoutCacheEntry {
	out := make([]layoutCacheEntry, 0, f.cacheCount)
	for i := 0; i < f.cacheCount; i++ {
		idx := (f.cacheNext - 1 - i + layoutCacheSize) % layoutCacheSize
		out = append(out, f.cache[idx])
	}
	return out
}

// Render calls widget.Render(area, buf), the frame's only way of reaching
// into widget-specific rendering logic.
func (f *Frame) Render(widget Widget, area Rect) {
	widget.Render(area, f.buf)
}
