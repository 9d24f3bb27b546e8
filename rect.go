package zithril

// maxCoord is the saturation ceiling for rect arithmetic (spec: "all
// arithmetic on rects saturates at the unsigned-16 range").
const maxCoord = 65535

// Rect is an origin (X, Y) and dimensions (Width, Height), all non-negative,
// with all arithmetic saturating at maxCoord rather than wrapping.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect builds a Rect, clamping negative inputs to zero and saturating
// large inputs at maxCoord.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: satClamp(x), Y: satClamp(y), Width: satClamp(w), Height: satClamp(h)}
}

func satClamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxCoord {
		return maxCoord
	}
	return v
}

func satAdd(a, b int) int { return satClamp(a + b) }

func satSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

// Empty reports whether the rect has zero width or height.
func (r Rect) Empty() bool { return r.Width == 0 || r.Height == 0 }

// Area returns Width*Height.
func (r Rect) Area() int { return r.Width * r.Height }

// Left, Top, Right, Bottom are the rect's edge coordinates. Right/Bottom
// are exclusive (one past the last contained cell).
func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return satAdd(r.X, r.Width) }
func (r Rect) Bottom() int { return satAdd(r.Y, r.Height) }

// Contains reports whether (x, y) lies within the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersection returns the overlapping area of r and o, which is empty if
// they do not overlap.
func (r Rect) Intersection(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.Right(), o.Right())
	y2 := min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Inner shrinks the rect by the given padding on each side (a margin/padding
// application). Shrinking below zero collapses to a zero-sized rect at the
// padded origin (X+left, Y+top).
func (r Rect) Inner(top, right, bottom, left int) Rect {
	w := satSub(r.Width, left+right)
	h := satSub(r.Height, top+bottom)
	if w == 0 || h == 0 {
		return Rect{X: r.X + left, Y: r.Y + top, Width: 0, Height: 0}
	}
	return Rect{X: r.X + left, Y: r.Y + top, Width: w, Height: h}
}

// Pad is a convenience over Inner applying the same padding to all sides.
func (r Rect) Pad(n int) Rect { return r.Inner(n, n, n, n) }

// Center returns the integer-rounded centre point of the rect.
func (r Rect) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}
