package zithril

import "fmt"

// DiffMergeDistance (K in spec.md §4.1/§9): two dirty runs separated by
// fewer than this many clean cells are merged into a single emitted
// segment group. Re-emitting a few clean glyphs is cheaper than an extra
// cursor move.
const DiffMergeDistance = 3

// Segment is one contiguous, uniformly-styled run of codepoints to emit at
// a row/column origin. MoveCursor reports whether an explicit cursor
// positioning primitive is needed before this segment (false when it
// continues immediately after the previous segment's emitted glyphs).
type Segment struct {
	X, Y       int
	Style      Style
	Runes      []rune
	MoveCursor bool
}

// Diff walks prev and curr top-to-bottom, left-to-right and returns the
// minimal ordered stream of segments whose replay over prev reproduces
// curr. prev and curr must have identical dimensions; a mismatch is a
// programmer error and is reported as an error rather than panicking.
func Diff(prev, curr *Buffer) ([]Segment, error) {
	if prev.width != curr.width || prev.height != curr.height {
		return nil, fmt.Errorf("zithril: diff dimension mismatch: prev %dx%d, curr %dx%d",
			prev.width, prev.height, curr.width, curr.height)
	}

	var segments []Segment
	cursorX, cursorY := -1, -1
	haveCursor := false

	for y := 0; y < curr.height; y++ {
		x := 0
		for x < curr.width {
			if !cellDirty(prev, curr, x, y) {
				x++
				continue
			}

			runEnd := x
			for {
				j := runEnd
				for j < curr.width && cellDirty(prev, curr, j, y) {
					j++
				}
				runEnd = j
				if runEnd >= curr.width {
					break
				}
				k := runEnd
				for k < curr.width && !cellDirty(prev, curr, k, y) {
					k++
				}
				gapLen := k - runEnd
				if gapLen < DiffMergeDistance {
					runEnd = k
					continue
				}
				break
			}

			emitRun(curr, x, runEnd, y, &segments, &cursorX, &cursorY, &haveCursor)
			x = runEnd
		}
	}

	return segments, nil
}

func cellDirty(prev, curr *Buffer, x, y int) bool {
	return !prev.Get(x, y).Equal(curr.Get(x, y))
}

// emitRun splits [start, end) of row y into uniform-style segments,
// skipping placeholder cells (they still advance the column) and marking
// MoveCursor whenever the segment does not begin exactly where the
// previous one's emission left the cursor.
func emitRun(curr *Buffer, start, end, y int, out *[]Segment, cursorX, cursorY *int, haveCursor *bool) {
	col := start
	for col < end {
		cell := curr.Get(col, y)
		if cell.IsPlaceholder() {
			col++
			continue
		}

		segStyle := cell.Style
		segStart := col
		runes := []rune{cell.Rune}
		col += int(cell.Width)

		for col < end {
			next := curr.Get(col, y)
			if next.IsPlaceholder() {
				col++
				continue
			}
			if !next.Style.Equal(segStyle) {
				break
			}
			runes = append(runes, next.Rune)
			col += int(next.Width)
		}

		moveCursor := !(*haveCursor && *cursorX == segStart && *cursorY == y)
		*out = append(*out, Segment{X: segStart, Y: y, Style: segStyle, Runes: runes, MoveCursor: moveCursor})
		*cursorX, *cursorY = col, y
		*haveCursor = true
	}
}

// Apply replays segments over a buffer equal to prev, producing a buffer
// that should equal curr. It exists chiefly to make Diff's core guarantee
// (property #2 in spec.md §8) independently testable without a terminal.
func Apply(base *Buffer, segments []Segment) *Buffer {
	out := NewBuffer(base.width, base.height)
	out.CopyFrom(base)
	for _, seg := range segments {
		col := seg.X
		for _, r := range seg.Runes {
			w := 1
			if cw := cellWidthForRune(r); cw > 0 {
				w = cw
			}
			out.Set(col, seg.Y, Cell{Rune: r, Width: uint8(w), Style: seg.Style})
			col += w
		}
	}
	return out
}

func cellWidthForRune(r rune) int {
	return runeDisplayWidth(r)
}
