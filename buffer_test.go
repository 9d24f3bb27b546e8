package zithril

import "testing"

// assertWideInvariant checks universal invariant #1: every width-2 cell is
// followed by a width-0 placeholder; every width-0 cell is preceded by a
// width-2 cell; no width-0 cell sits at column 0.
func assertWideInvariant(t *testing.T, b *Buffer) {
	t.Helper()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			cell := b.Get(x, y)
			switch cell.Width {
			case 2:
				if x+1 >= b.Width() || !b.Get(x+1, y).IsPlaceholder() {
					t.Fatalf("wide cell at (%d,%d) not followed by a placeholder", x, y)
				}
			case 0:
				if x == 0 {
					t.Fatalf("placeholder cell at column 0, row %d", y)
				}
				if b.Get(x-1, y).Width != 2 {
					t.Fatalf("placeholder at (%d,%d) not preceded by a wide cell", x, y)
				}
			}
		}
	}
}

func TestBufferSetWideCellInvariant(t *testing.T) {
	b := NewBuffer(10, 3)
	b.Set(2, 1, Cell{Rune: '中', Width: 2, Style: Empty})
	assertWideInvariant(t, b)
}

func TestBufferSetDemotesOverwrittenPlaceholderOwner(t *testing.T) {
	b := NewBuffer(10, 3)
	b.Set(2, 1, Cell{Rune: '中', Width: 2, Style: Empty})
	b.Set(3, 1, Cell{Rune: 'x', Width: 1, Style: Empty})
	assertWideInvariant(t, b)
	if b.Get(2, 1).Rune != ' ' || b.Get(2, 1).Width != 1 {
		t.Fatalf("expected wide cell demoted to a single space, got %#v", b.Get(2, 1))
	}
	if b.Get(3, 1).Rune != 'x' {
		t.Fatalf("expected overwrite at (3,1) to stick")
	}
}

func TestBufferSetOrphansPlaceholderWhenHeadOverwritten(t *testing.T) {
	b := NewBuffer(10, 3)
	b.Set(2, 1, Cell{Rune: '中', Width: 2, Style: Empty})
	b.Set(2, 1, Cell{Rune: 'a', Width: 1, Style: Empty})
	assertWideInvariant(t, b)
	if b.Get(3, 1).Width != 1 || b.Get(3, 1).Rune != DefaultCell.Rune {
		t.Fatalf("expected orphaned placeholder reset to default, got %#v", b.Get(3, 1))
	}
}

// TestSetStringWideCharAtRowEnd exercises scenario S7.
func TestSetStringWideCharAtRowEnd(t *testing.T) {
	b := NewBuffer(5, 1)
	b.SetString(4, 0, "中", Empty)
	assertWideInvariant(t, b)
	cell := b.Get(4, 0)
	if cell.Rune != ' ' || cell.Width != 1 {
		t.Fatalf("expected demoted space at row end, got %#v", cell)
	}
}

func TestSetStringAtOrPastWidthWritesNothing(t *testing.T) {
	b := NewBuffer(5, 1)
	n := b.SetString(5, 0, "hello", Empty)
	if n != 0 {
		t.Fatalf("expected 0 columns advanced, got %d", n)
	}
	for x := 0; x < 5; x++ {
		if !b.Get(x, 0).Equal(DefaultCell) {
			t.Fatalf("expected buffer untouched, got %#v at x=%d", b.Get(x, 0), x)
		}
	}
}

func TestSetStringAdvancesByDisplayWidth(t *testing.T) {
	b := NewBuffer(10, 1)
	n := b.SetString(0, 0, "a中b", Empty)
	if n != 4 {
		t.Fatalf("want 4 columns advanced (1+2+1), got %d", n)
	}
	if b.Get(0, 0).Rune != 'a' {
		t.Fatalf("unexpected cell 0: %#v", b.Get(0, 0))
	}
	if b.Get(1, 0).Rune != '中' || b.Get(1, 0).Width != 2 {
		t.Fatalf("unexpected cell 1: %#v", b.Get(1, 0))
	}
	if !b.Get(2, 0).IsPlaceholder() {
		t.Fatalf("expected placeholder at cell 2")
	}
	if b.Get(3, 0).Rune != 'b' {
		t.Fatalf("unexpected cell 3: %#v", b.Get(3, 0))
	}
}

func TestBufferResizePreservesOverlap(t *testing.T) {
	b := NewBuffer(4, 2)
	b.SetString(0, 0, "ab", Empty)
	b.Resize(2, 2)
	if b.Get(0, 0).Rune != 'a' || b.Get(1, 0).Rune != 'b' {
		t.Fatalf("expected overlapping content preserved after shrink")
	}
	assertWideInvariant(t, b)
}

func TestBufferResizeDemotesDanglingWideCellAtNewEdge(t *testing.T) {
	b := NewBuffer(4, 1)
	b.Set(2, 0, Cell{Rune: '中', Width: 2, Style: Empty})
	b.Resize(3, 1)
	assertWideInvariant(t, b)
	if b.Get(2, 0).Width != 1 {
		t.Fatalf("expected dangling wide cell demoted after resize, got %#v", b.Get(2, 0))
	}
}

func TestBufferEqualAndCopyFrom(t *testing.T) {
	a := NewBuffer(3, 3)
	a.SetString(0, 0, "hi", Empty)
	b := NewBuffer(1, 1)
	b.CopyFrom(a)
	if !a.Equal(b) {
		t.Fatalf("expected buffers equal after CopyFrom")
	}
}

func TestBufferGetOutOfBoundsReturnsDefault(t *testing.T) {
	b := NewBuffer(2, 2)
	if !b.Get(-1, 0).Equal(DefaultCell) || !b.Get(5, 5).Equal(DefaultCell) {
		t.Fatalf("expected out-of-bounds reads to return DefaultCell")
	}
}
