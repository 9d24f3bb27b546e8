package zithril

import "testing"

// TestDiffMinimality exercises scenario S6: a single changed cell produces
// exactly one segment, at its own origin, with no other cursor moves,
// style changes, or glyphs.
func TestDiffMinimality(t *testing.T) {
	prev := NewBuffer(10, 5)
	curr := NewBuffer(10, 5)
	curr.Set(5, 3, Cell{Rune: 'X', Width: 1, Style: Empty})

	segs, err := Diff(prev, curr)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("want exactly 1 segment, got %d: %#v", len(segs), segs)
	}
	seg := segs[0]
	if seg.X != 5 || seg.Y != 3 || len(seg.Runes) != 1 || seg.Runes[0] != 'X' {
		t.Fatalf("unexpected segment %#v", seg)
	}
	if !seg.MoveCursor {
		t.Fatalf("expected the first segment to require a cursor move")
	}
}

// TestDiffReplayRoundTrip exercises universal invariant #2: replaying the
// emitted segments against prev reproduces curr, cell-wise.
func TestDiffReplayRoundTrip(t *testing.T) {
	prev := NewBuffer(20, 4)
	prev.SetString(0, 0, "hello world", Empty)
	prev.SetString(0, 1, "中文测试", Empty)

	curr := NewBuffer(20, 4)
	curr.CopyFrom(prev)
	curr.SetString(0, 0, "HELLO WORLD", Empty.WithAttr(AttrBold))
	curr.SetString(2, 2, "new line here", Empty)

	segs, err := Diff(prev, curr)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}

	replayed := Apply(prev, segs)
	if !replayed.Equal(curr) {
		t.Fatalf("replayed buffer does not match curr")
	}
}

func TestDiffDimensionMismatchIsError(t *testing.T) {
	a := NewBuffer(5, 5)
	b := NewBuffer(6, 5)
	if _, err := Diff(a, b); err == nil {
		t.Fatalf("expected an error for mismatched dimensions")
	}
}

func TestDiffNoChangesProducesNoSegments(t *testing.T) {
	a := NewBuffer(5, 5)
	b := NewBuffer(5, 5)
	segs, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(segs) != 0 {
		t.Fatalf("expected no segments for identical buffers, got %d", len(segs))
	}
}

func TestDiffMergesCloseDirtyRuns(t *testing.T) {
	prev := NewBuffer(10, 1)
	curr := NewBuffer(10, 1)
	curr.Set(0, 0, Cell{Rune: 'a', Width: 1, Style: Empty})
	curr.Set(3, 0, Cell{Rune: 'b', Width: 1, Style: Empty}) // gap of 2 < DiffMergeDistance

	segs, err := Diff(prev, curr)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("want a single merged segment, got %d: %#v", len(segs), segs)
	}
}
