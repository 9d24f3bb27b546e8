package zithril

import "testing"

// TestFrameLayoutSplit exercises scenario S8.
func TestFrameLayoutSplit(t *testing.T) {
	buf := NewBuffer(100, 50)
	f := NewFrame(buf)
	rects := f.Layout(NewRect(0, 0, 100, 50), Horizontal, []Constraint{Length(30), Flex(1)})

	want := []Rect{NewRect(0, 0, 30, 50), NewRect(30, 0, 70, 50)}
	if len(rects) != len(want) {
		t.Fatalf("got %d rects, want %d", len(rects), len(want))
	}
	for i := range want {
		if rects[i] != want[i] {
			t.Fatalf("rect %d: got %#v want %#v", i, rects[i], want[i])
		}
	}
}

func TestFrameSizeMatchesBuffer(t *testing.T) {
	buf := NewBuffer(40, 10)
	f := NewFrame(buf)
	if f.Size() != buf.Area() {
		t.Fatalf("got %#v want %#v", f.Size(), buf.Area())
	}
}

func TestFrameLayoutHistoryMostRecentFirst(t *testing.T) {
	buf := NewBuffer(10, 10)
	f := NewFrame(buf)
	f.Layout(NewRect(0, 0, 10, 10), Horizontal, []Constraint{Length(5), Length(5)})
	f.Layout(NewRect(0, 0, 10, 10), Vertical, []Constraint{Length(5), Length(5)})

	hist := f.LayoutHistory()
	if len(hist) != 2 {
		t.Fatalf("want 2 recorded calls, got %d", len(hist))
	}
	if hist[0].Direction != Vertical {
		t.Fatalf("expected most recent call first, got %#v", hist[0])
	}
}

func TestFrameLayoutHistoryDropsOldestOnOverflow(t *testing.T) {
	buf := NewBuffer(10, 10)
	f := NewFrame(buf)
	for i := 0; i < layoutCacheSize+3; i++ {
		f.Layout(NewRect(0, 0, 10, 10), Horizontal, []Constraint{Length(i + 1)})
	}
	hist := f.LayoutHistory()
	if len(hist) != layoutCacheSize {
		t.Fatalf("want history capped at %d, got %d", layoutCacheSize, len(hist))
	}
}

func TestFrameRenderDelegatesToWidget(t *testing.T) {
	buf := NewBuffer(10, 10)
	f := NewFrame(buf)
	called := false
	var gotArea Rect
	w := WidgetFunc(func(area Rect, b *Buffer) {
		called = true
		gotArea = area
	})
	area := NewRect(1, 1, 5, 5)
	f.Render(w, area)
	if !called || gotArea != area {
		t.Fatalf("expected widget rendered with area %#v, got called=%v area=%#v", area, called, gotArea)
	}
}
