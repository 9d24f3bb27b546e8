package zithril

import "testing"

func TestStyleWithAttrIsAdditive(t *testing.T) {
	s := Empty.WithAttr(AttrBold).WithAttr(AttrItalic)
	if !s.Attrs.Has(AttrBold) || !s.Attrs.Has(AttrItalic) {
		t.Fatalf("expected both attributes set, got %v", s.Attrs)
	}
	if s.Attrs.Has(AttrUnderline) {
		t.Fatalf("did not expect underline set")
	}
}

func TestStylePatchUnionsAttrsAndOverridesColors(t *testing.T) {
	base := Empty.WithAttr(AttrBold).WithFg(NewBasicColor(Red))
	patch := Empty.WithAttr(AttrItalic).WithFg(NewBasicColor(Blue))

	out := base.Patch(patch)
	if !out.Attrs.Has(AttrBold) || !out.Attrs.Has(AttrItalic) {
		t.Fatalf("expected attrs to union, got %v", out.Attrs)
	}
	if !out.Fg.Equal(NewBasicColor(Blue)) {
		t.Fatalf("expected patch's fg to win, got %#v", out.Fg)
	}
}

func TestStylePatchLeavesUnsetFieldsAlone(t *testing.T) {
	base := Empty.WithBg(NewBasicColor(Green))
	out := base.Patch(Empty)
	if !out.HasBg || !out.Bg.Equal(NewBasicColor(Green)) {
		t.Fatalf("expected background preserved when patch sets nothing, got %#v", out)
	}
}

func TestStyleIsEmpty(t *testing.T) {
	if !Empty.IsEmpty() {
		t.Fatalf("expected zero-value style to be empty")
	}
	if Empty.WithAttr(AttrBold).IsEmpty() {
		t.Fatalf("expected style with an attribute set to not be empty")
	}
}

func TestStyleEqual(t *testing.T) {
	a := Empty.WithFg(NewRGBColor(1, 2, 3))
	b := Empty.WithFg(NewRGBColor(1, 2, 3))
	if !a.Equal(b) {
		t.Fatalf("expected equal styles")
	}
	if a.Equal(Empty) {
		t.Fatalf("expected styles with differing fg to compare unequal")
	}
}
