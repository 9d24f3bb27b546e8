package zithril

import "testing"

func TestRGBColorRoundTrip(t *testing.T) {
	c := NewRGBColor(10, 200, 30)
	r, g, b := c.RGB255()
	if r != 10 || g != 200 || b != 30 {
		t.Fatalf("got (%d,%d,%d), want (10,200,30)", r, g, b)
	}
}

func TestColorEqual(t *testing.T) {
	a := NewBasicColor(Red)
	b := NewBasicColor(Red)
	if !a.Equal(b) {
		t.Fatalf("expected equal basic colours")
	}
	if a.Equal(NewBasicColor(Blue)) {
		t.Fatalf("expected different basic colours to compare unequal")
	}

	x := NewRGBColor(1, 2, 3)
	y := NewRGBColor(1, 2, 3)
	if !x.Equal(y) {
		t.Fatalf("expected equal rgb colours")
	}

	if !Default.Equal(Color{Kind: ColorDefault}) {
		t.Fatalf("expected two default colours to compare equal")
	}
}

func TestIndexedColor(t *testing.T) {
	c := NewIndexedColor(200)
	if c.Kind != ColorIndexed || c.Index != 200 {
		t.Fatalf("unexpected indexed colour %#v", c)
	}
}
