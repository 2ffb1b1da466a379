package geom

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#3b5012")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	want := Color{R: 0x3b, G: 0x50, B: 0x12}
	if c != want {
		t.Errorf("ParseHex = %+v, want %+v", c, want)
	}
	if c.Hex() != "#3b5012" {
		t.Errorf("Hex = %q", c.Hex())
	}
	for _, bad := range []string{"", "#123", "#zzzzzz", "1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q): expected error", bad)
		}
	}
}

func TestMixColorEndpoints(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ch := rapid.Uint8()
		a := Color{R: ch.Draw(t, "ar"), G: ch.Draw(t, "ag"), B: ch.Draw(t, "ab")}
		b := Color{R: ch.Draw(t, "br"), G: ch.Draw(t, "bg"), B: ch.Draw(t, "bb")}
		if got := MixColor(a, b, 0); got != a {
			t.Fatalf("MixColor(t=0) = %v, want %v", got, a)
		}
		if got := MixColor(a, b, 1); got != b {
			t.Fatalf("MixColor(t=1) = %v, want %v", got, b)
		}
		if got := MixColor(a, b, -3); got != a {
			t.Fatalf("MixColor(t=-3) = %v, want %v", got, a)
		}
		if got := MixColor(a, b, 7); got != b {
			t.Fatalf("MixColor(t=7) = %v, want %v", got, b)
		}
	})
}

func TestMixColorMidpoint(t *testing.T) {
	a := MustHex("#000000")
	b := MustHex("#ff8040")
	got := MixColor(a, b, 0.5)
	want := Color{R: 128, G: 64, B: 32}
	if got != want {
		t.Errorf("MixColor = %+v, want %+v", got, want)
	}
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := MustHex("#ff0080").RGBA()
	if r != 0xffff || g != 0 || b != 0x8080 || a != 0xffff {
		t.Errorf("RGBA = %x %x %x %x", r, g, b, a)
	}
}

func TestRoundedRectOutline(t *testing.T) {
	r := XYWH(0, 0, 200, 100)
	pts := RoundedRectOutline(r, 16)
	if len(pts) != 4*(cornerSegments+1) {
		t.Fatalf("len = %d, want %d", len(pts), 4*(cornerSegments+1))
	}
	for i, p := range pts {
		if p.X < r.X1-1e-9 || p.X > r.X2+1e-9 || p.Y < r.Y1-1e-9 || p.Y > r.Y2+1e-9 {
			t.Errorf("point %d %+v outside rect", i, p)
		}
	}
	first, last := pts[0], pts[len(pts)-1]
	if math.Abs(first.X-184) > 1e-9 || math.Abs(first.Y) > 1e-9 {
		t.Errorf("first = %+v, want (184, 0)", first)
	}
	if math.Abs(last.X-16) > 1e-9 || math.Abs(last.Y) > 1e-9 {
		t.Errorf("last = %+v, want (16, 0)", last)
	}
}

func TestRoundedRectOutlineClampsRadius(t *testing.T) {
	r := XYWH(0, 0, 20, 10)
	pts := RoundedRectOutline(r, 100)
	// Radius clamps to 5: the top-right arc starts at x = 15.
	if math.Abs(pts[0].X-15) > 1e-9 {
		t.Errorf("first.X = %v, want 15", pts[0].X)
	}
}

func TestRoundedRectOutlineDegenerate(t *testing.T) {
	pts := RoundedRectOutline(R(5, 5, 5, 5), 16)
	for i, p := range pts {
		if math.Abs(p.X-5) > 1e-9 || math.Abs(p.Y-5) > 1e-9 {
			t.Errorf("point %d = %+v, want (5, 5)", i, p)
		}
	}
}

func TestCardRadius(t *testing.T) {
	if got := CardRadius(XYWH(0, 0, 300, 200), 16); got != 16 {
		t.Errorf("CardRadius tall = %v, want 16", got)
	}
	if got := CardRadius(XYWH(0, 0, 300, 30), 16); got != 7 {
		t.Errorf("CardRadius short = %v, want 7", got)
	}
	if got := CardRadius(Rect{}, 16); got != 0 {
		t.Errorf("CardRadius empty = %v, want 0", got)
	}
}
