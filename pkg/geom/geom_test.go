package geom

import (
	"testing"

	"github.com/matzehuels/popover/pkg/errors"
)

func TestRectEdges(t *testing.T) {
	r := R(100, 50, 40, 20)

	if r.Right() != 140 {
		t.Errorf("Right() = %v, want 140", r.Right())
	}
	if r.Bottom() != 70 {
		t.Errorf("Bottom() = %v, want 70", r.Bottom())
	}
	if r.CenterX() != 120 || r.CenterY() != 60 {
		t.Errorf("center = (%v, %v), want (120, 60)", r.CenterX(), r.CenterY())
	}
	if got := r.Size(); got != (Size{Width: 40, Height: 20}) {
		t.Errorf("Size() = %+v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := R(10, 10, 10, 10)
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{10, 10}, true},
		{Point{19.9, 19.9}, true},
		{Point{20, 15}, false},
		{Point{15, 20}, false},
		{Point{9, 15}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectTranslate(t *testing.T) {
	r := R(1, 2, 3, 4).Translate(10, -2)
	if r != R(11, 0, 3, 4) {
		t.Errorf("Translate = %+v", r)
	}
}

func TestIsZero(t *testing.T) {
	if !(Rect{}).IsZero() {
		t.Error("zero Rect should be IsZero")
	}
	if !R(0, 0, 5, 0).IsZero() {
		t.Error("rect without height should be IsZero")
	}
	if R(0, 0, 1, 1).IsZero() {
		t.Error("unit rect should not be IsZero")
	}
	if !(Size{}).IsZero() || (Size{Width: 1}).IsZero() {
		t.Error("Size.IsZero should require both extents to be zero")
	}
}

func TestParseRect(t *testing.T) {
	r, err := ParseRect("100, 50,40 ,20")
	if err != nil {
		t.Fatalf("ParseRect: %v", err)
	}
	if r != R(100, 50, 40, 20) {
		t.Errorf("ParseRect = %+v", r)
	}

	r, err = ParseRect("0,-240,800,2000")
	if err != nil {
		t.Fatalf("negative origin should parse: %v", err)
	}
	if r.Y != -240 {
		t.Errorf("Y = %v, want -240", r.Y)
	}

	for _, bad := range []string{"", "1,2,3", "1,2,3,x", "1,2,-3,4", "1,2,3,4,5"} {
		_, err := ParseRect(bad)
		if err == nil {
			t.Errorf("ParseRect(%q) should fail", bad)
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidGeometry) {
			t.Errorf("ParseRect(%q) code = %v", bad, errors.GetCode(err))
		}
	}
}

func TestParseSize(t *testing.T) {
	s, err := ParseSize("120,30")
	if err != nil {
		t.Fatalf("ParseSize: %v", err)
	}
	if s != (Size{Width: 120, Height: 30}) {
		t.Errorf("ParseSize = %+v", s)
	}
	if _, err := ParseSize("120"); err == nil {
		t.Error("ParseSize with one field should fail")
	}
}
