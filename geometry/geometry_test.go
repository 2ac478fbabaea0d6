package geometry

import "testing"

func TestRectanglesOverlap(t *testing.T) {
	base := Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", base, true},
		{"inside", Rect{2, 2, 8, 8}, true},
		{"partial", Rect{5, 5, 15, 15}, true},
		{"touching right edge", Rect{10, 0, 20, 10}, false},
		{"touching bottom edge", Rect{0, 10, 10, 20}, false},
		{"touching corner", Rect{10, 10, 20, 20}, false},
		{"disjoint", Rect{20, 20, 30, 30}, false},
		{"horizontal line through interior", Rect{-5, 5, 15, 5}, true},
		{"horizontal line along top edge", Rect{-5, 0, 15, 0}, false},
		{"vertical line through interior", Rect{5, -5, 5, 15}, true},
		{"vertical line along left edge", Rect{0, -5, 0, 15}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RectanglesOverlap(base, tt.other); got != tt.want {
				t.Errorf("RectanglesOverlap(%v, %v) = %v, want %v", base, tt.other, got, tt.want)
			}
			if got := RectanglesOverlap(tt.other, base); got != tt.want {
				t.Errorf("overlap not symmetric for %v", tt.other)
			}
		})
	}
}

func TestBoundingRect(t *testing.T) {
	r := BoundingRect(Pt(10, -5), Pt(-3, 7))
	want := Rect{Left: -3, Top: -5, Right: 10, Bottom: 7}
	if r != want {
		t.Errorf("BoundingRect = %v, want %v", r, want)
	}
}

func TestExpandRect(t *testing.T) {
	r := ExpandRect(Rect{0, 0, 10, 10}, 3, 5)
	want := Rect{Left: 0, Top: -3, Right: 10, Bottom: 15}
	if r != want {
		t.Errorf("ExpandRect = %v, want %v", r, want)
	}
}

func TestShrinkHorizontal(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	if got := r.ShrinkHorizontal(2); got != (Rect{2, 0, 8, 10}) {
		t.Errorf("ShrinkHorizontal(2) = %v", got)
	}
	if got := r.ShrinkHorizontal(20); got != (Rect{5, 0, 5, 10}) {
		t.Errorf("ShrinkHorizontal past centre = %v", got)
	}
	if got := r.ShrinkHorizontal(0); got != r {
		t.Errorf("ShrinkHorizontal(0) changed rect: %v", got)
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Segment
		want bool
	}{
		{"cross", Seg(Pt(0, 5), Pt(10, 5)), Seg(Pt(5, 0), Pt(5, 10)), true},
		{"T junction", Seg(Pt(0, 5), Pt(10, 5)), Seg(Pt(10, 0), Pt(10, 10)), true},
		{"perpendicular miss", Seg(Pt(0, 5), Pt(10, 5)), Seg(Pt(12, 0), Pt(12, 10)), false},
		{"perpendicular short", Seg(Pt(0, 5), Pt(10, 5)), Seg(Pt(5, 6), Pt(5, 10)), false},
		{"collinear overlap", Seg(Pt(0, 0), Pt(10, 0)), Seg(Pt(5, 0), Pt(15, 0)), true},
		{"collinear disjoint", Seg(Pt(0, 0), Pt(10, 0)), Seg(Pt(11, 0), Pt(15, 0)), false},
		{"parallel offset", Seg(Pt(0, 0), Pt(10, 0)), Seg(Pt(0, 1), Pt(10, 1)), false},
		{"vertical collinear", Seg(Pt(3, 0), Pt(3, 10)), Seg(Pt(3, 10), Pt(3, 20)), true},
		{"reversed endpoints", Seg(Pt(10, 5), Pt(0, 5)), Seg(Pt(5, 10), Pt(5, 0)), true},
		{"diagonal", Seg(Pt(0, 0), Pt(10, 10)), Seg(Pt(0, 10), Pt(10, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsIntersect(tt.a, tt.b); got != tt.want {
				t.Errorf("SegmentsIntersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := SegmentsIntersect(tt.b, tt.a); got != tt.want {
				t.Errorf("SegmentsIntersect not symmetric for %v, %v", tt.a, tt.b)
			}
		})
	}
}

func TestCollinear(t *testing.T) {
	h1 := Seg(Pt(0, 0), Pt(5, 0))
	h2 := Seg(Pt(0, 3), Pt(5, 3))
	v := Seg(Pt(0, 0), Pt(0, 5))
	if !Collinear(h1, h2) {
		t.Error("two horizontal segments should be collinear")
	}
	if Collinear(h1, v) {
		t.Error("horizontal and vertical segments should not be collinear")
	}
}

func TestNearestCorner(t *testing.T) {
	r := Rect{80, -20, 120, 20}
	if got := r.NearestCorner(Pt(0, 0)); got != Pt(80, -20) {
		t.Errorf("NearestCorner tie should keep top-left first, got %v", got)
	}
	if got := r.NearestCorner(Pt(200, 30)); got != Pt(120, 20) {
		t.Errorf("NearestCorner = %v, want (120,20)", got)
	}
}
