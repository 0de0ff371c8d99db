package geometry

import "testing"

func TestRectTranslate(t *testing.T) {
	tests := []struct {
		name  string
		delta Point
		want  Rect
	}{
		{
			name:  "right and down",
			delta: Point{X: 10, Y: 5},
			want:  Rect{X: 110, Y: 105, Width: 40, Height: 20},
		},
		{
			name:  "left and up",
			delta: Point{X: -10, Y: -5},
			want:  Rect{X: 90, Y: 95, Width: 40, Height: 20},
		},
		{
			name:  "zero delta is identity",
			delta: Point{},
			want:  Rect{X: 100, Y: 100, Width: 40, Height: 20},
		},
	}

	base := Rect{X: 100, Y: 100, Width: 40, Height: 20}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Translate(tt.delta)
			if got != tt.want {
				t.Errorf("Translate(%+v) = %+v, want %+v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 10}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{15, 15}, true},
		{"top-left corner inclusive", Point{10, 10}, true},
		{"right edge exclusive", Point{30, 15}, false},
		{"bottom edge exclusive", Point{15, 20}, false},
		{"left of rect", Point{9, 15}, false},
		{"above rect", Point{15, 9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectCenterIn(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	inner := Rect{X: 77, Y: 3, Width: 40, Height: 20}

	got := inner.CenterIn(outer)
	want := Rect{X: 30, Y: 15, Width: 40, Height: 20}
	if got != want {
		t.Errorf("CenterIn = %+v, want %+v", got, want)
	}
}

func TestPointSub(t *testing.T) {
	got := Point{110, 95}.Sub(Point{100, 100})
	want := Point{10, -5}
	if got != want {
		t.Errorf("Sub = %+v, want %+v", got, want)
	}
}
