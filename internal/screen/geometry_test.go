package screen

import "testing"

func TestPointValid(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Point{960, 540}, true},
		{"origin", Point{0, 0}, false},
		{"left-edge", Point{5, 540}, false},
		{"top-edge", Point{960, 3}, false},
		{"right-edge", Point{1915, 540}, false},
		{"bottom-edge", Point{960, 1075}, false},
		{"margin-boundary", Point{10, 10}, true},
		{"far-corner-boundary", Point{1910, 1070}, true},
		{"negative", Point{-20, 300}, false},
		{"offscreen", Point{2500, 540}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Valid(); got != tt.want {
				t.Errorf("Valid(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBoxCenter(t *testing.T) {
	b := Box{X: 100, Y: 200, W: 50, H: 30}
	want := Point{X: 125, Y: 215}
	if got := b.Center(); got != want {
		t.Errorf("Center() = %+v, want %+v", got, want)
	}
}

func TestBoxContains(t *testing.T) {
	b := Box{X: 10, Y: 10, W: 100, H: 100}
	if !b.Contains(Point{50, 50}) {
		t.Error("expected interior point to be contained")
	}
	if b.Contains(Point{110, 50}) {
		t.Error("right edge is exclusive")
	}
	if b.Contains(Point{5, 50}) {
		t.Error("point left of box should not be contained")
	}
}

func TestBoxEmpty(t *testing.T) {
	if (Box{X: 1, Y: 1, W: 10, H: 10}).Empty() {
		t.Error("non-degenerate box reported empty")
	}
	if !(Box{}).Empty() {
		t.Error("zero box should be empty")
	}
}
