package events

import (
	"testing"

	"github.com/HandrianD/umamusume-auto-train/internal/screen"
)

// #region position-tables

func TestLayoutPointRoundTrip(t *testing.T) {
	l := DefaultLayout()
	for n := 2; n <= 5; n++ {
		pts, err := l.Positions(n)
		if err != nil {
			t.Fatalf("Positions(%d): %v", n, err)
		}
		if len(pts) != n {
			t.Fatalf("Positions(%d) has %d entries", n, len(pts))
		}
		for i := 1; i <= n; i++ {
			p, err := l.Point(n, i)
			if err != nil {
				t.Fatalf("Point(%d, %d): %v", n, i, err)
			}
			if p != pts[i-1] {
				t.Errorf("Point(%d, %d) = %v, want %v", n, i, p, pts[i-1])
			}
			if !p.Valid() {
				t.Errorf("Point(%d, %d) = %v not within safe screen area", n, i, p)
			}
		}
	}
}

func TestLayoutPointOutOfRange(t *testing.T) {
	l := DefaultLayout()
	if _, err := l.Point(3, 0); err == nil {
		t.Error("index 0 accepted")
	}
	if _, err := l.Point(3, 4); err == nil {
		t.Error("index beyond table accepted")
	}
	if _, err := l.Point(6, 1); err == nil {
		t.Error("unknown table accepted")
	}
}

func TestLayoutColumnsMatchMeasured(t *testing.T) {
	l := DefaultLayout()
	p2, _ := l.Point(2, 1)
	if p2.X != 290 {
		t.Errorf("two-option column X = %d, want 290", p2.X)
	}
	p5, _ := l.Point(5, 1)
	if (p5 != screen.Point{X: 300, Y: 310}) {
		t.Errorf("five-option top = %v", p5)
	}
}

// #endregion

// #region nearest

func TestLayoutNearest(t *testing.T) {
	l := DefaultLayout()
	tests := []struct {
		name string
		p    screen.Point
		want int
	}{
		{"exact second", screen.Point{X: 300, Y: 644}, 2},
		{"within radius", screen.Point{X: 330, Y: 540}, 1},
		{"too far", screen.Point{X: 800, Y: 400}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Nearest(3, tt.p, 50); got != tt.want {
				t.Errorf("Nearest(3, %v, 50) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

// #endregion
