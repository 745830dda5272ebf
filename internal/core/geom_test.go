package core

import "testing"

func TestCenterIn(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		area     Rect
		expected Rect
	}{
		{"exact", 10, 5, NewRect(0, 1, 10, 5), NewRect(0, 1, 10, 5)},
		{"centred", 4, 2, NewRect(0, 1, 10, 6), NewRect(3, 3, 4, 2)},
		{"odd slack rounds left", 3, 3, NewRect(2, 0, 8, 8), NewRect(4, 2, 3, 3)},
		{"too large", 12, 4, NewRect(0, 0, 10, 4), NewRect(-1, 0, 12, 4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CenterIn(tc.w, tc.h, tc.area); got != tc.expected {
				t.Errorf("CenterIn(%d, %d, %+v) = %+v, expected %+v", tc.w, tc.h, tc.area, got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"corner", 10, 10, true},
		{"last cell", 29, 24, true},
		{"right edge exclusive", 30, 20, false},
		{"bottom edge exclusive", 20, 25, false},
		{"left of it", 9, 15, false},
		{"above it", 15, 9, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectFitsAndGrow(t *testing.T) {
	r := NewRect(2, 3, 8, 4)

	if !r.Fits(8, 4) || r.Fits(9, 4) || r.Fits(8, 5) {
		t.Errorf("Fits() wrong for %+v", r)
	}
	if g := r.Grow(1); g != NewRect(1, 2, 10, 6) {
		t.Errorf("Grow(1) = %+v, expected {1 2 10 6}", g)
	}
	if r.Right() != 10 || r.Bottom() != 7 {
		t.Errorf("Right(), Bottom() = %d, %d, expected 10, 7", r.Right(), r.Bottom())
	}
}

func TestRectLocalScreen(t *testing.T) {
	r := NewRect(5, 1, 20, 10)

	x, y := r.Local(7, 4)
	if x != 2 || y != 3 {
		t.Errorf("Local(7, 4) = (%d, %d), expected (2, 3)", x, y)
	}
	sx, sy := r.Screen(x, y)
	if sx != 7 || sy != 4 {
		t.Errorf("Screen(2, 3) = (%d, %d), expected (7, 4)", sx, sy)
	}
	if x, y := r.Local(0, 0); x != -5 || y != -1 {
		t.Errorf("Local(0, 0) = (%d, %d), expected (-5, -1)", x, y)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 0, 0},
		{3, 0, -1, -1}, // empty range resolves to hi
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}
