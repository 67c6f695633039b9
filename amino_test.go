package amino

import "testing"

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"right edge", 110, 40, true},
		{"bottom edge", 50, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Rect.Union ---

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlapping", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, Rect{0, 0, 15, 15}},
		{"disjoint", Rect{0, 0, 1, 1}, Rect{9, 9, 1, 1}, Rect{0, 0, 10, 10}},
		{"empty left", Rect{}, Rect{3, 4, 5, 6}, Rect{3, 4, 5, 6}},
		{"empty right", Rect{3, 4, 5, 6}, Rect{}, Rect{3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := KindBackgroundSaturation.String(); got != "backgroundsaturation" {
		t.Errorf("String() = %q, want %q", got, "backgroundsaturation")
	}
	if got := Kind(200).String(); got != "unknown" {
		t.Errorf("String() = %q, want %q", got, "unknown")
	}
	if !KindImage.IsShape() || KindGroup.IsShape() {
		t.Error("IsShape boundary wrong")
	}
	if !KindBuffer.IsEffect() || KindTransform.IsEffect() {
		t.Error("IsEffect boundary wrong")
	}
}
