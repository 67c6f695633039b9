package amino

import (
	"errors"
	"math"
	"testing"
)

func colorNear(a, b Color) bool {
	const eps = 1.0 / 255
	return math.Abs(a.R-b.R) <= eps && math.Abs(a.G-b.G) <= eps &&
		math.Abs(a.B-b.B) <= eps && math.Abs(a.A-b.A) <= eps
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"red", Red},
		{"  White ", White},
		{"transparent", Transparent},
		{"#f00", Red},
		{"#00ff00", Green},
		{"#0000ff80", Color{0, 0, 1, 128.0 / 255}},
		{"rgb(255, 0, 0)", Red},
		{"rgba(0,0,255,0.5)", Color{0, 0, 1, 0.5}},
		{"cornflowerblue", RGB(100, 149, 237)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if !colorNear(got, tt.want) {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "notacolor", "#12", "#zzzzzz", "rgb(1,2)", "hsl(1,2,3)"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrBadColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrBadColor", in, err)
		}
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustParseColor("bogus")
}
