package amino

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestTransformMatrixIdentity(t *testing.T) {
	tr := NewTransform(NewRect())
	assertMatrix(t, "identity", tr.matrix(), [6]float64{1, 0, 0, 1, 0, 0})
}

func TestTransformMatrixTranslation(t *testing.T) {
	tr := NewTransform(NewRect()).SetTranslateX(10).SetTranslateY(20)
	assertMatrix(t, "translation", tr.matrix(), [6]float64{1, 0, 0, 1, 10, 20})
}

func TestTransformMatrixScaleRotate(t *testing.T) {
	tr := NewTransform(NewRect()).
		SetTranslateX(50).SetTranslateY(100).
		SetScaleX(2).SetScaleY(2).
		SetRotate(90)
	// Scale(2,2) then Rotate(90°).
	assertMatrix(t, "combined", tr.matrix(), [6]float64{0, 2, -2, 0, 50, 100})
}

func TestTransformAnchorIsFixedPoint(t *testing.T) {
	tr := NewTransform(NewRect()).
		SetAnchorX(5).SetAnchorY(5).
		SetRotate(45).SetScaleX(3).SetScaleY(0.5)
	x, y := transformPoint(tr.matrix(), 5, 5)
	assertNear(t, "anchor x", x, 5)
	assertNear(t, "anchor y", y, 5)
}

func TestTransformSetRotateNormalizes(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{450, 90},
		{-90, 270},
	}
	for _, tt := range tests {
		tr := NewTransform(NewRect()).SetRotate(tt.in)
		assertNear(t, "rotate", tr.Rotate(), tt.want)
	}
}

func TestTransformToChildCoordsSubtractsTranslationOnly(t *testing.T) {
	tr := NewTransform(NewRect()).SetTranslateX(10).SetTranslateY(20).SetRotate(90)
	x, y := tr.ToChildCoords(15, 25)
	assertNear(t, "x", x, 5)
	assertNear(t, "y", y, 5)
}

func TestTransformToLocalInvertsMatrix(t *testing.T) {
	tr := NewTransform(NewRect()).SetTranslateX(10).SetTranslateY(20).SetRotate(90).SetScaleX(2)
	px, py := transformPoint(tr.matrix(), 3, 4)
	x, y := tr.ToLocal(px, py)
	assertNear(t, "x", x, 3)
	assertNear(t, "y", y, 4)
}

func TestTransformBounds(t *testing.T) {
	r := NewRect().Set(0, 0, 10, 20)
	tr := NewTransform(r).SetTranslateX(100).SetRotate(90)
	b := tr.Bounds()
	// (x, y) -> (-y, x) then +100 on x.
	assertNear(t, "x", b.X, 80)
	assertNear(t, "y", b.Y, 0)
	assertNear(t, "w", b.Width, 20)
	assertNear(t, "h", b.Height, 10)
}

func TestInvertAffineSingular(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 0, 5, 5}), [6]float64{1, 0, 0, 1, 0, 0})
}

func TestTransformSetChildDetachesPrevious(t *testing.T) {
	a, b := NewRect(), NewCircle()
	tr := NewTransform(a)
	tr.SetChild(b)
	if a.Parent() != nil {
		t.Error("previous child still attached")
	}
	if b.Parent() != Invalidator(tr) {
		t.Error("new child parent not set")
	}
}

func TestTransformWithoutChild(t *testing.T) {
	e, _, _ := newTestEngine(t, false)
	s := e.AddSurface("main", 20, 20)
	r := NewRect().SetName("r")
	tr := NewTransform(r)
	s.Add(NewGroup(tr))

	if !tr.Remove(r) {
		t.Fatal("Remove returned false")
	}
	if got := tr.Children(); got != nil {
		t.Errorf("Children = %v, want nil", got)
	}
	if got := s.Find("missing"); got != nil {
		t.Errorf("Find(missing) = %v, want nil", got)
	}
	if got := s.Find("r"); got != nil {
		t.Errorf("removed child still found: %v", got)
	}
	var visited int
	Walk(tr, func(Node) bool { visited++; return true })
	if visited != 1 {
		t.Errorf("Walk visited %d nodes, want 1", visited)
	}
	s.Repaint()
}
