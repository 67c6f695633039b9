package amino

import (
	"strings"
	"testing"
)

func expectPanic(t *testing.T, contains string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, contains) {
			t.Errorf("panic = %v, want it to contain %q", r, contains)
		}
	}()
	fn()
}

func TestUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRect().ID().String()
		if seen[id] {
			t.Fatalf("duplicate ID %s", id)
		}
		seen[id] = true
	}
}

func TestGroupAdd(t *testing.T) {
	g := NewGroup()
	a, b := NewRect(), NewCircle()
	g.Add(a, b)
	if g.NumChildren() != 2 || g.ChildAt(0) != Node(a) || g.ChildAt(1) != Node(b) {
		t.Fatalf("children = %v", g.Children())
	}
	if a.Parent() != Invalidator(g) {
		t.Error("parent not set")
	}
}

func TestGroupAddAt(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{"beginning", 0, []string{"x", "a", "b"}},
		{"middle", 1, []string{"a", "x", "b"}},
		{"end", 2, []string{"a", "b", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGroup(NewRect().SetName("a"), NewRect().SetName("b"))
			g.AddAt(NewRect().SetName("x"), tt.index)
			for i, name := range tt.want {
				if got := g.ChildAt(i).Name(); got != name {
					t.Errorf("child %d = %q, want %q", i, got, name)
				}
			}
		})
	}
}

func TestGroupOwnershipPanics(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		expectPanic(t, "nil child", func() { NewGroup().Add(nil) })
	})
	t.Run("second parent", func(t *testing.T) {
		r := NewRect()
		NewGroup(r)
		expectPanic(t, "already has a parent", func() { NewGroup(r) })
	})
	t.Run("cycle", func(t *testing.T) {
		outer := NewGroup()
		inner := NewGroup()
		outer.Add(inner)
		expectPanic(t, "cycle", func() { inner.Add(outer) })
	})
	t.Run("self", func(t *testing.T) {
		g := NewGroup()
		expectPanic(t, "cycle", func() { g.Add(g) })
	})
	t.Run("index out of range", func(t *testing.T) {
		expectPanic(t, "out of range", func() { NewGroup().RemoveAt(0) })
	})
}

func TestGroupRemove(t *testing.T) {
	a, b, c := NewRect(), NewRect(), NewRect()
	g := NewGroup(a, b, c)

	if !g.Remove(b) || g.Remove(b) {
		t.Error("Remove results wrong")
	}
	if b.Parent() != nil {
		t.Error("removed child still has a parent")
	}
	if got := g.RemoveAt(0); got != Node(a) {
		t.Errorf("RemoveAt(0) = %v, want a", got)
	}
	if g.NumChildren() != 1 || g.ChildAt(0) != Node(c) {
		t.Errorf("children = %v, want [c]", g.Children())
	}

	// A removed node can be re-added elsewhere.
	NewGroup(b)
	g.Clear()
	if g.NumChildren() != 0 || c.Parent() != nil {
		t.Error("Clear left children attached")
	}
}

func TestDetach(t *testing.T) {
	r := NewRect()
	if Detach(r) {
		t.Error("Detach reported an owner for a free node")
	}
	g := NewGroup(r)
	if !Detach(r) || g.NumChildren() != 0 {
		t.Error("Detach did not remove from group")
	}
}

type countingInvalidator struct{ n int }

func (c *countingInvalidator) SetDirty() { c.n++ }

func TestDirtyPropagation(t *testing.T) {
	var root countingInvalidator
	r := NewRect()
	g1 := NewGroup(r)
	g2 := NewGroup(g1)
	attach(&root, g2)

	r.SetX(1)
	g1.SetOpacity(0.5)
	if root.n != 2 {
		t.Errorf("dirty marks = %d, want 2", root.n)
	}

	// Naming does not repaint.
	r.SetName("r")
	if root.n != 2 {
		t.Errorf("SetName marked dirty")
	}
}

func TestWalkAndFind(t *testing.T) {
	leaf := NewCircle().SetName("leaf")
	g := NewGroup(NewRect().SetName("a"), NewGroup(leaf))

	var kinds []Kind
	Walk(g, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	want := []Kind{KindGroup, KindRect, KindGroup, KindCircle}
	if len(kinds) != len(want) {
		t.Fatalf("walk = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("walk[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}

	if g.Find("leaf") != Node(leaf) {
		t.Error("Find(leaf) failed")
	}
	if g.Find("missing") != nil {
		t.Error("Find(missing) returned a node")
	}

	visited := 0
	Walk(g, func(Node) bool { visited++; return visited < 2 })
	if visited != 2 {
		t.Errorf("stopped walk visited %d, want 2", visited)
	}
}

func TestGroupProperty(t *testing.T) {
	g := NewGroup()
	set, ok := g.Property("x")
	if !ok {
		t.Fatal("x not exposed")
	}
	set(12)
	if g.X() != 12 {
		t.Errorf("x = %v, want 12", g.X())
	}
	if _, ok := g.Property("rotation"); ok {
		t.Error("unexpected rotation property")
	}
}

func TestGroupBounds(t *testing.T) {
	g := NewGroup(
		NewRect().Set(0, 0, 10, 10),
		NewRect().Set(20, 5, 10, 10),
		NewRect().Set(100, 100, 1, 1).SetVisible(false),
	).SetPosition(5, 5)
	want := Rect{X: 5, Y: 5, Width: 30, Height: 15}
	if got := g.Bounds(); got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}
}
