package amino

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Invalidator receives dirty notifications. Containers, effects and Surfaces
// are Invalidators; every node's parent link points at one.
type Invalidator interface {
	SetDirty()
}

// Node is an element of the scene graph. The set of implementations is
// closed; switch on Kind to tell them apart.
//
// Paint renders the node with the canvas' current transform and leaves the
// canvas state as it found it. Contains tests a point in the node's own
// coordinate space; containers always report false and are searched through
// ToChildCoords instead. SetDirty forwards to the parent, if any.
type Node interface {
	Invalidator
	Paint(c *Canvas)
	Contains(x, y float64) bool
	Visible() bool
	Bounds() Rect
	Parent() Invalidator
	Kind() Kind
	ID() uuid.UUID
	Name() string
	base() *nodeBase
}

// Container is a node with children that hit testing can descend into.
type Container interface {
	Node
	Children() []Node
	ToChildCoords(x, y float64) (float64, float64)
}

// Setter applies an animated value to a node property.
type Setter func(v float64)

// Animatable exposes named numeric properties to PropertyAnimation.
type Animatable interface {
	Property(name string) (Setter, bool)
}

// ErrUnknownProperty is returned when an animation names a property its
// target does not expose.
var ErrUnknownProperty = errors.New("amino: unknown property")

// globalDebug enables tree shape checks on attach.
var globalDebug bool

// nodeBase holds the state shared by every node.
type nodeBase struct {
	id      uuid.UUID
	name    string
	visible bool
	parent  Invalidator
}

func newNodeBase() nodeBase {
	return nodeBase{id: uuid.New(), visible: true}
}

func (b *nodeBase) base() *nodeBase { return b }

// ID returns the node's random identity.
func (b *nodeBase) ID() uuid.UUID { return b.id }

// Name returns the optional lookup tag.
func (b *nodeBase) Name() string { return b.name }

// Visible reports whether the node paints and receives input.
func (b *nodeBase) Visible() bool { return b.visible }

// Parent returns the container or surface holding the node, or nil.
func (b *nodeBase) Parent() Invalidator { return b.parent }

// SetDirty forwards to the parent. Detached nodes ignore it.
func (b *nodeBase) SetDirty() {
	if b.parent != nil {
		b.parent.SetDirty()
	}
}

// childRemover is implemented by every holder of nodes.
type childRemover interface {
	Remove(n Node) bool
}

// attach links child to parent. Nodes have exactly one owner.
func attach(parent Invalidator, child Node) {
	if child == nil {
		panic("amino: cannot add nil child")
	}
	b := child.base()
	if b.parent != nil {
		panic(fmt.Sprintf("amino: node %s already has a parent", describe(child)))
	}
	if pn, ok := parent.(Node); ok && isAncestor(child, pn) {
		panic("amino: adding child would create a cycle")
	}
	b.parent = parent
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

func detach(child Node) {
	child.base().parent = nil
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node Node) bool {
	var cur Invalidator = node
	for cur != nil {
		n, ok := cur.(Node)
		if !ok {
			return false
		}
		if n == candidate {
			return true
		}
		cur = n.Parent()
	}
	return false
}

// Detach removes n from whatever holds it. Reports whether it had an owner.
func Detach(n Node) bool {
	p := n.Parent()
	if p == nil {
		return false
	}
	if r, ok := p.(childRemover); ok {
		return r.Remove(n)
	}
	return false
}

// Walk visits n and its descendants depth-first in paint order. Returning
// false from fn stops the walk.
func Walk(n Node, fn func(Node) bool) bool {
	if !fn(n) {
		return false
	}
	if c, ok := n.(Container); ok {
		for _, child := range c.Children() {
			if !Walk(child, fn) {
				return false
			}
		}
	}
	return true
}

// findIn returns the first node named name among nodes and their descendants.
func findIn(nodes []Node, name string) Node {
	var found Node
	for _, n := range nodes {
		Walk(n, func(m Node) bool {
			if m.Name() == name {
				found = m
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func describe(n Node) string {
	if n.Name() != "" {
		return fmt.Sprintf("%s %q", n.Kind(), n.Name())
	}
	return fmt.Sprintf("%s %s", n.Kind(), n.ID())
}
