package tree

import (
	"iter"

	"github.com/golang/geo/r3"
	"github.com/samber/lo"

	"github.com/willbeason/lichtenberg/pkg/geometry"
)

// BreadthFirst yields every node layer by layer from the root, each layer in
// child creation order.
func (t *Tree) BreadthFirst() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		queue := []NodeID{0}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]

			if !yield(t.node(id)) {
				return
			}
			queue = append(queue, t.nodes[id].children...)
		}
	}
}

// LayerTraverse calls visit on every node in BreadthFirst order.
func (t *Tree) LayerTraverse(visit func(Node)) {
	for n := range t.BreadthFirst() {
		visit(n)
	}
}

type PathEventKind int

const (
	// PathStarted opens a new path at the event's node.
	PathStarted PathEventKind = iota
	// PathStep continues the open path through the event's node.
	PathStep
	// PathEnded closes the open path at the event's node.
	PathEnded
)

func (k PathEventKind) String() string {
	switch k {
	case PathStarted:
		return "Start"
	case PathStep:
		return "Step"
	case PathEnded:
		return "Stop"
	}
	return "Unknown"
}

type PathEvent struct {
	Kind PathEventKind
	Node Node
}

// PathEvents walks the tree depth-first and yields the events that split it
// into paths.
//
// The first child at every branch continues its parent's path. Every later
// child starts a new path at the branch node itself. Together the paths
// cover each edge exactly once.
//
// A root without children yields PathStarted and PathEnded at the root.
func (t *Tree) PathEvents() iter.Seq[PathEvent] {
	return func(yield func(PathEvent) bool) {
		emit := func(kind PathEventKind, id NodeID) bool {
			return yield(PathEvent{Kind: kind, Node: t.node(id)})
		}

		var search func(id NodeID, started bool) bool
		search = func(id NodeID, started bool) bool {
			n := &t.nodes[id]

			if !started && n.parent != NoParent {
				if !emit(PathStarted, n.parent) {
					return false
				}
				started = true
			}

			switch {
			case !started:
				// Only the root gets here.
				if !emit(PathStarted, id) {
					return false
				}
				started = true
				if len(n.children) == 0 && !emit(PathEnded, id) {
					return false
				}
			case len(n.children) > 0:
				if !emit(PathStep, id) {
					return false
				}
			default:
				if !emit(PathEnded, id) {
					return false
				}
			}

			for _, child := range n.children {
				if !search(child, started) {
					return false
				}
				started = false
			}
			return true
		}

		search(0, false)
	}
}

// DepthTraverse calls onStartPath, onPathStep and onEndPath for the events
// of PathEvents, in order.
func (t *Tree) DepthTraverse(onStartPath, onPathStep, onEndPath func(Node)) {
	for e := range t.PathEvents() {
		switch e.Kind {
		case PathStarted:
			onStartPath(e.Node)
		case PathStep:
			onPathStep(e.Node)
		case PathEnded:
			onEndPath(e.Node)
		}
	}
}

// A Path is a contiguous polyline through the tree.
type Path []r3.Vector

// Paths collects PathEvents into complete polylines.
func (t *Tree) Paths() []Path {
	var paths []Path
	var working Path

	for e := range t.PathEvents() {
		switch e.Kind {
		case PathStarted:
			working = Path{e.Node.Location()}
		case PathStep:
			working = append(working, e.Node.Location())
		case PathEnded:
			paths = append(paths, append(working, e.Node.Location()))
			working = nil
		}
	}

	return paths
}

// Length is the summed length of the path's segments.
func (p Path) Length() float64 {
	length := 0.0
	for i := 1; i < len(p); i++ {
		length += p[i].Sub(p[i-1]).Norm()
	}
	return length
}

// TipLocations returns the locations of the current branch tips.
func (t *Tree) TipLocations() []r3.Vector {
	return lo.Map(t.tips, func(id NodeID, _ int) r3.Vector {
		return t.nodes[id].location
	})
}

// AverageTipLocation is the centroid of the branch tips.
func (t *Tree) AverageTipLocation() r3.Vector {
	return geometry.Average(t.TipLocations()...)
}
