package tree

import (
	"github.com/golang/geo/r3"
)

// NodeID indexes a node within its Tree.
type NodeID int

// NoParent is the parent of a Tree's root.
const NoParent NodeID = -1

// node is the stored record behind a Node handle. Ownership runs strictly
// from parent to children; parent is only an index back into the arena.
type node struct {
	location r3.Vector
	parent   NodeID
	children []NodeID
}

// A Node refers to one node of a Tree.
//
// Nodes are handles: copying a Node does not copy the underlying node, and
// the zero Node refers to nothing.
type Node struct {
	tree *Tree
	id   NodeID
}

func (n Node) ID() NodeID {
	return n.id
}

func (n Node) Tree() *Tree {
	return n.tree
}

func (n Node) record() *node {
	return &n.tree.nodes[n.id]
}

func (n Node) Location() r3.Vector {
	return n.record().location
}

// Parent returns the node's parent, or false for the root.
func (n Node) Parent() (Node, bool) {
	p := n.record().parent
	if p == NoParent {
		return Node{}, false
	}
	return n.tree.node(p), true
}

// Children returns the node's children in creation order.
func (n Node) Children() []Node {
	ids := n.record().children
	result := make([]Node, len(ids))
	for i, id := range ids {
		result[i] = n.tree.node(id)
	}
	return result
}

func (n Node) NumChildren() int {
	return len(n.record().children)
}

// IsLeaf is whether the node has no children.
func (n Node) IsLeaf() bool {
	return n.NumChildren() == 0
}

// AddChild appends a new child at location and returns it.
func (n Node) AddChild(location r3.Vector) Node {
	return n.tree.node(n.tree.addChild(n.id, location))
}

// AddChildren appends one child per location, in order.
func (n Node) AddChildren(locations ...r3.Vector) []Node {
	result := make([]Node, len(locations))
	for i, location := range locations {
		result[i] = n.AddChild(location)
	}
	return result
}

// BranchOutRandChild appends a child displaced upwards by growth and
// horizontally by a random integer in [-spreadRange, spreadRange) along
// each of x and z.
func (n Node) BranchOutRandChild(spreadRange float64, growth GrowthRate) Node {
	return n.tree.node(n.tree.branchOut(n.id, spreadRange, growth))
}

// A Tree is a Lichtenberg figure grown upwards from its root one layer at a
// time.
type Tree struct {
	config Config
	src    Source

	nodes []node

	// tips are the current growth frontier.
	tips []NodeID

	layers int
}

// New returns a Tree holding only a root at rootLocation. Options are
// applied over DefaultConfig.
func New(rootLocation r3.Vector, opts ...Option) (*Tree, error) {
	t := &Tree{
		config: DefaultConfig(),
	}

	for _, opt := range opts {
		opt(t)
	}

	if err := t.config.Validate(); err != nil {
		return nil, err
	}

	if t.src == nil {
		t.src = defaultSource()
	}

	t.nodes = append(t.nodes, node{location: rootLocation, parent: NoParent})
	t.tips = []NodeID{0}

	return t, nil
}

func (t *Tree) node(id NodeID) Node {
	return Node{tree: t, id: id}
}

func (t *Tree) Root() Node {
	return t.node(0)
}

func (t *Tree) Config() Config {
	return t.config
}

// Len is the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Layers is the number of times GrowLayer has run.
func (t *Tree) Layers() int {
	return t.layers
}

// BranchTips returns the current growth frontier.
func (t *Tree) BranchTips() []Node {
	result := make([]Node, len(t.tips))
	for i, id := range t.tips {
		result[i] = t.node(id)
	}
	return result
}

func (t *Tree) addChild(parent NodeID, location r3.Vector) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{location: location, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

func (t *Tree) branchOut(parent NodeID, spreadRange float64, growth GrowthRate) NodeID {
	// Draw order: length, then x, then z.
	length := growth.Resolve(t.src)
	dx := RandSymmetricInt(t.src, spreadRange)
	dz := RandSymmetricInt(t.src, spreadRange)

	from := t.nodes[parent].location
	return t.addChild(parent, r3.Vector{
		X: from.X + float64(dx),
		Y: from.Y + length,
		Z: from.Z + float64(dz),
	})
}

// GrowLayer grows every tip by at least one child and replaces the tips
// with the new children.
//
// After its first child a tip keeps branching while a fresh draw is below
// BranchFactor and it has made fewer than MaxChildBranches children.
func (t *Tree) GrowLayer() {
	cfg := t.config
	newTips := make([]NodeID, 0, len(t.tips))

	for _, tip := range t.tips {
		created := 0
		for {
			newTips = append(newTips, t.branchOut(tip, cfg.SpreadRange, cfg.GrowthRate))
			created++

			// One continuation draw per child, taken before the cap check.
			if t.src.Float64() >= cfg.BranchFactor || created >= cfg.MaxChildBranches {
				break
			}
		}
	}

	t.tips = newTips
	t.layers++
}
