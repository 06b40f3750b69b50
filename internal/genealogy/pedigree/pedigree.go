// Package pedigree walks a bounded ancestor tree from a starting individual.
package pedigree

import (
	"gimm/internal/genealogy/models"
	dErrors "gimm/pkg/domain-errors"
)

const (
	// DefaultLevels is the display budget used when the caller gives none.
	DefaultLevels = 200
	// MinDepth is the smallest usable bound: the root alone.
	MinDepth = -1
	// DefaultMaxNodes caps the people placed in one chart.
	DefaultMaxNodes = 10_000
)

// DepthFromLevels converts a "levels to display" budget into a traversal
// bound. The two generations closest to the root are always shown, so the
// bound is levels-2, clamped below at MinDepth.
func DepthFromLevels(levels int) int {
	return max(levels-2, MinDepth)
}

// Node is one slot of the ancestor chart. An empty slot (Individual == nil)
// stands for a parent the source does not name.
type Node struct {
	Individual *models.Individual
	Generation int
	Father     *Node
	Mother     *Node
}

// Empty reports whether the slot is an unknown ancestor.
func (n *Node) Empty() bool {
	return n.Individual == nil
}

// Expanded reports whether the node's parent slots were filled in.
func (n *Node) Expanded() bool {
	return n.Father != nil || n.Mother != nil
}

// Truncated reports whether the person has recorded parents that the depth
// bound left out.
func (n *Node) Truncated() bool {
	if n.Empty() || n.Expanded() {
		return false
	}
	_, ok := n.Individual.PreferredParents()
	return ok
}

// Count returns the number of non-empty nodes in the chart.
func (n *Node) Count() int {
	if n == nil || n.Empty() {
		return 0
	}
	return 1 + n.Father.Count() + n.Mother.Count()
}

// Generations returns the number of generations spanned by non-empty nodes.
func (n *Node) Generations() int {
	if n == nil || n.Empty() {
		return 0
	}
	return 1 + max(n.Father.Generations(), n.Mother.Generations())
}

// Engine builds ancestor charts over an immutable tree.
type Engine struct {
	tree     *models.Tree
	maxNodes int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxNodes sets the most people one chart may hold.
func WithMaxNodes(n int) Option {
	return func(e *Engine) {
		e.maxNodes = n
	}
}

// New creates an Engine for tree.
func New(tree *models.Tree, opts ...Option) *Engine {
	e := &Engine{tree: tree, maxNodes: DefaultMaxNodes}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Build returns the ancestor chart of id bounded by depth (see DepthFromLevels).
// Every individual in the result is at most depth+1 generations above the root.
// There is no cycle detection. Charts are expanded generation by generation
// and stop growing once the node budget is spent; nodes left unexpanded
// report Truncated.
func (e *Engine) Build(id models.IndividualID, depth int) (*Node, error) {
	root, ok := e.tree.Individual(id)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "individual not found")
	}
	return e.expand(root, max(depth, MinDepth)), nil
}

type pending struct {
	node  *Node
	depth int
}

func (e *Engine) expand(root *models.Individual, depth int) *Node {
	top := &Node{Individual: root}
	queue := []pending{{node: top, depth: depth}}
	people := 1
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next.depth < 0 || people >= e.maxNodes {
			continue
		}
		pair, ok := next.node.Individual.PreferredParents()
		if !ok {
			continue
		}
		generation := next.node.Generation + 1
		next.node.Father = e.slot(pair.Father, generation)
		next.node.Mother = e.slot(pair.Mother, generation)
		for _, parent := range []*Node{next.node.Father, next.node.Mother} {
			if !parent.Empty() {
				people++
				queue = append(queue, pending{node: parent, depth: next.depth - 1})
			}
		}
	}
	return top
}

func (e *Engine) slot(id models.IndividualID, generation int) *Node {
	if !id.Known() {
		return &Node{Generation: generation}
	}
	ind, ok := e.tree.Individual(id)
	if !ok {
		return &Node{Generation: generation}
	}
	return &Node{Individual: ind, Generation: generation}
}
