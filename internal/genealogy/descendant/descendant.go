// Package descendant walks a bounded descendant tree from a starting individual.
package descendant

import (
	"gimm/internal/genealogy/models"
	"gimm/internal/genealogy/pedigree"
	dErrors "gimm/pkg/domain-errors"
)

// Node is a person in the descendant chart with the unions they parented.
type Node struct {
	Individual *models.Individual
	Generation int
	Unions     []Union
}

// Union groups the children a person had with one spouse.
type Union struct {
	Family *models.Family
	// Spouse is nil when the other partner is unknown.
	Spouse   *models.Individual
	Children []*Node
}

// Truncated reports whether the person has unions that the depth bound left out.
func (n *Node) Truncated() bool {
	return len(n.Unions) == 0 && len(n.Individual.SpouseFamilies) > 0
}

// Count returns the number of people in the chart, spouses excluded.
func (n *Node) Count() int {
	total := 1
	for _, u := range n.Unions {
		for _, c := range u.Children {
			total += c.Count()
		}
	}
	return total
}

// Generations returns the number of generations in the chart.
func (n *Node) Generations() int {
	deepest := 0
	for _, u := range n.Unions {
		for _, c := range u.Children {
			deepest = max(deepest, c.Generations())
		}
	}
	return 1 + deepest
}

// Engine builds descendant charts over an immutable tree.
type Engine struct {
	tree     *models.Tree
	maxNodes int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxNodes sets the most people one chart may hold, spouses excluded.
func WithMaxNodes(n int) Option {
	return func(e *Engine) {
		e.maxNodes = n
	}
}

// New creates an Engine for tree.
func New(tree *models.Tree, opts ...Option) *Engine {
	e := &Engine{tree: tree, maxNodes: pedigree.DefaultMaxNodes}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Build returns the descendant chart of id. The bound has the same meaning as
// for pedigree charts: -1 is the root alone, and each unit of depth adds one
// generation of children together with the unions that produced them. As with
// pedigree charts, expansion is breadth first and stops at the node budget.
func (e *Engine) Build(id models.IndividualID, depth int) (*Node, error) {
	root, ok := e.tree.Individual(id)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "individual not found")
	}
	return e.expand(root, max(depth, pedigree.MinDepth)), nil
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
		ind := next.node.Individual
		for _, key := range ind.SpouseFamilies {
			fam, ok := e.tree.Family(key)
			if !ok {
				continue
			}
			union := Union{Family: fam}
			if spouse := key.Spouse(ind.ID); spouse.Known() {
				union.Spouse, _ = e.tree.Individual(spouse)
			}
			for _, c := range fam.Children {
				child, ok := e.tree.Individual(c)
				if !ok {
					continue
				}
				node := &Node{Individual: child, Generation: next.node.Generation + 1}
				union.Children = append(union.Children, node)
				queue = append(queue, pending{node: node, depth: next.depth - 1})
				people++
			}
			next.node.Unions = append(next.node.Unions, union)
		}
	}
	return top
}
