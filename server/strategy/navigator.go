package strategy

import "fmt"

// Path is a breadcrumb stack from a tree root. It is owned by a single
// consumer; the nodes it references are shared and read-only.
type Path struct {
	root  *Node
	steps []Step
}

func NewPath(root *Node) *Path {
	return &Path{root: root}
}

// Reset swaps in a new root and empties the stack in one step, so no stale
// child of the old tree survives the swap.
func (p *Path) Reset(root *Node) {
	p.root = root
	p.steps = p.steps[:0]
}

// Current returns the node at the top of the stack, or the root.
func (p *Path) Current() *Node {
	if len(p.steps) == 0 {
		return p.root
	}
	return p.steps[len(p.steps)-1].Node
}

func (p *Path) Root() *Node { return p.root }

// Steps returns the stack contents from root downward.
func (p *Path) Steps() []Step { return p.steps }

// Push descends one labeled edge from the current node.
func (p *Path) Push(label string) error {
	child := p.Current().Child(label)
	if child == nil {
		return fmt.Errorf("no child %q at depth %d", label, len(p.steps))
	}
	p.steps = append(p.steps, Step{Label: label, Node: child})
	return nil
}

// TruncateTo jumps back to an ancestor, keeping the first n steps.
// TruncateTo(0) returns to the root.
func (p *Path) TruncateTo(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(p.steps) {
		p.steps = p.steps[:n]
	}
}

// Labels returns just the edge labels, root first.
func (p *Path) Labels() []string {
	out := make([]string, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.Label
	}
	return out
}
