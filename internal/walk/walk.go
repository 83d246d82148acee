// Package walk implements the depth-first pre-order traversal shared by
// the Schema Inferrer and the Insertion Emitter.
package walk

import "github.com/energy-analytics-project/energy-dashboard-lib/internal/xmltree"

// RootName names the synthetic stack frame beneath the document's real
// root element.
const RootName = "root"

// Frame is one entry on the walker's explicit stack: a (name, node)
// pair. The stack is owned by the walker, not closure-captured, so the
// walker and its visitor never share lifetimes.
type Frame struct {
	Name string
	Node xmltree.Node
}

// Stack is a read-only view of the walker's frames, bottom (RootName)
// first, top (the node currently being visited) last.
type Stack []Frame

// Top returns the current frame.
func (s Stack) Top() Frame { return s[len(s)-1] }

// Find returns the nearest frame (scanning from the top down) whose
// name equals name, and whether one was found.
func (s Stack) Find(name string) (Frame, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Name == name {
			return s[i], true
		}
	}
	return Frame{}, false
}

// Visitor receives one callback per node kind encountered during the
// walk. Each method is given the full stack, with the node itself as
// the top frame.
type Visitor interface {
	OnMap(stack Stack)
	OnSeq(stack Stack)
	OnScalar(stack Stack)
}

// Walk drives a depth-first pre-order traversal of root (named
// rootName) and invokes v's callbacks at every node. Children of a Map
// are visited in that Map's insertion order; every element of a Seq is
// visited with the Seq's own enclosing name (not its index), which is
// how repeated siblings collapse into a single table.
func Walk(rootName string, root xmltree.Node, v Visitor) {
	stack := Stack{{Name: RootName, Node: nil}}
	walk(stack, rootName, root, v)
}

func walk(parent Stack, name string, node xmltree.Node, v Visitor) {
	// Copied rather than append()-ed: siblings must not alias the same
	// backing array, or a Visitor that retains a Stack from one
	// callback could observe a later sibling's frame overwriting it.
	stack := make(Stack, len(parent)+1)
	copy(stack, parent)
	stack[len(parent)] = Frame{Name: name, Node: node}

	switch n := node.(type) {
	case *xmltree.Map:
		v.OnMap(stack)
		for _, k := range n.Keys() {
			child, _ := n.Get(k)
			walk(stack, k, child, v)
		}
	case *xmltree.Seq:
		v.OnSeq(stack)
		for _, item := range n.Items {
			walk(stack, name, item, v)
		}
	case *xmltree.Scalar:
		v.OnScalar(stack)
	}
}
