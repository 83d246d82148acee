// Package xmltree models a parsed XML document as a schemaless tree of
// three node kinds (Map, Seq, Scalar), the shape the rest of the
// Transformer operates over. It mirrors what a library like Python's
// xmltodict would hand back: attributes appear as "@name" map entries,
// repeated sibling elements collapse into a Seq, and everything else
// is either a nested Map or a scalar leaf.
package xmltree

// Node is the tagged union the Tree Walker traverses. Implemented by
// *Map, *Seq, and *Scalar.
type Node interface {
	isNode()
}

// Map is an insertion-ordered mapping from child name to child node.
type Map struct {
	entries []mapEntry
	index   map[string]int
}

type mapEntry struct {
	key  string
	node Node
}

// NewMap returns an empty, insertion-ordered Map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

func (*Map) isNode() {}

// Keys returns the child names in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return keys
}

// Get returns the child node for name, if present.
func (m *Map) Get(name string) (Node, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return m.entries[i].node, true
}

// Set inserts or replaces the child node for name, preserving the
// position of the first insertion.
func (m *Map) Set(name string, n Node) {
	if i, ok := m.index[name]; ok {
		m.entries[i].node = n
		return
	}
	m.index[name] = len(m.entries)
	m.entries = append(m.entries, mapEntry{key: name, node: n})
}

// Append adds child under name, collapsing into a Seq when name repeats
// This is how the walker later sees repeated siblings as one table.
func (m *Map) Append(name string, child Node) {
	if i, ok := m.index[name]; ok {
		existing := m.entries[i].node
		if seq, ok := existing.(*Seq); ok {
			seq.Items = append(seq.Items, child)
			return
		}
		m.entries[i].node = &Seq{Items: []Node{existing, child}}
		return
	}
	m.index[name] = len(m.entries)
	m.entries = append(m.entries, mapEntry{key: name, node: child})
}

// Seq is a sequence of nodes sharing the enclosing key's name.
type Seq struct {
	Items []Node
}

func (*Seq) isNode() {}

// Scalar is a leaf value. Present is false for an element with no
// (non-whitespace) text, such as <a></a>, which is treated as a missing
// value; attributes are always Present, even when their value is empty.
type Scalar struct {
	Value   string
	Present bool
}

func (*Scalar) isNode() {}
