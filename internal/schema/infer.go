package schema

import (
	"sort"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/identifier"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/typeinfer"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/walk"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/xmltree"
)

// Infer builds the Schema Model for one parsed document. It
// runs two complete walks: the first assigns every scalar name its
// sticky SQL type; the second turns every Map/Seq node into a table,
// unions in whichever of its children are scalar (i.e. already typed),
// and links parent/child table relationships. Running the structure
// scan to completion regardless of visit order is what makes table
// column sets independent of where in the document a table first
// appears (Open Question ii).
//
// exclusions lists column names never eligible for the synthesized
// primary key (e.g. a free-text "value" column).
func Infer(rootName string, root xmltree.Node, exclusions []string) (*Model, error) {
	m := newModel()
	excluded := make(map[string]bool, len(exclusions))
	for _, e := range exclusions {
		sk, err := identifier.Sanitize(e)
		if err != nil {
			continue
		}
		excluded[sk] = true
	}

	ts := &typeScanner{types: m.Types}
	walk.Walk(rootName, root, ts)

	ss := &structScanner{model: m, excluded: excluded}
	walk.Walk(rootName, root, ss)
	if ss.err != nil {
		return nil, ss.err
	}

	for _, t := range m.Tables {
		recomputePrimaryKey(m, t, excluded)
	}
	return m, nil
}

// typeScanner is the first pass: one sticky type per sanitized scalar
// name, first-observed-wins unless the observed value is NULL.
type typeScanner struct {
	types map[string]typeinfer.Kind
}

func (t *typeScanner) OnMap(walk.Stack)    {}
func (t *typeScanner) OnSeq(walk.Stack)    {}
func (t *typeScanner) OnScalar(stack walk.Stack) {
	top := stack.Top()
	sk, err := identifier.Sanitize(top.Name)
	if err != nil {
		return
	}
	scalar := top.Node.(*xmltree.Scalar)
	kind := typeinfer.Infer(scalar.Value, scalar.Present)
	existing, ok := t.types[sk]
	if !ok || existing == typeinfer.Null {
		t.types[sk] = kind
	}
}

// structScanner is the second pass: every Map/Seq node becomes (or
// extends) a table, and table -> parent-table edges are recorded.
type structScanner struct {
	model    *Model
	excluded map[string]bool
	err      error
}

func (s *structScanner) OnMap(stack walk.Stack) { s.visitStructural(stack) }
func (s *structScanner) OnSeq(stack walk.Stack) { s.visitStructural(stack) }
func (s *structScanner) OnScalar(walk.Stack)    {}

func (s *structScanner) visitStructural(stack walk.Stack) {
	if s.err != nil {
		return
	}
	top := stack.Top()
	if top.Name == walk.RootName {
		return
	}
	name, err := identifier.Sanitize(top.Name)
	if err != nil {
		return
	}
	table := s.model.ensureTable(name)

	if m, ok := top.Node.(*xmltree.Map); ok {
		for _, k := range m.Keys() {
			sk, err := identifier.Sanitize(k)
			if err != nil {
				continue
			}
			if _, isScalarName := s.model.Types[sk]; isScalarName {
				table.addColumn(sk)
			}
		}
	}

	parentName, ok := s.findParent(stack)
	if !ok {
		return
	}
	parentTable := s.model.ensureTable(parentName)
	if table.parentSet && table.Parent != parentName {
		s.err = &AmbiguousParentError{Table: name, FirstParent: table.Parent, NewParent: parentName}
		return
	}
	if !table.parentSet {
		table.Parent = parentName
		table.parentSet = true
	}
	parentTable.addChild(name)
	if err := s.model.g.AddEdge(parentName, name); err != nil {
		// Already linked (repeated Seq item) or would-cycle; both are
		// harmless here since addChild already deduplicates.
		_ = err
	}
}

// findParent walks outward from the immediate enclosing frame,
// skipping a frame that repeats the current table's own name (a Seq
// frame wrapping the Map frame underneath it) and stopping at the
// synthetic root sentinel.
func (s *structScanner) findParent(stack walk.Stack) (string, bool) {
	name := stack.Top().Name
	for i := len(stack) - 2; i >= 0; i-- {
		frame := stack[i]
		if frame.Name == walk.RootName {
			return "", false
		}
		if frame.Name == name {
			continue
		}
		sk, err := identifier.Sanitize(frame.Name)
		if err != nil {
			return "", false
		}
		return sk, true
	}
	return "", false
}

func recomputePrimaryKey(m *Model, t *Table, excluded map[string]bool) {
	pk := make([]string, 0, len(t.LocalColumns))
	for _, c := range t.LocalColumns {
		if !excluded[c] {
			pk = append(pk, c)
		}
	}
	switch {
	case len(t.LocalColumns) == 0:
		// No scalar children at all: synthesize an id column as the
		// table's only column.
		t.addColumn(IDColumn)
		pk = []string{IDColumn}
	case len(pk) == 0:
		// Every local column is excluded from primary-key eligibility
		// (e.g. a table whose only column is "value"); keep those
		// columns as data and synthesize an id to key the table by.
		t.addColumn(IDColumn)
		pk = []string{IDColumn}
	}
	if len(pk) == 1 && pk[0] == IDColumn {
		if _, ok := m.Types[IDColumn]; !ok {
			m.Types[IDColumn] = typeinfer.Text
		}
	}
	sort.Strings(pk)
	t.PrimaryKey = pk
}
