// Package schema builds the Schema Model, the tables-and-types
// representation the DDL and Insertion Emitters consume.
package schema

import (
	"fmt"

	"github.com/dominikbraun/graph"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/typeinfer"
)

// IDColumn is the synthetic primary key column name forced onto tables
// with no scalar children.
const IDColumn = "id"

// Table is one node of the Schema Model's arena. Parent and Children
// are table names (already sanitized), not pointers or indices, which
// keeps the Model trivially serializable; the arena itself (Model.byName)
// is the lookup index.
type Table struct {
	Name         string
	LocalColumns []string // sanitized, insertion order, deduplicated
	PrimaryKey   []string // sanitized, sorted (invariant 7)
	Parent       string   // "" for the top-level table
	Children     []string // sanitized, insertion order

	parentSet bool
	colSeen   map[string]bool
	childSeen map[string]bool
}

func newTable(name string) *Table {
	return &Table{
		Name:      name,
		colSeen:   make(map[string]bool),
		childSeen: make(map[string]bool),
	}
}

func (t *Table) addColumn(col string) {
	if t.colSeen[col] {
		return
	}
	t.colSeen[col] = true
	t.LocalColumns = append(t.LocalColumns, col)
}

func (t *Table) addChild(name string) {
	if t.childSeen[name] {
		return
	}
	t.childSeen[name] = true
	t.Children = append(t.Children, name)
}

// Model is the complete inferred schema for one document: every table,
// the global sticky column-type map, and a directed graph over the
// table arena (parent -> child) used for ordering queries.
type Model struct {
	Tables []*Table
	Types  map[string]typeinfer.Kind

	byName map[string]int
	g      graph.Graph[string, string]
}

func newModel() *Model {
	return &Model{
		Types:  make(map[string]typeinfer.Kind),
		byName: make(map[string]int),
		g:      graph.New(func(s string) string { return s }, graph.Directed(), graph.PreventCycles()),
	}
}

func (m *Model) ensureTable(name string) *Table {
	if i, ok := m.byName[name]; ok {
		return m.Tables[i]
	}
	t := newTable(name)
	m.byName[name] = len(m.Tables)
	m.Tables = append(m.Tables, t)
	_ = m.g.AddVertex(name)
	return t
}

// Table returns the table by sanitized name, if any.
func (m *Model) Table(name string) (*Table, bool) {
	i, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return m.Tables[i], true
}

// TopologicalOrder returns table names ordered so that every table
// appears after its parent, the ordering the emitted insertion script
// relies on.
func (m *Model) TopologicalOrder() ([]string, error) {
	order, err := graph.TopologicalSort(m.g)
	if err != nil {
		return nil, fmt.Errorf("schema: table graph has a cycle: %w", err)
	}
	return order, nil
}

// AmbiguousParentError reports that a table name was observed under two
// different parents within one document. Treated as a first-class
// error rather than resolved by a silent tie-break rule.
type AmbiguousParentError struct {
	Table      string
	FirstParent string
	NewParent   string
}

func (e *AmbiguousParentError) Error() string {
	return fmt.Sprintf("schema: table %q observed under parent %q and parent %q",
		e.Table, e.FirstParent, e.NewParent)
}
