// Package sqlgen renders a Schema Model and a parsed document into the
// SQL script the Ingest Sink executes.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/schema"
)

// EmitDDL renders one CREATE TABLE statement per table in m, in the
// model's topological order (parent before child) so a human reading
// the script sees dependencies declared before their dependents.
func EmitDDL(m *schema.Model) (string, error) {
	order, err := m.TopologicalOrder()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, name := range order {
		t, ok := m.Table(name)
		if !ok {
			continue
		}
		writeCreateTable(&b, m, t)
	}
	return b.String(), nil
}

func writeCreateTable(b *strings.Builder, m *schema.Model, t *schema.Table) {
	var parent *schema.Table
	if t.Parent != "" {
		if p, ok := m.Table(t.Parent); ok {
			parent = p
		}
	}

	fmt.Fprintf(b, "CREATE TABLE IF NOT EXISTS %s (\n", t.Name)

	var cols []string
	for _, c := range t.LocalColumns {
		cols = append(cols, fmt.Sprintf("    %s %s", c, columnType(m, c)))
	}
	var fkCols []string
	if parent != nil {
		for _, ppk := range parent.PrimaryKey {
			fkCol := parent.Name + "_" + ppk
			fkCols = append(fkCols, fkCol)
			cols = append(cols, fmt.Sprintf("    %s %s", fkCol, columnType(m, ppk)))
		}
	}
	if parent != nil {
		cols = append(cols, fmt.Sprintf("    FOREIGN KEY (%s)\n        REFERENCES %s(%s)",
			strings.Join(fkCols, ", "), parent.Name, strings.Join(parent.PrimaryKey, ", ")))
	}
	cols = append(cols, fmt.Sprintf("    PRIMARY KEY (%s)", strings.Join(t.PrimaryKey, ", ")))

	b.WriteString(strings.Join(cols, ",\n"))
	b.WriteString("\n);\n")
}

func columnType(m *schema.Model, col string) string {
	k, ok := m.Types[col]
	if !ok {
		return "TEXT"
	}
	return k.String()
}
