package sqlgen

import (
	"strings"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/schema"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/xmltree"
)

// Generate renders the complete script for one document: every
// CREATE TABLE statement, then every INSERT OR IGNORE statement in
// tree pre-order. DDL always precedes INSERT within a file.
func Generate(rootName string, root xmltree.Node, m *schema.Model) (string, error) {
	ddl, err := EmitDDL(m)
	if err != nil {
		return "", err
	}
	inserts, err := EmitInserts(rootName, root, m)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(ddl)
	b.WriteString(inserts)
	return b.String(), nil
}
