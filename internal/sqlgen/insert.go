package sqlgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/identifier"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/schema"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/typeinfer"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/walk"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/xmltree"
)

// EmitInserts walks root a second time and renders one INSERT OR
// IGNORE per Map node, in pre-order, so a parent row's statement
// always precedes its children's.
func EmitInserts(rootName string, root xmltree.Node, m *schema.Model) (string, error) {
	ins := &inserter{model: m}
	walk.Walk(rootName, root, ins)
	if ins.err != nil {
		return "", ins.err
	}
	return ins.out.String(), nil
}

type inserter struct {
	model *schema.Model
	out   strings.Builder
	err   error
}

func (ins *inserter) OnSeq(walk.Stack)    {}
func (ins *inserter) OnScalar(walk.Stack) {}

func (ins *inserter) OnMap(stack walk.Stack) {
	if ins.err != nil {
		return
	}
	top := stack.Top()
	if top.Name == walk.RootName {
		return
	}
	name, err := identifier.Sanitize(top.Name)
	if err != nil {
		ins.err = err
		return
	}
	t, ok := ins.model.Table(name)
	if !ok {
		return
	}
	node := top.Node.(*xmltree.Map)

	if len(t.PrimaryKey) == 1 && t.PrimaryKey[0] == schema.IDColumn {
		if _, found := getScalarBySanitized(node, schema.IDColumn); !found {
			node.Set(schema.IDColumn, &xmltree.Scalar{Value: uuid.NewString(), Present: true})
		}
	}

	cols := append([]string(nil), t.LocalColumns...)
	sort.Strings(cols)

	var colNames, colVals []string
	for _, c := range cols {
		sc, found := getScalarBySanitized(node, c)
		if !found || !sc.Present {
			continue
		}
		colNames = append(colNames, c)
		colVals = append(colVals, formatValue(ins.model.Types[c], sc.Value))
	}

	if t.Parent != "" {
		parent, ok := ins.model.Table(t.Parent)
		if ok {
			parentNode, found := findAncestorMap(stack, t.Parent)
			if found {
				for _, ppk := range parent.PrimaryKey {
					sc, ok := getScalarBySanitized(parentNode, ppk)
					if !ok || !sc.Present {
						continue
					}
					colNames = append(colNames, parent.Name+"_"+ppk)
					colVals = append(colVals, formatValue(ins.model.Types[ppk], sc.Value))
				}
			}
		}
	}

	fmt.Fprintf(&ins.out, "INSERT OR IGNORE INTO %s (%s)\nVALUES (%s);\n",
		t.Name, strings.Join(colNames, ", "), strings.Join(colVals, ", "))
}

// findAncestorMap scans stack from the frame beneath the top downward,
// returning the nearest enclosing Map frame whose sanitized name is
// parentName.
func findAncestorMap(stack walk.Stack, parentName string) (*xmltree.Map, bool) {
	for i := len(stack) - 2; i >= 0; i-- {
		frame := stack[i]
		if frame.Name == walk.RootName {
			return nil, false
		}
		sk, err := identifier.Sanitize(frame.Name)
		if err != nil || sk != parentName {
			continue
		}
		if m, ok := frame.Node.(*xmltree.Map); ok {
			return m, true
		}
	}
	return nil, false
}

func getScalarBySanitized(m *xmltree.Map, target string) (*xmltree.Scalar, bool) {
	for _, k := range m.Keys() {
		sk, err := identifier.Sanitize(k)
		if err != nil || sk != target {
			continue
		}
		child, _ := m.Get(k)
		sc, ok := child.(*xmltree.Scalar)
		if !ok {
			return nil, false
		}
		return sc, true
	}
	return nil, false
}

// formatValue renders a scalar value per kind: TEXT is double-quoted
// with internal quotes doubled and NUL bytes replaced; INTEGER and
// REAL pass through their already-valid decimal textual form. A value
// in an INTEGER or REAL column that does not itself parse as a number
// (a later occurrence of a sticky-typed name) is quoted like TEXT.
func formatValue(kind typeinfer.Kind, raw string) string {
	switch kind {
	case typeinfer.Integer, typeinfer.Real:
		if k := typeinfer.Infer(raw, true); k == typeinfer.Integer || k == typeinfer.Real {
			return raw
		}
	}
	s := strings.ReplaceAll(raw, "\x00", "�")
	s = strings.ReplaceAll(s, `"`, `""`)
	return `"` + s + `"`
}
