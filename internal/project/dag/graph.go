package dag

import (
	"fmt"
	"slices"
	"strings"

	"hsfront/internal/diag"
	"hsfront/internal/project"
)

// Graph holds import edges between local modules.
type Graph struct {
	Deps  [][]ModuleID // Deps[m]: local modules m imports
	Users [][]ModuleID // Users[m]: local modules importing m
}

type ModuleNode struct {
	Meta     project.ModuleMeta
	Reporter diag.Reporter
}

// ModuleSlot is the resolved state of one module id.
type ModuleSlot struct {
	Meta     project.ModuleMeta
	Reporter diag.Reporter
	External []string // imports with no local file, sorted
}

// BuildGraph resolves imports against idx. The first file defining a
// module wins; later ones get PrjDuplicateModule. Self imports are
// reported and dropped.
func BuildGraph(idx ModuleIndex, nodes []ModuleNode) (Graph, []ModuleSlot) {
	n := len(idx.IDToName)
	g := Graph{Deps: make([][]ModuleID, n), Users: make([][]ModuleID, n)}
	slots := make([]ModuleSlot, n)
	present := make([]bool, n)

	for _, node := range nodes {
		id, ok := idx.NameToID[node.Meta.Name]
		if !ok {
			continue
		}
		if present[id] {
			if node.Reporter != nil {
				diag.ReportError(node.Reporter, diag.PrjDuplicateModule, node.Meta.Span,
					fmt.Sprintf("module %q is also defined in %s", node.Meta.Name, slots[id].Meta.File)).
					WithNote(slots[id].Meta.Span, "first definition").
					Emit()
			}
			continue
		}
		present[id] = true
		slots[id] = ModuleSlot{Meta: node.Meta, Reporter: node.Reporter}
	}

	for from := range slots {
		slot := &slots[from]
		for _, imp := range slot.Meta.Imports {
			to, ok := idx.NameToID[imp.Name]
			if !ok {
				if !slices.Contains(slot.External, imp.Name) {
					slot.External = append(slot.External, imp.Name)
				}
				continue
			}
			if int(to) == from {
				if slot.Reporter != nil {
					diag.ReportError(slot.Reporter, diag.PrjSelfImport, imp.Span,
						fmt.Sprintf("module %q imports itself", imp.Name)).Emit()
				}
				continue
			}
			if slices.Contains(g.Deps[from], to) {
				continue
			}
			g.Deps[from] = append(g.Deps[from], to)
			g.Users[to] = append(g.Users[to], ModuleID(from))
		}
		slices.Sort(g.Deps[from])
		slices.Sort(slot.External)
	}
	for i := range g.Users {
		slices.Sort(g.Users[i])
	}
	return g, slots
}

// ReportCycles attaches PrjImportCycle to every module left in a cycle.
func ReportCycles(idx ModuleIndex, slots []ModuleSlot, topo *Topo) {
	if !topo.Cyclic {
		return
	}
	summary := strings.Join(idx.Names(topo.Cycles), ", ")
	for _, id := range topo.Cycles {
		slot := slots[id]
		if slot.Reporter == nil {
			continue
		}
		diag.ReportError(slot.Reporter, diag.PrjImportCycle, slot.Meta.Span,
			fmt.Sprintf("module %q is in or depends on an import cycle: %s", slot.Meta.Name, summary)).Emit()
	}
}
