package driver

import (
	"hsfront/internal/diag"
	"hsfront/internal/project"
	"hsfront/internal/project/dag"
)

// ImportGraph links the modules of a ParseDir run.
type ImportGraph struct {
	Index dag.ModuleIndex
	Graph dag.Graph
	Slots []dag.ModuleSlot
	Topo  *dag.Topo
}

// Imports builds the import graph of r. Duplicate modules, self imports and
// cycles are reported into the bags of the files involved, so call it
// before rendering r.Bag().
func Imports(r *DirResult) *ImportGraph {
	var nodes []dag.ModuleNode
	var metas []project.ModuleMeta
	for i := range r.Results {
		res := &r.Results[i]
		if res.Summary == nil {
			continue
		}
		meta := res.Summary.Meta(res.FileID)
		metas = append(metas, meta)
		nodes = append(nodes, dag.ModuleNode{Meta: meta, Reporter: diag.BagReporter{Bag: res.Bag}})
	}
	idx := dag.BuildIndex(metas)
	g, slots := dag.BuildGraph(idx, nodes)
	topo := dag.ToposortKahn(g)
	dag.ReportCycles(idx, slots, topo)
	return &ImportGraph{Index: idx, Graph: g, Slots: slots, Topo: topo}
}

// Order returns module names with every module after the local modules it
// imports. Modules in cycles are left out.
func (ig *ImportGraph) Order() []string {
	return ig.Index.Names(ig.Topo.Order)
}

// Deps returns the local imports of module name.
func (ig *ImportGraph) Deps(name string) []string {
	id, ok := ig.Index.NameToID[name]
	if !ok {
		return nil
	}
	return ig.Index.Names(ig.Graph.Deps[id])
}

// External returns the imports of name that no parsed file defines.
func (ig *ImportGraph) External(name string) []string {
	id, ok := ig.Index.NameToID[name]
	if !ok {
		return nil
	}
	return ig.Slots[id].External
}
