package dag

import (
	"slices"
	"testing"

	"hsfront/internal/diag"
	"hsfront/internal/project"
	"hsfront/internal/source"
)

func imports(names ...string) []project.ImportMeta {
	out := make([]project.ImportMeta, len(names))
	for i, n := range names {
		out[i] = project.ImportMeta{Name: n}
	}
	return out
}

func TestBuildIndexSkipsExternal(t *testing.T) {
	metas := []project.ModuleMeta{
		{Name: "Main", Imports: imports("Data.Map", "Lib")},
		{Name: "Lib"},
		{Name: "Lib"},
	}
	idx := BuildIndex(metas)
	if want := []string{"Lib", "Main"}; !slices.Equal(idx.IDToName, want) {
		t.Fatalf("IDToName = %v, want %v", idx.IDToName, want)
	}
	if _, ok := idx.NameToID["Data.Map"]; ok {
		t.Error("external module indexed")
	}
}

func TestBuildGraph(t *testing.T) {
	metas := []project.ModuleMeta{
		{Name: "Main", Imports: imports("App", "Data.Map", "Lib", "Lib")},
		{Name: "App", Imports: imports("Lib", "Control.Monad")},
		{Name: "Lib"},
	}
	nodes := make([]ModuleNode, len(metas))
	for i, m := range metas {
		nodes[i] = ModuleNode{Meta: m}
	}
	idx := BuildIndex(metas)
	g, slots := BuildGraph(idx, nodes)

	mainID, appID, libID := idx.NameToID["Main"], idx.NameToID["App"], idx.NameToID["Lib"]
	if got := idx.Names(g.Deps[mainID]); !slices.Equal(got, []string{"App", "Lib"}) {
		t.Errorf("Main deps %v", got)
	}
	if got := idx.Names(g.Users[libID]); !slices.Equal(got, []string{"App", "Main"}) {
		t.Errorf("Lib users %v", got)
	}
	if got := slots[appID].External; !slices.Equal(got, []string{"Control.Monad"}) {
		t.Errorf("App external %v", got)
	}
}

func TestDuplicateAndSelfImport(t *testing.T) {
	first := source.Span{File: 0, Start: 7, End: 10}
	second := source.Span{File: 1, Start: 7, End: 10}
	bagA, bagB := diag.NewBag(0), diag.NewBag(0)
	nodes := []ModuleNode{
		{Meta: project.ModuleMeta{Name: "Lib", File: "a/Lib.hs", Span: first}, Reporter: diag.BagReporter{Bag: bagA}},
		{Meta: project.ModuleMeta{Name: "Lib", File: "b/Lib.hs", Span: second, Imports: imports("Lib")}, Reporter: diag.BagReporter{Bag: bagB}},
		{Meta: project.ModuleMeta{Name: "Loop", Imports: imports("Loop")}, Reporter: diag.BagReporter{Bag: bagA}},
	}
	idx := BuildIndex([]project.ModuleMeta{nodes[0].Meta, nodes[1].Meta, nodes[2].Meta})
	g, slots := BuildGraph(idx, nodes)

	if bagB.Len() != 1 || bagB.Items()[0].Code != diag.PrjDuplicateModule {
		t.Fatalf("duplicate diagnostics %v", bagB.Items())
	}
	if d := bagB.Items()[0]; len(d.Notes) != 1 || d.Notes[0].Span != first {
		t.Errorf("notes %v", d.Notes)
	}
	if slots[idx.NameToID["Lib"]].Meta.File != "a/Lib.hs" {
		t.Error("first definition lost")
	}
	if bagA.Len() != 1 || bagA.Items()[0].Code != diag.PrjSelfImport {
		t.Fatalf("self import diagnostics %v", bagA.Items())
	}
	if len(g.Deps[idx.NameToID["Loop"]]) != 0 {
		t.Error("self edge kept")
	}
}

func TestToposortBatches(t *testing.T) {
	metas := []project.ModuleMeta{
		{Name: "Main", Imports: imports("B", "C")},
		{Name: "B", Imports: imports("C")},
		{Name: "C"},
		{Name: "A"},
	}
	nodes := make([]ModuleNode, len(metas))
	for i, m := range metas {
		nodes[i] = ModuleNode{Meta: m}
	}
	idx := BuildIndex(metas)
	g, _ := BuildGraph(idx, nodes)
	topo := ToposortKahn(g)
	if topo.Cyclic {
		t.Fatal("unexpected cycle")
	}
	if got := idx.Names(topo.Order); !slices.Equal(got, []string{"A", "C", "B", "Main"}) {
		t.Errorf("order %v", got)
	}
	if len(topo.Batches) != 3 || len(topo.Batches[0]) != 2 {
		t.Errorf("batches %v", topo.Batches)
	}
}

func TestReportCycles(t *testing.T) {
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	nodes := []ModuleNode{
		{Meta: project.ModuleMeta{Name: "A", Imports: imports("B")}, Reporter: rep},
		{Meta: project.ModuleMeta{Name: "B", Imports: imports("A")}, Reporter: rep},
		{Meta: project.ModuleMeta{Name: "C"}, Reporter: rep},
	}
	idx := BuildIndex([]project.ModuleMeta{nodes[0].Meta, nodes[1].Meta, nodes[2].Meta})
	g, slots := BuildGraph(idx, nodes)
	topo := ToposortKahn(g)
	if !topo.Cyclic || !slices.Equal(idx.Names(topo.Cycles), []string{"A", "B"}) {
		t.Fatalf("topo %+v", topo)
	}
	ReportCycles(idx, slots, topo)
	if bag.Len() != 2 {
		t.Fatalf("want 2 diagnostics, got %d", bag.Len())
	}
	for _, d := range bag.Items() {
		if d.Code != diag.PrjImportCycle {
			t.Errorf("code %s", d.Code.ID())
		}
	}
}
