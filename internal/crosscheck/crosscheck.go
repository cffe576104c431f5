package crosscheck

import (
	"fmt"
	"sort"
	"strings"

	"hsfront/internal/ast"
	"hsfront/internal/cst"
)

// Category groups top-level items the two parsers can both name.
type Category string

const (
	CatImport    Category = "import"
	CatSignature Category = "signature"
	CatBinding   Category = "binding"
	CatData      Category = "data"
	CatNewtype   Category = "newtype"
	CatType      Category = "type"
	CatClass     Category = "class"
	CatInstance  Category = "instance"
	CatForeign   Category = "foreign"
	CatFixity    Category = "fixity"
	CatDeriving  Category = "deriving"
)

type Counts map[Category]int

func (c Counts) String() string {
	keys := make([]string, 0, len(c))
	for k, n := range c {
		if n > 0 {
			keys = append(keys, string(k))
		}
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, c[Category(k)])
	}
	return strings.Join(parts, " ")
}

type Mismatch struct {
	Category Category
	Ours     int
	Oracle   int
}

// Report is the comparison for one file. OracleErrors is set when
// tree-sitter itself needed error recovery; mismatches are then expected.
type Report struct {
	Path         string
	Ours         Counts
	Oracle       Counts
	OracleErrors bool
	Mismatches   []Mismatch
}

func (r *Report) OK() bool { return len(r.Mismatches) == 0 }

var ourCategories = map[cst.Kind]Category{
	cst.TypeSignature:       CatSignature,
	cst.ValueDeclaration:    CatBinding,
	cst.DataDeclaration:     CatData,
	cst.NewtypeDeclaration:  CatNewtype,
	cst.ClassDeclaration:    CatClass,
	cst.InstanceDeclaration: CatInstance,
	cst.ForeignDeclaration:  CatForeign,
	cst.FixityDeclaration:   CatFixity,
	cst.DerivingDeclaration: CatDeriving,
}

// ourCounts tallies the top-level items of tree.
func ourCounts(tree *cst.Tree) Counts {
	m := ast.NewModule(tree)
	counts := Counts{CatImport: len(m.Imports())}
	for _, d := range m.Declarations() {
		if td, ok := d.(ast.TypeDeclaration); ok {
			if !td.IsRole() {
				counts[CatType]++
			}
			continue
		}
		if cat, ok := ourCategories[d.Kind()]; ok {
			counts[cat]++
		}
	}
	return counts
}

// Check parses src with tree-sitter-haskell and compares it with tree,
// hsfront's parse of the same bytes.
func Check(path string, src []byte, tree *cst.Tree) (*Report, error) {
	ts, err := parseOracle(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer ts.Close()
	root := ts.RootNode()

	r := &Report{
		Path:         path,
		Ours:         ourCounts(tree),
		Oracle:       oracleCounts(root),
		OracleErrors: root.HasError(),
	}
	cats := make(map[Category]bool)
	for c := range r.Ours {
		cats[c] = true
	}
	for c := range r.Oracle {
		cats[c] = true
	}
	for c := range cats {
		if r.Ours[c] != r.Oracle[c] {
			r.Mismatches = append(r.Mismatches, Mismatch{Category: c, Ours: r.Ours[c], Oracle: r.Oracle[c]})
		}
	}
	sort.Slice(r.Mismatches, func(i, j int) bool { return r.Mismatches[i].Category < r.Mismatches[j].Category })
	return r, nil
}
