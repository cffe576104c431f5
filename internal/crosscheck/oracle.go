// Package crosscheck compares hsfront's view of a file with the
// tree-sitter-haskell grammar's. The two parsers are independent, so
// agreement on declaration counts is a cheap sanity check over a corpus.
package crosscheck

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_haskell "github.com/tree-sitter/tree-sitter-haskell/bindings/go"
)

var (
	languageOnce sync.Once
	language     *tree_sitter.Language
	parserPool   *sync.Pool
)

func initLanguage() {
	languageOnce.Do(func() {
		language = tree_sitter.NewLanguage(tree_sitter_haskell.Language())
		parserPool = &sync.Pool{
			New: func() any {
				p := tree_sitter.NewParser()
				if err := p.SetLanguage(language); err != nil {
					panic(fmt.Sprintf("set language: %v", err))
				}
				return p
			},
		}
	})
}

// parseOracle parses src with tree-sitter-haskell.
// The caller must call tree.Close() when done.
func parseOracle(src []byte) (*tree_sitter.Tree, error) {
	initLanguage()
	p, _ := parserPool.Get().(*tree_sitter.Parser)
	if p == nil {
		return nil, fmt.Errorf("no tree-sitter parser")
	}
	tree := p.Parse(src, nil)
	parserPool.Put(p)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter-haskell parse failed")
	}
	return tree, nil
}

// grammar node kinds of top-level items
var oracleCategories = map[string]Category{
	"import":            CatImport,
	"signature":         CatSignature,
	"function":          CatBinding,
	"bind":              CatBinding,
	"data_type":         CatData,
	"newtype":           CatNewtype,
	"type_synonym":      CatType,
	"class":             CatClass,
	"instance":          CatInstance,
	"foreign_import":    CatForeign,
	"foreign_export":    CatForeign,
	"fixity":            CatFixity,
	"deriving_instance": CatDeriving,
}

// containers whose children are the actual items
var oracleContainers = map[string]bool{
	"imports":      true,
	"declarations": true,
}

func oracleCounts(root *tree_sitter.Node) Counts {
	counts := Counts{}
	var visit func(n *tree_sitter.Node, depth int)
	visit = func(n *tree_sitter.Node, depth int) {
		for i := uint(0); i < n.NamedChildCount(); i++ {
			child := n.NamedChild(i)
			if child == nil {
				continue
			}
			kind := child.Kind()
			if oracleContainers[kind] && depth < 2 {
				visit(child, depth+1)
				continue
			}
			if cat, ok := oracleCategories[kind]; ok {
				counts[cat]++
			}
		}
	}
	visit(root, 0)
	return counts
}
