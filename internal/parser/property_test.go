package parser

import (
	"strings"
	"testing"

	"hsfront/internal/cst"
)

// corpus mixes well-formed and broken inputs; every property must hold for
// both.
var corpus = []string{
	"",
	"module Foo.Bar (baz) where\n baz = 1\n",
	"{-# LANGUAGE LambdaCase #-}\nmodule M where\n\nimport Data.List (sort)\n\n-- | doc\nf :: [Int] -> [Int]\nf = sort . map (+1) -- tail\n",
	"main = do\n  x <- getLine\n  let y = x\n  putStrLn y\n  where z = 1\n",
	"data T = A | B { f :: Int }\n  deriving Show\n",
	"class C a where\n  {-# MINIMAL foo | bar, baz #-}\n  foo :: a\n",
	"f x = case x of\n  Just y | y > 0 -> y\n  _ -> 0\n",
	"data = where\nx = 1\n",
	"f = (1 + \n{- unterminated",
	"module M where { x = 1 ; y = 2 }\n",
	"g = [ x | x <- xs, odd x ]\n\th = \"tab\"\n",
	"λ = 'x'\nx' = 0x1F + 1.5e3\n",
	"}\n)\n",
}

func TestLosslessTree(t *testing.T) {
	for _, src := range corpus {
		tree, _ := parseSource(t, src)
		var sb strings.Builder
		for _, tok := range tree.Leaves(tree.Root) {
			sb.WriteString(tok.Text)
		}
		if got := sb.String(); got != src {
			t.Errorf("leaves of %q reassemble to %q", src, got)
		}
	}
}

func TestRootSpanCoversInput(t *testing.T) {
	for _, src := range corpus {
		tree, _ := parseSource(t, src)
		if got, want := tree.Span(tree.Root), tree.File.FullSpan(); got != want {
			t.Errorf("%q: root span %v, want %v", src, got, want)
		}
	}
}

func TestSpansNestAndParentsAgree(t *testing.T) {
	for _, src := range corpus {
		tree, _ := parseSource(t, src)
		tree.Walk(tree.Root, func(id cst.NodeID, _ int) bool {
			n := tree.Node(id)
			for _, c := range n.Children {
				if c.Kind == cst.ChildVirtual {
					continue
				}
				if sp := tree.ChildSpan(c); !n.Span.Contains(sp) {
					t.Errorf("%q: child %v of %s escapes %v", src, sp, n.Kind, n.Span)
				}
				if c.Kind == cst.ChildNode && tree.Parent(cst.NodeID(c.ID)) != id {
					t.Errorf("%q: parent of %s is wrong", src, tree.Kind(cst.NodeID(c.ID)))
				}
			}
			return true
		})
		if tree.Parent(tree.Root) != cst.NoNode {
			t.Errorf("%q: root has a parent", src)
		}
	}
}

func TestReindentationKeepsStructure(t *testing.T) {
	sources := []string{
		"f x = y\n  where\n    y = do\n      a\n      b\n",
		"g = let a = 1\n        b = 2\n    in a + b\n",
		"h x = case x of\n  1 -> 'a'\n  _ -> 'b'\n",
		"k = do\n  x <- g\n  pure x\n  where g = h\n",
		"m = let\n  a = 1\n  in a\n",
	}
	for _, src := range sources {
		base := parseClean(t, src)
		for _, pad := range []string{" ", "    "} {
			shifted := parseClean(t, indent(src, pad))
			if got, want := sexpr(shifted, shifted.Root), sexpr(base, base.Root); got != want {
				t.Errorf("indenting %q by %d changed the tree:\ngot  %s\nwant %s", src, len(pad), got, want)
			}
		}
	}
}

func indent(src, pad string) string {
	lines := strings.SplitAfter(src, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "")
}
