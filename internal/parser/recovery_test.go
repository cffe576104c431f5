package parser

import (
	"testing"

	"hsfront/internal/cst"
	"hsfront/internal/diag"
)

func TestRecoveryKeepsNextDeclaration(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"keyword soup", "data = where\nx = 1\n"},
		{"unclosed paren", "f = (1 + 2\nx = 1\n"},
		{"garbage line", ") ) )\nx = 1\n"},
		{"missing then", "f = if c 1 else 2\nx = 1\n"},
		{"bad signature", "f :: -> \nx = 1\n"},
		{"stray in", "f = in\nx = 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, bag := parseSource(t, tt.src)
			if !bag.HasErrors() {
				t.Fatalf("want a parse error, got %s", diagnosticsSummary(bag))
			}
			decls := bodyDecls(t, tree)
			if len(decls) == 0 {
				t.Fatalf("empty body: %s", sexpr(tree, tree.Root))
			}
			last := decls[len(decls)-1]
			want := "(ValueDeclaration (ExprVar x) (Rhs = (ExprLit 1)))"
			if got := sexpr(tree, last); got != want {
				t.Errorf("last declaration:\ngot  %s\nwant %s\ntree %s", got, want, sexpr(tree, tree.Root))
			}
			if !tree.HasErrors() {
				t.Error("tree does not carry the diagnostics")
			}
		})
	}
}

func TestDataWithoutHead(t *testing.T) {
	_, bag := parseSource(t, "data = where\nx = 1\n")
	found := false
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError && d.Code.Class() == diag.ClassParse {
			found = true
		}
	}
	if !found {
		t.Errorf("want a syntax error, got %s", diagnosticsSummary(bag))
	}
}

func TestModuleWithoutWhere(t *testing.T) {
	tree, bag := parseSource(t, "module M\nx = 1\n")
	if !bag.HasErrors() {
		t.Fatalf("want an error, got %s", diagnosticsSummary(bag))
	}
	if _, ok := tree.ChildOfKind(tree.Root, cst.ModuleDeclaration); !ok {
		t.Errorf("header lost: %s", sexpr(tree, tree.Root))
	}
	if _, ok := tree.ChildOfKind(tree.Root, cst.Body); !ok {
		t.Errorf("body lost: %s", sexpr(tree, tree.Root))
	}
}

func TestOneErrorPerPosition(t *testing.T) {
	_, bag := parseSource(t, "f = (\n")
	errs := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			errs++
		}
	}
	if errs == 0 || errs > 2 {
		t.Errorf("want one or two errors, got %s", diagnosticsSummary(bag))
	}
}

func TestMaxErrors(t *testing.T) {
	src := ") \n) \n) \n) \n) \n"
	res := ParseText("many.hs", src, Options{MaxErrors: 2})
	if got := len(codesOf(res.Bag)); got > 3 {
		t.Errorf("want at most two errors and the limit note, got %s", diagnosticsSummary(res.Bag))
	}
	if res.Tree == nil {
		t.Fatal("parse must finish")
	}
}

func TestExplicitSemicolonsInImplicitLayout(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		block cst.Kind
		items int
	}{
		{"do", "f = do x; y\n", cst.Stmts, 2},
		{"parenthesized do", "f = (do x; y)\n", cst.Stmts, 2},
		{"let", "f = let x = 1; y = 2 in x + y\n", cst.Decls, 2},
		{"let statement", "f = do\n  let a = 1; b = 2\n  pure a\n", cst.Decls, 2},
		{"case", "f x = case x of 0 -> 1; _ -> 2\n", cst.Alts, 2},
		{"module body", "x = 1; y = 2\n", cst.Body, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseClean(t, tt.src)
			block := firstOfKind(tree, tree.Root, tt.block)
			if block == cst.NoNode {
				t.Fatalf("no %s in %s", tt.block, sexpr(tree, tree.Root))
			}
			if got := len(tree.ChildNodes(block)); got != tt.items {
				t.Errorf("%s has %d items, want %d: %s", tt.block, got, tt.items, sexpr(tree, block))
			}
		})
	}
}

func TestAlignedKeywordClosesBlock(t *testing.T) {
	t.Run("where after case", func(t *testing.T) {
		tree := parseClean(t, "f x = case x of\n  A -> y\n  where y = 1\n")
		assertOwnWhere(t, tree)
	})
	t.Run("where after do", func(t *testing.T) {
		tree := parseClean(t, "f = do\n  x <- g\n  pure x\n  where g = h\n")
		assertOwnWhere(t, tree)
		stmts := firstOfKind(tree, tree.Root, cst.Stmts)
		if got := len(tree.ChildNodes(stmts)); got != 2 {
			t.Errorf("do block has %d statements: %s", got, sexpr(tree, stmts))
		}
	})
	t.Run("in under let", func(t *testing.T) {
		tree := parseClean(t, "f = let\n  x = 1\n  in x\n")
		let := firstOfKind(tree, tree.Root, cst.ExprLet)
		if let == cst.NoNode {
			t.Fatalf("no let in %s", sexpr(tree, tree.Root))
		}
		decls := firstOfKind(tree, let, cst.Decls)
		if got := len(tree.ChildNodes(decls)); got != 1 {
			t.Errorf("let binds %d names: %s", got, sexpr(tree, let))
		}
	})
	t.Run("closing paren", func(t *testing.T) {
		tree := parseClean(t, "f = (case x of\n  1 -> 2)\n")
		if len(bodyDecls(t, tree)) != 1 {
			t.Errorf("tree %s", sexpr(tree, tree.Root))
		}
	})
}

// assertOwnWhere checks that the where clause belongs to the single
// top-level binding and not to the block above it.
func assertOwnWhere(t *testing.T, tree *cst.Tree) {
	t.Helper()
	decls := bodyDecls(t, tree)
	if len(decls) != 1 {
		t.Fatalf("want one declaration, got %d: %s", len(decls), sexpr(tree, tree.Root))
	}
	rhs, ok := tree.ChildOfKind(decls[0], cst.Rhs)
	if !ok {
		t.Fatalf("no Rhs in %s", sexpr(tree, decls[0]))
	}
	if _, ok := tree.ChildOfKind(rhs, cst.WhereBindings); !ok {
		t.Errorf("where clause is not on the binding: %s", sexpr(tree, decls[0]))
	}
}
