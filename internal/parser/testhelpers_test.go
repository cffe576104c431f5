package parser

import (
	"fmt"
	"strings"
	"testing"

	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/token"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, src string) (*cst.Tree, *diag.Bag) {
	t.Helper()
	res := ParseText("test.hs", src, Options{})
	if res.Tree == nil {
		t.Fatal("nil tree")
	}
	return res.Tree, res.Bag
}

// parseClean parses src and fails on any diagnostic.
func parseClean(t *testing.T, src string) *cst.Tree {
	t.Helper()
	tree, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(bag))
	}
	return tree
}

// sexpr renders id as (Kind child…). Tokens print as their text; trivia,
// layout tokens and EOF are left out.
func sexpr(tree *cst.Tree, id cst.NodeID) string {
	n := tree.Node(id)
	if n == nil {
		return "<nil>"
	}
	parts := []string{n.Kind.String()}
	for _, c := range n.Children {
		switch c.Kind {
		case cst.ChildNode:
			parts = append(parts, sexpr(tree, cst.NodeID(c.ID)))
		case cst.ChildToken:
			tok := tree.Token(c)
			if tok.IsTrivia() || tok.Kind == token.EOF {
				continue
			}
			parts = append(parts, tok.Text)
		}
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// bodyDecls returns the items of the module body.
func bodyDecls(t *testing.T, tree *cst.Tree) []cst.NodeID {
	t.Helper()
	body, ok := tree.ChildOfKind(tree.Root, cst.Body)
	if !ok {
		t.Fatalf("no Body in %s", sexpr(tree, tree.Root))
	}
	return tree.ChildNodes(body)
}

// firstOfKind finds the first node of kind k under id in pre-order.
func firstOfKind(tree *cst.Tree, id cst.NodeID, k cst.Kind) cst.NodeID {
	found := cst.NoNode
	tree.Walk(id, func(n cst.NodeID, _ int) bool {
		if found != cst.NoNode {
			return false
		}
		if tree.Kind(n) == k {
			found = n
			return false
		}
		return true
	})
	return found
}

// rhsExpr parses a single binding and renders the expression on its
// right-hand side.
func rhsExpr(t *testing.T, src string) string {
	t.Helper()
	tree := parseClean(t, src)
	rhs := firstOfKind(tree, tree.Root, cst.Rhs)
	if rhs == cst.NoNode {
		t.Fatalf("no Rhs in %s", sexpr(tree, tree.Root))
	}
	kids := tree.ChildNodes(rhs)
	if len(kids) == 0 {
		t.Fatalf("empty Rhs in %s", sexpr(tree, tree.Root))
	}
	return sexpr(tree, kids[0])
}

func codesOf(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}
