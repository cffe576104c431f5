package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"hsfront/internal/cst"
	"hsfront/internal/token"
)

// CheckTree runs the structural invariants every parse must keep, whatever
// the input:
//  1. the token table tiles the file: texts concatenate to the content and
//     the last token is EOF
//  2. virtual tokens are zero-width
//  3. the root spans the whole file
//  4. children are in source order and inside their parent, and point back
//     to it
//  5. no real token, trivia included, is a child of two nodes
func CheckTree(tree *cst.Tree) error {
	if tree == nil || tree.File == nil {
		return fmt.Errorf("nil tree or file")
	}
	if err := checkTiling(tree); err != nil {
		return err
	}
	for i, v := range tree.Virtual {
		if !v.Span.Empty() {
			return fmt.Errorf("virtual token %d (%s) has width %d", i, v.Kind, v.Span.Len())
		}
	}

	root := tree.Node(tree.Root)
	if root == nil {
		return fmt.Errorf("no root node")
	}
	if full := tree.File.FullSpan(); root.Span != full {
		return fmt.Errorf("root span %v, file is %v", root.Span, full)
	}

	owner := make(map[uint32]cst.NodeID)
	var err error
	tree.Walk(tree.Root, func(id cst.NodeID, _ int) bool {
		if err != nil {
			return false
		}
		err = checkNode(tree, id, owner)
		return err == nil
	})
	return err
}

func checkTiling(tree *cst.Tree) error {
	var sb strings.Builder
	var pos uint32
	for i, tok := range tree.Tokens {
		if tok.Span.Start != pos {
			return fmt.Errorf("token %d (%s) starts at %d, previous ended at %d", i, tok.Kind, tok.Span.Start, pos)
		}
		pos = tok.Span.End
		sb.WriteString(tok.Text)
	}
	if n := len(tree.Tokens); n == 0 || tree.Tokens[n-1].Kind != token.EOF {
		return fmt.Errorf("token table does not end with EOF")
	}
	size, err := safecast.Conv[uint32](len(tree.File.Content))
	if err != nil {
		return fmt.Errorf("file size overflow: %w", err)
	}
	if pos != size {
		return fmt.Errorf("tokens end at %d, file has %d bytes", pos, size)
	}
	if sb.String() != string(tree.File.Content) {
		return fmt.Errorf("token texts do not reproduce the file")
	}
	return nil
}

func checkNode(tree *cst.Tree, id cst.NodeID, owner map[uint32]cst.NodeID) error {
	n := tree.Node(id)
	var prevEnd uint32
	for i, c := range n.Children {
		sp := tree.ChildSpan(c)
		if sp.File != n.Span.File {
			return fmt.Errorf("%s %v: child %d is in file %d", n.Kind, n.Span, i, sp.File)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("%s %v: child %d at %v overlaps its predecessor", n.Kind, n.Span, i, sp)
		}
		if sp.Start < n.Span.Start || sp.End > n.Span.End {
			return fmt.Errorf("%s %v: child %d at %v is outside", n.Kind, n.Span, i, sp)
		}
		prevEnd = sp.End

		switch c.Kind {
		case cst.ChildNode:
			if p := tree.Parent(cst.NodeID(c.ID)); p != id {
				return fmt.Errorf("%s %v: child %d has parent %d, want %d", n.Kind, n.Span, i, p, id)
			}
		case cst.ChildToken:
			tok := tree.Token(c)
			if other, dup := owner[c.ID]; dup {
				return fmt.Errorf("token %s at %v belongs to nodes %d and %d", tok.Kind, tok.Span, other, id)
			}
			owner[c.ID] = id
		}
	}
	return nil
}
