package ast

import (
	"fmt"

	"hsfront/internal/cst"
	"hsfront/internal/source"
	"hsfront/internal/token"
)

// Node is a handle to one node of a concrete syntax tree. Typed wrappers
// embed it; the zero Node is absent and every query on it returns zero
// values.
type Node struct {
	tree *cst.Tree
	id   cst.NodeID
}

// Wrap returns a handle for id in tree.
func Wrap(tree *cst.Tree, id cst.NodeID) Node {
	return Node{tree: tree, id: id}
}

func (n Node) Tree() *cst.Tree   { return n.tree }
func (n Node) ID() cst.NodeID    { return n.id }
func (n Node) IsValid() bool     { return n.tree != nil && n.id.IsValid() }
func (n Node) Kind() cst.Kind    { return n.tree.Kind(n.id) }
func (n Node) Span() source.Span { return n.tree.Span(n.id) }

// Text returns the source text under the node, comments included.
func (n Node) Text() string {
	if !n.IsValid() {
		return ""
	}
	return n.tree.Text(n.id)
}

// Children returns the direct child nodes.
func (n Node) Children() []Node {
	if !n.IsValid() {
		return nil
	}
	ids := n.tree.ChildNodes(n.id)
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = Node{tree: n.tree, id: id}
	}
	return out
}

// Tokens returns the direct significant tokens.
func (n Node) Tokens() []token.Token {
	if !n.IsValid() {
		return nil
	}
	return n.tree.TokensOf(n.id)
}

// Parent returns the enclosing node; the root has none.
func (n Node) Parent() (Node, bool) {
	if !n.IsValid() {
		return Node{}, false
	}
	p := n.tree.Parent(n.id)
	return Node{tree: n.tree, id: p}, p.IsValid()
}

func (n Node) String() string {
	if !n.IsValid() {
		return "<absent>"
	}
	return fmt.Sprintf("%s@%s", n.Kind(), n.Span())
}

// childOf returns the first direct child of kind k.
func (n Node) childOf(k cst.Kind) (Node, bool) {
	if !n.IsValid() {
		return Node{}, false
	}
	id, ok := n.tree.ChildOfKind(n.id, k)
	return Node{tree: n.tree, id: id}, ok
}

// childrenOf returns every direct child of kind k in source order.
func (n Node) childrenOf(k cst.Kind) []Node {
	if !n.IsValid() {
		return nil
	}
	ids := n.tree.ChildrenOfKind(n.id, k)
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = Node{tree: n.tree, id: id}
	}
	return out
}

// required is childOf for children the grammar always produces.
func (n Node) required(k cst.Kind) (Node, error) {
	if c, ok := n.childOf(k); ok {
		return c, nil
	}
	return Node{}, &MissingChildError{Parent: n.Kind(), Want: k, Span: n.Span()}
}

// token returns the first direct token of kind k.
func (n Node) token(k token.Kind) (token.Token, bool) {
	if !n.IsValid() {
		return token.Token{}, false
	}
	return n.tree.TokenOfKind(n.id, k)
}

// word returns the first direct VarId token that is one of words.
func (n Node) word(words map[string]bool) (string, bool) {
	for _, tok := range n.Tokens() {
		if tok.Kind == token.VarId && words[tok.Text] {
			return tok.Text, true
		}
	}
	return "", false
}

// Walk visits root and its descendants in pre-order. Returning false from
// fn skips the children of that node.
func Walk(root Node, fn func(Node) bool) {
	if !root.IsValid() {
		return
	}
	root.tree.Walk(root.id, func(id cst.NodeID, _ int) bool {
		return fn(Node{tree: root.tree, id: id})
	})
}

func wrapAll[T any](nodes []Node, wrap func(Node) T) []T {
	out := make([]T, len(nodes))
	for i, n := range nodes {
		out[i] = wrap(n)
	}
	return out
}

func wrapOne[T any](n Node, ok bool, wrap func(Node) T) (T, bool) {
	if !ok {
		var zero T
		return zero, false
	}
	return wrap(n), true
}

func wrapRequired[T any](n Node, err error, wrap func(Node) T) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return wrap(n), nil
}
