package cst

import (
	"hsfront/internal/diag"
	"hsfront/internal/source"
	"hsfront/internal/token"
)

// NodeID indexes Tree.Nodes; NoNode is the zero value.
type NodeID uint32

const NoNode NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNode }

// ChildKind says which table a Child points into.
type ChildKind uint8

const (
	ChildNode    ChildKind = iota // Tree.Nodes (1-based)
	ChildToken                    // Tree.Tokens
	ChildVirtual                  // Tree.Virtual
)

// Child is one entry of a node's ordered child sequence.
type Child struct {
	Kind ChildKind
	ID   uint32
}

// Node is a concrete syntax node. Its span covers its children.
type Node struct {
	Kind     Kind
	Span     source.Span
	Parent   NodeID
	Children []Child
}

// Tree owns every node and token of one parse. It is never mutated after
// the parser returns it.
type Tree struct {
	File        *source.File
	Root        NodeID
	Nodes       *Arena[Node]
	Tokens      []token.Token // lossless: trivia and EOF included
	Virtual     []token.Token // layout tokens the parser consumed
	Diagnostics []diag.Diagnostic
}

// Node returns the node for id, or nil.
func (t *Tree) Node(id NodeID) *Node {
	if t == nil || t.Nodes == nil {
		return nil
	}
	return t.Nodes.Get(uint32(id))
}

// Kind returns the kind of id, KindInvalid when id is not a node.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

func (t *Tree) Span(id NodeID) source.Span {
	if n := t.Node(id); n != nil {
		return n.Span
	}
	return source.Span{}
}

// Parent returns the parent of id; the root has none.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNode
}

// Token returns the token a token or virtual child refers to.
func (t *Tree) Token(c Child) token.Token {
	switch c.Kind {
	case ChildToken:
		return t.Tokens[c.ID]
	case ChildVirtual:
		return t.Virtual[c.ID]
	default:
		return token.Token{Kind: token.Invalid}
	}
}

// ChildSpan returns the span of any child.
func (t *Tree) ChildSpan(c Child) source.Span {
	if c.Kind == ChildNode {
		return t.Span(NodeID(c.ID))
	}
	return t.Token(c).Span
}

// Text returns the source text covered by id, trivia included.
func (t *Tree) Text(id NodeID) string {
	sp := t.Span(id)
	if t.File == nil || int(sp.End) > len(t.File.Content) {
		return ""
	}
	return string(t.File.Content[sp.Start:sp.End])
}

// ChildOfKind returns the first direct child node of kind k.
func (t *Tree) ChildOfKind(id NodeID, k Kind) (NodeID, bool) {
	n := t.Node(id)
	if n == nil {
		return NoNode, false
	}
	for _, c := range n.Children {
		if c.Kind == ChildNode && t.Kind(NodeID(c.ID)) == k {
			return NodeID(c.ID), true
		}
	}
	return NoNode, false
}

// ChildrenOfKind returns every direct child node of kind k in source order.
func (t *Tree) ChildrenOfKind(id NodeID, k Kind) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var out []NodeID
	for _, c := range n.Children {
		if c.Kind == ChildNode && t.Kind(NodeID(c.ID)) == k {
			out = append(out, NodeID(c.ID))
		}
	}
	return out
}

// ChildNodes returns the direct child nodes of id.
func (t *Tree) ChildNodes(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	out := make([]NodeID, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == ChildNode {
			out = append(out, NodeID(c.ID))
		}
	}
	return out
}

// TokensOf returns the direct significant tokens of id: real tokens only,
// no trivia, no layout.
func (t *Tree) TokensOf(id NodeID) []token.Token {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var out []token.Token
	for _, c := range n.Children {
		if c.Kind != ChildToken {
			continue
		}
		if tok := t.Tokens[c.ID]; !tok.IsTrivia() && tok.Kind != token.EOF {
			out = append(out, tok)
		}
	}
	return out
}

// TokenOfKind returns the first direct token of kind k.
func (t *Tree) TokenOfKind(id NodeID, k token.Kind) (token.Token, bool) {
	for _, tok := range t.TokensOf(id) {
		if tok.Kind == k {
			return tok, true
		}
	}
	return token.Token{}, false
}

// Leaves returns every raw token under id in source order, trivia included.
func (t *Tree) Leaves(id NodeID) []token.Token {
	var out []token.Token
	var walk func(NodeID)
	walk = func(id NodeID) {
		n := t.Node(id)
		if n == nil {
			return
		}
		for _, c := range n.Children {
			switch c.Kind {
			case ChildNode:
				walk(NodeID(c.ID))
			case ChildToken:
				out = append(out, t.Tokens[c.ID])
			}
		}
	}
	walk(id)
	return out
}

// Walk visits id and its descendants in pre-order. Returning false from
// fn skips the children of that node.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, depth int) bool) {
	var walk func(NodeID, int)
	walk = func(id NodeID, depth int) {
		n := t.Node(id)
		if n == nil || !fn(id, depth) {
			return
		}
		for _, c := range n.Children {
			if c.Kind == ChildNode {
				walk(NodeID(c.ID), depth+1)
			}
		}
	}
	walk(id, 0)
}

// NodeAt returns the deepest node whose span contains offset.
func (t *Tree) NodeAt(offset uint32) NodeID {
	cur := t.Root
	for {
		next := NoNode
		for _, c := range t.Node(cur).Children {
			if c.Kind != ChildNode {
				continue
			}
			sp := t.Span(NodeID(c.ID))
			if sp.Start <= offset && offset < sp.End {
				next = NodeID(c.ID)
				break
			}
		}
		if next == NoNode {
			return cur
		}
		cur = next
	}
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (t *Tree) HasErrors() bool {
	for _, d := range t.Diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}
