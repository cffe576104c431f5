package cst

import (
	"hsfront/internal/diag"
	"hsfront/internal/source"
	"hsfront/internal/token"
)

// Builder assembles a Tree while the parser consumes tokens.
//
// Trivia are attached lazily: comments and whitespace in front of a token
// go to the innermost open node that already has children, so a node
// starts at its first significant token and trailing comments stay
// outside the node they follow.
type Builder struct {
	file  *source.File
	raw   func() []token.Token
	nodes *Arena[Node]
	virt  []token.Token
	stack []frame
	next  int    // first raw token not attached yet
	pos   uint32 // end of the last attached child
}

type frame struct {
	kind     Kind
	children []Child
}

// Checkpoint remembers a position in the open node so that a later
// StartAt can wrap everything built since then.
type Checkpoint struct {
	depth int
	index int
}

// NewBuilder starts a builder whose root node has kind root. raw must
// return the raw token table; it may grow between calls.
func NewBuilder(file *source.File, raw func() []token.Token, root Kind) *Builder {
	hint := uint(len(file.Content)/8 + 16)
	return &Builder{
		file:  file,
		raw:   raw,
		nodes: NewArena[Node](hint),
		stack: []frame{{kind: root}},
	}
}

// Depth returns the number of open nodes, the root included.
func (b *Builder) Depth() int { return len(b.stack) }

// Current returns the kind of the innermost open node.
func (b *Builder) Current() Kind { return b.stack[len(b.stack)-1].kind }

// Start opens a node of kind k.
func (b *Builder) Start(k Kind) {
	b.stack = append(b.stack, frame{kind: k})
}

// Finish closes the innermost node and attaches it to its parent.
func (b *Builder) Finish() NodeID {
	if len(b.stack) == 1 {
		panic("cst: Finish without matching Start")
	}
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	id := b.alloc(f)
	b.attach(Child{Kind: ChildNode, ID: uint32(id)})
	return id
}

// Retag changes the kind of the innermost open node.
func (b *Builder) Retag(k Kind) {
	b.stack[len(b.stack)-1].kind = k
}

// Abandon closes the innermost node without creating it: its children are
// spliced into the parent.
func (b *Builder) Abandon() {
	if len(b.stack) == 1 {
		panic("cst: Abandon without matching Start")
	}
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, f.children...)
}

// Checkpoint returns a mark for StartAt.
func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint{depth: len(b.stack), index: len(b.stack[len(b.stack)-1].children)}
}

// StartAt opens a node of kind k that adopts everything attached to the
// current node since cp. Leading trivia stay with the parent.
func (b *Builder) StartAt(cp Checkpoint, k Kind) {
	if cp.depth != len(b.stack) {
		panic("cst: StartAt with a checkpoint from another depth")
	}
	top := &b.stack[len(b.stack)-1]
	i := cp.index
	for i < len(top.children) && b.isTrivia(top.children[i]) {
		i++
	}
	moved := append([]Child(nil), top.children[i:]...)
	top.children = top.children[:i]
	b.stack = append(b.stack, frame{kind: k, children: moved})
}

// Token attaches raw token index and the trivia in front of it.
func (b *Builder) Token(index int) {
	raw := b.raw()
	for b.next < index {
		b.attachTrivia(b.next, raw[b.next])
		b.next++
	}
	if index < b.next {
		return
	}
	b.attach(Child{Kind: ChildToken, ID: uint32(index)})
	b.pos = raw[index].Span.End
	b.next = index + 1
}

// Virtual attaches a layout token. Trivia ending at or before it are
// flushed first so children stay in source order.
func (b *Builder) Virtual(tok token.Token) {
	raw := b.raw()
	for b.next < len(raw) && raw[b.next].IsTrivia() && raw[b.next].Span.End <= tok.Span.Start {
		b.attachTrivia(b.next, raw[b.next])
		b.next++
	}
	b.virt = append(b.virt, tok)
	b.attach(Child{Kind: ChildVirtual, ID: uint32(len(b.virt) - 1)})
	if tok.Span.End > b.pos {
		b.pos = tok.Span.End
	}
}

// Tree closes every open node, attaches the remaining raw tokens (trailing
// trivia and EOF) to the root and returns the finished tree. raw must be
// the complete token table.
func (b *Builder) Tree(raw []token.Token, diags []diag.Diagnostic) *Tree {
	for len(b.stack) > 1 {
		b.Finish()
	}
	for b.next < len(raw) {
		b.stack[0].children = append(b.stack[0].children, Child{Kind: ChildToken, ID: uint32(b.next)})
		b.next++
	}
	root := b.stack[0]
	b.stack = nil
	id := NodeID(b.nodes.Allocate(Node{Kind: root.kind, Span: b.file.FullSpan(), Children: root.children}))
	b.adopt(id, root.children)
	return &Tree{
		File:        b.file,
		Root:        id,
		Nodes:       b.nodes,
		Tokens:      raw,
		Virtual:     b.virt,
		Diagnostics: diags,
	}
}

func (b *Builder) alloc(f frame) NodeID {
	sp := source.Span{File: b.file.ID, Start: b.pos, End: b.pos}
	if len(f.children) > 0 {
		first := b.childSpan(f.children[0])
		last := b.childSpan(f.children[len(f.children)-1])
		sp = source.Span{File: b.file.ID, Start: first.Start, End: last.End}
	}
	id := NodeID(b.nodes.Allocate(Node{Kind: f.kind, Span: sp, Children: f.children}))
	b.adopt(id, f.children)
	return id
}

func (b *Builder) adopt(parent NodeID, children []Child) {
	for _, c := range children {
		if c.Kind == ChildNode {
			b.nodes.Get(c.ID).Parent = parent
		}
	}
}

func (b *Builder) attach(c Child) {
	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, c)
}

// attachTrivia puts a trivia token into the innermost non-empty node.
func (b *Builder) attachTrivia(index int, tok token.Token) {
	i := len(b.stack) - 1
	for i > 0 && len(b.stack[i].children) == 0 {
		i--
	}
	b.stack[i].children = append(b.stack[i].children, Child{Kind: ChildToken, ID: uint32(index)})
	if tok.Span.End > b.pos {
		b.pos = tok.Span.End
	}
}

func (b *Builder) childSpan(c Child) source.Span {
	switch c.Kind {
	case ChildNode:
		return b.nodes.Get(c.ID).Span
	case ChildToken:
		return b.raw()[c.ID].Span
	default:
		return b.virt[c.ID].Span
	}
}

func (b *Builder) isTrivia(c Child) bool {
	return c.Kind == ChildToken && b.raw()[c.ID].IsTrivia()
}
