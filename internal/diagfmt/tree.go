package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"hsfront/internal/cst"
	"hsfront/internal/source"
	"hsfront/internal/token"
)

// TreeOpts controls tree dumps.
type TreeOpts struct {
	Tokens bool // print tokens under their nodes
	Trivia bool // include comments and whitespace
	Spans  bool // append line:col ranges
}

// FormatTree prints the tree indented by depth:
//
//	Module 1:1-3:1
//	  Body
//	    ValueDeclaration
//	      ExprVar
//	        VarId "f"
func FormatTree(w io.Writer, tree *cst.Tree, fs *source.FileSet, opts TreeOpts) error {
	var sb strings.Builder
	writeTreeNode(&sb, tree, fs, tree.Root, 0, opts)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTreeNode(sb *strings.Builder, tree *cst.Tree, fs *source.FileSet, id cst.NodeID, depth int, opts TreeOpts) {
	n := tree.Node(id)
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	sb.WriteString(n.Kind.String())
	if opts.Spans {
		sb.WriteByte(' ')
		sb.WriteString(spanText(fs, n.Span))
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		if c.Kind == cst.ChildNode {
			writeTreeNode(sb, tree, fs, cst.NodeID(c.ID), depth+1, opts)
			continue
		}
		if !opts.Tokens {
			continue
		}
		tok := tree.Token(c)
		if tok.Kind == token.EOF || tok.IsTrivia() && !opts.Trivia {
			continue
		}
		fmt.Fprintf(sb, "%s  %s\n", indent, tok)
	}
}

// Sexpr renders id as (Kind child ...). Tokens print as their text; trivia,
// layout tokens and EOF are left out.
func Sexpr(tree *cst.Tree, id cst.NodeID) string {
	var sb strings.Builder
	writeSexpr(&sb, tree, id)
	return sb.String()
}

func writeSexpr(sb *strings.Builder, tree *cst.Tree, id cst.NodeID) {
	n := tree.Node(id)
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Kind.String())
	for _, c := range n.Children {
		switch c.Kind {
		case cst.ChildNode:
			sb.WriteByte(' ')
			writeSexpr(sb, tree, cst.NodeID(c.ID))
		case cst.ChildToken:
			tok := tree.Token(c)
			if tok.IsTrivia() || tok.Kind == token.EOF {
				continue
			}
			sb.WriteByte(' ')
			sb.WriteString(tok.Text)
		}
	}
	sb.WriteByte(')')
}

// NodeOutput is the JSON/YAML shape of a tree node.
type NodeOutput struct {
	Kind     string       `json:"kind" yaml:"kind"`
	Start    uint32       `json:"start" yaml:"start"`
	End      uint32       `json:"end" yaml:"end"`
	Text     string       `json:"text,omitempty" yaml:"text,omitempty"`
	Children []NodeOutput `json:"children,omitempty" yaml:"children,omitempty"`
}

// BuildTreeOutput converts the subtree at id. Tokens become leaf entries
// when opts.Tokens is set.
func BuildTreeOutput(tree *cst.Tree, id cst.NodeID, opts TreeOpts) NodeOutput {
	n := tree.Node(id)
	out := NodeOutput{Kind: n.Kind.String(), Start: n.Span.Start, End: n.Span.End}
	for _, c := range n.Children {
		if c.Kind == cst.ChildNode {
			out.Children = append(out.Children, BuildTreeOutput(tree, cst.NodeID(c.ID), opts))
			continue
		}
		tok := tree.Token(c)
		if !opts.Tokens || tok.Kind == token.EOF || tok.IsTrivia() && !opts.Trivia {
			continue
		}
		out.Children = append(out.Children, NodeOutput{
			Kind:  tok.Kind.String(),
			Start: tok.Span.Start,
			End:   tok.Span.End,
			Text:  tok.Text,
		})
	}
	return out
}

func FormatTreeJSON(w io.Writer, tree *cst.Tree, opts TreeOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildTreeOutput(tree, tree.Root, opts))
}

func FormatTreeYAML(w io.Writer, tree *cst.Tree, opts TreeOpts) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildTreeOutput(tree, tree.Root, opts)); err != nil {
		return err
	}
	return enc.Close()
}
