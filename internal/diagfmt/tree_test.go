package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"hsfront/internal/parser"
)

func TestSexprAndTree(t *testing.T) {
	res := parser.ParseText("t.hs", "x = 1\n", parser.Options{})
	got := Sexpr(res.Tree, res.Tree.Root)
	if want := "(Module (Body (ValueDeclaration (ExprVar x) (Rhs = (ExprLit 1)))))"; got != want {
		t.Errorf("sexpr %s", got)
	}

	var buf bytes.Buffer
	if err := FormatTree(&buf, res.Tree, res.Files, TreeOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "Module\n  Body\n    ValueDeclaration\n      ExprVar\n      Rhs\n        ExprLit\n"
	if buf.String() != want {
		t.Errorf("tree:\n%s", buf.String())
	}

	buf.Reset()
	if err := FormatTree(&buf, res.Tree, res.Files, TreeOpts{Tokens: true, Spans: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "VarId(x)") || !strings.Contains(buf.String(), "Module 1:1-2:1") {
		t.Errorf("tree with tokens:\n%s", buf.String())
	}
}

func TestTreeJSON(t *testing.T) {
	res := parser.ParseText("t.hs", "x = 1\n", parser.Options{})
	var buf bytes.Buffer
	if err := FormatTreeJSON(&buf, res.Tree, TreeOpts{Tokens: true}); err != nil {
		t.Fatal(err)
	}
	var root NodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if root.Kind != "Module" || root.End != 6 || len(root.Children) != 1 {
		t.Errorf("root %+v", root)
	}
}

func TestTokensPretty(t *testing.T) {
	res := parser.ParseText("t.hs", "x = 1 -- one\n", parser.Options{})
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, res.Tree.Tokens, TokenFilter{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "one") {
		t.Errorf("trivia in dump:\n%s", buf.String())
	}
	buf.Reset()
	_ = FormatTokensPretty(&buf, res.Tree.Tokens, TokenFilter{Trivia: true})
	if !strings.Contains(buf.String(), "one") {
		t.Errorf("trivia missing:\n%s", buf.String())
	}
}
