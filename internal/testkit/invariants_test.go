package testkit

import (
	"strings"
	"testing"

	"hsfront/internal/parser"
)

func TestCheckTreeAcceptsParses(t *testing.T) {
	for _, src := range []string{
		"",
		"module M (f) where\nimport Data.List\nf x = case x of\n  0 -> 1\n  _ -> 2 -- done\n",
		"f = do\n  x <- g\n  let y = x + 1 * 2\n  pure y\n",
		"data T = T { a :: Int }\nf = = 1\n",
		"f = (1 +\n",
		"{-# LANGUAGE LambdaCase #-}\nf = \\case\n  _ -> ()\n",
	} {
		res := parser.ParseText("t.hs", src, parser.Options{})
		if err := CheckTree(res.Tree); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckTreeRejectsBrokenTiling(t *testing.T) {
	res := parser.ParseText("t.hs", "x = 1\n", parser.Options{})
	res.Tree.Tokens = res.Tree.Tokens[1:]
	err := CheckTree(res.Tree)
	if err == nil || !strings.Contains(err.Error(), "starts at") {
		t.Errorf("err = %v", err)
	}
}

func TestCheckTreeRejectsWideVirtual(t *testing.T) {
	res := parser.ParseText("t.hs", "x = 1\n", parser.Options{})
	if len(res.Tree.Virtual) == 0 {
		t.Fatal("expected layout tokens")
	}
	res.Tree.Virtual[0].Span.End++
	if err := CheckTree(res.Tree); err == nil {
		t.Error("wide virtual token accepted")
	}
}
