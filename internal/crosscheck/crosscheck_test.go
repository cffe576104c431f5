package crosscheck

import (
	"testing"

	"hsfront/internal/parser"
)

func check(t *testing.T, src string) *Report {
	t.Helper()
	res := parser.ParseText("t.hs", src, parser.Options{})
	r, err := Check("t.hs", []byte(src), res.Tree)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestAgreement(t *testing.T) {
	src := "module M where\n" +
		"import Data.List (sort)\n" +
		"import qualified Data.Map as Map\n" +
		"data T = A | B\n" +
		"newtype N = N Int\n" +
		"class C a where\n  m :: a\n" +
		"instance C Int where\n  m = 0\n" +
		"f :: Int -> Int\n" +
		"f 0 = 1\n" +
		"f n = n * f (n - 1)\n"
	r := check(t, src)
	if r.OracleErrors {
		t.Fatalf("tree-sitter reported errors: %s", r.Oracle)
	}
	if !r.OK() {
		t.Errorf("mismatches %+v\nours   %s\noracle %s", r.Mismatches, r.Ours, r.Oracle)
	}
	if r.Ours[CatImport] != 2 || r.Ours[CatBinding] != 2 || r.Ours[CatClass] != 1 {
		t.Errorf("ours %s", r.Ours)
	}
}

func TestOurCountsSkipRoles(t *testing.T) {
	res := parser.ParseText("t.hs", "type S = Int\ntype role P nominal\ndata P a = P\n", parser.Options{})
	c := ourCounts(res.Tree)
	if c[CatType] != 1 || c[CatData] != 1 {
		t.Errorf("counts %s", c)
	}
}

func TestCountsString(t *testing.T) {
	c := Counts{CatData: 2, CatImport: 1, CatClass: 0}
	if got := c.String(); got != "data=2 import=1" {
		t.Errorf("String() = %q", got)
	}
}
