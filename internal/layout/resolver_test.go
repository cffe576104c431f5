package layout_test

import (
	"strings"
	"testing"

	"hsfront/internal/diag"
	"hsfront/internal/layout"
	"hsfront/internal/lexer"
	"hsfront/internal/source"
	"hsfront/internal/token"
)

func newResolver(src string) (*layout.Resolver, *diag.Bag) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.hs", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	return layout.New(lexer.New(f, lexer.Options{Reporter: rep}), rep), bag
}

func render(it layout.Item) string {
	switch it.Kind {
	case token.VOpen:
		return "{*"
	case token.VSemi:
		return ";*"
	case token.VClose:
		return "}*"
	}
	return it.Text
}

// resolve drains the resolver like a parser would. Whenever the next token is
// one of closeOn, the parse-error(t) rule is applied once for that token.
func resolve(t *testing.T, src string, closeOn ...string) (string, *diag.Bag) {
	t.Helper()
	r, bag := newResolver(src)
	var out []string
	closed := -1
	for {
		it := r.Peek()
		if !it.Virtual && it.Index != closed {
			for _, w := range closeOn {
				if it.Text == w {
					closed = it.Index
					r.TryCloseImplicit()
					break
				}
			}
		}
		it = r.Next()
		if it.Kind == token.EOF {
			break
		}
		out = append(out, render(it))
	}
	return strings.Join(out, " "), bag
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		closeOn []string
		want    string
	}{
		{
			name: "module header",
			src:  "module M where\nf = 1\ng = 2\n",
			want: "module M where {* f = 1 ;* g = 2 }*",
		},
		{
			name: "no header opens at first token",
			src:  "f = do\n  x\n  y\ng = 1",
			want: "{* f = do {* x ;* y }* ;* g = 1 }*",
		},
		{
			name:    "let in on one line",
			src:     "f = let x = 1 in x",
			closeOn: []string{"in"},
			want:    "{* f = let {* x = 1 }* in x }*",
		},
		{
			name: "explicit braces",
			src:  "f = do { x ; y }",
			want: "{* f = do { x ; y } }*",
		},
		{
			name:    "where after case alternatives",
			src:     "f x = case x of\n  1 -> a\n  _ -> b\n  where a = 1\n        b = 2\n",
			closeOn: []string{"where"},
			want:    "{* f x = case x of {* 1 -> a ;* _ -> b ;* }* where {* a = 1 ;* b = 2 }* }*",
		},
		{
			name: "empty where block",
			src:  "class C a where\nf = 1",
			want: "{* class C a where {* }* ;* f = 1 }*",
		},
		{
			name: "header pragma before module",
			src:  "{-# LANGUAGE X #-}\nmodule M where\nx = 1",
			want: "{-# LANGUAGE X #-} module M where {* x = 1 }*",
		},
		{
			name: "header pragma without module",
			src:  "{-# LANGUAGE X #-}\nx = 1\ny = 2",
			want: "{-# LANGUAGE X #-} {* x = 1 ;* y = 2 }*",
		},
		{
			name: "pragma content ignores layout",
			src:  "f = 1\n{-# RULES \"r\"\n  forall x. f x = x\n  #-}\ng = 2",
			want: "{* f = 1 ;* {-# RULES \"r\" forall x . f x = x #-} ;* g = 2 }*",
		},
		{
			name: "implicit block inside explicit closes at brace",
			src:  "f = case x of { A -> do y }",
			want: "{* f = case x of { A -> do {* y }* } }*",
		},
		{
			name: "continuation lines",
			src:  "f = g\n  x\n  y\nh = 1",
			want: "{* f = g x y ;* h = 1 }*",
		},
		{
			name: "empty input",
			src:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, bag := resolve(t, tt.src, tt.closeOn...)
			if got != tt.want {
				t.Errorf("resolved stream\n got: %s\nwant: %s", got, tt.want)
			}
			if bag.HasErrors() {
				t.Errorf("unexpected diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestLayoutErrors(t *testing.T) {
	got, bag := resolve(t, "x = do { y")
	if got != "{* x = do { y }* }*" {
		t.Errorf("unclosed brace stream = %s", got)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LayUnclosedBrace || bag.Items()[0].Recovery != diag.RecoverForcedClose {
		t.Errorf("diagnostics = %v", bag.Items())
	}
	if bag.Items()[0].Class() != diag.ClassLayout {
		t.Errorf("class = %v", bag.Items()[0].Class())
	}

	_, bag = resolve(t, "x = 1 }")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LayUnbalancedBrace {
		t.Errorf("diagnostics = %v", bag.Items())
	}
}

// structure renders the stream without columns, for comparing re-indented
// sources.
func structure(t *testing.T, src string) string {
	t.Helper()
	got, _ := resolve(t, src)
	return got
}

func TestReindentIsIdempotent(t *testing.T) {
	base := "main = do\n    putStrLn a\n    let b = 1\n        c = 2\n    print b\n  where a = \"x\"\n        z = 3\n"
	shifted := "main = do\n      putStrLn a\n      let b = 1\n          c = 2\n      print b\n  where a = \"x\"\n        z = 3\n"
	tabbed := "main = do\n\tputStrLn a\n\tlet b = 1\n\t    c = 2\n\tprint b\n  where a = \"x\"\n        z = 3\n"
	want := structure(t, base)
	for name, src := range map[string]string{"shifted": shifted, "tabbed": tabbed} {
		if got := structure(t, src); got != want {
			t.Errorf("%s: structure changed\n got: %s\nwant: %s", name, got, want)
		}
	}
}

func TestVirtualTokenPositions(t *testing.T) {
	r, _ := newResolver("f = do\n  x\n\n-- c\ng")
	var closes []layout.Item
	for {
		it := r.Next()
		if it.Kind == token.EOF {
			break
		}
		if it.Kind == token.VClose {
			closes = append(closes, it)
		}
	}
	if len(closes) != 2 {
		t.Fatalf("got %d closes, want 2", len(closes))
	}
	if closes[0].Span.Start != 10 || !closes[0].Span.Empty() {
		t.Errorf("do-block close at %v, want empty span at 10", closes[0].Span)
	}
	if len(r.Virtual()) != 5 {
		t.Errorf("virtual table has %d tokens, want 5", len(r.Virtual()))
	}
}

func TestMarkReset(t *testing.T) {
	r, _ := newResolver("f = do\n  x\ng = 1")
	r.Next() // {*
	m := r.Mark()
	var first []string
	for range 6 {
		first = append(first, render(r.Next()))
	}
	r.Reset(m)
	for i := range first {
		if got := render(r.Next()); got != first[i] {
			t.Fatalf("after reset item %d = %s, want %s", i, got, first[i])
		}
	}

	r2, _ := newResolver("f = do\n  x")
	r2.Next() // {*
	if got := render(r2.PeekN(3)); got != "{*" {
		t.Errorf("PeekN(3) = %s, want {*", got)
	}
	if got := render(r2.Peek()); got != "f" {
		t.Errorf("PeekN consumed input: next is %s", got)
	}
}

func TestRawTableIsLossless(t *testing.T) {
	src := "module M where\n\n-- c\nf = 1 {- x -}\n"
	r, _ := newResolver(src)
	for r.Next().Kind != token.EOF {
	}
	var sb strings.Builder
	for _, tk := range r.Drain() {
		sb.WriteString(tk.Text)
	}
	if sb.String() != src {
		t.Errorf("raw table = %q, want %q", sb.String(), src)
	}
}
