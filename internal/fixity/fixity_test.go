package fixity

import (
	"testing"

	"hsfront/internal/diag"
	"hsfront/internal/lexer"
	"hsfront/internal/source"
)

func collect(t *testing.T, src string) (*Table, *diag.Bag, int) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("fix.hs", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	tab := NewTable()
	n := Collect(lexer.Tokenize(f, lexer.Options{Reporter: rep}), tab, rep)
	return tab, bag, n
}

func TestCollect(t *testing.T) {
	src := "module M where\n" +
		"infixl 6 <+>, `plus`\n" +
		"infixr :::\n" +
		"f = x where\n  infix 4 ~~\n"
	tab, bag, n := collect(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if n != 4 {
		t.Errorf("declared %d operators, want 4", n)
	}
	tests := map[string]Fixity{
		"<+>":  {Left, 6},
		"plus": {Left, 6},
		":::":  {Right, 9},
		"~~":   {None, 4},
	}
	for op, want := range tests {
		e, ok := tab.Lookup(op)
		if !ok {
			t.Errorf("%s not declared", op)
			continue
		}
		if e.Fixity != want || e.Origin != Declared {
			t.Errorf("%s: got %v (origin %d), want %v", op, e.Fixity, e.Origin, want)
		}
	}
}

func TestCollectOverridesPrelude(t *testing.T) {
	tab, bag, _ := collect(t, "infixr 2 +\n")
	if bag.Len() != 0 {
		t.Fatalf("overriding a builtin is not a duplicate: %v", bag.Items())
	}
	if e, _ := tab.Lookup("+"); e.Fixity != (Fixity{Right, 2}) {
		t.Errorf("got %v", e.Fixity)
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	tab, bag, _ := collect(t, "infixl 6 <+>\ninfixr 5 <+>\n")
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.FixDuplicate {
		t.Fatalf("want one FixDuplicate, got %v", items)
	}
	if e, _ := tab.Lookup("<+>"); e.Fixity != (Fixity{Right, 5}) {
		t.Errorf("last declaration wins, got %v", e.Fixity)
	}
}

func TestBadPrecedence(t *testing.T) {
	tab, bag, _ := collect(t, "infixl 12 <+>\n")
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.FixBadPrecedence {
		t.Fatalf("want FixBadPrecedence, got %v", items)
	}
	if e, _ := tab.Lookup("<+>"); e.Prec != 9 {
		t.Errorf("precedence not clamped: %v", e.Fixity)
	}
}

func TestLookupUnqualifies(t *testing.T) {
	tab := NewTable()
	tests := []struct {
		op   string
		want Fixity
	}{
		{"Data.Map.!", Fixity{Left, 9}},
		{"P.+", Fixity{Left, 6}},
		{"M.elem", Fixity{None, 4}},
		{".", Fixity{Right, 9}},
	}
	for _, tt := range tests {
		e, ok := tab.Lookup(tt.op)
		if !ok || e.Fixity != tt.want {
			t.Errorf("Lookup(%q) = %v, %v; want %v", tt.op, e.Fixity, ok, tt.want)
		}
	}
	if _, ok := tab.Lookup("<+>"); ok {
		t.Error("undeclared operator found")
	}
}

func TestUnqualify(t *testing.T) {
	tests := map[string]string{
		"Data.Map.!": "!",
		"M.elem":     "elem",
		".":          ".",
		"..":         "..",
		"Foo":        "Foo",
		"A.B.C":      "C",
		"M..":        ".",
	}
	for in, want := range tests {
		if got := unqualify(in); got != want {
			t.Errorf("unqualify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConflicts(t *testing.T) {
	tests := []struct {
		prev, next Fixity
		want       bool
	}{
		{Fixity{Left, 6}, Fixity{Left, 6}, false},
		{Fixity{Right, 5}, Fixity{Right, 5}, false},
		{Fixity{Left, 6}, Fixity{Right, 6}, true},
		{Fixity{None, 4}, Fixity{None, 4}, true},
		{Fixity{None, 4}, Fixity{Left, 6}, false},
	}
	for _, tt := range tests {
		if got := Conflicts(tt.prev, tt.next); got != tt.want {
			t.Errorf("Conflicts(%v, %v) = %v", tt.prev, tt.next, got)
		}
	}
}
