package diag

import (
	"testing"

	"hsfront/internal/source"
)

func TestCodeIDAndClass(t *testing.T) {
	tests := []struct {
		code  Code
		id    string
		class Class
	}{
		{LexUnterminatedString, "LEX1002", ClassLex},
		{LayUnbalancedBrace, "LAY2001", ClassLayout},
		{SynUnexpectedToken, "SYN3001", ClassParse},
		{FixConflict, "FIX4002", ClassFixity},
		{IOLoadFileError, "IO5001", ClassOther},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %s, want %s", tt.code, got, tt.id)
		}
		if got := tt.code.Class(); got != tt.class {
			t.Errorf("%s.Class() = %v, want %v", tt.id, got, tt.class)
		}
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, SynExpectEquals, source.Span{Start: 1, End: 2}, "expected '='").
		WithRecovery(RecoverSkippedTokens).
		WithNote(source.Span{Start: 0, End: 1}, "declaration starts here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Recovery != RecoverSkippedTokens || len(d.Notes) != 1 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if !bag.HasErrors() {
		t.Error("HasErrors should be true")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	d := New(SevError, LayUnbalancedBrace, source.Span{Start: 3, End: 4}, "unbalanced '}'")
	r.Report(d)
	r.Report(d)
	r.Report(New(SevError, LayUnbalancedBrace, source.Span{Start: 5, End: 6}, "unbalanced '}'"))
	if bag.Len() != 2 {
		t.Errorf("dedup kept %d diagnostics, want 2", bag.Len())
	}
}

func TestLimitReporter(t *testing.T) {
	bag := NewBag(0)
	r := &LimitReporter{Next: BagReporter{Bag: bag}, Max: 2}
	for i := range 5 {
		r.Report(New(SevError, SynUnexpectedToken, source.Span{Start: uint32(i)}, "x"))
	}
	r.Report(New(SevWarning, FixDefaulted, source.Span{}, "w"))
	if !r.Capped() {
		t.Error("limit should be reached")
	}
	// 2 errors + 1 "too many" info + 1 warning
	if bag.Len() != 4 {
		t.Errorf("bag has %d entries, want 4", bag.Len())
	}
}

func TestBagSortAndClass(t *testing.T) {
	bag := NewBag(0)
	bag.Add(New(SevWarning, FixDefaulted, source.Span{Start: 9, End: 10}, "b"))
	bag.Add(New(SevError, SynUnexpectedToken, source.Span{Start: 2, End: 3}, "a"))
	bag.Add(New(SevError, LexUnknownChar, source.Span{Start: 9, End: 10}, "c"))
	bag.Sort()
	items := bag.Items()
	if items[0].Code != SynUnexpectedToken || items[1].Code != LexUnknownChar {
		t.Errorf("unexpected order: %v, %v, %v", items[0].Code.ID(), items[1].Code.ID(), items[2].Code.ID())
	}
	if n := len(bag.OfClass(ClassFixity)); n != 1 {
		t.Errorf("OfClass(fixity) = %d, want 1", n)
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("Main.hs", []byte("a\nb = \n"))
	diags := []Diagnostic{
		New(SevWarning, FixDefaulted, source.Span{File: id, Start: 0, End: 1}, "second"),
		New(SevError, SynExpectExpression, source.Span{File: id, Start: 6, End: 6}, "expected\nexpression").
			WithNote(source.Span{File: id, Start: 2, End: 3}, "binding"),
	}
	want := "warning FIX4001 Main.hs:1:1 second\n" +
		"note SYN3007 Main.hs:2:1 binding\n" +
		"error SYN3007 Main.hs:2:5 expected expression"
	if got := FormatShort(diags, fs, true); got != want {
		t.Fatalf("FormatShort:\nwant:\n%s\ngot:\n%s", want, got)
	}
}
