package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{Start: 2, End: 4}, Span{Start: 8, End: 9}, Span{Start: 2, End: 9}},
		{"nested", Span{Start: 2, End: 10}, Span{Start: 3, End: 4}, Span{Start: 2, End: 10}},
		{"other file ignored", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{Start: 5, End: 10}
	if !outer.Contains(Span{Start: 5, End: 5}) {
		t.Error("empty span at start should be contained")
	}
	if !outer.Contains(Span{Start: 10, End: 10}) {
		t.Error("empty span at end should be contained")
	}
	if outer.Contains(Span{Start: 4, End: 6}) {
		t.Error("overlapping span must not be contained")
	}
}

func TestNextTabColumn(t *testing.T) {
	for col, want := range map[uint32]uint32{1: 9, 2: 9, 8: 9, 9: 17, 16: 17} {
		if got := NextTabColumn(col); got != want {
			t.Errorf("NextTabColumn(%d) = %d, want %d", col, got, want)
		}
	}
}
