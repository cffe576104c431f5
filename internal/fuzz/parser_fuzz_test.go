package fuzztests

import (
	"context"
	"testing"
	"time"

	"hsfront/internal/diag"
	"hsfront/internal/parser"
	"hsfront/internal/source"
	"hsfront/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsTree(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.hs", input))
		res := parser.ParseFile(context.Background(), fs, file, parser.Options{MaxErrors: 128})
		if err := testkit.CheckTree(res.Tree); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// The built-in seeds are valid Haskell and must parse without errors.
func TestBuiltinSeedsParseClean(t *testing.T) {
	for _, src := range builtinSeeds {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("seed.hs", []byte(src)))
		res := parser.ParseFile(context.Background(), fs, file, parser.Options{MaxErrors: 64})
		if res.Bag.HasErrors() {
			for _, d := range res.Bag.Items() {
				t.Logf("%s: %s", d.Code.ID(), d.Message)
			}
			t.Errorf("seed %q has parse errors", src)
		}
		if err := testkit.CheckTree(res.Tree); err != nil {
			t.Errorf("seed %q: %v", src, err)
		}
	}
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// Error recovery has to make progress on every token.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Add specific edge cases for recovery and layout
	f.Add([]byte("f = let x = 1 in\n"))              // let without body
	f.Add([]byte("f = (case x of\n  1 -> 2)\n"))     // parse-error(t) close
	f.Add([]byte("f = do { x; }}\n"))                // unbalanced brace
	f.Add([]byte("data T = T {\n"))                  // unclosed record
	f.Add([]byte("{-# LANGUAGE\n"))                  // unclosed pragma
	f.Add([]byte("f = [x | x <- xs, let y = x, \n")) // open comprehension
	f.Add([]byte("x = 1 + 2 == 3 == 4\n"))           // non-associative chain
	f.Add([]byte("class C a where\n  {-# MINIMAL (f #-}\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		// Create a context with timeout to detect hangs
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		// Run parser in a goroutine
		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.hs", input))
			bag := diag.NewBag(128)
			_ = parser.ParseFile(context.Background(), fs, file, parser.Options{
				Reporter:  diag.BagReporter{Bag: bag},
				MaxErrors: 128,
			})
		}()

		// Wait for completion or timeout
		select {
		case <-done:
			// Parser completed successfully
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
