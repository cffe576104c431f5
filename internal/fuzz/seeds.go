package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

// builtinSeeds cover the layout-sensitive corners even without testdata.
var builtinSeeds = []string{
	"",
	"module Main where\nmain :: IO ()\nmain = putStrLn \"hi\"\n",
	"f x\n  | x > 0 = 1\n  | otherwise = 0\n  where y = x\n",
	"g = let a = 1; b = 2 in a + b\n",
	"h = do\n  x <- m\n  if x then pure () else h\n",
	"data T a = L | N (T a) a (T a) deriving (Show, Eq)\n",
	"class Monad m => C m where\n  op :: a -> m a\n  {-# MINIMAL op #-}\n",
	"infixr 5 +++\nxs +++ ys = foldr (:) ys xs\n",
	"{-# LANGUAGE LambdaCase, MultiWayIf #-}\nf = \\case\n  0 -> if | True -> 1\n",
	"foreign import ccall unsafe \"sin\" c_sin :: Double -> Double\n",
	"x = 'a' : \"b\\n\" ++ show 0x1F ++ show 1.5e3\n",
	"{- nested {- comment -} -}\ny = 1 -- trailing\n",
	"z = [ (a, b) | a <- [1..], b <- \"ab\", even a ]\n",
	"p = do x; y\nq = (do x; y)\n",
	"r x = case x of\n  A -> y\n  where y = 1\n",
	"s = do\n  x <- g\n  pure x\n  where g = h\n",
	"t = let\n  a = 1\n  in a\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.hs файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".hs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
