package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

// edgeSeeds cover the lookahead and unterminated paths.
var edgeSeeds = []string{
	"",
	"/",
	"/*",
	"/* ** */",
	"//",
	"\"",
	"\"\\",
	"\"\\q\"",
	"Ifj.",
	"Ifj.nope",
	"Ifj . write",
	"1.",
	"1.2.3",
	"99999999999999999999",
	"a!=b!c<=d<e>=f>g==h=i",
	"null true false",
	"\x00\xff\t\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range edgeSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".wren" {
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
