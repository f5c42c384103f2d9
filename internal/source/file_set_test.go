package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAdd(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.Add("./prog.wren", []byte("hello world"), 0)
	id2 := fs.Add("prog.wren", []byte("hello universe"), 0)
	if id1 != 0 || id2 != 1 || fs.Len() != 2 {
		t.Fatalf("ids %d,%d len %d", id1, id2, fs.Len())
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("first file lost: %q", got)
	}
	if fs.Get(id1).Path != "prog.wren" {
		t.Errorf("path not cleaned: %q", fs.Get(id1).Path)
	}
	if fs.Get(id1).Hash == fs.Get(id2).Hash {
		t.Error("different content must hash differently")
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.wren")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFvar a\r\nvar b\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "var a\nvar b\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if !f.Flags.Has(FileHadBOM|FileNormalizedCRLF) || f.Flags.Has(FileVirtual) {
		t.Fatalf("flags = %v", f.Flags)
	}
}

func TestFileSetLoadMissing(t *testing.T) {
	if _, err := NewFileSet().Load(filepath.Join(t.TempDir(), "nope.wren")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		flags FileFlags
	}{
		{"abc", "abc", 0},
		{"a\r\nb", "a\nb", FileNormalizedCRLF},
		{"a\rb", "a\rb", 0},
		{"\r\n\r\n", "\n\n", FileNormalizedCRLF},
		{"a\r", "a\r", 0},
		{"\xEF\xBB\xBFx", "x", FileHadBOM},
		{"\xEF\xBB", "\xEF\xBB", 0},
	}
	for _, tt := range tests {
		got, flags := normalize([]byte(tt.in))
		if string(got) != tt.want || flags != tt.flags {
			t.Errorf("normalize(%q) = %q,%v want %q,%v", tt.in, got, flags, tt.want, tt.flags)
		}
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.wren", []byte("ab\ncd\n\nx"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		got, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if got != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.wren", []byte("first\nsecond\n\nlast")))

	cases := map[uint32]string{
		0: "",
		1: "first",
		2: "second",
		3: "",
		4: "last",
		5: "",
	}
	for n, want := range cases {
		if got := f.Line(n); got != want {
			t.Errorf("Line(%d) = %q, want %q", n, got, want)
		}
	}
}
