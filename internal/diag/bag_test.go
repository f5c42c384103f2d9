package diag

import (
	"testing"

	"ifj25/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	for i := 0; i < 4; i++ {
		r.Report(LexInvalidCharacter, SevError, source.Span{Start: uint32(i)}, "bad", nil)
	}
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
	if bag.Dropped() != 2 {
		t.Fatalf("Dropped() = %d, want 2", bag.Dropped())
	}
	if !bag.HasErrors() || bag.CountAtLeast(SevWarning) != 2 || !bag.Full() {
		t.Fatal("error diagnostics must count as errors and warnings")
	}
}

func TestBagUnbounded(t *testing.T) {
	bag := NewBag(0)
	for i := 0; i < 100; i++ {
		bag.Add(Diagnostic{Severity: SevInfo})
	}
	if bag.Len() != 100 {
		t.Fatalf("Len() = %d", bag.Len())
	}
	if bag.CountAtLeast(SevWarning) != 0 || bag.Full() || bag.Cap() != 0 {
		t.Fatal("info diagnostics are not warnings")
	}
}

func TestBagSortAndMerge(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Severity: SevError, Code: LexUnterminatedString, Primary: source.Span{File: 1, Start: 9}})
	b := NewBag(4)
	b.Add(Diagnostic{Severity: SevWarning, Code: LexInfo, Primary: source.Span{File: 0, Start: 4}})
	b.Add(Diagnostic{Severity: SevError, Code: LexInvalidCharacter, Primary: source.Span{File: 0, Start: 4}})
	b.Add(Diagnostic{Severity: SevError, Code: LexInvalidCharacter, Primary: source.Span{File: 0, Start: 1}})

	a.Merge(b)
	if a.Len() != 4 {
		t.Fatalf("Merge kept %d items", a.Len())
	}
	a.Sort()
	items := a.Items()
	if items[0].Primary.Start != 1 || items[1].Severity != SevError || items[2].Code != LexInfo || items[3].Primary.File != 1 {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexInvalidCharacter: "LEX1001",
		LexTokenTooLong:     "LEX1005",
		IOReadFailure:       "IO4002",
		UnknownCode:         "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
	if LexUnterminatedComment.String() != "[LEX1003]: Unterminated block comment" {
		t.Errorf("String() = %q", LexUnterminatedComment.String())
	}
	if Code(1999).Title() != "Unknown error" {
		t.Errorf("unknown code title = %q", Code(1999).Title())
	}
}

func TestDiagnosticHelpers(t *testing.T) {
	base := Errorf(LexInvalidCharacter, source.Span{Start: 3, End: 4}, "unexpected character %q", "#")
	if base.Message != `unexpected character "#"` || !base.IsError() {
		t.Fatalf("Errorf = %+v", base)
	}
	one := base.WithNote(source.Span{}, "first")
	two := one.WithNote(source.Span{}, "second")
	three := one.WithNote(source.Span{}, "other")
	if len(base.Notes) != 0 || len(one.Notes) != 1 || two.Notes[1].Msg != "second" || three.Notes[1].Msg != "other" {
		t.Fatalf("WithNote shared storage: %+v %+v", two.Notes, three.Notes)
	}
	if New(SevWarning, LexInfo, source.Span{}, "w").IsError() {
		t.Error("warnings are not errors")
	}
}

func TestReporterFunc(t *testing.T) {
	var got []Diagnostic
	r := ReporterFunc(func(d Diagnostic) { got = append(got, d) })
	r.Report(LexUnterminatedComment, SevError, source.Span{Start: 7}, "unterminated comment", nil)
	if len(got) != 1 || got[0].Code != LexUnterminatedComment || got[0].Primary.Start != 7 {
		t.Fatalf("got %+v", got)
	}
	BagReporter{}.Report(LexInfo, SevInfo, source.Span{}, "dropped", nil)
}
