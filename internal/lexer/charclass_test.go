package lexer

import "testing"

func TestClassOf(t *testing.T) {
	tests := []struct {
		chars string
		want  Class
	}{
		{"azAZmQ", ClassLetter},
		{"0123456789", ClassDigit},
		{"_", ClassUnderscore},
		{`"`, ClassQuote},
		{" \t\r\n", ClassWhitespace},
		{"/", ClassSlash},
		{"*", ClassStar},
		{".", ClassDot},
		{`\`, ClassBackslash},
		{"(){}[],;", ClassPunct},
		{"+-<>=!", ClassOpStart},
		{"#@$%^&|~?'`:\x00\x7f\x80\xff", ClassOther},
	}
	for _, tt := range tests {
		for i := 0; i < len(tt.chars); i++ {
			if got := ClassOf(tt.chars[i]); got != tt.want {
				t.Errorf("ClassOf(%q) = %v, want %v", tt.chars[i], got, tt.want)
			}
		}
	}
}

func TestIdentPredicates(t *testing.T) {
	for _, c := range []byte("aZ_") {
		if !isIdentStart(c) || !isIdentContinue(c) {
			t.Errorf("%q should start and continue identifiers", c)
		}
	}
	if isIdentStart('7') || !isIdentContinue('7') {
		t.Error("digits continue but do not start identifiers")
	}
	for _, c := range []byte(".-\" ") {
		if isIdentContinue(c) {
			t.Errorf("%q should not continue identifiers", c)
		}
	}
}

func TestClassString(t *testing.T) {
	if ClassOpStart.String() != "OpStart" || Class(200).String() != "Class(?)" {
		t.Errorf("unexpected names %q %q", ClassOpStart, Class(200))
	}
}
