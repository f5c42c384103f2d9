package token

// KeywordKind enumerates the reserved words.
type KeywordKind uint8

const (
	KwImport KeywordKind = iota
	KwFor
	KwClass
	KwStatic
	KwIf
	KwElse
	KwWhile
	KwIfj
	KwIs
	KwNull
	KwNum
	KwReturn
	KwString
	KwVar
)

var keywords = map[string]KeywordKind{
	"import": KwImport,
	"for":    KwFor,
	"class":  KwClass,
	"static": KwStatic,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"Ifj":    KwIfj,
	"is":     KwIs,
	"null":   KwNull,
	"Num":    KwNum,
	"return": KwReturn,
	"String": KwString,
	"var":    KwVar,
}

var keywordText = [...]string{
	KwImport: "import", KwFor: "for", KwClass: "class", KwStatic: "static",
	KwIf: "if", KwElse: "else", KwWhile: "while", KwIfj: "Ifj", KwIs: "is",
	KwNull: "null", KwNum: "Num", KwReturn: "return", KwString: "String", KwVar: "var",
}

func (k KeywordKind) String() string {
	if int(k) < len(keywordText) {
		return keywordText[k]
	}
	return "?"
}

// LookupKeyword reports whether ident is a keyword. Matching is exact and
// case-sensitive.
func LookupKeyword(ident string) (KeywordKind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keywords returns every keyword spelling.
func Keywords() []string {
	out := make([]string, len(keywordText))
	copy(out, keywordText[:])
	return out
}

// BuiltinNamespace is the qualifier required before a built-in function name.
const BuiltinNamespace = "Ifj"

// Builtin enumerates the built-in functions of the Ifj namespace.
type Builtin uint8

const (
	BuiltinStr Builtin = iota
	BuiltinWrite
	BuiltinReadNum
	BuiltinFloor
)

var builtins = map[string]Builtin{
	"str":      BuiltinStr,
	"write":    BuiltinWrite,
	"read_num": BuiltinReadNum,
	"floor":    BuiltinFloor,
}

var builtinText = [...]string{
	BuiltinStr: "str", BuiltinWrite: "write", BuiltinReadNum: "read_num", BuiltinFloor: "floor",
}

func (b Builtin) String() string {
	if int(b) < len(builtinText) {
		return builtinText[b]
	}
	return "?"
}

// LookupBuiltin matches the part after "Ifj." against the built-in names.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}
