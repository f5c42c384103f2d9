package lexer

// State is the scanning state of the tokenizer between two bytes.
type State uint8

const (
	StateNone State = iota
	StateIdentOrKeyword
	StateIntOrFloat
	StateFloat
	StateString
	StateStringEscape
	StateSlashSeen
	StateLineComment
	StateBlockComment
	StateBlockCommentStar
	StateGreaterSeen
	StateLessSeen
	StateEqualsSeen
	StateBangSeen
	StateBuiltinPrefix
	StateBuiltinName
)

var stateNames = [...]string{
	StateNone:             "None",
	StateIdentOrKeyword:   "IdentifierOrKeyword",
	StateIntOrFloat:       "IntOrFloat",
	StateFloat:            "Float",
	StateString:           "String",
	StateStringEscape:     "StringEscape",
	StateSlashSeen:        "SlashSeen",
	StateLineComment:      "LineComment",
	StateBlockComment:     "BlockComment",
	StateBlockCommentStar: "BlockCommentStarSeen",
	StateGreaterSeen:      "GreaterSeen",
	StateLessSeen:         "LessSeen",
	StateEqualsSeen:       "EqualsSeen",
	StateBangSeen:         "BangSeen",
	StateBuiltinPrefix:    "BuiltinFunctionPrefixSeen",
	StateBuiltinName:      "BuiltinFunctionName",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(?)"
}
