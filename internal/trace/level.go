package trace

import (
	"fmt"
	"strings"
)

// Level controls how fine-grained the recorded events are.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // nothing live; the ring is dumped on failure
	LevelPhase        // driver operations and lexing passes
	LevelDetail       // plus one span per file
	LevelDebug        // plus one point per token
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel parses a --trace-level value; the empty string means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if s == name {
			return Level(i), nil // #nosec G115 -- bounded by levelNames
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// maxScope is the finest scope each level records.
var maxScope = [...]Scope{
	LevelPhase:  ScopePass,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeToken,
}

// ShouldEmit reports whether events of scope are recorded at level l.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(maxScope) {
		return false
	}
	return scope <= maxScope[l]
}
