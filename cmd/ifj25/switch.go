package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// terminalSwitch is the value of an auto|on|off flag such as --color or
// --ui. Auto turns the feature on only when the output is a terminal.
type terminalSwitch uint8

const (
	switchAuto terminalSwitch = iota
	switchOn
	switchOff
)

func parseSwitch(name, value string) (terminalSwitch, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on":
		return switchOn, nil
	case "off":
		return switchOff, nil
	}
	return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", name, value)
}

func readSwitch(flags *pflag.FlagSet, name string) (terminalSwitch, error) {
	value, err := flags.GetString(name)
	if err != nil {
		return switchAuto, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return parseSwitch(name, value)
}

// on reports whether the feature is enabled for output written to f.
func (s terminalSwitch) on(f *os.File) bool {
	switch s {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return isTerminal(f)
}
