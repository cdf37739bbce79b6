package model

import (
	"fmt"
	"strings"
)

// Mode selects the calling convention of the synthesized dispatch function.
type Mode uint8

const (
	// ModePanic looks arguments up without checking them against their bounds. An
	// out-of-range argument faults with a runtime index panic.
	ModePanic Mode = iota
	// ModeOption checks every argument and reports absence for out-of-range calls.
	ModeOption
	// ModeFallback checks every argument and recomputes out-of-range calls with the
	// original computation.
	ModeFallback
)

// DefaultMode applies when a declaration names no mode.
const DefaultMode = ModePanic

func (m Mode) String() string {
	switch m {
	case ModePanic:
		return "panic"
	case ModeOption:
		return "option"
	case ModeFallback:
		return "fallback"
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ParseMode accepts "panic", "option", "fallback" and its alias "keep".
// The empty string yields DefaultMode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultMode, nil
	case "panic":
		return ModePanic, nil
	case "option":
		return ModeOption, nil
	case "fallback", "keep":
		return ModeFallback, nil
	}
	return DefaultMode, fmt.Errorf("unknown mode %q: want panic, option or fallback", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
