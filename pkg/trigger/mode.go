package trigger

import "fmt"

// Mode is the edge rule of a binding.
type Mode int

const (
	// OnTrue starts the command once on each false->true transition.
	OnTrue Mode = iota + 1
	// OnFalse starts the command once on each true->false transition.
	OnFalse
	// WhileTrue starts the command on false->true and cancels it on true->false.
	WhileTrue
	// WhileFalse starts the command on true->false and cancels it on false->true.
	WhileFalse
	// ToggleOnTrue starts the command on false->true, or cancels it if it is still running.
	ToggleOnTrue
)

var modeNames = map[Mode]string{
	OnTrue:       "on-true",
	OnFalse:      "on-false",
	WhileTrue:    "while-true",
	WhileFalse:   "while-false",
	ToggleOnTrue: "toggle-on-true",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode converts a mode name such as "while-true" into a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown binding mode %q", s)
}
