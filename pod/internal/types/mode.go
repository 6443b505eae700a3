package types

import "strconv"

// ChoiceMode describes how the alternatives of a choice pod are negotiated.
type ChoiceMode uint32

const (
	ChoiceNone  ChoiceMode = 0 // single value, extra alternatives ignored
	ChoiceRange ChoiceMode = 1 // default, min, max
	ChoiceStep  ChoiceMode = 2 // default, min, max, step
	ChoiceEnum  ChoiceMode = 3 // default plus alternative list
	ChoiceFlags ChoiceMode = 4 // default plus flag list
)

var choiceModeNames = [...]string{
	ChoiceNone:  "None",
	ChoiceRange: "Range",
	ChoiceStep:  "Step",
	ChoiceEnum:  "Enum",
	ChoiceFlags: "Flags",
}

func (m ChoiceMode) String() string {
	if int(m) < len(choiceModeNames) {
		return choiceModeNames[m]
	}
	return "ChoiceMode(" + strconv.FormatUint(uint64(m), 10) + ")"
}

// Valid reports whether m is one of the defined negotiation modes.
func (m ChoiceMode) Valid() bool {
	return int(m) < len(choiceModeNames)
}

// MinAlternatives returns how many elements beyond the default a valid
// choice body of this mode carries. Enum and Flags accept any count.
func (m ChoiceMode) MinAlternatives() int {
	switch m {
	case ChoiceRange:
		return 2
	case ChoiceStep:
		return 3
	default:
		return 0
	}
}
