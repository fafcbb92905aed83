package grid

import "strings"

// BCType classifies one side of one axis of the staggered grid
type BCType uint16

const (
	// BCNone indicates an unset boundary classification
	BCNone BCType = iota

	// BCPeriodic wraps the axis onto itself
	BCPeriodic

	// BCDirichlet prescribes the boundary value (no-slip / fixed velocity)
	BCDirichlet

	// BCSymmetric mirrors the interior across the boundary face
	BCSymmetric

	// BCPressure prescribes the boundary pressure (zero-gradient velocity)
	BCPressure
)

// String returns the string representation of a BCType
func (bc BCType) String() string {
	names := map[BCType]string{
		BCNone:      "None",
		BCPeriodic:  "Periodic",
		BCDirichlet: "Dirichlet",
		BCSymmetric: "Symmetric",
		BCPressure:  "PressureBC",
	}
	if name, ok := names[bc]; ok {
		return name
	}
	return "Unknown"
}

// BCNameMap maps input-file boundary names to BCType
// Keys are lowercase for case-insensitive matching
var BCNameMap = map[string]BCType{
	"periodic":    BCPeriodic,
	"dirichlet":   BCDirichlet,
	"wall":        BCDirichlet,
	"no_slip":     BCDirichlet,
	"noslip":      BCDirichlet,
	"symmetric":   BCSymmetric,
	"symmetry":    BCSymmetric,
	"slip":        BCSymmetric,
	"pressure":    BCPressure,
	"pressurebc":  BCPressure,
	"outflow":     BCPressure,
	"free":        BCPressure,
	"unspecified": BCNone,
}

// ParseBCName looks up a boundary name, returning BCNone for unknown names
func ParseBCName(name string) BCType {
	if bc, ok := BCNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return bc
	}
	return BCNone
}
