package sim

import "fmt"

// PlacementLabel is the ordinal grade-placement target. The zero value is
// the lowest band.
type PlacementLabel int

const (
	Grade2 PlacementLabel = iota
	LowGrade3
	MidGrade3
	HighGrade3
	Grade4

	numPlacements = 5
)

// Lower bounds (inclusive) of LowGrade3..Grade4.
var placementCutPoints = [numPlacements - 1]float64{-1.5, -0.5, 0.5, 1.5}

var placementNames = [numPlacements]string{
	"Grade 2",
	"Low Grade 3",
	"Mid Grade 3",
	"High Grade 3",
	"Grade 4",
}

// AllPlacements lists every label in ascending order.
func AllPlacements() []PlacementLabel {
	return []PlacementLabel{Grade2, LowGrade3, MidGrade3, HighGrade3, Grade4}
}

// Placement maps true ability to its label. Bands are contiguous with an
// inclusive lower bound, so theta == -1.5 is LowGrade3.
func Placement(theta float64) PlacementLabel {
	label := Grade2
	for _, cut := range placementCutPoints {
		if theta >= cut {
			label++
		}
	}
	return label
}

// String returns the label as written to the dataset.
func (p PlacementLabel) String() string {
	if p < 0 || int(p) >= numPlacements {
		return fmt.Sprintf("PlacementLabel(%d)", int(p))
	}
	return placementNames[p]
}

// Ordinal returns the 0-based rank of the label.
func (p PlacementLabel) Ordinal() int {
	return int(p)
}

// ParsePlacement is the inverse of String.
func ParsePlacement(s string) (PlacementLabel, error) {
	for i, name := range placementNames {
		if name == s {
			return PlacementLabel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown placement label %q", s)
}
