package model

import "sort"

// Pseudo-categories naming the power source side of a warning or cost
// entry. They are not part of the selectable category enumeration.
const (
	CategoryEngineSlot PartCategory = "engine"
	CategoryMotorSlot  PartCategory = "motor"
)

// Warning is one finding from compatibility evaluation.
type Warning struct {
	Severity   Severity       `json:"severity"`
	Message    string         `json:"message"`
	Categories []PartCategory `json:"categories"` // categories involved in the finding
}

// SortWarnings orders warnings errors first, then warnings, then info,
// preserving evaluation order within each severity group.
func SortWarnings(warnings []Warning) {
	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Severity.Rank() < warnings[j].Severity.Rank()
	})
}

// HasBlocking reports whether any warning has error severity.
func HasBlocking(warnings []Warning) bool {
	for _, w := range warnings {
		if w.Severity == SeverityError {
			return true
		}
	}
	return false
}
