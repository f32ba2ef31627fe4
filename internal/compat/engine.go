// Package compat implements the compatibility engine: a pure function
// from (power source, selection, rules) to an ordered list of warnings.
// Built-in physical checks always run; data-driven rules from the catalog
// run on top of them. Missing specification data never produces a
// warning — unknown is not incompatible.
package compat

import (
	"math"

	"github.com/kartwerks/kartpick/internal/model"
)

// ShaftBoreTolerance is the tolerance, in inches, applied to every
// diameter comparison (engine shaft vs part bore, axle vs brake, tire vs
// wheel). Diameters within this tolerance are considered matching.
const ShaftBoreTolerance = 0.01

// Evaluate checks the selection against the power source and rule set and
// returns every finding, errors first, then warnings, then info, each
// group in evaluation order. Evaluation is deterministic: identical
// inputs produce identical output. An empty rule set degrades to
// built-in checks only.
func Evaluate(power model.PowerSource, selection *model.Selection, rules []model.CompatibilityRule) []model.Warning {
	if selection == nil {
		selection = model.NewSelection()
	}

	var warnings []model.Warning
	warnings = append(warnings, gasChecks(power, selection)...)
	warnings = append(warnings, evChecks(power, selection)...)
	warnings = append(warnings, evaluateRules(power, selection, rules)...)

	model.SortWarnings(warnings)
	return warnings
}

// HasIncompatibilities reports whether evaluation produced at least one
// error-severity warning.
func HasIncompatibilities(warnings []model.Warning) bool {
	return model.HasBlocking(warnings)
}

// diametersMatch compares two diameters under ShaftBoreTolerance.
func diametersMatch(a, b float64) bool {
	return math.Abs(a-b) <= ShaftBoreTolerance
}
