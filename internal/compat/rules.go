package compat

import (
	"log/slog"
	"math"

	"github.com/kartwerks/kartpick/internal/model"
)

// evaluateRules applies the data-driven rules from the catalog. Each rule
// is evaluated in isolation: a malformed rule or specification value is
// logged at debug level and skipped without disturbing the remaining
// rules or the built-in checks.
func evaluateRules(power model.PowerSource, selection *model.Selection, rules []model.CompatibilityRule) []model.Warning {
	var warnings []model.Warning
	fuel := power.Fuel()

	for i := range rules {
		rule := rules[i]
		if !rule.IsActive || !rule.AppliesToFuel(fuel) {
			continue
		}
		warning, violated := evaluateRule(selection, rule)
		if violated {
			warnings = append(warnings, warning)
		}
	}
	return warnings
}

// evaluateRule checks one rule against the selection. Returns the warning
// to emit and whether the rule was violated. Absent parts or absent
// specification values are never a violation.
func evaluateRule(selection *model.Selection, rule model.CompatibilityRule) (warning model.Warning, violated bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("skipping malformed compatibility rule", "rule", rule.ID, "panic", r)
			warning, violated = model.Warning{}, false
		}
	}()

	source, ok := selection.First(rule.SourceCategory)
	if !ok {
		return model.Warning{}, false
	}
	target, ok := selection.First(rule.TargetCategory)
	if !ok {
		return model.Warning{}, false
	}

	matched, comparable := compareSpecs(source.Specifications, target.Specifications, rule.Condition)
	if !comparable {
		return model.Warning{}, false
	}

	wantMatch := rule.Condition.Comparison != model.CompareNotEquals
	if matched == wantMatch {
		return model.Warning{}, false
	}

	return model.Warning{
		Severity:   rule.Severity,
		Message:    rule.Message,
		Categories: []model.PartCategory{rule.SourceCategory, rule.TargetCategory},
	}, true
}

// compareSpecs compares the rule's source and target keys across two
// specification bags. Numeric values compare under the rule's tolerance
// (exact when none is set); everything else falls back to string
// comparison. comparable is false when either side is absent.
func compareSpecs(source, target model.Specifications, cond model.RuleCondition) (matched, comparable bool) {
	sourceNum, sourceIsNum := source.Number(cond.SourceKey)
	targetNum, targetIsNum := target.Number(cond.TargetKey)
	if sourceIsNum && targetIsNum {
		if cond.Tolerance != nil {
			return math.Abs(sourceNum-targetNum) <= *cond.Tolerance, true
		}
		return sourceNum == targetNum, true
	}

	sourceText, sourceIsText := source.Text(cond.SourceKey)
	targetText, targetIsText := target.Text(cond.TargetKey)
	if sourceIsText && targetIsText {
		return sourceText == targetText, true
	}

	return false, false
}
