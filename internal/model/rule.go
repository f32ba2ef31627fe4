package model

import (
	"fmt"
	"time"
)

// Severity classifies a compatibility warning.
type Severity string

// Severity constants, ordered error > warning > info.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank returns the sort rank of the severity; lower ranks sort first.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// Valid reports whether the severity is a known value.
func (s Severity) Valid() bool {
	return s.Rank() < 3
}

// RuleComparison is the comparison operator of a rule condition.
type RuleComparison string

// Rule comparison constants.
const (
	CompareEquals    RuleComparison = "equals"
	CompareNotEquals RuleComparison = "not_equals"
)

// RuleCondition is the declarative constraint a rule evaluates between two
// parts' specifications. A nil Tolerance means numeric values must match
// exactly; string values always compare exactly.
type RuleCondition struct {
	Tolerance  *float64       `json:"tolerance,omitempty"`
	SourceKey  string         `json:"source_key"`
	TargetKey  string         `json:"target_key"`
	Comparison RuleComparison `json:"comparison,omitempty"`
}

// CompatibilityRule is a data-driven constraint between two part
// categories, loaded from the catalog. Rules are records, not code: the
// compatibility engine evaluates them generically.
type CompatibilityRule struct {
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	AppliesTo      FuelTag       `json:"applies_to"` // gas, electric, or universal
	SourceCategory PartCategory  `json:"source_category"`
	TargetCategory PartCategory  `json:"target_category"`
	Condition      RuleCondition `json:"condition"`
	Message        string        `json:"message"`
	Severity       Severity      `json:"severity"`
	IsActive       bool          `json:"is_active"`
}

// AppliesToFuel reports whether the rule applies under the given power
// source fuel type.
func (r *CompatibilityRule) AppliesToFuel(fuel FuelTag) bool {
	if r.AppliesTo == "" || r.AppliesTo == FuelUniversal {
		return true
	}
	return r.AppliesTo == fuel || fuel == FuelUniversal
}

// Validate ensures the rule has valid data.
func (r *CompatibilityRule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule id is required")
	}
	if !r.SourceCategory.Valid() {
		return fmt.Errorf("unknown source category %q", r.SourceCategory)
	}
	if !r.TargetCategory.Valid() {
		return fmt.Errorf("unknown target category %q", r.TargetCategory)
	}
	if r.Condition.SourceKey == "" || r.Condition.TargetKey == "" {
		return fmt.Errorf("rule condition requires source and target keys")
	}
	switch r.Condition.Comparison {
	case "", CompareEquals, CompareNotEquals:
	default:
		return fmt.Errorf("unknown comparison %q", r.Condition.Comparison)
	}
	if !r.Severity.Valid() {
		return fmt.Errorf("unknown severity %q", r.Severity)
	}
	if r.Message == "" {
		return fmt.Errorf("rule message is required")
	}
	if r.Condition.Tolerance != nil && *r.Condition.Tolerance < 0 {
		return fmt.Errorf("tolerance cannot be negative, got %.4f", *r.Condition.Tolerance)
	}
	return nil
}
