package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kartwerks/kartpick/internal/model"
)

const ruleColumns = `id, name, applies_to, source_category, target_category,
	condition, message, severity, is_active, created_at, updated_at`

// GetCompatibilityRules retrieves all rules, ordered by source category
// then name.
func (s *SQLiteStorage) GetCompatibilityRules(ctx context.Context) ([]model.CompatibilityRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+ruleColumns+`
		FROM compatibility_rules
		ORDER BY source_category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query compatibility rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.CompatibilityRule
	for rows.Next() {
		rule, scanErr := scanRule(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate compatibility rules: %w", err)
	}
	return rules, nil
}

// SaveCompatibilityRule inserts or updates a rule. The condition is
// stored as JSON.
func (s *SQLiteStorage) SaveCompatibilityRule(ctx context.Context, rule *model.CompatibilityRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRule(rule); err != nil {
		return err
	}

	conditionJSON, err := json.Marshal(rule.Condition)
	if err != nil {
		return fmt.Errorf("failed to marshal rule condition: %w", err)
	}

	now := time.Now().UTC()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO compatibility_rules (`+ruleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			applies_to = excluded.applies_to,
			source_category = excluded.source_category,
			target_category = excluded.target_category,
			condition = excluded.condition,
			message = excluded.message,
			severity = excluded.severity,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`,
		rule.ID, rule.Name, string(rule.AppliesTo),
		string(rule.SourceCategory), string(rule.TargetCategory),
		string(conditionJSON), rule.Message, string(rule.Severity),
		rule.IsActive, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save compatibility rule: %w", err)
	}
	return nil
}

func scanRule(row scanner) (model.CompatibilityRule, error) {
	var rule model.CompatibilityRule
	var name sql.NullString
	var appliesTo, source, target, severity, conditionJSON string

	err := row.Scan(
		&rule.ID, &name, &appliesTo, &source, &target, &conditionJSON,
		&rule.Message, &severity, &rule.IsActive,
		&rule.CreatedAt, &rule.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CompatibilityRule{}, err
	}
	if err != nil {
		return model.CompatibilityRule{}, fmt.Errorf("failed to scan compatibility rule: %w", err)
	}

	rule.Name = name.String
	rule.AppliesTo = model.FuelTag(appliesTo)
	rule.SourceCategory = model.PartCategory(source)
	rule.TargetCategory = model.PartCategory(target)
	rule.Severity = model.Severity(severity)
	if err := json.Unmarshal([]byte(conditionJSON), &rule.Condition); err != nil {
		return model.CompatibilityRule{}, fmt.Errorf("failed to unmarshal condition for rule %s: %w", rule.ID, err)
	}
	return rule, nil
}
